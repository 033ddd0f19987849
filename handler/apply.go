package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rehiy/web-radio/protocol"
	"github.com/rehiy/web-radio/service"
	"github.com/rehiy/web-radio/transport"
)

type H map[string]any

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError 按错误类型选择状态码，code 供前端区分提示
func respondError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, "internal"

	var te *transport.Error
	switch {
	case errors.Is(err, service.ErrSessionNotOpen):
		status, code = http.StatusConflict, "not_open"
	case errors.Is(err, service.ErrPortAlreadyOpen):
		status, code = http.StatusConflict, "already_open"
	case errors.Is(err, transport.ErrPortNotFound):
		status, code = http.StatusNotFound, "port_not_found"
	case errors.Is(err, protocol.ErrInvalidHex):
		status, code = http.StatusBadRequest, "invalid_hex"
	case errors.As(err, &te):
		status, code = http.StatusBadGateway, "transport"
	}

	respondJSON(w, status, H{"error": err.Error(), "code": code})
}
