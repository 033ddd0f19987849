package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rehiy/web-radio/service"
)

// DeviceHandler 设备状态与命令处理器
type DeviceHandler struct {
	ds *service.DeviceService
}

// NewDeviceHandler 创建设备处理器
func NewDeviceHandler(ds *service.DeviceService) *DeviceHandler {
	if ds == nil {
		ds = service.GetDeviceService()
	}
	return &DeviceHandler{ds: ds}
}

// GetStatus 轮询全部状态命令并返回快照
func (h *DeviceHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	snap, err := h.ds.Poll()
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respondJSON(w, http.StatusOK, snap)
}

// GetLastStatus 返回最近一次轮询结果，不访问串口
func (h *DeviceHandler) GetLastStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respondJSON(w, http.StatusOK, h.ds.LastSnapshot())
}

// SendCommand 向设备发送原始十六进制命令
func (h *DeviceHandler) SendCommand(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HexData *string `json:"hex_data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, H{"error": "invalid json: " + err.Error()})
		return
	}
	if req.HexData == nil {
		respondJSON(w, http.StatusBadRequest, H{"error": "hex_data not provided in request"})
		return
	}

	if err := h.ds.SendRaw(*req.HexData); err != nil {
		respondError(w, err)
		return
	}

	// 推送最近一次状态，保持前端与设备同步
	h.ds.Events().Publish("data_update", h.ds.LastSnapshot())
	respondJSON(w, http.StatusOK, H{"message": "hex data sent successfully"})
}
