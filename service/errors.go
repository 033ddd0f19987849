package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rehiy/web-radio/protocol"
)

var (
	ErrSessionNotOpen  = errors.New("session not open")
	ErrPortAlreadyOpen = errors.New("another port already open")
	ErrEmptyResponse   = errors.New("empty response")
)

// BatchError 批量轮询中单条命令的失败
type BatchError struct {
	Command protocol.Command
	Err     error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// MarshalJSON 输出命令与原因，便于调用方展示
func (e *BatchError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Command string `json:"command"`
		Hex     string `json:"hex"`
		Error   string `json:"error"`
	}{e.Command.Name, e.Command.Hex, e.Err.Error()})
}
