package handler

import (
	"net/http"
	"strconv"

	"github.com/rehiy/web-radio/service"
	"github.com/rehiy/web-radio/transport"
)

// SerialHandler 串口枚举与连接处理器
type SerialHandler struct {
	ds       *service.DeviceService
	registry *transport.Registry
}

// NewSerialHandler 创建串口处理器
func NewSerialHandler(ds *service.DeviceService, registry *transport.Registry) *SerialHandler {
	if ds == nil {
		ds = service.GetDeviceService()
	}
	if registry == nil {
		registry = transport.NewRegistry()
	}
	return &SerialHandler{ds: ds, registry: registry}
}

// ListPorts 返回主机上的串口，detail=1 时附带 USB 信息
func (h *SerialHandler) ListPorts(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("detail") == "1" {
		details, err := h.registry.Details()
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, details)
		return
	}

	ports, err := h.registry.ListPorts()
	if err != nil {
		respondError(w, err)
		return
	}
	if ports == nil {
		ports = []string{}
	}
	respondJSON(w, http.StatusOK, ports)
}

// CheckAvailable 检查端口是否存在
func (h *SerialHandler) CheckAvailable(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("port_name")
	if name == "" {
		respondJSON(w, http.StatusBadRequest, H{"error": "port_name is empty"})
		return
	}
	respondJSON(w, http.StatusOK, H{"available": h.registry.IsAvailable(name)})
}

// Connect 打开端口
func (h *SerialHandler) Connect(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("port_name")
	if name == "" {
		respondJSON(w, http.StatusBadRequest, H{"error": "port_name is empty"})
		return
	}

	baud := 0
	if v := r.URL.Query().Get("baud"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondJSON(w, http.StatusBadRequest, H{"error": "invalid baud: " + v})
			return
		}
		baud = n
	}

	if err := h.ds.Open(name, baud); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, H{"message": "connected to port: " + name, "port": name})
}

// Close 关闭端口
func (h *SerialHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.ds.Close(); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, H{"message": "serial port closed"})
}

// Status 返回会话状态
func (h *SerialHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, H{
		"state": h.ds.State().String(),
		"port":  h.ds.PortName(),
	})
}
