package transport

import (
	"slices"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// PortDetail 端口详细信息
type PortDetail struct {
	Name         string `json:"name"`
	IsUSB        bool   `json:"usb"`
	VID          string `json:"vid,omitempty"`
	PID          string `json:"pid,omitempty"`
	SerialNumber string `json:"serialNumber,omitempty"`
	Product      string `json:"product,omitempty"`
}

// Registry 枚举主机上的串口，无状态，可与轮询并发调用
type Registry struct {
	list   func() ([]string, error)
	detail func() ([]*enumerator.PortDetails, error)
}

// NewRegistry 返回使用系统枚举的 Registry
func NewRegistry() *Registry {
	return &Registry{
		list:   serial.GetPortsList,
		detail: enumerator.GetDetailedPortsList,
	}
}

// NewStaticRegistry 返回固定端口列表的 Registry
func NewStaticRegistry(ports ...string) *Registry {
	return &Registry{
		list: func() ([]string, error) {
			return slices.Clone(ports), nil
		},
	}
}

// ListPorts 列出当前可见的串口，顺序由系统决定
func (r *Registry) ListPorts() ([]string, error) {
	ports, err := r.list()
	if err != nil {
		return nil, &Error{Op: "enumerate", Port: "*", Err: err}
	}
	return ports, nil
}

// IsAvailable 端口是否出现在当前枚举结果中
func (r *Registry) IsAvailable(name string) bool {
	if name == "" {
		return false
	}
	ports, err := r.ListPorts()
	if err != nil {
		return false
	}
	return slices.Contains(ports, name)
}

// Details 返回端口的 USB 信息，无详细枚举时退化为仅名称
func (r *Registry) Details() ([]PortDetail, error) {
	if r.detail == nil {
		ports, err := r.ListPorts()
		if err != nil {
			return nil, err
		}
		out := make([]PortDetail, 0, len(ports))
		for _, p := range ports {
			out = append(out, PortDetail{Name: p})
		}
		return out, nil
	}

	ports, err := r.detail()
	if err != nil {
		return nil, &Error{Op: "enumerate", Port: "*", Err: err}
	}
	out := make([]PortDetail, 0, len(ports))
	for _, p := range ports {
		out = append(out, PortDetail{
			Name:         p.Name,
			IsUSB:        p.IsUSB,
			VID:          p.VID,
			PID:          p.PID,
			SerialNumber: p.SerialNumber,
			Product:      p.Product,
		})
	}
	return out, nil
}
