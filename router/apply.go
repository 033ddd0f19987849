package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rehiy/web-radio/handler"
	"github.com/rehiy/web-radio/service"
	"github.com/rehiy/web-radio/transport"
)

// Options 路由依赖，零值使用全局实例
type Options struct {
	Device   *service.DeviceService
	Registry *transport.Registry
	Webview  string
}

func Apply(o Options) *mux.Router {
	if o.Device == nil {
		o.Device = service.GetDeviceService()
	}

	r := mux.NewRouter()

	// API 路由
	api := r.PathPrefix("/api").Subrouter()
	DeviceRegister(api, o.Device)
	SerialRegister(api, o.Device, o.Registry)

	// WebSocket
	WebSocketRegister(r, o.Device.Events())

	// 首页与静态文件
	r.HandleFunc("/", Welcome).Methods("GET")
	if o.Webview != "" {
		StaticServer(r, o.Webview)
	}

	return r
}

func DeviceRegister(r *mux.Router, ds *service.DeviceService) {
	dh := handler.NewDeviceHandler(ds)

	r.HandleFunc("/device/status", dh.GetStatus).Methods("GET")
	r.HandleFunc("/device/last", dh.GetLastStatus).Methods("GET")
	r.HandleFunc("/device/send", dh.SendCommand).Methods("POST")
}

func SerialRegister(r *mux.Router, ds *service.DeviceService, registry *transport.Registry) {
	sh := handler.NewSerialHandler(ds, registry)

	r.HandleFunc("/serial/ports", sh.ListPorts).Methods("GET")
	r.HandleFunc("/serial/available", sh.CheckAvailable).Methods("GET")
	r.HandleFunc("/serial/connect", sh.Connect).Methods("GET", "POST")
	r.HandleFunc("/serial/close", sh.Close).Methods("GET", "POST")
	r.HandleFunc("/serial/status", sh.Status).Methods("GET")
}

func WebSocketRegister(r *mux.Router, events *service.EventHub) {
	ws := handler.NewWebSocketHandler(events)

	r.HandleFunc("/ws/device", ws.HandleWebSocket)
}

func Welcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Welcome"))
}

func StaticServer(r *mux.Router, dir string) {
	fs := http.FileServer(http.Dir(dir))
	r.PathPrefix("/").Handler(fs)
}
