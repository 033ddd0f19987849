package config

import (
	"log"
	"strings"
	"time"
)

// Verbose 为 true 时输出调试日志
var Verbose bool

// Debugf 仅在 Verbose 时打印
func Debugf(format string, args ...any) {
	if Verbose {
		log.Printf("[debug] "+format, args...)
	}
}

const (
	DefaultListen  = "8080"
	DefaultBaud    = 9600
	DefaultSettle  = 500 * time.Millisecond
	DefaultWebview = "./webview"
)

// Globals 所有子命令共用的参数，均可由环境变量提供
type Globals struct {
	Verbose bool          `short:"v" env:"VERBOSE" help:"Enable verbose debug output."`
	Baud    int           `env:"DEVICE_BAUD" default:"9600" help:"Serial baud rate."`
	Settle  time.Duration `env:"DEVICE_SETTLE" default:"500ms" help:"Delay between writing a command and reading its response."`
}

// Apply 将全局参数写入包级开关
func (g *Globals) Apply() {
	Verbose = g.Verbose
	if g.Verbose {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	}
}

// Server Web 服务参数
type Server struct {
	Listen  string `env:"PORT" default:"8080" help:"HTTP listen port."`
	Device  string `env:"DEVICE_PORT" help:"Serial port to open at start."`
	Webview string `env:"WEBVIEW_DIR" default:"./webview" help:"Static file directory."`
}

// Addr 返回监听地址，兼容只给端口号的写法
func (s Server) Addr() string {
	if s.Listen == "" {
		return ":" + DefaultListen
	}
	if strings.Contains(s.Listen, ":") {
		return s.Listen
	}
	return ":" + s.Listen
}
