package transport

import (
	"errors"
	"fmt"
)

var ErrPortNotFound = errors.New("port not found")

// Error 串口操作错误，记录操作与端口
type Error struct {
	Op   string
	Port string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Port, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Transport 打开串口句柄
type Transport interface {
	Open(name string, baud int) (Handle, error)
}

// Handle 已打开的串口。
// 协议没有帧定界，ReadAll 只取出当前缓冲区里的数据，不等待固定长度。
type Handle interface {
	Name() string
	Write(data []byte) error
	ReadAll() ([]byte, error)
	Flush() error
	Close() error
	IsOpen() bool
}
