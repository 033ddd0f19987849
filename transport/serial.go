package transport

import (
	"errors"
	"io"
	"os"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/tarm/serial"
)

const (
	bufferSize  = 128
	maxReadSize = 4096
	readTimeout = 50 * time.Millisecond
)

var errClosed = errors.New("port closed")

// port tarm/serial 端口的最小接口
type port interface {
	io.ReadWriteCloser
	Flush() error
}

// Serial 基于 tarm/serial 的串口实现
type Serial struct {
	ReadTimeout time.Duration
}

// NewSerial 返回默认参数的串口实现
func NewSerial() *Serial {
	return &Serial{ReadTimeout: readTimeout}
}

// Open 以 8N1 打开串口
func (s *Serial) Open(name string, baud int) (Handle, error) {
	timeout := s.ReadTimeout
	if timeout <= 0 {
		timeout = readTimeout
	}

	sp, err := serial.OpenPort(&serial.Config{
		Name:        name,
		Baud:        baud,
		ReadTimeout: timeout,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
	})
	if err != nil {
		return nil, &Error{Op: "open", Port: name, Err: err}
	}

	return newSerialHandle(name, sp), nil
}

type serialHandle struct {
	name string
	port port
	open atomic.Bool
}

func newSerialHandle(name string, p port) *serialHandle {
	h := &serialHandle{name: name, port: p}
	h.open.Store(true)
	return h
}

// fail 包装错误；设备已移除时标记句柄关闭，会话随后会释放它
func (h *serialHandle) fail(op string, err error) error {
	if isGone(err) && h.open.CompareAndSwap(true, false) {
		_ = h.port.Close()
	}
	return &Error{Op: op, Port: h.name, Err: err}
}

func isGone(err error) bool {
	return errors.Is(err, syscall.EIO) ||
		errors.Is(err, syscall.ENXIO) ||
		errors.Is(err, syscall.ENODEV) ||
		errors.Is(err, os.ErrClosed)
}

func (h *serialHandle) Name() string {
	return h.name
}

func (h *serialHandle) IsOpen() bool {
	return h.open.Load()
}

func (h *serialHandle) Write(data []byte) error {
	if !h.IsOpen() {
		return &Error{Op: "write", Port: h.name, Err: errClosed}
	}
	if _, err := h.port.Write(data); err != nil {
		return h.fail("write", err)
	}
	return nil
}

// ReadAll 读取直到一次读超时没有新数据，最多 maxReadSize 字节
func (h *serialHandle) ReadAll() ([]byte, error) {
	if !h.IsOpen() {
		return nil, &Error{Op: "read", Port: h.name, Err: errClosed}
	}

	var resp []byte
	buf := make([]byte, bufferSize)
	for len(resp) < maxReadSize {
		chunk := buf[:min(bufferSize, maxReadSize-len(resp))]
		n, err := h.port.Read(chunk)
		if n > 0 {
			resp = append(resp, chunk[:n]...)
		}
		if err != nil {
			// 读超时在 posix 上表现为 EOF
			if errors.Is(err, io.EOF) {
				break
			}
			return resp, h.fail("read", err)
		}
		if n == 0 {
			break
		}
	}
	return resp, nil
}

// Flush 丢弃未读数据，避免旧数据干扰本次响应
func (h *serialHandle) Flush() error {
	if !h.IsOpen() {
		return &Error{Op: "flush", Port: h.name, Err: errClosed}
	}
	if err := h.port.Flush(); err != nil {
		return h.fail("flush", err)
	}
	return nil
}

func (h *serialHandle) Close() error {
	if !h.open.CompareAndSwap(true, false) {
		return nil
	}
	if err := h.port.Close(); err != nil {
		return &Error{Op: "close", Port: h.name, Err: err}
	}
	return nil
}
