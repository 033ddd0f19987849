package service

import (
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/rehiy/web-radio/transport"
)

// fakeTransport 按写入的命令返回预置响应
type fakeTransport struct {
	mu        sync.Mutex
	responses map[string][]byte
	openErr   error
	writeErr  map[string]error
	readErr   map[string]error
	dynamic   map[string]func() []byte
	opens     int
	handles   []*fakeHandle
}

func newFakeTransport(responses map[string][]byte) *fakeTransport {
	return &fakeTransport{
		responses: responses,
		writeErr:  map[string]error{},
		readErr:   map[string]error{},
		dynamic:   map[string]func() []byte{},
	}
}

func (f *fakeTransport) Open(name string, baud int) (transport.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.openErr != nil {
		return nil, &transport.Error{Op: "open", Port: name, Err: f.openErr}
	}
	f.opens++
	h := &fakeHandle{name: name, baud: baud, t: f, open: true}
	f.handles = append(f.handles, h)
	return h, nil
}

func (f *fakeTransport) ioCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, h := range f.handles {
		n += len(h.writes) + h.reads
	}
	return n
}

type fakeHandle struct {
	name    string
	baud    int
	t       *fakeTransport
	open    bool
	pending []byte
	last    string
	writes  []string
	reads   int
	closes  int
}

func (h *fakeHandle) Name() string { return h.name }

func (h *fakeHandle) IsOpen() bool {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	return h.open
}

func (h *fakeHandle) Write(data []byte) error {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	key := strings.ToUpper(hex.EncodeToString(data))
	h.writes = append(h.writes, key)
	if err := h.t.writeErr[key]; err != nil {
		return &transport.Error{Op: "write", Port: h.name, Err: err}
	}
	h.last = key
	if gen := h.t.dynamic[key]; gen != nil {
		h.pending = append(h.pending, gen()...)
		return nil
	}
	h.pending = append(h.pending, h.t.responses[key]...)
	return nil
}

func (h *fakeHandle) ReadAll() ([]byte, error) {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	h.reads++
	out := h.pending
	h.pending = nil
	if err := h.t.readErr[h.last]; err != nil {
		return out, &transport.Error{Op: "read", Port: h.name, Err: err}
	}
	return out, nil
}

func (h *fakeHandle) Flush() error {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	h.pending = nil
	return nil
}

func (h *fakeHandle) Close() error {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	h.open = false
	h.closes++
	return nil
}

func (h *fakeHandle) unplug() {
	h.t.mu.Lock()
	defer h.t.mu.Unlock()
	h.open = false
}

// deviceResponses 五条状态命令的典型响应
func deviceResponses() map[string][]byte {
	radio := make([]byte, 16)
	for i := range radio {
		radio[i] = byte(i)
	}
	combo := []byte{0x01, 0x02, 0x04, 0x01, 0x00, 0x11, 0x00, 0x22}
	id := make([]byte, 14)
	id[12], id[13] = 0x12, 0x34

	return map[string][]byte{
		"0102040605":     radio,
		"0102041109":     combo,
		"0102040F08":     {0xAA, 0xAA, 0xAA, 0x05},
		"010204000C":     id,
		"010206014E4F4D": []byte("\x01\x02\x06E32-TX-RF"),
	}
}

func newTestService(ft *fakeTransport, ports ...string) *DeviceService {
	d := NewDeviceService(Options{
		Transport: ft,
		Ports:     transport.NewStaticRegistry(ports...),
		Events:    NewEventHub(),
		Settle:    time.Millisecond,
	})
	d.sleep = func(time.Duration) {}
	return d
}
