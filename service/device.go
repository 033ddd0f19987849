package service

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/rehiy/web-radio/config"
	"github.com/rehiy/web-radio/protocol"
	"github.com/rehiy/web-radio/transport"
)

var (
	deviceOnce     sync.Once
	deviceInstance *DeviceService
)

// State 会话状态
type State int

const (
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// PortChecker 打开前检查端口是否存在
type PortChecker interface {
	IsAvailable(name string) bool
}

// Snapshot 一次批量轮询得到的设备状态
type Snapshot struct {
	Port   string          `json:"port"`
	Time   time.Time       `json:"time"`
	Fields protocol.Fields `json:"fields"`
	Errors []*BatchError   `json:"errors,omitempty"`
}

// Err 合并本次轮询的全部失败项，全部成功时为 nil
func (s Snapshot) Err() error {
	errs := make([]error, len(s.Errors))
	for i, e := range s.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Options 设备服务参数，零值字段使用默认值
type Options struct {
	Transport transport.Transport
	Ports     PortChecker
	Events    *EventHub
	Baud      int
	Settle    time.Duration
}

// DeviceService 独占一个串口的设备会话。
// 所有触及串口的操作串行执行，避免两个调用方的读写交错。
type DeviceService struct {
	transport transport.Transport
	ports     PortChecker
	events    *EventHub
	baud      int
	settle    time.Duration
	sleep     func(time.Duration)

	mu     sync.Mutex
	handle transport.Handle

	lastMu sync.RWMutex
	last   Snapshot
}

// NewDeviceService 创建设备服务
func NewDeviceService(o Options) *DeviceService {
	if o.Transport == nil {
		o.Transport = transport.NewSerial()
	}
	if o.Ports == nil {
		o.Ports = transport.NewRegistry()
	}
	if o.Events == nil {
		o.Events = GetEventHub()
	}
	if o.Baud <= 0 {
		o.Baud = config.DefaultBaud
	}
	if o.Settle <= 0 {
		o.Settle = config.DefaultSettle
	}
	return &DeviceService{
		transport: o.Transport,
		ports:     o.Ports,
		events:    o.Events,
		baud:      o.Baud,
		settle:    o.Settle,
		sleep:     time.Sleep,
		last:      Snapshot{Fields: protocol.Fields{}},
	}
}

// InitDeviceService 用给定参数初始化全局实例，仅首次调用生效
func InitDeviceService(o Options) *DeviceService {
	deviceOnce.Do(func() {
		deviceInstance = NewDeviceService(o)
	})
	return deviceInstance
}

// GetDeviceService 返回全局实例
func GetDeviceService() *DeviceService {
	return InitDeviceService(Options{})
}

// Events 返回服务使用的事件中心
func (d *DeviceService) Events() *EventHub {
	return d.events
}

// State 返回当前会话状态
func (d *DeviceService) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.openHandle() == nil {
		return StateClosed
	}
	return StateOpen
}

// PortName 返回已打开的端口名，未打开时为空
func (d *DeviceService) PortName() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if h := d.openHandle(); h != nil {
		return h.Name()
	}
	return ""
}

// LastSnapshot 返回最近一次轮询结果
func (d *DeviceService) LastSnapshot() Snapshot {
	d.lastMu.RLock()
	defer d.lastMu.RUnlock()
	return d.last
}

// openHandle 返回仍然打开的句柄，已失效的句柄会被释放；调用方需持有 mu
func (d *DeviceService) openHandle() transport.Handle {
	if d.handle == nil {
		return nil
	}
	if !d.handle.IsOpen() {
		log.Printf("[%s] handle no longer open, releasing", d.handle.Name())
		_ = d.handle.Close()
		d.handle = nil
		return nil
	}
	return d.handle
}

// Open 打开端口。同一端口重复打开直接返回，不同端口返回 ErrPortAlreadyOpen
func (d *DeviceService) Open(name string, baud int) error {
	if baud <= 0 {
		baud = d.baud
	}

	pf := func(s string, v ...any) {
		log.Printf(fmt.Sprintf("[%s] %s", name, s), v...)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if h := d.openHandle(); h != nil {
		if h.Name() == name {
			pf("already open")
			return nil
		}
		return fmt.Errorf("%w: %s", ErrPortAlreadyOpen, h.Name())
	}

	if !d.ports.IsAvailable(name) {
		pf("not available")
		return fmt.Errorf("%w: %s", transport.ErrPortNotFound, name)
	}

	pf("connecting at %d baud", baud)
	h, err := d.transport.Open(name, baud)
	if err != nil {
		pf("connect failed: %v", err)
		return err
	}

	d.handle = h
	pf("connected")
	return nil
}

// Close 关闭端口，未打开时直接返回
func (d *DeviceService) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.handle == nil {
		return nil
	}

	h := d.handle
	d.handle = nil
	if err := h.Close(); err != nil {
		log.Printf("[%s] close failed: %v", h.Name(), err)
		return err
	}
	log.Printf("[%s] closed", h.Name())
	return nil
}

// Poll 按固定顺序查询全部状态命令
func (d *DeviceService) Poll() (Snapshot, error) {
	return d.PollBatch(protocol.StatusCommands, d.settle)
}

// PollBatch 依次发送命令，每条写入后等待 settle 再读取并解码。
// 单条命令失败记入 Snapshot.Errors，其余命令继续执行；
// 只有会话未打开时整体失败。
func (d *DeviceService) PollBatch(cmds []protocol.Command, settle time.Duration) (Snapshot, error) {
	d.mu.Lock()
	h := d.openHandle()
	if h == nil {
		d.mu.Unlock()
		return Snapshot{}, ErrSessionNotOpen
	}

	snap := Snapshot{Port: h.Name(), Fields: protocol.Fields{}}
	for _, cmd := range cmds {
		fields, err := d.exchange(h, cmd, settle)
		snap.Fields.Merge(fields)
		if err != nil {
			log.Printf("[%s] %s failed: %v", h.Name(), cmd, err)
			snap.Errors = append(snap.Errors, &BatchError{Command: cmd, Err: err})
		}
	}
	snap.Time = time.Now()

	// 在 mu 内记录并推送，保证最近快照与推送顺序和轮询顺序一致
	d.lastMu.Lock()
	d.last = snap
	d.lastMu.Unlock()
	d.events.Publish("data_update", snap)
	d.mu.Unlock()

	return snap, nil
}

// exchange 完成一条命令的写入、等待、读取和解码；调用方需持有 mu
func (d *DeviceService) exchange(h transport.Handle, cmd protocol.Command, settle time.Duration) (protocol.Fields, error) {
	data, err := cmd.Bytes()
	if err != nil {
		return nil, err
	}

	_ = h.Flush()
	if err := h.Write(data); err != nil {
		return nil, err
	}
	config.Debugf("[%s] sent %s", h.Name(), cmd.Hex)

	d.sleep(settle)

	raw, err := h.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrEmptyResponse
	}
	config.Debugf("[%s] received %x", h.Name(), raw)

	return protocol.Decode(cmd, raw)
}

// SendRaw 发送调用方提供的十六进制命令，不读取响应
func (d *DeviceService) SendRaw(hexStr string) error {
	data, err := protocol.Encode(hexStr)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	h := d.openHandle()
	if h == nil {
		return ErrSessionNotOpen
	}

	_ = h.Flush()
	if err := h.Write(data); err != nil {
		log.Printf("[%s] send %X failed: %v", h.Name(), data, err)
		return err
	}
	log.Printf("[%s] sent %X", h.Name(), data)
	return nil
}
