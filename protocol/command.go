package protocol

import "strings"

// Command 设备命令，Hex 为规范的大写十六进制串，同时作为解码表的键
type Command struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// 内置状态查询命令
var (
	CmdRadio    = Command{Name: "radio", Hex: "0102040605"}
	CmdCombo    = Command{Name: "combo", Hex: "0102041109"}
	CmdBattery  = Command{Name: "battery", Hex: "0102040F08"}
	CmdDeviceID = Command{Name: "device-id", Hex: "010204000C"}
	CmdModel    = Command{Name: "model", Hex: "010206014E4F4D"}
)

// StatusCommands 状态刷新时的固定发送顺序
var StatusCommands = []Command{
	CmdCombo,
	CmdBattery,
	CmdRadio,
	CmdDeviceID,
	CmdModel,
}

// RawCommand 包装调用方提供的十六进制命令
func RawCommand(hexStr string) Command {
	if cmd, ok := Lookup(hexStr); ok {
		return cmd
	}
	return Command{Name: "raw", Hex: normalizeHex(hexStr)}
}

// Lookup 根据十六进制串查找内置命令（忽略大小写和空白）
func Lookup(hexStr string) (Command, bool) {
	key := normalizeHex(hexStr)
	for _, cmd := range StatusCommands {
		if cmd.Hex == key {
			return cmd, true
		}
	}
	return Command{}, false
}

// Bytes 返回命令的原始字节
func (c Command) Bytes() ([]byte, error) {
	return Encode(c.Hex)
}

func (c Command) String() string {
	if c.Name == "" {
		return c.Hex
	}
	return c.Name + "(" + c.Hex + ")"
}

func normalizeHex(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}
