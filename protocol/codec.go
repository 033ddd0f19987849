package protocol

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Kind 字段取值方式
type Kind int

const (
	KindByte  Kind = iota // 单字节无符号整数，取 Start 处
	KindASCII             // 字节区间 [Start:End] 按 ASCII 解码
	KindHex               // 整个响应的十六进制串的字符区间 [Start:End]
)

func (k Kind) String() string {
	switch k {
	case KindByte:
		return "byte"
	case KindASCII:
		return "ascii"
	case KindHex:
		return "hex"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Field 解码表中的一项
type Field struct {
	Name  string
	Kind  Kind
	Start int
	End   int
}

func byteField(name string, offset int) Field {
	return Field{Name: name, Kind: KindByte, Start: offset, End: offset + 1}
}

// 偏移量与设备固件一致，只对对应命令的响应有效
var decodeTables = map[string][]Field{
	CmdRadio.Hex: {
		byteField("Channel", 3),
		byteField("Sync Address", 7),
		byteField("Destination Address", 13),
		byteField("Source Address", 15),
		byteField("Standby Time", 11),
		byteField("Transmitter Power", 9),
	},
	CmdCombo.Hex: {
		byteField("Combo First Key", 5),
		byteField("Combo Second Key", 7),
		byteField("Combo Secure", 3),
	},
	CmdBattery.Hex: {
		byteField("Low battery v", 3),
	},
	CmdDeviceID.Hex: {
		{Name: "Device id", Kind: KindHex, Start: 24, End: 28},
	},
	CmdModel.Hex: {
		{Name: "Mode no", Kind: KindASCII, Start: 3, End: 9},
		{Name: "Device name", Kind: KindASCII, Start: 10, End: 12},
	},
}

// Encode 将十六进制命令串转换为待发送的字节，空白只允许出现在字节之间
func Encode(hexStr string) ([]byte, error) {
	groups := strings.Fields(hexStr)
	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrInvalidHex)
	}
	for _, g := range groups {
		if len(g)%2 != 0 {
			return nil, fmt.Errorf("%w: odd-length group %q", ErrInvalidHex, g)
		}
	}

	s := strings.Join(groups, "")
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return data, nil
}

// DecodeTableFor 返回命令的字段布局
func DecodeTableFor(cmd Command) ([]Field, error) {
	table, ok := decodeTables[normalizeHex(cmd.Hex)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnrecognizedCommand, cmd.Hex)
	}
	out := make([]Field, len(table))
	copy(out, table)
	return out, nil
}
