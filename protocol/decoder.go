package protocol

import (
	"encoding/hex"
	"errors"
)

// Fields 解码结果，值为 int 或 string
type Fields map[string]any

// Merge 合并另一组字段，同名以后者为准
func (f Fields) Merge(o Fields) {
	for k, v := range o {
		f[k] = v
	}
}

// Decode 按命令的解码表解析响应。
// 某个字段失败不会中断其它字段，返回成功的字段和合并后的字段错误。
func Decode(cmd Command, raw []byte) (Fields, error) {
	table, err := DecodeTableFor(cmd)
	if err != nil {
		return nil, err
	}

	fields := Fields{}
	var errs []error
	for _, f := range table {
		v, err := decodeField(f, raw)
		if err != nil {
			errs = append(errs, &FieldError{Field: f.Name, Err: err})
			continue
		}
		fields[f.Name] = v
	}
	return fields, errors.Join(errs...)
}

func decodeField(f Field, raw []byte) (any, error) {
	switch f.Kind {
	case KindByte:
		if f.Start >= len(raw) {
			return nil, ErrTruncatedResponse
		}
		return int(raw[f.Start]), nil

	case KindASCII:
		if f.End > len(raw) {
			return nil, ErrTruncatedResponse
		}
		chunk := raw[f.Start:f.End]
		for _, b := range chunk {
			if b < 0x20 || b > 0x7e {
				return nil, ErrNonASCII
			}
		}
		return string(chunk), nil

	case KindHex:
		s := hex.EncodeToString(raw)
		if f.End > len(s) {
			return nil, ErrTruncatedResponse
		}
		return s[f.Start:f.End], nil
	}
	return nil, ErrUnrecognizedCommand
}
