package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidHex          = errors.New("invalid hex encoding")
	ErrUnrecognizedCommand = errors.New("unrecognized command")
	ErrTruncatedResponse   = errors.New("truncated response")
	ErrNonASCII            = errors.New("non-ascii payload")
)

// FieldError 单个字段的解码错误
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
