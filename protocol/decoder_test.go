package protocol

import (
	"errors"
	"reflect"
	"testing"
)

func seq(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func TestDecodeBattery(t *testing.T) {
	fields, err := Decode(CmdBattery, []byte{0xAA, 0xAA, 0xAA, 0x05})
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	want := Fields{"Low battery v": 5}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("Decode = %v, want %v", fields, want)
	}
}

func TestDecodeRadio(t *testing.T) {
	fields, err := Decode(CmdRadio, seq(16))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	want := Fields{
		"Channel":             3,
		"Sync Address":        7,
		"Destination Address": 13,
		"Source Address":      15,
		"Standby Time":        11,
		"Transmitter Power":   9,
	}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("Decode = %v, want %v", fields, want)
	}
}

func TestDecodeCombo(t *testing.T) {
	fields, err := Decode(CmdCombo, seq(8))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	want := Fields{"Combo First Key": 5, "Combo Second Key": 7, "Combo Secure": 3}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("Decode = %v, want %v", fields, want)
	}
}

func TestDecodeDeviceID(t *testing.T) {
	raw := make([]byte, 14)
	raw[12] = 0xBE
	raw[13] = 0xEF

	fields, err := Decode(CmdDeviceID, raw)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if fields["Device id"] != "beef" {
		t.Fatalf("Device id = %v, want beef", fields["Device id"])
	}

	_, err = Decode(CmdDeviceID, raw[:13])
	if !errors.Is(err, ErrTruncatedResponse) {
		t.Fatalf("short device id err = %v", err)
	}
}

func TestDecodeModel(t *testing.T) {
	raw := []byte("\x01\x02\x06E32-TX-RF\x00")
	// 0..2 header, 3..8 "E32-TX", 9 "-", 10..11 "RF"
	fields, err := Decode(CmdModel, raw)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	want := Fields{"Mode no": "E32-TX", "Device name": "RF"}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("Decode = %v, want %v", fields, want)
	}
}

func TestDecodeNonASCII(t *testing.T) {
	raw := []byte("\x01\x02\x06E32\xffTX-RF")
	fields, err := Decode(CmdModel, raw)

	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "Mode no" || !errors.Is(err, ErrNonASCII) {
		t.Fatalf("err = %v, want non-ascii on Mode no", err)
	}
	if fields["Device name"] != "RF" {
		t.Fatalf("Device name should still decode, got %v", fields)
	}
	if _, ok := fields["Mode no"]; ok {
		t.Fatal("Mode no should be absent")
	}
}

func TestDecodeTruncatedKeepsOtherFields(t *testing.T) {
	// 12 字节：覆盖 3,7,9,11 但不覆盖 13,15
	fields, err := Decode(CmdRadio, seq(12))
	if !errors.Is(err, ErrTruncatedResponse) {
		t.Fatalf("err = %v, want truncated", err)
	}
	if len(fields) != 4 {
		t.Fatalf("fields = %v, want 4 entries", fields)
	}

	var missing []string
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var fe *FieldError
		if errors.As(e, &fe) {
			missing = append(missing, fe.Field)
		}
	}
	want := []string{"Destination Address", "Source Address"}
	if !reflect.DeepEqual(missing, want) {
		t.Fatalf("failed fields = %v, want %v", missing, want)
	}
}

func TestDecodeEmpty(t *testing.T) {
	fields, err := Decode(CmdBattery, nil)
	if !errors.Is(err, ErrTruncatedResponse) {
		t.Fatalf("err = %v", err)
	}
	if len(fields) != 0 {
		t.Fatalf("fields = %v, want empty", fields)
	}
}

func TestDecodeUnrecognized(t *testing.T) {
	fields, err := Decode(RawCommand("FFEE"), seq(8))
	if !errors.Is(err, ErrUnrecognizedCommand) || fields != nil {
		t.Fatalf("Decode = %v, %v", fields, err)
	}
}

func TestDecodeIsPure(t *testing.T) {
	raw := seq(16)
	for _, cmd := range StatusCommands {
		a, errA := Decode(cmd, raw)
		b, errB := Decode(cmd, raw)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: %v != %v", cmd, a, b)
		}
		if (errA == nil) != (errB == nil) {
			t.Errorf("%s: errors differ: %v / %v", cmd, errA, errB)
		}
	}
}

func TestFieldsMerge(t *testing.T) {
	f := Fields{"a": 1}
	f.Merge(Fields{"a": 2, "b": "x"})
	if !reflect.DeepEqual(f, Fields{"a": 2, "b": "x"}) {
		t.Fatalf("Merge = %v", f)
	}
}
