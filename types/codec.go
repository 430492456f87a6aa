package types

import (
	"github.com/shamaton/msgpack/v2"
)

// Marshaler is implemented by values with their own wire form.
type Marshaler interface {
	MarshalWire() ([]byte, error)
}

// Unmarshaler is implemented by values that decode their own wire form.
type Unmarshaler interface {
	UnmarshalWire(buf []byte) error
}

// Serialize encodes v as MessagePack with structs as positional arrays.
func Serialize(v any) ([]byte, error) {
	if m, ok := v.(Marshaler); ok {
		return marshalWire(m)
	}
	buf, err := msgpack.MarshalAsArray(v)
	if err != nil {
		return nil, ErrSerialization
	}
	return buf, nil
}

// SerializeNamed encodes v as MessagePack with structs as maps keyed by field
// name.
func SerializeNamed(v any) ([]byte, error) {
	if m, ok := v.(Marshaler); ok {
		return marshalWire(m)
	}
	buf, err := msgpack.MarshalAsMap(v)
	if err != nil {
		return nil, ErrSerialization
	}
	return buf, nil
}

// Deserialize decodes buf into v. Structs are accepted both as positional
// arrays and as named maps; the leading format byte decides which.
func Deserialize(buf []byte, v any) error {
	if len(buf) == 0 {
		return ErrDeserialization
	}
	if u, ok := v.(Unmarshaler); ok {
		if err := u.UnmarshalWire(buf); err != nil {
			return ErrDeserialization
		}
		return nil
	}
	var err error
	if _, ok := ArrayLen(buf); ok {
		err = msgpack.UnmarshalAsArray(buf, v)
	} else {
		err = msgpack.UnmarshalAsMap(buf, v)
	}
	if err != nil {
		return ErrDeserialization
	}
	return nil
}

func marshalWire(m Marshaler) ([]byte, error) {
	buf, err := m.MarshalWire()
	if err != nil {
		return nil, ErrSerialization
	}
	return buf, nil
}

// ArrayLen reports the element count if buf starts with a MessagePack array
// header.
func ArrayLen(buf []byte) (int, bool) {
	if len(buf) == 0 {
		return 0, false
	}
	switch c := buf[0]; {
	case c >= 0x90 && c <= 0x9f:
		return int(c & 0x0f), true
	case c == 0xdc && len(buf) >= 3:
		return int(buf[1])<<8 | int(buf[2]), true
	case c == 0xdd && len(buf) >= 5:
		return int(buf[1])<<24 | int(buf[2])<<16 | int(buf[3])<<8 | int(buf[4]), true
	}
	return 0, false
}

// MapLen reports the entry count if buf starts with a MessagePack map header.
func MapLen(buf []byte) (int, bool) {
	if len(buf) == 0 {
		return 0, false
	}
	switch c := buf[0]; {
	case c >= 0x80 && c <= 0x8f:
		return int(c & 0x0f), true
	case c == 0xde && len(buf) >= 3:
		return int(buf[1])<<8 | int(buf[2]), true
	case c == 0xdf && len(buf) >= 5:
		return int(buf[1])<<24 | int(buf[2])<<16 | int(buf[3])<<8 | int(buf[4]), true
	}
	return 0, false
}

// IsNil reports whether buf is the single MessagePack nil value.
func IsNil(buf []byte) bool {
	return len(buf) == 1 && buf[0] == 0xc0
}

// Packed is a value that is already MessagePack encoded and is passed through
// as-is by the typed method adapters.
type Packed []byte
