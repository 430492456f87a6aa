package tai

import (
	"github.com/govm-net/guestsdk/types"
	"github.com/shamaton/msgpack/v2"
)

// AssetTransferArgs are the arguments of the asset transfer method.
type AssetTransferArgs struct {
	From  string
	To    string
	Units uint64
	// Optional payload, omitted from the wire form when nil.
	Data []byte
}

type transferWire struct {
	From  string
	To    string
	Units uint64
}

type transferDataWire struct {
	From  string
	To    string
	Units uint64
	Data  []byte
}

// MarshalWire implements types.Marshaler: [from, to, units] or
// [from, to, units, data].
func (a AssetTransferArgs) MarshalWire() ([]byte, error) {
	if a.Data == nil {
		return msgpack.MarshalAsArray(transferWire{From: a.From, To: a.To, Units: a.Units})
	}
	return msgpack.MarshalAsArray(transferDataWire(a))
}

// UnmarshalWire implements types.Unmarshaler.
func (a *AssetTransferArgs) UnmarshalWire(buf []byte) error {
	n, ok := types.ArrayLen(buf)
	if !ok {
		return types.ErrDeserialization
	}
	switch n {
	case 3:
		var w transferWire
		if err := msgpack.UnmarshalAsArray(buf, &w); err != nil {
			return err
		}
		*a = AssetTransferArgs{From: w.From, To: w.To, Units: w.Units}
	case 4:
		var w transferDataWire
		if err := msgpack.UnmarshalAsArray(buf, &w); err != nil {
			return err
		}
		*a = AssetTransferArgs(w)
	default:
		return types.ErrDeserialization
	}
	return nil
}

// AssetLockArgs are the arguments of the asset lock method.
type AssetLockArgs struct {
	To   string
	Lock LockType
}

type lockArgsWire struct {
	To   string
	Lock string
}

// MarshalWire implements types.Marshaler: [to, kind].
func (a AssetLockArgs) MarshalWire() ([]byte, error) {
	return msgpack.MarshalAsArray(lockArgsWire{To: a.To, Lock: a.Lock.String()})
}

// UnmarshalWire implements types.Unmarshaler.
func (a *AssetLockArgs) UnmarshalWire(buf []byte) error {
	if n, ok := types.ArrayLen(buf); !ok || n != 2 {
		return types.ErrDeserialization
	}
	var w lockArgsWire
	if err := msgpack.UnmarshalAsArray(buf, &w); err != nil {
		return err
	}
	kind, err := ParseLockType(w.Lock)
	if err != nil {
		return err
	}
	*a = AssetLockArgs{To: w.To, Lock: kind}
	return nil
}
