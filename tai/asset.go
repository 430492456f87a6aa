package tai

import (
	"github.com/govm-net/guestsdk/types"
	"github.com/shamaton/msgpack/v2"
)

// Asset is the standard lockable asset descriptor. A nil Lock means no
// restriction.
type Asset struct {
	// Number of asset units.
	Units uint64
	// Lock level, omitted from the wire form when nil.
	Lock *Lock
}

// NewAsset returns an unlocked asset holding units.
func NewAsset(units uint64) Asset {
	return Asset{Units: units}
}

// Locked reports whether any lock is set.
func (a Asset) Locked() bool {
	return a.Lock != nil
}

// CanDeposit reports whether the asset accepts incoming units.
func (a Asset) CanDeposit() bool {
	return a.Lock == nil || a.Lock.Kind.AllowsDeposit()
}

// CanWithdraw reports whether units may leave the asset.
func (a Asset) CanWithdraw() bool {
	return a.Lock == nil || a.Lock.Kind.AllowsWithdraw()
}

type unlockedAssetWire struct {
	Units uint64
}

type lockedAssetWire struct {
	Units uint64
	Lock  *lockWire
}

// EncodeAsset encodes the asset as [units] or [units, [privilege, kind]].
func EncodeAsset(a Asset) ([]byte, error) {
	if a.Lock == nil {
		return types.Serialize(unlockedAssetWire{Units: a.Units})
	}
	w := a.Lock.wire()
	return types.Serialize(lockedAssetWire{Units: a.Units, Lock: &w})
}

// DecodeAsset decodes an asset. An empty buffer is the default asset: zero
// units, unlocked.
func DecodeAsset(buf []byte) (Asset, error) {
	if len(buf) == 0 {
		return Asset{}, nil
	}
	n, ok := types.ArrayLen(buf)
	if !ok {
		return Asset{}, types.ErrDeserialization
	}
	switch n {
	case 1:
		var w unlockedAssetWire
		if err := msgpack.UnmarshalAsArray(buf, &w); err != nil {
			return Asset{}, types.ErrDeserialization
		}
		return Asset{Units: w.Units}, nil
	case 2:
		var w lockedAssetWire
		if err := msgpack.UnmarshalAsArray(buf, &w); err != nil {
			return Asset{}, types.ErrDeserialization
		}
		a := Asset{Units: w.Units}
		if w.Lock != nil {
			l, err := w.Lock.lock()
			if err != nil {
				return Asset{}, types.ErrDeserialization
			}
			a.Lock = &l
		}
		return a, nil
	}
	return Asset{}, types.ErrDeserialization
}

// EncodeLock encodes an optional lock: nil, or [privilege, kind].
func EncodeLock(l *Lock) ([]byte, error) {
	if l == nil {
		return types.Serialize(nil)
	}
	return types.Serialize(l.wire())
}

// DecodeLock decodes an optional lock produced by EncodeLock.
func DecodeLock(buf []byte) (*Lock, error) {
	if types.IsNil(buf) {
		return nil, nil
	}
	if n, ok := types.ArrayLen(buf); !ok || n != 2 {
		return nil, types.ErrDeserialization
	}
	var w lockWire
	if err := msgpack.UnmarshalAsArray(buf, &w); err != nil {
		return nil, types.ErrDeserialization
	}
	l, err := w.lock()
	if err != nil {
		return nil, types.ErrDeserialization
	}
	return &l, nil
}

// MarshalWire implements types.Marshaler.
func (a Asset) MarshalWire() ([]byte, error) {
	return EncodeAsset(a)
}

// UnmarshalWire implements types.Unmarshaler.
func (a *Asset) UnmarshalWire(buf []byte) error {
	v, err := DecodeAsset(buf)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalWire implements types.Marshaler. A nil lock encodes as nil.
func (l *Lock) MarshalWire() ([]byte, error) {
	return EncodeLock(l)
}

// UnmarshalWire implements types.Unmarshaler. A nil value is rejected; use
// DecodeLock for optional locks.
func (l *Lock) UnmarshalWire(buf []byte) error {
	v, err := DecodeLock(buf)
	if err != nil {
		return err
	}
	if v == nil {
		return types.ErrDeserialization
	}
	*l = *v
	return nil
}
