package types

import (
	"fmt"

	"github.com/shamaton/msgpack/v2"
)

// HashAlgorithm is the multihash tag of a Hash.
type HashAlgorithm uint8

const (
	HashIdentity HashAlgorithm = 0x00
	HashSha256   HashAlgorithm = 0x12
)

// HashSizeMax is the longest digest a Hash holds.
const HashSizeMax = 32

// Hash is a multihash: algorithm tag, digest length, digest.
// The zero value is an empty identity hash.
type Hash [2 + HashSizeMax]byte

// NewHash wraps a precomputed digest.
func NewHash(alg HashAlgorithm, digest []byte) (Hash, error) {
	var h Hash
	if alg != HashIdentity && alg != HashSha256 {
		return h, fmt.Errorf("unknown hash algorithm 0x%02x", uint8(alg))
	}
	if len(digest) > HashSizeMax {
		return h, fmt.Errorf("hash digest of %d bytes exceeds %d", len(digest), HashSizeMax)
	}
	h[0] = byte(alg)
	h[1] = byte(len(digest))
	copy(h[2:], digest)
	return h, nil
}

// ParseHash decodes the multihash bytes returned by Hash.Bytes.
func ParseHash(b []byte) (Hash, error) {
	if len(b) < 2 || int(b[1]) != len(b)-2 {
		return Hash{}, ErrDeserialization
	}
	h, err := NewHash(HashAlgorithm(b[0]), b[2:])
	if err != nil {
		return Hash{}, ErrDeserialization
	}
	return h, nil
}

func (h Hash) Algorithm() HashAlgorithm { return HashAlgorithm(h[0]) }

// Digest returns the digest bytes without the multihash prefix.
func (h Hash) Digest() []byte {
	return append([]byte(nil), h[2:2+int(h[1])]...)
}

// Bytes returns the multihash encoding.
func (h Hash) Bytes() []byte {
	return append([]byte(nil), h[:2+int(h[1])]...)
}

// MarshalWire implements Marshaler as a bin of the multihash bytes.
func (h Hash) MarshalWire() ([]byte, error) {
	return msgpack.Marshal(h.Bytes())
}

// UnmarshalWire implements Unmarshaler.
func (h *Hash) UnmarshalWire(buf []byte) error {
	var b []byte
	if err := msgpack.Unmarshal(buf, &b); err != nil {
		return err
	}
	v, err := ParseHash(b)
	if err != nil {
		return err
	}
	*h = v
	return nil
}
