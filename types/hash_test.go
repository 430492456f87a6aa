package types

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	var zero Hash
	assert.Equal(t, HashIdentity, zero.Algorithm())
	assert.Equal(t, []byte{0x00, 0x00}, zero.Bytes())
	assert.Empty(t, zero.Digest())

	sum := sha256.Sum256([]byte("hello"))
	h, err := NewHash(HashSha256, sum[:])
	require.NoError(t, err)
	assert.Equal(t, HashSha256, h.Algorithm())
	assert.Equal(t, sum[:], h.Digest())
	assert.Equal(t, append([]byte{0x12, 0x20}, sum[:]...), h.Bytes())

	id, err := NewHash(HashIdentity, []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x03, 'a', 'b', 'c'}, id.Bytes())

	_, err = NewHash(HashSha256, make([]byte, 33))
	assert.Error(t, err)
	_, err = NewHash(HashAlgorithm(0x13), nil)
	assert.Error(t, err)
}

func TestHashWire(t *testing.T) {
	h, err := NewHash(HashIdentity, []byte("abc"))
	require.NoError(t, err)

	buf, err := Serialize(h)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xc4, 0x05, 0x00, 0x03, 'a', 'b', 'c'}, buf)

	var got Hash
	require.NoError(t, Deserialize(buf, &got))
	assert.Equal(t, h, got)

	for _, bad := range [][]byte{
		{0xc4, 0x01, 0x12},
		{0xc4, 0x03, 0x12, 0x05, 0x00},
		{0xc4, 0x02, 0x13, 0x00},
		{0x2a},
	} {
		assert.ErrorIs(t, Deserialize(bad, &got), ErrDeserialization)
	}
}
