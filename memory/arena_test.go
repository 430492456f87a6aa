package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaWriteRead(t *testing.T) {
	a := NewArena(64)

	off1 := a.Write([]byte("hello"))
	off2 := a.Write([]byte("world"))
	assert.Equal(t, int32(0), off1)
	assert.Equal(t, int32(5), off2)
	assert.Equal(t, 10, a.Len())

	got, err := a.Read(off2, 5)
	require.NoError(t, err)
	assert.Equal(t, []byte("world"), got)

	h := a.WriteHandle([]byte("!"))
	assert.Equal(t, Pack(10, 1), h)
	got, err = a.ReadHandle(h)
	require.NoError(t, err)
	assert.Equal(t, []byte("!"), got)
}

func TestArenaEmptyWrite(t *testing.T) {
	a := NewArena(16)
	a.Write([]byte("abc"))

	h := a.WriteHandle(nil)
	assert.Equal(t, Pack(3, 0), h)

	got, err := a.ReadHandle(h)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestArenaBounds(t *testing.T) {
	a := NewArena(32)
	a.Write([]byte("abcd"))

	tests := []struct {
		name   string
		offset int32
		length int32
	}{
		{"negative offset", -1, 2},
		{"negative length", 0, -2},
		{"past cursor", 2, 3},
		{"unwritten", 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.View(tt.offset, tt.length)
			assert.ErrorIs(t, err, ErrOutOfBounds)
		})
	}
}

func TestArenaReadIsCopy(t *testing.T) {
	a := NewArena(32)
	off := a.Write([]byte("abcd"))

	got, err := a.Read(off, 4)
	require.NoError(t, err)
	got[0] = 'z'

	view, err := a.View(off, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcd"), view)
}

func TestArenaOutOfMemory(t *testing.T) {
	a := NewArena(8)
	a.Write([]byte("1234"))

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrOutOfMemory))
		// nothing was written past the cursor
		assert.Equal(t, 4, a.Len())
	}()
	a.Write([]byte("5678"))
}

func TestArenaMarkRelease(t *testing.T) {
	a := NewArena(32)
	a.Write([]byte("keep"))

	mark := a.Mark()
	h := a.WriteHandle([]byte("scratch"))
	assert.Equal(t, 11, a.Len())

	a.Release(mark)
	assert.Equal(t, 4, a.Len())
	_, err := a.ReadHandle(h)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	// releasing forward is ignored
	a.Release(20)
	assert.Equal(t, 4, a.Len())
}
