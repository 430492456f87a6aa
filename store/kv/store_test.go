package kv

import (
	"testing"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/govm-net/guestsdk/store"
	"github.com/govm-net/guestsdk/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return New(dbm.NewMemDB())
	})
}

func TestLevelDB(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(map[string]any{"dir": dir})
	require.NoError(t, err)
	require.NoError(t, s.SetData("alice", "k", []byte("v")))
	require.NoError(t, s.Close())

	s, err = Open(map[string]any{"dir": dir})
	require.NoError(t, err)
	defer s.Close()
	v, err := s.Data("alice", "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}

func TestPrefixEnd(t *testing.T) {
	tests := []struct {
		in, want []byte
	}{
		{[]byte("ab"), []byte("ac")},
		{[]byte{'a', 0xff}, []byte("b")},
		{[]byte{0xff, 0xff}, nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, prefixEnd(tt.in))
	}
}

func TestKeysDoNotLeakAcrossAccounts(t *testing.T) {
	s := New(dbm.NewMemDB())
	require.NoError(t, s.SetData("al", "x", []byte{1}))
	require.NoError(t, s.SetData("alice", "y", []byte{1}))

	keys, err := s.Keys("al", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, keys)
}
