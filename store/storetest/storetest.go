// Package storetest checks a store.Store implementation against the shared
// entity semantics.
package storetest

import (
	"testing"

	"github.com/govm-net/guestsdk/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises a fresh store returned by open.
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	t.Run("LazyAccounts", func(t *testing.T) {
		s := open(t)
		ok, err := s.HasAccount("alice")
		require.NoError(t, err)
		assert.False(t, ok)

		v, err := s.Data("alice", "k")
		require.NoError(t, err)
		assert.Nil(t, v)

		require.NoError(t, s.SetData("alice", "k", []byte("v")))
		ok, err = s.HasAccount("alice")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Data", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.SetData("alice", "k", []byte("v1")))
		require.NoError(t, s.SetData("alice", "k", []byte("v2")))
		v, err := s.Data("alice", "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), v)

		v, err = s.Data("bob", "k")
		require.NoError(t, err)
		assert.Nil(t, v)

		require.NoError(t, s.SetData("alice", "k", nil))
		v, err = s.Data("alice", "k")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("Keys", func(t *testing.T) {
		s := open(t)
		for _, k := range []string{"xyz", "abc", "abd", "b"} {
			require.NoError(t, s.SetData("alice", k, []byte{1}))
		}
		require.NoError(t, s.SetData("bob", "abe", []byte{1}))

		keys, err := s.Keys("alice", "ab")
		require.NoError(t, err)
		assert.Equal(t, []string{"abc", "abd"}, keys)

		keys, err = s.Keys("alice", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"abc", "abd", "b", "xyz"}, keys)

		keys, err = s.Keys("carol", "")
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("Assets", func(t *testing.T) {
		s := open(t)
		v, err := s.Asset("xcoin", "alice")
		require.NoError(t, err)
		assert.Nil(t, v)

		require.NoError(t, s.SetAsset("xcoin", "alice", []byte{0x91, 0x64}))
		v, err = s.Asset("xcoin", "alice")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x91, 0x64}, v)

		v, err = s.Asset("alice", "xcoin")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("Contract", func(t *testing.T) {
		s := open(t)
		code, err := s.Contract("app")
		require.NoError(t, err)
		assert.Nil(t, code)

		require.NoError(t, s.SetContract("app", []byte{0xca, 0xfe}))
		code, err = s.Contract("app")
		require.NoError(t, err)
		assert.Equal(t, []byte{0xca, 0xfe}, code)

		ok, err := s.HasAccount("app")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Copies", func(t *testing.T) {
		s := open(t)
		in := []byte("value")
		require.NoError(t, s.SetData("alice", "k", in))
		in[0] = 'X'
		out, err := s.Data("alice", "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("value"), out)
		out[0] = 'Y'
		out, err = s.Data("alice", "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("value"), out)
	})
}
