package host

import (
	"encoding/hex"
	"testing"

	"github.com/govm-net/guestsdk/sdk"
	"github.com/govm-net/guestsdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runAs executes fn as method "run" of account owner.
func runAs(t *testing.T, h *Host, owner string, fn func(env *sdk.Env)) {
	h.RegisterMethod(owner, "run", func(env *sdk.Env, _ types.CallContext, _ []byte) ([]byte, error) {
		fn(env)
		return nil, nil
	})
	res := h.Execute(h.RootContext("user", owner, "run"), nil)
	require.True(t, res.Success, string(res.Data))
}

func TestData(t *testing.T) {
	h := newTestHost(t, nil)
	runAs(t, h, "app", func(env *sdk.Env) {
		assert.Empty(t, env.LoadData("k"))
		env.StoreData("k", []byte("v"))
		assert.Equal(t, []byte("v"), env.LoadData("k"))
		env.StoreData("gone", []byte("x"))
		env.RemoveData("gone")
		env.StoreData("empty", []byte("x"))
		env.StoreData("empty", nil)
	})
	assert.Equal(t, []byte("v"), h.AccountData("app", "k"))
	assert.Equal(t, []string{"k"}, h.AccountKeys("app"))
	assert.Empty(t, h.AccountKeys("user"))
}

func TestGetKeys(t *testing.T) {
	h := newTestHost(t, nil)
	for _, k := range []string{"abc", "abd", "xyz"} {
		h.SetAccountData("app", k, []byte{1})
	}
	h.SetAccountData("other", "abe", []byte{1})

	runAs(t, h, "app", func(env *sdk.Env) {
		keys, err := env.GetKeys("ab*")
		require.NoError(t, err)
		assert.Equal(t, []string{"abc", "abd"}, keys)

		keys, err = env.GetKeys("*")
		require.NoError(t, err)
		assert.Equal(t, []string{"abc", "abd", "xyz"}, keys)

		_, err = env.GetKeys("ab")
		assert.EqualError(t, err, "last char of search pattern must be '*'")
	})
}

func TestAssetInversion(t *testing.T) {
	h := newTestHost(t, nil)
	h.SetAccountAsset("alice", "xcoin", []byte{0x91, 0x05})

	runAs(t, h, "xcoin", func(env *sdk.Env) {
		assert.Equal(t, []byte{0x91, 0x05}, env.LoadAsset("alice"))
		env.StoreAsset("bob", []byte{0x91, 0x07})
		assert.Empty(t, env.LoadAsset("carol"))
	})
	assert.Equal(t, []byte{0x91, 0x07}, h.AccountAsset("bob", "xcoin"))
	assert.Empty(t, h.AccountAsset("xcoin", "bob"))
}

func TestCrypto(t *testing.T) {
	h := newTestHost(t, nil)
	pk := types.NewEcdsaPublicKey([]byte{0x04, 0x01})

	runAs(t, h, "app", func(env *sdk.Env) {
		assert.True(t, env.Verify(pk, []byte("data"), []byte{1}))
		assert.False(t, env.Verify(pk, []byte("data"), []byte{0}))
		assert.False(t, env.Verify(pk, []byte("data"), nil))
		assert.False(t, env.Verify(types.PublicKey{Type: "rsa"}, []byte("data"), []byte{1}))

		assert.Equal(t,
			"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
			hex.EncodeToString(env.Sha256([]byte("abc"))))
		assert.Equal(t, uint64(5), env.Drand(10))
		assert.Equal(t, uint64(0), env.Drand(1))
	})
	assert.False(t, h.Verify([]byte{0xc1}, nil, []byte{1}))
}

func TestLogAndEmit(t *testing.T) {
	h := newTestHost(t, nil)
	runAs(t, h, "app", func(env *sdk.Env) {
		env.Log("hello")
		env.Emit("transfer", []byte{1, 2})
	})
	assert.Equal(t, []LogEntry{{Owner: "app", Message: "hello"}}, h.Logs())
	assert.Equal(t, []Event{{Owner: "app", Name: "transfer", Data: []byte{1, 2}}}, h.Events())
}

func TestContractQueries(t *testing.T) {
	h := newTestHost(t, nil)
	h.SetAccountContract("B", []byte{0xca, 0xfe})
	h.RegisterMethod("B", "b", func(*sdk.Env, types.CallContext, []byte) ([]byte, error) {
		return nil, nil
	})

	runAs(t, h, "app", func(env *sdk.Env) {
		assert.Equal(t, []byte{0xca, 0xfe}, env.GetAccountContract("B"))
		assert.Empty(t, env.GetAccountContract("nobody"))
		assert.True(t, env.IsCallable("B", "b"))
		assert.False(t, env.IsCallable("B", "c"))
		assert.True(t, env.IsCallable("app", "run"))
	})
	assert.Equal(t, []string{"B:b", "app:run"}, h.Methods())
}

func TestAccountAssetAs(t *testing.T) {
	h := newTestHost(t, nil)
	require.NoError(t, SetAccountAssetAs(h, "alice", "adv", uint64(42)))
	assert.Equal(t, uint64(42), AccountAssetAs[uint64](h, "alice", "adv"))
	assert.Equal(t, uint64(0), AccountAssetAs[uint64](h, "bob", "adv"))

	h.SetAccountAsset("carol", "adv", []byte{0xc1})
	assert.Equal(t, uint64(0), AccountAssetAs[uint64](h, "carol", "adv"))
}
