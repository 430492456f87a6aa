package sdk_test

import (
	"crypto/sha256"
	"errors"
	"testing"

	"github.com/govm-net/guestsdk/host"
	"github.com/govm-net/guestsdk/memory"
	"github.com/govm-net/guestsdk/sdk"
	"github.com/govm-net/guestsdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	Age  uint64 `msgpack:"age"`
	Name string `msgpack:"name"`
}

func newEnv(t *testing.T) (*host.Host, *sdk.Env) {
	h, err := host.New(nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		h.Close()
	})
	return h, h.Env()
}

func decodeRun(t *testing.T, mem *memory.Arena, out memory.Handle) types.CallResult {
	buf, err := mem.ReadHandle(out)
	require.NoError(t, err)
	res, err := types.DecodeResult(buf)
	require.NoError(t, err)
	return res
}

func TestAppMethods(t *testing.T) {
	app := sdk.NewApp().
		Register("b", sdk.Method(func(*sdk.Env, types.CallContext, types.Packed) (types.Packed, error) { return nil, nil })).
		Register("a", sdk.Method(func(*sdk.Env, types.CallContext, types.Packed) (types.Packed, error) { return nil, nil }))
	assert.Equal(t, []string{"a", "b"}, app.Methods())
}

func TestRunEntryPoint(t *testing.T) {
	_, env := newEnv(t)
	mem := env.Memory()
	app := sdk.NewApp().Register("foo", sdk.Method(func(_ *sdk.Env, ctx types.CallContext, p person) (person, error) {
		p.Age++
		p.Name = ctx.Caller
		return p, nil
	}))

	rawCtx, err := types.EncodeCall(types.CallContext{Network: "skynet", Owner: "app", Caller: "alice", Method: "foo", Origin: "alice"})
	require.NoError(t, err)
	args, err := types.SerializeNamed(person{Age: 33, Name: "Cole"})
	require.NoError(t, err)

	ctxOff := mem.Write(rawCtx)
	argsOff := mem.Write(args)
	res := decodeRun(t, mem, app.Run(env, ctxOff, int32(len(rawCtx)), argsOff, int32(len(args))))
	require.True(t, res.Success, string(res.Data))

	var got person
	require.NoError(t, types.Deserialize(res.Data, &got))
	assert.Equal(t, person{Age: 34, Name: "alice"}, got)
}

func TestRunMalformedInput(t *testing.T) {
	_, env := newEnv(t)
	mem := env.Memory()
	app := sdk.NewApp()

	off := mem.Write([]byte{0xa3, 'f', 'o', 'o'})
	res := decodeRun(t, mem, app.Run(env, off, 4, off, 0))
	assert.Equal(t, types.Ko("malformed input"), res)

	res = decodeRun(t, mem, app.Run(env, off, 1<<20, off, 0))
	assert.Equal(t, types.Ko("malformed input"), res)
}

func TestRunMethodNotFound(t *testing.T) {
	_, env := newEnv(t)
	mem := env.Memory()
	rawCtx, err := types.EncodeCall(types.CallContext{Method: "baz"})
	require.NoError(t, err)
	off := mem.Write(rawCtx)

	res := decodeRun(t, mem, sdk.NewApp().Run(env, off, int32(len(rawCtx)), off, 0))
	assert.Equal(t, types.Ko("method not found"), res)
}

func TestMethodAdapter(t *testing.T) {
	_, env := newEnv(t)
	echo := sdk.Method(func(_ *sdk.Env, _ types.CallContext, p types.Packed) (types.Packed, error) {
		return p, nil
	})
	out, err := echo(env, types.CallContext{}, []byte{0xc1, 0xc1})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xc1, 0xc1}, out)

	typed := sdk.Method(func(_ *sdk.Env, _ types.CallContext, n uint64) (uint64, error) {
		if n == 0 {
			return 0, errors.New("zero")
		}
		return n * 2, nil
	})
	out, err = typed(env, types.CallContext{}, []byte{0x05})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a}, out)

	_, err = typed(env, types.CallContext{}, []byte{0x00})
	assert.EqualError(t, err, "zero")

	_, err = typed(env, types.CallContext{}, []byte{0xa1, 'x'})
	assert.ErrorIs(t, err, types.ErrBadArguments)

	_, err = typed(env, types.CallContext{}, nil)
	assert.ErrorIs(t, err, types.ErrBadArguments)
}

func TestCallFailureIsWasmError(t *testing.T) {
	h, _ := newEnv(t)
	h.RegisterMethod("B", "fail", func(*sdk.Env, types.CallContext, []byte) ([]byte, error) {
		return nil, types.ErrAccountLocked
	})
	h.RegisterMethod("A", "a", func(env *sdk.Env, _ types.CallContext, _ []byte) ([]byte, error) {
		_, err := env.Call("B", "fail", nil)
		var werr *types.WasmError
		require.True(t, errors.As(err, &werr))
		assert.ErrorIs(t, err, types.ErrAccountLocked)

		_, err = env.Call("B", "missing", nil)
		assert.ErrorIs(t, err, types.ErrMethodNotFound)
		return nil, nil
	})
	res := h.Execute(h.RootContext("user", "A", "a"), nil)
	assert.True(t, res.Success)
}

func TestTypedData(t *testing.T) {
	h, _ := newEnv(t)
	h.RegisterMethod("app", "run", func(env *sdk.Env, _ types.CallContext, _ []byte) ([]byte, error) {
		p, err := sdk.LoadDataAs[person](env, "p")
		require.NoError(t, err)
		assert.Equal(t, person{}, p)

		require.NoError(t, sdk.StoreDataAs(env, "p", person{Age: 1, Name: "x"}))
		p, err = sdk.LoadDataAs[person](env, "p")
		require.NoError(t, err)
		assert.Equal(t, person{Age: 1, Name: "x"}, p)

		env.StoreData("bad", []byte{0xc1})
		_, err = sdk.LoadDataAs[person](env, "bad")
		assert.Error(t, err)

		require.NoError(t, sdk.StoreAssetAs(env, "alice", uint64(9)))
		assert.Equal(t, uint64(9), sdk.LoadAssetAs[uint64](env, "alice"))
		return nil, nil
	})
	res := h.Execute(h.RootContext("user", "app", "run"), nil)
	require.True(t, res.Success, string(res.Data))
	assert.Equal(t, []byte{0x09}, h.AccountAsset("alice", "app"))
}

func TestHashData(t *testing.T) {
	h, _ := newEnv(t)
	h.RegisterMethod("app", "run", func(env *sdk.Env, _ types.CallContext, args []byte) ([]byte, error) {
		sum, err := sdk.HashData(env, types.HashSha256, args)
		require.NoError(t, err)
		want := sha256.Sum256(args)
		assert.Equal(t, want[:], sum.Digest())
		assert.Equal(t, byte(0x12), sum.Bytes()[0])

		id, err := sdk.HashData(env, types.HashIdentity, args)
		require.NoError(t, err)
		assert.Equal(t, args, id.Digest())
		return types.Serialize(sum)
	})
	res := h.Execute(h.RootContext("user", "app", "run"), []byte("hello"))
	require.True(t, res.Success, string(res.Data))
	assert.Len(t, res.Data, 2+2+32)
}
