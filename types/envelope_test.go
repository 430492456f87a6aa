package types

import (
	"encoding/hex"
	"testing"

	"github.com/shamaton/msgpack/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCaller = "QmYHnEQLdf5h7KYbjFPuHSRk2SPgdXrJWFh5W696HPfq7i"

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	buf, err := hex.DecodeString(s)
	require.NoError(t, err)
	return buf
}

// person keeps the field order of the reference vector.
type person struct {
	Age  uint64 `msgpack:"age"`
	Name string `msgpack:"name"`
}

func TestEncodeResultSuccessVector(t *testing.T) {
	data, err := SerializeNamed(person{Age: 33, Name: "Cole"})
	require.NoError(t, err)
	assert.Equal(t, "82a361676521a46e616d65a4436f6c65", hex.EncodeToString(data))

	buf, err := EncodeResult(Ok(data))
	require.NoError(t, err)
	assert.Equal(t, "92c3c41082a361676521a46e616d65a4436f6c65", hex.EncodeToString(buf))
}

func TestEncodeResultFailureVector(t *testing.T) {
	buf, err := EncodeResult(Ko("bad args"))
	require.NoError(t, err)
	assert.Equal(t, "92c2c4086261642061726773", hex.EncodeToString(buf))
}

func TestResultRoundTrip(t *testing.T) {
	results := []CallResult{
		Ok([]byte{0x22}),
		Ok(nil),
		Ko("bad args"),
		Ko(""),
		KoErr(ErrMethodNotFound),
	}
	for _, r := range results {
		buf, err := EncodeResult(r)
		require.NoError(t, err)

		got, err := DecodeResult(buf)
		require.NoError(t, err)
		assert.Equal(t, r.Success, got.Success)
		assert.Equal(t, string(r.Data), string(got.Data))
	}
}

func TestDecodeResultMalformed(t *testing.T) {
	for _, in := range []string{"", "c0", "91c3", "93c3c400c0", "a3666f6f"} {
		buf, _ := hex.DecodeString(in)
		_, err := DecodeResult(buf)
		assert.ErrorIs(t, err, ErrDeserialization, "input %q", in)
	}
}

func TestCallContextRoundTrip(t *testing.T) {
	contexts := []CallContext{
		{},
		{Depth: 0, Network: "skynet", Owner: testCaller, Caller: testCaller, Method: "foo", Origin: testCaller},
		{Depth: 65535, Network: "n", Owner: "a", Caller: "b", Method: "transfer", Origin: "c"},
	}
	for _, ctx := range contexts {
		buf, err := EncodeCall(ctx)
		require.NoError(t, err)

		n, ok := MapLen(buf)
		require.True(t, ok, "context must be encoded by name")
		assert.Equal(t, 6, n)

		got, err := DecodeCall(buf)
		require.NoError(t, err)
		assert.Equal(t, ctx, got)
	}
}

func TestDecodeCallPositional(t *testing.T) {
	ctx := CallContext{Depth: 2, Network: "skynet", Owner: "owner", Caller: "caller", Method: "m", Origin: "origin"}
	buf, err := Serialize(ctx)
	require.NoError(t, err)

	n, ok := ArrayLen(buf)
	require.True(t, ok)
	assert.Equal(t, 6, n)

	got, err := DecodeCall(buf)
	require.NoError(t, err)
	assert.Equal(t, ctx, got)
}

func TestDecodeCallMalformed(t *testing.T) {
	wrongArity, err := Serialize([]string{"skynet", "owner"})
	require.NoError(t, err)

	badUTF8, err := EncodeCall(CallContext{Method: string([]byte{240, 159, 146})})
	require.NoError(t, err)

	namedDepth := func(depth any) []byte {
		buf, err := msgpack.Marshal(map[string]any{
			"depth": depth, "network": "skynet", "owner": "a",
			"caller": "a", "method": "foo", "origin": "a",
		})
		require.NoError(t, err)
		return buf
	}

	tests := []struct {
		name string
		buf  []byte
	}{
		{"empty", nil},
		{"scalar", []byte{0x2a}},
		{"wrong arity", wrongArity},
		{"invalid utf8", badUTF8},
		{"empty map", mustHex(t, "80")},
		{"unknown key only", mustHex(t, "81a3666f6f01")},
		{"missing keys", mustHex(t, "81a66d6574686f64a3666f6f")},
		{"repeated key", mustHex(t, "86a5646570746800a76e6574776f726ba6736b796e6574a56f776e6572a161a663616c6c6572a161a66d6574686f64a3666f6fa66d6574686f64a3666f6f")},
		{"unknown key", mustHex(t, "86a5646570746800a76e6574776f726ba6736b796e6574a56f776e6572a161a663616c6c6572a161a66d6574686f64a3666f6fa6736f75726365a161")},
		{"depth too large", mustHex(t, "96ce00010000a6736b796e6574a161a161a3666f6fa161")},
		{"negative depth", mustHex(t, "96ffa6736b796e6574a161a161a3666f6fa161")},
		{"named depth too large", namedDepth(uint32(65536))},
		{"named depth string", namedDepth("1")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCall(tt.buf)
			assert.ErrorIs(t, err, ErrDeserialization)
		})
	}
}

func TestDecodeCallMaxDepth(t *testing.T) {
	ctx, err := DecodeCall(mustHex(t, "96cdffffa6736b796e6574a161a161a3666f6fa161"))
	require.NoError(t, err)
	assert.Equal(t, CallContext{Depth: 65535, Network: "skynet", Owner: "a", Caller: "a", Method: "foo", Origin: "a"}, ctx)
}

func TestCallContextChild(t *testing.T) {
	root := CallContext{Depth: 0, Network: "skynet", Owner: "A", Caller: "user", Method: "run", Origin: "user"}
	child := root.Child("B", "step")

	assert.Equal(t, CallContext{Depth: 1, Network: "skynet", Owner: "B", Caller: "A", Method: "step", Origin: "user"}, child)
	// the parent is a value and is left untouched
	assert.Equal(t, "A", root.Owner)
}

func TestWasmErrorIs(t *testing.T) {
	r := KoErr(ErrMethodNotFound)
	err := r.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMethodNotFound)
	assert.NotErrorIs(t, err, ErrMalformedInput)
	assert.NoError(t, Ok(nil).Err())
}

func TestPublicKey(t *testing.T) {
	pk := NewEcdsaPublicKey([]byte{1, 2, 3})
	buf, err := EncodePublicKey(pk)
	require.NoError(t, err)

	got, err := DecodePublicKey(buf)
	require.NoError(t, err)
	assert.Equal(t, pk, got)

	other, err := EncodePublicKey(PublicKey{Type: "ed25519", Curve: CurveSecp384r1})
	require.NoError(t, err)
	_, err = DecodePublicKey(other)
	assert.ErrorIs(t, err, ErrDeserialization)
}

func TestCapabilitySymbols(t *testing.T) {
	caps := Capabilities()
	assert.Len(t, caps, 15)
	seen := map[string]bool{}
	for _, c := range caps {
		sym := c.Symbol()
		assert.NotEmpty(t, sym)
		assert.False(t, seen[sym], "duplicate symbol %s", sym)
		seen[sym] = true
	}
	assert.Equal(t, "hf_s_call", CapSCall.Symbol())
	assert.Equal(t, "unknown", Capability(99).String())
}
