// Package wasmhost binds a host.Host to real WebAssembly guests through
// wazero: the capability surface is exported as the "env" host module and
// guests are driven through their run entry point.
package wasmhost

import (
	"context"
	"fmt"

	"github.com/govm-net/guestsdk/host"
	"github.com/govm-net/guestsdk/memory"
	"github.com/govm-net/guestsdk/types"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// read copies a buffer out of the calling module's memory. A bad range is
// a guest fault and traps the call.
func read(m api.Module, off, n int32) []byte {
	if n == 0 {
		return []byte{}
	}
	mem := m.Memory()
	if mem == nil {
		panic(fmt.Errorf("module %s exports no memory", m.Name()))
	}
	if off < 0 || n < 0 {
		panic(fmt.Errorf("%w: offset %d length %d", memory.ErrOutOfBounds, off, n))
	}
	buf, ok := mem.Read(uint32(off), uint32(n))
	if !ok {
		panic(fmt.Errorf("%w: offset %d length %d", memory.ErrOutOfBounds, off, n))
	}
	out := make([]byte, len(buf))
	copy(out, buf)
	return out
}

func readString(m api.Module, off, n int32) string {
	return string(read(m, off, n))
}

// write hands data to the guest in a buffer from its alloc export and
// returns the packed handle.
func write(ctx context.Context, m api.Module, data []byte) uint64 {
	off, err := allocate(ctx, m, data)
	if err != nil {
		panic(err)
	}
	return uint64(memory.Pack(int32(off), int32(len(data))))
}

func allocate(ctx context.Context, m api.Module, data []byte) (uint32, error) {
	alloc := m.ExportedFunction(types.ExportAlloc)
	if alloc == nil {
		return 0, fmt.Errorf("module %s exports no %s", m.Name(), types.ExportAlloc)
	}
	res, err := alloc.Call(ctx, uint64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", types.ExportAlloc, err)
	}
	off := uint32(res[0])
	if len(data) > 0 && !m.Memory().Write(off, data) {
		return 0, fmt.Errorf("%w: write %d bytes at %d", memory.ErrOutOfMemory, len(data), off)
	}
	return off, nil
}

func writeResult(ctx context.Context, m api.Module, r types.CallResult) uint64 {
	buf, err := types.EncodeResult(r)
	if err != nil {
		buf, _ = types.EncodeResult(types.KoErr(types.ErrSerialization))
	}
	return write(ctx, m, buf)
}

func boolToI32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// Instantiate registers the capability surface of h as the "env" host
// module of rt. Capability calls act for the innermost active call of h.
func Instantiate(ctx context.Context, rt wazero.Runtime, h *host.Host) (api.Module, error) {
	b := rt.NewHostModuleBuilder(types.ImportModule)

	b.NewFunctionBuilder().
		WithParameterNames("msg_off", "msg_len").
		WithFunc(func(_ context.Context, m api.Module, off, n int32) {
			h.Log(readString(m, off, n))
		}).
		Export(types.CapLog.Symbol())

	b.NewFunctionBuilder().
		WithParameterNames("name_off", "name_len", "data_off", "data_len").
		WithFunc(func(_ context.Context, m api.Module, nameOff, nameLen, dataOff, dataLen int32) {
			h.Emit(readString(m, nameOff, nameLen), read(m, dataOff, dataLen))
		}).
		Export(types.CapEmit.Symbol())

	b.NewFunctionBuilder().
		WithParameterNames("pattern_off", "pattern_len").
		WithFunc(func(ctx context.Context, m api.Module, off, n int32) uint64 {
			return writeResult(ctx, m, h.GetKeys(readString(m, off, n)))
		}).
		Export(types.CapGetKeys.Symbol())

	b.NewFunctionBuilder().
		WithParameterNames("key_off", "key_len", "data_off", "data_len").
		WithFunc(func(_ context.Context, m api.Module, keyOff, keyLen, dataOff, dataLen int32) {
			h.StoreData(readString(m, keyOff, keyLen), read(m, dataOff, dataLen))
		}).
		Export(types.CapStoreData.Symbol())

	b.NewFunctionBuilder().
		WithParameterNames("key_off", "key_len").
		WithFunc(func(ctx context.Context, m api.Module, off, n int32) uint64 {
			return write(ctx, m, h.LoadData(readString(m, off, n)))
		}).
		Export(types.CapLoadData.Symbol())

	b.NewFunctionBuilder().
		WithParameterNames("key_off", "key_len").
		WithFunc(func(_ context.Context, m api.Module, off, n int32) {
			h.RemoveData(readString(m, off, n))
		}).
		Export(types.CapRemoveData.Symbol())

	b.NewFunctionBuilder().
		WithParameterNames("id_off", "id_len").
		WithFunc(func(ctx context.Context, m api.Module, off, n int32) uint64 {
			return write(ctx, m, h.LoadAsset(readString(m, off, n)))
		}).
		Export(types.CapLoadAsset.Symbol())

	b.NewFunctionBuilder().
		WithParameterNames("id_off", "id_len", "value_off", "value_len").
		WithFunc(func(_ context.Context, m api.Module, idOff, idLen, valOff, valLen int32) {
			h.StoreAsset(readString(m, idOff, idLen), read(m, valOff, valLen))
		}).
		Export(types.CapStoreAsset.Symbol())

	b.NewFunctionBuilder().
		WithParameterNames("id_off", "id_len").
		WithFunc(func(ctx context.Context, m api.Module, off, n int32) uint64 {
			return write(ctx, m, h.GetAccountContract(readString(m, off, n)))
		}).
		Export(types.CapGetAccountContract.Symbol())

	b.NewFunctionBuilder().
		WithParameterNames("id_off", "id_len", "method_off", "method_len").
		WithFunc(func(_ context.Context, m api.Module, idOff, idLen, mOff, mLen int32) int32 {
			return boolToI32(h.IsCallable(readString(m, idOff, idLen), readString(m, mOff, mLen)))
		}).
		Export(types.CapIsCallable.Symbol())

	b.NewFunctionBuilder().
		WithParameterNames("pk_off", "pk_len", "data_off", "data_len", "sig_off", "sig_len").
		WithFunc(func(_ context.Context, m api.Module, pkOff, pkLen, dataOff, dataLen, sigOff, sigLen int32) int32 {
			return boolToI32(h.Verify(read(m, pkOff, pkLen), read(m, dataOff, dataLen), read(m, sigOff, sigLen)))
		}).
		Export(types.CapVerify.Symbol())

	b.NewFunctionBuilder().
		WithParameterNames("account_off", "account_len", "method_off", "method_len", "data_off", "data_len").
		WithFunc(func(ctx context.Context, m api.Module, accOff, accLen, mOff, mLen, dataOff, dataLen int32) uint64 {
			res := h.Call(readString(m, accOff, accLen), readString(m, mOff, mLen), read(m, dataOff, dataLen))
			return writeResult(ctx, m, res)
		}).
		Export(types.CapCall.Symbol())

	b.NewFunctionBuilder().
		WithParameterNames("account_off", "account_len", "code_off", "code_len", "method_off", "method_len", "data_off", "data_len").
		WithFunc(func(ctx context.Context, m api.Module, accOff, accLen, codeOff, codeLen, mOff, mLen, dataOff, dataLen int32) uint64 {
			res := h.SCall(readString(m, accOff, accLen), read(m, codeOff, codeLen),
				readString(m, mOff, mLen), read(m, dataOff, dataLen))
			return writeResult(ctx, m, res)
		}).
		Export(types.CapSCall.Symbol())

	b.NewFunctionBuilder().
		WithParameterNames("data_off", "data_len").
		WithFunc(func(ctx context.Context, m api.Module, off, n int32) uint64 {
			return write(ctx, m, h.Sha256(read(m, off, n)))
		}).
		Export(types.CapSha256.Symbol())

	b.NewFunctionBuilder().
		WithParameterNames("max").
		WithFunc(func(_ context.Context, limit uint64) uint64 {
			return h.Drand(limit)
		}).
		Export(types.CapDrand.Symbol())

	mod, err := b.Instantiate(ctx)
	if err != nil {
		return nil, fmt.Errorf("instantiate %s module: %w", types.ImportModule, err)
	}
	Logger().Debug("host module ready")
	return mod, nil
}
