package wasmhost

import (
	"context"
	"fmt"

	"github.com/govm-net/guestsdk/host"
	"github.com/govm-net/guestsdk/memory"
	"github.com/govm-net/guestsdk/sdk"
	"github.com/govm-net/guestsdk/types"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

// Guest is an instantiated guest module exporting memory, alloc and run.
type Guest struct {
	mod api.Module
	run api.Function
}

// NewGuest compiles and instantiates code as module name. The env host
// module must already be instantiated on rt.
func NewGuest(ctx context.Context, rt wazero.Runtime, name string, code []byte) (*Guest, error) {
	compiled, err := rt.CompileModule(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("compile guest %s: %w", name, err)
	}
	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		return nil, fmt.Errorf("instantiate guest %s: %w", name, err)
	}
	g := &Guest{mod: mod, run: mod.ExportedFunction(types.ExportRun)}
	if g.run == nil {
		mod.Close(ctx)
		return nil, fmt.Errorf("guest %s exports no %s", name, types.ExportRun)
	}
	if mod.ExportedFunction(types.ExportAlloc) == nil || mod.Memory() == nil {
		mod.Close(ctx)
		return nil, fmt.Errorf("guest %s must export %s and %s", name, types.ExportAlloc, types.ExportMemory)
	}
	return g, nil
}

// Name returns the module name.
func (g *Guest) Name() string {
	return g.mod.Name()
}

// Close releases the module instance.
func (g *Guest) Close(ctx context.Context) error {
	return g.mod.Close(ctx)
}

// RunRaw writes rawCtx and args into guest memory, calls run and returns a
// copy of the buffer behind the returned handle.
func (g *Guest) RunRaw(ctx context.Context, rawCtx, args []byte) ([]byte, error) {
	ctxOff, err := allocate(ctx, g.mod, rawCtx)
	if err != nil {
		return nil, err
	}
	argsOff, err := allocate(ctx, g.mod, args)
	if err != nil {
		return nil, err
	}
	res, err := g.run.Call(ctx,
		uint64(ctxOff), uint64(len(rawCtx)),
		uint64(argsOff), uint64(len(args)))
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", g.Name(), types.ExportRun, err)
	}
	h := memory.Handle(res[0])
	off, n := h.Offset(), h.Len()
	if off < 0 || n < 0 {
		return nil, fmt.Errorf("%w: result handle %s", memory.ErrOutOfBounds, h)
	}
	buf, ok := g.mod.Memory().Read(uint32(off), uint32(n))
	if !ok {
		return nil, fmt.Errorf("%w: result handle %s", memory.ErrOutOfBounds, h)
	}
	out := make([]byte, len(buf))
	copy(out, buf)
	return out, nil
}

// Run executes the guest entry point for callCtx.
func (g *Guest) Run(ctx context.Context, callCtx types.CallContext, args []byte) (types.CallResult, error) {
	raw, err := types.EncodeCall(callCtx)
	if err != nil {
		return types.CallResult{}, err
	}
	buf, err := g.RunRaw(ctx, raw, args)
	if err != nil {
		return types.CallResult{}, err
	}
	return types.DecodeResult(buf)
}

// Handler adapts the guest into a method handler. A trap fails the call
// with the trap message.
func (g *Guest) Handler(ctx context.Context) sdk.Handler {
	return func(_ *sdk.Env, callCtx types.CallContext, args []byte) ([]byte, error) {
		res, err := g.Run(ctx, callCtx, args)
		if err != nil {
			Logger().Warn("guest trapped", zap.String("guest", g.Name()), zap.Error(err))
			return nil, err
		}
		if !res.Success {
			return nil, res.Err()
		}
		return res.Data, nil
	}
}

// Register binds methods on account to the guest.
func Register(ctx context.Context, h *host.Host, account string, g *Guest, methods ...string) {
	handler := g.Handler(ctx)
	for _, m := range methods {
		h.RegisterMethod(account, m, handler)
	}
}
