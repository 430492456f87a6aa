package host

import (
	"math"

	"github.com/govm-net/guestsdk/sdk"
	"github.com/govm-net/guestsdk/types"
	"go.uber.org/zap"
)

// Invoke calls method on callee as a nested call of the current frame.
// A non-empty expectedCode must equal the callee's contract code. The
// current context is restored on every exit path.
func (h *Host) Invoke(callee, method string, args, expectedCode []byte) types.CallResult {
	if len(expectedCode) > 0 && !h.contractMatches(callee, expectedCode) {
		return types.KoErr(types.ErrIncompatibleContract)
	}
	handler, ok := h.methods[methodKey(callee, method)]
	if !ok {
		return types.KoErr(types.ErrMethodNotFound)
	}
	parent := h.stack.current()
	if parent.Depth == math.MaxUint16 ||
		(h.cfg.MaxCallDepth > 0 && int(parent.Depth)+1 > h.cfg.MaxCallDepth) {
		return types.KoErr(types.ErrCallDepthExceeded)
	}
	return h.dispatch(parent.Child(callee, method), handler, args)
}

// Execute performs an external call with ctx as the root context, dispatching
// to ctx.Method on ctx.Owner. Guest memory used by the call is reclaimed
// once the result is copied out.
func (h *Host) Execute(ctx types.CallContext, args []byte) types.CallResult {
	handler, ok := h.methods[methodKey(ctx.Owner, ctx.Method)]
	if !ok {
		return types.KoErr(types.ErrMethodNotFound)
	}
	mark := h.arena.Mark()
	defer h.arena.Release(mark)
	return copyResult(h.dispatch(ctx, handler, args))
}

// RootContext returns a depth 0 context for an external call from origin to
// method on owner on the configured network.
func (h *Host) RootContext(origin, owner, method string) types.CallContext {
	return types.CallContext{
		Network: h.cfg.Network,
		Owner:   owner,
		Caller:  origin,
		Method:  method,
		Origin:  origin,
	}
}

// RunGuest runs app's entry point as the root call ctx.
func (h *Host) RunGuest(app *sdk.App, ctx types.CallContext, args []byte) types.CallResult {
	raw, err := types.EncodeCall(ctx)
	if err != nil {
		return types.KoErr(err)
	}
	return h.RunGuestRaw(app, ctx, raw, args)
}

// RunGuestRaw is RunGuest with a pre-encoded context. ctx is the frame the
// host acts for while the guest runs; rawCtx is what the guest decodes.
func (h *Host) RunGuestRaw(app *sdk.App, ctx types.CallContext, rawCtx, args []byte) types.CallResult {
	mark := h.arena.Mark()
	defer h.arena.Release(mark)
	return copyResult(h.dispatch(ctx, func(env *sdk.Env, _ types.CallContext, args []byte) ([]byte, error) {
		return h.enter(app, env, rawCtx, args)
	}, args))
}

// appHandler reaches app through its entry point.
func (h *Host) appHandler(app *sdk.App) sdk.Handler {
	return func(env *sdk.Env, ctx types.CallContext, args []byte) ([]byte, error) {
		raw, err := types.EncodeCall(ctx)
		if err != nil {
			return nil, err
		}
		return h.enter(app, env, raw, args)
	}
}

// enter writes the call input into guest memory, runs the entry point and
// decodes the returned result.
func (h *Host) enter(app *sdk.App, env *sdk.Env, rawCtx, args []byte) ([]byte, error) {
	ctxOff := h.arena.Write(rawCtx)
	argsOff := h.arena.Write(args)
	out := app.Run(env, ctxOff, int32(len(rawCtx)), argsOff, int32(len(args)))
	buf, err := h.handle(out)
	if err != nil {
		panic(err)
	}
	res, err := types.DecodeResult(buf)
	if err != nil {
		return nil, types.ErrDeserialization
	}
	if !res.Success {
		return nil, res.Err()
	}
	return res.Data, nil
}

func (h *Host) dispatch(ctx types.CallContext, handler sdk.Handler, args []byte) (res types.CallResult) {
	h.stack.push(ctx)
	frame := h.tracer.begin(ctx)
	defer func() {
		h.stack.pop()
		h.tracer.end(frame, res.Success)
		h.logger.Debug("call",
			zap.String("owner", ctx.Owner),
			zap.String("caller", ctx.Caller),
			zap.String("method", ctx.Method),
			zap.Uint16("depth", ctx.Depth),
			zap.Bool("success", res.Success))
	}()

	data, err := handler(h.env, ctx, args)
	if err != nil {
		return types.KoErr(err)
	}
	return types.Ok(data)
}

// copyResult detaches r from guest memory.
func copyResult(r types.CallResult) types.CallResult {
	data := make([]byte, len(r.Data))
	copy(data, r.Data)
	r.Data = data
	return r
}
