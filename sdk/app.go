package sdk

import (
	"errors"
	"sort"

	"github.com/govm-net/guestsdk/memory"
	"github.com/govm-net/guestsdk/types"
	"go.uber.org/zap"
)

// Handler serves one method call. ctx is the identity of this call frame.
type Handler func(env *Env, ctx types.CallContext, args []byte) ([]byte, error)

// Method adapts a typed function into a Handler. Arguments are decoded from
// MessagePack and the return value encoded as a named map. types.Packed
// arguments and results pass through undecoded.
func Method[A, R any](fn func(env *Env, ctx types.CallContext, args A) (R, error)) Handler {
	return func(env *Env, ctx types.CallContext, raw []byte) ([]byte, error) {
		var args A
		if p, ok := any(&args).(*types.Packed); ok {
			*p = append(types.Packed{}, raw...)
		} else if err := types.Deserialize(raw, &args); err != nil {
			return nil, types.ErrBadArguments
		}
		ret, err := fn(env, ctx, args)
		if err != nil {
			return nil, err
		}
		if p, ok := any(ret).(types.Packed); ok {
			return []byte(p), nil
		}
		return types.SerializeNamed(ret)
	}
}

// App is a guest's method table.
type App struct {
	methods map[string]Handler
}

// NewApp creates an empty method table.
func NewApp() *App {
	return &App{methods: make(map[string]Handler)}
}

// Register binds name to h, replacing any previous handler.
func (a *App) Register(name string, h Handler) *App {
	a.methods[name] = h
	return a
}

// Methods returns the registered method names, sorted.
func (a *App) Methods() []string {
	names := make([]string, 0, len(a.methods))
	for name := range a.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Handle dispatches by ctx.Method.
func (a *App) Handle(env *Env, ctx types.CallContext, args []byte) ([]byte, error) {
	h, ok := a.methods[ctx.Method]
	if !ok {
		return nil, types.ErrMethodNotFound
	}
	return h(env, ctx, args)
}

// Run is the guest entry point: it decodes the context and args from guest
// memory, dispatches and returns the handle of the encoded CallResult.
func (a *App) Run(env *Env, ctxOff, ctxLen, argsOff, argsLen int32) memory.Handle {
	var res types.CallResult
	ctx, err := a.decodeInput(env, ctxOff, ctxLen)
	if err != nil {
		Logger().Debug("malformed input", zap.Error(err))
		res = types.KoErr(types.ErrMalformedInput)
	} else {
		args, err := env.mem.Read(argsOff, argsLen)
		if err != nil {
			res = types.KoErr(types.ErrBadArguments)
		} else {
			data, err := a.Handle(env, ctx, args)
			if err != nil {
				res = types.KoErr(err)
			} else {
				res = types.Ok(data)
			}
		}
	}
	buf, err := types.EncodeResult(res)
	if err != nil {
		buf, _ = types.EncodeResult(types.KoErr(types.ErrSerialization))
	}
	return env.mem.WriteHandle(buf)
}

func (a *App) decodeInput(env *Env, off, n int32) (types.CallContext, error) {
	raw, err := env.mem.View(off, n)
	if err != nil {
		return types.CallContext{}, errors.Join(types.ErrMalformedInput, err)
	}
	return types.DecodeCall(raw)
}
