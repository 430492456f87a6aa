// Package mockasset is a ledger asset contract written against the sdk:
// per-holder lockable balances kept in each holder's asset records.
package mockasset

import (
	"math"

	"github.com/govm-net/guestsdk/host"
	"github.com/govm-net/guestsdk/sdk"
	"github.com/govm-net/guestsdk/tai"
	"github.com/govm-net/guestsdk/types"
)

// Transfer failure messages.
var (
	ErrSourceLocked      = types.NewWasmError("source account locked")
	ErrDestinationLocked = types.NewWasmError("destination account locked")
)

// unit is the encoded empty return value.
var unit = types.Packed{0xc0}

// Transfer moves units between holders. Withdraw and Full locks block the
// source, Deposit and Full locks block the destination. A failure on the
// destination side leaves the source already debited.
var Transfer = NewTransfer(false)

// NewTransfer returns the transfer handler. An atomic transfer checks the
// source lock, the balance and the destination lock before writing either
// record. In both modes a credit that would overflow the destination fails
// before the debit.
func NewTransfer(atomic bool) sdk.Handler {
	return sdk.Method(func(env *sdk.Env, _ types.CallContext, args tai.AssetTransferArgs) (types.Packed, error) {
		from := sdk.LoadAssetAs[tai.Asset](env, args.From)
		if !from.CanWithdraw() {
			return nil, ErrSourceLocked
		}
		if from.Units < args.Units {
			return nil, types.ErrInsufficientFunds
		}
		if args.From != args.To {
			to := sdk.LoadAssetAs[tai.Asset](env, args.To)
			if overflows(to.Units, args.Units) {
				return nil, types.ErrInsufficientFunds
			}
			if atomic && !to.CanDeposit() {
				return nil, ErrDestinationLocked
			}
		}
		from.Units -= args.Units
		if err := sdk.StoreAssetAs(env, args.From, from); err != nil {
			return nil, err
		}

		to := sdk.LoadAssetAs[tai.Asset](env, args.To)
		if !to.CanDeposit() {
			return nil, ErrDestinationLocked
		}
		to.Units += args.Units
		if err := sdk.StoreAssetAs(env, args.To, to); err != nil {
			return nil, err
		}
		return unit, nil
	})
}

// Balance returns the caller's units. Any lock hides the balance.
var Balance = sdk.Method(func(env *sdk.Env, ctx types.CallContext, _ types.Packed) (uint64, error) {
	a := sdk.LoadAssetAs[tai.Asset](env, ctx.Caller)
	if a.Locked() {
		return 0, types.ErrAccountLocked
	}
	return a.Units, nil
})

// Lock sets the lock kind of the caller's record at owner privilege, or
// clears it for LockNone, and returns the previous lock. A lock held at a
// higher privilege is not overridden.
var Lock = sdk.Method(func(env *sdk.Env, ctx types.CallContext, args tai.AssetLockArgs) (*tai.Lock, error) {
	a := sdk.LoadAssetAs[tai.Asset](env, ctx.Caller)
	prev := a.Lock
	if prev != nil && !tai.PrivilegeOwner.CanOverride(prev.Privilege) {
		return nil, types.ErrAccountLocked
	}
	if args.Lock == tai.LockNone {
		a.Lock = nil
	} else {
		a.Lock = &tai.Lock{Privilege: tai.PrivilegeOwner, Kind: args.Lock}
	}
	if err := sdk.StoreAssetAs(env, ctx.Caller, a); err != nil {
		return nil, err
	}
	return prev, nil
})

func overflows(balance, units uint64) bool {
	return balance > math.MaxUint64-units
}

// AdvTransfer moves units between holders whose records are bare unit
// counts.
var AdvTransfer = sdk.Method(func(env *sdk.Env, _ types.CallContext, args tai.AssetTransferArgs) (types.Packed, error) {
	from := sdk.LoadAssetAs[uint64](env, args.From)
	if from < args.Units {
		return nil, types.ErrInsufficientFunds
	}
	if args.From != args.To && overflows(sdk.LoadAssetAs[uint64](env, args.To), args.Units) {
		return nil, types.ErrInsufficientFunds
	}
	if err := sdk.StoreAssetAs(env, args.From, from-args.Units); err != nil {
		return nil, err
	}
	to := sdk.LoadAssetAs[uint64](env, args.To)
	if err := sdk.StoreAssetAs(env, args.To, to+args.Units); err != nil {
		return nil, err
	}
	return unit, nil
})

// AdvBalance returns the caller's bare unit count.
var AdvBalance = sdk.Method(func(env *sdk.Env, ctx types.CallContext, _ types.Packed) (uint64, error) {
	return sdk.LoadAssetAs[uint64](env, ctx.Caller), nil
})

// App is the asset method table.
func App(atomic bool) *sdk.App {
	return sdk.NewApp().
		Register("transfer", NewTransfer(atomic)).
		Register("balance", Balance).
		Register("lock", Lock)
}

// AdvApp is the method table of the bare unit count asset.
func AdvApp() *sdk.App {
	return sdk.NewApp().
		Register("transfer", AdvTransfer).
		Register("balance", AdvBalance)
}

// Register deploys the asset on h as account assetID, honouring the host's
// atomic_transfer setting.
func Register(h *host.Host, assetID string) {
	h.RegisterApp(assetID, App(h.Config().AtomicTransfer))
}
