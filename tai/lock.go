// Package tai defines the standard asset interface shared by asset
// contracts and their callers: a lockable unit count and the arguments of
// its transfer, balance and lock methods.
package tai

import "fmt"

// LockPrivilege is the authority that set a lock.
// Order: Owner < Contract < Creator.
type LockPrivilege uint8

const (
	// PrivilegeOwner is set by the owner via direct asset invocation.
	PrivilegeOwner LockPrivilege = iota
	// PrivilegeContract is set by the owner via a smart contract.
	PrivilegeContract
	// PrivilegeCreator is set by the asset's creator.
	PrivilegeCreator
)

var privilegeNames = [...]string{"Owner", "Contract", "Creator"}

func (p LockPrivilege) String() string {
	if int(p) < len(privilegeNames) {
		return privilegeNames[p]
	}
	return fmt.Sprintf("LockPrivilege(%d)", p)
}

// CanOverride reports whether a lock set at privilege other may be changed
// by p.
func (p LockPrivilege) CanOverride(other LockPrivilege) bool {
	return p >= other
}

// ParsePrivilege parses a privilege variant name.
func ParsePrivilege(s string) (LockPrivilege, error) {
	for i, name := range privilegeNames {
		if name == s {
			return LockPrivilege(i), nil
		}
	}
	return 0, fmt.Errorf("unknown lock privilege %q", s)
}

// LockType restricts the asset flow of an account.
type LockType uint8

const (
	// LockNone unlocks the flow both ways.
	LockNone LockType = iota
	// LockDeposit locks the flow to the account.
	LockDeposit
	// LockWithdraw locks the flow from the account.
	LockWithdraw
	// LockFull locks the flow both ways.
	LockFull
)

var lockTypeNames = [...]string{"None", "Deposit", "Withdraw", "Full"}

func (t LockType) String() string {
	if int(t) < len(lockTypeNames) {
		return lockTypeNames[t]
	}
	return fmt.Sprintf("LockType(%d)", t)
}

// AllowsDeposit reports whether incoming transfers are permitted.
func (t LockType) AllowsDeposit() bool {
	return t != LockDeposit && t != LockFull
}

// AllowsWithdraw reports whether outgoing transfers are permitted.
func (t LockType) AllowsWithdraw() bool {
	return t != LockWithdraw && t != LockFull
}

// ParseLockType parses a lock type variant name.
func ParseLockType(s string) (LockType, error) {
	for i, name := range lockTypeNames {
		if name == s {
			return LockType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown lock type %q", s)
}

// Lock is the (privilege, kind) pair held by a locked asset.
type Lock struct {
	Privilege LockPrivilege
	Kind      LockType
}

func (l Lock) String() string {
	return fmt.Sprintf("(%s, %s)", l.Privilege, l.Kind)
}

// lockWire is the positional [privilege, kind] form.
type lockWire struct {
	Privilege string
	Kind      string
}

func (l Lock) wire() lockWire {
	return lockWire{Privilege: l.Privilege.String(), Kind: l.Kind.String()}
}

func (w lockWire) lock() (Lock, error) {
	p, err := ParsePrivilege(w.Privilege)
	if err != nil {
		return Lock{}, err
	}
	k, err := ParseLockType(w.Kind)
	if err != nil {
		return Lock{}, err
	}
	return Lock{Privilege: p, Kind: k}, nil
}
