// Package store holds the entity state of a mock host: per-account keyed
// data, per-holder asset records and contract code.
package store

import (
	"sort"
	"strings"
)

// Store is the entity table. Accounts are created lazily on first write;
// reads of unknown accounts return empty values. Implementations return
// copies, never aliases of their internal buffers.
type Store interface {
	// Data returns account's value under key, nil if missing.
	Data(account, key string) ([]byte, error)
	// SetData stores value under key. An empty value deletes the key.
	SetData(account, key string, value []byte) error
	// Keys returns account's data keys starting with prefix, sorted.
	Keys(account, prefix string) ([]string, error)
	// Asset returns the record named name held by account, nil if missing.
	Asset(account, name string) ([]byte, error)
	// SetAsset replaces the record named name held by account.
	SetAsset(account, name string, value []byte) error
	// Contract returns account's contract code, nil if none.
	Contract(account string) ([]byte, error)
	// SetContract binds contract code to account. Empty code unbinds.
	SetContract(account string, code []byte) error
	// HasAccount reports whether account has been created.
	HasAccount(account string) (bool, error)
	Close() error
}

// FilterKeys returns the keys starting with prefix in sorted order.
func FilterKeys(keys []string, prefix string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Clone copies b, mapping empty input to nil.
func Clone(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
