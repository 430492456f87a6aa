// Package kv is a store.Store on an ordered key/value database.
package kv

import (
	"fmt"
	"strings"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/govm-net/guestsdk/store"
)

const (
	defaultName = "hostsim"

	prefixAccount  = 'a'
	prefixContract = 'c'
	prefixData     = 'd'
	prefixAsset    = 's'
)

var accountMarker = []byte{1}

// Store implements store.Store over a cometbft-db database.
type Store struct {
	db dbm.DB
}

var _ store.Store = (*Store)(nil)

func init() {
	if err := store.Register(store.KVType, func(params map[string]any) (store.Store, error) {
		return Open(params)
	}); err != nil {
		panic(err)
	}
}

// Open uses a goleveldb database under params["dir"], or an in-memory
// database when no dir is given.
func Open(params map[string]any) (*Store, error) {
	dir, _ := params["dir"].(string)
	if dir == "" {
		return New(dbm.NewMemDB()), nil
	}
	name := defaultName
	if n, ok := params["name"].(string); ok && n != "" {
		name = n
	}
	db, err := dbm.NewDB(name, dbm.GoLevelDBBackend, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open kv store: %w", err)
	}
	return New(db), nil
}

// New wraps an open database.
func New(db dbm.DB) *Store {
	return &Store{db: db}
}

func key(kind byte, parts ...string) []byte {
	return []byte(string(kind) + "\x00" + strings.Join(parts, "\x00"))
}

// prefixEnd returns the smallest key greater than every key with prefix p.
func prefixEnd(p []byte) []byte {
	end := make([]byte, len(p))
	copy(end, p)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

func (s *Store) touch(id string) error {
	return s.db.Set(key(prefixAccount, id), accountMarker)
}

func (s *Store) get(k []byte) ([]byte, error) {
	v, err := s.db.Get(k)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", k, err)
	}
	return store.Clone(v), nil
}

func (s *Store) Data(id, k string) ([]byte, error) {
	return s.get(key(prefixData, id, k))
}

func (s *Store) SetData(id, k string, value []byte) error {
	if err := s.touch(id); err != nil {
		return err
	}
	if len(value) == 0 {
		return s.db.Delete(key(prefixData, id, k))
	}
	return s.db.Set(key(prefixData, id, k), value)
}

func (s *Store) Keys(id, prefix string) ([]string, error) {
	base := key(prefixData, id, "")
	start := append(append([]byte{}, base...), prefix...)
	it, err := s.db.Iterator(start, prefixEnd(start))
	if err != nil {
		return nil, fmt.Errorf("failed to iterate keys: %w", err)
	}
	defer it.Close()

	keys := []string{}
	for ; it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()[len(base):]))
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *Store) Asset(id, name string) ([]byte, error) {
	return s.get(key(prefixAsset, id, name))
}

func (s *Store) SetAsset(id, name string, value []byte) error {
	if err := s.touch(id); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	return s.db.Set(key(prefixAsset, id, name), value)
}

func (s *Store) Contract(id string) ([]byte, error) {
	return s.get(key(prefixContract, id))
}

func (s *Store) SetContract(id string, code []byte) error {
	if err := s.touch(id); err != nil {
		return err
	}
	if len(code) == 0 {
		return s.db.Delete(key(prefixContract, id))
	}
	return s.db.Set(key(prefixContract, id), code)
}

func (s *Store) HasAccount(id string) (bool, error) {
	return s.db.Has(key(prefixAccount, id))
}

func (s *Store) Close() error {
	return s.db.Close()
}
