// Package memory is a map backed store.Store.
package memory

import (
	"sync"

	"github.com/govm-net/guestsdk/store"
)

type account struct {
	data     map[string][]byte
	assets   map[string][]byte
	contract []byte
}

// Store keeps every account in memory.
type Store struct {
	mu       sync.Mutex
	accounts map[string]*account
}

var _ store.Store = (*Store)(nil)

func init() {
	if err := store.Register(store.MemoryType, func(map[string]any) (store.Store, error) {
		return New(), nil
	}); err != nil {
		panic(err)
	}
}

// New creates an empty store.
func New() *Store {
	return &Store{accounts: make(map[string]*account)}
}

// get returns the account, creating it when create is set.
func (s *Store) get(id string, create bool) *account {
	acc, ok := s.accounts[id]
	if !ok && create {
		acc = &account{
			data:   make(map[string][]byte),
			assets: make(map[string][]byte),
		}
		s.accounts[id] = acc
	}
	return acc
}

func (s *Store) Data(id, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acc := s.get(id, false); acc != nil {
		return store.Clone(acc.data[key]), nil
	}
	return nil, nil
}

func (s *Store) SetData(id, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.get(id, true)
	if len(value) == 0 {
		delete(acc.data, key)
		return nil
	}
	acc.data[key] = store.Clone(value)
	return nil
}

func (s *Store) Keys(id, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.get(id, false)
	if acc == nil {
		return []string{}, nil
	}
	keys := make([]string, 0, len(acc.data))
	for k := range acc.data {
		keys = append(keys, k)
	}
	return store.FilterKeys(keys, prefix), nil
}

func (s *Store) Asset(id, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acc := s.get(id, false); acc != nil {
		return store.Clone(acc.assets[name]), nil
	}
	return nil, nil
}

func (s *Store) SetAsset(id, name string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(id, true).assets[name] = store.Clone(value)
	return nil
}

func (s *Store) Contract(id string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acc := s.get(id, false); acc != nil {
		return store.Clone(acc.contract), nil
	}
	return nil, nil
}

func (s *Store) SetContract(id string, code []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(id, true).contract = store.Clone(code)
	return nil
}

func (s *Store) HasAccount(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(id, false) != nil, nil
}

func (s *Store) Close() error {
	return nil
}
