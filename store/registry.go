package store

import (
	"fmt"
	"sort"
	"sync"
)

// Type names a Store implementation.
type Type string

const (
	// MemoryType is the in-memory store.
	MemoryType Type = "memory"
	// DBType is the sqlite store.
	DBType Type = "db"
	// KVType is the ordered key/value store.
	KVType Type = "kv"
)

// Constructor creates a Store from backend specific parameters.
type Constructor func(params map[string]any) (Store, error)

// Registry manages the available Store implementations.
type Registry interface {
	// Register adds a Store implementation
	Register(t Type, constructor Constructor) error
	// SetDefault sets the type used when none is given
	SetDefault(t Type) error
	// New returns a new instance of the given type
	New(t Type, params map[string]any) (Store, error)
	// DefaultType returns the current default type
	DefaultType() Type
	// ListRegistered returns the registered types, sorted
	ListRegistered() []Type
}

type registry struct {
	mu           sync.RWMutex
	constructors map[Type]Constructor
	defaultType  Type
}

var defaultRegistry Registry = &registry{
	constructors: make(map[Type]Constructor),
}

// GetRegistry returns the global Registry instance
func GetRegistry() Registry {
	return defaultRegistry
}

func (r *registry) Register(t Type, constructor Constructor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.constructors[t]; exists {
		return fmt.Errorf("store type %s already registered", t)
	}
	r.constructors[t] = constructor
	return nil
}

func (r *registry) SetDefault(t Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.constructors[t]; !exists {
		return fmt.Errorf("store type %s not registered", t)
	}
	r.defaultType = t
	return nil
}

func (r *registry) New(t Type, params map[string]any) (Store, error) {
	if t == "" {
		t = r.DefaultType()
	}
	r.mu.RLock()
	constructor, exists := r.constructors[t]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("store type %s not found", t)
	}
	if params == nil {
		params = make(map[string]any)
	}
	return constructor(params)
}

func (r *registry) DefaultType() Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.defaultType == "" {
		return MemoryType
	}
	return r.defaultType
}

func (r *registry) ListRegistered() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]Type, 0, len(r.constructors))
	for t := range r.constructors {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Register adds a Store implementation to the global registry
func Register(t Type, constructor Constructor) error {
	return GetRegistry().Register(t, constructor)
}

// SetDefault sets the global default type
func SetDefault(t Type) error {
	return GetRegistry().SetDefault(t)
}

// New returns a new Store of type t. An empty type selects the default.
func New(t Type, params map[string]any) (Store, error) {
	return GetRegistry().New(t, params)
}

// ListRegistered returns the registered types
func ListRegistered() []Type {
	return GetRegistry().ListRegistered()
}
