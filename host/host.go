// Package host is a mock host runtime: it owns guest memory and entity
// state, implements the capability surface and dispatches nested calls
// between registered methods.
//
// A Host is not safe for concurrent use. Separate Hosts share nothing and
// may run on separate goroutines.
package host

import (
	"fmt"
	"sort"

	"github.com/govm-net/guestsdk/config"
	"github.com/govm-net/guestsdk/memory"
	"github.com/govm-net/guestsdk/sdk"
	"github.com/govm-net/guestsdk/store"
	_ "github.com/govm-net/guestsdk/store/memory"
	"github.com/govm-net/guestsdk/types"
	"go.uber.org/zap"
)

// Event is a payload published with hf_emit.
type Event struct {
	Owner string
	Name  string
	Data  []byte
}

// LogEntry is a message written with hf_log.
type LogEntry struct {
	Owner   string
	Message string
}

// Host is a simulated host instance.
type Host struct {
	cfg     *config.Config
	arena   *memory.Arena
	store   store.Store
	methods map[string]sdk.Handler
	stack   callStack
	tracer  callTracer
	logs    []LogEntry
	events  []Event
	env     *sdk.Env
	logger  *zap.Logger
}

// Option configures a Host.
type Option func(*Host)

// WithStore uses s instead of the store named by the config.
func WithStore(s store.Store) Option {
	return func(h *Host) {
		h.store = s
	}
}

// WithLogger sets the host logger.
func WithLogger(l *zap.Logger) Option {
	return func(h *Host) {
		h.logger = l
	}
}

// New creates a host from cfg. A nil cfg uses config.Default().
func New(cfg *config.Config, opts ...Option) (*Host, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	h := &Host{
		cfg:     cfg,
		arena:   memory.NewArena(cfg.MemorySize),
		methods: make(map[string]sdk.Handler),
		logger:  Logger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.store == nil {
		s, err := store.New(store.Type(cfg.Store.Type), cfg.Store.Params)
		if err != nil {
			return nil, fmt.Errorf("failed to create store: %w", err)
		}
		h.store = s
	}
	h.env = sdk.NewEnv(h, h.arena)
	return h, nil
}

// Close releases the store.
func (h *Host) Close() error {
	return h.store.Close()
}

// Config returns the host configuration.
func (h *Host) Config() *config.Config {
	return h.cfg
}

// Env returns the guest environment bound to this host.
func (h *Host) Env() *sdk.Env {
	return h.env
}

// Memory returns the guest memory.
func (h *Host) Memory() *memory.Arena {
	return h.arena
}

// Store returns the entity store.
func (h *Host) Store() store.Store {
	return h.store
}

func methodKey(account, method string) string {
	return account + ":" + method
}

// RegisterMethod binds handler to method on account.
func (h *Host) RegisterMethod(account, method string, handler sdk.Handler) {
	h.methods[methodKey(account, method)] = handler
}

// RegisterApp binds every method of app to account. Calls reach the app
// through its run entry point, so contexts, arguments and results cross
// guest memory encoded.
func (h *Host) RegisterApp(account string, app *sdk.App) {
	for _, name := range app.Methods() {
		h.RegisterMethod(account, name, h.appHandler(app))
	}
}

// Methods returns the registered "account:method" keys, sorted.
func (h *Host) Methods() []string {
	keys := make([]string, 0, len(h.methods))
	for k := range h.methods {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Current returns the context of the innermost active call.
func (h *Host) Current() types.CallContext {
	return h.stack.current()
}

// Depth returns the number of active calls.
func (h *Host) Depth() int {
	return h.stack.size()
}

// Trace returns the frames recorded since the last ResetTrace, in call order.
func (h *Host) Trace() []Frame {
	return h.tracer.snapshot()
}

// ResetTrace clears the recorded frames.
func (h *Host) ResetTrace() {
	h.tracer.reset()
}

// Logs returns the messages written with hf_log.
func (h *Host) Logs() []LogEntry {
	return append([]LogEntry(nil), h.logs...)
}

// Events returns the events published with hf_emit.
func (h *Host) Events() []Event {
	return append([]Event(nil), h.events...)
}

// storeFault reports a backend failure. Store errors are host faults and
// abort the call.
func storeFault(op string, err error) {
	if err != nil {
		panic(fmt.Errorf("store %s: %w", op, err))
	}
}

// SetAccountContract binds contract code to account.
func (h *Host) SetAccountContract(account string, code []byte) {
	storeFault("set contract", h.store.SetContract(account, code))
}

// AccountContract returns the contract code bound to account.
func (h *Host) AccountContract(account string) []byte {
	code, err := h.store.Contract(account)
	storeFault("contract", err)
	return code
}

// AccountData returns account's data under key.
func (h *Host) AccountData(account, key string) []byte {
	v, err := h.store.Data(account, key)
	storeFault("data", err)
	return v
}

// SetAccountData stores data under key. Empty data removes the key.
func (h *Host) SetAccountData(account, key string, data []byte) {
	storeFault("set data", h.store.SetData(account, key, data))
}

// AccountKeys returns all data keys of account, sorted.
func (h *Host) AccountKeys(account string) []string {
	keys, err := h.store.Keys(account, "")
	storeFault("keys", err)
	return keys
}

// AccountAsset returns the record named asset held by account.
func (h *Host) AccountAsset(account, asset string) []byte {
	v, err := h.store.Asset(account, asset)
	storeFault("asset", err)
	return v
}

// SetAccountAsset replaces the record named asset held by account.
func (h *Host) SetAccountAsset(account, asset string, value []byte) {
	storeFault("set asset", h.store.SetAsset(account, asset, value))
}

// AccountAssetAs decodes the record named asset held by account. A missing
// or undecodable record yields the zero value.
func AccountAssetAs[T any](h *Host, account, asset string) T {
	var v T
	buf := h.AccountAsset(account, asset)
	if len(buf) == 0 {
		return v
	}
	if err := types.Deserialize(buf, &v); err != nil {
		var zero T
		return zero
	}
	return v
}

// SetAccountAssetAs encodes v as the record named asset held by account.
func SetAccountAssetAs[T any](h *Host, account, asset string, v T) error {
	buf, err := types.Serialize(v)
	if err != nil {
		return err
	}
	h.SetAccountAsset(account, asset, buf)
	return nil
}
