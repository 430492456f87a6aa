package host

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/govm-net/guestsdk/store"
	"github.com/govm-net/guestsdk/types"
	"go.uber.org/zap"
)

// Capability handlers. Each acts for the owner of the innermost active call.

func (h *Host) owner() string {
	return h.stack.current().Owner
}

// Log records a guest log message.
func (h *Host) Log(msg string) {
	owner := h.owner()
	h.logs = append(h.logs, LogEntry{Owner: owner, Message: msg})
	h.logger.Info("guest log", zap.String("owner", owner), zap.String("msg", msg))
}

// Emit records a guest event.
func (h *Host) Emit(name string, data []byte) {
	owner := h.owner()
	h.events = append(h.events, Event{Owner: owner, Name: name, Data: store.Clone(data)})
	h.logger.Info("guest event",
		zap.String("owner", owner),
		zap.String("name", name),
		zap.String("data", hex.EncodeToString(data)))
}

// GetKeys lists the owner's data keys matching pattern. The pattern must end
// with '*'; the rest is a key prefix.
func (h *Host) GetKeys(pattern string) types.CallResult {
	if !strings.HasSuffix(pattern, "*") {
		return types.KoErr(types.ErrBadPattern)
	}
	keys, err := h.store.Keys(h.owner(), strings.TrimSuffix(pattern, "*"))
	storeFault("keys", err)
	buf, err := types.Serialize(keys)
	if err != nil {
		return types.KoErr(err)
	}
	return types.Ok(buf)
}

// StoreData stores data under the owner's key. Empty data removes the key.
func (h *Host) StoreData(key string, data []byte) {
	h.SetAccountData(h.owner(), key, data)
}

// LoadData returns the owner's data under key.
func (h *Host) LoadData(key string) []byte {
	return h.AccountData(h.owner(), key)
}

// RemoveData removes the owner's key.
func (h *Host) RemoveData(key string) {
	h.SetAccountData(h.owner(), key, nil)
}

// LoadAsset returns the record named after the owner in account id.
func (h *Host) LoadAsset(id string) []byte {
	return h.AccountAsset(id, h.owner())
}

// StoreAsset replaces the record named after the owner in account id.
func (h *Host) StoreAsset(id string, value []byte) {
	h.SetAccountAsset(id, h.owner(), value)
}

// GetAccountContract returns the contract code bound to id.
func (h *Host) GetAccountContract(id string) []byte {
	return h.AccountContract(id)
}

// IsCallable reports whether method is registered on account.
func (h *Host) IsCallable(account, method string) bool {
	_, ok := h.methods[methodKey(account, method)]
	return ok
}

// Verify is a deterministic stand-in for signature checking: pk must decode
// as a public key and the first signature byte is the verdict.
func (h *Host) Verify(pk, data, sig []byte) bool {
	if _, err := types.DecodePublicKey(pk); err != nil {
		return false
	}
	return len(sig) > 0 && sig[0] == 1
}

// Sha256 returns the SHA-256 digest of data.
func (h *Host) Sha256(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// Drand returns limit/2.
func (h *Host) Drand(limit uint64) uint64 {
	return limit / 2
}

// Call invokes method on account without a contract check.
func (h *Host) Call(account, method string, data []byte) types.CallResult {
	return h.Invoke(account, method, data, nil)
}

// SCall invokes method on account if its contract code equals code.
func (h *Host) SCall(account string, code []byte, method string, data []byte) types.CallResult {
	return h.Invoke(account, method, data, code)
}

func (h *Host) contractMatches(account string, code []byte) bool {
	ok, err := h.store.HasAccount(account)
	storeFault("account", err)
	if !ok {
		return false
	}
	return bytes.Equal(h.AccountContract(account), code)
}
