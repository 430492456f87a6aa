package sdk

import (
	"github.com/govm-net/guestsdk/memory"
	"github.com/govm-net/guestsdk/types"
)

// Env gives guest code typed access to the host capabilities. Arguments are
// written into guest memory and results read back through handles.
type Env struct {
	imports Imports
	mem     *memory.Arena
}

// NewEnv binds the capability imports to the guest memory they address.
func NewEnv(imports Imports, mem *memory.Arena) *Env {
	return &Env{imports: imports, mem: mem}
}

// Memory returns the guest memory.
func (e *Env) Memory() *memory.Arena {
	return e.mem
}

func (e *Env) put(data []byte) (int32, int32) {
	return e.mem.Write(data), int32(len(data))
}

func (e *Env) putString(s string) (int32, int32) {
	return e.put([]byte(s))
}

// read copies the buffer behind a handle returned by the host. A handle
// outside guest memory is a host fault.
func (e *Env) read(h uint64) []byte {
	buf, err := e.mem.ReadHandle(memory.Handle(h))
	if err != nil {
		panic(err)
	}
	return buf
}

func (e *Env) readResult(h uint64) ([]byte, error) {
	res, err := types.DecodeResult(e.read(h))
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, res.Err()
	}
	return res.Data, nil
}

// Log writes a message to the host log.
func (e *Env) Log(msg string) {
	off, n := e.putString(msg)
	e.imports.HfLog(off, n)
}

// Emit publishes an event with an opaque payload.
func (e *Env) Emit(name string, data []byte) {
	nameOff, nameLen := e.putString(name)
	dataOff, dataLen := e.put(data)
	e.imports.HfEmit(nameOff, nameLen, dataOff, dataLen)
}

// LoadData returns the owner's data under key, empty if missing.
func (e *Env) LoadData(key string) []byte {
	off, n := e.putString(key)
	return e.read(e.imports.HfLoadData(off, n))
}

// StoreData stores data under key. Empty data removes the key.
func (e *Env) StoreData(key string, data []byte) {
	keyOff, keyLen := e.putString(key)
	dataOff, dataLen := e.put(data)
	e.imports.HfStoreData(keyOff, keyLen, dataOff, dataLen)
}

// RemoveData removes key from the owner's data.
func (e *Env) RemoveData(key string) {
	off, n := e.putString(key)
	e.imports.HfRemoveData(off, n)
}

// GetKeys lists the owner's data keys matching pattern, which must end
// with '*'.
func (e *Env) GetKeys(pattern string) ([]string, error) {
	off, n := e.putString(pattern)
	data, err := e.readResult(e.imports.HfGetKeys(off, n))
	if err != nil {
		return nil, err
	}
	var keys []string
	if err := types.Deserialize(data, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// LoadAsset returns the owner's balance record held by account id.
func (e *Env) LoadAsset(id string) []byte {
	off, n := e.putString(id)
	return e.read(e.imports.HfLoadAsset(off, n))
}

// StoreAsset replaces the owner's balance record held by account id.
func (e *Env) StoreAsset(id string, value []byte) {
	idOff, idLen := e.putString(id)
	valOff, valLen := e.put(value)
	e.imports.HfStoreAsset(idOff, idLen, valOff, valLen)
}

// GetAccountContract returns the contract code bound to id, empty if none.
func (e *Env) GetAccountContract(id string) []byte {
	off, n := e.putString(id)
	return e.read(e.imports.HfGetAccountContract(off, n))
}

// IsCallable reports whether method is registered on account id.
func (e *Env) IsCallable(id, method string) bool {
	idOff, idLen := e.putString(id)
	mOff, mLen := e.putString(method)
	return e.imports.HfIsCallable(idOff, idLen, mOff, mLen) == 1
}

// Verify checks sig over data with pk.
func (e *Env) Verify(pk types.PublicKey, data, sig []byte) bool {
	raw, err := types.EncodePublicKey(pk)
	if err != nil {
		return false
	}
	pkOff, pkLen := e.put(raw)
	dataOff, dataLen := e.put(data)
	sigOff, sigLen := e.put(sig)
	return e.imports.HfVerify(pkOff, pkLen, dataOff, dataLen, sigOff, sigLen) == 1
}

// Sha256 returns the 32 byte digest of data.
func (e *Env) Sha256(data []byte) []byte {
	off, n := e.put(data)
	return e.read(e.imports.HfSha256(off, n))
}

// Drand returns a host provided number below limit.
func (e *Env) Drand(limit uint64) uint64 {
	return e.imports.HfDrand(limit)
}

// Call invokes method on account. A failed call returns a *types.WasmError
// carrying the callee's message.
func (e *Env) Call(account, method string, data []byte) ([]byte, error) {
	accOff, accLen := e.putString(account)
	mOff, mLen := e.putString(method)
	dataOff, dataLen := e.put(data)
	return e.readResult(e.imports.HfCall(accOff, accLen, mOff, mLen, dataOff, dataLen))
}

// SCall is Call restricted to a callee whose contract code equals code.
func (e *Env) SCall(account string, code []byte, method string, data []byte) ([]byte, error) {
	accOff, accLen := e.putString(account)
	codeOff, codeLen := e.put(code)
	mOff, mLen := e.putString(method)
	dataOff, dataLen := e.put(data)
	return e.readResult(e.imports.HfSCall(accOff, accLen, codeOff, codeLen, mOff, mLen, dataOff, dataLen))
}
