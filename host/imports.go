package host

import (
	"github.com/govm-net/guestsdk/memory"
	"github.com/govm-net/guestsdk/sdk"
	"github.com/govm-net/guestsdk/types"
)

var _ sdk.Imports = (*Host)(nil)

// view reads a guest buffer. Out of bounds arguments are a guest fault.
func (h *Host) view(off, n int32) []byte {
	buf, err := h.arena.Read(off, n)
	if err != nil {
		panic(err)
	}
	return buf
}

func (h *Host) str(off, n int32) string {
	return string(h.view(off, n))
}

func (h *Host) ret(data []byte) uint64 {
	return uint64(h.arena.WriteHandle(data))
}

func (h *Host) retResult(r types.CallResult) uint64 {
	buf, err := types.EncodeResult(r)
	if err != nil {
		buf, _ = types.EncodeResult(types.KoErr(types.ErrSerialization))
	}
	return h.ret(buf)
}

func boolToI32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// HfLog implements sdk.Imports: the arguments are (offset, length) pairs
// into the arena. Handle results point at buffers written there.
func (h *Host) HfLog(msgOff, msgLen int32) {
	h.Log(h.str(msgOff, msgLen))
}

// HfEmit publishes an event of the current owner.
func (h *Host) HfEmit(nameOff, nameLen, dataOff, dataLen int32) {
	h.Emit(h.str(nameOff, nameLen), h.view(dataOff, dataLen))
}

// HfGetKeys returns the encoded key list matching a trailing-* pattern.
func (h *Host) HfGetKeys(patternOff, patternLen int32) uint64 {
	return h.retResult(h.GetKeys(h.str(patternOff, patternLen)))
}

// HfStoreData stores a data record of the current owner.
func (h *Host) HfStoreData(keyOff, keyLen, dataOff, dataLen int32) {
	h.StoreData(h.str(keyOff, keyLen), h.view(dataOff, dataLen))
}

// HfLoadData returns a data record of the current owner.
func (h *Host) HfLoadData(keyOff, keyLen int32) uint64 {
	return h.ret(h.LoadData(h.str(keyOff, keyLen)))
}

// HfRemoveData deletes a data record of the current owner.
func (h *Host) HfRemoveData(keyOff, keyLen int32) {
	h.RemoveData(h.str(keyOff, keyLen))
}

// HfLoadAsset returns the current owner's record held by an asset account.
func (h *Host) HfLoadAsset(idOff, idLen int32) uint64 {
	return h.ret(h.LoadAsset(h.str(idOff, idLen)))
}

// HfStoreAsset writes the current owner's record held by an asset account.
func (h *Host) HfStoreAsset(idOff, idLen, valueOff, valueLen int32) {
	h.StoreAsset(h.str(idOff, idLen), h.view(valueOff, valueLen))
}

// HfGetAccountContract returns the contract code of an account.
func (h *Host) HfGetAccountContract(idOff, idLen int32) uint64 {
	return h.ret(h.GetAccountContract(h.str(idOff, idLen)))
}

// HfIsCallable reports whether a method is registered on an account.
func (h *Host) HfIsCallable(idOff, idLen, methodOff, methodLen int32) int32 {
	return boolToI32(h.IsCallable(h.str(idOff, idLen), h.str(methodOff, methodLen)))
}

// HfVerify checks a signature with an encoded public key.
func (h *Host) HfVerify(pkOff, pkLen, dataOff, dataLen, sigOff, sigLen int32) int32 {
	return boolToI32(h.Verify(h.view(pkOff, pkLen), h.view(dataOff, dataLen), h.view(sigOff, sigLen)))
}

// HfCall dispatches a nested call and returns the encoded result.
func (h *Host) HfCall(accountOff, accountLen, methodOff, methodLen, dataOff, dataLen int32) uint64 {
	account := h.str(accountOff, accountLen)
	method := h.str(methodOff, methodLen)
	return h.retResult(h.Call(account, method, h.view(dataOff, dataLen)))
}

// HfSCall is HfCall with a contract code check on the callee.
func (h *Host) HfSCall(accountOff, accountLen, codeOff, codeLen, methodOff, methodLen, dataOff, dataLen int32) uint64 {
	account := h.str(accountOff, accountLen)
	code := h.view(codeOff, codeLen)
	method := h.str(methodOff, methodLen)
	return h.retResult(h.SCall(account, code, method, h.view(dataOff, dataLen)))
}

// HfSha256 returns the SHA-256 digest of a buffer.
func (h *Host) HfSha256(dataOff, dataLen int32) uint64 {
	return h.ret(h.Sha256(h.view(dataOff, dataLen)))
}

// HfDrand returns a number below limit.
func (h *Host) HfDrand(limit uint64) uint64 {
	return h.Drand(limit)
}

// handle unpacks a handle returned to the host by a guest entry point.
func (h *Host) handle(v memory.Handle) ([]byte, error) {
	return h.arena.ReadHandle(v)
}
