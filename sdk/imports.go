// Package sdk is the guest side of the boundary: typed wrappers over the
// host capability imports, method tables and the run entry point.
package sdk

// Imports is the capability surface a guest imports from the host. Buffer
// arguments are (offset, length) pairs into guest memory; buffer results are
// packed memory handles.
type Imports interface {
	HfLog(msgOff, msgLen int32)
	HfEmit(nameOff, nameLen, dataOff, dataLen int32)
	// HfGetKeys returns an encoded CallResult holding the key list.
	HfGetKeys(patternOff, patternLen int32) uint64
	HfStoreData(keyOff, keyLen, dataOff, dataLen int32)
	HfLoadData(keyOff, keyLen int32) uint64
	HfRemoveData(keyOff, keyLen int32)
	HfLoadAsset(idOff, idLen int32) uint64
	HfStoreAsset(idOff, idLen, valueOff, valueLen int32)
	HfGetAccountContract(idOff, idLen int32) uint64
	HfIsCallable(idOff, idLen, methodOff, methodLen int32) int32
	HfVerify(pkOff, pkLen, dataOff, dataLen, sigOff, sigLen int32) int32
	// HfCall returns an encoded CallResult.
	HfCall(accountOff, accountLen, methodOff, methodLen, dataOff, dataLen int32) uint64
	// HfSCall is HfCall with a contract code check on the callee.
	HfSCall(accountOff, accountLen, codeOff, codeLen, methodOff, methodLen, dataOff, dataLen int32) uint64
	HfSha256(dataOff, dataLen int32) uint64
	HfDrand(limit uint64) uint64
}
