package sdk

import (
	"github.com/govm-net/guestsdk/tai"
	"github.com/govm-net/guestsdk/types"
)

// LoadAssetAs loads and decodes the owner's record held by id. A missing or
// undecodable record yields the zero value.
func LoadAssetAs[T any](e *Env, id string) T {
	var v T
	buf := e.LoadAsset(id)
	if len(buf) == 0 {
		return v
	}
	if err := types.Deserialize(buf, &v); err != nil {
		var zero T
		return zero
	}
	return v
}

// StoreAssetAs encodes v and stores it as the owner's record held by id.
func StoreAssetAs[T any](e *Env, id string, v T) error {
	buf, err := types.Serialize(v)
	if err != nil {
		return err
	}
	e.StoreAsset(id, buf)
	return nil
}

// LoadDataAs loads and decodes the owner's data under key. A missing key
// yields the zero value.
func LoadDataAs[T any](e *Env, key string) (T, error) {
	var v T
	buf := e.LoadData(key)
	if len(buf) == 0 {
		return v, nil
	}
	if err := types.Deserialize(buf, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// StoreDataAs encodes v and stores it under key.
func StoreDataAs[T any](e *Env, key string, v T) error {
	buf, err := types.Serialize(v)
	if err != nil {
		return err
	}
	e.StoreData(key, buf)
	return nil
}

// AssetBalance queries the caller's balance on asset.
func AssetBalance(e *Env, asset string) (uint64, error) {
	buf, err := e.Call(asset, "balance", nil)
	if err != nil {
		return 0, err
	}
	var units uint64
	if err := types.Deserialize(buf, &units); err != nil {
		return 0, nil
	}
	return units, nil
}

// AssetTransfer moves units of asset from one account to another.
func AssetTransfer(e *Env, from, to, asset string, units uint64) error {
	data, err := types.Serialize(tai.AssetTransferArgs{From: from, To: to, Units: units})
	if err != nil {
		return err
	}
	_, err = e.Call(asset, "transfer", data)
	return err
}

// AssetLock sets the lock kind of to's record on asset.
func AssetLock(e *Env, asset, to string, kind tai.LockType) error {
	data, err := types.Serialize(tai.AssetLockArgs{To: to, Lock: kind})
	if err != nil {
		return err
	}
	_, err = e.Call(asset, "lock", data)
	return err
}

// HashData computes the multihash of data. Sha256 digests are computed by the
// host.
func HashData(e *Env, alg types.HashAlgorithm, data []byte) (types.Hash, error) {
	if alg == types.HashSha256 {
		return types.NewHash(alg, e.Sha256(data))
	}
	return types.NewHash(alg, data)
}
