// Package types contains the shapes exchanged across the guest/host boundary
// and their MessagePack wire encoding. Both sides must use these definitions.
package types

// Capability identifies a function the host exposes to the guest.
//
// IMPORTANT: the symbol names are the guest's import names. A guest compiled
// against a different set of symbols will fail to link, so always take the
// names from Symbol rather than spelling them out.
type Capability int32

const (
	// CapLog writes a message to the host log
	CapLog Capability = iota + 1 // 1
	// CapEmit publishes an event
	CapEmit // 2
	// CapGetKeys lists data keys of the current account matching a pattern
	CapGetKeys // 3
	// CapStoreData writes keyed data of the current account
	CapStoreData // 4
	// CapLoadData reads keyed data of the current account
	CapLoadData // 5
	// CapRemoveData removes keyed data of the current account
	CapRemoveData // 6
	// CapLoadAsset reads the asset named after the current account from another account
	CapLoadAsset // 7
	// CapStoreAsset writes the asset named after the current account into another account
	CapStoreAsset // 8
	// CapGetAccountContract returns the contract code bound to an account
	CapGetAccountContract // 9
	// CapIsCallable reports whether an account exposes a method
	CapIsCallable // 10
	// CapVerify checks a signature
	CapVerify // 11
	// CapCall invokes a method of another account
	CapCall // 12
	// CapSCall invokes a method of another account bound to an expected contract
	CapSCall // 13
	// CapSha256 hashes data
	CapSha256 // 14
	// CapDrand returns a deterministic pseudo random number
	CapDrand // 15
)

var capabilitySymbols = map[Capability]string{
	CapLog:                "hf_log",
	CapEmit:               "hf_emit",
	CapGetKeys:            "hf_get_keys",
	CapStoreData:          "hf_store_data",
	CapLoadData:           "hf_load_data",
	CapRemoveData:         "hf_remove_data",
	CapLoadAsset:          "hf_load_asset",
	CapStoreAsset:         "hf_store_asset",
	CapGetAccountContract: "hf_get_account_contract",
	CapIsCallable:         "hf_is_callable",
	CapVerify:             "hf_verify",
	CapCall:               "hf_call",
	CapSCall:              "hf_s_call",
	CapSha256:             "hf_sha256",
	CapDrand:              "hf_drand",
}

// Symbol returns the import name of the capability.
func (c Capability) Symbol() string {
	return capabilitySymbols[c]
}

func (c Capability) String() string {
	if s, ok := capabilitySymbols[c]; ok {
		return s
	}
	return "unknown"
}

// Capabilities returns every capability in id order.
func Capabilities() []Capability {
	out := make([]Capability, 0, len(capabilitySymbols))
	for c := CapLog; c <= CapDrand; c++ {
		out = append(out, c)
	}
	return out
}

// Guest exports expected by the host.
const (
	// ExportRun is the guest entry point: run(ctxOff, ctxLen, argsOff, argsLen) -> handle.
	ExportRun = "run"
	// ExportAlloc reserves guest memory for host writes: alloc(len) -> offset.
	ExportAlloc = "alloc"
	// ExportMemory is the guest linear memory.
	ExportMemory = "memory"
	// ImportModule is the module name the capabilities are imported from.
	ImportModule = "env"
)
