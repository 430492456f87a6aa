package main

import (
	"encoding/hex"
	"fmt"

	"github.com/govm-net/guestsdk/tai"
	"github.com/govm-net/guestsdk/types"
	"github.com/spf13/cobra"
)

type vector struct {
	name  string
	value func() ([]byte, error)
}

type person struct {
	Age  uint64 `msgpack:"age"`
	Name string `msgpack:"name"`
}

var vectors = []vector{
	{"result/success", func() ([]byte, error) {
		data, err := types.SerializeNamed(person{Age: 33, Name: "Cole"})
		if err != nil {
			return nil, err
		}
		return types.EncodeResult(types.Ok(data))
	}},
	{"result/failure", func() ([]byte, error) {
		return types.EncodeResult(types.Ko("bad args"))
	}},
	{"asset/unlocked", func() ([]byte, error) {
		return tai.EncodeAsset(tai.NewAsset(100))
	}},
	{"asset/creator-full", func() ([]byte, error) {
		return tai.EncodeAsset(tai.Asset{Units: 100, Lock: &tai.Lock{Privilege: tai.PrivilegeCreator, Kind: tai.LockFull}})
	}},
	{"asset/creator-deposit", func() ([]byte, error) {
		return tai.EncodeAsset(tai.Asset{Units: 100, Lock: &tai.Lock{Privilege: tai.PrivilegeCreator, Kind: tai.LockDeposit}})
	}},
	{"asset/creator-withdraw", func() ([]byte, error) {
		return tai.EncodeAsset(tai.Asset{Units: 100, Lock: &tai.Lock{Privilege: tai.PrivilegeCreator, Kind: tai.LockWithdraw}})
	}},
	{"asset/transfer-args", func() ([]byte, error) {
		return types.Serialize(tai.AssetTransferArgs{
			From:  "QmTeNPcQnoxinb9bcQhuFxteTQ4sN3qSWJNoHjgEr84zNY",
			To:    "QmZKrfoq8ZtkH445373qFQo8mJUEc1jx1avMLY9JRTMJMD",
			Units: 123,
		})
	}},
	{"context/root", func() ([]byte, error) {
		return types.EncodeCall(types.CallContext{Network: "skynet", Owner: "asset", Caller: "alice", Method: "balance", Origin: "alice"})
	}},
}

func newVectorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vectors",
		Short: "Print the fixed wire vectors",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, v := range vectors {
				buf, err := v.value()
				if err != nil {
					return fmt.Errorf("%s: %w", v.name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", v.name, hex.EncodeToString(buf))
			}
			return nil
		},
	}
}
