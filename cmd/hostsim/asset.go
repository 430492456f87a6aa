package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/govm-net/guestsdk/host"
	"github.com/govm-net/guestsdk/tai"
	"github.com/govm-net/guestsdk/tai/mockasset"
	"github.com/govm-net/guestsdk/types"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type hostLoader func() (*host.Host, error)

// scenario is a fresh host with the mock asset deployed and two funded
// holders.
type scenario struct {
	h     *host.Host
	asset string
	out   io.Writer
}

func newScenario(load hostLoader, out io.Writer, asset string, holders []string, fund uint64) (*scenario, error) {
	h, err := load()
	if err != nil {
		return nil, err
	}
	mockasset.Register(h, asset)
	for _, holder := range holders {
		if err := host.SetAccountAssetAs(h, holder, asset, tai.NewAsset(fund)); err != nil {
			h.Close()
			return nil, err
		}
	}
	return &scenario{h: h, asset: asset, out: out}, nil
}

func (s *scenario) transfer(from, to string, units uint64) types.CallResult {
	args, err := types.Serialize(tai.AssetTransferArgs{From: from, To: to, Units: units})
	if err != nil {
		return types.KoErr(err)
	}
	res := s.h.Execute(s.h.RootContext(from, s.asset, "transfer"), args)
	s.report(fmt.Sprintf("transfer %s -> %s (%d)", from, to, units), res)
	return res
}

func (s *scenario) lock(holder string, kind tai.LockType) types.CallResult {
	args, err := types.Serialize(tai.AssetLockArgs{To: holder, Lock: kind})
	if err != nil {
		return types.KoErr(err)
	}
	res := s.h.Execute(s.h.RootContext(holder, s.asset, "lock"), args)
	s.report(fmt.Sprintf("lock %s %s", holder, kind), res)
	return res
}

func (s *scenario) report(what string, res types.CallResult) {
	if res.Success {
		fmt.Fprintf(s.out, "%-32s ok\n", what)
		return
	}
	fmt.Fprintf(s.out, "%-32s failed: %s\n", what, res.Data)
}

func (s *scenario) balances(holders ...string) {
	for _, holder := range holders {
		a := host.AccountAssetAs[tai.Asset](s.h, holder, s.asset)
		lock := "unlocked"
		if a.Lock != nil {
			lock = a.Lock.String()
		}
		fmt.Fprintf(s.out, "%-16s %10d  %s\n", holder, a.Units, lock)
	}
}

func newTransferCmd(load hostLoader) *cobra.Command {
	var (
		from, to, asset string
		units, fund     uint64
	)
	cmd := &cobra.Command{
		Use:     "transfer",
		Short:   "Transfer units between two funded holders",
		Example: `  hostsim transfer --from alice --to bob --units 30 --fund 100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newScenario(load, cmd.OutOrStdout(), asset, []string{from, to}, fund)
			if err != nil {
				return err
			}
			defer s.h.Close()
			res := s.transfer(from, to, units)
			s.balances(from, to)
			return res.Err()
		},
	}
	cmd.Flags().StringVar(&from, "from", "alice", "Source holder")
	cmd.Flags().StringVar(&to, "to", "bob", "Destination holder")
	cmd.Flags().StringVar(&asset, "asset", "xcoin", "Asset account")
	cmd.Flags().Uint64Var(&units, "units", 1, "Units to transfer")
	cmd.Flags().Uint64Var(&fund, "fund", 100, "Initial units of each holder")
	return cmd
}

// parseLockKind accepts lock kinds in any case: "deposit", "FULL".
func parseLockKind(s string) (tai.LockType, error) {
	return tai.ParseLockType(cases.Title(language.English).String(strings.TrimSpace(s)))
}

func newLockCmd(load hostLoader) *cobra.Command {
	var (
		account, peer, kind, asset string
		fund                       uint64
	)
	cmd := &cobra.Command{
		Use:     "lock",
		Short:   "Lock a holder and try transfers in both directions",
		Example: `  hostsim lock --account bob --kind deposit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseLockKind(kind)
			if err != nil {
				return err
			}
			s, err := newScenario(load, cmd.OutOrStdout(), asset, []string{account, peer}, fund)
			if err != nil {
				return err
			}
			defer s.h.Close()
			if err := s.lock(account, k).Err(); err != nil {
				return err
			}
			s.transfer(peer, account, 1)
			s.transfer(account, peer, 1)
			s.balances(account, peer)
			return nil
		},
	}
	cmd.Flags().StringVar(&account, "account", "bob", "Holder to lock")
	cmd.Flags().StringVar(&peer, "peer", "alice", "Counterparty holder")
	cmd.Flags().StringVar(&kind, "kind", "full", "Lock kind: none, deposit, withdraw or full")
	cmd.Flags().StringVar(&asset, "asset", "xcoin", "Asset account")
	cmd.Flags().Uint64Var(&fund, "fund", 100, "Initial units of each holder")
	return cmd
}
