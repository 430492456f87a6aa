package main

import (
	"fmt"
	"os"

	"github.com/govm-net/guestsdk/config"
	"github.com/govm-net/guestsdk/host"
	_ "github.com/govm-net/guestsdk/store/db"
	_ "github.com/govm-net/guestsdk/store/kv"
	"github.com/govm-net/guestsdk/wasmhost"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:   "hostsim",
		Short: "Mock host for guest contracts",
		Long: `Mock host for guest contracts: runs asset scenarios and compiled guests
against an in-process host with pluggable entity storage.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")

	load := func() (*host.Host, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		logger, err := cfg.Logger()
		if err != nil {
			return nil, err
		}
		wasmhost.SetLogger(logger)
		return host.New(cfg, host.WithLogger(logger))
	}

	root.AddCommand(newVectorsCmd())
	root.AddCommand(newTransferCmd(load))
	root.AddCommand(newLockCmd(load))
	root.AddCommand(newRunCmd(load))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
