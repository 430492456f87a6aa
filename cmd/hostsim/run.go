package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/govm-net/guestsdk/wasmhost"
	"github.com/spf13/cobra"
	"github.com/tetratelabs/wazero"
)

func newRunCmd(load hostLoader) *cobra.Command {
	var (
		account, method, caller, argsHex string
	)
	cmd := &cobra.Command{
		Use:     "run <module.wasm>",
		Short:   "Run a compiled guest through its run entry point",
		Example: `  hostsim run guest.wasm --method transfer --args-hex 93a1...`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read module: %w", err)
			}
			input, err := hex.DecodeString(argsHex)
			if err != nil {
				return fmt.Errorf("--args-hex: %w", err)
			}

			h, err := load()
			if err != nil {
				return err
			}
			defer h.Close()

			ctx := context.Background()
			rt := wazero.NewRuntime(ctx)
			defer rt.Close(ctx)
			if _, err := wasmhost.Instantiate(ctx, rt, h); err != nil {
				return err
			}
			g, err := wasmhost.NewGuest(ctx, rt, account, code)
			if err != nil {
				return err
			}
			wasmhost.Register(ctx, h, account, g, method)

			res := h.Execute(h.RootContext(caller, account, method), input)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "success: %v\n", res.Success)
			if res.Success {
				fmt.Fprintf(out, "data:    %s\n", hex.EncodeToString(res.Data))
			} else {
				fmt.Fprintf(out, "error:   %s\n", res.Data)
			}
			for _, l := range h.Logs() {
				fmt.Fprintf(out, "log[%s]: %s\n", l.Owner, l.Message)
			}
			for _, e := range h.Events() {
				fmt.Fprintf(out, "event[%s]: %s %s\n", e.Owner, e.Name, hex.EncodeToString(e.Data))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&account, "account", "guest", "Account the guest is deployed on")
	cmd.Flags().StringVarP(&method, "method", "m", "run", "Method to call")
	cmd.Flags().StringVar(&caller, "caller", "user", "Caller and origin of the call")
	cmd.Flags().StringVarP(&argsHex, "args-hex", "a", "", "Hex encoded call arguments")
	return cmd
}
