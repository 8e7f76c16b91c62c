package client

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ybbus/jsonrpc/v2"

	"github.com/storacha/ramd/cmd/cliutil"
	"github.com/storacha/ramd/cmd/cliutil/format"
	"github.com/storacha/ramd/pkg/node"
	"github.com/storacha/ramd/pkg/rpc"
)

func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Interact with a running ramd node over JSON-RPC",
	}

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show the node's identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := format.FromCommand(cmd)
			if err != nil {
				return err
			}
			var info node.Info
			if err := call(cmd, &info, rpc.MethodNodeInfo); err != nil {
				return err
			}
			return out.Format(&info)
		},
	}
	format.AddOutputFlag(infoCmd)

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value stored under key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var entry rpc.Entry
			if err := call(cmd, &entry, rpc.MethodGet, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), entry.Value)
			return nil
		},
	}

	putCmd := &cobra.Command{
		Use:   "put <key> <value>",
		Short: "Store value under key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ok bool
			return call(cmd, &ok, rpc.MethodPut, args[0], args[1])
		},
	}

	hasCmd := &cobra.Command{
		Use:   "has <key>",
		Short: "Report whether a value is stored under key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var has bool
			if err := call(cmd, &has, rpc.MethodHas, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), has)
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <key>",
		Short: "Remove the value stored under key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ok bool
			return call(cmd, &ok, rpc.MethodDelete, args[0])
		},
	}

	cmd.AddCommand(infoCmd, getCmd, putCmd, hasCmd, deleteCmd)
	return cmd
}

// call invokes method on the node and decodes its result into out.
func call(cmd *cobra.Command, out any, method string, params ...any) error {
	client := jsonrpc.NewClient("http://" + cliutil.MustGetRPCAPI(cmd))
	res, err := client.Call(method, params...)
	if err != nil {
		return fmt.Errorf("calling %s: %w", method, err)
	}
	if res.Error != nil {
		return fmt.Errorf("%s: %s (code %d)", method, res.Error.Message, res.Error.Code)
	}
	if err := res.GetObject(out); err != nil {
		return fmt.Errorf("decoding %s result: %w", method, err)
	}
	return nil
}
