package cli

import (
	"github.com/spf13/cobra"

	"github.com/storacha/ramd/cmd/cliutil"
	"github.com/storacha/ramd/cmd/cliutil/format"
	"github.com/storacha/ramd/pkg/admin"
)

func NewLogCmd() *cobra.Command {
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Manage logging subsystems and levels of a running node",
	}

	logListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all logging subsystems and their levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := format.FromCommand(cmd)
			if err != nil {
				return err
			}

			client := admin.NewClient(cliutil.MustGetRPCAPI(cmd))
			resp, err := client.ListLogLevels(cmd.Context())
			if err != nil {
				return err
			}
			return out.Format(resp)
		},
	}
	format.AddOutputFlag(logListCmd)

	logSetLevelCmd := &cobra.Command{
		Use:   "set-level <level>",
		Short: "Set log level for a subsystem or all subsystems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := args[0]
			systems, err := cmd.Flags().GetStringSlice("system")
			if err != nil {
				return err
			}

			client := admin.NewClient(cliutil.MustGetRPCAPI(cmd))

			if len(systems) == 0 {
				// no systems given, apply the level to every one the node knows
				resp, err := client.ListLogLevels(cmd.Context())
				if err != nil {
					return err
				}
				for subsystem := range resp.Levels {
					if err := client.SetLogLevel(cmd.Context(), subsystem, level); err != nil {
						return err
					}
				}
				return nil
			}

			for _, system := range systems {
				if err := client.SetLogLevel(cmd.Context(), system, level); err != nil {
					return err
				}
			}

			return nil
		},
	}
	logSetLevelCmd.Flags().StringSlice("system", []string{}, "Subsystem to target. Pass multiple times for multiple systems.")

	logCmd.AddCommand(logListCmd)
	logCmd.AddCommand(logSetLevelCmd)

	return logCmd
}
