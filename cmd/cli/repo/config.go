package repo

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/storacha/ramd/pkg/config"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the ramd configuration",
	}
	cmd.AddCommand(newShowCmd(config.OSEnv{}, afero.NewOsFs()))
	cmd.AddCommand(newValidateCmd(config.OSEnv{}, afero.NewOsFs()))
	return cmd
}

func newShowCmd(env config.Env, fsys afero.Fs) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration: the config file with defaults applied to
any field it leaves out. Nothing is written to disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewResolver(env, fsys).Read()
			if err != nil {
				return err
			}
			data, err := config.Encode(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newValidateCmd(env config.Env, fsys afero.Fs) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a config file for unknown keys and invalid values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := config.NewResolver(env, fsys)

			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				p, err := r.ConfigPath()
				if err != nil {
					return err
				}
				path = p
			}

			// fields the file leaves out take their home rooted defaults when
			// the home directory is known
			var cfg config.RamdConfig
			if home, err := r.Home(); err == nil {
				cfg = config.Default(home)
			}

			f, err := fsys.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer f.Close()

			if err := config.DecodeStrict(f, &cfg); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			return nil
		},
	}
}
