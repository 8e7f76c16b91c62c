package serve

import (
	"context"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/storacha/ramd/cmd/cliutil"
	"github.com/storacha/ramd/pkg/config"
	"github.com/storacha/ramd/pkg/daemon"
	"github.com/storacha/ramd/pkg/fx/app"
	"github.com/storacha/ramd/pkg/tracing"
)

var log = logging.Logger("cmd/serve")

func NewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the ramd node",
		Long: `Start the ramd node. The configuration is read from, or on first run
written to, $HOME/.ramd/config/ramd.toml. The node runs until the process is
terminated.`,
		Args: cobra.NoArgs,
		RunE: Run,
	}
}

func Run(cmd *cobra.Command, _ []string) error {
	c := Collaborators(viper.GetString("log_level"))

	// print the banner once the node is up
	banner := fx.Invoke(func(lc fx.Lifecycle, n app.Node) {
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				info := n.Info()
				cliutil.PrintHero(cmd.OutOrStdout(), info.Name, info.ID)
				return nil
			},
		})
	})

	return daemon.Run(cmd.Context(), cliutil.NewResolver(), c, banner)
}

// Collaborators returns the default subsystems, reapplying level after the
// node config has set up logging.
func Collaborators(level string) app.Collaborators {
	c := app.DefaultCollaborators()
	if level != "" {
		c.InitTracing = withLevel(c.InitTracing, level)
	}
	return c
}

func withLevel(initTracing func(config.TracingConfig), level string) func(config.TracingConfig) {
	return func(cfg config.TracingConfig) {
		initTracing(cfg)
		if err := tracing.SetLevel(level); err != nil {
			log.Warnf("ignoring log level override: %s", err)
		}
	}
}
