package cli

import (
	"context"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/storacha/ramd/cmd/cli/client"
	"github.com/storacha/ramd/cmd/cli/repo"
	"github.com/storacha/ramd/cmd/cli/serve"
	"github.com/storacha/ramd/cmd/cliutil"
)

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}

var log = logging.Logger("cmd")

const ramdShortDescription = `
ramd runs a ramd node
`

const ramdLongDescription = `
ramd resolves its configuration from $HOME/.ramd (or $HOME/$RAMD_DIR_NAME),
writing a default one on first run, then starts storage, the node and the
JSON-RPC server in that order and runs until the process is terminated.
`

var rootCmd = newRootCmd()

func init() {
	cobra.OnInitialize(initConfig, initLogging)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ramd",
		Short: ramdShortDescription,
		Long:  ramdLongDescription,
		Args:  cobra.NoArgs,
		// running ramd without a subcommand starts the node
		RunE: serve.Run,
	}

	root.PersistentFlags().String("log-level", "", "logging level applied to every subsystem")
	cobra.CheckErr(viper.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level")))
	cobra.CheckErr(viper.BindEnv("log_level", "RAMD_LOG_LEVEL"))

	root.PersistentFlags().String("rpc-api", cliutil.DefaultRPCAPI, "RPC API address used by client commands")
	cobra.CheckErr(viper.BindPFlag("rpc_api", root.PersistentFlags().Lookup("rpc-api")))
	cobra.CheckErr(viper.BindEnv("rpc_api", "RAMD_RPC_API"))

	root.AddCommand(serve.NewCmd())
	root.AddCommand(repo.NewInitCmd())
	root.AddCommand(repo.NewConfigCmd())
	root.AddCommand(client.NewCmd())
	root.AddCommand(NewLogCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func initConfig() {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.SetEnvPrefix("RAMD")
	viper.AutomaticEnv()
}

// initLogging keeps CLI output quiet unless a level was requested. serve
// reconfigures logging from the node config and then reapplies the requested
// level.
func initLogging() {
	if level := viper.GetString("log_level"); level != "" {
		ll, err := logging.LevelFromString(level)
		cobra.CheckErr(err)
		logging.SetAllLoggers(ll)
		return
	}
	logging.SetLogLevel("config", "warn")
	logging.SetLogLevel("fsutil", "warn")
	logging.SetLogLevel("node", "warn")
	logging.SetLogLevel("store", "warn")
}
