package cliutil

import (
	"fmt"
	"io"

	"github.com/labstack/gommon/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/storacha/ramd/pkg/build"
	"github.com/storacha/ramd/pkg/config"
)

// DefaultRPCAPI is where client commands reach a local node.
const DefaultRPCAPI = "127.0.0.1:3000"

// PrintHero prints the startup banner.
func PrintHero(w io.Writer, name, peerID string) {
	fmt.Fprintf(w, `
%s
%s  %s
%s  %s
`,
		color.Green("ramd", color.B),
		color.Grey("version"), build.Version,
		color.Grey("node   "), color.Cyan(name+" "+peerID),
	)
}

// NewResolver returns a config resolver over the process environment and the
// real file system.
func NewResolver() *config.Resolver {
	return config.NewResolver(config.OSEnv{}, afero.NewOsFs())
}

// MustGetRPCAPI returns the host:port of the node's RPC server. It exits when
// the value cannot be determined.
func MustGetRPCAPI(cmd *cobra.Command) string {
	if addr := viper.GetString("rpc_api"); addr != "" {
		return addr
	}
	addr, err := cmd.Flags().GetString("rpc-api")
	cobra.CheckErr(err)
	return addr
}
