package repo

import (
	"fmt"

	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/storacha/ramd/pkg/config"
	"github.com/storacha/ramd/pkg/node"
)

func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the ramd home directory, config and node identity",
		Long: `Create the ramd home directory with a default config, the directories the
node needs and the node identity key. Existing files are kept, so running
init again is safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, config.OSEnv{}, afero.NewOsFs())
		},
	}
}

func runInit(cmd *cobra.Command, env config.Env, fsys afero.Fs) error {
	r := config.NewResolver(env, fsys)
	cfg, err := r.Resolve()
	if err != nil {
		return err
	}
	path, err := r.ConfigPath()
	if err != nil {
		return err
	}

	sk, err := node.LoadOrCreateIdentity(fsys, cfg.Node.ConfigPath)
	if err != nil {
		return err
	}
	id, err := peer.IDFromPrivateKey(sk)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "home:     %s\n", cfg.Node.RootPath)
	fmt.Fprintf(out, "config:   %s\n", path)
	fmt.Fprintf(out, "identity: %s\n", cfg.Node.ConfigPath)
	fmt.Fprintf(out, "peer id:  %s\n", id)
	return nil
}
