package config

import "path/filepath"

// P2PDir holds networking state under the ramd home.
const P2PDir = "p2p"

type P2PConfig struct {
	// ConfigPath is the directory holding networking state.
	ConfigPath string `toml:"config_path" validate:"required,abspath"`
	// ListenAddr is the multiaddr the p2p server will listen on.
	ListenAddr string `toml:"listen_addr" validate:"required,multiaddr"`
	MaxPeers   int    `toml:"max_peers" validate:"min=0"`
}

func (p P2PConfig) Validate() error {
	return validateConfig(p)
}

func DefaultP2PConfig(home string) P2PConfig {
	return P2PConfig{
		ConfigPath: filepath.Join(home, P2PDir),
		ListenAddr: "/ip4/0.0.0.0/tcp/9000",
		MaxPeers:   50,
	}
}
