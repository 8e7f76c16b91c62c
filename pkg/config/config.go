package config

import (
	"path/filepath"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("config")

const (
	// DefaultDirName is the name of the directory holding all ramd data,
	// relative to the user's home directory.
	DefaultDirName = ".ramd"
	// ConfigDir is the directory under the ramd home holding the config file.
	ConfigDir = "config"
	// ConfigFile is the name of the persisted configuration document.
	ConfigFile = "ramd.toml"
)

// RamdConfig gathers every config value used across a ramd node.
//
// All fields are scalars so values can be compared with ==.
type RamdConfig struct {
	// Node identity and root settings.
	Node NodeConfig `toml:"node"`
	// Embedded key-value store.
	Storage StorageConfig `toml:"storage"`
	// JSON-RPC server.
	RPC RPCConfig `toml:"rpc"`
	// Peer networking.
	P2P P2PConfig `toml:"p2p"`
	// Logging and tracing.
	Tracing TracingConfig `toml:"tracing"`
}

// Default returns a configuration whose every path is rooted under home.
func Default(home string) RamdConfig {
	return RamdConfig{
		Node:    DefaultNodeConfig(home),
		Storage: DefaultStorageConfig(home),
		RPC:     DefaultRPCConfig(),
		P2P:     DefaultP2PConfig(home),
		Tracing: DefaultTracingConfig(home),
	}
}

func (c RamdConfig) Validate() error {
	return validateConfig(c)
}

// FilePath returns the location of the config document for a ramd home.
func FilePath(home string) string {
	return filepath.Join(home, ConfigDir, ConfigFile)
}
