package config

import "path/filepath"

const (
	// NodeDir holds node specific state under the ramd home.
	NodeDir = "node"
	// IdentityFile stores the node's private key.
	IdentityFile = "identity.key"
	// DefaultNodeName is used when the operator does not name the node.
	DefaultNodeName = "ramd"
)

type NodeConfig struct {
	// RootPath is the directory all node data lives under.
	RootPath string `toml:"root_path" validate:"required,abspath"`
	// ConfigPath is the node identity file. Its parent directory is created on
	// startup, the file itself is generated by the node on first use.
	ConfigPath string `toml:"config_path" validate:"required,abspath"`
	Name       string `toml:"name" validate:"required"`
}

func (n NodeConfig) Validate() error {
	return validateConfig(n)
}

func DefaultNodeConfig(home string) NodeConfig {
	return NodeConfig{
		RootPath:   home,
		ConfigPath: filepath.Join(home, NodeDir, IdentityFile),
		Name:       DefaultNodeName,
	}
}
