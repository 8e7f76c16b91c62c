package config

import "path/filepath"

// StorageDir is the LevelDB directory under the ramd home.
const StorageDir = "db"

type StorageConfig struct {
	// Path is the database directory.
	Path string `toml:"path" validate:"required,abspath"`
	// NoSync disables fsync on writes. Faster, but unsafe on power loss.
	NoSync bool `toml:"no_sync"`
	// BlockCacheMiB is the LevelDB block cache capacity in MiB. Zero uses the
	// LevelDB default.
	BlockCacheMiB int `toml:"block_cache_mib" validate:"min=0"`
	// WriteBufferMiB is the LevelDB memtable size in MiB. Zero uses the
	// LevelDB default.
	WriteBufferMiB int `toml:"write_buffer_mib" validate:"min=0"`
}

func (s StorageConfig) Validate() error {
	return validateConfig(s)
}

func DefaultStorageConfig(home string) StorageConfig {
	return StorageConfig{
		Path:           filepath.Join(home, StorageDir),
		BlockCacheMiB:  8,
		WriteBufferMiB: 4,
	}
}
