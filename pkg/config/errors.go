package config

import (
	"errors"

	"github.com/storacha/ramd/pkg/fsutil"
)

var (
	// ErrEnvironmentMissing means HOME is not set. Nothing has been touched
	// on disk when it is returned.
	ErrEnvironmentMissing = errors.New("required environment variable not set")
	// ErrConfigNotFound covers any failure to read the config document.
	ErrConfigNotFound = errors.New("path doesn't exist")
	// ErrConfigParse means the document was read but is not a valid config.
	ErrConfigParse = errors.New("parsing config")
	// ErrPersist means the default config could not be encoded or written.
	ErrPersist = errors.New("persisting config")
	// ErrDirectoryCreate means a directory could not be created, including
	// the case of a strict creation finding an existing directory.
	ErrDirectoryCreate = fsutil.ErrDirectoryCreate
)
