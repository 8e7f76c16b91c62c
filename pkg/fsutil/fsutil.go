// Package fsutil derives and creates the directories implied by configured
// file system paths.
//
// Two creation primitives are provided on purpose. EnsureDir is strict and
// fails when the directory already exists; it is used during first-run
// initialization, where finding an existing directory means a previous run
// left state behind. EnsureDirAll and EnsureParent are lenient and may be
// called any number of times.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/afero"
)

var log = logging.Logger("fsutil")

// Separator is the only path separator understood by ParentDir.
const Separator = "/"

// DirPerm is the permission used for every directory created by this package.
const DirPerm os.FileMode = 0o755

var (
	// ErrDirectoryCreate is returned when a directory could not be created,
	// including when EnsureDir finds the directory already present.
	ErrDirectoryCreate = errors.New("creating directory")
	// ErrNoParent is returned when no parent can be derived from a path.
	ErrNoParent = errors.New("path has no parent directory")
)

// ParentDir strips the final segment of path and returns what remains,
// including the trailing separator:
//
//	/home/u/.ramd/db/data -> /home/u/.ramd/db/
//
// A path that already ends in a separator names a directory and is returned
// unchanged. A path without any separator has no discoverable parent.
func ParentDir(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrNoParent)
	}
	if strings.HasSuffix(path, Separator) {
		return path, nil
	}
	idx := strings.LastIndex(path, Separator)
	if idx < 0 {
		return "", fmt.Errorf("%w: %q", ErrNoParent, path)
	}
	return path[:idx+1], nil
}

// EnsureParent creates every missing directory leading up to the parent of
// path. It is a no-op when they already exist.
func EnsureParent(fs afero.Fs, path string) error {
	parent, err := ParentDir(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDirectoryCreate, err)
	}
	return EnsureDirAll(fs, parent)
}

// EnsureDirAll creates path and any missing ancestors. It is a no-op when path
// already exists as a directory.
func EnsureDirAll(fs afero.Fs, path string) error {
	if err := fs.MkdirAll(path, DirPerm); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDirectoryCreate, path, err)
	}
	return nil
}

// EnsureDir creates exactly one directory. Unlike EnsureDirAll it fails when
// path already exists.
func EnsureDir(fs afero.Fs, path string) error {
	if err := fs.Mkdir(path, DirPerm); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDirectoryCreate, path, err)
	}
	log.Debugf("created directory %s", path)
	return nil
}
