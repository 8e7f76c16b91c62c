package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/storacha/ramd/pkg/fsutil"
)

const filePerm os.FileMode = 0o644

// Resolver locates the ramd configuration, creating a default one on first
// run.
//
// Acquisition follows
//
//	try read -> found     -> done
//	         -> not found -> synthesize default -> persist -> done
//	         -> parse err -> fatal
type Resolver struct {
	env Env
	fs  afero.Fs
}

func NewResolver(env Env, fs afero.Fs) *Resolver {
	return &Resolver{env: env, fs: fs}
}

// Home returns the ramd home directory: <HOME>/<RAMD_DIR_NAME or .ramd>.
func (r *Resolver) Home() (string, error) {
	home, ok := r.env.Lookup(HomeEnv)
	if !ok || home == "" {
		return "", fmt.Errorf("%w: %s", ErrEnvironmentMissing, HomeEnv)
	}

	dirName := DefaultDirName
	if custom, ok := r.env.Lookup(DirNameEnv); ok && custom != "" {
		dirName = custom
	}

	dir, err := filepath.Abs(filepath.Join(home, dirName))
	if err != nil {
		return "", fmt.Errorf("resolving ramd home: %w", err)
	}
	return dir, nil
}

// ConfigPath returns the location of the config document.
func (r *Resolver) ConfigPath() (string, error) {
	home, err := r.Home()
	if err != nil {
		return "", err
	}
	return FilePath(home), nil
}

// Read loads the config document. It never writes to disk.
func (r *Resolver) Read() (RamdConfig, error) {
	home, err := r.Home()
	if err != nil {
		return RamdConfig{}, err
	}
	path := FilePath(home)

	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		log.Debugf("reading config %s: %s", path, err)
		return RamdConfig{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}

	cfg := Default(home)
	if err := Decode(data, &cfg); err != nil {
		return RamdConfig{}, fmt.Errorf("%w: %s: %w", ErrConfigParse, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return RamdConfig{}, fmt.Errorf("%w: %s: %w", ErrConfigParse, path, err)
	}
	return cfg, nil
}

// InitOrRead returns the existing config, or writes and returns a default one
// when none can be read.
//
// First-run initialization creates the config, storage and tracing
// directories with fsutil.EnsureDir, which fails if they already exist. Since
// this path is only taken when no valid config was found, an existing
// directory means a previous run was interrupted or the home directory holds
// foreign state, and we refuse to adopt it. Nothing created before a failure
// is removed.
func (r *Resolver) InitOrRead() (RamdConfig, error) {
	cfg, err := r.Read()
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, ErrConfigParse) {
		return RamdConfig{}, err
	}
	log.Infof("no usable config found (%s), initializing", err)

	home, err := r.Home()
	if err != nil {
		return RamdConfig{}, err
	}
	if err := fsutil.EnsureDirAll(r.fs, home); err != nil {
		return RamdConfig{}, fmt.Errorf("creating ramd home: %w", err)
	}

	cfg = Default(home)

	configDir := filepath.Join(home, ConfigDir)
	if err := fsutil.EnsureDir(r.fs, configDir); err != nil {
		return RamdConfig{}, fmt.Errorf("creating config directory: %w", err)
	}
	if err := fsutil.EnsureDir(r.fs, cfg.Storage.Path); err != nil {
		return RamdConfig{}, fmt.Errorf("creating storage directory: %w", err)
	}
	if err := fsutil.EnsureDir(r.fs, cfg.Tracing.Path); err != nil {
		return RamdConfig{}, fmt.Errorf("creating log directory: %w", err)
	}

	data, err := Encode(cfg)
	if err != nil {
		return RamdConfig{}, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	path := FilePath(home)
	if err := afero.WriteFile(r.fs, path, data, filePerm); err != nil {
		return RamdConfig{}, fmt.Errorf("%w: writing %s: %w", ErrPersist, path, err)
	}
	log.Infof("wrote default config to %s", path)

	return cfg, nil
}

// Finalize makes sure every directory the config refers to exists. It is safe
// to call on any resolved config, any number of times, and returns cfg
// unchanged.
func (r *Resolver) Finalize(cfg RamdConfig) (RamdConfig, error) {
	for _, dir := range []string{
		cfg.Node.RootPath,
		cfg.P2P.ConfigPath,
		cfg.Storage.Path,
		cfg.Tracing.Path,
	} {
		if err := fsutil.EnsureDirAll(r.fs, dir); err != nil {
			return RamdConfig{}, err
		}
	}
	if err := fsutil.EnsureParent(r.fs, cfg.Node.ConfigPath); err != nil {
		return RamdConfig{}, err
	}
	return cfg, nil
}

// Resolve is InitOrRead followed by Finalize.
func (r *Resolver) Resolve() (RamdConfig, error) {
	cfg, err := r.InitOrRead()
	if err != nil {
		return RamdConfig{}, err
	}
	return r.Finalize(cfg)
}
