package config

import "os"

const (
	// HomeEnv names the user's home directory. It must be set.
	HomeEnv = "HOME"
	// DirNameEnv overrides DefaultDirName when set.
	DirNameEnv = "RAMD_DIR_NAME"
)

// Env looks up environment variables. It is injected into the Resolver so
// resolution does not depend on the process environment.
type Env interface {
	Lookup(key string) (string, bool)
}

// OSEnv reads the process environment.
type OSEnv struct{}

func (OSEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnv is a fixed environment.
type MapEnv map[string]string

func (m MapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
