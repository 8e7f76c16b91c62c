package config

import (
	"net"
	"strconv"
)

type RPCConfig struct {
	Host string `toml:"host" validate:"required"`
	// Port to listen on. Zero picks a free port.
	Port uint `toml:"port" validate:"max=65535"`
	// BodyLimit caps request bodies, e.g. "512K" or "1M".
	BodyLimit string `toml:"body_limit" validate:"required,bytesize"`
	// RequestsPerSecond enables a per client rate limit when positive.
	RequestsPerSecond float64 `toml:"requests_per_second" validate:"min=0"`
}

func (r RPCConfig) Validate() error {
	return validateConfig(r)
}

// Addr returns the host:port the server binds to.
func (r RPCConfig) Addr() string {
	return net.JoinHostPort(r.Host, strconv.FormatUint(uint64(r.Port), 10))
}

func DefaultRPCConfig() RPCConfig {
	return RPCConfig{
		Host:      "127.0.0.1",
		Port:      3000,
		BodyLimit: "1M",
	}
}
