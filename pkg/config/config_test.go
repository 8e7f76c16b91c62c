package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("/home/u/.ramd")

	require.Equal(t, "/home/u/.ramd", cfg.Node.RootPath)
	require.Equal(t, "/home/u/.ramd/node/identity.key", cfg.Node.ConfigPath)
	require.Equal(t, "/home/u/.ramd/db", cfg.Storage.Path)
	require.Equal(t, "/home/u/.ramd/p2p", cfg.P2P.ConfigPath)
	require.Equal(t, "/home/u/.ramd/logs", cfg.Tracing.Path)
	require.Equal(t, "/home/u/.ramd/logs/ramd.log", cfg.Tracing.LogFilePath())
	require.Equal(t, "127.0.0.1:3000", cfg.RPC.Addr())
	require.NoError(t, cfg.Validate())

	// defaults are deterministic
	require.Equal(t, cfg, Default("/home/u/.ramd"))
	require.True(t, cfg == Default("/home/u/.ramd"))
	require.NotEqual(t, cfg, Default("/home/v/.ramd"))
}

func TestFilePath(t *testing.T) {
	require.Equal(t, "/home/u/.ramd/config/ramd.toml", FilePath("/home/u/.ramd"))
}

func populatedConfig() RamdConfig {
	return RamdConfig{
		Node: NodeConfig{
			RootPath:   "/srv/ramd",
			ConfigPath: "/srv/ramd/keys/node.key",
			Name:       "ramd-eu-1",
		},
		Storage: StorageConfig{
			Path:           "/mnt/fast/ramd-db",
			NoSync:         true,
			BlockCacheMiB:  64,
			WriteBufferMiB: 32,
		},
		RPC: RPCConfig{
			Host:              "0.0.0.0",
			Port:              8545,
			BodyLimit:         "4M",
			RequestsPerSecond: 12.5,
		},
		P2P: P2PConfig{
			ConfigPath: "/srv/ramd/net",
			ListenAddr: "/ip6/::/udp/4001/quic-v1",
			MaxPeers:   200,
		},
		Tracing: TracingConfig{
			Path:         "/var/log/ramd",
			FileName:     "node.log",
			Level:        "debug",
			Format:       LogFormatJSON,
			Stderr:       false,
			OTLPEndpoint: "otel-collector:4318",
			OTLPInsecure: true,
		},
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		cfg  RamdConfig
	}{
		{name: "default", cfg: Default("/home/u/.ramd")},
		{name: "populated", cfg: populatedConfig()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.cfg.Validate())

			data, err := Encode(tt.cfg)
			require.NoError(t, err)

			var decoded RamdConfig
			require.NoError(t, Decode(data, &decoded))
			require.Equal(t, tt.cfg, decoded)

			var strict RamdConfig
			require.NoError(t, DecodeStrict(strings.NewReader(string(data)), &strict))
			require.Equal(t, tt.cfg, strict)
		})
	}
}

func TestDecodePartialDocument(t *testing.T) {
	doc := `
[rpc]
port = 9944

[tracing]
level = "warn"
`
	cfg := Default("/home/u/.ramd")
	require.NoError(t, Decode([]byte(doc), &cfg))

	want := Default("/home/u/.ramd")
	want.RPC.Port = 9944
	want.Tracing.Level = "warn"
	require.Equal(t, want, cfg)
}

func TestDecodeStrictRejectsUnknownKeys(t *testing.T) {
	doc := `
[rpc]
port = 9944
cors = ["*"]
`
	var cfg RamdConfig
	require.Error(t, DecodeStrict(strings.NewReader(doc), &cfg))

	// the lenient decoder ignores them
	require.NoError(t, Decode([]byte(doc), &cfg))
	require.Equal(t, uint(9944), cfg.RPC.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *RamdConfig)
		field  string
	}{
		{name: "relative storage path", mutate: func(c *RamdConfig) { c.Storage.Path = "db" }, field: "path"},
		{name: "relative node identity", mutate: func(c *RamdConfig) { c.Node.ConfigPath = "node/identity.key" }, field: "config_path"},
		{name: "missing node name", mutate: func(c *RamdConfig) { c.Node.Name = "" }, field: "name"},
		{name: "port out of range", mutate: func(c *RamdConfig) { c.RPC.Port = 70000 }, field: "port"},
		{name: "bad body limit", mutate: func(c *RamdConfig) { c.RPC.BodyLimit = "lots" }, field: "body_limit"},
		{name: "negative rate", mutate: func(c *RamdConfig) { c.RPC.RequestsPerSecond = -1 }, field: "requests_per_second"},
		{name: "bad listen addr", mutate: func(c *RamdConfig) { c.P2P.ListenAddr = "0.0.0.0:9000" }, field: "listen_addr"},
		{name: "unknown log level", mutate: func(c *RamdConfig) { c.Tracing.Level = "loud" }, field: "level"},
		{name: "unknown log format", mutate: func(c *RamdConfig) { c.Tracing.Format = "xml" }, field: "format"},
		{name: "bad otlp endpoint", mutate: func(c *RamdConfig) { c.Tracing.OTLPEndpoint = "http://collector" }, field: "otlp_endpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("/home/u/.ramd")
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestSectionValidate(t *testing.T) {
	require.NoError(t, DefaultNodeConfig("/h").Validate())
	require.NoError(t, DefaultStorageConfig("/h").Validate())
	require.NoError(t, DefaultRPCConfig().Validate())
	require.NoError(t, DefaultP2PConfig("/h").Validate())
	require.NoError(t, DefaultTracingConfig("/h").Validate())

	require.Error(t, DefaultStorageConfig("h").Validate())
}
