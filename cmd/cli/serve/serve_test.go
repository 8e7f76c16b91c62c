package serve

import (
	"testing"

	logging "github.com/ipfs/go-log/v2"
	"github.com/stretchr/testify/require"

	"github.com/storacha/ramd/pkg/config"
)

func TestWithLevel(t *testing.T) {
	lg := logging.Logger("serve-test")

	var initialized bool
	initTracing := func(config.TracingConfig) {
		initialized = true
		// tracing init resets every subsystem to the configured level
		require.NoError(t, logging.SetLogLevel("*", "debug"))
	}

	withLevel(initTracing, "error")(config.DefaultTracingConfig(t.TempDir()))
	require.True(t, initialized)
	require.Equal(t, "error", lg.Level().String())
}

func TestWithBadLevel(t *testing.T) {
	lg := logging.Logger("serve-test-bad")

	withLevel(func(config.TracingConfig) {
		require.NoError(t, logging.SetLogLevel("*", "info"))
	}, "shouting")(config.DefaultTracingConfig(t.TempDir()))
	require.Equal(t, "info", lg.Level().String())
}

func TestCollaborators(t *testing.T) {
	c := Collaborators("")
	require.NotNil(t, c.InitTracing)
	require.NotNil(t, c.NewStorage)
	require.NotNil(t, c.NewNode)
	require.NotNil(t, c.LaunchRPC)
	require.NotNil(t, c.NewP2P)

	require.NotNil(t, Collaborators("warn").InitTracing)
}
