package tracing

import (
	"context"
	"path/filepath"
	"testing"

	logging "github.com/ipfs/go-log/v2"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/storacha/ramd/pkg/config"
)

func TestLogConfig(t *testing.T) {
	home := t.TempDir()

	tests := []struct {
		name   string
		mutate func(*config.TracingConfig)
		format logging.LogFormat
		level  logging.LogLevel
		file   string
	}{
		{
			name:   "defaults",
			mutate: func(*config.TracingConfig) {},
			format: logging.ColorizedOutput,
			level:  logging.LevelInfo,
			file:   filepath.Join(home, "logs", "ramd.log"),
		},
		{
			name: "json debug",
			mutate: func(c *config.TracingConfig) {
				c.Format = config.LogFormatJSON
				c.Level = "debug"
			},
			format: logging.JSONOutput,
			level:  logging.LevelDebug,
			file:   filepath.Join(home, "logs", "ramd.log"),
		},
		{
			name: "plain text without file",
			mutate: func(c *config.TracingConfig) {
				c.Format = config.LogFormatNoColor
				c.FileName = ""
			},
			format: logging.PlaintextOutput,
			level:  logging.LevelInfo,
		},
		{
			name:   "bad level falls back to info",
			mutate: func(c *config.TracingConfig) { c.Level = "loud" },
			format: logging.ColorizedOutput,
			level:  logging.LevelInfo,
			file:   filepath.Join(home, "logs", "ramd.log"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultTracingConfig(home)
			tt.mutate(&cfg)

			lc := LogConfig(cfg)
			require.Equal(t, tt.format, lc.Format)
			require.Equal(t, tt.level, lc.Level)
			require.Equal(t, tt.file, lc.File)
			require.Equal(t, cfg.Stderr, lc.Stderr)
		})
	}
}

func TestSetLevel(t *testing.T) {
	require.NoError(t, SetLevel("warn"))
	require.Error(t, SetLevel("shouting"))
}

func TestNewTelemetryWithoutEndpoint(t *testing.T) {
	tel, err := NewTelemetry(context.Background(), config.DefaultTracingConfig(t.TempDir()))
	require.NoError(t, err)
	require.IsType(t, metricnoop.MeterProvider{}, tel.Metrics)
	require.IsType(t, tracenoop.TracerProvider{}, tel.Traces)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestNewTelemetryWithEndpoint(t *testing.T) {
	cfg := config.DefaultTracingConfig(t.TempDir())
	cfg.OTLPEndpoint = "127.0.0.1:4318"
	cfg.OTLPInsecure = true

	// exporters connect lazily, so no collector is needed to build them
	tel, err := NewTelemetry(context.Background(), cfg)
	require.NoError(t, err)
	require.IsType(t, &sdkmetric.MeterProvider{}, tel.Metrics)
	require.IsType(t, &sdktrace.TracerProvider{}, tel.Traces)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// shutdown with a cancelled context must not hang
	_ = tel.Shutdown(ctx)
}
