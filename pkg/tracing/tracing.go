// Package tracing configures logging and, when a collector is configured,
// OpenTelemetry traces and metrics for the node.
package tracing

import (
	"context"
	"fmt"
	"time"

	logging "github.com/ipfs/go-log/v2"

	"github.com/storacha/ramd/pkg/config"
)

var log = logging.Logger("tracing")

const setupTimeout = 10 * time.Second

// Init configures process wide logging from cfg and starts OTLP export when
// cfg.OTLPEndpoint is set. Telemetry failures are logged, never returned.
func Init(cfg config.TracingConfig) {
	logging.SetupLogging(LogConfig(cfg))

	if cfg.OTLPEndpoint == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()
	if _, err := NewTelemetry(ctx, cfg); err != nil {
		log.Warnf("telemetry disabled: %s", err)
		return
	}
	log.Infow("exporting telemetry", "endpoint", cfg.OTLPEndpoint)
}

// LogConfig translates the tracing section into a go-log configuration. An
// unparseable level falls back to info.
func LogConfig(cfg config.TracingConfig) logging.Config {
	lvl, err := logging.LevelFromString(cfg.Level)
	if err != nil {
		lvl = logging.LevelInfo
	}

	lc := logging.Config{
		Format: logFormat(cfg.Format),
		Level:  lvl,
		Stderr: cfg.Stderr,
	}
	if cfg.Path != "" && cfg.FileName != "" {
		lc.File = cfg.LogFilePath()
	}
	return lc
}

func logFormat(format string) logging.LogFormat {
	switch format {
	case config.LogFormatJSON:
		return logging.JSONOutput
	case config.LogFormatNoColor:
		return logging.PlaintextOutput
	default:
		return logging.ColorizedOutput
	}
}

// SetLevel applies level to every registered subsystem.
func SetLevel(level string) error {
	if _, err := logging.LevelFromString(level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return logging.SetLogLevel("*", level)
}
