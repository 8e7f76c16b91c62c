package config

import "path/filepath"

const (
	// LogDir is the log directory under the ramd home.
	LogDir = "logs"
	// LogFile is the default log file name inside LogDir.
	LogFile = "ramd.log"
)

// Log output formats understood by the tracing subsystem.
const (
	LogFormatColor   = "color"
	LogFormatNoColor = "nocolor"
	LogFormatJSON    = "json"
)

type TracingConfig struct {
	// Path is the directory log files are written to.
	Path     string `toml:"path" validate:"required,abspath"`
	FileName string `toml:"file_name" validate:"required"`
	Level    string `toml:"level" validate:"required,loglevel"`
	Format   string `toml:"format" validate:"required,oneof=color nocolor json"`
	// Stderr also writes logs to standard error.
	Stderr bool `toml:"stderr"`
	// OTLPEndpoint is a host:port of an OTLP/HTTP collector receiving traces
	// and metrics. Empty disables export.
	OTLPEndpoint string `toml:"otlp_endpoint" validate:"omitempty,hostname_port"`
	OTLPInsecure bool   `toml:"otlp_insecure"`
}

func (t TracingConfig) Validate() error {
	return validateConfig(t)
}

// LogFilePath is the full path of the log file.
func (t TracingConfig) LogFilePath() string {
	return filepath.Join(t.Path, t.FileName)
}

func DefaultTracingConfig(home string) TracingConfig {
	return TracingConfig{
		Path:     filepath.Join(home, LogDir),
		FileName: LogFile,
		Level:    "info",
		Format:   LogFormatColor,
		Stderr:   true,
	}
}
