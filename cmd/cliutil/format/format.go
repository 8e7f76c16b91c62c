// Package format renders command output as a table or as JSON.
package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// OutputFormat represents the format for CLI output
type OutputFormat string

const (
	TableFormat OutputFormat = "table"
	JSONFormat  OutputFormat = "json"
)

const outputFlag = "output"

// ParseOutputFormat parses a string into an OutputFormat
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch s {
	case "table", "":
		return TableFormat, nil
	case "json":
		return JSONFormat, nil
	default:
		return "", fmt.Errorf("unknown output format: %s (valid formats: table or json)", s)
	}
}

// Formatter is an interface for formatting output
type Formatter interface {
	Format(data interface{}) error
}

// NewFormatter creates a formatter based on the output format
func NewFormatter(format OutputFormat, writer io.Writer) Formatter {
	if format == JSONFormat {
		return &JSONFormatter{writer: writer}
	}
	return &TableFormatter{writer: writer}
}

// AddOutputFlag adds the --output flag read by FromCommand.
func AddOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(outputFlag, "o", string(TableFormat), "Output format: table or json")
}

// FromCommand returns a formatter writing to the command's output in the
// format chosen with --output.
func FromCommand(cmd *cobra.Command) (Formatter, error) {
	raw, err := cmd.Flags().GetString(outputFlag)
	if err != nil {
		return nil, err
	}
	f, err := ParseOutputFormat(raw)
	if err != nil {
		return nil, err
	}
	return NewFormatter(f, cmd.OutOrStdout()), nil
}

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	writer io.Writer
}

// Format implements the Formatter interface for JSON
func (f *JSONFormatter) Format(data interface{}) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
