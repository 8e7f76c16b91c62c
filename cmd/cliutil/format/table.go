package format

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/storacha/ramd/pkg/admin"
	"github.com/storacha/ramd/pkg/node"
)

// TableFormatter formats output as a table
type TableFormatter struct {
	writer io.Writer
}

// Format implements the Formatter interface for tables
func (f *TableFormatter) Format(data interface{}) error {
	switch v := data.(type) {
	case *admin.ListLogLevelsResponse:
		return f.formatLogLevels(v)
	case *node.Info:
		return f.formatNodeInfo(v)
	default:
		return fmt.Errorf("table format not supported for type %T", data)
	}
}

func (f *TableFormatter) formatLogLevels(resp *admin.ListLogLevelsResponse) error {
	if len(resp.Levels) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
		_, err := fmt.Fprintln(f.writer, empty.Render("No logging subsystems registered"))
		return err
	}

	subsystems := make([]string, 0, len(resp.Levels))
	for s := range resp.Levels {
		subsystems = append(subsystems, s)
	}
	sort.Strings(subsystems)

	rows := make([]table.Row, 0, len(subsystems))
	for _, s := range subsystems {
		rows = append(rows, table.Row{s, resp.Levels[s]})
	}

	return f.render([]table.Column{
		{Title: "SUBSYSTEM", Width: 32},
		{Title: "LEVEL", Width: 8},
	}, rows)
}

func (f *TableFormatter) formatNodeInfo(info *node.Info) error {
	return f.render([]table.Column{
		{Title: "FIELD", Width: 12},
		{Title: "VALUE", Width: 80},
	}, []table.Row{
		{"name", info.Name},
		{"peer id", info.ID},
		{"public key", info.PublicKey},
		{"started", info.StartedAt.Format(time.RFC3339)},
	})
}

func (f *TableFormatter) render(columns []table.Column, rows []table.Row) error {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		// the header and its border take two lines of the table's height
		table.WithHeight(len(rows)+2),
		table.WithWidth(256),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	// nothing is focused, so the selected row must not stand out
	s.Selected = s.Cell
	t.SetStyles(s)

	tableView := t.View()
	if tableView == "" {
		return f.fallbackTextOutput(rows)
	}
	_, err := fmt.Fprintln(f.writer, tableView)
	return err
}

// fallbackTextOutput provides a simple text output when table rendering fails
func (f *TableFormatter) fallbackTextOutput(rows []table.Row) error {
	for _, row := range rows {
		if _, err := fmt.Fprintf(f.writer, "%-32s %s\n", row[0], row[1]); err != nil {
			return err
		}
	}
	return nil
}
