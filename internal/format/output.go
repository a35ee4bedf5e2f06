package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Envelope is the shape of every command's output.
type Envelope struct {
	Data any            `json:"data"`
	Meta map[string]any `json:"meta,omitempty"`
	// Hints suggests follow-up commands.
	Hints []string `json:"_hints,omitempty"`
}

// Tabular values can be rendered by the table format.
type Tabular interface {
	Header() []string
	Rows() [][]string
}

// Formats lists the accepted --format values.
func Formats() []string { return []string{"json", "edn", "table"} }

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - edn
// - table (human-readable; data that is not Tabular falls back to pretty JSON)
func Write(w io.Writer, env Envelope, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, env, pretty)
	case "edn":
		return WriteEDN(w, env, pretty)
	case "table":
		if t, ok := env.Data.(Tabular); ok {
			return WriteTable(w, t)
		}
		return WriteJSON(w, env, true)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func WriteTable(w io.Writer, t Tabular) error {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Header()...).
		Rows(t.Rows()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}
