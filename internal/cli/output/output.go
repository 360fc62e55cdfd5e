// Package output renders command results as styled tables or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Mode selects the rendering format.
type Mode string

const (
	ModeTable Mode = "table"
	ModeJSON  Mode = "json"
)

// Styles holds the lipgloss styles the renderer applies in table mode.
type Styles struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultStyles returns the standard color palette.
func DefaultStyles() *Styles {
	return &Styles{
		Title:   lipgloss.NewStyle().Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
}

// NewRenderer creates a renderer. Unknown modes fall back to table.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode != ModeJSON {
		mode = ModeTable
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		styles: DefaultStyles(),
	}
}

// Mode returns the renderer's active mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// Styles returns the renderer's style set.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// JSON emits v as indented JSON regardless of mode.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Title prints a bold section heading in table mode; no-op in JSON mode.
func (r *Renderer) Title(text string) {
	if r.mode == ModeJSON {
		return
	}
	_, _ = fmt.Fprintln(r.out, r.styles.Title.Render(text))
}

// Line prints a plain line in table mode; no-op in JSON mode.
func (r *Renderer) Line(format string, args ...any) {
	if r.mode == ModeJSON {
		return
	}
	_, _ = fmt.Fprintf(r.out, format+"\n", args...)
}

// Table renders header and rows as a bordered table.
func (r *Renderer) Table(header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.Render()
	_, _ = fmt.Fprintf(r.out, "(%d rows)\n", len(rows))
}

// Warn prints a styled warning to the error stream.
func (r *Renderer) Warn(format string, args ...any) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render(fmt.Sprintf(format, args...)))
}
