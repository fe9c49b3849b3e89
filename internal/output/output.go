package output

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
)

// Printer handles formatted output to a writer.
// It supports both JSON and human-readable output modes.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	json   bool
	isTTY  bool
	styles *Styles
}

// Styles holds lipgloss styles for human-readable output.
type Styles struct {
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Bold     lipgloss.Style
	Italic   lipgloss.Style
	Dim      lipgloss.Style
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Key      lipgloss.Style
	Value    lipgloss.Style
	Unfilled lipgloss.Style
	Border   lipgloss.Color
	Accent   lipgloss.Style
}

func colorStyles() *Styles {
	return &Styles{
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Bold:     lipgloss.NewStyle().Bold(true),
		Italic:   lipgloss.NewStyle().Italic(true),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Muted:    lipgloss.NewStyle().Faint(true),
		Key:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Value:    lipgloss.NewStyle(),
		Unfilled: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")),
		Border:   lipgloss.Color("8"),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	}
}

func plainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error: plain, Success: plain, Warning: plain, Bold: plain, Italic: plain,
		Dim: plain, Title: plain, Muted: plain, Key: plain, Value: plain,
		Unfilled: plain, Border: lipgloss.Color(""), Accent: plain,
	}
}

// NewPrinter creates a new Printer.
// If jsonMode is true, output will be JSON formatted.
// If isTTY is true, colors will be enabled for human output.
func NewPrinter(writer io.Writer, jsonMode bool, isTTY bool) *Printer {
	styles := plainStyles()
	if isTTY {
		styles = colorStyles()
	}
	return &Printer{
		w:      writer,
		errW:   writer,
		json:   jsonMode,
		isTTY:  isTTY,
		styles: styles,
	}
}

// WithStderr sets a separate writer for errors and warnings in human mode.
// In JSON mode, errors still go to the main writer.
// Returns the printer for chaining.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errW = w
	return p
}

// IsJSON returns true if the printer is in JSON mode.
func (p *Printer) IsJSON() bool {
	return p.json
}

// IsTTY returns true if the printer output is a TTY.
func (p *Printer) IsTTY() bool {
	return p.isTTY
}

// Styles returns the active styles.
func (p *Printer) Styles() *Styles {
	return p.styles
}

// Writer returns the main output writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Success outputs a success result.
// For JSON mode, outputs the data as JSON.
// For human mode, prints the "message" key, or every key in sorted order.
func (p *Printer) Success(data map[string]any) error {
	if p.json {
		return p.writeJSON(data)
	}

	if msg, ok := data["message"].(string); ok {
		mustWrite(fmt.Fprintln(p.w, p.styles.Success.Render(msg)))
		return nil
	}

	for _, key := range slices.Sorted(maps.Keys(data)) {
		mustWrite(fmt.Fprintf(p.w, "%s: %v\n", p.styles.Bold.Render(key), data[key]))
	}
	return nil
}

// Error outputs an error.
// For JSON mode, outputs {"error": "...", "code": N} to stdout.
// For human mode, outputs a styled error message to stderr (if set).
func (p *Printer) Error(err error) {
	exitErr := &ExitError{}
	if !errors.As(err, &exitErr) {
		exitErr = &ExitError{
			Code:    ExitUserError,
			Message: err.Error(),
		}
	}

	if p.json {
		mustWrite(p.w.Write(ErrorJSON(exitErr.Message, exitErr.Code)))
		mustWrite(fmt.Fprintln(p.w))
		return
	}

	msg := exitErr.Message
	if exitErr.Cause != nil && !strings.Contains(msg, exitErr.Cause.Error()) {
		msg += ": " + exitErr.Cause.Error()
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Error.Render("Error"), msg))
}

// Warn outputs a warning message.
// For JSON mode, outputs {"warning": "..."} to stdout.
// For human mode, outputs a styled warning to stderr (if set).
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.json {
		_ = p.writeJSON(map[string]any{"warning": msg})
		return
	}
	mustWrite(fmt.Fprintf(p.errW, "%s: %s\n", p.styles.Warning.Render("Warning"), msg))
}

// Stderr writes a message to the error writer. No-op in JSON mode.
func (p *Printer) Stderr(format string, args ...any) {
	if p.json {
		return
	}
	mustWrite(fmt.Fprintf(p.errW, format, args...))
}

// Print formats and writes to the output without a newline.
func (p *Printer) Print(format string, args ...any) {
	mustWrite(fmt.Fprintf(p.w, format, args...))
}

// Println writes a line to the output.
func (p *Printer) Println(args ...any) {
	mustWrite(fmt.Fprintln(p.w, args...))
}

func (p *Printer) writeJSON(data any) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	mustWrite(p.w.Write(append(out, '\n')))
	return nil
}

// WriteJSON encodes any data as JSON and writes it.
func (p *Printer) WriteJSON(data any) error {
	return p.writeJSON(data)
}

// ErrorJSON returns JSON-formatted error bytes: {"code": N, "error": "message"}.
func ErrorJSON(message string, code int) []byte {
	result, _ := json.Marshal(map[string]any{
		"error": message,
		"code":  code,
	})
	return result
}

// mustWrite panics if a write to stdout, stderr or a buffer fails.
func mustWrite(_ int, err error) {
	if err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}

// Table renders a simple table with column alignment.
// Column widths are measured in terminal cells, so accented names line up.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := calcColumnWidths(headers, rows)
	p.printTableRow(headers, widths, p.styles.Bold)
	for _, row := range rows {
		p.printTableRow(row, widths, p.styles.Value)
	}
}

func calcColumnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	return widths
}

func (p *Printer) printTableRow(row []string, widths []int, style lipgloss.Style) {
	cells := make([]string, 0, len(widths))
	for i, cell := range row {
		if i >= len(widths) {
			break
		}
		cells = append(cells, style.Render(padRight(cell, widths[i])))
	}
	mustWrite(fmt.Fprintln(p.w, strings.TrimRight(strings.Join(cells, "  "), " ")))
}

// Box renders content in a bordered box with an optional title.
// Non-TTY output is plain text without borders.
func (p *Printer) Box(title string, content string) {
	if !p.isTTY {
		if title != "" {
			mustWrite(fmt.Fprintln(p.w, title))
			mustWrite(fmt.Fprintln(p.w))
		}
		mustWrite(fmt.Fprintln(p.w, content))
		return
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.styles.Border).
		Padding(0, 1)

	boxContent := content
	if title != "" {
		boxContent = p.styles.Title.Render(title) + "\n\n" + content
	}
	mustWrite(fmt.Fprintln(p.w, style.Render(boxContent)))
}

// Section renders a section header with underline, after a blank line.
func (p *Printer) Section(title string) {
	mustWrite(fmt.Fprintln(p.w))
	mustWrite(fmt.Fprintln(p.w, p.styles.Title.Render(title)))
	underline := strings.Repeat("─", lipgloss.Width(title))
	mustWrite(fmt.Fprintln(p.w, p.styles.Muted.Render(underline)))
}

// KeyValue renders "Key: Value" with styles applied.
func (p *Printer) KeyValue(key string, value string) {
	styledKey := p.styles.Key.Render(key + ":")
	styledValue := p.styles.Value.Render(value)
	mustWrite(fmt.Fprintf(p.w, "%s %s\n", styledKey, styledValue))
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
