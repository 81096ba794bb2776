// Package output provides consistent CLI output formatting: status lines,
// coloured verdicts, tables and structured JSON/YAML encodings.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/ignorelib/pkg/ignore"
)

// Writer provides formatted output for CLI.
type Writer struct {
	out    io.Writer
	styles Styles
	color  bool
}

// New creates a Writer without colour.
func New(out io.Writer) *Writer {
	return &Writer{
		out:    out,
		styles: NoColorStyles(),
	}
}

// NewWithColor creates a Writer whose colour follows mode (auto, always, never).
func NewWithColor(out io.Writer, mode string) *Writer {
	color := ColorEnabled(out, mode)
	return &Writer{
		out:    out,
		styles: GetStyles(!color),
		color:  color,
	}
}

// Out returns the underlying writer.
func (w *Writer) Out() io.Writer { return w.out }

// Color reports whether styled output is enabled.
func (w *Writer) Color() bool { return w.color }

// Status prints a status message with an icon.
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Statusf prints a formatted status message with an icon.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Success prints a success message with checkmark.
func (w *Writer) Success(msg string) {
	w.Status(w.styles.Success.Render("✓"), msg)
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Status(w.styles.Warning.Render("!"), msg)
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status(w.styles.Error.Render("✗"), msg)
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Line prints msg followed by a newline.
func (w *Writer) Line(msg string) {
	_, _ = fmt.Fprintln(w.out, msg)
}

// Verdict renders v in its verdict style.
func (w *Writer) Verdict(v ignore.Verdict) string {
	switch v {
	case ignore.Ignore:
		return w.styles.Ignored.Render(v.String())
	case ignore.Unignore:
		return w.styles.Unignored.Render(v.String())
	default:
		return w.styles.NoOpinion.Render(v.String())
	}
}

// Dim renders secondary text.
func (w *Writer) Dim(msg string) string {
	return w.styles.Dim.Render(msg)
}

// JSON writes v as indented JSON.
func (w *Writer) JSON(v any) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// YAML writes v as YAML.
func (w *Writer) YAML(v any) error {
	enc := yaml.NewEncoder(w.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

// Encode writes v as format: json, yaml or text (fmt's %v).
func (w *Writer) Encode(format string, v any) error {
	switch strings.ToLower(format) {
	case "json":
		return w.JSON(v)
	case "yaml", "yml":
		return w.YAML(v)
	case "", "text":
		_, err := fmt.Fprintf(w.out, "%v\n", v)
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
