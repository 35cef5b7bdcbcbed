// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/jtypes/internal/classutil"
)

// Writer handles writing reports to various outputs.
type Writer struct {
	// Indent specifies the indentation for JSON output (default: 2 spaces)
	Indent int
}

// NewWriter creates a new Writer with default settings.
func NewWriter() *Writer {
	return &Writer{
		Indent: 2,
	}
}

// Write writes r in the named format ("text", "yaml" or "json").
func (w *Writer) Write(r *Report, out io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", "text":
		return w.WriteText(r, out)
	case "yaml", "yml":
		return w.WriteYAML(r, out)
	case "json":
		return w.WriteJSON(r, out)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteYAML writes a report as YAML to the given writer.
func (w *Writer) WriteYAML(r *Report, out io.Writer) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// WriteJSON writes a report as JSON to the given writer.
func (w *Writer) WriteJSON(r *Report, out io.Writer) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", strings.Repeat(" ", w.Indent))

	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// WriteText writes a human-readable report, one section per kind.
func (w *Writer) WriteText(r *Report, out io.Writer) error {
	title := cases.Title(language.English)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Scanned %d files, %d types declared, %d type references\n",
		r.Files, len(r.Types), r.Total())

	for _, kind := range classutil.Kinds() {
		entries := entriesOfKind(r.Entries, kind)
		if len(entries) == 0 {
			continue
		}

		fmt.Fprintf(tw, "\n%s (%d)\n", title.String(string(kind)), r.Summary[kind])
		for _, e := range entries {
			fmt.Fprintf(tw, "  %s\n", textRow(e))
		}
	}

	if len(r.Errors) > 0 {
		fmt.Fprintf(tw, "\nErrors (%d)\n", len(r.Errors))
		for _, fe := range r.Errors {
			fmt.Fprintf(tw, "  %s\t%s\n", fe.File, fe.Message)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	return nil
}

// textRow renders an entry as tab-separated columns.
func textRow(e Entry) string {
	var cols []string
	if e.File != "" {
		cols = append(cols, fmt.Sprintf("%s:%d", e.File, e.Line), e.Owner, string(e.Role))
	}
	cols = append(cols, e.Name, e.ClassName)
	if e.Parameter != "" {
		cols = append(cols, "<"+e.Parameter+">")
	}
	if e.Count > 0 {
		cols = append(cols, fmt.Sprintf("x%d", e.Count))
	}
	return strings.Join(cols, "\t")
}

func entriesOfKind(entries []Entry, kind classutil.Kind) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// FormatFromPath infers a report format from a file extension. Unknown
// extensions map to text.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	default:
		return "text"
	}
}

// WriteFile writes a report to a file.
// If format is empty, it is inferred from the file extension.
func (w *Writer) WriteFile(r *Report, path string, format string) error {
	if format == "" {
		format = FormatFromPath(path)
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return w.Write(r, file, format)
}

