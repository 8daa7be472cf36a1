package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is an export file type.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for an unknown export format.
var ErrUnsupportedFormat = errors.New("unsupported export format")

const syntheticNote = "Port calls are estimated from the voyage id until they are recorded per voyage."

// ParseFormat reads a format name such as "xlsx" or "yml".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatXLSX, FormatPDF, FormatCSV, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// FileName is the default export name of a report.
func (r *Report) FileName(format Format) string {
	return fmt.Sprintf("fuel-report_%d_%04d-%02d.%s", r.VesselID, r.Year, r.Month, format)
}

// Export writes r to w in the given format.
func Export(w io.Writer, format Format, r *Report) error {
	switch format {
	case FormatXLSX:
		return writeXLSX(w, r)
	case FormatPDF:
		return writePDF(w, r)
	case FormatCSV:
		return writeCSV(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// ExportFile writes r to path, creating the directory.
func ExportFile(path string, format Format, r *Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := Export(f, format, r); err != nil {
		f.Close()
		return fmt.Errorf("writing %s export: %w", format, err)
	}
	return f.Close()
}

func writeCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{r.Title()}); err != nil {
		return err
	}
	if err := cw.WriteAll(r.Table()); err != nil {
		return err
	}
	if err := cw.Write([]string{syntheticNote}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
