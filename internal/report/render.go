package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
)

// Format is an output format for a report.
type Format string

const (
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatPDF, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("unsupported report format %q", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// Options tune the renderers.
type Options struct {
	// PageSize is the PDF page size (A4, Letter, Legal).
	PageSize string
}

// DefaultOptions returns A4 options.
func DefaultOptions() Options {
	return Options{PageSize: "A4"}
}

// Render writes doc to w in the given format.
func Render(w io.Writer, format Format, doc Document, opts Options) error {
	switch format {
	case FormatJSON:
		return RenderJSON(w, doc)
	case FormatPDF:
		return RenderPDF(w, doc, opts)
	case FormatXLSX:
		return RenderXLSX(w, doc)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

// RenderJSON writes doc as indented JSON.
func RenderJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
