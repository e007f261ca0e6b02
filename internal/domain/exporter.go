package domain

import (
	"fmt"
	"strings"
)

// ExportFormat is the closed set of supported export serializations.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
	FormatHTML ExportFormat = "html"
)

// ParseExportFormat validates a format string from the outside world.
func ParseExportFormat(s string) (ExportFormat, error) {
	normalized := ExportFormat(strings.ToLower(strings.TrimSpace(s)))
	switch normalized {
	case FormatCSV, FormatXLSX, FormatHTML:
		return normalized, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type for download responses.
func (f ExportFormat) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatHTML:
		return "text/html"
	}
	return "application/octet-stream"
}

// Exporter serializes a filtered view. The output contains exactly the
// view's tickets in their filtered order; exporters never filter or reorder.
type Exporter interface {
	Export(view FilteredView, format ExportFormat) ([]byte, error)
}
