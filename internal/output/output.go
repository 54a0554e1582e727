// Package output renders estimate results and stored records for the CLI.
package output

import (
	"fmt"
	"strings"
)

// Format represents an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Row is one labelled quantity of a report.
type Row struct {
	Label string
	Value string
	Unit  string
}

// Report is a titled list of quantities. Payload is what JSON output encodes;
// when nil, the rows are encoded instead.
type Report struct {
	Title   string
	Rows    []Row
	Payload any
}

// Add appends a row and returns the report for chaining.
func (r *Report) Add(label, value, unit string) *Report {
	r.Rows = append(r.Rows, Row{Label: label, Value: value, Unit: unit})
	return r
}

// Formatter renders reports.
type Formatter interface {
	Format(report *Report) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatMarkdown), "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

// Render formats a report in one call.
func Render(format Format, report *Report) (string, error) {
	return NewFormatter(format).Format(report)
}
