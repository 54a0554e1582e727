package output

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders reports as a markdown table.
type MarkdownFormatter struct{}

// Format renders the report as a markdown section.
func (f *MarkdownFormatter) Format(report *Report) (string, error) {
	if report == nil {
		return "", nil
	}

	var sb strings.Builder
	if report.Title != "" {
		sb.WriteString(fmt.Sprintf("## %s\n\n", escapeMarkdownCell(report.Title)))
	}
	sb.WriteString("| Quantity | Value | Unit |\n")
	sb.WriteString("|----------|------:|------|\n")

	for _, r := range report.Rows {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
			escapeMarkdownCell(r.Label),
			escapeMarkdownCell(r.Value),
			escapeMarkdownCell(r.Unit),
		))
	}

	return sb.String(), nil
}

func escapeMarkdownCell(value string) string {
	return strings.ReplaceAll(value, "|", "\\|")
}
