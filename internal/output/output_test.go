package output

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renolab/renolab/internal/estimate"
	"github.com/renolab/renolab/internal/store"
)

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("table")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	format, err = ParseFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, format)

	format, err = ParseFormat("md")
	require.NoError(t, err)
	require.Equal(t, FormatMarkdown, format)

	format, err = ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	_, err = ParseFormat("csv")
	require.Error(t, err)
}

func TestPaintReportFormats(t *testing.T) {
	report, err := EstimateReport(estimate.PaintResult{WallArea: 43.6, CeilingArea: 20, PaintedArea: 63.6, Liters: 12.72})
	require.NoError(t, err)
	require.Len(t, report.Rows, 4)

	table, err := Render(FormatTable, report)
	require.NoError(t, err)
	assert.Contains(t, table, "Paint")
	assert.Contains(t, table, "12.72")
	assert.Contains(t, table, "Quantity")

	md, err := Render(FormatMarkdown, report)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(md, "## Paint\n"))
	assert.Contains(t, md, "| Paint | 12.72 | L |")

	js, err := Render(FormatJSON, report)
	require.NoError(t, err)
	var decoded estimate.PaintResult
	require.NoError(t, json.Unmarshal([]byte(js), &decoded))
	assert.InDelta(t, 12.72, decoded.Liters, 1e-9)
}

func TestHeatingReportOptionalRows(t *testing.T) {
	cost := 720.0
	report, err := EstimateReport(estimate.HeatingResult{HeatedArea: 8, TotalPowerW: 1200, CableLengthM: 66.67, MonthlyKWh: 144, MonthlyCost: &cost})
	require.NoError(t, err)

	labels := make([]string, 0, len(report.Rows))
	for _, r := range report.Rows {
		labels = append(labels, r.Label)
	}
	assert.Contains(t, labels, "Cable length")
	assert.Contains(t, labels, "Monthly cost")
	assert.NotContains(t, labels, "Mat area")
}

func TestEstimateReportUnknownType(t *testing.T) {
	_, err := EstimateReport(struct{}{})
	assert.Error(t, err)
}

func TestJSONWithoutPayloadEncodesRows(t *testing.T) {
	report := (&Report{Title: "t"}).Add("a", "1", "m")
	js, err := (&JSONFormatter{}).Format(report)
	require.NoError(t, err)
	assert.Equal(t, `[{"label":"a","value":"1","unit":"m"}]`, js)
}

func TestMarkdownEscaping(t *testing.T) {
	report := (&Report{Title: "a|b"}).Add("x|y", "1", "")
	md, err := Render(FormatMarkdown, report)
	require.NoError(t, err)
	assert.Contains(t, md, `## a\|b`)
	assert.Contains(t, md, `| x\|y | 1 |  |`)
}

func TestSubscribersReport(t *testing.T) {
	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	report := SubscribersReport([]store.Subscriber{
		{Email: "anna@example.com", Locale: "ru", Source: "footer", CreatedAt: at},
	})
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "Subscribers (1)", report.Title)
	assert.Equal(t, "2025-05-01T10:00:00Z", report.Rows[0].Value)
	assert.Equal(t, "ru, footer", report.Rows[0].Unit)
}

func TestNilReport(t *testing.T) {
	for _, f := range []Format{FormatTable, FormatJSON, FormatMarkdown} {
		out, err := Render(f, nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	}
}
