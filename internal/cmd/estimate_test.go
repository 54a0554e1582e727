package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renolab/renolab/internal/estimate"
)

func runEstimateCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cmd := newEstimateCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEstimatePaint_JSON(t *testing.T) {
	out, err := runEstimateCmd(t, "paint",
		"--length", "5", "--width", "4", "--height", "2.5",
		"--doors", "1", "--windows", "1",
		"--output-format", "json")
	require.NoError(t, err)

	var res estimate.PaintResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 41.5, res.WallArea, 1e-9)
	assert.InDelta(t, 20, res.CeilingArea, 1e-9)
	assert.InDelta(t, 12.3, res.Liters, 1e-9)
}

func TestEstimatePaint_Markdown(t *testing.T) {
	out, err := runEstimateCmd(t, "paint",
		"--length", "5", "--width", "4", "--height", "2.5",
		"--doors", "1", "--windows", "1",
		"--output-format", "md")
	require.NoError(t, err)
	assert.Contains(t, out, "## Paint")
	assert.Contains(t, out, "| Paint | 12.30 | L |")
}

func TestEstimateBudget_FlagsAndArgs(t *testing.T) {
	out, err := runEstimateCmd(t, "budget", "--item", "100", "--item", "200", "50",
		"--output-format", "json")
	require.NoError(t, err)

	var res estimate.BudgetResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 350, res.Subtotal, 1e-9)
	assert.InDelta(t, 385, res.Total, 1e-9)
	assert.Equal(t, 0, res.DiscardedItems)
}

func TestEstimateBudget_RejectsNonNumericArg(t *testing.T) {
	_, err := runEstimateCmd(t, "budget", "lots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lots")
}

func TestEstimateTile_InvalidInputNamesField(t *testing.T) {
	_, err := runEstimateCmd(t, "tile", "--length", "3", "--width", "2", "--tile-width", "30")
	require.Error(t, err)
	assert.True(t, errors.Is(err, estimate.ErrInvalidInput))

	var inputErr *estimate.InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "tile_length", inputErr.Field)
}

func TestEstimateTile_UnknownSurface(t *testing.T) {
	_, err := runEstimateCmd(t, "tile", "--surface", "roof")
	require.Error(t, err)
}

func TestEstimateWallpaper_WithOpenings(t *testing.T) {
	out, err := runEstimateCmd(t, "wallpaper",
		"--width", "4", "--length", "5", "--height", "2.5",
		"--opening", "0.9x2", "--opening", "1.5X1.4",
		"--output-format", "json")
	require.NoError(t, err)

	var res estimate.WallpaperResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 18, res.Perimeter, 1e-9)
	assert.InDelta(t, 3.9, res.OpeningsArea, 1e-9)
	assert.Equal(t, 4, res.StripsPerRoll)
	assert.Equal(t, 34, res.TotalStrips)
	assert.Equal(t, 9, res.Rolls)
}

func TestEstimateHeating_TableOutput(t *testing.T) {
	out, err := runEstimateCmd(t, "heating", "--area", "10", "--tariff", "0.2")
	require.NoError(t, err)
	assert.Contains(t, out, "Underfloor heating")
	assert.Contains(t, out, "Cable length")
	assert.Contains(t, out, "Monthly cost")
}

func TestEstimateVentilation_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "vent.json")
	out, err := runEstimateCmd(t, "ventilation",
		"--length", "5", "--width", "4", "--height", "2.5", "--ach", "2",
		"--output-format", "json", "--out", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var res estimate.VentilationResult
	require.NoError(t, json.Unmarshal(data, &res))
	assert.InDelta(t, 50, res.VolumeM3, 1e-9)
	assert.InDelta(t, 100, res.FlowM3h, 1e-9)
	assert.InDelta(t, 110, res.FlowWithReserveM3h, 1e-9)
}

func TestEstimate_UnsupportedFormat(t *testing.T) {
	_, err := runEstimateCmd(t, "ventilation",
		"--length", "5", "--width", "4", "--height", "2.5",
		"--output-format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestParseOpening(t *testing.T) {
	o, err := parseOpening(" 0.9 x 2.1 ")
	require.NoError(t, err)
	assert.InDelta(t, 0.9, o.Width, 1e-9)
	assert.InDelta(t, 2.1, o.Height, 1e-9)

	for _, bad := range []string{"", "0.9", "ax2", "1xb"} {
		_, err := parseOpening(bad)
		assert.Error(t, err, bad)
	}
}

func TestExitCodeFor(t *testing.T) {
	assert.Equal(t, foundry.ExitFailure, ExitCodeFor(errors.New("boom")))

	tagged := withExitCode(foundry.ExitConfigInvalid, errors.New("bad config"))
	assert.Equal(t, foundry.ExitConfigInvalid, ExitCodeFor(tagged))

	wrapped := errors.Join(errors.New("context"), tagged)
	assert.Equal(t, foundry.ExitConfigInvalid, ExitCodeFor(wrapped))

	assert.NoError(t, withExitCode(foundry.ExitFailure, nil))
}
