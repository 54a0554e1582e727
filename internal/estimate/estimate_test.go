package estimate

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFillsDefaults(t *testing.T) {
	c := New(Constants{DoorAllowance: 3, MinEffectiveTileRatio: 1.5, AdhesiveKgPerM2: math.NaN()})
	got := c.Constants()
	d := DefaultConstants()

	assert.Equal(t, 3.0, got.DoorAllowance)
	assert.Equal(t, d.WindowAllowance, got.WindowAllowance)
	assert.Equal(t, d.MinEffectiveTileRatio, got.MinEffectiveTileRatio)
	assert.Equal(t, d.AdhesiveKgPerM2, got.AdhesiveKgPerM2)
	assert.Same(t, defaultCalculator, Default())
}

func TestInputErrorMatches(t *testing.T) {
	err := invalid("length", "must be greater than 0")

	require.ErrorIs(t, err, ErrInvalidInput)
	require.NotErrorIs(t, err, ErrNotFinite)

	var ie *InputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "length", ie.Field)
	assert.Equal(t, "invalid length: must be greater than 0", err.Error())
}

func TestCheckRange(t *testing.T) {
	require.NoError(t, checkRange("x", 100, 0, 100, false))
	require.NoError(t, checkRange("x", 0, 0, 100, true))
	require.ErrorIs(t, checkRange("x", 0, 0, 100, false), ErrInvalidInput)
	require.ErrorIs(t, checkRange("x", 100.01, 0, 100, false), ErrInvalidInput)
	require.ErrorIs(t, checkRange("x", math.Inf(1), 0, 100, false), ErrInvalidInput)
	require.ErrorIs(t, checkRange("x", math.NaN(), 0, 100, true), ErrInvalidInput)
}

func TestCeilCount(t *testing.T) {
	n, err := ceilCount(2.01)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = ceilCount(math.Inf(1))
	require.ErrorIs(t, err, ErrNotFinite)
	_, err = ceilCount(-1)
	require.ErrorIs(t, err, ErrNotFinite)
	_, err = ceilCount(1e12)
	require.ErrorIs(t, err, ErrNotFinite)
}

func TestParseEnums(t *testing.T) {
	s, err := ParseSurfaceType(" Wall ")
	require.NoError(t, err)
	assert.Equal(t, SurfaceWall, s)

	_, err = ParseSurfaceType("ceiling")
	require.ErrorIs(t, err, ErrInvalidInput)

	c, err := ParseFloorCovering("VINYL")
	require.NoError(t, err)
	assert.Equal(t, CoveringVinyl, c)

	_, err = ParseHeatingSystem("water")
	require.ErrorIs(t, err, ErrInvalidInput)

	var m HeatingMode
	require.NoError(t, m.UnmarshalText([]byte("primary")))
	assert.Equal(t, HeatingPrimary, m)

	var w WallpaperMode
	require.ErrorIs(t, w.UnmarshalText([]byte("ceiling")), ErrInvalidInput)
}
