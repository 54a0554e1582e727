// Package estimate converts room and material measurements into the quantities a
// renovation needs: paint liters, tiles and packs, wallpaper rolls, underfloor heating
// power and energy, ventilation airflow, and budget totals.
//
// Every estimator is a pure function of its input. Fallible estimators return the zero
// result together with an error that matches ErrInvalidInput (out-of-range or malformed
// measurements) or ErrNotFinite (an intermediate value overflowed or became NaN).
package estimate

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInput marks measurements outside their accepted range.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFinite marks computations whose result cannot be represented.
	ErrNotFinite = errors.New("result is not a finite number")
)

// InputError names the offending field of a rejected input.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, reason string) error {
	return &InputError{Field: field, Reason: reason}
}

// Constants holds the product-level tuning values used by the estimators.
// The zero value of any field falls back to DefaultConstants.
type Constants struct {
	// DoorAllowance is the wall area (m²) subtracted per door when painting.
	DoorAllowance float64 `mapstructure:"door_allowance" yaml:"door_allowance"`
	// WindowAllowance is the wall area (m²) subtracted per window when painting.
	WindowAllowance float64 `mapstructure:"window_allowance" yaml:"window_allowance"`
	// DefaultOpeningArea applies to tiled-wall openings without an explicit area.
	DefaultOpeningArea float64 `mapstructure:"default_opening_area" yaml:"default_opening_area"`
	// MinEffectiveTileRatio floors the grout-corrected tile area as a share of nominal.
	MinEffectiveTileRatio float64 `mapstructure:"min_effective_tile_ratio" yaml:"min_effective_tile_ratio"`
	// AdhesiveKgPerM2 is the tile adhesive consumption rate.
	AdhesiveKgPerM2 float64 `mapstructure:"adhesive_kg_per_m2" yaml:"adhesive_kg_per_m2"`
	// MaxBudgetItem is the largest budget line item taken at face value.
	MaxBudgetItem float64 `mapstructure:"max_budget_item" yaml:"max_budget_item"`
}

// DefaultConstants returns the values the site has always shipped with.
func DefaultConstants() Constants {
	return Constants{
		DoorAllowance:         2,
		WindowAllowance:       1.5,
		DefaultOpeningArea:    2,
		MinEffectiveTileRatio: 0.95,
		AdhesiveKgPerM2:       4.5,
		MaxBudgetItem:         1e9,
	}
}

// Calculator runs the estimators with a fixed set of constants.
type Calculator struct {
	c Constants
}

// New returns a Calculator, filling unset or non-positive constants with defaults.
func New(c Constants) *Calculator {
	d := DefaultConstants()
	if !positive(c.DoorAllowance) {
		c.DoorAllowance = d.DoorAllowance
	}
	if !positive(c.WindowAllowance) {
		c.WindowAllowance = d.WindowAllowance
	}
	if !positive(c.DefaultOpeningArea) {
		c.DefaultOpeningArea = d.DefaultOpeningArea
	}
	if !positive(c.MinEffectiveTileRatio) || c.MinEffectiveTileRatio > 1 {
		c.MinEffectiveTileRatio = d.MinEffectiveTileRatio
	}
	if !positive(c.AdhesiveKgPerM2) {
		c.AdhesiveKgPerM2 = d.AdhesiveKgPerM2
	}
	if !positive(c.MaxBudgetItem) {
		c.MaxBudgetItem = d.MaxBudgetItem
	}
	return &Calculator{c: c}
}

// Constants returns the effective constants.
func (c *Calculator) Constants() Constants {
	return c.c
}

var defaultCalculator = New(DefaultConstants())

// Default returns the calculator behind the package-level functions.
func Default() *Calculator {
	return defaultCalculator
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positive(v float64) bool {
	return isFinite(v) && v > 0
}

// checkRange validates lo < v <= hi (or lo <= v <= hi when loInclusive).
func checkRange(field string, v, lo, hi float64, loInclusive bool) error {
	if !isFinite(v) {
		return invalid(field, "must be a finite number")
	}
	if loInclusive {
		if v < lo {
			return invalid(field, fmt.Sprintf("must be at least %g", lo))
		}
	} else if v <= lo {
		return invalid(field, fmt.Sprintf("must be greater than %g", lo))
	}
	if v > hi {
		return invalid(field, fmt.Sprintf("must not exceed %g", hi))
	}
	return nil
}

func allFinite(values ...float64) bool {
	for _, v := range values {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

// ceilCount converts a non-negative finite float to an integer count, rounding up.
func ceilCount(v float64) (int, error) {
	if !isFinite(v) || v < 0 || v > math.MaxInt32 {
		return 0, ErrNotFinite
	}
	return int(math.Ceil(v)), nil
}
