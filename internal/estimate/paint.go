package estimate

import "math"

// PaintInput describes a rectangular room to be painted, walls and ceiling.
type PaintInput struct {
	Length   float64 `json:"length"`   // m
	Width    float64 `json:"width"`    // m
	Height   float64 `json:"height"`   // m
	Doors    int     `json:"doors"`
	Windows  int     `json:"windows"`
	Coats    int     `json:"coats"`
	Coverage float64 `json:"coverage"` // m² per liter
}

// PaintResult is the paint requirement for a room.
type PaintResult struct {
	WallArea    float64 `json:"wall_area"`
	CeilingArea float64 `json:"ceiling_area"`
	PaintedArea float64 `json:"painted_area"`
	Liters      float64 `json:"liters"`
}

// Paint estimates paint using the default constants.
func Paint(in PaintInput) PaintResult {
	return defaultCalculator.Paint(in)
}

// Paint estimates the liters of paint for walls and ceiling. Degenerate rooms
// (any non-positive dimension, coverage or coat count) need no paint.
func (c *Calculator) Paint(in PaintInput) PaintResult {
	if !positive(in.Length) || !positive(in.Width) || !positive(in.Height) ||
		!positive(in.Coverage) || in.Coats <= 0 {
		return PaintResult{}
	}

	doors := math.Max(float64(in.Doors), 0)
	windows := math.Max(float64(in.Windows), 0)

	walls := 2*in.Height*(in.Length+in.Width) - c.c.DoorAllowance*doors - c.c.WindowAllowance*windows
	walls = math.Max(walls, 0)
	ceiling := in.Length * in.Width
	area := walls + ceiling

	liters := area * float64(in.Coats) / in.Coverage
	if !allFinite(walls, ceiling, area, liters) {
		return PaintResult{}
	}

	return PaintResult{
		WallArea:    walls,
		CeilingArea: ceiling,
		PaintedArea: area,
		Liters:      liters,
	}
}
