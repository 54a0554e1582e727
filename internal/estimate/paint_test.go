package estimate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePaint() PaintInput {
	return PaintInput{Length: 5, Width: 4, Height: 2.7, Doors: 1, Windows: 2, Coats: 2, Coverage: 10}
}

func TestPaintRoom(t *testing.T) {
	res := Paint(samplePaint())

	assert.InDelta(t, 43.6, res.WallArea, 1e-9)
	assert.InDelta(t, 20.0, res.CeilingArea, 1e-9)
	assert.InDelta(t, 63.6, res.PaintedArea, 1e-9)
	assert.InDelta(t, 12.72, res.Liters, 1e-9)
}

func TestPaintCoatsScaleLinearly(t *testing.T) {
	in := samplePaint()
	in.Coats = 1
	one := Paint(in)
	in.Coats = 2
	two := Paint(in)

	require.Greater(t, one.Liters, 0.0)
	assert.Equal(t, 2*one.Liters, two.Liters)
}

func TestPaintDegenerateInputs(t *testing.T) {
	cases := map[string]func(*PaintInput){
		"zero length":    func(in *PaintInput) { in.Length = 0 },
		"negative width": func(in *PaintInput) { in.Width = -1 },
		"nan height":     func(in *PaintInput) { in.Height = math.NaN() },
		"zero coverage":  func(in *PaintInput) { in.Coverage = 0 },
		"no coats":       func(in *PaintInput) { in.Coats = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := samplePaint()
			mutate(&in)
			assert.Equal(t, PaintResult{}, Paint(in))
		})
	}
}

func TestPaintOpeningsNeverMakeWallsNegative(t *testing.T) {
	in := PaintInput{Length: 1, Width: 1, Height: 1, Doors: 10, Windows: 10, Coats: 1, Coverage: 10}
	res := Paint(in)

	assert.Equal(t, 0.0, res.WallArea)
	assert.InDelta(t, 1.0, res.PaintedArea, 1e-9)
	assert.InDelta(t, 0.1, res.Liters, 1e-9)
}

func TestPaintNegativeOpeningsIgnored(t *testing.T) {
	in := samplePaint()
	in.Doors, in.Windows = -3, -3
	res := Paint(in)

	assert.InDelta(t, 2*2.7*9, res.WallArea, 1e-9)
}

func TestPaintCustomAllowances(t *testing.T) {
	c := New(Constants{DoorAllowance: 1, WindowAllowance: 1})
	res := c.Paint(samplePaint())

	assert.InDelta(t, 48.6-3, res.WallArea, 1e-9)
}
