package estimate

import (
	"fmt"
	"math"
)

// Opening is a window or door cut out of a papered wall.
type Opening struct {
	Width  float64 `json:"width"`  // m
	Height float64 `json:"height"` // m
}

// WallpaperInput describes the walls and the chosen roll.
type WallpaperInput struct {
	Mode WallpaperMode `json:"mode"`

	// Room mode uses Width and Length; wall mode uses Length only.
	Width    float64   `json:"width"`  // m
	Length   float64   `json:"length"` // m
	Height   float64   `json:"height"` // m
	Openings []Opening `json:"openings"`

	RollWidth     float64 `json:"roll_width"`     // cm
	RollLength    float64 `json:"roll_length"`    // m
	PatternRepeat float64 `json:"pattern_repeat"` // cm, 0 for none
	OffsetMatch   bool    `json:"offset_match"`
}

// WallpaperResult is the roll requirement for the walls.
type WallpaperResult struct {
	Perimeter     float64 `json:"perimeter"`
	GrossArea     float64 `json:"gross_area"`
	OpeningsArea  float64 `json:"openings_area"`
	NetArea       float64 `json:"net_area"`
	StripsPerRoll int     `json:"strips_per_roll"`
	TotalStrips   int     `json:"total_strips"`
	Rolls         int     `json:"rolls"`
}

// Wallpaper estimates rolls using the default constants.
func Wallpaper(in WallpaperInput) (WallpaperResult, error) {
	return defaultCalculator.Wallpaper(in)
}

func validateWallpaper(in WallpaperInput) error {
	switch in.Mode {
	case WallpaperRoom:
		if err := checkRange("width", in.Width, 0, 100, false); err != nil {
			return err
		}
	case WallpaperWall:
	default:
		return invalid("mode", "must be room or wall")
	}
	if err := checkRange("length", in.Length, 0, 100, false); err != nil {
		return err
	}
	if err := checkRange("height", in.Height, 0, 10, false); err != nil {
		return err
	}
	if err := checkRange("roll_width", in.RollWidth, 0, 500, false); err != nil {
		return err
	}
	if err := checkRange("roll_length", in.RollLength, 0, 50, false); err != nil {
		return err
	}
	if err := checkRange("pattern_repeat", in.PatternRepeat, 0, in.RollLength*100, true); err != nil {
		return err
	}
	if in.PatternRepeat >= in.RollLength*100 {
		return invalid("pattern_repeat", "must be shorter than the roll")
	}
	for i, o := range in.Openings {
		if !isFinite(o.Width) || !isFinite(o.Height) || o.Width < 0 || o.Height < 0 {
			return invalid(fmt.Sprintf("openings[%d]", i), "dimensions must be non-negative numbers")
		}
	}
	return nil
}

// Wallpaper estimates how many rolls cover the walls, accounting for pattern
// matching waste at the top of every strip.
func (c *Calculator) Wallpaper(in WallpaperInput) (WallpaperResult, error) {
	if err := validateWallpaper(in); err != nil {
		return WallpaperResult{}, err
	}

	perimeter := in.Length
	if in.Mode == WallpaperRoom {
		perimeter = 2 * (in.Width + in.Length)
	}
	gross := perimeter * in.Height

	var openings float64
	for _, o := range in.Openings {
		openings += o.Width * o.Height
	}
	net := math.Max(gross-openings, 0)

	rollWidth := in.RollWidth / 100
	repeat := in.PatternRepeat / 100

	var perRoll float64
	if repeat > 0 {
		gap := repeat
		if in.OffsetMatch {
			gap = repeat * 0.5
		}
		perRoll = math.Floor((in.RollLength - repeat) / (in.Height + gap))
	} else {
		perRoll = math.Floor(in.RollLength / in.Height)
	}
	perRoll = math.Max(perRoll, 1)

	strips := math.Ceil(perimeter / rollWidth)
	rolls := math.Ceil(strips / perRoll)
	if !allFinite(perimeter, gross, openings, net, perRoll, strips, rolls) {
		return WallpaperResult{}, ErrNotFinite
	}

	stripCount, err := ceilCount(strips)
	if err != nil {
		return WallpaperResult{}, err
	}
	rollCount, err := ceilCount(rolls)
	if err != nil {
		return WallpaperResult{}, err
	}

	return WallpaperResult{
		Perimeter:     perimeter,
		GrossArea:     gross,
		OpeningsArea:  openings,
		NetArea:       net,
		StripsPerRoll: int(perRoll),
		TotalStrips:   stripCount,
		Rolls:         rollCount,
	}, nil
}
