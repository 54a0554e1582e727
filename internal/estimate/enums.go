package estimate

import (
	"fmt"
	"strings"
)

// SurfaceType selects the tiled surface.
type SurfaceType string

const (
	SurfaceFloor SurfaceType = "floor"
	SurfaceWall  SurfaceType = "wall"
)

// WallpaperMode selects how the papered length is measured.
type WallpaperMode string

const (
	WallpaperRoom WallpaperMode = "room"
	WallpaperWall WallpaperMode = "wall"
)

// FloorCovering is the finish laid over a heated floor.
type FloorCovering string

const (
	CoveringTile     FloorCovering = "tile"
	CoveringLaminate FloorCovering = "laminate"
	CoveringWood     FloorCovering = "wood"
	CoveringVinyl    FloorCovering = "vinyl"
)

// HeatingMode tells whether the floor supplements or replaces other heating.
type HeatingMode string

const (
	HeatingComfort HeatingMode = "comfort"
	HeatingPrimary HeatingMode = "primary"
)

// HeatingSystem is the heating element type.
type HeatingSystem string

const (
	SystemCable HeatingSystem = "cable"
	SystemMat   HeatingSystem = "mat"
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseSurfaceType accepts "floor" or "wall".
func ParseSurfaceType(s string) (SurfaceType, error) {
	switch v := SurfaceType(normalize(s)); v {
	case SurfaceFloor, SurfaceWall:
		return v, nil
	}
	return "", invalid("surface", fmt.Sprintf("unknown surface type %q", s))
}

// UnmarshalText rejects unknown surface types at decode time.
func (t *SurfaceType) UnmarshalText(b []byte) error {
	v, err := ParseSurfaceType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseWallpaperMode accepts "room" or "wall".
func ParseWallpaperMode(s string) (WallpaperMode, error) {
	switch v := WallpaperMode(normalize(s)); v {
	case WallpaperRoom, WallpaperWall:
		return v, nil
	}
	return "", invalid("mode", fmt.Sprintf("unknown wallpaper mode %q", s))
}

// UnmarshalText rejects unknown wallpaper modes at decode time.
func (m *WallpaperMode) UnmarshalText(b []byte) error {
	v, err := ParseWallpaperMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseFloorCovering accepts tile, laminate, wood or vinyl.
func ParseFloorCovering(s string) (FloorCovering, error) {
	switch v := FloorCovering(normalize(s)); v {
	case CoveringTile, CoveringLaminate, CoveringWood, CoveringVinyl:
		return v, nil
	}
	return "", invalid("covering", fmt.Sprintf("unknown floor covering %q", s))
}

// UnmarshalText rejects unknown floor coverings at decode time.
func (f *FloorCovering) UnmarshalText(b []byte) error {
	v, err := ParseFloorCovering(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// ParseHeatingMode accepts comfort or primary.
func ParseHeatingMode(s string) (HeatingMode, error) {
	switch v := HeatingMode(normalize(s)); v {
	case HeatingComfort, HeatingPrimary:
		return v, nil
	}
	return "", invalid("mode", fmt.Sprintf("unknown heating mode %q", s))
}

// UnmarshalText rejects unknown heating modes at decode time.
func (m *HeatingMode) UnmarshalText(b []byte) error {
	v, err := ParseHeatingMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseHeatingSystem accepts cable or mat.
func ParseHeatingSystem(s string) (HeatingSystem, error) {
	switch v := HeatingSystem(normalize(s)); v {
	case SystemCable, SystemMat:
		return v, nil
	}
	return "", invalid("system", fmt.Sprintf("unknown heating system %q", s))
}

// UnmarshalText rejects unknown heating systems at decode time.
func (s *HeatingSystem) UnmarshalText(b []byte) error {
	v, err := ParseHeatingSystem(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
