package estimate

import "math"

// TileInput describes a floor or wall to be tiled.
type TileInput struct {
	Surface      SurfaceType `json:"surface"`
	Length       float64     `json:"length"`        // m
	Width        float64     `json:"width"`         // m, wall height for walls
	ExcludedArea float64     `json:"excluded_area"` // m², floors only (bath footprint etc.)

	TileLength   float64 `json:"tile_length"` // cm
	TileWidth    float64 `json:"tile_width"`  // cm
	GroutWidth   float64 `json:"grout_width"` // mm
	TilesPerPack int     `json:"tiles_per_pack"`

	// Walls only. Zero areas use the default opening size.
	Windows    int     `json:"windows"`
	Doors      int     `json:"doors"`
	WindowArea float64 `json:"window_area"` // m² per window
	DoorArea   float64 `json:"door_area"`   // m² per door

	BaseWaste  float64 `json:"base_waste"`  // %
	ExtraWaste float64 `json:"extra_waste"` // %
}

// TileResult is the tile, pack and adhesive requirement for a surface.
type TileResult struct {
	SurfaceArea       float64 `json:"surface_area"`
	NetArea           float64 `json:"net_area"`
	EffectiveTileArea float64 `json:"effective_tile_area"` // m²
	RawTileCount      float64 `json:"raw_tile_count"`
	WastePercent      float64 `json:"waste_percent"`
	TilesNeeded       int     `json:"tiles_needed"`
	PacksNeeded       int     `json:"packs_needed"`
	AdhesiveKg        int     `json:"adhesive_kg"`
}

// Tile estimates tiles using the default constants.
func Tile(in TileInput) (TileResult, error) {
	return defaultCalculator.Tile(in)
}

func (c *Calculator) validateTile(in TileInput) error {
	switch in.Surface {
	case SurfaceFloor, SurfaceWall:
	default:
		return invalid("surface", "must be floor or wall")
	}
	if err := checkRange("length", in.Length, 0, 100, false); err != nil {
		return err
	}
	if err := checkRange("width", in.Width, 0, 100, false); err != nil {
		return err
	}
	if err := checkRange("tile_length", in.TileLength, 0, 200, false); err != nil {
		return err
	}
	if err := checkRange("tile_width", in.TileWidth, 0, 200, false); err != nil {
		return err
	}
	if err := checkRange("grout_width", in.GroutWidth, 0, 20, true); err != nil {
		return err
	}
	if in.TilesPerPack <= 0 {
		return invalid("tiles_per_pack", "must be greater than 0")
	}
	if err := checkRange("base_waste", in.BaseWaste, 0, 100, true); err != nil {
		return err
	}
	if err := checkRange("extra_waste", in.ExtraWaste, 0, 100, true); err != nil {
		return err
	}
	if err := checkRange("excluded_area", in.ExcludedArea, 0, math.MaxFloat64, true); err != nil {
		return err
	}
	if err := checkRange("window_area", in.WindowArea, 0, math.MaxFloat64, true); err != nil {
		return err
	}
	if err := checkRange("door_area", in.DoorArea, 0, math.MaxFloat64, true); err != nil {
		return err
	}
	if in.Windows < 0 {
		return invalid("windows", "must not be negative")
	}
	if in.Doors < 0 {
		return invalid("doors", "must not be negative")
	}
	return nil
}

// Tile estimates how many tiles and packs cover the surface and how much
// adhesive it takes.
func (c *Calculator) Tile(in TileInput) (TileResult, error) {
	if err := c.validateTile(in); err != nil {
		return TileResult{}, err
	}

	surface := in.Length * in.Width
	net := surface
	if in.Surface == SurfaceFloor {
		net -= in.ExcludedArea
	} else {
		windowArea := in.WindowArea
		if windowArea == 0 {
			windowArea = c.c.DefaultOpeningArea
		}
		doorArea := in.DoorArea
		if doorArea == 0 {
			doorArea = c.c.DefaultOpeningArea
		}
		net -= float64(in.Windows)*windowArea + float64(in.Doors)*doorArea
	}
	net = math.Max(net, 0)

	tileL := in.TileLength / 100
	tileW := in.TileWidth / 100
	grout := in.GroutWidth / 1000
	nominal := tileL * tileW
	effective := math.Max(nominal-grout*(tileL+tileW), nominal*c.c.MinEffectiveTileRatio)

	raw := net / effective
	waste := in.BaseWaste + in.ExtraWaste
	if !allFinite(surface, net, effective, raw) || effective <= 0 {
		return TileResult{}, ErrNotFinite
	}

	tiles, err := ceilCount(raw * (1 + waste/100))
	if err != nil {
		return TileResult{}, err
	}
	packs := tiles / in.TilesPerPack
	if tiles%in.TilesPerPack != 0 {
		packs++
	}
	adhesive, err := ceilCount(net * c.c.AdhesiveKgPerM2)
	if err != nil {
		return TileResult{}, err
	}

	return TileResult{
		SurfaceArea:       surface,
		NetArea:           net,
		EffectiveTileArea: effective,
		RawTileCount:      raw,
		WastePercent:      waste,
		TilesNeeded:       tiles,
		PacksNeeded:       packs,
		AdhesiveKg:        adhesive,
	}, nil
}
