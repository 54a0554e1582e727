package estimate

// HeatingInput describes an underfloor heating installation.
type HeatingInput struct {
	RoomArea        float64       `json:"room_area"`        // m²
	CoveragePercent float64       `json:"coverage_percent"` // share of the floor that is heated
	Covering        FloorCovering `json:"covering"`
	Mode            HeatingMode   `json:"mode"`
	System          HeatingSystem `json:"system"`

	HeatLossFactor   float64 `json:"heat_loss_factor"`
	BelowFloorFactor float64 `json:"below_floor_factor"`

	CablePower float64 `json:"cable_power"` // W/m, cable systems
	MatPower   float64 `json:"mat_power"`   // W/m², mat systems

	HoursPerDay  float64 `json:"hours_per_day"`
	DaysPerMonth float64 `json:"days_per_month"`
	LoadPercent  float64 `json:"load_percent"` // average thermostat duty
	TariffPerKWh float64 `json:"tariff_per_kwh"`
}

// HeatingResult is the sizing and running cost of the installation.
type HeatingResult struct {
	RecommendedPowerDensity float64  `json:"recommended_power_density"` // W/m²
	PowerDensity            float64  `json:"power_density"`             // W/m²
	HeatedArea              float64  `json:"heated_area"`
	TotalPowerW             float64  `json:"total_power_w"`
	CableLengthM            float64  `json:"cable_length_m,omitempty"`
	MatAreaM2               float64  `json:"mat_area_m2,omitempty"`
	MonthlyKWh              float64  `json:"monthly_kwh"`
	MonthlyCost             *float64 `json:"monthly_cost,omitempty"`
}

type heatingKey struct {
	covering FloorCovering
	mode     HeatingMode
}

// recommendedDensity is the base power density (W/m²) before correction factors.
var recommendedDensity = map[heatingKey]float64{
	{CoveringTile, HeatingComfort}:     150,
	{CoveringLaminate, HeatingComfort}: 120,
	{CoveringVinyl, HeatingComfort}:    120,
	{CoveringWood, HeatingComfort}:     100,
	{CoveringTile, HeatingPrimary}:     180,
	{CoveringLaminate, HeatingPrimary}: 160,
	{CoveringVinyl, HeatingPrimary}:    160,
	{CoveringWood, HeatingPrimary}:     140,
}

// RecommendedPowerDensity returns the table value for a covering and mode.
func RecommendedPowerDensity(covering FloorCovering, mode HeatingMode) (float64, bool) {
	v, ok := recommendedDensity[heatingKey{covering, mode}]
	return v, ok
}

// Heating sizes underfloor heating using the default constants.
func Heating(in HeatingInput) (HeatingResult, error) {
	return defaultCalculator.Heating(in)
}

func validateHeating(in HeatingInput) error {
	if err := checkRange("room_area", in.RoomArea, 0, 1000, false); err != nil {
		return err
	}
	if err := checkRange("coverage_percent", in.CoveragePercent, 0, 100, false); err != nil {
		return err
	}
	if _, ok := RecommendedPowerDensity(in.Covering, in.Mode); !ok {
		if _, err := ParseFloorCovering(string(in.Covering)); err != nil {
			return err
		}
		return invalid("mode", "must be comfort or primary")
	}
	if err := checkRange("heat_loss_factor", in.HeatLossFactor, 0.8, 1.4, true); err != nil {
		return err
	}
	if err := checkRange("below_floor_factor", in.BelowFloorFactor, 0.8, 1.4, true); err != nil {
		return err
	}
	switch in.System {
	case SystemCable:
		if err := checkRange("cable_power", in.CablePower, 0, 50, false); err != nil {
			return err
		}
	case SystemMat:
		if err := checkRange("mat_power", in.MatPower, 0, 250, false); err != nil {
			return err
		}
	default:
		return invalid("system", "must be cable or mat")
	}
	if err := checkRange("hours_per_day", in.HoursPerDay, 0, 24, true); err != nil {
		return err
	}
	if err := checkRange("days_per_month", in.DaysPerMonth, 1, 31, true); err != nil {
		return err
	}
	if err := checkRange("load_percent", in.LoadPercent, 0, 100, false); err != nil {
		return err
	}
	if !isFinite(in.TariffPerKWh) {
		return invalid("tariff_per_kwh", "must be a finite number")
	}
	return nil
}

// Heating sizes the heating element and estimates monthly energy use. The
// running cost is reported only when a positive tariff is given.
func (c *Calculator) Heating(in HeatingInput) (HeatingResult, error) {
	if err := validateHeating(in); err != nil {
		return HeatingResult{}, err
	}

	base, _ := RecommendedPowerDensity(in.Covering, in.Mode)
	recommended := base * in.HeatLossFactor * in.BelowFloorFactor
	density := recommended
	if in.System == SystemMat {
		density = in.MatPower
	}

	heated := in.RoomArea * in.CoveragePercent / 100
	power := heated * density

	res := HeatingResult{
		RecommendedPowerDensity: recommended,
		PowerDensity:            density,
		HeatedArea:              heated,
		TotalPowerW:             power,
	}
	if in.System == SystemCable {
		res.CableLengthM = power / in.CablePower
	} else {
		res.MatAreaM2 = heated
	}

	res.MonthlyKWh = power / 1000 * in.HoursPerDay * in.DaysPerMonth * in.LoadPercent / 100
	if !allFinite(recommended, density, heated, power, res.CableLengthM, res.MonthlyKWh) {
		return HeatingResult{}, ErrNotFinite
	}

	if in.TariffPerKWh > 0 {
		cost := res.MonthlyKWh * in.TariffPerKWh
		if !isFinite(cost) {
			return HeatingResult{}, ErrNotFinite
		}
		res.MonthlyCost = &cost
	}
	return res, nil
}
