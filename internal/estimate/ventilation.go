package estimate

// DefaultVentilationReserve is the reserve percent callers use when none is given.
const DefaultVentilationReserve = 10.0

// litersPerSecond converts m³/h to L/s.
const litersPerSecond = 3.6

// VentilationInput describes a room and its target air exchange.
type VentilationInput struct {
	Length          float64 `json:"length"` // m
	Width           float64 `json:"width"`  // m
	Height          float64 `json:"height"` // m
	AirChangesPerHr float64 `json:"air_changes_per_hour"`
	ReservePercent  float64 `json:"reserve_percent"`
}

// VentilationResult is the required airflow.
type VentilationResult struct {
	VolumeM3           float64 `json:"volume_m3"`
	FlowM3h            float64 `json:"flow_m3h"`
	FlowLs             float64 `json:"flow_ls"`
	FlowWithReserveM3h float64 `json:"flow_with_reserve_m3h"`
}

// Ventilation sizes airflow using the default constants.
func Ventilation(in VentilationInput) (VentilationResult, error) {
	return defaultCalculator.Ventilation(in)
}

// Ventilation computes the airflow needed to exchange the room air ACH times
// an hour, plus a reserve.
func (c *Calculator) Ventilation(in VentilationInput) (VentilationResult, error) {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"length", in.Length},
		{"width", in.Width},
		{"height", in.Height},
	} {
		if !positive(f.value) {
			return VentilationResult{}, invalid(f.name, "must be a positive number")
		}
	}
	if err := checkRange("air_changes_per_hour", in.AirChangesPerHr, 0, 20, false); err != nil {
		return VentilationResult{}, err
	}
	if err := checkRange("reserve_percent", in.ReservePercent, 0, 50, true); err != nil {
		return VentilationResult{}, err
	}

	volume := in.Length * in.Width * in.Height
	flow := volume * in.AirChangesPerHr
	res := VentilationResult{
		VolumeM3:           volume,
		FlowM3h:            flow,
		FlowLs:             flow / litersPerSecond,
		FlowWithReserveM3h: flow * (1 + in.ReservePercent/100),
	}
	if !allFinite(res.VolumeM3, res.FlowM3h, res.FlowLs, res.FlowWithReserveM3h) {
		return VentilationResult{}, ErrNotFinite
	}
	return res, nil
}
