package output

import (
	"fmt"
	"strconv"
	"time"

	"github.com/renolab/renolab/internal/estimate"
	"github.com/renolab/renolab/internal/store"
)

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func count(n int) string {
	return strconv.Itoa(n)
}

// EstimateReport builds the report for an estimator result.
func EstimateReport(result any) (*Report, error) {
	switch res := result.(type) {
	case estimate.PaintResult:
		r := &Report{Title: "Paint", Payload: res}
		r.Add("Wall area", num(res.WallArea), "m²").
			Add("Ceiling area", num(res.CeilingArea), "m²").
			Add("Painted area", num(res.PaintedArea), "m²").
			Add("Paint", num(res.Liters), "L")
		return r, nil

	case estimate.BudgetResult:
		r := &Report{Title: "Budget", Payload: res}
		r.Add("Subtotal", num(res.Subtotal), "").
			Add("Reserve", num(res.ReserveAmount), fmt.Sprintf("%s%%", num(res.ReservePercent))).
			Add("Total", num(res.Total), "").
			Add("Discarded items", count(res.DiscardedItems), "")
		return r, nil

	case estimate.TileResult:
		r := &Report{Title: "Tile", Payload: res}
		r.Add("Surface area", num(res.SurfaceArea), "m²").
			Add("Net area", num(res.NetArea), "m²").
			Add("Effective tile area", strconv.FormatFloat(res.EffectiveTileArea, 'f', 4, 64), "m²").
			Add("Waste", num(res.WastePercent), "%").
			Add("Tiles", count(res.TilesNeeded), "pcs").
			Add("Packs", count(res.PacksNeeded), "packs").
			Add("Adhesive", count(res.AdhesiveKg), "kg")
		return r, nil

	case estimate.WallpaperResult:
		r := &Report{Title: "Wallpaper", Payload: res}
		r.Add("Perimeter", num(res.Perimeter), "m").
			Add("Net wall area", num(res.NetArea), "m²").
			Add("Strips per roll", count(res.StripsPerRoll), "").
			Add("Strips", count(res.TotalStrips), "").
			Add("Rolls", count(res.Rolls), "rolls")
		return r, nil

	case estimate.HeatingResult:
		r := &Report{Title: "Underfloor heating", Payload: res}
		r.Add("Heated area", num(res.HeatedArea), "m²").
			Add("Power density", num(res.PowerDensity), "W/m²").
			Add("Total power", num(res.TotalPowerW), "W")
		if res.CableLengthM > 0 {
			r.Add("Cable length", num(res.CableLengthM), "m")
		}
		if res.MatAreaM2 > 0 {
			r.Add("Mat area", num(res.MatAreaM2), "m²")
		}
		r.Add("Monthly energy", num(res.MonthlyKWh), "kWh")
		if res.MonthlyCost != nil {
			r.Add("Monthly cost", num(*res.MonthlyCost), "")
		}
		return r, nil

	case estimate.VentilationResult:
		r := &Report{Title: "Ventilation", Payload: res}
		r.Add("Room volume", num(res.VolumeM3), "m³").
			Add("Airflow", num(res.FlowM3h), "m³/h").
			Add("Airflow", num(res.FlowLs), "L/s").
			Add("Airflow with reserve", num(res.FlowWithReserveM3h), "m³/h")
		return r, nil
	}

	return nil, fmt.Errorf("no report for %T", result)
}

// SubscribersReport lists subscribers, newest first.
func SubscribersReport(subs []store.Subscriber) *Report {
	r := &Report{Title: fmt.Sprintf("Subscribers (%d)", len(subs)), Payload: subs}
	for _, s := range subs {
		detail := s.Locale
		if s.Source != "" {
			detail += ", " + s.Source
		}
		r.Add(s.Email, s.CreatedAt.UTC().Format(time.RFC3339), detail)
	}
	return r
}
