package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/renolab/renolab/internal/estimate"
	"github.com/renolab/renolab/internal/output"
)

func init() {
	rootCmd.AddCommand(newEstimateCmd())
}

// newEstimateCmd builds the estimate command tree. Each call returns fresh
// flag state.
func newEstimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Run a renovation estimator",
		Long: `Estimate materials and costs for a room.

Lengths are in meters unless a flag says otherwise. Invalid measurements are
reported with the name of the offending field.`,
	}

	cmd.PersistentFlags().String("output-format", "table", "Output format: table, json, markdown")
	cmd.PersistentFlags().String("out", "", "Write output to a file instead of stdout")

	cmd.AddCommand(
		newPaintCmd(),
		newBudgetCmd(),
		newTileCmd(),
		newWallpaperCmd(),
		newHeatingCmd(),
		newVentilationCmd(),
	)
	return cmd
}

// runEstimate loads the configured calculator, runs fn and writes the result.
func runEstimate(cmd *cobra.Command, fn func(*estimate.Calculator) (any, error)) error {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}

	result, err := fn(estimate.New(cfg.Estimate))
	if err != nil {
		return err
	}

	report, err := output.EstimateReport(result)
	if err != nil {
		return err
	}
	return writeReport(cmd, report)
}

func newPaintCmd() *cobra.Command {
	var in estimate.PaintInput

	cmd := &cobra.Command{
		Use:   "paint",
		Short: "Estimate paint for walls and ceiling",
		Long: `Estimate the paint needed for the walls and ceiling of a rectangular room.

Door and window openings are subtracted from the wall area using fixed
allowances. Out-of-range measurements yield a zero estimate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd, func(c *estimate.Calculator) (any, error) {
				return c.Paint(in), nil
			})
		},
	}

	cmd.Flags().Float64Var(&in.Length, "length", 0, "Room length (m)")
	cmd.Flags().Float64Var(&in.Width, "width", 0, "Room width (m)")
	cmd.Flags().Float64Var(&in.Height, "height", 0, "Wall height (m)")
	cmd.Flags().IntVar(&in.Doors, "doors", 0, "Number of doors")
	cmd.Flags().IntVar(&in.Windows, "windows", 0, "Number of windows")
	cmd.Flags().IntVar(&in.Coats, "coats", 2, "Number of coats")
	cmd.Flags().Float64Var(&in.Coverage, "coverage", 10, "Paint coverage (m² per liter)")
	return cmd
}

func newBudgetCmd() *cobra.Command {
	var (
		items   []float64
		reserve float64
	)

	cmd := &cobra.Command{
		Use:   "budget [amount...]",
		Short: "Total a renovation budget with a reserve",
		Long: `Sum line items and add a contingency reserve.

Items may be given with --item or as arguments. Negative, non-numeric and
implausibly large items are discarded and counted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := append([]float64(nil), items...)
			for _, arg := range args {
				v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
				if err != nil {
					return fmt.Errorf("invalid budget item %q: %w", arg, err)
				}
				all = append(all, v)
			}
			return runEstimate(cmd, func(c *estimate.Calculator) (any, error) {
				return c.Budget(all, reserve), nil
			})
		},
	}

	cmd.Flags().Float64SliceVar(&items, "item", nil, "Line item amount (repeatable)")
	cmd.Flags().Float64Var(&reserve, "reserve", 10, "Reserve percent (0-100)")
	return cmd
}

func newTileCmd() *cobra.Command {
	var (
		in      estimate.TileInput
		surface string
	)

	cmd := &cobra.Command{
		Use:   "tile",
		Short: "Estimate tiles, packs and adhesive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := estimate.ParseSurfaceType(surface)
			if err != nil {
				return err
			}
			in.Surface = s
			return runEstimate(cmd, func(c *estimate.Calculator) (any, error) {
				return c.Tile(in)
			})
		},
	}

	cmd.Flags().StringVar(&surface, "surface", "floor", "Surface: floor or wall")
	cmd.Flags().Float64Var(&in.Length, "length", 0, "Surface length (m)")
	cmd.Flags().Float64Var(&in.Width, "width", 0, "Surface width, or wall height (m)")
	cmd.Flags().Float64Var(&in.ExcludedArea, "excluded-area", 0, "Floor area left untiled (m²)")
	cmd.Flags().Float64Var(&in.TileLength, "tile-length", 0, "Tile length (cm)")
	cmd.Flags().Float64Var(&in.TileWidth, "tile-width", 0, "Tile width (cm)")
	cmd.Flags().Float64Var(&in.GroutWidth, "grout", 2, "Grout joint width (mm)")
	cmd.Flags().IntVar(&in.TilesPerPack, "per-pack", 10, "Tiles per pack")
	cmd.Flags().IntVar(&in.Windows, "windows", 0, "Windows in a tiled wall")
	cmd.Flags().IntVar(&in.Doors, "doors", 0, "Doors in a tiled wall")
	cmd.Flags().Float64Var(&in.WindowArea, "window-area", 0, "Area per window (m², default applies when 0)")
	cmd.Flags().Float64Var(&in.DoorArea, "door-area", 0, "Area per door (m², default applies when 0)")
	cmd.Flags().Float64Var(&in.BaseWaste, "waste", 10, "Base waste percent")
	cmd.Flags().Float64Var(&in.ExtraWaste, "extra-waste", 0, "Extra waste percent for layout")
	return cmd
}

func newWallpaperCmd() *cobra.Command {
	var (
		in       estimate.WallpaperInput
		mode     string
		openings []string
	)

	cmd := &cobra.Command{
		Use:   "wallpaper",
		Short: "Estimate wallpaper rolls",
		Long: `Estimate wallpaper rolls for a whole room or a single wall.

Openings are given as WIDTHxHEIGHT in meters, for example --opening 0.9x2.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := estimate.ParseWallpaperMode(mode)
			if err != nil {
				return err
			}
			in.Mode = m

			in.Openings = in.Openings[:0]
			for _, raw := range openings {
				o, err := parseOpening(raw)
				if err != nil {
					return err
				}
				in.Openings = append(in.Openings, o)
			}
			return runEstimate(cmd, func(c *estimate.Calculator) (any, error) {
				return c.Wallpaper(in)
			})
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "room", "Mode: room or wall")
	cmd.Flags().Float64Var(&in.Width, "width", 0, "Room width (m), room mode only")
	cmd.Flags().Float64Var(&in.Length, "length", 0, "Room or wall length (m)")
	cmd.Flags().Float64Var(&in.Height, "height", 0, "Wall height (m)")
	cmd.Flags().StringSliceVar(&openings, "opening", nil, "Opening as WIDTHxHEIGHT in meters (repeatable)")
	cmd.Flags().Float64Var(&in.RollWidth, "roll-width", 53, "Roll width (cm)")
	cmd.Flags().Float64Var(&in.RollLength, "roll-length", 10.05, "Roll length (m)")
	cmd.Flags().Float64Var(&in.PatternRepeat, "pattern-repeat", 0, "Pattern repeat (cm), 0 for none")
	cmd.Flags().BoolVar(&in.OffsetMatch, "offset-match", false, "Pattern uses an offset (drop) match")
	return cmd
}

func parseOpening(raw string) (estimate.Opening, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(raw)), "x")
	if !ok {
		return estimate.Opening{}, fmt.Errorf("invalid opening %q: expected WIDTHxHEIGHT", raw)
	}
	width, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil {
		return estimate.Opening{}, fmt.Errorf("invalid opening width %q: %w", w, err)
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err != nil {
		return estimate.Opening{}, fmt.Errorf("invalid opening height %q: %w", h, err)
	}
	return estimate.Opening{Width: width, Height: height}, nil
}

func newHeatingCmd() *cobra.Command {
	var (
		in                     estimate.HeatingInput
		covering, mode, system string
	)

	cmd := &cobra.Command{
		Use:   "heating",
		Short: "Size underfloor heating and its running cost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if in.Covering, err = estimate.ParseFloorCovering(covering); err != nil {
				return err
			}
			if in.Mode, err = estimate.ParseHeatingMode(mode); err != nil {
				return err
			}
			if in.System, err = estimate.ParseHeatingSystem(system); err != nil {
				return err
			}
			return runEstimate(cmd, func(c *estimate.Calculator) (any, error) {
				return c.Heating(in)
			})
		},
	}

	cmd.Flags().Float64Var(&in.RoomArea, "area", 0, "Room floor area (m²)")
	cmd.Flags().Float64Var(&in.CoveragePercent, "coverage", 70, "Heated share of the floor (%)")
	cmd.Flags().StringVar(&covering, "covering", "tile", "Floor covering: tile, laminate, vinyl, wood")
	cmd.Flags().StringVar(&mode, "mode", "comfort", "Heating mode: comfort or primary")
	cmd.Flags().StringVar(&system, "system", "cable", "Heating system: cable or mat")
	cmd.Flags().Float64Var(&in.HeatLossFactor, "heat-loss", 1, "Room heat loss factor (0.8-1.4)")
	cmd.Flags().Float64Var(&in.BelowFloorFactor, "below-floor", 1, "Below-floor factor (0.8-1.4)")
	cmd.Flags().Float64Var(&in.CablePower, "cable-power", 18, "Cable linear power (W/m)")
	cmd.Flags().Float64Var(&in.MatPower, "mat-power", 150, "Mat power density (W/m²)")
	cmd.Flags().Float64Var(&in.HoursPerDay, "hours", 8, "Operating hours per day")
	cmd.Flags().Float64Var(&in.DaysPerMonth, "days", 30, "Operating days per month")
	cmd.Flags().Float64Var(&in.LoadPercent, "load", 50, "Average thermostat load (%)")
	cmd.Flags().Float64Var(&in.TariffPerKWh, "tariff", 0, "Electricity price per kWh, 0 to skip cost")
	return cmd
}

func newVentilationCmd() *cobra.Command {
	var in estimate.VentilationInput

	cmd := &cobra.Command{
		Use:   "ventilation",
		Short: "Estimate required airflow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd, func(c *estimate.Calculator) (any, error) {
				return c.Ventilation(in)
			})
		},
	}

	cmd.Flags().Float64Var(&in.Length, "length", 0, "Room length (m)")
	cmd.Flags().Float64Var(&in.Width, "width", 0, "Room width (m)")
	cmd.Flags().Float64Var(&in.Height, "height", 0, "Room height (m)")
	cmd.Flags().Float64Var(&in.AirChangesPerHr, "ach", 1, "Air changes per hour")
	cmd.Flags().Float64Var(&in.ReservePercent, "reserve", estimate.DefaultVentilationReserve, "Reserve percent (0-50)")
	return cmd
}
