package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/renolab/renolab/internal/errors"
	"github.com/renolab/renolab/internal/estimate"
	"github.com/renolab/renolab/internal/i18n"
	"github.com/renolab/renolab/internal/metrics"
)

// Estimator kinds served under /api/v1/estimate/{kind}.
const (
	KindPaint       = "paint"
	KindBudget      = "budget"
	KindTile        = "tile"
	KindWallpaper   = "wallpaper"
	KindHeating     = "heating"
	KindVentilation = "ventilation"
)

// BudgetRequest is the JSON body of a budget estimate.
type BudgetRequest struct {
	Items          []float64 `json:"items"`
	ReservePercent float64   `json:"reserve_percent"`
}

// VentilationRequest is the JSON body of a ventilation estimate. An omitted
// reserve_percent means estimate.DefaultVentilationReserve.
type VentilationRequest struct {
	estimate.VentilationInput
	ReservePercent *float64 `json:"reserve_percent"`
}

// Input resolves the reserve default.
func (r VentilationRequest) Input() estimate.VentilationInput {
	in := r.VentilationInput
	in.ReservePercent = estimate.DefaultVentilationReserve
	if r.ReservePercent != nil {
		in.ReservePercent = *r.ReservePercent
	}
	return in
}

// EstimateResponse wraps an estimator result with its kind.
type EstimateResponse struct {
	Kind   string `json:"kind"`
	Result any    `json:"result"`
}

// decodeError marks a body that could not be decoded into the input type.
type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

type estimateFunc func(dec *json.Decoder) (any, error)

// decodeAndRun decodes the body into In and runs fn on it.
func decodeAndRun[In, Out any](fn func(In) (Out, error)) estimateFunc {
	return func(dec *json.Decoder) (any, error) {
		var in In
		if err := dec.Decode(&in); err != nil {
			return nil, &decodeError{err: err}
		}
		return fn(in)
	}
}

func infallible[In, Out any](fn func(In) Out) func(In) (Out, error) {
	return func(in In) (Out, error) {
		return fn(in), nil
	}
}

// EstimateHandler serves every estimator over JSON.
type EstimateHandler struct {
	kinds        map[string]estimateFunc
	translator   *i18n.Translator
	maxBodyBytes int64
}

// NewEstimateHandler binds the estimators to calc. Bodies larger than
// maxBodyBytes are rejected.
func NewEstimateHandler(calc *estimate.Calculator, translator *i18n.Translator, maxBodyBytes int64) *EstimateHandler {
	if calc == nil {
		calc = estimate.Default()
	}
	if translator == nil {
		translator = i18n.New()
	}

	budget := func(in BudgetRequest) estimate.BudgetResult {
		return calc.Budget(in.Items, in.ReservePercent)
	}
	ventilation := func(in VentilationRequest) (estimate.VentilationResult, error) {
		return calc.Ventilation(in.Input())
	}

	return &EstimateHandler{
		kinds: map[string]estimateFunc{
			KindPaint:       decodeAndRun(infallible(calc.Paint)),
			KindBudget:      decodeAndRun(infallible(budget)),
			KindTile:        decodeAndRun(calc.Tile),
			KindWallpaper:   decodeAndRun(calc.Wallpaper),
			KindHeating:     decodeAndRun(calc.Heating),
			KindVentilation: decodeAndRun(ventilation),
		},
		translator:   translator,
		maxBodyBytes: maxBodyBytes,
	}
}

// Kinds lists the served estimator kinds.
func (h *EstimateHandler) Kinds() []string {
	kinds := make([]string, 0, len(h.kinds))
	for k := range h.kinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func (h *EstimateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	run, ok := h.kinds[kind]
	if !ok {
		respondWithError(w, r, apperrors.NewNotFoundError("unknown estimate kind: "+kind))
		return
	}

	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	start := time.Now()
	result, err := run(json.NewDecoder(r.Body))
	if err != nil {
		metrics.RecordEstimation(kind, estimationStatus(err), time.Since(start))
		respondWithError(w, r, h.translate(r, err))
		return
	}
	metrics.RecordEstimation(kind, metrics.StatusOK, time.Since(start))

	writeJSON(w, http.StatusOK, EstimateResponse{Kind: kind, Result: result})
}

func estimationStatus(err error) string {
	if stderrors.Is(err, estimate.ErrNotFinite) {
		return metrics.StatusUnprocessable
	}
	return metrics.StatusInvalid
}

// translate maps estimator and decode failures to localized API errors.
func (h *EstimateHandler) translate(r *http.Request, err error) error {
	tag := i18n.FromRequest(r)

	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return apperrors.NewRequestTooLargeError(h.translator.Sprintf(tag, i18n.InvalidBody), tooLarge.Limit)
	}

	var inputErr *estimate.InputError
	var decErr *decodeError
	if stderrors.As(err, &decErr) {
		env := apperrors.WrapInvalidInput(r.Context(), decErr.err, h.translator.Sprintf(tag, i18n.InvalidBody))
		if stderrors.As(err, &inputErr) {
			env = env.WithDetails(map[string]interface{}{"field": inputErr.Field})
		}
		return env
	}

	switch {
	case stderrors.As(err, &inputErr):
		return apperrors.NewValidationError(inputErr.Field,
			h.translator.Sprintf(tag, i18n.InvalidField, inputErr.Field, inputErr.Reason))
	case stderrors.Is(err, estimate.ErrNotFinite):
		return apperrors.NewUnprocessableError(h.translator.Sprintf(tag, i18n.Unprocessable))
	default:
		return apperrors.WrapInternal(r.Context(), err, "estimate failed")
	}
}
