package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/renolab/renolab/internal/errors"
	"github.com/renolab/renolab/internal/estimate"
	"github.com/renolab/renolab/internal/i18n"
)

func estimateRouter(maxBody int64) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/v1/estimate/{kind}", NewEstimateHandler(estimate.Default(), i18n.New(), maxBody).ServeHTTP)
	return r
}

func postEstimate(t *testing.T, h http.Handler, kind, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/estimate/"+kind, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) apperrors.HTTPErrorDetail {
	t.Helper()
	var body apperrors.HTTPErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func TestEstimatePaint(t *testing.T) {
	rec := postEstimate(t, estimateRouter(0), KindPaint,
		`{"length":5,"width":4,"height":2.7,"doors":1,"windows":2,"coats":2,"coverage":10}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Kind   string               `json:"kind"`
		Result estimate.PaintResult `json:"result"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, KindPaint, resp.Kind)
	assert.InDelta(t, 12.72, resp.Result.Liters, 1e-9)
}

func TestEstimateVentilationReserve(t *testing.T) {
	tests := []struct {
		name string
		body string
		want float64
	}{
		{"omitted uses default", `{"length":5,"width":4,"height":2.7,"air_changes_per_hour":3.5}`, 207.9},
		{"explicit zero", `{"length":5,"width":4,"height":2.7,"air_changes_per_hour":3.5,"reserve_percent":0}`, 189},
		{"explicit value", `{"length":5,"width":4,"height":2.7,"air_changes_per_hour":3.5,"reserve_percent":20}`, 226.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postEstimate(t, estimateRouter(0), KindVentilation, tt.body)
			require.Equal(t, http.StatusOK, rec.Code)

			var resp struct {
				Result estimate.VentilationResult `json:"result"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.InDelta(t, 189, resp.Result.FlowM3h, 1e-9)
			assert.InDelta(t, tt.want, resp.Result.FlowWithReserveM3h, 1e-9)
		})
	}
}

func TestEstimateBudget(t *testing.T) {
	rec := postEstimate(t, estimateRouter(0), KindBudget,
		`{"items":[50000,30000,-5],"reserve_percent":10}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result estimate.BudgetResult `json:"result"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.InDelta(t, 88000, resp.Result.Total, 1e-9)
}

func TestEstimateVentilation(t *testing.T) {
	rec := postEstimate(t, estimateRouter(0), KindVentilation,
		`{"length":5,"width":4,"height":2.7,"air_changes_per_hour":3.5,"reserve_percent":10}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result estimate.VentilationResult `json:"result"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.InDelta(t, 189, resp.Result.FlowM3h, 1e-9)
	assert.InDelta(t, 207.9, resp.Result.FlowWithReserveM3h, 1e-9)
}

func TestEstimateErrors(t *testing.T) {
	h := estimateRouter(0)

	t.Run("malformed body", func(t *testing.T) {
		rec := postEstimate(t, h, KindTile, `{"length":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apperrors.CodeInvalidInput, errorBody(t, rec).Code)
	})

	t.Run("unknown enum", func(t *testing.T) {
		rec := postEstimate(t, h, KindTile, `{"surface":"ceiling"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		detail := errorBody(t, rec)
		assert.Equal(t, apperrors.CodeInvalidInput, detail.Code)
		assert.Equal(t, "surface", detail.Details["field"])
	})

	t.Run("out of range", func(t *testing.T) {
		rec := postEstimate(t, h, KindVentilation,
			`{"length":5,"width":4,"height":2.7,"air_changes_per_hour":25}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		detail := errorBody(t, rec)
		assert.Equal(t, apperrors.CodeValidationFailed, detail.Code)
		assert.Equal(t, "air_changes_per_hour", detail.Details["field"])
		assert.Contains(t, detail.Message, "air_changes_per_hour")
	})

	t.Run("localized validation", func(t *testing.T) {
		rec := postEstimate(t, h, KindVentilation,
			`{"length":0,"width":4,"height":2.7,"air_changes_per_hour":2}`,
			"Accept-Language", "ru-RU,ru;q=0.9")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, errorBody(t, rec).Message, "Недопустимое значение")
	})

	t.Run("not finite", func(t *testing.T) {
		rec := postEstimate(t, h, KindVentilation,
			`{"length":1e308,"width":1e308,"height":1,"air_changes_per_hour":1}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, apperrors.CodeUnprocessable, errorBody(t, rec).Code)
	})

	t.Run("unknown kind", func(t *testing.T) {
		rec := postEstimate(t, h, "roof", `{}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestEstimateBodyLimit(t *testing.T) {
	rec := postEstimate(t, estimateRouter(16), KindPaint,
		`{"length":5,"width":4,"height":2.7,"coats":2,"coverage":10}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, apperrors.CodeRequestTooLarge, errorBody(t, rec).Code)
}

func TestEstimateKinds(t *testing.T) {
	h := NewEstimateHandler(nil, nil, 0)
	assert.Equal(t, []string{"budget", "heating", "paint", "tile", "ventilation", "wallpaper"}, h.Kinds())
}
