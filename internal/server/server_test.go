package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npco2/bioc-calc/internal/biochar"
	"github.com/npco2/bioc-calc/internal/report"
)

func newTestServer(t *testing.T) (*Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	s := New(Config{
		Logger:        zerolog.New(&logs),
		ReportOptions: report.DefaultOptions(),
		ReportFooter:  "NPCO2",
	})
	return s, &logs
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCatalogs(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/api/v1/soil-temperatures", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var temps struct {
		SoilTemperatures []float64 `json:"soilTemperatures"`
		MaxSelected      int       `json:"maxSelected"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &temps))
	assert.Equal(t, []float64{5, 10, 10.9, 14.9, 15, 20, 25}, temps.SoilTemperatures)
	assert.Equal(t, 3, temps.MaxSelected)

	rec = do(t, h, http.MethodGet, "/api/v1/biomass-types", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cashew_shell")

	rec = do(t, h, http.MethodGet, "/api/v1/form/defaults", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"hcRatio":0.35`)
}

func TestCreateCalculation(t *testing.T) {
	s, _ := newTestServer(t)

	body := `{"massInput": 1, "isDirectBiocharInput": true, "carbonContent": 75, "hcRatio": 0.35, "selectedSoilTemps": [25, 14.9]}`
	rec := do(t, s.Handler(), http.MethodPost, "/api/v1/calculations", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp CalculationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, resp.ID, rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "high", resp.Advisory.Stability)
	assert.False(t, resp.Advisory.LowConfidence)
	assert.Equal(t, biochar.CoefficientsVerified, resp.Advisory.CoefficientsVerified)
	assert.Equal(t, biochar.CoefficientSource, resp.Advisory.CoefficientSource)

	require.Len(t, resp.Result.Scenarios, 2)
	assert.Equal(t, 14.9, resp.Result.Scenarios[0].Temp)
	assert.Equal(t, 25.0, resp.Result.Scenarios[1].Temp)

	first := resp.Result.Scenarios[0].DataPoints
	require.Len(t, first, 4)
	assert.Equal(t, 0, first[0].Year)
	assert.Equal(t, 1.0, first[0].FPerm)
	assert.InDelta(t, 2.75, first[0].CO2Sequestered, 1e-9)
	assert.InDelta(t, 2.75, first[0].Efficiency, 1e-9)
}

func TestCreateCalculation_RequestIDPropagated(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculations", strings.NewReader(`{"massInput": 2}`))
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.Contains(t, rec.Body.String(), `"id":"abc-123"`)
}

func TestCreateCalculation_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		kind   string
	}{
		{"empty body", ``, http.StatusBadRequest, "error"},
		{"null body", `null`, http.StatusBadRequest, "error"},
		{"empty object", `{}`, http.StatusBadRequest, "error"},
		{"malformed JSON", `{"massInput":`, http.StatusBadRequest, "error"},
		{"carbon above 100", `{"carbonContent": 150}`, http.StatusBadRequest, "invalid_input"},
		{"zero mass", `{"massInput": 0}`, http.StatusBadRequest, "invalid_input"},
		{"too many temperatures", `{"selectedSoilTemps": [5, 10, 15, 20]}`, http.StatusBadRequest, "invalid_input"},
		{"unknown biomass", `{"biomassType": "peat"}`, http.StatusBadRequest, "invalid_input"},
		{"unsupported temperature", `{"selectedSoilTemps": [12]}`, http.StatusUnprocessableEntity, "unsupported_scenario"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, logs := newTestServer(t)
			rec := do(t, s.Handler(), http.MethodPost, "/api/v1/calculations", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.kind, resp.Kind)
			assert.NotEmpty(t, resp.Error)
			assert.NotEmpty(t, resp.RequestID)
			assert.Contains(t, logs.String(), `"level":"warn"`)
		})
	}
}

func TestCreateReport(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()
	body := `{"sampleName": "ACC-1", "selectedSoilTemps": [10, 20]}`

	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"pdf", "application/pdf", "%PDF-"},
		{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "PK"},
		{"json", "application/json", "{"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/v1/reports?format="+tt.format, body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Header().Get("Content-Disposition"), "bioc-calc-report."+tt.format)
			assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte(tt.prefix)))
		})
	}
}

func TestCreateReport_BadFormat(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodPost, "/api/v1/reports?format=docx", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	do(t, h, http.MethodPost, "/api/v1/calculations", `{"massInput": 1}`)
	do(t, h, http.MethodPost, "/api/v1/calculations", `{"selectedSoilTemps": [12]}`)
	do(t, h, http.MethodPost, "/api/v1/calculations", `{"biomassType": "peat"}`)
	do(t, h, http.MethodPost, "/api/v1/calculations", `null`)
	do(t, h, http.MethodPost, "/api/v1/reports?format=json", `{"massInput": 1}`)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, `bioc_calculations_total{outcome="ok"} 2`)
	assert.Contains(t, out, `bioc_calculations_total{outcome="unsupported_scenario"} 1`)
	assert.Contains(t, out, `bioc_calculations_total{outcome="invalid_input"} 1`)
	assert.NotContains(t, out, `bioc_calculations_total{outcome="error"}`)
	assert.Contains(t, out, `bioc_reports_total{format="json"} 1`)
}
