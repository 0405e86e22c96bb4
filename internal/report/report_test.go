package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/npco2/bioc-calc/internal/biochar"
)

func sampleResult(t *testing.T, temps ...float64) biochar.CalculationResult {
	t.Helper()
	result, err := biochar.Compute(biochar.SampleInputs{
		Project: biochar.ProjectInfo{
			StudentName: "Ana",
			SampleName:  "ACC-1",
			City:        "Mossoró",
			State:       "RN",
		},
		BiomassType:       biochar.BiomassCashewShell,
		Mass:              biochar.RawBiomass{Tonnes: 10, YieldPercent: 30},
		CarbonContent:     75,
		HCRatio:           0.35,
		SelectedSoilTemps: temps,
		PyrolysisTemp:     500,
	})
	require.NoError(t, err)
	return result
}

func testMeta() Meta {
	return Meta{ID: "report-1", IssuedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), Footer: "NPCO2"}
}

func TestBuild(t *testing.T) {
	result := sampleResult(t, 14.9, 25)
	doc := Build(result, testMeta())

	assert.Equal(t, "report-1", doc.ID)
	assert.InDelta(t, 3.0, doc.BiocharMass, 1e-12)
	assert.Equal(t, 14.9, doc.MainSoilTemp)
	assert.Equal(t, biochar.StabilityHigh, doc.Stability)
	assert.NotEmpty(t, doc.StabilityNote)
	assert.Contains(t, doc.Methodology, "14.9°C")
	assert.Contains(t, doc.Authorization, "not authorized")

	require.Len(t, doc.Headline, 3)
	assert.Equal(t, []int{100, 500, 1000}, []int{doc.Headline[0].Years, doc.Headline[1].Years, doc.Headline[2].Years})

	p100, ok := result.MainScenario().At(biochar.Horizon100)
	require.True(t, ok)
	assert.InDelta(t, p100.FPerm*100, doc.Headline[0].PermanencePct, 1e-9)
	assert.InDelta(t, p100.CO2Sequestered/3.0, doc.Headline[0].Efficiency, 1e-9)

	require.Len(t, doc.Scenarios, 2)
	assert.Equal(t, 25.0, doc.Scenarios[1].SoilTemp)
	assert.Len(t, doc.Scenarios[1].PermanencePct, 3)

	fields := map[string]string{}
	for _, f := range doc.Identification {
		fields[f.Label] = f.Value
	}
	assert.Equal(t, "Ana", fields["Student"])
	assert.Equal(t, "-", fields["Advisor"])
	assert.Equal(t, "Mossoró - RN", fields["Location"])
	assert.Equal(t, "cashew shell", fields["Biomass"])
}

func TestBuild_CoefficientProvenance(t *testing.T) {
	doc := Build(sampleResult(t, 14.9), testMeta())

	assert.Equal(t, biochar.CoefficientSource, doc.CoefficientSource)
	assert.Equal(t, biochar.CoefficientsVerified, doc.CoefficientsVerified)
	assert.Equal(t, !biochar.CoefficientsVerified, strings.Contains(doc.Methodology, UnverifiedCoefficientsNote))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, doc, DefaultOptions()))
	assert.Contains(t, buf.String(), `"coefficientsVerified"`)
}

func TestBuild_Authorization(t *testing.T) {
	result := sampleResult(t, 10)
	result.Inputs.DataAuthorization = true

	doc := Build(result, testMeta())
	assert.Contains(t, doc.Authorization, "authorized for inclusion")
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "PDF", " xlsx "} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("docx")
	assert.Error(t, err)

	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t, "application/json", FormatJSON.ContentType())
}

func TestRenderJSON(t *testing.T) {
	doc := Build(sampleResult(t, 5, 15), testMeta())

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, doc, DefaultOptions()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "report-1", decoded["id"])
	assert.Equal(t, "high", decoded["stability"])
	assert.Len(t, decoded["scenarios"], 2)
	assert.NotContains(t, decoded, "Result")
}

func TestRenderPDF(t *testing.T) {
	for _, temps := range [][]float64{{14.9}, {5, 14.9, 25}} {
		doc := Build(sampleResult(t, temps...), testMeta())

		var buf bytes.Buffer
		require.NoError(t, Render(&buf, FormatPDF, doc, Options{PageSize: "Letter"}))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
		assert.Greater(t, buf.Len(), 1000)
	}
}

func TestRenderXLSX(t *testing.T) {
	result := sampleResult(t, 10, 20)
	doc := Build(result, testMeta())

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatXLSX, doc, DefaultOptions()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{summarySheet, scenariosSheet}, f.GetSheetList())

	rows, err := f.GetRows(scenariosSheet)
	require.NoError(t, err)
	// header + 2 scenarios × 4 horizons
	require.Len(t, rows, 1+2*4)
	assert.Equal(t, "Horizon (years)", rows[0][1])
	assert.Equal(t, "10", rows[1][0])
	assert.Equal(t, "0", rows[1][1])
	assert.Equal(t, "1", rows[1][2])

	id, err := f.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "report-1", id)
}

func TestRender_UnknownFormat(t *testing.T) {
	doc := Build(sampleResult(t, 10), testMeta())
	err := Render(&bytes.Buffer{}, Format("docx"), doc, DefaultOptions())
	assert.Error(t, err)
}
