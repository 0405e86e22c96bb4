// Package report renders calculation results as technical reports.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/npco2/bioc-calc/internal/biochar"
)

// MethodologyEquation is the permanence equation printed in every report.
const MethodologyEquation = "Fperm = Chc + Mhc x (H/C)"

// UnverifiedCoefficientsNote is appended to the methodology while the
// permanence coefficients have not been checked against the published table.
const UnverifiedCoefficientsNote = "The permanence coefficients used here have not yet been verified " +
	"against the published Woolf et al. (2021) table; treat the figures as provisional."

// Meta describes the report itself rather than the sample.
type Meta struct {
	ID       string
	IssuedAt time.Time
	Footer   string
}

// NewMeta returns report metadata with a fresh ID.
func NewMeta(now time.Time, footer string) Meta {
	return Meta{ID: uuid.New().String(), IssuedAt: now, Footer: footer}
}

// HorizonRow is one headline row for the main scenario.
type HorizonRow struct {
	Years          int     `json:"years"`
	PermanencePct  float64 `json:"permanencePct"`
	CO2Sequestered float64 `json:"co2SequesteredT"`
	Efficiency     float64 `json:"efficiencyTPerT"`
}

// ScenarioRow is one soil temperature in the detail table.
type ScenarioRow struct {
	SoilTemp      float64   `json:"soilTempC"`
	PermanencePct []float64 `json:"permanencePct"` // 100, 500, 1000 years
	Efficiency    []float64 `json:"efficiencyTPerT"`
	CO2           []float64 `json:"co2SequesteredT"`
}

// Field is a labelled value in the identification section.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Document is the presentation model shared by every renderer.
type Document struct {
	ID             string                    `json:"id"`
	IssuedAt       time.Time                 `json:"issuedAt"`
	Title          string                    `json:"title"`
	Identification []Field                   `json:"identification"`
	BiocharMass    float64                   `json:"biocharMassT"`
	CarbonContent  float64                   `json:"carbonContentPct"`
	HCRatio        float64                   `json:"hcRatio"`
	Stability      biochar.Stability         `json:"stability"`
	StabilityNote  string                    `json:"stabilityNote"`
	LowConfidence  bool                      `json:"lowConfidence"`
	MainSoilTemp   float64                   `json:"mainSoilTempC"`
	Headline       []HorizonRow              `json:"headline"`
	Scenarios      []ScenarioRow             `json:"scenarios"`
	Methodology    string                    `json:"methodology"`
	Equation       string                    `json:"equation"`
	Authorization  string                    `json:"authorization"`
	Footer         string                    `json:"footer"`
	Result         biochar.CalculationResult `json:"-"`

	// CoefficientSource and CoefficientsVerified state the provenance of the
	// permanence table behind every figure.
	CoefficientSource    string `json:"coefficientSource"`
	CoefficientsVerified bool   `json:"coefficientsVerified"`
}

// reportHorizons are the non-trivial checkpoints shown in tables.
var reportHorizons = []biochar.Horizon{biochar.Horizon100, biochar.Horizon500, biochar.Horizon1000}

// Build assembles the report document for a result.
func Build(result biochar.CalculationResult, meta Meta) Document {
	in := result.Inputs
	main := result.MainScenario()

	doc := Document{
		ID:             meta.ID,
		IssuedAt:       meta.IssuedAt,
		Title:          "Technical Report: Biochar Carbon Sequestration Estimate",
		Identification: identification(in),
		BiocharMass:    result.BiocharMass,
		CarbonContent:  in.CarbonContent,
		HCRatio:        in.HCRatio,
		Stability:      result.Advisory.Stability,
		StabilityNote:  StabilityNote(result.Advisory.Stability),
		LowConfidence:  result.Advisory.LowConfidence,
		MainSoilTemp:   main.Temp,
		Equation:       MethodologyEquation,
		Footer:         meta.Footer,
		Result:         result,

		CoefficientSource:    biochar.CoefficientSource,
		CoefficientsVerified: biochar.CoefficientsVerified,
	}

	doc.Methodology = fmt.Sprintf(
		"Estimated with the Woolf et al. (2021) model, \"Greenhouse Gas Inventory Model for Biochar "+
			"Additions to Soil\". Stability is set by the H/Corg molar ratio and the mean soil "+
			"temperature (%g°C in the main scenario).", main.Temp)
	if !doc.CoefficientsVerified {
		doc.Methodology += " " + UnverifiedCoefficientsNote
	}

	if in.DataAuthorization {
		doc.Authorization = "Sample authorized for inclusion in the NPCO2 scientific biochar library."
	} else {
		doc.Authorization = "Sample not authorized for the public library."
	}

	for _, h := range reportHorizons {
		dp, _ := main.At(h)
		doc.Headline = append(doc.Headline, HorizonRow{
			Years:          int(h),
			PermanencePct:  dp.FPerm * 100,
			CO2Sequestered: dp.CO2Sequestered,
			Efficiency:     result.Efficiency(0, h),
		})
	}

	for i, s := range result.Scenarios {
		row := ScenarioRow{SoilTemp: s.Temp}
		for _, h := range reportHorizons {
			dp, _ := s.At(h)
			row.PermanencePct = append(row.PermanencePct, dp.FPerm*100)
			row.CO2 = append(row.CO2, dp.CO2Sequestered)
			row.Efficiency = append(row.Efficiency, result.Efficiency(i, h))
		}
		doc.Scenarios = append(doc.Scenarios, row)
	}

	return doc
}

// StabilityNote explains a stability class in one paragraph.
func StabilityNote(s biochar.Stability) string {
	switch s {
	case biochar.StabilityHigh:
		return "An H/C ratio at or below 0.4 indicates a highly condensed, aromatic biochar typical of " +
			"high-temperature pyrolysis, with maximum resistance to biological degradation in soil."
	case biochar.StabilityMedium:
		return "An H/C ratio between 0.4 and 0.7 indicates moderate carbonization. Stable aromatic " +
			"structures dominate, but aliphatic fractions may mineralize faster during the first centuries."
	default:
		return "An H/C ratio above 0.7 suggests low pyrolysis temperatures or short residence times, " +
			"close to torrefaction. Long-term stability is lower than for high-temperature biochars."
	}
}

func identification(in biochar.SampleInputs) []Field {
	p := in.Project
	location := ""
	if p.City != "" && p.State != "" {
		location = p.City + " - " + p.State
	}
	return []Field{
		{"Student", orDash(p.StudentName)},
		{"Advisor", orDash(p.AdvisorName)},
		{"Title", orDash(p.ResearchTitle)},
		{"Level", orDash(string(p.Level))},
		{"Sample ID", orDash(p.SampleName)},
		{"Institution", orDash(p.Institution)},
		{"Location", orDash(location)},
		{"Biomass", orDash(biomassLabel(in.BiomassType))},
		{"Pyrolysis temperature", fmt.Sprintf("%g°C", in.PyrolysisTemp)},
	}
}

func biomassLabel(b biochar.BiomassType) string {
	return strings.ReplaceAll(string(b), "_", " ")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
