package server

import (
	"github.com/npco2/bioc-calc/internal/biochar"
)

// ResultResponse is the wire form of a biochar.CalculationResult.
type ResultResponse struct {
	BiocharMass       float64            `json:"biocharMass"`
	CarbonContent     float64            `json:"carbonContent"`
	HCRatio           float64            `json:"hcRatio"`
	BiomassType       string             `json:"biomassType,omitempty"`
	SelectedSoilTemps []float64          `json:"selectedSoilTemps"`
	Scenarios         []ScenarioResponse `json:"scenarios"`
}

// ScenarioResponse is one soil temperature scenario.
type ScenarioResponse struct {
	Temp       float64             `json:"temp"`
	DataPoints []DataPointResponse `json:"dataPoints"`
}

// DataPointResponse is the projection at one horizon.
type DataPointResponse struct {
	Year           int     `json:"year"`
	FPerm          float64 `json:"fPerm"`
	CO2Sequestered float64 `json:"co2Sequestered"`
	Efficiency     float64 `json:"efficiency"`
}

// AdvisoryResponse carries presentation hints.
type AdvisoryResponse struct {
	Stability            string `json:"stability"`
	LowConfidence        bool   `json:"lowConfidence"`
	CoefficientsVerified bool   `json:"coefficientsVerified"`
	CoefficientSource    string `json:"coefficientSource"`
}

func newResultResponse(r biochar.CalculationResult) ResultResponse {
	out := ResultResponse{
		BiocharMass:       r.BiocharMass,
		CarbonContent:     r.Inputs.CarbonContent,
		HCRatio:           r.Inputs.HCRatio,
		BiomassType:       string(r.Inputs.BiomassType),
		SelectedSoilTemps: r.Inputs.SelectedSoilTemps,
		Scenarios:         make([]ScenarioResponse, 0, len(r.Scenarios)),
	}
	for i, s := range r.Scenarios {
		sr := ScenarioResponse{
			Temp:       s.Temp,
			DataPoints: make([]DataPointResponse, 0, len(s.DataPoints)),
		}
		for _, dp := range s.DataPoints {
			sr.DataPoints = append(sr.DataPoints, DataPointResponse{
				Year:           int(dp.Year),
				FPerm:          dp.FPerm,
				CO2Sequestered: dp.CO2Sequestered,
				Efficiency:     r.Efficiency(i, dp.Year),
			})
		}
		out.Scenarios = append(out.Scenarios, sr)
	}
	return out
}

func newAdvisoryResponse(a biochar.Advisory) AdvisoryResponse {
	return AdvisoryResponse{
		Stability:            string(a.Stability),
		LowConfidence:        a.LowConfidence,
		CoefficientsVerified: biochar.CoefficientsVerified,
		CoefficientSource:    biochar.CoefficientSource,
	}
}
