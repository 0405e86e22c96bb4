// Package biochar estimates long-term CO2 removal from biochar applied to soil
// using the Woolf et al. (2021) permanence model.
package biochar

const (
	// CO2PerCarbon is the molar mass ratio of CO2 to C (44:12).
	CO2PerCarbon = 44.0 / 12.0

	// MaxScenarios is the maximum number of soil temperatures per calculation.
	MaxScenarios = 3

	// MaxHCRatio is the upper bound accepted for the H/C molar ratio.
	MaxHCRatio = 3.0

	// ValidatedHCRatioMax is the H/C ratio above which the linear permanence
	// regression is outside its fitted domain. Results still compute but are
	// flagged as low confidence.
	ValidatedHCRatioMax = 1.0

	// HighStabilityHCMax and MediumStabilityHCMax bound the stability classes.
	// Source: IBI/EBC H/Corg thresholds.
	HighStabilityHCMax   = 0.4
	MediumStabilityHCMax = 0.7
)

// Horizon is an elapsed time in years at which permanence is evaluated.
type Horizon int

// The four fixed checkpoints. Horizon0 is the initial condition.
const (
	Horizon0    Horizon = 0
	Horizon100  Horizon = 100
	Horizon500  Horizon = 500
	Horizon1000 Horizon = 1000
)

// Horizons lists every checkpoint in ascending order.
var Horizons = []Horizon{Horizon0, Horizon100, Horizon500, Horizon1000}

// AllowedSoilTemps lists the mean annual soil temperatures (°C) with tabulated
// coefficients, in ascending order.
var AllowedSoilTemps = []float64{5, 10, 10.9, 14.9, 15, 20, 25}

// IsAllowedSoilTemp reports whether temp is one of AllowedSoilTemps.
func IsAllowedSoilTemp(temp float64) bool {
	for _, t := range AllowedSoilTemps {
		if t == temp {
			return true
		}
	}
	return false
}

// IsHorizon reports whether h is one of the four fixed checkpoints.
func IsHorizon(h Horizon) bool {
	switch h {
	case Horizon0, Horizon100, Horizon500, Horizon1000:
		return true
	}
	return false
}
