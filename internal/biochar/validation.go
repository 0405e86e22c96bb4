package biochar

import (
	"fmt"
	"sort"
)

// ValidateInputs checks the chemistry and scenario invariants of a sample.
// Mass is checked by ResolveBiocharMass.
//
// Soil temperatures outside AllowedSoilTemps fail with
// *UnsupportedScenarioError; every other violation is an *InvalidInputError.
func ValidateInputs(in SampleInputs) error {
	if !isFinite(in.CarbonContent) || in.CarbonContent < 0 || in.CarbonContent > 100 {
		return invalid("carbonContent", in.CarbonContent, "must be between 0 and 100 percent")
	}
	if !isFinite(in.HCRatio) || in.HCRatio < 0 || in.HCRatio > MaxHCRatio {
		return invalid("hcRatio", in.HCRatio, fmt.Sprintf("must be between 0 and %g", MaxHCRatio))
	}
	if in.BiomassType != "" && !in.BiomassType.Valid() {
		return invalid("biomassType", string(in.BiomassType), "unknown feedstock category")
	}

	n := len(in.SelectedSoilTemps)
	if n == 0 {
		return invalid("selectedSoilTemps", nil, "at least one soil temperature is required")
	}
	if n > MaxScenarios {
		return invalid("selectedSoilTemps", n, fmt.Sprintf("at most %d soil temperatures may be selected", MaxScenarios))
	}

	seen := make(map[float64]struct{}, n)
	for _, t := range in.SelectedSoilTemps {
		if _, dup := seen[t]; dup {
			return invalid("selectedSoilTemps", t, "soil temperatures must be distinct")
		}
		seen[t] = struct{}{}
		if !IsAllowedSoilTemp(t) {
			return &UnsupportedScenarioError{SoilTemp: t, Horizon: Horizon0}
		}
	}
	return nil
}

// sortedTemps returns a sorted copy of temps.
func sortedTemps(temps []float64) []float64 {
	out := make([]float64, len(temps))
	copy(out, temps)
	sort.Float64s(out)
	return out
}
