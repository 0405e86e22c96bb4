package biochar

import "fmt"

// AssembleResult builds the CalculationResult from the per-temperature
// scenarios. Scenarios must match the selected temperatures one to one and in
// ascending temperature order; each must carry data points.
func AssembleResult(in SampleInputs, biocharMass float64, scenarios []ScenarioResult) (CalculationResult, error) {
	temps := sortedTemps(in.SelectedSoilTemps)
	if len(scenarios) != len(temps) {
		return CalculationResult{}, invalid("scenarios", len(scenarios),
			fmt.Sprintf("expected %d scenarios, one per selected soil temperature", len(temps)))
	}
	for i, s := range scenarios {
		if s.Temp != temps[i] {
			return CalculationResult{}, invalid("scenarios", s.Temp,
				fmt.Sprintf("scenario %d does not match soil temperature %g", i, temps[i]))
		}
		if len(s.DataPoints) == 0 {
			return CalculationResult{}, invalid("scenarios", s.Temp, "scenario has no data points")
		}
	}

	inputs := in
	inputs.SelectedSoilTemps = temps

	out := make([]ScenarioResult, len(scenarios))
	for i, s := range scenarios {
		points := make([]DataPoint, len(s.DataPoints))
		copy(points, s.DataPoints)
		out[i] = ScenarioResult{Temp: s.Temp, DataPoints: points}
	}

	return CalculationResult{
		Inputs:      inputs,
		BiocharMass: biocharMass,
		Scenarios:   out,
		Advisory:    AdviseHCRatio(in.HCRatio),
	}, nil
}
