package biochar

// ProjectScenario evaluates every horizon for one soil temperature.
//
// For each horizon:
//  1. Fperm = clamp(Chc + Mhc × H/C, 0, 1), or 1.0 at year 0
//  2. CO2 (tCO2e) = mass × (carbonContent / 100) × (44/12) × Fperm
//
// The result depends only on its arguments, so scenarios can be evaluated in
// any order or concurrently.
func ProjectScenario(biocharMass, carbonContent, hcRatio, soilTemp float64) (ScenarioResult, error) {
	points := make([]DataPoint, 0, len(Horizons))
	for _, h := range Horizons {
		fPerm, err := PermanenceFraction(soilTemp, h, hcRatio)
		if err != nil {
			return ScenarioResult{}, err
		}
		points = append(points, DataPoint{
			Year:           h,
			FPerm:          fPerm,
			CO2Sequestered: SequesteredCO2(biocharMass, carbonContent, fPerm),
		})
	}
	return ScenarioResult{Temp: soilTemp, DataPoints: points}, nil
}

// SequesteredCO2 converts the retained fraction of the biochar's organic
// carbon into tonnes of CO2-equivalent.
func SequesteredCO2(biocharMass, carbonContent, fPerm float64) float64 {
	carbonTonnes := biocharMass * (carbonContent / 100)
	return carbonTonnes * CO2PerCarbon * fPerm
}
