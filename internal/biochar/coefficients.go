package biochar

// Coefficients are the intercept and slope of the linear permanence model
// Fperm = Chc + Mhc × H/Corg for one soil temperature and horizon.
type Coefficients struct {
	Chc float64
	Mhc float64
}

type coefficientKey struct {
	soilTemp float64
	horizon  Horizon
}

// LookupCoefficients returns the permanence coefficients for an exact
// (soil temperature, horizon) pair. Horizon0 has no coefficients; use
// PermanenceFraction, which defines it as 1.0.
//
// Returns *UnsupportedScenarioError when the pair is not tabulated. Values are
// never interpolated across temperatures or horizons.
func LookupCoefficients(soilTemp float64, h Horizon) (Coefficients, error) {
	c, ok := PermanenceCoefficients[coefficientKey{soilTemp: soilTemp, horizon: h}]
	if !ok {
		return Coefficients{}, &UnsupportedScenarioError{SoilTemp: soilTemp, Horizon: h}
	}
	return c, nil
}

// PermanenceFraction returns the fraction of initial organic carbon remaining
// after h years at the given soil temperature, clamped to [0, 1].
// At Horizon0 it is exactly 1.0 and the table is not consulted, but the
// temperature must still be supported.
func PermanenceFraction(soilTemp float64, h Horizon, hcRatio float64) (float64, error) {
	if !IsAllowedSoilTemp(soilTemp) || !IsHorizon(h) {
		return 0, &UnsupportedScenarioError{SoilTemp: soilTemp, Horizon: h}
	}
	if h == Horizon0 {
		return 1.0, nil
	}

	c, err := LookupCoefficients(soilTemp, h)
	if err != nil {
		return 0, err
	}
	return Clamp(c.Chc+c.Mhc*hcRatio, 0.0, 1.0), nil
}
