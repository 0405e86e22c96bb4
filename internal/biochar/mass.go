package biochar

// ResolveBiocharMass returns the biochar mass in tonnes for the sample.
//
// A DirectBiochar mass is returned as is. A RawBiomass mass is scaled by its
// yield, clamped to [0, 100] percent. A non-positive mass fails with
// *InvalidInputError.
func ResolveBiocharMass(in SampleInputs) (float64, error) {
	switch m := in.Mass.(type) {
	case DirectBiochar:
		if err := checkMassTonnes(m.Tonnes); err != nil {
			return 0, err
		}
		return m.Tonnes, nil
	case RawBiomass:
		if err := checkMassTonnes(m.Tonnes); err != nil {
			return 0, err
		}
		if !isFinite(m.YieldPercent) {
			return 0, invalid("biocharYield", m.YieldPercent, "must be a finite number")
		}
		return m.Tonnes * Clamp(m.YieldPercent, 0, 100) / 100, nil
	case nil:
		return 0, invalid("massInput", nil, "mass is required")
	default:
		return 0, invalid("massInput", nil, "unknown mass input mode")
	}
}

func checkMassTonnes(t float64) error {
	if !isFinite(t) || t <= 0 {
		return invalid("massInput", t, "must be greater than zero")
	}
	return nil
}
