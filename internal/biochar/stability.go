package biochar

// ClassifyStability maps an H/C molar ratio to a stability class.
// Lower ratios indicate more condensed, aromatic biochar.
func ClassifyStability(hcRatio float64) Stability {
	switch {
	case hcRatio <= HighStabilityHCMax:
		return StabilityHigh
	case hcRatio <= MediumStabilityHCMax:
		return StabilityMedium
	default:
		return StabilityLow
	}
}

// AdviseHCRatio returns the presentation advisory for an H/C molar ratio.
func AdviseHCRatio(hcRatio float64) Advisory {
	return Advisory{
		Stability:     ClassifyStability(hcRatio),
		LowConfidence: hcRatio > ValidatedHCRatioMax,
	}
}
