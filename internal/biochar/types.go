package biochar

// BiomassType is the feedstock category of a sample. It is informational and
// does not affect the numeric model.
type BiomassType string

// Feedstock categories offered by the sample form.
const (
	BiomassCashewShell      BiomassType = "cashew_shell"
	BiomassCoconutHusk      BiomassType = "coconut_husk"
	BiomassSugarcaneBagasse BiomassType = "sugarcane_bagasse"
	BiomassWood             BiomassType = "wood"
	BiomassRiceHusk         BiomassType = "rice_husk"
	BiomassCoffeeHusk       BiomassType = "coffee_husk"
	BiomassManure           BiomassType = "manure"
	BiomassSewageSludge     BiomassType = "sewage_sludge"
	BiomassOther            BiomassType = "other"
)

// BiomassTypes lists every feedstock category in display order.
var BiomassTypes = []BiomassType{
	BiomassCashewShell,
	BiomassCoconutHusk,
	BiomassSugarcaneBagasse,
	BiomassWood,
	BiomassRiceHusk,
	BiomassCoffeeHusk,
	BiomassManure,
	BiomassSewageSludge,
	BiomassOther,
}

// Valid reports whether b is a known feedstock category.
func (b BiomassType) Valid() bool {
	for _, t := range BiomassTypes {
		if t == b {
			return true
		}
	}
	return false
}

// MassInput is how the sample mass was supplied: either DirectBiochar or
// RawBiomass. The interface is sealed.
type MassInput interface {
	isMassInput()
}

// DirectBiochar is a biochar mass measured directly.
type DirectBiochar struct {
	// Tonnes is the biochar mass in metric tonnes.
	Tonnes float64
}

// RawBiomass is a feedstock mass converted to biochar through a pyrolysis yield.
type RawBiomass struct {
	// Tonnes is the raw biomass mass in metric tonnes.
	Tonnes float64

	// YieldPercent is the biochar yield on a mass basis (0 to 100).
	YieldPercent float64
}

func (DirectBiochar) isMassInput() {}
func (RawBiomass) isMassInput()    {}

// AcademicLevel is the academic level of the person submitting a sample.
type AcademicLevel string

// Academic levels offered by the sample form.
const (
	LevelUndergraduate AcademicLevel = "undergraduate"
	LevelMasters       AcademicLevel = "masters"
	LevelDoctorate     AcademicLevel = "doctorate"
	LevelPostdoc       AcademicLevel = "postdoc"
	LevelResearcher    AcademicLevel = "researcher"
)

// ProjectInfo identifies who produced a sample. None of it enters the model.
type ProjectInfo struct {
	StudentName   string
	Level         AcademicLevel
	ResearchTitle string
	AdvisorName   string
	Institution   string
	City          string
	State         string
	SampleName    string
}

// SampleInputs contains everything needed for one calculation request.
type SampleInputs struct {
	// Project is informational identification metadata.
	Project ProjectInfo

	// BiomassType is the feedstock category.
	BiomassType BiomassType

	// Mass is the sample mass, either direct biochar or raw biomass plus yield.
	Mass MassInput

	// CarbonContent is the organic carbon of the biochar in percent (dry basis).
	CarbonContent float64

	// HCRatio is the molar H/Corg ratio of the biochar.
	HCRatio float64

	// SelectedSoilTemps are 1 to 3 distinct mean annual soil temperatures (°C).
	SelectedSoilTemps []float64

	// PyrolysisTemp is the process temperature in °C. Reported only.
	PyrolysisTemp float64

	// DataAuthorization records whether the sample may be shared. Reported only.
	DataAuthorization bool
}

// DataPoint is the projection at one horizon.
type DataPoint struct {
	Year           Horizon
	FPerm          float64 // fraction of initial organic carbon remaining
	CO2Sequestered float64 // tCO2e
}

// ScenarioResult is the projection for one soil temperature.
type ScenarioResult struct {
	Temp       float64
	DataPoints []DataPoint
}

// At returns the data point for the given horizon.
func (s ScenarioResult) At(h Horizon) (DataPoint, bool) {
	for _, dp := range s.DataPoints {
		if dp.Year == h {
			return dp, true
		}
	}
	return DataPoint{}, false
}

// Stability is a coarse classification of biochar stability from its H/C ratio.
type Stability string

const (
	StabilityHigh   Stability = "high"
	StabilityMedium Stability = "medium"
	StabilityLow    Stability = "low"
)

// Advisory carries presentation hints derived from the inputs.
type Advisory struct {
	Stability Stability

	// LowConfidence is set when the H/C ratio is outside the fitted domain
	// of the permanence regression.
	LowConfidence bool
}

// CalculationResult is the immutable output of a calculation.
type CalculationResult struct {
	Inputs      SampleInputs
	BiocharMass float64 // tonnes
	Scenarios   []ScenarioResult
	Advisory    Advisory
}

// MainScenario returns the first scenario, used for headline figures.
func (r CalculationResult) MainScenario() ScenarioResult {
	if len(r.Scenarios) == 0 {
		return ScenarioResult{}
	}
	return r.Scenarios[0]
}

// Efficiency returns tCO2e sequestered per tonne of biochar for the given
// scenario and horizon. It returns 0 when the scenario or horizon is missing
// or the biochar mass is zero.
func (r CalculationResult) Efficiency(scenario int, h Horizon) float64 {
	if scenario < 0 || scenario >= len(r.Scenarios) || r.BiocharMass <= 0 {
		return 0
	}
	dp, ok := r.Scenarios[scenario].At(h)
	if !ok {
		return 0
	}
	return dp.CO2Sequestered / r.BiocharMass
}
