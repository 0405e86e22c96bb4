package biochar

import (
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Calculator computes sequestration projections for a sample.
type Calculator interface {
	// Compute returns a fully populated result, or an *InvalidInputError or
	// *UnsupportedScenarioError. There are no partial results.
	Compute(in SampleInputs) (CalculationResult, error)
}

// Engine implements Calculator.
type Engine struct {
	logger   zerolog.Logger
	parallel bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for calculation diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithParallelScenarios evaluates scenarios concurrently. Results are
// identical either way.
func WithParallelScenarios(enabled bool) Option {
	return func(e *Engine) { e.parallel = enabled }
}

// NewEngine creates an Engine. By default it logs nothing and evaluates
// scenarios sequentially.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine()

// Compute runs a calculation with the default engine.
func Compute(in SampleInputs) (CalculationResult, error) {
	return defaultEngine.Compute(in)
}

// Compute validates the sample, resolves the biochar mass, projects every
// selected soil temperature and assembles the result.
func (e *Engine) Compute(in SampleInputs) (CalculationResult, error) {
	if err := ValidateInputs(in); err != nil {
		e.logger.Debug().Err(err).Msg("sample rejected")
		return CalculationResult{}, err
	}

	mass, err := ResolveBiocharMass(in)
	if err != nil {
		e.logger.Debug().Err(err).Msg("sample rejected")
		return CalculationResult{}, err
	}

	temps := sortedTemps(in.SelectedSoilTemps)
	scenarios, err := e.projectAll(mass, in.CarbonContent, in.HCRatio, temps)
	if err != nil {
		return CalculationResult{}, err
	}

	result, err := AssembleResult(in, mass, scenarios)
	if err != nil {
		return CalculationResult{}, err
	}

	if result.Advisory.LowConfidence {
		e.logger.Warn().
			Float64("hc_ratio", in.HCRatio).
			Float64("validated_max", ValidatedHCRatioMax).
			Msg("H/C ratio outside the fitted domain of the permanence model")
	}
	e.logger.Debug().
		Float64("biochar_mass_t", mass).
		Floats64("soil_temps", temps).
		Str("stability", string(result.Advisory.Stability)).
		Msg("calculation complete")

	return result, nil
}

func (e *Engine) projectAll(mass, carbonContent, hcRatio float64, temps []float64) ([]ScenarioResult, error) {
	scenarios := make([]ScenarioResult, len(temps))

	if !e.parallel {
		for i, t := range temps {
			s, err := ProjectScenario(mass, carbonContent, hcRatio, t)
			if err != nil {
				return nil, err
			}
			scenarios[i] = s
		}
		return scenarios, nil
	}

	// Each goroutine writes only its own slot.
	var g errgroup.Group
	for i, t := range temps {
		i, t := i, t
		g.Go(func() error {
			s, err := ProjectScenario(mass, carbonContent, hcRatio, t)
			if err != nil {
				return err
			}
			scenarios[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scenarios, nil
}
