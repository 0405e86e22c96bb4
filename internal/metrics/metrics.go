// Package metrics provides Prometheus metrics for calculations and reports.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/npco2/bioc-calc/internal/biochar"
)

const namespace = "bioc"

// Calculation outcomes used as label values.
const (
	OutcomeOK          = "ok"
	OutcomeInvalid     = "invalid_input"
	OutcomeUnsupported = "unsupported_scenario"
	OutcomeError       = "error"
)

// Recorder records calculation and report metrics on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	calculations        *prometheus.CounterVec
	calculationDuration prometheus.Histogram
	scenarios           prometheus.Counter
	lowConfidence       prometheus.Counter
	reports             *prometheus.CounterVec
}

// NewRecorder creates a Recorder with a fresh registry that also carries the
// Go runtime and process collectors.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		calculations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Sequestration calculations by outcome.",
		}, []string{"outcome"}),
		calculationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "calculation_duration_seconds",
			Help:      "Time spent computing one calculation.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
		scenarios: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scenarios_evaluated_total",
			Help:      "Soil temperature scenarios evaluated.",
		}),
		lowConfidence: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "low_confidence_results_total",
			Help:      "Results whose H/C ratio is outside the fitted model domain.",
		}),
		reports: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Rendered reports by format.",
		}, []string{"format"}),
	}
}

// Registry returns the registry for exposition.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveCalculation records one calculation attempt.
func (r *Recorder) ObserveCalculation(result biochar.CalculationResult, err error, elapsed time.Duration) {
	r.calculations.WithLabelValues(Outcome(err)).Inc()
	r.calculationDuration.Observe(elapsed.Seconds())
	if err != nil {
		return
	}
	r.scenarios.Add(float64(len(result.Scenarios)))
	if result.Advisory.LowConfidence {
		r.lowConfidence.Inc()
	}
}

// ObserveRejection records a calculation refused before the engine ran, such
// as a form naming an unknown feedstock. No duration is observed.
func (r *Recorder) ObserveRejection(err error) {
	r.calculations.WithLabelValues(Outcome(err)).Inc()
}

// ObserveReport records one rendered report.
func (r *Recorder) ObserveReport(format string) {
	r.reports.WithLabelValues(format).Inc()
}

// Outcome maps a calculation error to its label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, biochar.ErrInvalidInput):
		return OutcomeInvalid
	case errors.Is(err, biochar.ErrUnsupportedScenario):
		return OutcomeUnsupported
	default:
		return OutcomeError
	}
}
