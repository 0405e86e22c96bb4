package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"github.com/npco2/bioc-calc/internal/biochar"
	"github.com/npco2/bioc-calc/internal/config"
	"github.com/npco2/bioc-calc/internal/intake"
	"github.com/npco2/bioc-calc/internal/report"
)

const formatText = "text"

// calcFlags holds the calc subcommand flags. Field flags override values
// from the input file only when given explicitly.
type calcFlags struct {
	input  string
	format string
	out    string

	sample    string
	student   string
	biomass   string
	raw       bool
	mass      float64
	yield     float64
	pyrolysis float64
	carbon    float64
	hc        float64
	temps     string
	authorize bool
}

func (f *calcFlags) register(fs *flag.FlagSet) {
	def := intake.Default()

	fs.StringVar(&f.input, "input", "", "sample form file (.json, .yaml); \"-\" reads JSON from stdin")
	fs.StringVar(&f.format, "format", formatText, "output format: text, json, pdf, xlsx")
	fs.StringVar(&f.out, "out", "", "output file (default stdout)")

	fs.StringVar(&f.sample, "sample", def.SampleName, "sample name")
	fs.StringVar(&f.student, "student", def.StudentName, "student name")
	fs.StringVar(&f.biomass, "biomass", def.BiomassType, "feedstock category")
	fs.BoolVar(&f.raw, "raw", !def.IsDirectBiocharInput, "treat -mass as raw biomass converted with -yield")
	fs.Float64Var(&f.mass, "mass", def.MassInput, "mass in tonnes")
	fs.Float64Var(&f.yield, "yield", def.BiocharYield, "biochar yield in percent (raw biomass only)")
	fs.Float64Var(&f.pyrolysis, "pyrolysis", def.PyrolysisTemp, "pyrolysis temperature in °C")
	fs.Float64Var(&f.carbon, "carbon", def.CarbonContent, "organic carbon content in percent")
	fs.Float64Var(&f.hc, "hc", def.HCRatio, "molar H/Corg ratio")
	fs.StringVar(&f.temps, "temps", formatTemps(def.SelectedSoilTemps), "comma separated soil temperatures in °C (1 to 3)")
	fs.BoolVar(&f.authorize, "authorize", def.DataAuthorization, "authorize inclusion in the public sample library")
}

// apply copies explicitly set field flags onto form.
func (f *calcFlags) apply(fs *flag.FlagSet, form *intake.Form) error {
	var err error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "sample":
			form.SampleName = f.sample
		case "student":
			form.StudentName = f.student
		case "biomass":
			form.BiomassType = f.biomass
		case "raw":
			form.IsDirectBiocharInput = !f.raw
		case "mass":
			form.MassInput = f.mass
		case "yield":
			form.BiocharYield = f.yield
		case "pyrolysis":
			form.PyrolysisTemp = f.pyrolysis
		case "carbon":
			form.CarbonContent = f.carbon
		case "hc":
			form.HCRatio = f.hc
		case "temps":
			var temps []float64
			temps, err = parseTemps(f.temps)
			form.SelectedSoilTemps = temps
		case "authorize":
			form.DataAuthorization = f.authorize
		}
	})
	return err
}

func runCalc(args []string, cfg *config.Config, logger zerolog.Logger, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("calc", flag.ContinueOnError)
	var f calcFlags
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	form, err := loadForm(f.input, stdin)
	if err != nil {
		return err
	}
	if err := f.apply(fs, &form); err != nil {
		return err
	}

	in, err := form.Inputs()
	if err != nil {
		return err
	}
	result, err := newEngine(cfg, logger).Compute(in)
	if err != nil {
		return err
	}

	if strings.EqualFold(f.format, formatText) {
		return writeOutput(f.out, stdout, func(w io.Writer) error {
			return writeText(w, result)
		})
	}

	format, err := report.ParseFormat(f.format)
	if err != nil {
		return err
	}
	doc := report.Build(result, report.NewMeta(time.Now(), cfg.ReportFooter))
	if err := writeOutput(f.out, stdout, func(w io.Writer) error {
		return report.Render(w, format, doc, report.Options{PageSize: cfg.ReportPageSize})
	}); err != nil {
		return err
	}
	logger.Debug().Str("format", string(format)).Str("report_id", doc.ID).Msg("report written")
	return nil
}

// writeOutput runs write against path, or stdout when path is empty. A failed
// close of the output file is returned.
func writeOutput(path string, stdout io.Writer, write func(io.Writer) error) (err error) {
	if path == "" {
		return write(stdout)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	return write(file)
}

func loadForm(path string, stdin io.Reader) (intake.Form, error) {
	switch path {
	case "":
		return intake.Default(), nil
	case "-":
		return intake.Decode(stdin, intake.FormatJSON)
	}

	format, err := intake.ParseFormat(filepath.Ext(path))
	if err != nil {
		return intake.Form{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return intake.Form{}, fmt.Errorf("failed to open input: %w", err)
	}
	defer func() { _ = file.Close() }()
	return intake.Decode(file, format)
}

func parseTemps(s string) ([]float64, error) {
	var temps []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		t, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid soil temperature %q: %w", part, err)
		}
		temps = append(temps, t)
	}
	return temps, nil
}

func formatTemps(temps []float64) string {
	parts := make([]string, len(temps))
	for i, t := range temps {
		parts[i] = strconv.FormatFloat(t, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// writeText prints a plain summary table per scenario.
func writeText(w io.Writer, result biochar.CalculationResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(tw, "Biochar mass\t%.4f t\t\n", result.BiocharMass)
	fmt.Fprintf(tw, "Stability\t%s\t\n", result.Advisory.Stability)
	if result.Advisory.LowConfidence {
		fmt.Fprintln(tw, "Warning\tH/C ratio outside the fitted domain, low confidence\t")
	}

	for i, s := range result.Scenarios {
		fmt.Fprintf(tw, "\t\t\t\t\nSoil %g°C\tFperm\ttCO2e\ttCO2e/t\t\n", s.Temp)
		for _, dp := range s.DataPoints {
			fmt.Fprintf(tw, "%d years\t%.4f\t%.4f\t%.4f\t\n",
				int(dp.Year), dp.FPerm, dp.CO2Sequestered, result.Efficiency(i, dp.Year))
		}
	}
	return tw.Flush()
}
