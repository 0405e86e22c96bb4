// Package main provides a tool to regenerate the permanence coefficient table
// from a transcribed copy of the Woolf et al. (2021) supporting information.
//
// The tool reads permanence_coefficients.yaml, validates it, and rewrites
// internal/biochar/coefficients_table.go.
//
// Usage:
//
//	go run ./tools/update-coefficients [--dry-run] [--validate]
//
// Flags:
//
//	--input     Path to the YAML source (default: ./tools/update-coefficients/permanence_coefficients.yaml)
//	--output    Path to coefficients_table.go (default: ./internal/biochar/coefficients_table.go)
//	--dry-run   Print the generated file without writing it
//	--validate  Validate completeness and ranges before writing
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/npco2/bioc-calc/internal/biochar"
)

const (
	// Plausible coefficient ranges. An intercept above 2 or a positive slope
	// indicates a transcription error.
	minChc = 0.0
	maxChc = 2.0
	minMhc = -3.0
	maxMhc = 0.0

	// unverifiedMarker must appear in the source of an unverified table.
	unverifiedMarker = "UNVERIFIED"

	fileHeader = `// Code generated by update-coefficients. DO NOT EDIT.

package biochar

// PermanenceCoefficients maps (mean annual soil temperature °C, horizon years)
// to the permanence regression coefficients.
//
// Source: %s
//
// Generated from tools/update-coefficients/permanence_coefficients.yaml.
// To update these values, edit that file and run:
//
//	go run ./tools/update-coefficients
var PermanenceCoefficients = map[coefficientKey]Coefficients{
%s}

// CoefficientSource is the provenance of PermanenceCoefficients.
const CoefficientSource = %q

// CoefficientsVerified reports whether every row has been checked against
// the published table.
const CoefficientsVerified = %t
`
)

// orderingRatios are the H/C ratios at which horizon ordering is checked.
var orderingRatios = []float64{0, 0.2, 0.4, 0.7, 1.0}

// Row is one tabulated (soil temperature, horizon) entry.
type Row struct {
	SoilTemp float64 `yaml:"soilTemp"`
	Horizon  int     `yaml:"horizon"`
	Chc      float64 `yaml:"chc"`
	Mhc      float64 `yaml:"mhc"`
}

// Table is the YAML source document.
type Table struct {
	Source       string `yaml:"source"`
	Verified     bool   `yaml:"verified"`
	Coefficients []Row  `yaml:"coefficients"`
}

func main() {
	input := flag.String("input", "./tools/update-coefficients/permanence_coefficients.yaml", "Path to the YAML source")
	output := flag.String("output", "./internal/biochar/coefficients_table.go", "Path to coefficients_table.go")
	dryRun := flag.Bool("dry-run", false, "Print changes without writing to file")
	validate := flag.Bool("validate", true, "Validate completeness and ranges")
	flag.Parse()

	table, err := loadTable(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading coefficients: %v\n", err)
		os.Exit(1)
	}

	if *validate {
		if err := validateTable(table); err != nil {
			fmt.Fprintf(os.Stderr, "Validation error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Validation passed")
	}

	content, err := generateTableFile(table)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating file: %v\n", err)
		os.Exit(1)
	}

	if *dryRun {
		fmt.Println("\n--- Dry run output ---")
		fmt.Println(string(content))
		return
	}

	if err := os.WriteFile(*output, content, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Updated %s with %d rows\n", *output, len(table.Coefficients))
	fmt.Println("Run 'go test ./internal/biochar/...' to verify the changes")
}

func loadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("failed to decode YAML: %w", err)
	}
	return t, nil
}

// validateTable checks that the source states the table's verification
// status, every supported (temperature, horizon) pair appears exactly once,
// coefficients are in range, and permanence never increases with the horizon.
func validateTable(t Table) error {
	var problems []string

	switch {
	case strings.TrimSpace(t.Source) == "":
		problems = append(problems, "source: must name where the values come from")
	case t.Verified && strings.Contains(t.Source, unverifiedMarker):
		problems = append(problems, "source: verified table still marked "+unverifiedMarker)
	case !t.Verified && !strings.Contains(t.Source, unverifiedMarker):
		problems = append(problems, "source: unverified table must say "+unverifiedMarker)
	}

	seen := make(map[Row]bool)
	byTemp := make(map[float64]map[int]Row)
	for _, r := range t.Coefficients {
		key := Row{SoilTemp: r.SoilTemp, Horizon: r.Horizon}
		if seen[key] {
			problems = append(problems, fmt.Sprintf("%g°C/%dy: duplicate row", r.SoilTemp, r.Horizon))
			continue
		}
		seen[key] = true

		if !biochar.IsAllowedSoilTemp(r.SoilTemp) {
			problems = append(problems, fmt.Sprintf("%g°C: not a supported soil temperature", r.SoilTemp))
		}
		if h := biochar.Horizon(r.Horizon); h == biochar.Horizon0 || !biochar.IsHorizon(h) {
			problems = append(problems, fmt.Sprintf("%dy: not a tabulated horizon", r.Horizon))
		}
		if r.Chc < minChc || r.Chc > maxChc {
			problems = append(problems, fmt.Sprintf("%g°C/%dy: chc %.4f outside [%.1f, %.1f]",
				r.SoilTemp, r.Horizon, r.Chc, minChc, maxChc))
		}
		if r.Mhc < minMhc || r.Mhc > maxMhc {
			problems = append(problems, fmt.Sprintf("%g°C/%dy: mhc %.4f outside [%.1f, %.1f]",
				r.SoilTemp, r.Horizon, r.Mhc, minMhc, maxMhc))
		}

		if byTemp[r.SoilTemp] == nil {
			byTemp[r.SoilTemp] = make(map[int]Row)
		}
		byTemp[r.SoilTemp][r.Horizon] = r
	}

	for _, temp := range biochar.AllowedSoilTemps {
		rows := byTemp[temp]
		complete := true
		for _, h := range biochar.Horizons[1:] {
			if _, ok := rows[int(h)]; !ok {
				problems = append(problems, fmt.Sprintf("%g°C/%dy: missing row", temp, int(h)))
				complete = false
			}
		}
		if !complete {
			continue
		}
		for _, hc := range orderingRatios {
			prev := 1.0
			for _, h := range biochar.Horizons[1:] {
				r := rows[int(h)]
				f := biochar.Clamp(r.Chc+r.Mhc*hc, 0, 1)
				if f > prev+1e-12 {
					problems = append(problems, fmt.Sprintf("%g°C: permanence rises at %dy for H/C %g", temp, int(h), hc))
				}
				prev = f
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("validation failed:\n%s", strings.Join(problems, "\n"))
	}
	return nil
}

// formatCoefficient prints v with the fewest digits that parse back to v.
func formatCoefficient(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// generateTableFile renders coefficients_table.go, sorted by temperature then
// horizon, with a blank line between temperatures.
func generateTableFile(t Table) ([]byte, error) {
	rows := make([]Row, len(t.Coefficients))
	copy(rows, t.Coefficients)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SoilTemp != rows[j].SoilTemp {
			return rows[i].SoilTemp < rows[j].SoilTemp
		}
		return rows[i].Horizon < rows[j].Horizon
	})

	var entries strings.Builder
	for i, r := range rows {
		if i > 0 && rows[i-1].SoilTemp != r.SoilTemp {
			entries.WriteString("\n")
		}
		fmt.Fprintf(&entries, "\t{%s, Horizon%d}: {Chc: %s, Mhc: %s},\n",
			formatCoefficient(r.SoilTemp), r.Horizon, formatCoefficient(r.Chc), formatCoefficient(r.Mhc))
	}

	source := t.Source
	if source == "" {
		source = "unspecified"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, fileHeader, source, entries.String(), source, t.Verified)
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated code does not parse: %w", err)
	}
	return out, nil
}
