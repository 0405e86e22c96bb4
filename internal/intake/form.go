// Package intake decodes sample submissions into engine inputs.
package intake

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/npco2/bioc-calc/internal/biochar"
)

// ErrEmptyForm is returned for a submission with no fields.
var ErrEmptyForm = errors.New("form is empty")

// Format is the encoding of a submitted form.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a format name or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported input format %q", s)
}

// Form is the sample submission as entered by the user.
type Form struct {
	StudentName   string `json:"studentName" yaml:"studentName"`
	Level         string `json:"level" yaml:"level"`
	ResearchTitle string `json:"researchTitle" yaml:"researchTitle"`
	AdvisorName   string `json:"advisorName" yaml:"advisorName"`
	Institution   string `json:"institution" yaml:"institution"`
	City          string `json:"city" yaml:"city"`
	State         string `json:"state" yaml:"state"`
	SampleName    string `json:"sampleName" yaml:"sampleName"`

	BiomassType          string    `json:"biomassType" yaml:"biomassType"`
	IsDirectBiocharInput bool      `json:"isDirectBiocharInput" yaml:"isDirectBiocharInput"`
	MassInput            float64   `json:"massInput" yaml:"massInput"`
	BiocharYield         float64   `json:"biocharYield" yaml:"biocharYield"`
	PyrolysisTemp        float64   `json:"pyrolysisTemp" yaml:"pyrolysisTemp"`
	CarbonContent        float64   `json:"carbonContent" yaml:"carbonContent"`
	HCRatio              float64   `json:"hcRatio" yaml:"hcRatio"`
	SelectedSoilTemps    []float64 `json:"selectedSoilTemps" yaml:"selectedSoilTemps"`
	DataAuthorization    bool      `json:"dataAuthorization" yaml:"dataAuthorization"`
}

// Default returns the form as first presented: one tonne of cashew shell
// biochar at 75% carbon, H/C 0.35, evaluated at 14.9 °C.
func Default() Form {
	return Form{
		Level:                string(biochar.LevelUndergraduate),
		SampleName:           "Amostra 01",
		BiomassType:          string(biochar.BiomassCashewShell),
		IsDirectBiocharInput: true,
		MassInput:            1,
		BiocharYield:         30,
		PyrolysisTemp:        500,
		CarbonContent:        75.0,
		HCRatio:              0.35,
		SelectedSoilTemps:    []float64{14.9},
	}
}

// Decode reads a form in the given format. Fields missing from the document
// keep their Default values.
func Decode(r io.Reader, format Format) (Form, error) {
	data, err := readForm(r)
	if err != nil {
		return Form{}, err
	}
	return decode(data, format)
}

// DecodeSubmission reads a JSON form posted by a client. Unlike Decode it
// rejects null and {} with ErrEmptyForm, so an empty request is never
// computed as the default sample. Fields that are present still overlay
// Default.
func DecodeSubmission(r io.Reader) (Form, error) {
	data, err := readForm(r)
	if err != nil {
		return Form{}, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Form{}, fmt.Errorf("failed to parse JSON form: %w", err)
	}
	if len(fields) == 0 {
		return Form{}, ErrEmptyForm
	}
	return decode(data, FormatJSON)
}

func readForm(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read form: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyForm
	}
	return data, nil
}

func decode(data []byte, format Format) (Form, error) {
	form := Default()
	// Unmarshal replaces slices rather than merging them.
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &form); err != nil {
			return Form{}, fmt.Errorf("failed to parse JSON form: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &form); err != nil {
			return Form{}, fmt.Errorf("failed to parse YAML form: %w", err)
		}
	default:
		return Form{}, fmt.Errorf("unsupported input format %q", format)
	}
	return form, nil
}

// Inputs converts the form into engine inputs. The direct/raw toggle selects
// the mass mode; in direct mode the yield field is dropped.
func (f Form) Inputs() (biochar.SampleInputs, error) {
	biomass := biochar.BiomassType(f.BiomassType)
	if biomass != "" && !biomass.Valid() {
		return biochar.SampleInputs{}, &biochar.InvalidInputError{
			Field:  "biomassType",
			Value:  f.BiomassType,
			Reason: "unknown feedstock category",
		}
	}

	var mass biochar.MassInput
	if f.IsDirectBiocharInput {
		mass = biochar.DirectBiochar{Tonnes: f.MassInput}
	} else {
		mass = biochar.RawBiomass{Tonnes: f.MassInput, YieldPercent: f.BiocharYield}
	}

	temps := make([]float64, len(f.SelectedSoilTemps))
	copy(temps, f.SelectedSoilTemps)

	return biochar.SampleInputs{
		Project: biochar.ProjectInfo{
			StudentName:   f.StudentName,
			Level:         biochar.AcademicLevel(f.Level),
			ResearchTitle: f.ResearchTitle,
			AdvisorName:   f.AdvisorName,
			Institution:   f.Institution,
			City:          f.City,
			State:         f.State,
			SampleName:    f.SampleName,
		},
		BiomassType:       biomass,
		Mass:              mass,
		CarbonContent:     f.CarbonContent,
		HCRatio:           f.HCRatio,
		SelectedSoilTemps: temps,
		PyrolysisTemp:     f.PyrolysisTemp,
		DataAuthorization: f.DataAuthorization,
	}, nil
}
