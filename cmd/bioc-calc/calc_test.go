package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npco2/bioc-calc/internal/biochar"
	"github.com/npco2/bioc-calc/internal/config"
)

func runCalcForTest(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := runCalc(args, config.New(), zerolog.Nop(), strings.NewReader(stdin), &out)
	return out.String(), err
}

func TestRunCalc_DefaultText(t *testing.T) {
	out, err := runCalcForTest(t, "")
	require.NoError(t, err)

	assert.Contains(t, out, "Soil 14.9°C")
	assert.Contains(t, out, "0 years")
	assert.Contains(t, out, "1000 years")
	assert.Contains(t, out, "2.7500")
	assert.NotContains(t, out, "Warning")
}

func TestRunCalc_FlagsOverride(t *testing.T) {
	out, err := runCalcForTest(t, "", "-temps", "25, 5", "-raw", "-mass", "10", "-yield", "30", "-hc", "1.2")
	require.NoError(t, err)

	assert.Contains(t, out, "3.0000 t")
	assert.Contains(t, out, "Warning")
	assert.Less(t, strings.Index(out, "Soil 5°C"), strings.Index(out, "Soil 25°C"))
}

func TestRunCalc_JSONReport(t *testing.T) {
	out, err := runCalcForTest(t, "", "-format", "json", "-sample", "ACC-9")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.NotEmpty(t, doc["id"])
	assert.Contains(t, out, "ACC-9")
}

func TestRunCalc_StdinInput(t *testing.T) {
	out, err := runCalcForTest(t, `{"massInput": 2, "carbonContent": 0}`, "-input", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "2.0000 t")
	assert.Contains(t, out, "0.0000")
}

func TestRunCalc_YAMLFileAndPDFOut(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sample.yaml")
	require.NoError(t, os.WriteFile(input, []byte("sampleName: ACC-2\nselectedSoilTemps: [10, 20]\n"), 0o600))
	output := filepath.Join(dir, "report.pdf")

	_, err := runCalcForTest(t, "", "-input", input, "-format", "pdf", "-out", output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRunCalc_Errors(t *testing.T) {
	_, err := runCalcForTest(t, "", "-temps", "12")
	assert.ErrorIs(t, err, biochar.ErrUnsupportedScenario)

	_, err = runCalcForTest(t, "", "-carbon", "120")
	assert.ErrorIs(t, err, biochar.ErrInvalidInput)

	_, err = runCalcForTest(t, "", "-temps", "ten")
	assert.Error(t, err)

	_, err = runCalcForTest(t, "", "-format", "docx")
	assert.Error(t, err)

	_, err = runCalcForTest(t, "", "-input", "sample.toml")
	assert.Error(t, err)
}

func TestParseTemps(t *testing.T) {
	temps, err := parseTemps(" 5,14.9,,25 ")
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 14.9, 25}, temps)
	assert.Equal(t, "5,14.9,25", formatTemps(temps))
}

func TestRun_ExitCodes(t *testing.T) {
	var stdout, stderr bytes.Buffer
	ctx := context.Background()

	assert.Equal(t, 2, run(ctx, nil, strings.NewReader(""), &stdout, &stderr))
	assert.Equal(t, 2, run(ctx, []string{"bogus"}, strings.NewReader(""), &stdout, &stderr))
	assert.Equal(t, 0, run(ctx, []string{"help"}, strings.NewReader(""), &stdout, &stderr))
	assert.Equal(t, 0, run(ctx, []string{"calc"}, strings.NewReader(""), &stdout, &stderr))
	assert.Equal(t, 2, run(ctx, []string{"calc", "-temps", "12"}, strings.NewReader(""), &stdout, &stderr))
}

func TestRun_HelpWithBrokenConfig(t *testing.T) {
	t.Setenv("BIOC_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	var stdout, stderr bytes.Buffer
	ctx := context.Background()

	assert.Equal(t, 0, run(ctx, []string{"help"}, strings.NewReader(""), &stdout, &stderr))
	assert.Contains(t, stdout.String(), "usage: bioc-calc")
	assert.Equal(t, 2, run(ctx, []string{"bogus"}, strings.NewReader(""), &stdout, &stderr))
	assert.Equal(t, 1, run(ctx, []string{"calc"}, strings.NewReader(""), &stdout, &stderr))
}

func TestWriteOutput(t *testing.T) {
	write := func(w io.Writer) error {
		_, err := io.WriteString(w, "report")
		return err
	}

	var stdout bytes.Buffer
	require.NoError(t, writeOutput("", &stdout, write))
	assert.Equal(t, "report", stdout.String())

	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, writeOutput(path, &stdout, write))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "report", string(data))

	renderErr := errors.New("render failed")
	err = writeOutput(filepath.Join(t.TempDir(), "bad.pdf"), &stdout, func(io.Writer) error { return renderErr })
	assert.ErrorIs(t, err, renderErr)

	err = writeOutput(filepath.Join(t.TempDir(), "missing", "out.pdf"), &stdout, write)
	assert.ErrorContains(t, err, "failed to create output file")
}
