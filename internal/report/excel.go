package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet   = "Summary"
	scenariosSheet = "Scenarios"
)

// RenderXLSX writes doc as a workbook with a summary sheet and one row per
// scenario and horizon, year 0 included.
func RenderXLSX(w io.Writer, doc Document) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(scenariosSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"047857"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSummary(f, doc, headerStyle); err != nil {
		return err
	}
	if err := writeScenarios(f, doc, headerStyle); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, doc Document, headerStyle int) error {
	rows := [][]any{
		{"Report", doc.ID},
		{"Issued", doc.IssuedAt.Format("2006-01-02 15:04:05")},
	}
	for _, field := range doc.Identification {
		rows = append(rows, []any{field.Label, field.Value})
	}
	rows = append(rows,
		[]any{"Biochar mass (t)", doc.BiocharMass},
		[]any{"Carbon content (%)", doc.CarbonContent},
		[]any{"H/C ratio", doc.HCRatio},
		[]any{"Stability", string(doc.Stability)},
		[]any{"Low confidence", doc.LowConfidence},
		[]any{"Main soil temperature (°C)", doc.MainSoilTemp},
		[]any{"Equation", doc.Equation},
		[]any{"Coefficient source", doc.CoefficientSource},
		[]any{},
		[]any{"Horizon (years)", "Permanence (%)", "Total (tCO2e)", "Efficiency (tCO2e/t)"},
	)
	headerRow := len(rows)
	for _, h := range doc.Headline {
		rows = append(rows, []any{h.Years, h.PermanencePct, h.CO2Sequestered, h.Efficiency})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}

	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(4, headerRow)
	if err := f.SetCellStyle(summarySheet, first, last, headerStyle); err != nil {
		return fmt.Errorf("failed to style summary header: %w", err)
	}
	return f.SetColWidth(summarySheet, "A", "D", 26)
}

func writeScenarios(f *excelize.File, doc Document, headerStyle int) error {
	header := []any{"Soil temperature (°C)", "Horizon (years)", "Fperm", "CO2 sequestered (tCO2e)", "Efficiency (tCO2e/t)"}
	if err := f.SetSheetRow(scenariosSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write scenarios header: %w", err)
	}
	if err := f.SetCellStyle(scenariosSheet, "A1", "E1", headerStyle); err != nil {
		return fmt.Errorf("failed to style scenarios header: %w", err)
	}

	row := 2
	for i, s := range doc.Result.Scenarios {
		for _, dp := range s.DataPoints {
			values := []any{s.Temp, int(dp.Year), dp.FPerm, dp.CO2Sequestered, doc.Result.Efficiency(i, dp.Year)}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(scenariosSheet, cell, &values); err != nil {
				return fmt.Errorf("failed to write scenario row %d: %w", row, err)
			}
			row++
		}
	}

	if err := f.SetPanes(scenariosSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}
	return f.SetColWidth(scenariosSheet, "A", "E", 24)
}
