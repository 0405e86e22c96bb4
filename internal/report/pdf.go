package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfFont       = "Arial"
	pdfMargin     = 15.0
	pdfLineHeight = 6.0
)

// pdfWriter wraps gofpdf with the report's layout conventions.
type pdfWriter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// RenderPDF writes doc as a printable technical report.
func RenderPDF(w io.Writer, doc Document, opts Options) error {
	pageSize := opts.PageSize
	if pageSize == "" {
		pageSize = "A4"
	}

	pdf := gofpdf.New("P", "mm", pageSize, "")
	pdf.SetMargins(pdfMargin, 20, pdfMargin)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle(doc.Title, true)

	p := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	p.footer(doc)

	pdf.AddPage()
	p.header(doc)
	p.identification(doc)
	p.characterization(doc)
	p.headline(doc)
	p.scenarios(doc)
	p.methodology(doc)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}

func (p *pdfWriter) header(doc Document) {
	p.pdf.SetFont(pdfFont, "B", 16)
	p.pdf.SetTextColor(15, 23, 42)
	p.pdf.CellFormat(0, 10, "TECHNICAL REPORT", "", 1, "C", false, 0, "")

	p.pdf.SetFont(pdfFont, "", 9)
	p.pdf.SetTextColor(100, 116, 139)
	p.pdf.CellFormat(0, 5, "BioC-Calc - Carbon Sequestration Estimate", "", 1, "C", false, 0, "")
	p.pdf.CellFormat(0, 5, "Issued: "+doc.IssuedAt.Format("2006-01-02")+"   Report "+doc.ID, "", 1, "C", false, 0, "")
	p.pdf.Ln(4)
}

func (p *pdfWriter) section(title string) {
	p.pdf.Ln(3)
	p.pdf.SetFont(pdfFont, "B", 10)
	p.pdf.SetTextColor(4, 120, 87)
	p.pdf.CellFormat(0, 7, p.tr(title), "B", 1, "L", false, 0, "")
	p.pdf.Ln(2)
	p.pdf.SetTextColor(15, 23, 42)
}

func (p *pdfWriter) identification(doc Document) {
	p.section("1. Project Identification")
	for _, f := range doc.Identification {
		p.pdf.SetFont(pdfFont, "B", 9)
		p.pdf.CellFormat(45, pdfLineHeight, p.tr(f.Label), "", 0, "L", false, 0, "")
		p.pdf.SetFont(pdfFont, "", 9)
		p.pdf.CellFormat(0, pdfLineHeight, p.tr(f.Value), "", 1, "L", false, 0, "")
	}
	p.pdf.SetFont(pdfFont, "B", 9)
	p.pdf.CellFormat(45, pdfLineHeight, "Biochar mass", "", 0, "L", false, 0, "")
	p.pdf.SetFont(pdfFont, "", 9)
	p.pdf.CellFormat(0, pdfLineHeight, fmt.Sprintf("%.2f t", doc.BiocharMass), "", 1, "L", false, 0, "")

	p.pdf.SetFont(pdfFont, "I", 8)
	p.pdf.MultiCell(0, 5, p.tr(doc.Authorization), "", "L", false)
}

func (p *pdfWriter) characterization(doc Document) {
	p.section("2. Physicochemical Characterization")

	p.pdf.SetFont(pdfFont, "B", 9)
	p.pdf.SetFillColor(241, 245, 249)
	for _, label := range []string{"Carbon content", "H/C ratio", "Stability"} {
		p.pdf.CellFormat(60, 7, label, "1", 0, "C", true, 0, "")
	}
	p.pdf.Ln(-1)

	p.pdf.SetFont(pdfFont, "", 9)
	p.pdf.CellFormat(60, 7, fmt.Sprintf("%g%%", doc.CarbonContent), "1", 0, "C", false, 0, "")
	p.pdf.CellFormat(60, 7, fmt.Sprintf("%g", doc.HCRatio), "1", 0, "C", false, 0, "")
	p.pdf.CellFormat(60, 7, string(doc.Stability), "1", 1, "C", false, 0, "")
	p.pdf.Ln(2)

	p.pdf.SetFont(pdfFont, "", 8)
	p.pdf.MultiCell(0, 4.5, p.tr(doc.StabilityNote), "", "J", false)
	if doc.LowConfidence {
		p.pdf.SetTextColor(185, 28, 28)
		p.pdf.MultiCell(0, 4.5, "The H/C ratio is outside the fitted domain of the permanence model; "+
			"results carry reduced confidence.", "", "L", false)
		p.pdf.SetTextColor(15, 23, 42)
	}
}

func (p *pdfWriter) headline(doc Document) {
	p.section(fmt.Sprintf("3. Consolidated Results (soil %g°C)", doc.MainSoilTemp))

	widths := []float64{45, 45, 45, 45}
	p.tableHeader(widths, "Time horizon", "Permanence (%)", "Total (tCO2e)", "Efficiency (tCO2e/t)")

	p.pdf.SetFont(pdfFont, "", 9)
	for i, row := range doc.Headline {
		fill := i%2 == 1
		p.pdf.SetFillColor(248, 250, 252)
		p.pdf.CellFormat(widths[0], 7, fmt.Sprintf("%d years", row.Years), "1", 0, "C", fill, 0, "")
		p.pdf.CellFormat(widths[1], 7, fmt.Sprintf("%.1f%%", row.PermanencePct), "1", 0, "C", fill, 0, "")
		p.pdf.CellFormat(widths[2], 7, fmt.Sprintf("%.2f", row.CO2Sequestered), "1", 0, "C", fill, 0, "")
		p.pdf.CellFormat(widths[3], 7, fmt.Sprintf("%.2f", row.Efficiency), "1", 1, "C", fill, 0, "")
	}
}

func (p *pdfWriter) scenarios(doc Document) {
	if len(doc.Scenarios) < 2 {
		return
	}
	p.section("4. Soil Temperature Scenarios")

	widths := []float64{27, 25, 25, 25, 26, 26, 26}
	p.tableHeader(widths, "Soil", "F 100y", "F 500y", "F 1000y", "Eff. 100y", "Eff. 500y", "Eff. 1000y")

	p.pdf.SetFont(pdfFont, "", 9)
	for _, row := range doc.Scenarios {
		p.pdf.CellFormat(widths[0], 7, p.tr(fmt.Sprintf("%g°C", row.SoilTemp)), "1", 0, "C", false, 0, "")
		for i, v := range row.PermanencePct {
			p.pdf.CellFormat(widths[1+i], 7, fmt.Sprintf("%.1f%%", v), "1", 0, "C", false, 0, "")
		}
		for i, v := range row.Efficiency {
			p.pdf.CellFormat(widths[4+i], 7, fmt.Sprintf("%.2f", v), "1", 0, "C", false, 0, "")
		}
		p.pdf.Ln(-1)
	}
}

func (p *pdfWriter) methodology(doc Document) {
	p.section("Methodology")
	p.pdf.SetFont(pdfFont, "", 8)
	p.pdf.MultiCell(0, 4.5, p.tr(doc.Methodology), "", "J", false)
	p.pdf.Ln(1)
	p.pdf.SetFont("Courier", "", 8)
	p.pdf.CellFormat(0, 5, doc.Equation, "", 1, "L", false, 0, "")
}

func (p *pdfWriter) tableHeader(widths []float64, labels ...string) {
	p.pdf.SetFont(pdfFont, "B", 9)
	p.pdf.SetFillColor(226, 232, 240)
	for i, label := range labels {
		p.pdf.CellFormat(widths[i], 7, label, "1", 0, "C", true, 0, "")
	}
	p.pdf.Ln(-1)
}

func (p *pdfWriter) footer(doc Document) {
	p.pdf.SetFooterFunc(func() {
		p.pdf.SetY(-15)
		p.pdf.SetFont(pdfFont, "", 7)
		p.pdf.SetTextColor(148, 163, 184)
		p.pdf.CellFormat(0, 4, p.tr(doc.Footer), "T", 0, "L", false, 0, "")
		p.pdf.SetX(pdfMargin)
		p.pdf.CellFormat(0, 4, fmt.Sprintf("Page %d", p.pdf.PageNo()), "", 0, "R", false, 0, "")
	})
}
