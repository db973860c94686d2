package feedback

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF renders the report as a one-section A4 document: a summary block
// followed by one row per response.
func WritePDF(w io.Writer, report Report) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Pulse survey report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s", periodLabel(report.Period)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04 MST")))
	pdf.Ln(10)

	for _, line := range summaryLines(report.Stats) {
		pdf.Cell(0, 7, line[0]+": "+line[1])
		pdf.Ln(6)
	}
	pdf.Ln(6)

	widths := []float64{24, 48, 22, 22, 24, 22, 57, 57}
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range responseHeaders {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, resp := range report.Responses {
		for i, value := range responseRow(resp) {
			pdf.CellFormat(widths[i], 6, fitText(pdf, tr(value), widths[i]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// fitText shortens text so it renders inside a cell of the given width in
// the current font. text must already be translated to the font's code page,
// where every character is one byte.
func fitText(pdf *gofpdf.Fpdf, text string, width float64) string {
	avail := width - 2*pdf.GetCellMargin()
	if pdf.GetStringWidth(text) <= avail {
		return text
	}
	const ellipsis = "..."
	for n := len(text) - 1; n > 0; n-- {
		if cut := text[:n] + ellipsis; pdf.GetStringWidth(cut) <= avail {
			return cut
		}
	}
	return ""
}
