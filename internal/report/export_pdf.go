package report

import (
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth   = 277.0 // A4 landscape minus 10mm margins
	pdfLabelWidth  = 48.0
	pdfMaxColWidth = 26.0
	pdfRowHeight   = 7.0
	pdfChartHeight = 55.0
)

func pdfNumber(v float64, digits int) string {
	if digits == 0 {
		return humanize.Comma(int64(v + 0.5*sign(v)))
	}
	return humanize.CommafWithDigits(v, digits)
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func writePDF(w io.Writer, r *Report) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(r.Title(), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(r.Title()), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 5, "Generated "+r.GeneratedAt.Format("2006-01-02 15:04")+"  KPI "+pdfNumber(r.KPI, 0)+" L/voyage", "", 1, "L", false, 0, "")
	pdf.Ln(3)

	header := r.Header()
	colWidth := min(pdfMaxColWidth, (pdfPageWidth-pdfLabelWidth)/float64(len(header)-1))

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 240, 250)
	for i, h := range header {
		width, align := colWidth, "R"
		if i == 0 {
			width, align = pdfLabelWidth, "L"
		}
		pdf.CellFormat(width, pdfRowHeight, tr(h), "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, l := range r.Lines() {
		pdf.CellFormat(pdfLabelWidth, pdfRowHeight, l.Label, "1", 0, "L", false, 0, "")
		for _, v := range l.Values {
			pdf.CellFormat(colWidth, pdfRowHeight, pdfNumber(v, l.Digits), "1", 0, "R", false, 0, "")
		}
		pdf.CellFormat(colWidth, pdfRowHeight, pdfNumber(l.Total, l.Digits), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidth, pdfRowHeight, pdfNumber(l.Average, l.AverageDigits), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	drawPDFChart(pdf, r.Chart)

	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(0, 5, syntheticNote, "", 1, "L", false, 0, "")

	return pdf.Output(w)
}

func drawPDFChart(pdf *gofpdf.Fpdf, c Chart) {
	left, top := pdf.GetX(), pdf.GetY()
	base := top + pdfChartHeight
	width := pdfPageWidth - 20

	pdf.SetDrawColor(160, 160, 160)
	pdf.Line(left, base, left+width, base)

	if n := len(c.Bars); n > 0 {
		slot := width / float64(n)
		barW := max(2, slot*0.6)
		pdf.SetFillColor(0, 191, 255)
		pdf.SetFont("Helvetica", "", 6)
		for i, b := range c.Bars {
			h := b.Ratio * pdfChartHeight
			x := left + float64(i)*slot + (slot-barW)/2
			pdf.Rect(x, base-h, barW, h, "F")
			pdf.Text(x, base+4, b.Label)
		}
	}

	line := func(ratio float64, label string, r, g, b int) {
		y := base - ratio*pdfChartHeight
		pdf.SetDrawColor(r, g, b)
		pdf.Line(left, y, left+width, y)
		pdf.Text(left+width+1, y+1, label)
	}
	pdf.SetFont("Helvetica", "", 7)
	line(c.AverageRatio, "AVG "+strconv.FormatFloat(c.Average, 'f', 0, 64), 107, 207, 127)
	line(c.KPIRatio, "KPI "+strconv.FormatFloat(c.KPI, 'f', 0, 64), 255, 107, 107)

	pdf.SetY(base + 8)
}
