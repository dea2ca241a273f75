// Package report renders yearly sustainability scores as a PDF document.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	title        = "Campus Sustainability Report"
	marginLeft   = 20.0
	marginTop    = 20.0
	marginBottom = 20.0
	lineHeight   = 7.0
)

// Line one month of the report
type Line struct {
	Month    int
	Total    float64
	Energy   float64
	Water    float64
	Waste    float64
	Greenery float64
}

// Report content of a yearly report
type Report struct {
	Year        int
	Lines       []Line
	Overall     float64
	Grade       string
	GeneratedAt time.Time
}

// Render writes r as an A4 PDF to w and returns the number of pages.
// A new page starts whenever the cursor reaches the bottom margin.
func Render(w io.Writer, r Report) (int, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s %d", title, r.Year), false)
	pdf.SetMargins(marginLeft, marginTop, marginLeft)
	pdf.SetAutoPageBreak(false, marginBottom)
	_, pageHeight := pdf.GetPageSize()
	limit := pageHeight - marginBottom

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Year: %d", r.Year), "", 1, "L", false, 0, "")
	if !r.GeneratedAt.IsZero() {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 6, "Generated "+r.GeneratedAt.Format(time.RFC1123), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	newLine := func() {
		if pdf.GetY()+lineHeight > limit {
			pdf.AddPage()
		}
	}

	for _, l := range r.Lines {
		newLine()
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, lineHeight, fmt.Sprintf("Month %d: Score %.2f", l.Month, l.Total), "", 1, "L", false, 0, "")
		newLine()
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, lineHeight, fmt.Sprintf("    energy %.2f   water %.2f   waste %.2f   greenery %.2f",
			l.Energy, l.Water, l.Waste, l.Greenery), "", 1, "L", false, 0, "")
	}

	newLine()
	pdf.Ln(2)
	newLine()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, lineHeight, fmt.Sprintf("Overall: %.2f   Grade: %s", r.Overall, r.Grade), "T", 1, "L", false, 0, "")

	pages := pdf.PageNo()
	if err := pdf.Output(w); err != nil {
		return 0, fmt.Errorf("render pdf: %w", err)
	}
	return pages, nil
}
