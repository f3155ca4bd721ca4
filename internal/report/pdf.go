package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/core"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/format"
)

// A4 portrait layout, millimeters.
const (
	pdfRowHeight   = 8.0
	pdfPageBreakY  = 270.0
	pdfBarMaxWidth = 120.0
)

var pdfColWidths = [5]float64{28, 22, 40, 45, 55}

var pdfColTitles = [5]string{"Date", "Type", "Amount", "Category", "Description"}

// renderPDF paginates the records into a table, re-emitting the header band
// on every page break, then appends a summary page with totals and a
// proportional bar visualization.
func (f *Formatter) renderPDF(records []Record, period Period) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("MoneyWise transactions", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Transactions %s - %s", format.Date(period.From), format.Date(period.To)))
	pdf.Ln(12)

	writeHeaderBand(pdf)

	var totalIncome, totalExpense int64
	for i, r := range records {
		if pdf.GetY() > pdfPageBreakY {
			pdf.AddPage()
			writeHeaderBand(pdf)
		}

		// alternate row shading by parity
		if i%2 == 1 {
			pdf.SetFillColor(240, 240, 240)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		if !r.valid() {
			pdf.SetTextColor(128, 128, 128)
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(190, pdfRowHeight, "invalid record", "1", 1, "C", true, 0, "")
			continue
		}
		r = r.coerce()

		if r.Kind == core.Income {
			pdf.SetTextColor(22, 101, 52)
		} else {
			pdf.SetTextColor(153, 27, 27)
		}
		pdf.SetFont("Helvetica", "", 9)

		cells := [5]string{
			format.Date(r.Date),
			string(r.Kind),
			format.SignedAmount(r.Amount, r.Kind),
			r.Category,
			format.SanitizeDescription(r.Description, f.DescriptionLimit),
		}
		for col, text := range cells {
			align := "L"
			if col == 2 {
				align = "R"
			}
			last := 0
			if col == len(cells)-1 {
				last = 1
			}
			pdf.CellFormat(pdfColWidths[col], pdfRowHeight, text, "1", last, align, true, 0, "")
		}

		if r.Kind == core.Income {
			totalIncome += r.Amount.Units
		} else {
			totalExpense += r.Amount.Units
		}
	}

	writeSummaryPage(pdf, totalIncome, totalExpense)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeaderBand(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(31, 41, 55)
	pdf.SetTextColor(255, 255, 255)
	for col, title := range pdfColTitles {
		last := 0
		if col == len(pdfColTitles)-1 {
			last = 1
		}
		pdf.CellFormat(pdfColWidths[col], pdfRowHeight, title, "1", last, "C", true, 0, "")
	}
}

// writeSummaryPage renders totals plus bars whose length is proportional to
// value / max(income, expense); both-zero yields zero-length bars.
func writeSummaryPage(pdf *gofpdf.Fpdf, totalIncome, totalExpense int64) {
	pdf.AddPage()
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Summary")
	pdf.Ln(14)

	balance := totalIncome - totalExpense
	max := totalIncome
	if totalExpense > max {
		max = totalExpense
	}

	rows := []struct {
		label string
		value int64
		r     int
		g     int
		b     int
	}{
		{"Total income", totalIncome, 22, 101, 52},
		{"Total expense", totalExpense, 153, 27, 27},
	}

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range rows {
		pdf.CellFormat(35, pdfRowHeight, row.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(35, pdfRowHeight, format.Amount(core.Money{Units: row.value}), "", 0, "R", false, 0, "")

		var barLen float64
		if max > 0 {
			barLen = pdfBarMaxWidth * float64(row.value) / float64(max)
		}
		if barLen > 0 {
			pdf.SetFillColor(row.r, row.g, row.b)
			pdf.Rect(pdf.GetX()+2, pdf.GetY()+1.5, barLen, pdfRowHeight-3, "F")
		}
		pdf.Ln(pdfRowHeight + 2)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(35, pdfRowHeight, "Balance", "", 0, "L", false, 0, "")
	pdf.CellFormat(35, pdfRowHeight, format.Amount(core.Money{Units: balance}), "", 1, "R", false, 0, "")
}
