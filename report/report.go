// Package report renders the calculation summary as a paginated PDF with
// two fixed-schema tables: the input values and the computed result.
package report

import (
	"errors"
	"io"
	"path/filepath"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/jonwraymond/futurecost/calc"
	"github.com/jonwraymond/futurecost/present"
)

// FileName is the name the exported report is saved under.
const FileName = "future-value-calculator-report.pdf"

// ErrNoResult is returned when export is attempted before a calculation
// has completed.
var ErrNoResult = errors.New("report: no result to export")

type row struct {
	name  string
	value string
}

// Write renders the report for the given request and result to w.
func Write(w io.Writer, req calc.Request, res *calc.Result) error {
	if res == nil {
		return ErrNoResult
	}
	return build(req, res).Output(w)
}

// Save renders the report into dir under FileName and returns the full
// path of the written file.
func Save(dir string, req calc.Request, res *calc.Result) (string, error) {
	if res == nil {
		return "", ErrNoResult
	}
	path := filepath.Join(dir, FileName)
	if err := build(req, res).OutputFileAndClose(path); err != nil {
		return "", err
	}
	return path, nil
}

func build(req calc.Request, res *calc.Result) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Future Value Calculator Report", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Future Value Calculator", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	table(pdf, "Your Input Values", []row{
		{"Current Cost", rupees(req.Cost)},
		{"Inflation % per annum", present.FormatPercent(req.Rate)},
		{"Number of Years", present.FormatYears(req.Years)},
	})
	pdf.Ln(6)
	table(pdf, "Result", []row{
		{"Current Cost", rupees(res.CurrentCost)},
		{"Inflation % per annum", present.FormatPercent(res.InflationRate)},
		{"Number of Years", formatNoYears(res.NoYears)},
		{"Future Cost", rupees(res.FutureAmount)},
	})
	return pdf
}

func table(pdf *fpdf.Fpdf, title string, rows []row) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")

	pdf.SetFillColor(230, 230, 230)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(70, 7, "Name", "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 7, "Value", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.CellFormat(70, 7, r.name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, r.value, "1", 1, "L", false, 0, "")
	}
}

// The built-in PDF fonts are cp1252 and cannot encode the rupee sign.
func rupees(amount float64) string {
	return "Rs. " + present.GroupIndian(amount)
}

func formatNoYears(years float64) string {
	return strconv.FormatFloat(years, 'f', -1, 64) + " years"
}
