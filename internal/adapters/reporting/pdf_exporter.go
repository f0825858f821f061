package reporting

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/lcalzada-xor/duskboard/internal/core/domain"
)

// PDFExporter exports dashboard reports to PDF format
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// summaryRows are the dashboard text targets printed in the overview grid.
var summaryRows = []struct {
	label  string
	target domain.Target
}{
	{"Total Commands", domain.TargetTotalCommands},
	{"Total Currency", domain.TargetTotalCurrency},
	{"Runtime", domain.TargetRuntime},
	{"Success Rate", domain.TargetSuccessRate},
	{"CPU", domain.TargetCPUValue},
	{"Memory", domain.TargetMemoryValue},
	{"Latency", domain.TargetLatencyValue},
	{"Battery", domain.TargetBatteryValue},
}

// ExportDashboard renders a report of the latest dashboard.
func (e *PDFExporter) ExportDashboard(report domain.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addHeader(pdf, report)
	e.addSummary(pdf, report)
	e.addCommandTable(pdf, report)
	e.addHourly(pdf, report)
	e.addFooter(pdf, report)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, report domain.Report) {
	title := report.Title
	if title == "" {
		title = "OwO Dusk Dashboard"
	}
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(112, 175, 135)
	pdf.CellFormat(0, 15, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, "Generated: "+report.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Samples in memory: %d | Archived samples: %d", report.Samples, report.Archived),
		"", 1, "L", false, 0, "")
	pdf.Ln(8)
}

func (e *PDFExporter) sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func (e *PDFExporter) addSummary(pdf *gofpdf.Fpdf, report domain.Report) {
	e.sectionTitle(pdf, "Overview")

	col := 0
	for _, row := range summaryRows {
		value, ok := report.Dashboard.Text[row.target]
		if !ok {
			continue
		}
		x := 20.0
		if col%2 == 1 {
			x = 105.0
		}
		pdf.SetXY(x, pdf.GetY())

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(45, 7, row.label+":", "", 0, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(35, 7, value, "", 0, "R", false, 0, "")

		if col%2 == 1 {
			pdf.Ln(7)
		}
		col++
	}
	if col%2 == 1 {
		pdf.Ln(7)
	}
	pdf.Ln(8)
}

func (e *PDFExporter) addCommandTable(pdf *gofpdf.Fpdf, report domain.Report) {
	table := report.Dashboard.CommandTable
	if table == nil {
		return
	}
	e.sectionTitle(pdf, "Commands")

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(60, 60, 60)

	widths := []float64{30, 22, 22, 22, 22, 30, 32}
	headers := []string{"Command", "Count", "Success", "Fail", "Rate", "Currency", "Last Used"}
	for i, h := range headers {
		ln := 0
		if i == len(headers)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 8, h, "1", ln, "C", true, 0, "")
	}

	pdf.SetFont("Arial", "", 9)
	for _, r := range table.Rows {
		cells := []string{r.Name, r.Count, r.Success, r.Fail, r.Rate, r.Currency, r.LastUsed}
		for i, c := range cells {
			ln, align := 0, "R"
			if i == 0 {
				align = "L"
			}
			if i == len(cells)-1 {
				ln, align = 1, "C"
			}
			pdf.CellFormat(widths[i], 7, c, "1", ln, align, false, 0, "")
		}
	}
	pdf.Ln(8)
}

func (e *PDFExporter) addHourly(pdf *gofpdf.Fpdf, report domain.Report) {
	e.sectionTitle(pdf, "Earnings per Hour")

	if report.Hourly.Total() == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 7, "No earnings recorded yet", "", 1, "L", false, 0, "")
		return
	}

	var peak int64
	for _, v := range report.Hourly {
		if v > peak {
			peak = v
		}
	}

	pdf.SetFont("Arial", "", 9)
	for hour, v := range report.Hourly {
		if v == 0 {
			continue
		}
		if pdf.GetY() > 260 {
			pdf.AddPage()
		}
		y := pdf.GetY()
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(20, 6, fmt.Sprintf("%d:00", hour), "", 0, "L", false, 0, "")

		pdf.SetFillColor(255, 121, 195)
		pdf.Rect(42, y+1, 120*float64(v)/float64(peak), 4, "F")

		pdf.SetX(165)
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", v), "", 1, "R", false, 0, "")
	}
}

func (e *PDFExporter) addFooter(pdf *gofpdf.Fpdf, report domain.Report) {
	pdf.SetY(-20)

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.Ln(3)

	id := report.ID
	if len(id) > 8 {
		id = id[:8]
	}
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, "Generated by duskboard | Report ID: "+id, "", 1, "C", false, 0, "")
}
