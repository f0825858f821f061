package reporting

import (
	"bytes"
	"testing"
	"time"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFExporterExportDashboard(t *testing.T) {
	exporter := NewPDFExporter()

	d := domain.NewDashboard("rev-1", time.Now())
	d.Text[domain.TargetTotalCommands] = "1,234"
	d.Text[domain.TargetTotalCurrency] = "56,789"
	d.Text[domain.TargetRuntime] = "02:03:04"
	d.CommandTable = &domain.CommandTable{Rows: []domain.CommandRow{
		{Command: "hunt", Name: "Hunt", Count: "10", Success: "9", Fail: "1", Rate: "90.0%", Currency: "500", LastUsed: "5 min ago"},
	}}

	var hourly domain.HourlyEarnings
	hourly.Add(14, 250)
	hourly.Add(15, 100)

	report := domain.Report{
		ID:          "0f3c7d2a-1111-2222-3333-444455556666",
		GeneratedAt: time.Now(),
		Dashboard:   d,
		Hourly:      hourly,
		Samples:     12,
		Archived:    340,
	}

	pdfBytes, err := exporter.ExportDashboard(report)
	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF-")), "output should be a PDF")
}

func TestPDFExporterEmptyDashboard(t *testing.T) {
	pdfBytes, err := NewPDFExporter().ExportDashboard(domain.Report{
		ID:          "short",
		GeneratedAt: time.Now(),
		Dashboard:   domain.NewDashboard("", time.Now()),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF-")))
}
