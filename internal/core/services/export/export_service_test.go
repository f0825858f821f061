package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtures() []domain.Sample {
	ts := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	return []domain.Sample{
		{Timestamp: ts, TotalCurrency: 1000, TotalCommands: 10, CPU: 12.5, Memory: 40, Latency: 90,
			Commands: map[string]int64{"hunt": 6, "battle": 4}},
		{Timestamp: ts.Add(10 * time.Second), TotalCurrency: 1250, TotalCommands: 12, CPU: 13, Memory: 41, Latency: 110,
			Commands: map[string]int64{"hunt": 7, "pray": 1}},
	}
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, fixtures()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Timestamp", "TotalCurrency", "TotalCommands", "CPU", "Memory", "Latency",
		"cmd_battle", "cmd_hunt", "cmd_pray"}, rows[0])
	assert.Equal(t, []string{"2026-03-01T14:00:00Z", "1000", "10", "12.5", "40.0", "90", "4", "6", "0"}, rows[1])
	assert.Equal(t, "0", rows[2][6], "missing command reads as zero")
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, fixtures()))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 2)
	assert.EqualValues(t, 1250, out[1]["totalCurrency"])

	buf.Reset()
	require.NoError(t, ExportJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{"csv", FormatCSV, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, domain.ErrInvalidField)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
	assert.Equal(t, "text/csv", FormatCSV.ContentType())
}
