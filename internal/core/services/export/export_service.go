package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
)

// Format selects the archive export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat accepts "csv" and "json"; empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: export format %q", domain.ErrInvalidField, s)
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/json"
}

// Write encodes samples in format f.
func Write(w io.Writer, f Format, samples []domain.Sample) error {
	if f == FormatCSV {
		return ExportCSV(w, samples)
	}
	return ExportJSON(w, samples)
}

// ExportJSON writes samples as a JSON array
func ExportJSON(w io.Writer, samples []domain.Sample) error {
	if samples == nil {
		samples = []domain.Sample{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(samples)
}

// ExportCSV writes samples as CSV with headers. Every command seen in the
// batch gets its own count column.
func ExportCSV(w io.Writer, samples []domain.Sample) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	commands := commandColumns(samples)

	headers := []string{"Timestamp", "TotalCurrency", "TotalCommands", "CPU", "Memory", "Latency"}
	for _, name := range commands {
		headers = append(headers, "cmd_"+name)
	}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, s := range samples {
		row := []string{
			s.Timestamp.UTC().Format(time.RFC3339),
			strconv.FormatInt(s.TotalCurrency, 10),
			strconv.FormatInt(s.TotalCommands, 10),
			strconv.FormatFloat(s.CPU, 'f', 1, 64),
			strconv.FormatFloat(s.Memory, 'f', 1, 64),
			strconv.FormatInt(s.Latency, 10),
		}
		for _, name := range commands {
			row = append(row, strconv.FormatInt(s.Commands[name], 10))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func commandColumns(samples []domain.Sample) []string {
	seen := make(map[string]bool)
	var names []string
	for _, s := range samples {
		for name := range s.Commands {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
