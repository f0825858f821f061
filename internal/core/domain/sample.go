package domain

import "time"

// Sample is one archived poll event.
type Sample struct {
	ID            uint             `json:"id"`
	Timestamp     time.Time        `json:"timestamp"`
	TotalCurrency int64            `json:"totalCurrency"`
	TotalCommands int64            `json:"totalCommands"`
	CPU           float64          `json:"cpu"`
	Memory        float64          `json:"memory"`
	Latency       int64            `json:"latency"`
	Commands      map[string]int64 `json:"commands"`
}

// NewSample captures the archived fields of a snapshot taken at ts.
func NewSample(ts time.Time, snap Snapshot) Sample {
	cmds := make(map[string]int64, len(snap.CommandMap))
	for name, c := range snap.Commands() {
		cmds[name] = c.Count
	}
	return Sample{
		Timestamp:     ts,
		TotalCurrency: snap.TotalCurrency,
		TotalCommands: snap.TotalCommands,
		CPU:           snap.System.CPU,
		Memory:        snap.System.Memory,
		Latency:       snap.System.Latency,
		Commands:      cmds,
	}
}

// SampleFilter narrows archive queries.
type SampleFilter struct {
	Since time.Time
	Limit int
}
