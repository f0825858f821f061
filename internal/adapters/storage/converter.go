package storage

import (
	"encoding/json"
	"log/slog"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
)

func toSampleModel(s domain.Sample) SampleModel {
	m := SampleModel{
		ID:            s.ID,
		Timestamp:     s.Timestamp.UTC(),
		TotalCurrency: s.TotalCurrency,
		TotalCommands: s.TotalCommands,
		CPU:           s.CPU,
		Memory:        s.Memory,
		Latency:       s.Latency,
	}
	if len(s.Commands) > 0 {
		if data, err := json.Marshal(s.Commands); err == nil {
			m.Commands = string(data)
		}
	}
	return m
}

func toSample(m SampleModel) domain.Sample {
	s := domain.Sample{
		ID:            m.ID,
		Timestamp:     m.Timestamp,
		TotalCurrency: m.TotalCurrency,
		TotalCommands: m.TotalCommands,
		CPU:           m.CPU,
		Memory:        m.Memory,
		Latency:       m.Latency,
		Commands:      map[string]int64{},
	}
	if m.Commands != "" {
		if err := json.Unmarshal([]byte(m.Commands), &s.Commands); err != nil {
			slog.Warn("Corrupt command counts in archived sample", "id", m.ID, "error", err)
		}
	}
	return s
}

func toAuditModel(l domain.AuditLog) AuditLogModel {
	return AuditLogModel{
		ID:        l.ID,
		Actor:     l.Actor,
		Action:    string(l.Action),
		Target:    l.Target,
		Details:   l.Details,
		IPAddress: l.IPAddress,
		RequestID: l.RequestID,
		Timestamp: l.Timestamp,
	}
}

func toAuditLog(m AuditLogModel) domain.AuditLog {
	return domain.AuditLog{
		ID:        m.ID,
		Actor:     m.Actor,
		Action:    domain.AuditAction(m.Action),
		Target:    m.Target,
		Details:   m.Details,
		IPAddress: m.IPAddress,
		RequestID: m.RequestID,
		Timestamp: m.Timestamp,
	}
}
