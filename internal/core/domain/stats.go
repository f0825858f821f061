package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Snapshot is one payload returned by the bot's stats endpoint.
// Missing fields decode to zero values; use the accessors to read
// collections so a degraded payload never yields nil maps.
type Snapshot struct {
	TotalCommands  int64                   `json:"totalCommands"`
	TotalCurrency  int64                   `json:"totalCurrency"`
	CommandMap     map[string]CommandStats `json:"commands"`
	System         SystemStats             `json:"system"`
	Trends         *Trends                 `json:"trends,omitempty"`
	RecentActivity []Activity              `json:"recentActivity"`
	PetList        []Pet                   `json:"pets"`
}

// CommandStats holds the counters the bot keeps for a single command.
type CommandStats struct {
	Count    int64      `json:"count"`
	Success  int64      `json:"success"`
	Currency int64      `json:"currency"`
	LastUsed *Timestamp `json:"lastUsed,omitempty"`
}

// Fail is the number of unsuccessful executions.
func (c CommandStats) Fail() int64 {
	return c.Count - c.Success
}

// SystemStats describes the host the bot runs on.
type SystemStats struct {
	CPU     float64  `json:"cpu"`
	Memory  float64  `json:"memory"`
	Latency int64    `json:"latency"`
	Uptime  int64    `json:"uptime"`
	Battery *float64 `json:"battery,omitempty"`
}

// HasBattery reports whether a non-zero battery level was reported.
func (s SystemStats) HasBattery() bool {
	return s.Battery != nil && *s.Battery != 0
}

// Trend is an hourly percentage change.
type Trend struct {
	Hourly float64 `json:"hourly"`
}

type Trends struct {
	Currency Trend `json:"currency"`
	Commands Trend `json:"commands"`
}

// Activity is one entry of the bot's recent activity feed.
type Activity struct {
	Time string `json:"time"`
	Text string `json:"text"`
	Type string `json:"type"`
}

// Pet is one member of the bot's pet roster.
type Pet struct {
	Name          string `json:"name"`
	Level         int64  `json:"level"`
	Experience    int64  `json:"experience"`
	MaxExperience int64  `json:"maxExperience"`
	Attack        int64  `json:"attack"`
	Defense       int64  `json:"defense"`
}

// Command returns the stats for name, or zero stats if the bot did not report it.
func (s Snapshot) Command(name string) CommandStats {
	return s.CommandMap[name]
}

// Commands never returns nil.
func (s Snapshot) Commands() map[string]CommandStats {
	if s.CommandMap == nil {
		return map[string]CommandStats{}
	}
	return s.CommandMap
}

func (s Snapshot) Activities() []Activity {
	if s.RecentActivity == nil {
		return []Activity{}
	}
	return s.RecentActivity
}

func (s Snapshot) Pets() []Pet {
	if s.PetList == nil {
		return []Pet{}
	}
	return s.PetList
}

// DecodeSnapshot parses a stats payload. A JSON null or a non-object body is
// rejected with ErrInvalidSnapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return snap, ErrInvalidSnapshot
	}
	if err := json.Unmarshal(trimmed, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return snap, nil
}

// Timestamp is a point in time as reported by the bot. It accepts RFC 3339
// strings and unix epochs (seconds below 1e12, milliseconds otherwise).
type Timestamp struct {
	Time  time.Time
	Valid bool
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t, Valid: true}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	*t = Timestamp{}
	s := string(bytes.TrimSpace(data))
	if s == "null" || s == "" {
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}
		if parsed, err := time.Parse(time.RFC3339, str); err == nil {
			*t = Timestamp{Time: parsed, Valid: true}
			return nil
		}
		// timestamps without an offset are local time
		for _, layout := range naiveLayouts {
			if parsed, err := time.ParseInLocation(layout, str, time.Local); err == nil {
				*t = Timestamp{Time: parsed, Valid: true}
				return nil
			}
		}
		if f, err := strconv.ParseFloat(str, 64); err == nil {
			*t = Timestamp{Time: epochToTime(f), Valid: true}
		}
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*t = Timestamp{Time: epochToTime(f), Valid: true}
	}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

func epochToTime(f float64) time.Time {
	if f < 1e12 {
		sec := int64(f)
		return time.Unix(sec, int64((f-float64(sec))*1e9))
	}
	return time.UnixMilli(int64(f))
}
