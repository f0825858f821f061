package domain

import "time"

// Target identifies one chart or element of the dashboard page.
type Target string

// Charts
const (
	TargetIncomeChart   Target = "incomeDistributionChart"
	TargetSuccessChart  Target = "commandSuccessChart"
	TargetHourlyChart   Target = "hourlyEarningsChart"
	TargetResourceChart Target = "resourceUsageChart"
)

// Summary elements
const (
	TargetTotalCommands    Target = "total-commands"
	TargetTotalCurrency    Target = "total-currency"
	TargetRuntime          Target = "runtime"
	TargetSuccessRate      Target = "success-rate"
	TargetCPUValue         Target = "cpu-usage-value"
	TargetMemoryValue      Target = "memory-usage-value"
	TargetLatencyValue     Target = "latency-value"
	TargetBatteryValue     Target = "battery-value"
	TargetCPUBar           Target = "cpu-usage"
	TargetMemoryBar        Target = "memory-usage"
	TargetLatencyBar       Target = "latency"
	TargetBatteryBar       Target = "battery"
	TargetBatteryContainer Target = "battery-container"
	TargetCurrencyChange   Target = "currency-change"
	TargetCommandsChange   Target = "commands-change"
)

// Listings
const (
	TargetCommandTable Target = "command-stats-table"
	TargetTimeline     Target = "advanced-timeline"
	TargetPets         Target = "pet-stats-container"
)

// AllTargets lists every element the projector knows how to fill.
func AllTargets() []Target {
	return []Target{
		TargetIncomeChart, TargetSuccessChart, TargetHourlyChart, TargetResourceChart,
		TargetTotalCommands, TargetTotalCurrency, TargetRuntime, TargetSuccessRate,
		TargetCPUValue, TargetMemoryValue, TargetLatencyValue, TargetBatteryValue,
		TargetCPUBar, TargetMemoryBar, TargetLatencyBar, TargetBatteryBar, TargetBatteryContainer,
		TargetCurrencyChange, TargetCommandsChange,
		TargetCommandTable, TargetTimeline, TargetPets,
	}
}

// IsValidTarget reports whether t is a known element id.
func IsValidTarget(t Target) bool {
	for _, known := range AllTargets() {
		if known == t {
			return true
		}
	}
	return false
}

// Dashboard is one complete projection of the aggregator state. Only mounted
// targets are present.
type Dashboard struct {
	Revision   string             `json:"revision"`
	RenderedAt time.Time          `json:"renderedAt"`
	Charts     map[Target]Chart   `json:"charts"`
	Text       map[Target]string  `json:"text"`
	Progress   map[Target]float64 `json:"progress"`
	Classes    map[Target]string  `json:"classes"`
	Visible    map[Target]bool    `json:"visible"`

	CommandTable *CommandTable `json:"commandTable,omitempty"`
	Timeline     *Timeline     `json:"timeline,omitempty"`
	Pets         *PetRoster    `json:"pets,omitempty"`
}

// NewDashboard initializes a dashboard with empty maps to prevent nil access.
func NewDashboard(revision string, at time.Time) Dashboard {
	return Dashboard{
		Revision:   revision,
		RenderedAt: at,
		Charts:     make(map[Target]Chart),
		Text:       make(map[Target]string),
		Progress:   make(map[Target]float64),
		Classes:    make(map[Target]string),
		Visible:    make(map[Target]bool),
	}
}

type Chart struct {
	Type     string    `json:"type"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     []string  `json:"borderColor,omitempty"`
	BackgroundColor []string  `json:"backgroundColor,omitempty"`
	Hidden          bool      `json:"hidden,omitempty"`
	// Percentages of the dataset total per point, used by doughnut tooltips.
	Percentages []int `json:"percentages,omitempty"`
}

// CommandTable is the fixed-order per-command breakdown.
type CommandTable struct {
	Rows []CommandRow `json:"rows"`
}

type CommandRow struct {
	Command  string `json:"command"`
	Name     string `json:"name"`
	Count    string `json:"count"`
	Success  string `json:"success"`
	Fail     string `json:"fail"`
	Rate     string `json:"rate"`
	Currency string `json:"currency"`
	LastUsed string `json:"lastUsed"`
}

type Timeline struct {
	Items []TimelineItem `json:"items"`
	Empty string         `json:"empty,omitempty"`
}

type TimelineItem struct {
	Time  string `json:"time"`
	Text  string `json:"text"`
	Class string `json:"class"`
}

type PetRoster struct {
	Cards      []PetCard `json:"cards"`
	EmptyTitle string    `json:"emptyTitle,omitempty"`
	EmptyHint  string    `json:"emptyHint,omitempty"`
}

type PetCard struct {
	Name       string `json:"name"`
	Level      string `json:"level"`
	Experience string `json:"experience"`
	Attack     string `json:"attack"`
	Defense    string `json:"defense"`
}

// Toast is a transient notice shown to every connected browser.
type Toast struct {
	Message string `json:"message"`
	Level   string `json:"level"`
}

const (
	ToastSuccess = "success"
	ToastError   = "error"
)
