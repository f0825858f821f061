package projector

import (
	"math"
	"strconv"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
)

type color struct {
	primary    string
	background string
}

var commandColors = map[string]color{
	"hunt":   {"#4CAF50", "rgba(76, 175, 80, 0.8)"},
	"battle": {"#2196F3", "rgba(33, 150, 243, 0.8)"},
	"owo":    {"#FF9800", "rgba(255, 152, 0, 0.8)"},
	"pray":   {"#9C27B0", "rgba(156, 39, 176, 0.8)"},
	"curse":  {"#F44336", "rgba(244, 67, 54, 0.8)"},
	"daily":  {"#00BCD4", "rgba(0, 188, 212, 0.8)"},
	"sell":   {"#FFEB3B", "rgba(255, 235, 59, 0.8)"},
	"other":  {"#9E9E9E", "rgba(158, 158, 158, 0.8)"},
}

var (
	currencyColor = color{"#FF79C3", "rgba(255, 121, 195, 0.1)"}
	cpuColor      = color{"#FF5722", "rgba(255, 87, 34, 0.8)"}
	memoryColor   = color{"#3F51B5", "rgba(63, 81, 181, 0.8)"}
	latencyColor  = color{"#009688", "rgba(0, 150, 136, 0.8)"}
)

var (
	incomeSources   = []string{"hunt", "battle", "sell", "daily"}
	successCommands = []string{"hunt", "battle", "owo", "pray", "curse", "sell"}
)

var commandLabels = map[string]string{
	"hunt":   "Hunt",
	"battle": "Battle",
	"owo":    "OwO",
	"pray":   "Pray",
	"curse":  "Curse",
	"daily":  "Daily",
	"sell":   "Sell",
	"other":  "Other",
}

func palette(names []string) (border, background []string) {
	for _, n := range names {
		c := commandColors[n]
		border = append(border, c.primary)
		background = append(background, c.background)
	}
	return border, background
}

// incomeChart splits total currency by source. Currency not attributed to a
// known source is reported as "other", never negative.
func incomeChart(snap domain.Snapshot) domain.Chart {
	names := append(append([]string{}, incomeSources...), "other")
	labels := make([]string, 0, len(names))
	data := make([]float64, 0, len(names))

	var known int64
	for _, src := range incomeSources {
		v := snap.Command(src).Currency
		known += v
		data = append(data, float64(v))
	}
	other := snap.TotalCurrency - known
	if other < 0 {
		other = 0
	}
	data = append(data, float64(other))

	for _, n := range names {
		labels = append(labels, commandLabels[n])
	}

	var total float64
	for _, v := range data {
		total += v
	}
	pct := make([]int, len(data))
	if total > 0 {
		for i, v := range data {
			pct[i] = int(math.Round(v / total * 100))
		}
	}

	border, bg := palette(names)
	return domain.Chart{
		Type:   "doughnut",
		Labels: labels,
		Datasets: []domain.Dataset{{
			Data:            data,
			BorderColor:     border,
			BackgroundColor: bg,
			Percentages:     pct,
		}},
	}
}

// successRate is round(success/count*100), 0 for unused commands.
func successRate(c domain.CommandStats) float64 {
	if c.Count <= 0 {
		return 0
	}
	return math.Round(float64(c.Success) / float64(c.Count) * 100)
}

func successChart(snap domain.Snapshot) domain.Chart {
	labels := make([]string, 0, len(successCommands))
	data := make([]float64, 0, len(successCommands))
	for _, name := range successCommands {
		labels = append(labels, commandLabels[name])
		data = append(data, successRate(snap.Command(name)))
	}
	border, bg := palette(successCommands)
	return domain.Chart{
		Type:   "bar",
		Labels: labels,
		Datasets: []domain.Dataset{{
			Label:           "Success Rate (%)",
			Data:            data,
			BorderColor:     border,
			BackgroundColor: bg,
		}},
	}
}

func hourlyChart(h domain.HourlyEarnings) domain.Chart {
	labels := make([]string, len(h))
	data := make([]float64, len(h))
	for i, v := range h {
		labels[i] = strconv.Itoa(i) + ":00"
		data[i] = float64(v)
	}
	return domain.Chart{
		Type:   "line",
		Labels: labels,
		Datasets: []domain.Dataset{{
			Label:           "Earnings per Hour",
			Data:            data,
			BorderColor:     []string{currencyColor.primary},
			BackgroundColor: []string{currencyColor.background},
		}},
	}
}

func resourceChart(state domain.HistoryState) domain.Chart {
	labels := make([]string, len(state.Timestamps))
	for i, ts := range state.Timestamps {
		labels[i] = ts.Format("15:04:05")
	}
	series := func(label string, c color, data []float64, hidden bool) domain.Dataset {
		return domain.Dataset{
			Label:           label,
			Data:            append([]float64{}, data...),
			BorderColor:     []string{c.primary},
			BackgroundColor: []string{"transparent"},
			Hidden:          hidden,
		}
	}
	return domain.Chart{
		Type:   "line",
		Labels: labels,
		Datasets: []domain.Dataset{
			series("CPU (%)", cpuColor, state.CPU, false),
			series("Memory (%)", memoryColor, state.Memory, false),
			series("Latency (ms)", latencyColor, state.Latency, true),
		},
	}
}
