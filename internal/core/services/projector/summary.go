package projector

import (
	"math"
	"strconv"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
)

// fillSummary writes the scalar elements, progress bars and trend badges.
func (p *Projector) fillSummary(d *domain.Dashboard, snap domain.Snapshot) {
	text := func(t domain.Target, v string) {
		if p.layout.Mounted(t) {
			d.Text[t] = v
		}
	}
	progress := func(t domain.Target, v float64) {
		if p.layout.Mounted(t) {
			d.Progress[t] = v
		}
	}

	text(domain.TargetTotalCommands, FormatNumber(snap.TotalCommands))
	text(domain.TargetTotalCurrency, FormatNumber(snap.TotalCurrency))
	text(domain.TargetRuntime, FormatUptime(snap.System.Uptime))
	text(domain.TargetSuccessRate, formatPercent(overallSuccess(snap)))

	sys := snap.System
	text(domain.TargetCPUValue, formatFloat(sys.CPU)+"%")
	text(domain.TargetMemoryValue, formatFloat(sys.Memory)+"%")
	text(domain.TargetLatencyValue, strconv.FormatInt(sys.Latency, 10)+"ms")
	progress(domain.TargetCPUBar, sys.CPU)
	progress(domain.TargetMemoryBar, sys.Memory)
	progress(domain.TargetLatencyBar, math.Min(100, float64(sys.Latency)/5))

	if sys.HasBattery() {
		if p.layout.Mounted(domain.TargetBatteryContainer) {
			d.Visible[domain.TargetBatteryContainer] = true
		}
		progress(domain.TargetBatteryBar, *sys.Battery)
		text(domain.TargetBatteryValue, formatFloat(*sys.Battery)+"%")
	}

	if snap.Trends != nil {
		trend := func(t domain.Target, v float64) {
			if p.layout.Mounted(t) {
				d.Text[t] = FormatTrend(v)
				d.Classes[t] = TrendClass(v)
			}
		}
		trend(domain.TargetCurrencyChange, snap.Trends.Currency.Hourly)
		trend(domain.TargetCommandsChange, snap.Trends.Commands.Hourly)
	}
}

// overallSuccess is the aggregate success percentage over every reported
// command, 0 when nothing ran.
func overallSuccess(snap domain.Snapshot) float64 {
	var count, success int64
	for _, c := range snap.Commands() {
		count += c.Count
		success += c.Success
	}
	if count <= 0 {
		return 0
	}
	return float64(success) / float64(count) * 100
}
