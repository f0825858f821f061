package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// PollsTotal counts poll cycles by outcome (ok, error)
	PollsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "duskboard",
			Name:      "polls_total",
			Help:      "Total number of stats polls by result",
		},
		[]string{"result"},
	)

	// PollDuration observes the fetch+ingest+render time of a tick
	PollDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "duskboard",
			Name:      "poll_duration_seconds",
			Help:      "Duration of a poll cycle",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// CurrencyTotal mirrors the bot's reported total currency
	CurrencyTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "duskboard",
			Name:      "currency_total",
			Help:      "Total currency reported by the bot",
		},
	)

	// CommandsTotal mirrors the bot's reported total command count
	CommandsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "duskboard",
			Name:      "commands_total",
			Help:      "Total commands reported by the bot",
		},
	)

	// HourlyEarnings exposes the hourly earnings bucket
	HourlyEarnings = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "duskboard",
			Name:      "hourly_earnings",
			Help:      "Positive currency deltas accumulated per local hour of day",
		},
		[]string{"hour"},
	)

	// SettingsOps counts settings operations against the bot by operation and result
	SettingsOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "duskboard",
			Name:      "settings_operations_total",
			Help:      "Settings load/save/import/export operations",
		},
		[]string{"op", "result"},
	)

	// WSClients tracks connected dashboard sockets
	WSClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "duskboard",
			Name:      "websocket_clients",
			Help:      "Number of connected WebSocket clients",
		},
	)

	// SamplesDropped counts samples dropped because the archive queue was full
	SamplesDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "duskboard",
			Name:      "samples_dropped_total",
			Help:      "Samples dropped before reaching the archive",
		},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry.
// It is idempotent.
func InitMetrics() {
	once.Do(func() {
		prometheus.DefaultRegisterer.Register(PollsTotal)
		prometheus.DefaultRegisterer.Register(PollDuration)
		prometheus.DefaultRegisterer.Register(CurrencyTotal)
		prometheus.DefaultRegisterer.Register(CommandsTotal)
		prometheus.DefaultRegisterer.Register(HourlyEarnings)
		prometheus.DefaultRegisterer.Register(SettingsOps)
		prometheus.DefaultRegisterer.Register(WSClients)
		prometheus.DefaultRegisterer.Register(SamplesDropped)
	})
}
