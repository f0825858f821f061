package projector

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatNumber renders n with thousands separators ("12,478").
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatUptime renders seconds as "{h}h {m}m", or "{d}d {h}h" past 24 hours.
func FormatUptime(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	if hours > 24 {
		return fmt.Sprintf("%dd %dh", hours/24, hours%24)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// FormatTrend renders a percentage change with an explicit sign for
// non-negative values.
func FormatTrend(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if v >= 0 {
		return "+" + s + "%"
	}
	return s + "%"
}

func TrendClass(v float64) string {
	if v >= 0 {
		return "positive"
	}
	return "negative"
}

// FormatTimeAgo renders the distance between ts and now.
func FormatTimeAgo(ts *domain.Timestamp, now time.Time) string {
	if ts == nil {
		return "Never"
	}
	if !ts.Valid {
		return "Unknown"
	}
	sec := int64(now.Sub(ts.Time) / time.Second)
	switch {
	case sec < 60:
		return fmt.Sprintf("%d sec ago", sec)
	case sec < 3600:
		return fmt.Sprintf("%d min ago", sec/60)
	case sec < 86400:
		return fmt.Sprintf("%d hr ago", sec/3600)
	}
	return fmt.Sprintf("%d days ago", sec/86400)
}

// formatPercent renders v with one decimal and a percent sign.
func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
