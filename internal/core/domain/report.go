package domain

import "time"

// Report gathers everything the PDF dashboard report prints.
type Report struct {
	ID          string
	Title       string
	GeneratedAt time.Time
	Dashboard   Dashboard
	Hourly      HourlyEarnings
	Samples     int
	Archived    int64
}
