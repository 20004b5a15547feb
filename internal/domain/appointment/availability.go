package appointment

import "time"

type AvailabilityInput struct {
	ProfessionalID uint
	Date           time.Time
}

// DailyCount is one row of the scheduled-per-day report.
type DailyCount struct {
	Date  time.Time `json:"date"`
	Total int64     `json:"total"`
}
