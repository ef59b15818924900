package domain

// Time format constants
const (
	DateFormat        = "2006-01-02" // YYYY-MM-DD
	DisplayDateFormat = "02/01/2006" // DD/MM/YYYY
	HourFormat        = "15:04"      // HH:MM
)

// Default schedule window values
const (
	DefaultScheduleWindowDays = 14
	DefaultRegion             = "SP"
)

// EveningCutoffHour is the weekday admission boundary: weekday classes are
// admitted only when they start strictly after this local hour.
const EveningCutoffHour = 19

// DefaultSchedulePages is the set of schedule pages fetched by default
var DefaultSchedulePages = []int{1, 2}
