package domain

import "time"

// Duration carries the event duration as delivered by the upstream API,
// which sends either a number of minutes or a preformatted string.
type Duration struct {
	Minutes *float64
	Label   string
}

// IsZero returns true when the upstream payload carried no duration at all
func (d Duration) IsZero() bool {
	return d.Minutes == nil && d.Label == ""
}

// AvailableSpot is one free seat in one class event. Spots are emitted only
// for seats with no bookings and the maintenance flag off.
type AvailableSpot struct {
	Token              string
	SpotCode           string
	EventName          string
	EventHour          string
	Duration           Duration
	InstructorNickname string
	InstructorName     string
	InstructorTagline  string
	StartTime          *time.Time
}
