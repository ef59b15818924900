package domain

import "time"

// CandidateEvent is the reduced schedule projection handed to the detail
// fetcher. Every candidate belongs to the target instructor, is still open
// (closed_at is null upstream) and passed the day-type admission rule.
type CandidateEvent struct {
	Token     string
	StartTime time.Time
}
