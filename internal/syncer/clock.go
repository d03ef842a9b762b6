package syncer

import "time"

type systemClock struct{}

// Now return current UTC time.
func (c systemClock) Now() *time.Time {
	t := time.Now().UTC()
	return &t
}

// Since returns time elapsed since start.
func (c systemClock) Since(start time.Time) time.Duration {
	return time.Since(start)
}
