package session

import "time"

// Recap summarises a finished run for the results screen.
type Recap struct {
	Kind       Kind
	Items      []string // in the order they were presented
	Seen       int      // how many items were revealed before completion
	Started    time.Time
	Finished   time.Time
	EndedEarly bool
}

// Elapsed is the wall-clock duration of the run.
func (r Recap) Elapsed() time.Duration {
	if r.Started.IsZero() || r.Finished.Before(r.Started) {
		return 0
	}
	return r.Finished.Sub(r.Started)
}
