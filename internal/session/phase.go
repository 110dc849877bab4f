// Package session implements the timed test runners as plain state machines.
//
// A runner moves through idle → configuring → running → complete. User
// actions (start, advance, end early, reset) and a one-second tick drive the
// transitions. Runners hold no goroutines or timers of their own; the caller
// delivers ticks and tags each tick chain with the run ID returned by Start
// so that ticks from an abandoned run are ignored.
package session

import (
	"errors"
	"sync/atomic"
)

// Phase is the lifecycle stage of a test runner.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseConfiguring
	PhaseRunning
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseConfiguring:
		return "configuring"
	case PhaseRunning:
		return "running"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Kind identifies which exercise a runner or recap belongs to.
type Kind string

const (
	KindWAT Kind = "wat" // word association test
	KindSRT Kind = "srt" // situation reaction test
)

// ErrAlreadyRunning is returned by Start when a run is in progress.
var ErrAlreadyRunning = errors.New("test already running")

// runSeq hands out run IDs that are unique across all runners in the
// process, so a tick left over from a discarded runner cannot match a new one.
var runSeq atomic.Uint64

func nextRunID() uint64 { return runSeq.Add(1) }
