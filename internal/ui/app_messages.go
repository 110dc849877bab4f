package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ssbprep/internal/session"
)

// NavigateMsg is sent when the user switches screens (SPC h / SPC w / SPC s, or Enter on Home).
type NavigateMsg struct {
	Mode AppMode
}

// navigateConfirmedMsg switches screens without asking, after the user
// confirmed leaving a running test.
type navigateConfirmedMsg struct {
	Mode AppMode
}

// QuitMsg is sent by SPC q. A running test asks for confirmation first.
type QuitMsg struct{}

// ShowConfirmMsg asks the app to push a confirmation modal.
type ShowConfirmMsg struct {
	Modal *ConfirmModal
}

// DismissModalMsg is sent when user cancels a modal (Esc).
type DismissModalMsg struct{}

// EndTestMsg ends the running test of the given kind early (after confirmation).
type EndTestMsg struct {
	Kind session.Kind
}

// tickMsg is the one-second countdown pulse for a single run.
type tickMsg struct {
	Kind  session.Kind
	RunID uint64
	At    time.Time
}

// clearCopiedMsg hides the "Copied!" marker once its display time is over.
type clearCopiedMsg struct {
	Seq int
}

// tickInterval is the countdown resolution.
const tickInterval = time.Second

// copiedFlash is how long "Copied!" stays visible.
const copiedFlash = 2 * time.Second

func tickCmd(kind session.Kind, runID uint64) tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{Kind: kind, RunID: runID, At: t}
	})
}

func clearCopiedCmd(seq int) tea.Cmd {
	return tea.Tick(copiedFlash, func(time.Time) tea.Msg {
		return clearCopiedMsg{Seq: seq}
	})
}

// runStartedMsg reports a run that just began, for logging.
type runStartedMsg struct {
	Kind    session.Kind
	RunID   uint64
	Items   int
	Setting int
}

// RunCompletedMsg carries the recap of a finished run and its time setting
// (seconds per word for WAT, total minutes for SRT).
type RunCompletedMsg struct {
	Recap   session.Recap
	Setting int
}

// situationsParsedMsg reports the outcome of parsing pasted situation JSON.
type situationsParsedMsg struct {
	Count int
	Err   error
}

// testResetMsg reports that a finished test went back to configuring.
type testResetMsg struct {
	Kind session.Kind
}

func testResetCmd(kind session.Kind) tea.Cmd {
	return func() tea.Msg { return testResetMsg{Kind: kind} }
}
