package ui

import tea "github.com/charmbracelet/bubbletea"

// View is the unit of composition; implements Bubble Tea's Init/Update/View.
// Each View represents a screen or modal with its own model, update, and view.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

// inputCapturer is implemented by views that sometimes need raw keystrokes,
// e.g. while a text field has focus. Leader keybinds are skipped then.
type inputCapturer interface {
	CapturesInput() bool
}

// runningView is implemented by test screens; navigating away from a running
// test asks for confirmation first.
type runningView interface {
	Running() bool
}
