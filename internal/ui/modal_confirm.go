package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"ssbprep/internal/session"
)

// ConfirmModal is a generic confirmation modal.
// Enter or y confirms; Esc or n cancels.
type ConfirmModal struct {
	Title     string
	Label     string
	Details   string // Optional consequence line (e.g. "Your progress will be lost")
	OnConfirm func() tea.Msg
}

// Ensure ConfirmModal implements View.
var _ View = (*ConfirmModal)(nil)

// NewConfirmModal creates a generic confirmation modal.
func NewConfirmModal(title, label string, onConfirm func() tea.Msg) *ConfirmModal {
	return &ConfirmModal{
		Title:     title,
		Label:     label,
		OnConfirm: onConfirm,
	}
}

// WithDetails adds a consequence line to the modal.
func (m *ConfirmModal) WithDetails(details string) *ConfirmModal {
	m.Details = details
	return m
}

// NewEndTestConfirmModal asks before ending a running test early.
func NewEndTestConfirmModal(kind session.Kind) *ConfirmModal {
	return NewConfirmModal(
		"End test?",
		"The countdown stops and the recap is shown.",
		func() tea.Msg { return EndTestMsg{Kind: kind} },
	)
}

// NewLeaveTestConfirmModal asks before navigating away from a running test.
func NewLeaveTestConfirmModal(to AppMode) *ConfirmModal {
	return NewConfirmModal(
		"Leave test?",
		"Go to "+to.String()+".",
		func() tea.Msg { return navigateConfirmedMsg{Mode: to} },
	).WithDetails("The running test will be discarded.")
}

// NewQuitConfirmModal asks before quitting during a running test.
func NewQuitConfirmModal() *ConfirmModal {
	return NewConfirmModal(
		"Quit?",
		"A test is still running.",
		func() tea.Msg { return tea.QuitMsg{} },
	).WithDetails("The running test will be discarded.")
}

// Init implements View.
func (m *ConfirmModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *ConfirmModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "n":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter", "y":
			if m.OnConfirm != nil {
				return m, m.OnConfirm
			}
		}
	}
	return m, nil
}

// View implements View.
func (m *ConfirmModal) View() string {
	content := Styles.TitleWarning.Render(m.Title) + "\n\n"
	content += Styles.Normal.Render(m.Label)
	if m.Details != "" {
		content += "\n" + Styles.Error.Render(m.Details)
	}
	content += "\n\n" + Styles.Hint.Render("y/Enter: confirm  n/Esc: cancel")
	return Styles.BoxDanger.Render(content)
}
