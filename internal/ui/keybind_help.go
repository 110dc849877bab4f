package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

var (
	leaderBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorAccent)).
			Padding(0, 1).
			MarginTop(1)
	leaderLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
)

// RenderKeybindHelp produces the transient help bar shown after SPC,
// filtered to the bindings active in mode.
func RenderKeybindHelp(keyHandler *KeyHandler, mode AppMode) string {
	if keyHandler == nil {
		return ""
	}
	bindings := NewKeyMap(keyHandler, mode).ShortHelp()
	if len(bindings) == 0 {
		return ""
	}

	h := help.New()
	h.Styles.ShortKey = Styles.Selected
	h.Styles.ShortDesc = Styles.Muted
	h.Styles.ShortSeparator = Styles.Muted

	prefix := keyHandler.Sequence()
	if prefix == "" {
		prefix = keyHandler.LeaderSeq
	}
	return leaderBoxStyle.Render(leaderLabelStyle.Render(prefix) + " " + h.ShortHelpView(bindings))
}
