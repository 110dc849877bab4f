package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"ssbprep/internal/session"
	"ssbprep/internal/ui/textutil"
)

const promptPreviewLines = 4

// promptPreview renders the first lines of a generation prompt, clipped to width.
func promptPreview(text string, width int) string {
	return Styles.BoxPrompt.Render(textutil.Head(text, promptPreviewLines, max(width-4, 10)))
}

// fieldLabel renders a form label, marking the focused field.
func fieldLabel(label string, focused bool) string {
	if focused {
		return Styles.Selected.Render("▸ " + label)
	}
	return Styles.Label.Render("  " + label)
}

// startRunCmds returns the commands that accompany a fresh run: the first
// tick, a start notification and, when configured, the alternate screen.
func startRunCmds(kind session.Kind, runID uint64, items, setting int, fullscreen bool) tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(kind, runID),
		func() tea.Msg {
			return runStartedMsg{Kind: kind, RunID: runID, Items: items, Setting: setting}
		},
	}
	if fullscreen {
		cmds = append(cmds, tea.EnterAltScreen)
	}
	return tea.Batch(cmds...)
}

// finishRunCmds reports a completed run and leaves the alternate screen if
// the run entered it.
func finishRunCmds(recap session.Recap, setting int, inAlt bool) tea.Cmd {
	cmds := []tea.Cmd{
		func() tea.Msg { return RunCompletedMsg{Recap: recap, Setting: setting} },
	}
	if inAlt {
		cmds = append(cmds, tea.ExitAltScreen)
	}
	return tea.Batch(cmds...)
}

func endTestCmd(kind session.Kind) tea.Cmd {
	return func() tea.Msg { return ShowConfirmMsg{Modal: NewEndTestConfirmModal(kind)} }
}
