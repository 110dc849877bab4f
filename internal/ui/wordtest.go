package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"ssbprep/internal/prompt"
	"ssbprep/internal/session"
)

const (
	fieldWords   = "words"
	fieldSeconds = "seconds"
)

const watInstructions = "Each word is shown for a fixed number of seconds. Write the first " +
	"meaningful sentence that comes to mind before the next word appears. " +
	"Paste your own comma- or space-separated words below, or leave it empty " +
	"to use the built-in list."

// WordTestView is the Word Association Test screen.
type WordTestView struct {
	test    *session.WordTest
	words   textarea.Model
	seconds textinput.Model
	focus   *FocusManager
	bar     progress.Model
	copier  prompt.Copier

	status    string
	statusErr bool
	statusSeq int

	fullscreen bool
	inAlt      bool
	width      int
	height     int
}

var (
	_ View          = (*WordTestView)(nil)
	_ inputCapturer = (*WordTestView)(nil)
	_ runningView   = (*WordTestView)(nil)
)

// NewWordTestView creates a WAT screen in the configuring phase.
func NewWordTestView(test *session.WordTest, copier prompt.Copier, fullscreen bool) *WordTestView {
	test.Configure()

	ta := textarea.New()
	ta.Placeholder = "e.g. courage, team, failure, leader"
	ta.ShowLineNumbers = false
	ta.SetHeight(4)
	ta.SetWidth(60)

	ti := textinput.New()
	ti.CharLimit = 3
	ti.Width = 4
	ti.SetValue(strconv.Itoa(test.TimePerWord()))

	v := &WordTestView{
		test:       test,
		words:      ta,
		seconds:    ti,
		focus:      NewFocusManager([]string{fieldWords, fieldSeconds}, nil),
		bar:        progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		copier:     copier,
		fullscreen: fullscreen,
		width:      80,
	}
	v.focus.Clear()
	return v
}

// Test exposes the underlying runner.
func (v *WordTestView) Test() *session.WordTest { return v.test }

// Running implements runningView.
func (v *WordTestView) Running() bool { return v.test.Phase() == session.PhaseRunning }

// CapturesInput implements inputCapturer.
func (v *WordTestView) CapturesInput() bool {
	return v.test.Phase() == session.PhaseConfiguring && v.focus.Focused()
}

// InAltScreen reports whether the current run switched to the alternate screen.
func (v *WordTestView) InAltScreen() bool { return v.inAlt }

// Init implements View.
func (v *WordTestView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (v *WordTestView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
		v.words.SetWidth(min(max(msg.Width-4, 20), 100))
		v.bar.Width = min(max(msg.Width-4, 10), 80)
		return v, nil
	case tickMsg:
		if msg.Kind != session.KindWAT {
			return v, nil
		}
		return v, v.tick(msg.RunID)
	case EndTestMsg:
		if msg.Kind != session.KindWAT || !v.Running() {
			return v, nil
		}
		v.test.EndEarly()
		return v, v.finish()
	case clearCopiedMsg:
		if msg.Seq == v.statusSeq {
			v.status = ""
		}
		return v, nil
	case tea.KeyMsg:
		switch v.test.Phase() {
		case session.PhaseRunning:
			return v, v.handleRunningKey(msg)
		case session.PhaseComplete:
			return v, v.handleCompleteKey(msg)
		default:
			return v, v.handleConfigKey(msg)
		}
	}
	return v, v.updateFocused(msg)
}

func (v *WordTestView) tick(runID uint64) tea.Cmd {
	if runID != v.test.RunID() || !v.Running() {
		return nil
	}
	if v.test.Tick(runID) {
		return tickCmd(session.KindWAT, runID)
	}
	return v.finish()
}

func (v *WordTestView) finish() tea.Cmd {
	cmd := finishRunCmds(v.test.Recap(), v.test.TimePerWord(), v.inAlt)
	v.inAlt = false
	return cmd
}

func (v *WordTestView) handleConfigKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		v.focus.Next()
		return v.applyFocus()
	case "shift+tab":
		v.focus.Prev()
		return v.applyFocus()
	case "esc":
		if v.focus.Focused() {
			v.focus.Clear()
			return v.applyFocus()
		}
		return nil
	case "ctrl+s":
		return v.start()
	case "ctrl+y":
		return v.copyPrompt()
	case "enter":
		if !v.focus.Focused() {
			return v.start()
		}
	}
	return v.updateFocused(msg)
}

func (v *WordTestView) handleRunningKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		if v.inAlt {
			v.inAlt = false
			return tea.ExitAltScreen
		}
	case "n", "right":
		v.test.Advance()
		if !v.Running() {
			return v.finish()
		}
	case "e":
		return endTestCmd(session.KindWAT)
	}
	return nil
}

func (v *WordTestView) handleCompleteKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "r", "enter":
		v.test.Reset()
		v.words.Reset()
		v.seconds.SetValue(strconv.Itoa(v.test.TimePerWord()))
		v.status = ""
		return testResetCmd(session.KindWAT)
	}
	return nil
}

func (v *WordTestView) start() tea.Cmd {
	v.test.SetCustomInput(v.words.Value())
	secs := v.test.SetTimePerWord(v.seconds.Value())
	v.seconds.SetValue(strconv.Itoa(secs))
	runID, err := v.test.Start()
	if err != nil {
		v.setStatus(err.Error(), true)
		return nil
	}
	v.focus.Clear()
	v.applyFocus()
	v.status = ""
	v.inAlt = v.fullscreen
	return startRunCmds(session.KindWAT, runID, len(v.test.Words()), secs, v.fullscreen)
}

func (v *WordTestView) copyPrompt() tea.Cmd {
	if err := v.copier.Copy(prompt.Words); err != nil {
		v.setStatus("Failed to copy prompt: "+err.Error(), true)
	} else {
		v.setStatus("Prompt copied to clipboard!", false)
	}
	return clearCopiedCmd(v.statusSeq)
}

func (v *WordTestView) setStatus(s string, isErr bool) {
	v.status = s
	v.statusErr = isErr
	v.statusSeq++
}

// applyFocus syncs the input widgets with the focus manager.
func (v *WordTestView) applyFocus() tea.Cmd {
	v.words.Blur()
	v.seconds.Blur()
	switch v.focus.Current {
	case fieldWords:
		return v.words.Focus()
	case fieldSeconds:
		return v.seconds.Focus()
	}
	return nil
}

func (v *WordTestView) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch v.focus.Current {
	case fieldWords:
		v.words, cmd = v.words.Update(msg)
	case fieldSeconds:
		v.seconds, cmd = v.seconds.Update(msg)
	}
	return cmd
}

// View implements View.
func (v *WordTestView) View() string {
	switch v.test.Phase() {
	case session.PhaseRunning:
		return v.viewRunning()
	case session.PhaseComplete:
		return v.viewComplete()
	default:
		return v.viewConfig()
	}
}

func (v *WordTestView) viewConfig() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Word Association Test (WAT)") + "\n\n")
	b.WriteString(lipgloss.NewStyle().Width(min(v.width, 100)).Render(watInstructions) + "\n\n")

	b.WriteString(Styles.Section.Render("Generate words with an AI assistant") + "\n")
	b.WriteString(promptPreview(prompt.Words, min(v.width, 100)) + "\n")
	b.WriteString(Styles.Hint.Render("ctrl+y: copy the full prompt") + "\n\n")

	b.WriteString(fieldLabel("Custom words", v.focus.Current == fieldWords) + "\n")
	b.WriteString(v.words.View() + "\n")
	pool := len(v.test.Pool())
	if n := len(session.ParseWords(v.words.Value())); n > 0 {
		pool = n
	}
	b.WriteString(Styles.Muted.Render(fmt.Sprintf("%d words available", pool)) + "\n\n")

	b.WriteString(fieldLabel("Seconds per word", v.focus.Current == fieldSeconds) + " ")
	b.WriteString(v.seconds.View() + " ")
	b.WriteString(Styles.Muted.Render(fmt.Sprintf("(%d-%d)", session.MinTimePerWord, session.MaxTimePerWord)) + "\n\n")

	if v.status != "" {
		if v.statusErr {
			b.WriteString(Styles.Error.Render(v.status) + "\n\n")
		} else {
			b.WriteString(Styles.Success.Render(v.status) + "\n\n")
		}
	}
	if v.focus.Focused() {
		b.WriteString(Styles.Hint.Render("tab: next field  esc: done editing  ctrl+s: start test"))
	} else {
		b.WriteString(Styles.Hint.Render("tab: edit fields  enter/ctrl+s: start test  esc: home"))
	}
	return b.String()
}

func (v *WordTestView) viewRunning() string {
	i, n := v.test.Position()
	left := Styles.Status.Render(fmt.Sprintf("Word %d of %d", i, n))
	countdown := fmt.Sprintf("Next word in: %ds", v.test.Remaining())
	if v.test.Urgent() {
		countdown = Styles.Urgent.Render(countdown)
	} else {
		countdown = Styles.Normal.Render(countdown)
	}
	gap := max(v.width-lipgloss.Width(left)-lipgloss.Width(countdown), 2)
	header := left + strings.Repeat(" ", gap) + countdown

	wordHeight := max(v.height-8, 7)
	word := lipgloss.Place(v.width, wordHeight, lipgloss.Center, lipgloss.Center,
		Styles.Word.Render(v.test.Current()))

	hint := "n: next word  e: end test"
	if v.inAlt {
		hint += "  esc: exit fullscreen"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		word,
		v.bar.ViewAs(v.test.Fraction()),
		"",
		Styles.Hint.Render(hint),
	)
}

func (v *WordTestView) viewComplete() string {
	recap := v.test.Recap()
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Test Complete!") + "\n\n")
	if recap.EndedEarly {
		b.WriteString(Styles.Muted.Render(fmt.Sprintf("Ended early after %d of %d words.", recap.Seen, len(recap.Items))) + "\n")
	} else {
		b.WriteString(Styles.Muted.Render(fmt.Sprintf("You saw all %d words.", len(recap.Items))) + "\n")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Styles.Muted).
		Headers("#", "Word").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return Styles.Label.Padding(0, 1)
			}
			return Styles.Normal.Padding(0, 1)
		})
	for i, w := range recap.Items[:recap.Seen] {
		t.Row(strconv.Itoa(i+1), w)
	}
	b.WriteString(t.Render() + "\n\n")
	b.WriteString(Styles.Hint.Render("r/enter: take test again  esc: home"))
	return b.String()
}
