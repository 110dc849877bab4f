package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ssbprep/internal/prompt"
	"ssbprep/internal/session"
	"ssbprep/internal/ui/textutil"
)

const (
	fieldJSON    = "json"
	fieldMinutes = "minutes"
)

const srtInstructions = "You will see a series of situations and have a fixed total time " +
	"to respond to all of them. Write how you would react to each one, then " +
	"move on. Paste situations as a JSON array of strings, parse them, and start."

// previewItems caps the parsed-situation preview on the config screen.
const previewItems = 5

// SituationTestView is the Situation Reaction Test screen.
type SituationTestView struct {
	test    *session.SituationTest
	input   textarea.Model
	minutes textinput.Model
	focus   *FocusManager
	copier  prompt.Copier

	copied   bool
	copySeq  int
	copyErr  string
	startErr error

	fullscreen bool
	inAlt      bool
	width      int
	height     int
}

var (
	_ View          = (*SituationTestView)(nil)
	_ inputCapturer = (*SituationTestView)(nil)
	_ runningView   = (*SituationTestView)(nil)
)

// NewSituationTestView creates an SRT screen in the configuring phase.
func NewSituationTestView(test *session.SituationTest, copier prompt.Copier, fullscreen bool) *SituationTestView {
	test.Configure()

	ta := textarea.New()
	ta.Placeholder = `["Situation 1...", "Situation 2..."]`
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(6)
	ta.SetWidth(60)
	ta.SetValue(test.Input())

	ti := textinput.New()
	ti.CharLimit = 3
	ti.Width = 4
	ti.SetValue(strconv.Itoa(test.TotalMinutes()))

	v := &SituationTestView{
		test:       test,
		input:      ta,
		minutes:    ti,
		focus:      NewFocusManager([]string{fieldJSON, fieldMinutes}, nil),
		copier:     copier,
		fullscreen: fullscreen,
		width:      80,
	}
	v.focus.Clear()
	return v
}

// Test exposes the underlying runner.
func (v *SituationTestView) Test() *session.SituationTest { return v.test }

// Running implements runningView.
func (v *SituationTestView) Running() bool { return v.test.Phase() == session.PhaseRunning }

// CapturesInput implements inputCapturer.
func (v *SituationTestView) CapturesInput() bool {
	return v.test.Phase() == session.PhaseConfiguring && v.focus.Focused()
}

// InAltScreen reports whether the current run switched to the alternate screen.
func (v *SituationTestView) InAltScreen() bool { return v.inAlt }

// Init implements View.
func (v *SituationTestView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (v *SituationTestView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
		v.input.SetWidth(min(max(msg.Width-4, 20), 100))
		return v, nil
	case tickMsg:
		if msg.Kind != session.KindSRT {
			return v, nil
		}
		return v, v.tick(msg.RunID)
	case EndTestMsg:
		if msg.Kind != session.KindSRT || !v.Running() {
			return v, nil
		}
		v.test.EndEarly()
		return v, v.finish()
	case clearCopiedMsg:
		if msg.Seq == v.copySeq {
			v.copied = false
			v.copyErr = ""
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

func (v *SituationTestView) tick(runID uint64) tea.Cmd {
	if runID != v.test.RunID() || !v.Running() {
		return nil
	}
	if v.test.Tick(runID) {
		return tickCmd(session.KindSRT, runID)
	}
	return v.finish()
}

func (v *SituationTestView) finish() tea.Cmd {
	cmd := finishRunCmds(v.test.Recap(), v.test.TotalMinutes(), v.inAlt)
	v.inAlt = false
	return cmd
}

func (v *SituationTestView) handleConfigKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		v.commitMinutes()
		v.focus.Next()
		return v.applyFocus()
	case "shift+tab":
		v.commitMinutes()
		v.focus.Prev()
		return v.applyFocus()
	case "esc":
		if v.focus.Focused() {
			v.commitMinutes()
			v.focus.Clear()
			return v.applyFocus()
		}
		return nil
	case "ctrl+l":
		v.input.SetValue(v.test.LoadSample())
		return nil
	case "ctrl+p":
		v.startErr = nil
		err := v.test.ParseSituations(v.input.Value())
		count := len(v.test.Situations())
		return func() tea.Msg { return situationsParsedMsg{Count: count, Err: err} }
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

func (v *SituationTestView) handleRunningKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		if v.inAlt {
			v.inAlt = false
			return tea.ExitAltScreen
		}
	case "n", "right":
		v.test.Next()
		if !v.Running() {
			return v.finish()
		}
	case "p", "left":
		v.test.Previous()
	case "e":
		return endTestCmd(session.KindSRT)
	}
	return nil
}

func (v *SituationTestView) handleCompleteKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "r", "enter":
		v.test.Reset()
		v.input.SetValue(v.test.Input())
		v.minutes.SetValue(strconv.Itoa(v.test.TotalMinutes()))
		v.startErr = nil
		return testResetCmd(session.KindSRT)
	}
	return nil
}

// commitMinutes normalises the minutes field once editing leaves it.
func (v *SituationTestView) commitMinutes() {
	if v.focus.Current == fieldMinutes {
		v.minutes.SetValue(strconv.Itoa(v.test.SetTotalMinutes(v.minutes.Value())))
	}
}

func (v *SituationTestView) start() tea.Cmd {
	mins := v.test.SetTotalMinutes(v.minutes.Value())
	v.minutes.SetValue(strconv.Itoa(mins))
	runID, err := v.test.Start()
	if err != nil {
		v.startErr = err
		return nil
	}
	v.startErr = nil
	v.focus.Clear()
	v.applyFocus()
	v.inAlt = v.fullscreen
	return startRunCmds(session.KindSRT, runID, len(v.test.Situations()), mins, v.fullscreen)
}

func (v *SituationTestView) copyPrompt() tea.Cmd {
	v.copySeq++
	if err := v.copier.Copy(prompt.Situations); err != nil {
		v.copied = false
		v.copyErr = "Failed to copy: " + err.Error()
	} else {
		v.copied = true
		v.copyErr = ""
	}
	return clearCopiedCmd(v.copySeq)
}

func (v *SituationTestView) applyFocus() tea.Cmd {
	v.input.Blur()
	v.minutes.Blur()
	switch v.focus.Current {
	case fieldJSON:
		return v.input.Focus()
	case fieldMinutes:
		return v.minutes.Focus()
	}
	return nil
}

func (v *SituationTestView) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch v.focus.Current {
	case fieldJSON:
		v.input, cmd = v.input.Update(msg)
	case fieldMinutes:
		v.minutes, cmd = v.minutes.Update(msg)
	}
	return cmd
}

// View implements View.
func (v *SituationTestView) View() string {
	switch v.test.Phase() {
	case session.PhaseRunning:
		return v.viewRunning()
	case session.PhaseComplete:
		return v.viewComplete()
	default:
		return v.viewConfig()
	}
}

func (v *SituationTestView) viewConfig() string {
	width := min(v.width, 100)
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Situation Reaction Test (SRT)") + "\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Render(srtInstructions) + "\n\n")

	copyHint := Styles.Hint.Render("ctrl+y: copy prompt")
	switch {
	case v.copied:
		copyHint = Styles.Success.Render("Copied!")
	case v.copyErr != "":
		copyHint = Styles.Error.Render(v.copyErr)
	}
	b.WriteString(Styles.Section.Render("Generate situations with an AI assistant") + "  " + copyHint + "\n")
	b.WriteString(promptPreview(prompt.Situations, width) + "\n\n")

	b.WriteString(fieldLabel("Situations (JSON array)", v.focus.Current == fieldJSON) + "\n")
	b.WriteString(v.input.View() + "\n")
	if err := v.test.ParseError(); err != nil {
		b.WriteString(Styles.Error.Render(err.Error()) + "\n")
	}
	b.WriteString(Styles.Hint.Render("ctrl+l: load sample  ctrl+p: parse JSON") + "\n\n")

	situations := v.test.Situations()
	if len(situations) > 0 {
		b.WriteString(Styles.Section.Render(fmt.Sprintf("Loaded Situations (%d)", len(situations))) + "\n")
		for i, s := range situations {
			if i == previewItems {
				b.WriteString(Styles.Muted.Render(fmt.Sprintf("  … and %d more", len(situations)-previewItems)) + "\n")
				break
			}
			b.WriteString(Styles.Normal.Render(fmt.Sprintf("  %d. %s", i+1, textutil.Truncate(s, max(width-6, 10)))) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(fieldLabel("Total time (minutes)", v.focus.Current == fieldMinutes) + " ")
	b.WriteString(v.minutes.View() + " ")
	b.WriteString(Styles.Muted.Render(fmt.Sprintf("(%d-%d)", session.MinTotalMinutes, session.MaxTotalMinutes)) + "\n\n")

	if v.startErr != nil {
		b.WriteString(Styles.Error.Render(v.startErr.Error()) + "\n\n")
	}
	start := "ctrl+s: start test"
	if len(situations) == 0 {
		start = Styles.Disabled.Render(start)
	} else {
		start = Styles.Hint.Render(start)
	}
	if v.focus.Focused() {
		b.WriteString(Styles.Hint.Render("tab: next field  esc: done editing  ") + start)
	} else {
		b.WriteString(Styles.Hint.Render("tab: edit fields  esc: home  ") + start)
	}
	return b.String()
}

func (v *SituationTestView) viewRunning() string {
	i, n := v.test.Position()
	left := Styles.Status.Render(fmt.Sprintf("Situation %d of %d", i, n))
	clock := "Time Remaining: " + session.FormatClock(v.test.Remaining())
	if v.test.Remaining() <= 60 {
		clock = Styles.Urgent.Render(clock)
	} else {
		clock = Styles.Normal.Render(clock)
	}
	gap := max(v.width-lipgloss.Width(left)-lipgloss.Width(clock), 2)
	header := left + strings.Repeat(" ", gap) + clock

	boxWidth := min(max(v.width-8, 20), 90)
	situation := Styles.BoxStimuli.Width(boxWidth).Render(v.test.Current())
	body := lipgloss.Place(v.width, max(v.height-6, lipgloss.Height(situation)), lipgloss.Center, lipgloss.Center, situation)

	nav := []string{}
	if v.test.Index() > 0 {
		nav = append(nav, "p/←: previous")
	}
	if i < n {
		nav = append(nav, "n/→: next")
	} else {
		nav = append(nav, "n/→: finish")
	}
	nav = append(nav, "e: end test")
	if v.inAlt {
		nav = append(nav, "esc: exit fullscreen")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		"",
		Styles.Hint.Render(strings.Join(nav, "  ")),
	)
}

func (v *SituationTestView) viewComplete() string {
	recap := v.test.Recap()
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Test Complete!") + "\n\n")
	switch {
	case recap.EndedEarly:
		b.WriteString(Styles.Muted.Render(fmt.Sprintf("Ended early at situation %d of %d.", recap.Seen, len(recap.Items))) + "\n\n")
	case recap.Seen < len(recap.Items):
		b.WriteString(Styles.Muted.Render(fmt.Sprintf("Time ran out at situation %d of %d.", recap.Seen, len(recap.Items))) + "\n\n")
	default:
		b.WriteString(Styles.Muted.Render(fmt.Sprintf("You went through all %d situations.", len(recap.Items))) + "\n\n")
	}
	b.WriteString(Styles.Section.Render("Situations") + "\n")
	wrap := lipgloss.NewStyle().Width(max(min(v.width, 100)-6, 20))
	for i, s := range recap.Items {
		line := fmt.Sprintf("%d. %s", i+1, s)
		if i >= recap.Seen {
			b.WriteString(Styles.Muted.Inherit(wrap).Render(line) + "\n")
			continue
		}
		b.WriteString(Styles.Normal.Inherit(wrap).Render(line) + "\n")
	}
	b.WriteString("\n" + Styles.Hint.Render("r/enter: take test again  esc: home"))
	return b.String()
}

