package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"ssbprep/internal/prompt"
	"ssbprep/internal/session"
)

// RunRecorder receives every finished run, e.g. to export it as a trace span.
type RunRecorder interface {
	RecordRun(ctx context.Context, r session.Recap, setting int)
}

// Deps carries what the screens need from the outside world.
type Deps struct {
	WordOptions      []session.Option // applied to every new WAT runner
	SituationOptions []session.Option // applied to every new SRT runner
	Copier           prompt.Copier
	Recorder         RunRecorder // optional
	Logger           *zap.Logger // optional; nop when nil
	Fullscreen       bool        // runs use the alternate screen
	Now              func() time.Time
}

// chromeHeight is the number of lines taken by the header and footer.
const chromeHeight = 5

// AppModel is the root model: a shell with header and footer around one
// screen per AppMode, plus modal overlays and leader-key bindings.
type AppModel struct {
	Mode       AppMode
	Home       *HomeView
	Word       *WordTestView
	Situation  *SituationTestView
	Overlays   OverlayStack
	KeyHandler *KeyHandler

	deps   Deps
	log    *zap.Logger
	width  int
	height int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model showing start.
func NewAppModel(deps Deps, start AppMode) *AppModel {
	if deps.Copier == nil {
		deps.Copier = prompt.SystemClipboard{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	reg := NewKeybindRegistry()
	reg.Bind("SPC h", navigateCmd(ModeHome), "Home")
	reg.Bind("SPC w", navigateCmd(ModeWordTest), "WAT test")
	reg.Bind("SPC s", navigateCmd(ModeSituationTest), "SRT test")
	reg.Bind("SPC q", func() tea.Msg { return QuitMsg{} }, "Quit")

	m := &AppModel{
		KeyHandler: NewKeyHandler(reg),
		deps:       deps,
		log:        log,
		width:      80,
		height:     24,
	}
	m.navigate(start)
	return m
}

func navigateCmd(mode AppMode) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Mode: mode} }
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// navigate replaces the current screen with a fresh one for mode.
// Test screens never survive navigation, so a new visit starts from defaults.
func (m *AppModel) navigate(mode AppMode) tea.Cmd {
	m.Mode = mode
	m.Home, m.Word, m.Situation = nil, nil, nil
	var v View
	switch mode {
	case ModeWordTest:
		m.Word = NewWordTestView(session.NewWordTest(m.deps.WordOptions...), m.deps.Copier, m.deps.Fullscreen)
		v = m.Word
	case ModeSituationTest:
		m.Situation = NewSituationTestView(session.NewSituationTest(m.deps.SituationOptions...), m.deps.Copier, m.deps.Fullscreen)
		v = m.Situation
	default:
		m.Mode = ModeHome
		m.Home = NewHomeView()
		v = m.Home
	}
	v.Update(m.bodySize())
	m.log.Debug("navigate", zap.Stringer("mode", m.Mode))
	return v.Init()
}

func (m *AppModel) bodySize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: m.width, Height: max(m.height-chromeHeight, 1)}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.currentView().Init()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		v, cmd := a.currentView().Update(a.bodySize())
		a.setCurrentView(v)
		return a, cmd

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case NavigateMsg:
		if msg.Mode == a.Mode {
			return a, nil
		}
		if a.testRunning() {
			a.KeyHandler.Cancel()
			a.Overlays.Push(NewLeaveTestConfirmModal(msg.Mode))
			return a, nil
		}
		return a, a.navigate(msg.Mode)

	case navigateConfirmedMsg:
		a.Overlays.Clear()
		return a, tea.Batch(tea.ExitAltScreen, a.navigate(msg.Mode))

	case QuitMsg:
		if a.testRunning() {
			a.Overlays.Push(NewQuitConfirmModal())
			return a, nil
		}
		return a, tea.Quit

	case ShowConfirmMsg:
		if msg.Modal != nil {
			a.Overlays.Push(msg.Modal)
		}
		return a, nil

	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil

	case EndTestMsg:
		a.Overlays.Pop()

	case runStartedMsg:
		a.log.Info("test started",
			zap.String("kind", string(msg.Kind)),
			zap.Uint64("run_id", msg.RunID),
			zap.Int("items", msg.Items),
			zap.Int("setting", msg.Setting),
		)
		return a, nil

	case RunCompletedMsg:
		a.recordRun(msg)
		return a, nil

	case situationsParsedMsg:
		if msg.Err != nil {
			a.log.Info("situation JSON rejected", zap.Error(msg.Err))
		} else {
			a.log.Info("situations parsed", zap.Int("count", msg.Count))
		}
		return a, nil

	case testResetMsg:
		a.log.Debug("test reset", zap.String("kind", string(msg.Kind)))
		return a, nil
	}

	v, cmd := a.currentView().Update(msg)
	a.setCurrentView(v)
	return a, cmd
}

// handleKey routes a key press: ctrl+c, then the top overlay, then a focused
// text field, then leader bindings, then app navigation, then the screen.
func (a *appModelAdapter) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if a.Overlays.Len() > 0 {
		cmd, _ := a.Overlays.UpdateTop(msg)
		return cmd
	}

	current := a.currentView()
	if c, ok := current.(inputCapturer); !ok || !c.CapturesInput() {
		if consumed, cmd := a.KeyHandler.Handle(msg, a.Mode); consumed {
			return cmd
		}
		if msg.String() == "esc" && a.Mode != ModeHome && !a.testRunning() {
			return a.navigate(ModeHome)
		}
	}

	v, cmd := current.Update(msg)
	a.setCurrentView(v)
	return cmd
}

func (a *AppModel) recordRun(msg RunCompletedMsg) {
	r := msg.Recap
	a.log.Info("test complete",
		zap.String("kind", string(r.Kind)),
		zap.Int("items", len(r.Items)),
		zap.Int("seen", r.Seen),
		zap.Bool("ended_early", r.EndedEarly),
		zap.Duration("elapsed", r.Elapsed()),
		zap.Int("setting", msg.Setting),
	)
	if a.deps.Recorder != nil {
		a.deps.Recorder.RecordRun(context.Background(), r, msg.Setting)
	}
}

// testRunning reports whether the current screen has a test in progress.
func (a *AppModel) testRunning() bool {
	if r, ok := a.currentView().(runningView); ok {
		return r.Running()
	}
	return false
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	bodyHeight := max(a.height-chromeHeight, 1)
	body := a.currentView().View()
	if top, ok := a.Overlays.Peek(); ok {
		body = lipgloss.Place(a.width, bodyHeight, lipgloss.Center, lipgloss.Center, top.View())
	}

	var b strings.Builder
	b.WriteString(a.renderHeader() + "\n\n")
	b.WriteString(body)
	if a.KeyHandler.LeaderWaiting {
		b.WriteString("\n" + RenderKeybindHelp(a.KeyHandler, a.Mode))
	}
	b.WriteString("\n\n" + a.renderFooter())
	return b.String()
}

func (a *AppModel) renderHeader() string {
	tabs := make([]string, 0, 3)
	for _, mode := range []AppMode{ModeHome, ModeWordTest, ModeSituationTest} {
		if mode == a.Mode {
			tabs = append(tabs, Styles.Selected.Render(mode.String()))
		} else {
			tabs = append(tabs, Styles.Muted.Render(mode.String()))
		}
	}
	left := Styles.Brand.Render("SSB Interview Prep") + "   " + strings.Join(tabs, Styles.Muted.Render(" │ "))
	right := Styles.Hint.Render("SPC: commands")
	gap := max(a.width-lipgloss.Width(left)-lipgloss.Width(right), 2)
	return left + strings.Repeat(" ", gap) + right
}

func (a *AppModel) renderFooter() string {
	return Styles.Footer.Render(fmt.Sprintf("© %d SSB Interview Preparation. All rights reserved.", a.deps.Now().Year()))
}

func (a *AppModel) currentView() View {
	switch a.Mode {
	case ModeWordTest:
		if a.Word != nil {
			return a.Word
		}
	case ModeSituationTest:
		if a.Situation != nil {
			return a.Situation
		}
	default:
		if a.Home != nil {
			return a.Home
		}
	}
	a.navigate(a.Mode)
	return a.currentView()
}

func (a *AppModel) setCurrentView(v View) {
	switch v := v.(type) {
	case *HomeView:
		a.Home = v
	case *WordTestView:
		a.Word = v
	case *SituationTestView:
		a.Situation = v
	}
}
