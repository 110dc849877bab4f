package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"ssbprep/internal/session"
)

type fakeRecorder struct {
	runs     []session.Recap
	settings []int
}

func (f *fakeRecorder) RecordRun(_ context.Context, r session.Recap, setting int) {
	f.runs = append(f.runs, r)
	f.settings = append(f.settings, setting)
}

func newTestApp(t *testing.T, start AppMode) (*appModelAdapter, *fakeRecorder, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	rec := &fakeRecorder{}
	m := NewAppModel(Deps{
		SituationOptions: []session.Option{session.WithSituations([]string{"S1", "S2"})},
		Copier:           &fakeCopier{},
		Recorder:         rec,
		Logger:           zap.New(core),
		Now:              func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) },
	}, start)
	a := &appModelAdapter{AppModel: m}
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return a, rec, logs
}

// send feeds msg to the app and then every message its command produces,
// one level deep, so leader bindings and modals resolve.
func send(a *appModelAdapter, msg tea.Msg) []tea.Msg {
	_, cmd := a.Update(msg)
	msgs := drain(cmd)
	for _, m := range msgs {
		switch m.(type) {
		case NavigateMsg, navigateConfirmedMsg, QuitMsg, ShowConfirmMsg, DismissModalMsg, EndTestMsg,
			RunCompletedMsg, runStartedMsg, situationsParsedMsg, testResetMsg:
			a.Update(m)
		}
	}
	return msgs
}

func TestApp_StartsOnRequestedScreen(t *testing.T) {
	a, _, _ := newTestApp(t, ModeSituationTest)
	assert.Equal(t, ModeSituationTest, a.Mode)
	require.NotNil(t, a.Situation)
	assert.Contains(t, a.View(), "Situation Reaction Test (SRT)")
}

func TestApp_ChromeRendered(t *testing.T) {
	a, _, _ := newTestApp(t, ModeHome)
	out := a.View()
	assert.Contains(t, out, "SSB Interview Prep")
	assert.Contains(t, out, "© 2026 SSB Interview Preparation. All rights reserved.")
}

func TestApp_LeaderNavigation(t *testing.T) {
	a, _, _ := newTestApp(t, ModeHome)

	send(a, keyMsg(" "))
	assert.True(t, a.KeyHandler.LeaderWaiting)
	assert.Contains(t, a.View(), "WAT test", "leader help is shown")

	send(a, keyMsg("w"))
	assert.Equal(t, ModeWordTest, a.Mode)
	assert.NotNil(t, a.Word)
	assert.Nil(t, a.Home)

	send(a, keyMsg(" "))
	send(a, keyMsg("s"))
	assert.Equal(t, ModeSituationTest, a.Mode)

	send(a, keyMsg(" "))
	send(a, keyMsg("h"))
	assert.Equal(t, ModeHome, a.Mode)
}

func TestApp_EnterFromHome(t *testing.T) {
	a, _, _ := newTestApp(t, ModeHome)
	send(a, keyMsg("down"))
	send(a, keyMsg("enter"))
	assert.Equal(t, ModeSituationTest, a.Mode)
}

func TestApp_EscReturnsHomeFromConfig(t *testing.T) {
	a, _, _ := newTestApp(t, ModeWordTest)
	send(a, keyMsg("esc"))
	assert.Equal(t, ModeHome, a.Mode)
}

func TestApp_FocusedFieldBypassesLeader(t *testing.T) {
	a, _, _ := newTestApp(t, ModeWordTest)

	send(a, keyMsg("tab"))
	require.True(t, a.Word.CapturesInput())

	send(a, keyMsg(" "))
	assert.False(t, a.KeyHandler.LeaderWaiting, "space is typed into the field")

	// esc leaves the field, a second esc leaves the screen
	send(a, keyMsg("esc"))
	assert.Equal(t, ModeWordTest, a.Mode)
	send(a, keyMsg("esc"))
	assert.Equal(t, ModeHome, a.Mode)
}

func TestApp_LeavingRunningTestAsks(t *testing.T) {
	a, _, _ := newTestApp(t, ModeWordTest)
	send(a, keyMsg("ctrl+s"))
	require.True(t, a.Word.Running())

	send(a, keyMsg("esc"))
	assert.Equal(t, ModeWordTest, a.Mode, "esc during a run does not navigate")

	send(a, keyMsg(" "))
	send(a, keyMsg("h"))
	assert.Equal(t, ModeWordTest, a.Mode)
	require.Equal(t, 1, a.Overlays.Len())
	assert.Contains(t, a.View(), "Leave test?")

	send(a, keyMsg("n"))
	assert.Equal(t, 0, a.Overlays.Len())
	assert.True(t, a.Word.Running())

	send(a, keyMsg(" "))
	send(a, keyMsg("h"))
	msgs := send(a, keyMsg("y"))
	_, ok := findMsg[navigateConfirmedMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, ModeHome, a.Mode)
	assert.Equal(t, 0, a.Overlays.Len())
}

func TestApp_QuitAsksDuringRun(t *testing.T) {
	a, _, _ := newTestApp(t, ModeHome)
	msgs := send(a, QuitMsg{})
	assert.True(t, hasMsg(msgs, tea.Quit()), "idle app quits at once")

	a, _, _ = newTestApp(t, ModeSituationTest)
	send(a, keyMsg("ctrl+s"))
	require.True(t, a.Situation.Running())

	send(a, QuitMsg{})
	require.Equal(t, 1, a.Overlays.Len())
	assert.Contains(t, a.View(), "Quit?")
}

func TestApp_CtrlCAlwaysQuits(t *testing.T) {
	a, _, _ := newTestApp(t, ModeWordTest)
	send(a, keyMsg("tab"))
	msgs := send(a, keyMsg("ctrl+c"))
	assert.True(t, hasMsg(msgs, tea.Quit()))
}

func TestApp_EndTestRecordsRun(t *testing.T) {
	a, rec, logs := newTestApp(t, ModeSituationTest)
	send(a, keyMsg("ctrl+s"))
	require.True(t, a.Situation.Running())
	assert.Equal(t, 1, logs.FilterMessage("test started").Len())

	send(a, keyMsg("e"))
	require.Equal(t, 1, a.Overlays.Len())

	msgs := send(a, keyMsg("y"))
	end, ok := findMsg[EndTestMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, session.KindSRT, end.Kind)
	assert.Equal(t, 0, a.Overlays.Len())
	assert.Equal(t, session.PhaseComplete, a.Situation.Test().Phase())

	// RunCompletedMsg is produced by the view's command after EndTestMsg.
	_, cmd := a.Update(RunCompletedMsg{Recap: a.Situation.Test().Recap(), Setting: 5})
	assert.Nil(t, cmd)
	require.NotEmpty(t, rec.runs)
	last := rec.runs[len(rec.runs)-1]
	assert.Equal(t, session.KindSRT, last.Kind)
	assert.True(t, last.EndedEarly)
	assert.Equal(t, 5, rec.settings[len(rec.settings)-1])

	entries := logs.FilterMessage("test complete").All()
	require.NotEmpty(t, entries)
	assert.Equal(t, "srt", entries[0].ContextMap()["kind"])
}

func TestApp_TicksReachOnlyTheirRun(t *testing.T) {
	a, _, _ := newTestApp(t, ModeWordTest)
	send(a, keyMsg("ctrl+s"))
	oldRun := a.Word.Test().RunID()

	send(a, keyMsg(" "))
	send(a, keyMsg("h"))
	send(a, keyMsg("y"))
	require.Equal(t, ModeHome, a.Mode)
	send(a, keyMsg(" "))
	send(a, keyMsg("w"))
	require.Equal(t, ModeWordTest, a.Mode)
	send(a, keyMsg("ctrl+s"))
	require.NotEqual(t, oldRun, a.Word.Test().RunID())
	before := a.Word.Test().Remaining()

	_, cmd := a.Update(tickMsg{Kind: session.KindWAT, RunID: oldRun})
	assert.Nil(t, cmd)
	assert.Equal(t, before, a.Word.Test().Remaining())
}

func TestApp_ViewShowsOverlayInsteadOfBody(t *testing.T) {
	a, _, _ := newTestApp(t, ModeWordTest)
	send(a, ShowConfirmMsg{Modal: NewConfirmModal("Sure?", "Really.", nil)})
	out := a.View()
	assert.True(t, strings.Contains(out, "Sure?"))
	assert.NotContains(t, out, "Seconds per word")

	send(a, DismissModalMsg{})
	assert.Contains(t, a.View(), "Seconds per word")
}

func TestApp_LogsSituationParsing(t *testing.T) {
	a, _, logs := newTestApp(t, ModeSituationTest)

	a.Situation.input.SetValue("not json")
	send(a, keyMsg("ctrl+p"))
	rejected := logs.FilterMessage("situation JSON rejected").All()
	require.Len(t, rejected, 1)
	assert.Contains(t, rejected[0].ContextMap()["error"], "Invalid JSON format")

	a.Situation.input.SetValue(`["one", "two", "three"]`)
	send(a, keyMsg("ctrl+p"))
	parsed := logs.FilterMessage("situations parsed").All()
	require.Len(t, parsed, 1)
	assert.EqualValues(t, 3, parsed[0].ContextMap()["count"])
}
