package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const homeIntro = "The Services Selection Board (SSB) psychology tests assess your " +
	"personality through your spontaneous responses. Practice under real time " +
	"limits with the two tests below."

// testItem is a home-screen entry that opens a test screen.
type testItem struct {
	mode  AppMode
	title string
	desc  string
}

func (t testItem) FilterValue() string { return t.title }
func (t testItem) Title() string       { return t.title }
func (t testItem) Description() string { return t.desc }

// HomeTests are the entries listed on the home screen, in display order.
var HomeTests = []testItem{
	{
		mode:  ModeWordTest,
		title: "Word Association Test (WAT)",
		desc:  "One word at a time, a few seconds each. Write the first sentence that comes to mind.",
	},
	{
		mode:  ModeSituationTest,
		title: "Situation Reaction Test (SRT)",
		desc:  "A batch of situations against one clock. Write how you would react to each.",
	},
}

// HomeView introduces the app and lists the available tests.
type HomeView struct {
	list  list.Model
	width int
}

var _ View = (*HomeView)(nil)

// NewHomeView creates the home screen with the WAT entry selected.
func NewHomeView() *HomeView {
	items := make([]list.Item, len(HomeTests))
	for i, t := range HomeTests {
		items[i] = t
	}
	l := list.New(items, NewTestListDelegate(), 80, 12)
	l.Title = "Practice tests"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = Styles.Title
	return &HomeView{list: l, width: 80}
}

// Selected returns the mode of the highlighted entry.
func (h *HomeView) Selected() AppMode {
	if t, ok := h.list.SelectedItem().(testItem); ok {
		return t.mode
	}
	return ModeHome
}

// Init implements View.
func (h *HomeView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (h *HomeView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.width = msg.Width
		h.list.SetWidth(msg.Width)
		h.list.SetHeight(max(msg.Height-10, 8))
		return h, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			mode := h.Selected()
			return h, func() tea.Msg { return NavigateMsg{Mode: mode} }
		case "w":
			return h, func() tea.Msg { return NavigateMsg{Mode: ModeWordTest} }
		case "s":
			return h, func() tea.Msg { return NavigateMsg{Mode: ModeSituationTest} }
		}
	}
	var cmd tea.Cmd
	h.list, cmd = h.list.Update(msg)
	return h, cmd
}

// View implements View.
func (h *HomeView) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("SSB Psychology Test Practice") + "\n\n")
	b.WriteString(lipgloss.NewStyle().Width(min(h.width, 80)).Render(homeIntro) + "\n\n")
	b.WriteString(h.list.View() + "\n")
	b.WriteString(Styles.Hint.Render("↑/↓: select  enter: open  w: WAT  s: SRT  SPC: commands"))
	return b.String()
}
