package ui

import (
	"strings"
	"testing"
)

func TestHomeView_ListsBothTests(t *testing.T) {
	h := NewHomeView()
	out := h.View()
	for _, want := range []string{"Word Association Test (WAT)", "Situation Reaction Test (SRT)", "SSB"} {
		if !strings.Contains(out, want) {
			t.Errorf("home view missing %q", want)
		}
	}
	if h.Selected() != ModeWordTest {
		t.Errorf("Selected() = %v, want WAT first", h.Selected())
	}
}

func TestHomeView_EnterOpensSelectedTest(t *testing.T) {
	h := NewHomeView()

	_, cmd := h.Update(keyMsg("enter"))
	nav, ok := findMsg[NavigateMsg](drain(cmd))
	if !ok || nav.Mode != ModeWordTest {
		t.Fatalf("enter on first entry: got %+v ok=%v", nav, ok)
	}

	h.Update(keyMsg("down"))
	if h.Selected() != ModeSituationTest {
		t.Fatalf("after down Selected() = %v", h.Selected())
	}
	_, cmd = h.Update(keyMsg("enter"))
	nav, _ = findMsg[NavigateMsg](drain(cmd))
	if nav.Mode != ModeSituationTest {
		t.Errorf("enter on second entry navigated to %v", nav.Mode)
	}
}

func TestHomeView_Shortcuts(t *testing.T) {
	h := NewHomeView()
	for key, want := range map[string]AppMode{"w": ModeWordTest, "s": ModeSituationTest} {
		_, cmd := h.Update(keyMsg(key))
		nav, ok := findMsg[NavigateMsg](drain(cmd))
		if !ok || nav.Mode != want {
			t.Errorf("%s: got %+v ok=%v, want %v", key, nav, ok, want)
		}
	}
}
