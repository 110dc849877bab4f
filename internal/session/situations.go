package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	DefaultTotalMinutes = 5
	MinTotalMinutes     = 1
	MaxTotalMinutes     = 60
)

// Validation errors for pasted situation JSON. Messages are shown to the user as-is.
var (
	ErrEmptyInput        = errors.New("Please enter JSON data")
	ErrInvalidJSON       = errors.New("Invalid JSON format. Please check your input.")
	ErrNotArray          = errors.New("JSON data must be an array of strings")
	ErrNonStringItem     = errors.New("All items in the array must be strings")
	ErrNoValidSituations = errors.New("No valid situations found in the JSON data")

	// ErrNoSituations is returned by Start when nothing has been parsed yet.
	ErrNoSituations = errors.New("Please add situations from JSON data before starting the test.")
)

// SampleSituations is offered through LoadSample as a starting point.
var SampleSituations = []string{
	"You see a senior citizen struggling to cross a busy road.",
	"You find a wallet with cash and ID cards on the street.",
	"Your friend asks you to help them cheat on an important exam.",
	"You witness a colleague taking credit for your work during a meeting.",
	"You notice your subordinate is frequently late but works efficiently.",
}

// ParseSituationJSON validates a JSON array of strings and returns its
// non-blank entries. Checks run in a fixed order so the first failing one
// names the problem.
func ParseSituationJSON(input string) ([]string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, ErrEmptyInput
	}
	if !gjson.Valid(trimmed) {
		return nil, ErrInvalidJSON
	}
	doc := gjson.Parse(trimmed)
	if !doc.IsArray() {
		return nil, ErrNotArray
	}

	var out []string
	allStrings := true
	doc.ForEach(func(_, item gjson.Result) bool {
		if item.Type != gjson.String {
			allStrings = false
			return false
		}
		if s := item.String(); strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
		return true
	})
	if !allStrings {
		return nil, ErrNonStringItem
	}
	if len(out) == 0 {
		return nil, ErrNoValidSituations
	}
	return out, nil
}

// FormatClock renders seconds as M:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// SituationTest is the situation reaction runner. The user pages through the
// situations at their own pace against a single countdown for the whole test.
type SituationTest struct {
	opts options

	base         []string // situations restored by Reset
	situations   []string
	input        string
	parseErr     error
	defaultMins  int
	totalMinutes int

	phase     Phase
	runID     uint64
	index     int
	remaining int
	ended     bool
	started   time.Time
	finished  time.Time
}

// NewSituationTest returns an idle runner. Situations supplied through
// WithSituations are loaded as if they had been parsed.
func NewSituationTest(opts ...Option) *SituationTest {
	o := buildOptions(opts)
	m := clamp(o.totalMinutes, MinTotalMinutes, MaxTotalMinutes)
	base := append([]string(nil), o.situations...)
	return &SituationTest{
		opts:         o,
		base:         base,
		situations:   base,
		defaultMins:  m,
		totalMinutes: m,
		phase:        PhaseIdle,
	}
}

// Configure moves an idle runner to the configuring phase.
func (s *SituationTest) Configure() {
	if s.phase == PhaseIdle {
		s.phase = PhaseConfiguring
	}
}

// SetInput records the raw JSON text.
func (s *SituationTest) SetInput(input string) { s.input = input }

// Input returns the raw JSON text.
func (s *SituationTest) Input() string { return s.input }

// Parse validates the recorded input. On success it replaces the situation
// list and clears any previous error; on failure the list is kept and the
// error is remembered for display.
func (s *SituationTest) Parse() error {
	situations, err := ParseSituationJSON(s.input)
	if err != nil {
		s.parseErr = err
		return err
	}
	s.situations = situations
	s.parseErr = nil
	return nil
}

// ParseSituations is SetInput followed by Parse.
func (s *SituationTest) ParseSituations(input string) error {
	s.SetInput(input)
	return s.Parse()
}

// ParseError returns the error from the last Parse, if any.
func (s *SituationTest) ParseError() error { return s.parseErr }

// LoadSample fills the input with the sample situations as indented JSON and
// returns the text. The situation list is untouched until Parse.
func (s *SituationTest) LoadSample() string {
	b, err := json.MarshalIndent(SampleSituations, "", "  ")
	if err != nil {
		return ""
	}
	s.input = string(b)
	return s.input
}

// SetTotalMinutes parses a minutes value: zero or garbage becomes the
// minimum and the result is clamped to [MinTotalMinutes, MaxTotalMinutes].
func (s *SituationTest) SetTotalMinutes(raw string) int {
	n, ok := parseLeadingInt(raw)
	if !ok || n == 0 {
		n = MinTotalMinutes
	}
	s.totalMinutes = clamp(n, MinTotalMinutes, MaxTotalMinutes)
	return s.totalMinutes
}

// TotalMinutes returns the configured test length.
func (s *SituationTest) TotalMinutes() int { return s.totalMinutes }

// Start begins the whole-test countdown at the first situation.
func (s *SituationTest) Start() (uint64, error) {
	if s.phase == PhaseRunning {
		return s.runID, ErrAlreadyRunning
	}
	if len(s.situations) == 0 {
		return 0, ErrNoSituations
	}
	s.runID = nextRunID()
	s.phase = PhaseRunning
	s.index = 0
	s.remaining = s.totalMinutes * 60
	s.ended = false
	s.started = s.opts.now()
	s.finished = time.Time{}
	return s.runID, nil
}

// Tick advances the countdown by one second and completes the test when it
// reaches zero. It reports whether the caller should keep ticking for runID.
func (s *SituationTest) Tick(runID uint64) bool {
	if s.phase != PhaseRunning || runID != s.runID {
		return false
	}
	if s.remaining <= 1 {
		s.remaining = 0
		s.complete(false)
		return false
	}
	s.remaining--
	return true
}

// Next moves to the following situation, completing the test after the last.
func (s *SituationTest) Next() {
	if s.phase != PhaseRunning {
		return
	}
	if s.index < len(s.situations)-1 {
		s.index++
		return
	}
	s.complete(false)
}

// Previous moves back one situation. It is a no-op on the first.
func (s *SituationTest) Previous() {
	if s.phase == PhaseRunning && s.index > 0 {
		s.index--
	}
}

// EndEarly stops the countdown and shows the recap.
func (s *SituationTest) EndEarly() {
	if s.phase == PhaseRunning {
		s.complete(true)
	}
}

func (s *SituationTest) complete(early bool) {
	s.phase = PhaseComplete
	s.ended = early
	s.finished = s.opts.now()
}

// Reset clears the input, drops parsed situations in favour of any preloaded
// ones and restores the default duration.
func (s *SituationTest) Reset() {
	s.phase = PhaseConfiguring
	s.situations = s.base
	s.input = ""
	s.parseErr = nil
	s.index = 0
	s.remaining = 0
	s.ended = false
	s.totalMinutes = s.defaultMins
}

// Phase returns the runner's lifecycle stage.
func (s *SituationTest) Phase() Phase { return s.phase }

// RunID identifies the current or most recent run.
func (s *SituationTest) RunID() uint64 { return s.runID }

// Situations returns the loaded situations.
func (s *SituationTest) Situations() []string { return s.situations }

// Current returns the situation on screen, or "" when not running.
func (s *SituationTest) Current() string {
	if s.phase != PhaseRunning || s.index >= len(s.situations) {
		return ""
	}
	return s.situations[s.index]
}

// Index is the zero-based position of the current situation.
func (s *SituationTest) Index() int { return s.index }

// Position returns the 1-based situation number and the total.
func (s *SituationTest) Position() (int, int) { return s.index + 1, len(s.situations) }

// Remaining returns the seconds left for the whole test.
func (s *SituationTest) Remaining() int { return s.remaining }

// Recap summarises the last completed run. Every situation is listed so the
// user can review the ones they did not reach.
func (s *SituationTest) Recap() Recap {
	seen := len(s.situations)
	if s.ended || s.remaining == 0 {
		seen = s.index + 1
	}
	return Recap{
		Kind:       KindSRT,
		Items:      append([]string(nil), s.situations...),
		Seen:       seen,
		Started:    s.started,
		Finished:   s.finished,
		EndedEarly: s.ended,
	}
}
