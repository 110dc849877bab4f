package session

import (
	"strings"
	"time"
	"unicode"
)

const (
	DefaultTimePerWord = 15
	MinTimePerWord     = 1
	MaxTimePerWord     = 60
	DefaultSampleSize  = 10
)

// DefaultWords is the fallback pool when no custom words are supplied.
var DefaultWords = []string{
	"Money", "Power", "Family", "Duty", "Leadership",
	"Challenge", "Conflict", "Success", "Failure", "Respect",
	"Honor", "Courage", "Discipline", "Loyalty", "Integrity",
}

// ParseWords splits free-form input on runs of commas and whitespace.
// Empty fragments are dropped.
func ParseWords(input string) []string {
	return strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// WordTest is the word association runner. Each word is shown for a fixed
// number of seconds and the test advances automatically when it runs out.
type WordTest struct {
	opts options

	basePool    []string // pool restored by Reset
	pool        []string // pool the next run draws from
	customInput string
	words       []string // words of the current or last run
	defaultTime int
	timePerWord int

	phase     Phase
	runID     uint64
	index     int
	remaining int
	ended     bool
	started   time.Time
	finished  time.Time
}

// NewWordTest returns an idle runner over the default pool.
func NewWordTest(opts ...Option) *WordTest {
	o := buildOptions(opts)
	base := DefaultWords
	if len(o.words) > 0 {
		base = append([]string(nil), o.words...)
	}
	t := clamp(o.timePerWord, MinTimePerWord, MaxTimePerWord)
	w := &WordTest{
		opts:        o,
		basePool:    base,
		pool:        base,
		defaultTime: t,
		timePerWord: t,
		phase:       PhaseIdle,
		index:       -1,
	}
	w.words = w.sample()
	return w
}

// Configure moves an idle runner to the configuring phase.
func (w *WordTest) Configure() {
	if w.phase == PhaseIdle {
		w.phase = PhaseConfiguring
	}
}

// SetCustomInput records the raw custom-word text. It is parsed on Start.
func (w *WordTest) SetCustomInput(input string) {
	w.customInput = input
}

// CustomInput returns the raw custom-word text.
func (w *WordTest) CustomInput() string { return w.customInput }

// applyCustomWords resolves the pool for the next run: the parsed custom
// words, or the base pool when the input yields nothing.
func (w *WordTest) applyCustomWords() []string {
	if strings.TrimSpace(w.customInput) != "" {
		if words := ParseWords(w.customInput); len(words) > 0 {
			w.pool = words
			return w.pool
		}
	}
	w.pool = w.basePool
	return w.pool
}

// SetTimePerWord parses a seconds value the way a numeric form field would:
// leading digits are honoured, zero or garbage falls back to the default,
// and the result is clamped to [MinTimePerWord, MaxTimePerWord].
func (w *WordTest) SetTimePerWord(raw string) int {
	n, ok := parseLeadingInt(raw)
	if !ok || n == 0 {
		n = DefaultTimePerWord
	}
	w.timePerWord = clamp(n, MinTimePerWord, MaxTimePerWord)
	return w.timePerWord
}

// TimePerWord returns the configured seconds per word.
func (w *WordTest) TimePerWord() int { return w.timePerWord }

// Start shuffles the pool, picks the run's words and begins the countdown
// for the first one. The returned run ID must accompany every Tick.
func (w *WordTest) Start() (uint64, error) {
	if w.phase == PhaseRunning {
		return w.runID, ErrAlreadyRunning
	}
	w.applyCustomWords()
	w.words = w.sample()
	w.runID = nextRunID()
	w.phase = PhaseRunning
	w.index = 0
	w.remaining = w.timePerWord
	w.ended = false
	w.started = w.opts.now()
	w.finished = time.Time{}
	return w.runID, nil
}

// Tick advances the countdown by one second. It reports whether the caller
// should keep ticking for runID.
func (w *WordTest) Tick(runID uint64) bool {
	if w.phase != PhaseRunning || runID != w.runID {
		return false
	}
	if w.remaining <= 1 {
		w.advance()
	} else {
		w.remaining--
	}
	return w.phase == PhaseRunning
}

// Advance skips to the next word immediately.
func (w *WordTest) Advance() {
	if w.phase == PhaseRunning {
		w.advance()
	}
}

func (w *WordTest) advance() {
	if w.index < len(w.words)-1 {
		w.index++
		w.remaining = w.timePerWord
		return
	}
	w.complete(false)
}

// EndEarly stops a running test and shows the recap for the words seen so far.
func (w *WordTest) EndEarly() {
	if w.phase == PhaseRunning {
		w.complete(true)
	}
}

func (w *WordTest) complete(early bool) {
	w.phase = PhaseComplete
	w.ended = early
	w.finished = w.opts.now()
}

// Reset restores the default configuration and returns to configuring.
func (w *WordTest) Reset() {
	w.phase = PhaseConfiguring
	w.index = -1
	w.remaining = 0
	w.ended = false
	w.customInput = ""
	w.pool = w.basePool
	w.timePerWord = w.defaultTime
	w.words = w.sample()
}

// sample shuffles a copy of the pool and keeps at most sampleSize words.
func (w *WordTest) sample() []string {
	shuffled := append([]string(nil), w.pool...)
	w.opts.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > w.opts.sampleSize {
		shuffled = shuffled[:w.opts.sampleSize]
	}
	return shuffled
}

// Phase returns the runner's lifecycle stage.
func (w *WordTest) Phase() Phase { return w.phase }

// RunID identifies the current or most recent run.
func (w *WordTest) RunID() uint64 { return w.runID }

// Pool returns the words the next run will draw from.
func (w *WordTest) Pool() []string { return w.pool }

// Words returns the words of the current or last run, in presentation order.
func (w *WordTest) Words() []string { return w.words }

// Current returns the word on screen, or "" when not running.
func (w *WordTest) Current() string {
	if w.phase != PhaseRunning || w.index < 0 || w.index >= len(w.words) {
		return ""
	}
	return w.words[w.index]
}

// Index is the zero-based position of the current word.
func (w *WordTest) Index() int { return w.index }

// Position returns the 1-based word number and the run length.
func (w *WordTest) Position() (int, int) { return w.index + 1, len(w.words) }

// Remaining returns the seconds left for the current word.
func (w *WordTest) Remaining() int { return w.remaining }

// Fraction is the share of the current word's time still left, in [0, 1].
func (w *WordTest) Fraction() float64 {
	if w.timePerWord <= 0 {
		return 0
	}
	return float64(w.remaining) / float64(w.timePerWord)
}

// Urgent reports whether the countdown has entered its final stretch:
// min(5, timePerWord/3) seconds or fewer.
func (w *WordTest) Urgent() bool {
	return w.remaining <= min(5, w.timePerWord/3)
}

// Recap summarises the last completed run.
func (w *WordTest) Recap() Recap {
	seen := len(w.words)
	if w.ended {
		seen = w.index + 1
	}
	return Recap{
		Kind:       KindWAT,
		Items:      append([]string(nil), w.words...),
		Seen:       seen,
		Started:    w.started,
		Finished:   w.finished,
		EndedEarly: w.ended,
	}
}
