package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() Option {
	return WithRand(rand.New(rand.NewSource(42)))
}

func TestParseWords(t *testing.T) {
	got := ParseWords("Ocean, Mountain\nDesert   Forest,,River\t")
	assert.Equal(t, []string{"Ocean", "Mountain", "Desert", "Forest", "River"}, got)

	assert.Empty(t, ParseWords(" ,\n, "))
}

func TestNewWordTest_Defaults(t *testing.T) {
	w := NewWordTest(seeded())

	assert.Equal(t, PhaseIdle, w.Phase())
	assert.Equal(t, DefaultTimePerWord, w.TimePerWord())
	assert.Equal(t, DefaultWords, w.Pool())
	assert.Equal(t, "", w.Current())

	w.Configure()
	assert.Equal(t, PhaseConfiguring, w.Phase())
}

func TestWordTest_SetTimePerWord(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"30", 30},
		{" 7 ", 7},
		{"12s", 12},
		{"0", DefaultTimePerWord},
		{"abc", DefaultTimePerWord},
		{"", DefaultTimePerWord},
		{"-5", MinTimePerWord},
		{"90", MaxTimePerWord},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			w := NewWordTest(seeded())
			assert.Equal(t, tt.want, w.SetTimePerWord(tt.raw))
			assert.Equal(t, tt.want, w.TimePerWord())
		})
	}
}

func TestWordTest_StartSamplesFromPool(t *testing.T) {
	w := NewWordTest(seeded())
	w.Configure()

	id, err := w.Start()
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, PhaseRunning, w.Phase())
	assert.Len(t, w.Words(), DefaultSampleSize)
	assert.Subset(t, DefaultWords, w.Words())

	seen := map[string]bool{}
	for _, word := range w.Words() {
		assert.False(t, seen[word], "duplicate word %q", word)
		seen[word] = true
	}

	pos, total := w.Position()
	assert.Equal(t, 1, pos)
	assert.Equal(t, DefaultSampleSize, total)
	assert.Equal(t, w.Words()[0], w.Current())
	assert.Equal(t, DefaultTimePerWord, w.Remaining())
}

func TestWordTest_StartTwiceFails(t *testing.T) {
	w := NewWordTest(seeded())
	id, err := w.Start()
	require.NoError(t, err)

	again, err := w.Start()
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.Equal(t, id, again)
}

func TestWordTest_CustomWords(t *testing.T) {
	w := NewWordTest(seeded())
	w.SetCustomInput("alpha, beta\ngamma")

	_, err := w.Start()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alpha", "beta", "gamma"}, w.Words())
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, w.Pool())
}

func TestWordTest_BlankCustomWordsFallBackToDefaults(t *testing.T) {
	w := NewWordTest(seeded())
	w.SetCustomInput(" , \n ")

	_, err := w.Start()
	require.NoError(t, err)
	assert.Equal(t, DefaultWords, w.Pool())
	assert.Len(t, w.Words(), DefaultSampleSize)
}

func TestWordTest_WithWordsReplacesBasePool(t *testing.T) {
	base := []string{"one", "two", "three"}
	w := NewWordTest(seeded(), WithWords(base), WithSampleSize(2), WithTimePerWord(5))

	assert.Equal(t, base, w.Pool())
	assert.Equal(t, 5, w.TimePerWord())

	_, err := w.Start()
	require.NoError(t, err)
	assert.Len(t, w.Words(), 2)
	assert.Subset(t, base, w.Words())
}

func TestWordTest_TickCountsDownAndAdvances(t *testing.T) {
	w := NewWordTest(seeded())
	w.SetTimePerWord("3")
	id, err := w.Start()
	require.NoError(t, err)

	assert.True(t, w.Tick(id))
	assert.Equal(t, 2, w.Remaining())
	assert.True(t, w.Tick(id))
	assert.Equal(t, 1, w.Remaining())
	assert.Equal(t, 0, w.Index())

	// Expiring tick moves on and refills the countdown.
	assert.True(t, w.Tick(id))
	assert.Equal(t, 1, w.Index())
	assert.Equal(t, 3, w.Remaining())
	assert.Equal(t, w.Words()[1], w.Current())
}

func TestWordTest_RunsToCompletion(t *testing.T) {
	w := NewWordTest(seeded())
	w.SetCustomInput("a b")
	w.SetTimePerWord("1")
	id, err := w.Start()
	require.NoError(t, err)

	assert.True(t, w.Tick(id))
	assert.Equal(t, 1, w.Index())
	assert.False(t, w.Tick(id))
	assert.Equal(t, PhaseComplete, w.Phase())
	assert.Equal(t, "", w.Current())

	// Further ticks are ignored.
	assert.False(t, w.Tick(id))

	r := w.Recap()
	assert.Equal(t, KindWAT, r.Kind)
	assert.ElementsMatch(t, []string{"a", "b"}, r.Items)
	assert.Equal(t, 2, r.Seen)
	assert.False(t, r.EndedEarly)
}

func TestWordTest_StaleTicksIgnored(t *testing.T) {
	w := NewWordTest(seeded())
	old, err := w.Start()
	require.NoError(t, err)
	w.EndEarly()
	w.Reset()

	current, err := w.Start()
	require.NoError(t, err)
	require.NotEqual(t, old, current)

	before := w.Remaining()
	assert.False(t, w.Tick(old))
	assert.Equal(t, before, w.Remaining())
	assert.True(t, w.Tick(current))
	assert.Equal(t, before-1, w.Remaining())
}

func TestWordTest_AdvanceManually(t *testing.T) {
	w := NewWordTest(seeded())
	w.SetCustomInput("x y")
	_, err := w.Start()
	require.NoError(t, err)

	w.Advance()
	assert.Equal(t, 1, w.Index())
	w.Advance()
	assert.Equal(t, PhaseComplete, w.Phase())

	// No-op outside a run.
	w.Advance()
	assert.Equal(t, PhaseComplete, w.Phase())
}

func TestWordTest_Urgent(t *testing.T) {
	w := NewWordTest(seeded())
	id, err := w.Start()
	require.NoError(t, err)

	assert.False(t, w.Urgent())
	for w.Remaining() > 6 {
		w.Tick(id)
	}
	assert.False(t, w.Urgent())
	w.Tick(id)
	assert.Equal(t, 5, w.Remaining())
	assert.True(t, w.Urgent())

	// Short timers use a third of the duration as the threshold.
	w2 := NewWordTest(seeded())
	w2.SetTimePerWord("6")
	id2, err := w2.Start()
	require.NoError(t, err)
	w2.Tick(id2)
	w2.Tick(id2)
	w2.Tick(id2)
	assert.Equal(t, 3, w2.Remaining())
	assert.False(t, w2.Urgent())
	w2.Tick(id2)
	assert.True(t, w2.Urgent())
}

func TestWordTest_Fraction(t *testing.T) {
	w := NewWordTest(seeded())
	w.SetTimePerWord("4")
	id, err := w.Start()
	require.NoError(t, err)

	assert.InDelta(t, 1.0, w.Fraction(), 1e-9)
	w.Tick(id)
	assert.InDelta(t, 0.75, w.Fraction(), 1e-9)
}

func TestWordTest_EndEarlyRecap(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	now := start
	w := NewWordTest(seeded(), WithClock(func() time.Time { return now }))
	_, err := w.Start()
	require.NoError(t, err)

	w.Advance()
	w.Advance()
	now = start.Add(42 * time.Second)
	w.EndEarly()

	r := w.Recap()
	assert.Equal(t, PhaseComplete, w.Phase())
	assert.True(t, r.EndedEarly)
	assert.Equal(t, 3, r.Seen)
	assert.Len(t, r.Items, DefaultSampleSize)
	assert.Equal(t, 42*time.Second, r.Elapsed())
}

func TestWordTest_Reset(t *testing.T) {
	w := NewWordTest(seeded())
	w.SetCustomInput("p q r")
	w.SetTimePerWord("40")
	_, err := w.Start()
	require.NoError(t, err)
	w.EndEarly()

	w.Reset()
	assert.Equal(t, PhaseConfiguring, w.Phase())
	assert.Equal(t, "", w.CustomInput())
	assert.Equal(t, DefaultTimePerWord, w.TimePerWord())
	assert.Equal(t, DefaultWords, w.Pool())
	assert.Equal(t, -1, w.Index())
}

func TestWordTest_SeededShuffleIsDeterministic(t *testing.T) {
	a := NewWordTest(WithRand(rand.New(rand.NewSource(7))))
	b := NewWordTest(WithRand(rand.New(rand.NewSource(7))))
	_, err := a.Start()
	require.NoError(t, err)
	_, err = b.Start()
	require.NoError(t, err)

	assert.Equal(t, a.Words(), b.Words())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "configuring", PhaseConfiguring.String())
	assert.Equal(t, "running", PhaseRunning.String())
	assert.Equal(t, "complete", PhaseComplete.String())
	assert.Equal(t, "unknown", Phase(99).String())
}
