package session

import (
	"math/rand"
	"time"
)

type options struct {
	rng          *rand.Rand
	now          func() time.Time
	sampleSize   int
	words        []string
	timePerWord  int
	situations   []string
	totalMinutes int
}

// Option configures a runner.
type Option func(*options)

// WithRand sets the source used to shuffle words. Tests pass a seeded source.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// WithClock overrides time.Now for recap timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithSampleSize sets how many words a WAT run presents.
func WithSampleSize(n int) Option {
	return func(o *options) { o.sampleSize = n }
}

// WithWords replaces the built-in default word pool. Reset returns to this
// pool rather than the built-in one. An empty slice keeps the built-in pool.
func WithWords(words []string) Option {
	return func(o *options) { o.words = words }
}

// WithTimePerWord sets the default seconds per word, clamped to the valid range.
func WithTimePerWord(seconds int) Option {
	return func(o *options) { o.timePerWord = seconds }
}

// WithSituations preloads the situation list of an SRT runner.
func WithSituations(situations []string) Option {
	return func(o *options) { o.situations = situations }
}

// WithTotalMinutes sets the default SRT duration, clamped to the valid range.
func WithTotalMinutes(minutes int) Option {
	return func(o *options) { o.totalMinutes = minutes }
}

func buildOptions(opts []Option) options {
	o := options{
		now:          time.Now,
		sampleSize:   DefaultSampleSize,
		timePerWord:  DefaultTimePerWord,
		totalMinutes: DefaultTotalMinutes,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.sampleSize <= 0 {
		o.sampleSize = DefaultSampleSize
	}
	return o
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
