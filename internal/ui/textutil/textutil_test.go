package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"fits", "Money", 10, "Money"},
		{"exact", "Money", 5, "Money"},
		{"cut", "Leadership", 6, "Leade…"},
		{"zero width", "Duty", 0, ""},
		{"wide runes", "勇気と規律", 5, "勇気…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, Width(got), max(tt.max, 0))
		})
	}
}

func TestHead(t *testing.T) {
	text := "first line\nsecond line that is rather long\nthird\nfourth"

	got := Head(text, 2, 12)
	assert.Equal(t, "first line\nsecond line…\n"+Ellipsis, got)

	all := Head(text, 10, 100)
	assert.Equal(t, text, all)
	assert.Equal(t, 4, strings.Count(all, "\n")+1)
}
