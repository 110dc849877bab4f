// Package prompt holds the AI prompts users can paste into a chat assistant
// to generate test material, and copies them to the system clipboard.
package prompt

import (
	"fmt"

	"github.com/atotto/clipboard"

	"ssbprep/internal/session"
)

// Words asks for a comma-separated list suitable for the word association test.
const Words = "Generate a list of 15-20 neutral, evocative words suitable for a word association test. " +
	"Include a mix of concrete nouns, abstract concepts, and emotional terms. " +
	"Format as a simple comma-separated list."

// Situations asks for a JSON array of situations for the situation reaction test.
const Situations = `Generate SSB (Services Selection Board) interview situations for a Situation Reaction Test (SRT). Create 10-15 realistic scenarios that test a candidate's leadership, decision-making, integrity, teamwork, and problem-solving abilities in military and civilian contexts.

The response should be in JSON format as an array of strings:
[
  "Your captain falls ill and the team is left with no leader. He tells you to lead the mission...",
  "During a field exercise, you notice one of your team members tampering with their equipment to avoid participating...",
  "..."
]

Include situations that test:
- Leadership under pressure
- Crisis management in military/civilian settings
- Ethical decision-making
- Team conflicts and their resolution
- Resource management in limited situations
- Handling subordinates' personal problems
- Dealing with casualties or injuries
- Quick thinking in emergency scenarios
- Balancing mission objectives with team safety
- Moral dilemmas
- Handling insubordination
- Physical courage and mental resilience
- Adapting to unexpected changes
- Managing conflicting orders or unclear directives`

// For returns the generation prompt for a test kind.
func For(kind session.Kind) (string, error) {
	switch kind {
	case session.KindWAT:
		return Words, nil
	case session.KindSRT:
		return Situations, nil
	default:
		return "", fmt.Errorf("unknown test kind %q", kind)
	}
}

// Copier places text on a clipboard.
type Copier interface {
	Copy(text string) error
}

// SystemClipboard copies to the OS clipboard (xclip/xsel/wl-copy, pbcopy or
// the Windows API, depending on platform).
type SystemClipboard struct{}

// Copy implements Copier.
func (SystemClipboard) Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("copy to clipboard: no clipboard utility available")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// CopierFunc adapts a function to Copier.
type CopierFunc func(text string) error

// Copy implements Copier.
func (f CopierFunc) Copy(text string) error { return f(text) }
