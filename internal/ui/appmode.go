package ui

// AppMode represents the top-level screen (one per route of the app).
type AppMode int

const (
	ModeHome AppMode = iota
	ModeWordTest
	ModeSituationTest
)

func (m AppMode) String() string {
	switch m {
	case ModeHome:
		return "Home"
	case ModeWordTest:
		return "WAT Test"
	case ModeSituationTest:
		return "SRT Test"
	default:
		return "Unknown"
	}
}
