// Package ui implements the ssbprep terminal screens with Bubble Tea.
//
// Core abstractions:
//   - View: a screen with its own model, update and view (Elm-style)
//   - AppModel: root model that routes between Home and the two test screens
//   - KeybindRegistry/KeyHandler: SPC-leader commands shared by all screens
//   - OverlayStack: confirmation modals that receive input before the screen
//   - FocusManager: tab order across the text fields of a configuration form
//
// Test screens never own timers. Each running test schedules a one-second
// tickMsg tagged with its run ID and re-arms it only while the runner reports
// the run is still going.
package ui
