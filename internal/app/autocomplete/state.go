// Package autocomplete provides the artist suggestion panel state machine.
package autocomplete

// State represents the panel state.
type State int

const (
	StateHidden           State = iota // Panel not shown
	StateShowingResults                // Suggestion rows shown
	StateShowingNoResults              // "No artists found" shown
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StateShowingResults:
		return "showing_results"
	case StateShowingNoResults:
		return "showing_no_results"
	default:
		return "unknown"
	}
}

// Key represents a navigation key delivered to the panel.
type Key int

const (
	KeyOther Key = iota
	KeyArrowDown
	KeyArrowUp
	KeyEnter
	KeyEscape
)

// String returns the string representation of the key.
func (k Key) String() string {
	switch k {
	case KeyArrowDown:
		return "ArrowDown"
	case KeyArrowUp:
		return "ArrowUp"
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Escape"
	default:
		return "other"
	}
}

// NoSelection is the selected index when no row is highlighted.
const NoSelection = -1

// Snapshot is a read-only copy of the panel state.
type Snapshot struct {
	State         State
	Query         string
	Suggestions   []string
	SelectedIndex int
}

// Visible reports whether the panel is shown.
func (s Snapshot) Visible() bool {
	return s.State != StateHidden
}

// Selected returns the highlighted suggestion, if any.
func (s Snapshot) Selected() (string, bool) {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Suggestions) {
		return "", false
	}
	return s.Suggestions[s.SelectedIndex], true
}
