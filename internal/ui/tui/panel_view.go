package tui

import "github.com/osa030/recoform/internal/app/autocomplete"

// panelView is the terminal rendering state of the autocomplete panel.
// It keeps a window of at most rows suggestions in view.
type panelView struct {
	rows        int
	offset      int
	highlighted int
	noResults   bool
	visible     bool
}

func newPanelView(rows int) *panelView {
	if rows <= 0 {
		rows = 6
	}
	return &panelView{rows: rows, highlighted: autocomplete.NoSelection}
}

func (v *panelView) ShowSuggestions(suggestions []string) {
	v.visible = true
	v.noResults = false
	v.offset = 0
	v.highlighted = autocomplete.NoSelection
}

func (v *panelView) ShowNoResults() {
	v.visible = true
	v.noResults = true
	v.offset = 0
	v.highlighted = autocomplete.NoSelection
}

func (v *panelView) Highlight(index int) {
	v.highlighted = index
}

// ScrollIntoView moves the window the least distance that shows index.
func (v *panelView) ScrollIntoView(index int) {
	if index < v.offset {
		v.offset = index
	} else if index >= v.offset+v.rows {
		v.offset = index - v.rows + 1
	}
}

func (v *panelView) Hide() {
	v.visible = false
	v.noResults = false
	v.offset = 0
	v.highlighted = autocomplete.NoSelection
}

// window returns the range of suggestion indexes currently on screen.
func (v *panelView) window(total int) (start, end int) {
	start = v.offset
	end = min(start+v.rows, total)
	return start, end
}
