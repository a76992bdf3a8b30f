package autocomplete

import (
	"strings"

	zlog "github.com/rs/zerolog/log"
)

// Searcher provides suggestions for a query.
type Searcher interface {
	Search(query string) []string
}

// View is the rendering surface driven by the panel.
type View interface {
	// ShowSuggestions renders the rows with nothing highlighted.
	ShowSuggestions(suggestions []string)
	// ShowNoResults renders the empty-result row.
	ShowNoResults()
	// Highlight marks the row at index; NoSelection clears all highlights.
	Highlight(index int)
	// ScrollIntoView brings the row at index into the visible area.
	ScrollIntoView(index int)
	// Hide removes the panel.
	Hide()
}

// Panel is the autocomplete controller for the artist field.
// It is driven from a single event loop and is not safe for concurrent use.
type Panel struct {
	searcher  Searcher
	view      View
	onConfirm func(name string)

	state       State
	query       string
	suggestions []string
	selected    int
}

// NewPanel creates a hidden panel.
// onConfirm receives the chosen suggestion and writes it into the artist field.
func NewPanel(searcher Searcher, view View, onConfirm func(name string)) *Panel {
	if view == nil {
		view = nopView{}
	}
	if onConfirm == nil {
		onConfirm = func(string) {}
	}
	return &Panel{
		searcher:  searcher,
		view:      view,
		onConfirm: onConfirm,
		state:     StateHidden,
		selected:  NoSelection,
	}
}

// Input handles a change of the artist field text.
func (p *Panel) Input(value string) {
	query := strings.TrimSpace(value)
	if len(query) < 1 {
		p.hide()
		return
	}

	p.query = query
	p.suggestions = p.searcher.Search(query)
	p.selected = NoSelection

	if len(p.suggestions) == 0 {
		p.state = StateShowingNoResults
		p.view.ShowNoResults()
		return
	}
	p.state = StateShowingResults
	p.view.ShowSuggestions(append([]string(nil), p.suggestions...))
}

// KeyDown handles a key press in the artist field.
// Returns true if the key was consumed; an unconsumed Enter submits the form.
func (p *Panel) KeyDown(key Key) bool {
	if key == KeyEscape {
		p.hide()
		return false
	}

	// Navigation only applies while rows are shown
	if p.state != StateShowingResults {
		return false
	}

	last := len(p.suggestions) - 1
	switch key {
	case KeyArrowDown:
		p.selected = min(p.selected+1, last)
		p.view.Highlight(p.selected)
		p.view.ScrollIntoView(p.selected)
		return true

	case KeyArrowUp:
		p.selected = max(p.selected-1, NoSelection)
		p.view.Highlight(p.selected)
		if p.selected != NoSelection {
			p.view.ScrollIntoView(p.selected)
		}
		return true

	case KeyEnter:
		if p.selected < 0 {
			return false
		}
		p.confirm(p.selected)
		return true
	}
	return false
}

// MouseEnter highlights the row under the pointer without confirming it.
func (p *Panel) MouseEnter(index int) {
	if p.state != StateShowingResults || index < 0 || index >= len(p.suggestions) {
		return
	}
	p.selected = index
	p.view.Highlight(index)
}

// Click confirms the row at index.
func (p *Panel) Click(index int) {
	if p.state != StateShowingResults || index < 0 || index >= len(p.suggestions) {
		return
	}
	p.confirm(index)
}

// ClickOutside handles a click outside both the field and the panel.
func (p *Panel) ClickOutside() {
	p.hide()
}

// Hide hides the panel.
func (p *Panel) Hide() {
	p.hide()
}

// Snapshot returns a copy of the current state.
func (p *Panel) Snapshot() Snapshot {
	return Snapshot{
		State:         p.state,
		Query:         p.query,
		Suggestions:   append([]string(nil), p.suggestions...),
		SelectedIndex: p.selected,
	}
}

func (p *Panel) confirm(index int) {
	name := p.suggestions[index]
	zlog.Debug().Msgf("artist suggestion confirmed: index=%d name=%s", index, name)
	p.hide()
	p.onConfirm(name)
}

func (p *Panel) hide() {
	wasVisible := p.state != StateHidden
	p.state = StateHidden
	p.query = ""
	p.suggestions = nil
	p.selected = NoSelection
	if wasVisible {
		p.view.Hide()
	}
}

// nopView discards rendering calls.
type nopView struct{}

func (nopView) ShowSuggestions([]string) {}
func (nopView) ShowNoResults()           {}
func (nopView) Highlight(int)            {}
func (nopView) ScrollIntoView(int)       {}
func (nopView) Hide()                    {}
