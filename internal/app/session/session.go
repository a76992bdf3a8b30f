// Package session provides the page session that wires view events to the
// autocomplete panel, the preference form, and the submission cycle.
package session

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/recoform/internal/app/autocomplete"
	"github.com/osa030/recoform/internal/app/form"
	"github.com/osa030/recoform/internal/app/render"
	"github.com/osa030/recoform/internal/domain/preference"
)

// ErrSubmissionInFlight is returned by OnSubmit while the submit control is disabled.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// Submitter sends a validated input to the recommender.
type Submitter interface {
	Submit(ctx context.Context, requestID string, in preference.Input) ([]preference.Recommendation, error)
}

// Session is one page session: a form, its autocomplete panel, and the
// result display. All methods run on the caller's event loop; the session
// holds no locks.
type Session struct {
	form      *form.Form
	panel     *autocomplete.Panel
	renderer  *render.Renderer
	submitter Submitter

	pendingID string // non-empty while a request is in flight
}

// New creates a session. view may be nil when nothing renders the panel.
func New(f *form.Form, searcher autocomplete.Searcher, view autocomplete.View, renderer *render.Renderer, submitter Submitter) *Session {
	s := &Session{
		form:      f,
		renderer:  renderer,
		submitter: submitter,
	}
	s.panel = autocomplete.NewPanel(searcher, view, f.SetArtist)
	return s
}

// Form returns the preference form.
func (s *Session) Form() *form.Form {
	return s.form
}

// Panel returns the autocomplete panel state.
func (s *Session) Panel() autocomplete.Snapshot {
	return s.panel.Snapshot()
}

// Display returns the result display.
func (s *Session) Display() render.Display {
	return s.renderer.Display()
}

// SubmitEnabled reports whether the submit control is enabled.
func (s *Session) SubmitEnabled() bool {
	return s.pendingID == ""
}

// OnInput handles an edit of the artist field.
func (s *Session) OnInput(value string) {
	s.form.SetArtist(value)
	s.panel.Input(value)
}

// OnKeyDown handles a key press in the artist field.
// Returns true if the panel consumed the key. An unconsumed Enter is a
// form submission; the caller should follow up with OnSubmit.
func (s *Session) OnKeyDown(key autocomplete.Key) bool {
	return s.panel.KeyDown(key)
}

// OnMouseEnter handles the pointer entering a suggestion row.
func (s *Session) OnMouseEnter(index int) {
	s.panel.MouseEnter(index)
}

// OnClickSuggestion handles a click on a suggestion row.
func (s *Session) OnClickSuggestion(index int) {
	s.panel.Click(index)
}

// OnClickOutside handles a click outside the artist field and the panel.
func (s *Session) OnClickOutside() {
	s.panel.ClickOutside()
}

// Reset restores the form defaults and clears the display. A request still
// in flight is abandoned: its response will be ignored.
func (s *Session) Reset() {
	if s.pendingID != "" {
		zlog.Debug().Msgf("abandoning in-flight submission: request_id=%s", s.pendingID)
	}
	s.pendingID = ""
	s.panel.Hide()
	s.form.Reset()
	s.renderer.Clear()
}
