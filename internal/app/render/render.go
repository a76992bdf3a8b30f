// Package render provides the result display model.
package render

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/osa030/recoform/internal/app/form"
	"github.com/osa030/recoform/internal/domain/preference"
	"github.com/osa030/recoform/internal/infra/config"
	"github.com/osa030/recoform/internal/infra/recommender"
)

// Card is one rendered recommendation.
// Rank is the 1-based position in the server's order; Details lists the
// genre, subgenre and popularity when the server sent them.
type Card struct {
	Rank        int
	TrackName   string
	TrackArtist string
	Badge       string
	Details     string
}

// Display is what the result area shows.
// At most one of Cards and Error is set.
type Display struct {
	Cards []Card
	Error string
}

// ShowsResults reports whether the result list is visible.
func (d Display) ShowsResults() bool {
	return len(d.Cards) > 0
}

// ShowsError reports whether the error message is visible.
func (d Display) ShowsError() bool {
	return d.Error != ""
}

// Renderer turns submission outcomes into a Display.
type Renderer struct {
	messages config.MessagesConfig
	endpoint string
	display  Display
}

// New creates a renderer. endpoint is quoted in the transport failure message.
func New(messages config.MessagesConfig, endpoint string) *Renderer {
	return &Renderer{
		messages: messages,
		endpoint: endpoint,
	}
}

// Clear hides both the result list and the error message.
func (r *Renderer) Clear() {
	r.display = Display{}
}

// Success replaces the display with one card per recommendation, in order.
func (r *Renderer) Success(recs []preference.Recommendation) {
	cards := make([]Card, 0, len(recs))
	for i, rec := range recs {
		rec = rec.WithDefaults()
		cards = append(cards, Card{
			Rank:        i + 1,
			TrackName:   rec.TrackName,
			TrackArtist: rec.TrackArtist,
			Badge:       rec.MatchPercent() + " Match",
			Details:     details(rec),
		})
	}
	if len(cards) == 0 {
		r.Failure(recommender.ErrEmptyResult)
		return
	}
	r.display = Display{Cards: cards}
}

// Failure replaces the display with the message for err.
func (r *Renderer) Failure(err error) {
	r.display = Display{Error: r.Message(err)}
}

// Display returns the current display.
func (r *Renderer) Display() Display {
	d := r.display
	d.Cards = append([]Card(nil), d.Cards...)
	return d
}

// Message returns the user-facing message for err.
func (r *Renderer) Message(err error) string {
	var serverErr *recommender.ServerError
	switch {
	case errors.As(err, &serverErr):
		return serverErr.Message
	case errors.Is(err, form.ErrMissingRequiredField):
		return r.messages.MissingRequired
	case errors.Is(err, recommender.ErrEmptyResult):
		return r.messages.EmptyResult
	case errors.Is(err, recommender.ErrTransportFailure):
		return strings.TrimSpace(r.messages.TransportFailure + " " + r.endpoint)
	default:
		return r.messages.DefaultError
	}
}

func details(rec preference.Recommendation) string {
	var parts []string
	if rec.Genre != "" {
		parts = append(parts, rec.Genre)
	}
	if rec.Subgenre != "" {
		parts = append(parts, rec.Subgenre)
	}
	if rec.Popularity != nil {
		parts = append(parts, fmt.Sprintf("popularity %.0f", *rec.Popularity))
	}
	return strings.Join(parts, " · ")
}
