package session

import (
	"context"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/recoform/internal/app/artist"
	"github.com/osa030/recoform/internal/app/autocomplete"
	"github.com/osa030/recoform/internal/app/form"
	"github.com/osa030/recoform/internal/app/render"
	"github.com/osa030/recoform/internal/domain/preference"
	"github.com/osa030/recoform/internal/infra/config"
	"github.com/osa030/recoform/internal/infra/recommender"
)

const endpoint = "http://localhost:8000/predict/"

// fakeSubmitter records calls and returns canned results.
type fakeSubmitter struct {
	calls []preference.Input
	recs  []preference.Recommendation
	err   error
}

func (f *fakeSubmitter) Submit(ctx context.Context, requestID string, in preference.Input) ([]preference.Recommendation, error) {
	f.calls = append(f.calls, in)
	return f.recs, f.err
}

func newTestSession(sub Submitter) *Session {
	messages := config.MessagesConfig{
		MissingRequired:  "Please fill in all required fields (Artist, Genre, and Subgenre).",
		EmptyResult:      "No recommendations found. Please try different parameters.",
		TransportFailure: "Failed to connect to the server. Please make sure the server is running on",
		DefaultError:     "Something went wrong.",
	}
	idx := artist.NewIndex([]string{"Dua Lipa", "Daft Punk", "Queen"}, 10)
	return New(form.New(50), idx, nil, render.New(messages, endpoint), sub)
}

func fill(t *testing.T, s *Session, artistName, genreKey, subgenre string) {
	t.Helper()
	s.OnInput(artistName)
	require.NoError(t, s.Form().SelectGenre(genreKey))
	require.NoError(t, s.Form().SelectSubgenre(subgenre))
}

func TestSession_InputDrivesPanel(t *testing.T) {
	s := newTestSession(&fakeSubmitter{})

	s.OnInput("a")
	snap := s.Panel()
	assert.Equal(t, autocomplete.StateShowingResults, snap.State)
	assert.Equal(t, []string{"Daft Punk", "Dua Lipa"}, snap.Suggestions)
	assert.Equal(t, "a", s.Form().Artist())

	s.OnInput("")
	assert.False(t, s.Panel().Visible())
}

func TestSession_ConfirmWritesArtistField(t *testing.T) {
	s := newTestSession(&fakeSubmitter{})

	s.OnInput("d")
	s.OnKeyDown(autocomplete.KeyArrowDown)
	s.OnKeyDown(autocomplete.KeyArrowDown)
	assert.True(t, s.OnKeyDown(autocomplete.KeyEnter))

	assert.Equal(t, "Dua Lipa", s.Form().Artist())
	assert.False(t, s.Panel().Visible())
}

func TestSession_ClickSuggestionAndOutside(t *testing.T) {
	s := newTestSession(&fakeSubmitter{})

	s.OnInput("que")
	s.OnMouseEnter(0)
	assert.Equal(t, 0, s.Panel().SelectedIndex)
	s.OnClickSuggestion(0)
	assert.Equal(t, "Queen", s.Form().Artist())

	s.OnInput("d")
	s.OnClickOutside()
	assert.False(t, s.Panel().Visible())
	assert.Equal(t, "d", s.Form().Artist(), "dismissal keeps the typed text")
}

func TestSession_SubmitValidationFailure(t *testing.T) {
	sub := &fakeSubmitter{}
	s := newTestSession(sub)
	fill(t, s, "", "pop", "dance pop")

	p, err := s.OnSubmit()

	assert.Nil(t, p)
	assert.True(t, errors.Is(err, form.ErrMissingRequiredField))
	assert.Empty(t, sub.calls, "no network call on validation failure")
	assert.True(t, s.SubmitEnabled())
	assert.Equal(t, "Please fill in all required fields (Artist, Genre, and Subgenre).", s.Display().Error)
}

func TestSession_SubmitSuccess(t *testing.T) {
	sub := &fakeSubmitter{recs: []preference.Recommendation{
		{TrackName: "A", TrackArtist: "B", Similarity: 0.873},
	}}
	s := newTestSession(sub)
	fill(t, s, "Queen", "rock", "classic rock")
	s.OnInput("Queen")
	require.True(t, s.Panel().Visible())

	p, err := s.OnSubmit()
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.False(t, s.Panel().Visible(), "submission hides the panel")
	assert.False(t, s.SubmitEnabled(), "submit is disabled while in flight")
	assert.Equal(t, "Queen", p.Input.Artist)

	assert.True(t, s.Complete(p.Run(context.Background())))

	assert.True(t, s.SubmitEnabled())
	d := s.Display()
	require.Len(t, d.Cards, 1)
	assert.Equal(t, "87.3% Match", d.Cards[0].Badge)
	assert.False(t, d.ShowsError())
	require.Len(t, sub.calls, 1)
}

func TestSession_SubmitServerError(t *testing.T) {
	_, serverErr := recommender.Interpret([]byte(`{"error":"bad input"}`))
	s := newTestSession(&fakeSubmitter{err: serverErr})
	fill(t, s, "Queen", "rock", "classic rock")

	err := s.Submit(context.Background())

	assert.True(t, errors.Is(err, recommender.ErrServerReported))
	d := s.Display()
	assert.Equal(t, "bad input", d.Error)
	assert.False(t, d.ShowsResults())
	assert.True(t, s.SubmitEnabled())
}

func TestSession_SubmitTransportFailure(t *testing.T) {
	transportErr := errors.Mark(errors.New("connection refused"), recommender.ErrTransportFailure)
	s := newTestSession(&fakeSubmitter{err: transportErr})
	fill(t, s, "Queen", "rock", "classic rock")

	_ = s.Submit(context.Background())

	d := s.Display()
	assert.True(t, strings.Contains(d.Error, "make sure the server is running"))
	assert.Contains(t, d.Error, endpoint)
	assert.True(t, s.SubmitEnabled())
}

func TestSession_SubmitClearsPreviousResult(t *testing.T) {
	sub := &fakeSubmitter{recs: []preference.Recommendation{{TrackName: "A", Similarity: 0.5}}}
	s := newTestSession(sub)
	fill(t, s, "Queen", "rock", "classic rock")
	require.NoError(t, s.Submit(context.Background()))
	require.True(t, s.Display().ShowsResults())

	p, err := s.OnSubmit()
	require.NoError(t, err)
	assert.False(t, s.Display().ShowsResults(), "previous results are hidden while in flight")
	s.Complete(p.Run(context.Background()))
}

func TestSession_OneSubmissionInFlight(t *testing.T) {
	s := newTestSession(&fakeSubmitter{recs: []preference.Recommendation{{Similarity: 0.5}}})
	fill(t, s, "Queen", "rock", "classic rock")

	p, err := s.OnSubmit()
	require.NoError(t, err)

	_, err = s.OnSubmit()
	assert.True(t, errors.Is(err, ErrSubmissionInFlight))

	s.Complete(p.Run(context.Background()))
	_, err = s.OnSubmit()
	assert.NoError(t, err)
}

func TestSession_LateResponseIgnoredAfterReset(t *testing.T) {
	s := newTestSession(&fakeSubmitter{recs: []preference.Recommendation{{Similarity: 0.5}}})
	fill(t, s, "Queen", "rock", "classic rock")

	p, err := s.OnSubmit()
	require.NoError(t, err)

	s.Reset()
	assert.True(t, s.SubmitEnabled())
	assert.Equal(t, "", s.Form().Artist())

	assert.False(t, s.Complete(p.Run(context.Background())))
	assert.False(t, s.Display().ShowsResults())
	assert.False(t, s.Display().ShowsError())
}
