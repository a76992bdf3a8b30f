package session

import (
	"context"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/recoform/internal/domain/preference"
)

// Pending is a validated submission waiting to be sent.
type Pending struct {
	ID    string
	Input preference.Input

	submitter Submitter
}

// Outcome is the result of running a Pending submission.
type Outcome struct {
	ID              string
	Recommendations []preference.Recommendation
	Err             error
}

// Run sends the request. It is safe to call off the event loop.
func (p *Pending) Run(ctx context.Context) Outcome {
	recs, err := p.submitter.Submit(ctx, p.ID, p.Input)
	return Outcome{ID: p.ID, Recommendations: recs, Err: err}
}

// OnSubmit starts a submission: it hides the panel, clears the previous
// result, and validates the form. A validation failure is rendered and
// returned with a nil Pending; the submit control stays enabled. Otherwise
// the submit control is disabled until Complete receives the outcome.
func (s *Session) OnSubmit() (*Pending, error) {
	if s.pendingID != "" {
		return nil, ErrSubmissionInFlight
	}

	s.panel.Hide()
	s.renderer.Clear()

	in, err := s.form.Validate()
	if err != nil {
		zlog.Debug().Msgf("submission rejected by validation: %v", err)
		s.renderer.Failure(err)
		return nil, err
	}

	s.pendingID = uuid.New().String()
	zlog.Info().Msgf("Submitting preferences: request_id=%s artist=%s genre=%s subgenre=%s popularity=%d",
		s.pendingID, in.Artist, in.Genre, in.Subgenre, in.Popularity)

	return &Pending{
		ID:        s.pendingID,
		Input:     in,
		submitter: s.submitter,
	}, nil
}

// Complete renders the outcome of the in-flight submission and re-enables
// the submit control. Outcomes of abandoned submissions are ignored.
// Returns false if the outcome was ignored.
func (s *Session) Complete(o Outcome) bool {
	if o.ID == "" || o.ID != s.pendingID {
		zlog.Debug().Msgf("ignoring late response: request_id=%s", o.ID)
		return false
	}
	s.pendingID = ""

	if o.Err != nil {
		s.renderer.Failure(o.Err)
		return true
	}
	s.renderer.Success(o.Recommendations)
	return true
}

// Submit runs the whole cycle synchronously.
func (s *Session) Submit(ctx context.Context) error {
	p, err := s.OnSubmit()
	if err != nil {
		return err
	}
	o := p.Run(ctx)
	s.Complete(o)
	return o.Err
}
