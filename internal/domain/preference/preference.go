// Package preference provides the preference input and recommendation entities.
package preference

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

const (
	// DefaultPopularity is used when the popularity field is absent or invalid.
	DefaultPopularity = 50

	// UnknownTrack is shown when a recommendation has no track name.
	UnknownTrack = "Unknown Track"
	// UnknownArtist is shown when a recommendation has no artist.
	UnknownArtist = "Unknown Artist"
)

// Input is the value object submitted to the recommender.
type Input struct {
	Artist           string  `json:"artist" validate:"required"`
	Popularity       int     `json:"popularity" validate:"gte=0,lte=100"`
	Genre            string  `json:"genre" validate:"required"`
	Subgenre         string  `json:"subgenre" validate:"required"`
	Energy           float64 `json:"energy" validate:"gte=0,lte=1"`
	Mode             float64 `json:"mode" validate:"gte=0,lte=1"`
	Speechiness      float64 `json:"speechiness" validate:"gte=0,lte=1"`
	Instrumentalness float64 `json:"instrumentalness" validate:"gte=0,lte=1"`
}

var validate = validator.New()

// Validate checks the input invariants.
func (in Input) Validate() error {
	if err := validate.Struct(in); err != nil {
		return errors.Wrap(err, "invalid preference input")
	}
	return nil
}

// MissingFields returns the names of required fields that are empty.
func (in Input) MissingFields() []string {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	var missing []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
	}
	return missing
}

// Recommendation represents one ranked track returned by the recommender.
type Recommendation struct {
	TrackName   string  `json:"track_name"`
	TrackArtist string  `json:"track_artist"`
	Similarity  float64 `json:"similarity"`

	// Returned by the reference service; optional.
	Genre      string   `json:"playlist_genre,omitempty"`
	Subgenre   string   `json:"playlist_subgenre,omitempty"`
	Popularity *float64 `json:"track_popularity,omitempty"` // float columns arrive as 67.0
}

// WithDefaults returns a copy with empty names replaced by their placeholders.
func (r Recommendation) WithDefaults() Recommendation {
	if r.TrackName == "" {
		r.TrackName = UnknownTrack
	}
	if r.TrackArtist == "" {
		r.TrackArtist = UnknownArtist
	}
	return r
}

// MatchPercent formats the similarity as a percentage with one decimal ("87.3%").
func (r Recommendation) MatchPercent() string {
	return fmt.Sprintf("%.1f%%", r.Similarity*100)
}
