package preference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInput() Input {
	return Input{
		Artist:           "Queen",
		Popularity:       50,
		Genre:            "rock",
		Subgenre:         "classic rock",
		Energy:           0.5,
		Mode:             1,
		Speechiness:      0,
		Instrumentalness: 0.25,
	}
}

func TestInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *Input)
		wantErr bool
	}{
		{
			name:    "valid input",
			mutate:  func(in *Input) {},
			wantErr: false,
		},
		{
			name:    "missing artist",
			mutate:  func(in *Input) { in.Artist = "" },
			wantErr: true,
		},
		{
			name:    "popularity above range",
			mutate:  func(in *Input) { in.Popularity = 101 },
			wantErr: true,
		},
		{
			name:    "energy below range",
			mutate:  func(in *Input) { in.Energy = -0.1 },
			wantErr: true,
		},
		{
			name:    "instrumentalness at upper bound",
			mutate:  func(in *Input) { in.Instrumentalness = 1 },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := in.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInput_MissingFields(t *testing.T) {
	in := validInput()
	assert.Empty(t, in.MissingFields())

	in.Artist = ""
	in.Subgenre = ""
	assert.Equal(t, []string{"Artist", "Subgenre"}, in.MissingFields())
}

func TestRecommendation_WithDefaults(t *testing.T) {
	r := Recommendation{Similarity: 0.5}.WithDefaults()
	assert.Equal(t, UnknownTrack, r.TrackName)
	assert.Equal(t, UnknownArtist, r.TrackArtist)

	r = Recommendation{TrackName: "A", TrackArtist: "B"}.WithDefaults()
	assert.Equal(t, "A", r.TrackName)
	assert.Equal(t, "B", r.TrackArtist)
}

func TestRecommendation_MatchPercent(t *testing.T) {
	tests := []struct {
		similarity float64
		expected   string
	}{
		{0.873, "87.3%"},
		{1, "100.0%"},
		{0, "0.0%"},
		{0.12345, "12.3%"},
	}

	for _, tt := range tests {
		r := Recommendation{Similarity: tt.similarity}
		assert.Equal(t, tt.expected, r.MatchPercent())
	}
}
