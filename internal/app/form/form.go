// Package form provides the preference form model.
package form

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/osa030/recoform/internal/domain/genre"
	"github.com/osa030/recoform/internal/domain/preference"
)

// ErrMissingRequiredField is returned by Validate when artist, genre, or
// subgenre is blank.
var ErrMissingRequiredField = errors.New("missing required field")

// Slider identifies one of the normalized audio-feature sliders.
type Slider string

const (
	SliderEnergy           Slider = "energy"
	SliderMode             Slider = "mode"
	SliderSpeechiness      Slider = "speechiness"
	SliderInstrumentalness Slider = "instrumentalness"
)

// Sliders lists the sliders in display order.
var Sliders = []Slider{SliderEnergy, SliderMode, SliderSpeechiness, SliderInstrumentalness}

const (
	sliderDefault = 0.5
	// SliderStep is the slider granularity.
	SliderStep = 0.01
)

// SubgenrePlaceholder is the label of the empty subgenre option.
const SubgenrePlaceholder = "Select a subgenre"

// Option is a selectable dropdown entry.
type Option struct {
	Value string
	Label string
}

// Form holds the current field values.
// It is driven from a single event loop and is not safe for concurrent use.
type Form struct {
	defaultPopularity int

	artist     string
	popularity string
	genre      string
	subgenre   string
	subgenres  []string
	sliders    map[Slider]float64
}

// New creates a form with default values.
// defaultPopularity outside [0,100] falls back to preference.DefaultPopularity.
func New(defaultPopularity int) *Form {
	if defaultPopularity < 0 || defaultPopularity > 100 {
		defaultPopularity = preference.DefaultPopularity
	}
	f := &Form{defaultPopularity: defaultPopularity}
	f.Reset()
	return f
}

// Reset restores every field to its default.
func (f *Form) Reset() {
	f.artist = ""
	f.popularity = strconv.Itoa(f.defaultPopularity)
	f.genre = ""
	f.subgenre = ""
	f.subgenres = nil
	f.sliders = make(map[Slider]float64, len(Sliders))
	for _, s := range Sliders {
		f.sliders[s] = sliderDefault
	}
}

// Artist returns the artist field text.
func (f *Form) Artist() string {
	return f.artist
}

// SetArtist sets the artist field text.
func (f *Form) SetArtist(v string) {
	f.artist = v
}

// Popularity returns the popularity field text.
func (f *Form) Popularity() string {
	return f.popularity
}

// SetPopularity sets the popularity field text. The text is parsed on Validate.
func (f *Form) SetPopularity(v string) {
	f.popularity = v
}

// Genre returns the selected genre key.
func (f *Form) Genre() string {
	return f.genre
}

// GenreOptions returns the genre dropdown entries, placeholder first.
func (f *Form) GenreOptions() []Option {
	opts := []Option{{Value: "", Label: "Select a genre"}}
	for _, g := range genre.All() {
		opts = append(opts, Option{Value: g.Key, Label: g.Label})
	}
	return opts
}

// SelectGenre selects a genre and repopulates the subgenre options.
// The subgenre selection is always cleared.
func (f *Form) SelectGenre(key string) error {
	if key != "" {
		if _, ok := genre.Lookup(key); !ok {
			return errors.Newf("unknown genre: %s", key)
		}
	}
	f.genre = key
	f.subgenre = ""
	f.subgenres = genre.Subgenres(key)
	return nil
}

// Subgenre returns the selected subgenre.
func (f *Form) Subgenre() string {
	return f.subgenre
}

// SubgenreValues returns the subgenre values available for the selected genre.
func (f *Form) SubgenreValues() []string {
	return append([]string(nil), f.subgenres...)
}

// SubgenreOptions returns the subgenre dropdown entries, placeholder first.
func (f *Form) SubgenreOptions() []Option {
	opts := []Option{{Value: "", Label: SubgenrePlaceholder}}
	for _, s := range f.subgenres {
		opts = append(opts, Option{Value: s, Label: genre.Label(s)})
	}
	return opts
}

// SelectSubgenre selects one of the current subgenre options ("" clears it).
func (f *Form) SelectSubgenre(value string) error {
	if value == "" {
		f.subgenre = ""
		return nil
	}
	for _, s := range f.subgenres {
		if s == value {
			f.subgenre = value
			return nil
		}
	}
	return errors.Newf("subgenre %q is not available for genre %q", value, f.genre)
}

// SliderValue returns the value of a slider.
func (f *Form) SliderValue(s Slider) float64 {
	return f.sliders[s]
}

// SetSlider sets a slider, clamped to [0,1] and snapped to SliderStep.
// Returns the display text of the new value.
func (f *Form) SetSlider(s Slider, v float64) (string, error) {
	if _, ok := f.sliders[s]; !ok {
		return "", errors.Newf("unknown slider: %s", s)
	}
	f.sliders[s] = snap(v)
	return FormatSlider(f.sliders[s]), nil
}

// SetSliderText parses and sets a slider. A parse failure leaves the value unchanged.
func (f *Form) SetSliderText(s Slider, text string) (string, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return "", errors.Wrapf(err, "invalid value for %s", s)
	}
	return f.SetSlider(s, v)
}

// SliderDisplay returns the display text of a slider.
func (f *Form) SliderDisplay(s Slider) string {
	return FormatSlider(f.sliders[s])
}

// FormatSlider formats a slider value with exactly two decimals.
func FormatSlider(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Validate builds the preference input from the current values.
// Returns ErrMissingRequiredField if artist, genre, or subgenre is blank.
// Popularity falls back to the default when it is not an integer in [0,100].
func (f *Form) Validate() (preference.Input, error) {
	in := preference.Input{
		Artist:           strings.TrimSpace(f.artist),
		Popularity:       f.parsePopularity(),
		Genre:            strings.TrimSpace(f.genre),
		Subgenre:         strings.TrimSpace(f.subgenre),
		Energy:           f.sliders[SliderEnergy],
		Mode:             f.sliders[SliderMode],
		Speechiness:      f.sliders[SliderSpeechiness],
		Instrumentalness: f.sliders[SliderInstrumentalness],
	}

	if missing := in.MissingFields(); len(missing) > 0 {
		return preference.Input{}, errors.Wrapf(ErrMissingRequiredField, "%s", strings.Join(missing, ", "))
	}
	if err := in.Validate(); err != nil {
		return preference.Input{}, err
	}
	return in, nil
}

// parsePopularity parses the leading integer of the popularity text.
func (f *Form) parsePopularity() int {
	text := strings.TrimSpace(f.popularity)
	end := 0
	if end < len(text) && (text[end] == '-' || text[end] == '+') {
		end++
	}
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}

	v, err := strconv.Atoi(text[:end])
	if err != nil || v < 0 || v > 100 {
		return f.defaultPopularity
	}
	return v
}

func snap(v float64) float64 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return math.Round(v*100) / 100
}
