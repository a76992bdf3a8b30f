// Package artist provides the artist name index used for autocompletion.
package artist

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"
)

// Source is the interface for artist list locations.
// A source fetches and parses a JSON array of artist names.
type Source interface {
	// Name returns a human-readable location (used in logs).
	Name() string
	// Fetch retrieves the raw artist list.
	Fetch(ctx context.Context) ([]string, error)
}

// FileSettings represents the settings of a file source.
type FileSettings struct {
	Path string `mapstructure:"path" validate:"required"`
}

// FileSource reads the artist list from a local file.
type FileSource struct {
	path string
}

// NewFileSource creates a file source from raw settings.
func NewFileSource(settings map[string]any) (*FileSource, error) {
	var s FileSettings
	if err := decodeSettings(settings, &s); err != nil {
		return nil, err
	}
	return &FileSource{path: s.Path}, nil
}

func (s *FileSource) Name() string {
	return "file:" + s.path
}

func (s *FileSource) Fetch(ctx context.Context) ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read artist file")
	}
	return parseArtists(data)
}

// HTTPSettings represents the settings of an HTTP source.
type HTTPSettings struct {
	URL        string `mapstructure:"url" validate:"required,url"`
	TimeoutSec int    `mapstructure:"timeout_sec" default:"10" validate:"gte=1"`
}

// HTTPSource fetches the artist list with a GET request.
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

// NewHTTPSource creates an HTTP source from raw settings.
func NewHTTPSource(settings map[string]any) (*HTTPSource, error) {
	var s HTTPSettings
	if err := decodeSettings(settings, &s); err != nil {
		return nil, err
	}
	return &HTTPSource{
		url:        s.URL,
		httpClient: &http.Client{Timeout: secondsToDuration(s.TimeoutSec)},
	}, nil
}

func (s *HTTPSource) Name() string {
	return s.url
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Newf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	return parseArtists(body)
}

// parseArtists parses a JSON array of strings.
func parseArtists(data []byte) ([]string, error) {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, errors.Wrap(err, "failed to parse artist list")
	}
	if names == nil {
		return nil, errors.New("artist list is not an array")
	}
	return names, nil
}

// decodeSettings decodes map settings into a struct, applies defaults and validates it.
func decodeSettings(settings map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create decoder")
	}

	if err := decoder.Decode(settings); err != nil {
		return errors.Wrap(err, "failed to decode settings")
	}

	if err := defaults.Set(out); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}

	validate := validator.New()
	if err := validate.Struct(out); err != nil {
		return errors.Wrap(err, "validation failed")
	}
	return nil
}
