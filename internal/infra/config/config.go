// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Recommender  RecommenderConfig  `yaml:"recommender"`
	Artists      ArtistsConfig      `yaml:"artists"`
	Autocomplete AutocompleteConfig `yaml:"autocomplete"`
	Form         FormConfig         `yaml:"form"`
	Messages     MessagesConfig     `yaml:"messages"`
}

// RecommenderConfig represents the recommendation endpoint configuration.
type RecommenderConfig struct {
	Endpoint   string `yaml:"endpoint" default:"http://localhost:8000/predict/" validate:"required,url"`
	TimeoutSec int    `yaml:"timeout_sec" validate:"gte=0"` // 0 means no client-side timeout
}

// ArtistsConfig represents the artist list sources, tried in order.
type ArtistsConfig struct {
	Sources []SourceConfig `yaml:"sources" validate:"dive"`
}

// SourceConfig represents a single artist list source.
type SourceConfig struct {
	Type     string         `yaml:"type" validate:"required,oneof=file http"`
	Settings map[string]any `yaml:"settings" validate:"required"`
}

// AutocompleteConfig represents autocomplete panel configuration.
type AutocompleteConfig struct {
	MaxSuggestions int `yaml:"max_suggestions" default:"10" validate:"gte=1,lte=50"`
	VisibleRows    int `yaml:"visible_rows" default:"6" validate:"gte=1"`
}

// FormConfig represents form default values.
type FormConfig struct {
	DefaultPopularity int `yaml:"default_popularity" default:"50" validate:"gte=0,lte=100"`
}

// MessagesConfig represents user-facing messages.
type MessagesConfig struct {
	MissingRequired  string `yaml:"missing_required" default:"Please fill in all required fields (Artist, Genre, and Subgenre)."`
	EmptyResult      string `yaml:"empty_result" default:"No recommendations found. Please try different parameters."`
	TransportFailure string `yaml:"transport_failure" default:"Failed to connect to the server. Please make sure the server is running on"`
	DefaultError     string `yaml:"default_error" default:"Something went wrong. Please try again."`
}

// DefaultSources returns the artist list candidates used when none are configured.
// The server root is tried first, then the parent and current directories.
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{Type: "http", Settings: map[string]any{"url": "http://localhost:8000/artist.json"}},
		{Type: "file", Settings: map[string]any{"path": "../artist.json"}},
		{Type: "file", Settings: map[string]any{"path": "artist.json"}},
	}
}

// Load loads configuration from a YAML file.
// An empty path yields the default configuration.
// Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read config file")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	}

	if len(cfg.Artists.Sources) == 0 {
		cfg.Artists.Sources = DefaultSources()
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("RECOFORM_ENDPOINT"); v != "" {
		c.Recommender.Endpoint = v
	}
	if v := os.Getenv("RECOFORM_ARTIST_URL"); v != "" {
		// Tried first, ahead of any configured sources
		c.Artists.Sources = append([]SourceConfig{
			{Type: "http", Settings: map[string]any{"url": v}},
		}, c.Artists.Sources...)
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// Timeout returns the recommender request timeout (0 means none).
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Recommender.TimeoutSec) * time.Second
}
