package artist

import (
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/recoform/internal/infra/config"
)

// NewSourcesFromConfig creates the ordered source list from configuration.
func NewSourcesFromConfig(cfg *config.Config) ([]Source, error) {
	if len(cfg.Artists.Sources) == 0 {
		return nil, errors.New("no artist sources configured")
	}

	sources := make([]Source, 0, len(cfg.Artists.Sources))
	for i, scfg := range cfg.Artists.Sources {
		var src Source
		var err error
		switch scfg.Type {
		case "file":
			src, err = NewFileSource(scfg.Settings)
		case "http":
			src, err = NewHTTPSource(scfg.Settings)
		default:
			return nil, errors.Newf("unsupported source type: %s (source index %d)", scfg.Type, i)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create source (index %d, type %s)", i, scfg.Type)
		}

		sources = append(sources, src)
		zlog.Debug().Msgf("registered artist source: index=%d type=%s name=%s", i+1, scfg.Type, src.Name())
	}
	return sources, nil
}

func secondsToDuration(sec int) time.Duration {
	return time.Duration(sec) * time.Second
}
