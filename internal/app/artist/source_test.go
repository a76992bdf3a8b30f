package artist

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/recoform/internal/infra/config"
)

func TestHTTPSource_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/artist.json":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `["Queen", "ABBA"]`)
		case "/broken.json":
			fmt.Fprint(w, `{"error": "artist.json not found"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	tests := []struct {
		name     string
		path     string
		expected []string
		wantErr  bool
	}{
		{
			name:     "valid array",
			path:     "/artist.json",
			expected: []string{"Queen", "ABBA"},
		},
		{
			name:    "object instead of array",
			path:    "/broken.json",
			wantErr: true,
		},
		{
			name:    "not found",
			path:    "/missing.json",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewHTTPSource(map[string]any{"url": server.URL + tt.path})
			require.NoError(t, err)

			names, err := src.Fetch(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestFileSource_Fetch(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "artist.json")
	require.NoError(t, os.WriteFile(good, []byte(`["Muse","Blur"]`), 0o644))
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`not json`), 0o644))

	src, err := NewFileSource(map[string]any{"path": good})
	require.NoError(t, err)
	names, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Muse", "Blur"}, names)
	assert.Equal(t, "file:"+good, src.Name())

	src, err = NewFileSource(map[string]any{"path": bad})
	require.NoError(t, err)
	_, err = src.Fetch(context.Background())
	assert.Error(t, err)

	src, err = NewFileSource(map[string]any{"path": filepath.Join(dir, "missing.json")})
	require.NoError(t, err)
	_, err = src.Fetch(context.Background())
	assert.Error(t, err)
}

func TestSourceSettings_Validation(t *testing.T) {
	_, err := NewFileSource(map[string]any{})
	assert.Error(t, err, "path is required")

	_, err = NewHTTPSource(map[string]any{"url": "not a url"})
	assert.Error(t, err)

	_, err = NewHTTPSource(map[string]any{"url": "http://localhost/artist.json", "timeout_sec": "5"})
	assert.NoError(t, err, "weakly typed input should be accepted")
}

func TestNewSourcesFromConfig(t *testing.T) {
	cfg := &config.Config{
		Artists: config.ArtistsConfig{Sources: config.DefaultSources()},
	}

	sources, err := NewSourcesFromConfig(cfg)
	require.NoError(t, err)
	require.Len(t, sources, 3)
	assert.Equal(t, "http://localhost:8000/artist.json", sources[0].Name())
	assert.Equal(t, "file:../artist.json", sources[1].Name())
	assert.Equal(t, "file:artist.json", sources[2].Name())

	cfg.Artists.Sources = []config.SourceConfig{{Type: "ftp", Settings: map[string]any{}}}
	_, err = NewSourcesFromConfig(cfg)
	assert.Error(t, err)

	cfg.Artists.Sources = nil
	_, err = NewSourcesFromConfig(cfg)
	assert.Error(t, err)
}

func TestLoad_FallsBackAcrossRealSources(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `["Zedd", "Avicii"]`)
	}))
	defer server.Close()

	missing, err := NewFileSource(map[string]any{"path": filepath.Join(t.TempDir(), "artist.json")})
	require.NoError(t, err)
	remote, err := NewHTTPSource(map[string]any{"url": server.URL + "/artist.json"})
	require.NoError(t, err)

	idx := Load(context.Background(), []Source{missing, remote}, 10)
	assert.Equal(t, []string{"Avicii", "Zedd"}, idx.Names())
}
