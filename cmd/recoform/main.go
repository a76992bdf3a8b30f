// Package main provides the recoform entry point.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/recoform/internal/app/artist"
	"github.com/osa030/recoform/internal/app/form"
	"github.com/osa030/recoform/internal/app/render"
	"github.com/osa030/recoform/internal/app/session"
	"github.com/osa030/recoform/internal/domain/genre"
	"github.com/osa030/recoform/internal/infra/config"
	"github.com/osa030/recoform/internal/infra/logger"
	"github.com/osa030/recoform/internal/infra/recommender"
	"github.com/osa030/recoform/internal/ui/tui"
)

var (
	app        = kingpin.New("recoform", "Music preference form with artist autocomplete")
	configPath = app.Flag("config", "Path to config file (default: built-in defaults)").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file").String()
	endpoint   = app.Flag("endpoint", "Recommendation endpoint URL (overrides config)").String()

	// tui command (default)
	tuiCmd = app.Command("tui", "Open the interactive form (default)").Default()

	// submit command
	submitCmd              = app.Command("submit", "Submit preferences once and print the recommendations")
	submitArtist           = submitCmd.Flag("artist", "Artist name").Required().String()
	submitGenre            = submitCmd.Flag("genre", "Genre key").Required().String()
	submitSubgenre         = submitCmd.Flag("subgenre", "Subgenre").Required().String()
	submitPopularity       = submitCmd.Flag("popularity", "Popularity (0-100)").String()
	submitEnergy           = submitCmd.Flag("energy", "Energy (0-1)").Default("0.5").Float64()
	submitMode             = submitCmd.Flag("mode", "Mode (0-1)").Default("0.5").Float64()
	submitSpeechiness      = submitCmd.Flag("speechiness", "Speechiness (0-1)").Default("0.5").Float64()
	submitInstrumentalness = submitCmd.Flag("instrumentalness", "Instrumentalness (0-1)").Default("0.5").Float64()

	// artists command
	artistsCmd   = app.Command("artists", "Print artist suggestions for a query")
	artistsQuery = artistsCmd.Arg("query", "Search text").Required().String()

	// genres command
	genresCmd = app.Command("genres", "Print the genre taxonomy")
)

// errAlreadyReported marks failures the submit command has already printed.
var errAlreadyReported = errors.New("failure already reported")

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	// Parse command
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if command == genresCmd.FullCommand() {
		printGenres()
		return
	}

	// Initialize logger. The terminal UI owns the screen, so it logs
	// nowhere unless a log file is given.
	loggerConfig := logger.Config{
		Output: "stderr",
		Level:  "info",
	}
	if command == tuiCmd.FullCommand() {
		loggerConfig.Output = "discard"
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
		loggerConfig.File = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}
	if *endpoint != "" {
		cfg.Recommender.Endpoint = *endpoint
		if err := cfg.Validate(); err != nil {
			zlog.Fatal().Msgf("Invalid endpoint: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, command, cfg); err != nil {
		if !errors.Is(err, errAlreadyReported) {
			zlog.Error().Msgf("recoform: %v", err)
		}
		stop()
		os.Exit(1)
	}
}

// run executes the selected command.
func run(ctx context.Context, command string, cfg *config.Config) error {
	switch command {
	case artistsCmd.FullCommand():
		index, err := loadIndex(ctx, cfg)
		if err != nil {
			return err
		}
		printArtists(index, *artistsQuery)
		return nil

	case submitCmd.FullCommand():
		client, err := newClient(cfg)
		if err != nil {
			return err
		}
		opts := submitOptions{
			Artist:     *submitArtist,
			Genre:      *submitGenre,
			Subgenre:   *submitSubgenre,
			Popularity: *submitPopularity,
			Sliders: map[form.Slider]float64{
				form.SliderEnergy:           *submitEnergy,
				form.SliderMode:             *submitMode,
				form.SliderSpeechiness:      *submitSpeechiness,
				form.SliderInstrumentalness: *submitInstrumentalness,
			},
		}
		return submit(ctx, cfg, client, opts, os.Stdout, os.Stderr)

	default:
		index, err := loadIndex(ctx, cfg)
		if err != nil {
			return err
		}
		client, err := newClient(cfg)
		if err != nil {
			return err
		}
		return runTUI(ctx, cfg, index, client)
	}
}

func loadIndex(ctx context.Context, cfg *config.Config) (*artist.Index, error) {
	sources, err := artist.NewSourcesFromConfig(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create artist sources")
	}
	return artist.Load(ctx, sources, cfg.Autocomplete.MaxSuggestions), nil
}

func newClient(cfg *config.Config) (*recommender.Client, error) {
	client, err := recommender.New(recommender.Config{
		Endpoint: cfg.Recommender.Endpoint,
		Timeout:  cfg.Timeout(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create recommender client")
	}
	return client, nil
}

func runTUI(ctx context.Context, cfg *config.Config, index *artist.Index, client *recommender.Client) error {
	model := tui.New(ctx, tui.Deps{
		Searcher:  index,
		Submitter: client,
		Config:    cfg,
		Endpoint:  client.Endpoint(),
	})

	zlog.Info().Msgf("Starting form: artists=%d endpoint=%s", index.Len(), client.Endpoint())
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "terminal UI failed")
	}
	return nil
}

// submitOptions are the form values given on the command line.
type submitOptions struct {
	Artist     string
	Genre      string
	Subgenre   string
	Popularity string
	Sliders    map[form.Slider]float64
}

// submit fills a form from opts and runs one submission. The rendered
// result goes to stdout, a rendered failure to stderr; a rendered failure
// is returned marked with errAlreadyReported.
func submit(ctx context.Context, cfg *config.Config, client *recommender.Client, opts submitOptions, stdout, stderr io.Writer) error {
	f := form.New(cfg.Form.DefaultPopularity)
	noArtists := artist.NewIndex(nil, cfg.Autocomplete.MaxSuggestions)
	s := session.New(f, noArtists, nil, render.New(cfg.Messages, client.Endpoint()), client)

	f.SetArtist(opts.Artist)
	if opts.Popularity != "" {
		f.SetPopularity(opts.Popularity)
	}
	if err := f.SelectGenre(opts.Genre); err != nil {
		return err
	}
	if err := f.SelectSubgenre(opts.Subgenre); err != nil {
		return err
	}
	for name, v := range opts.Sliders {
		if _, err := f.SetSlider(name, v); err != nil {
			return err
		}
	}

	err := s.Submit(ctx)
	d := s.Display()
	if d.ShowsError() {
		fmt.Fprintln(stderr, tui.RenderError(d.Error))
		if err == nil {
			err = errors.New(d.Error)
		}
		return errors.Mark(err, errAlreadyReported)
	}
	fmt.Fprint(stdout, tui.RenderDisplay(d, 0))
	return err
}

func printArtists(index *artist.Index, query string) {
	matches := index.Search(strings.TrimSpace(query))
	if len(matches) == 0 {
		fmt.Println("No artists found")
		return
	}
	for _, name := range matches {
		fmt.Println(name)
	}
}

func printGenres() {
	fmt.Println("Genres:")
	for _, g := range genre.All() {
		fmt.Printf("  %-8s %s\n", g.Key, g.Label)
		for _, sub := range g.Subgenres {
			fmt.Printf("           - %s\n", sub)
		}
	}
}
