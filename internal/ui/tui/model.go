// Package tui provides the terminal front end of the preference form.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/recoform/internal/app/autocomplete"
	"github.com/osa030/recoform/internal/app/form"
	"github.com/osa030/recoform/internal/app/render"
	"github.com/osa030/recoform/internal/app/session"
	"github.com/osa030/recoform/internal/infra/config"
)

// Focusable fields in tab order.
type field int

const (
	fieldArtist field = iota
	fieldPopularity
	fieldGenre
	fieldSubgenre
	fieldEnergy
	fieldMode
	fieldSpeechiness
	fieldInstrumentalness
	fieldSubmit
	fieldCount
)

// Screen rows used for mouse hit testing.
const (
	artistRow   = 2
	panelTopRow = 3
)

const coarseSliderStep = 0.10

type submissionDoneMsg session.Outcome

// Deps are the collaborators of the terminal model.
type Deps struct {
	Searcher  autocomplete.Searcher
	Submitter session.Submitter
	Config    *config.Config
	Endpoint  string
}

type Model struct {
	ctx     context.Context
	session *session.Session
	panel   *panelView

	artist     textinput.Model
	popularity textinput.Model
	spinner    spinner.Model

	focus field
	width int
}

// New creates the terminal model and its page session.
func New(ctx context.Context, d Deps) Model {
	view := newPanelView(d.Config.Autocomplete.VisibleRows)
	s := session.New(
		form.New(d.Config.Form.DefaultPopularity),
		d.Searcher,
		view,
		render.New(d.Config.Messages, d.Endpoint),
		d.Submitter,
	)

	artist := textinput.New()
	artist.Placeholder = "Start typing an artist..."
	artist.Prompt = ""
	artist.CharLimit = 100
	artist.Width = 40
	artist.Focus()

	popularity := textinput.New()
	popularity.Prompt = ""
	popularity.CharLimit = 3
	popularity.Width = 5
	popularity.SetValue(s.Form().Popularity())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorSpinner)

	return Model{
		ctx:        ctx,
		session:    s,
		panel:      view,
		artist:     artist,
		popularity: popularity,
		spinner:    sp,
		focus:      fieldArtist,
	}
}

// Session returns the page session driven by the model.
func (m Model) Session() *session.Session {
	return m.session
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.session.SubmitEnabled() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case submissionDoneMsg:
		if !m.session.Complete(session.Outcome(msg)) {
			zlog.Debug().Msgf("dropped outcome of abandoned submission: request_id=%s", msg.ID)
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if !m.session.Panel().Visible() {
			return m, tea.Quit
		}
	case "ctrl+r":
		m.session.Reset()
		m.syncInputs()
		return m, nil
	case "tab":
		return m.moveFocus(m.focus + 1)
	case "shift+tab":
		return m.moveFocus(m.focus - 1)
	}

	switch m.focus {
	case fieldArtist:
		return m.handleArtistKey(msg)
	case fieldPopularity:
		return m.handlePopularityKey(msg)
	case fieldGenre, fieldSubgenre:
		return m.handleSelectKey(msg)
	case fieldSubmit:
		switch msg.String() {
		case "enter", " ":
			return m.submit()
		case "up":
			return m.moveFocus(m.focus - 1)
		}
		return m, nil
	default:
		return m.handleSliderKey(msg)
	}
}

func (m Model) handleArtistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down":
		if !m.session.OnKeyDown(autocomplete.KeyArrowDown) {
			return m.moveFocus(m.focus + 1)
		}
		return m, nil
	case "up":
		m.session.OnKeyDown(autocomplete.KeyArrowUp)
		return m, nil
	case "esc":
		m.session.OnKeyDown(autocomplete.KeyEscape)
		return m, nil
	case "enter":
		if m.session.OnKeyDown(autocomplete.KeyEnter) {
			m.syncInputs()
			return m, nil
		}
		return m.submit()
	}

	before := m.artist.Value()
	var cmd tea.Cmd
	m.artist, cmd = m.artist.Update(msg)
	if m.artist.Value() != before {
		m.session.OnInput(m.artist.Value())
	}
	return m, cmd
}

func (m Model) handlePopularityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down":
		return m.moveFocus(m.focus + 1)
	case "up":
		return m.moveFocus(m.focus - 1)
	case "enter":
		return m.submit()
	}

	var cmd tea.Cmd
	m.popularity, cmd = m.popularity.Update(msg)
	m.session.Form().SetPopularity(m.popularity.Value())
	return m, cmd
}

func (m Model) handleSelectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down":
		return m.moveFocus(m.focus + 1)
	case "up":
		return m.moveFocus(m.focus - 1)
	case "enter":
		return m.submit()
	case "left":
		m.cycleOption(-1)
	case "right", " ":
		m.cycleOption(1)
	}
	return m, nil
}

func (m Model) handleSliderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.focusedSlider()
	f := m.session.Form()
	delta := 0.0

	switch msg.String() {
	case "down":
		return m.moveFocus(m.focus + 1)
	case "up":
		return m.moveFocus(m.focus - 1)
	case "enter":
		return m.submit()
	case "left":
		delta = -form.SliderStep
	case "right":
		delta = form.SliderStep
	case "shift+left":
		delta = -coarseSliderStep
	case "shift+right":
		delta = coarseSliderStep
	default:
		return m, nil
	}

	if _, err := f.SetSlider(s, f.SliderValue(s)+delta); err != nil {
		zlog.Error().Msgf("failed to move slider: %v", err)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	snap := m.session.Panel()
	start, end := m.panel.window(len(snap.Suggestions))
	onRow := snap.State == autocomplete.StateShowingResults &&
		msg.Y >= panelTopRow && msg.Y < panelTopRow+end-start
	index := start + msg.Y - panelTopRow

	switch {
	case msg.Action == tea.MouseActionMotion:
		if onRow {
			m.session.OnMouseEnter(index)
		}
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		switch {
		case onRow:
			m.session.OnClickSuggestion(index)
			m.syncInputs()
		case msg.Y == artistRow:
			return m.moveFocus(fieldArtist)
		case snap.State == autocomplete.StateShowingNoResults && msg.Y == panelTopRow:
			// the "no artists found" row belongs to the panel
		default:
			m.session.OnClickOutside()
		}
	}
	return m, nil
}

func (m Model) moveFocus(to field) (tea.Model, tea.Cmd) {
	to = (to + fieldCount) % fieldCount
	if to == m.focus {
		return m, nil
	}
	if m.focus == fieldArtist {
		m.session.OnClickOutside()
	}

	m.focus = to
	m.artist.Blur()
	m.popularity.Blur()

	var cmd tea.Cmd
	switch to {
	case fieldArtist:
		cmd = m.artist.Focus()
	case fieldPopularity:
		cmd = m.popularity.Focus()
	}
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	p, err := m.session.OnSubmit()
	if err != nil {
		zlog.Debug().Msgf("submission not started: %v", err)
		return m, nil
	}
	return m, tea.Batch(m.spinner.Tick, m.run(p))
}

func (m Model) run(p *session.Pending) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return submissionDoneMsg(p.Run(ctx))
	}
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds [2]tea.Cmd
	m.artist, cmds[0] = m.artist.Update(msg)
	m.popularity, cmds[1] = m.popularity.Update(msg)
	return m, tea.Batch(cmds[:]...)
}

// syncInputs copies form values into the text inputs after the session
// changed them.
func (m *Model) syncInputs() {
	f := m.session.Form()
	if m.artist.Value() != f.Artist() {
		m.artist.SetValue(f.Artist())
		m.artist.CursorEnd()
	}
	if m.popularity.Value() != f.Popularity() {
		m.popularity.SetValue(f.Popularity())
	}
}

func (m *Model) cycleOption(step int) {
	f := m.session.Form()
	if m.focus == fieldGenre {
		opts := f.GenreOptions()
		next := opts[cycle(optionIndex(opts, f.Genre()), step, len(opts))]
		if err := f.SelectGenre(next.Value); err != nil {
			zlog.Error().Msgf("failed to select genre: %v", err)
		}
		return
	}

	opts := f.SubgenreOptions()
	if len(opts) <= 1 {
		return
	}
	next := opts[cycle(optionIndex(opts, f.Subgenre()), step, len(opts))]
	if err := f.SelectSubgenre(next.Value); err != nil {
		zlog.Error().Msgf("failed to select subgenre: %v", err)
	}
}

func (m Model) focusedSlider() form.Slider {
	return form.Sliders[int(m.focus-fieldEnergy)]
}

func optionIndex(opts []form.Option, value string) int {
	for i, o := range opts {
		if o.Value == value {
			return i
		}
	}
	return 0
}

func cycle(i, step, n int) int {
	return ((i+step)%n + n) % n
}

func (m Model) View() string {
	var b strings.Builder
	f := m.session.Form()

	b.WriteString(titleStyle.Render("🎧 Music Recommendation System"))
	b.WriteString("\n\n")

	b.WriteString(m.label(fieldArtist, "Artist *") + m.artist.View() + "\n")
	b.WriteString(m.panelRows())

	b.WriteString(m.label(fieldPopularity, "Popularity") + m.popularity.View() + mutedStyle.Render(" (0-100)") + "\n")
	b.WriteString(m.label(fieldGenre, "Genre *") + selectLabel(f.GenreOptions(), f.Genre()) + "\n")
	b.WriteString(m.label(fieldSubgenre, "Subgenre *") + m.subgenreLabel() + "\n")

	for i, s := range form.Sliders {
		fld := fieldEnergy + field(i)
		b.WriteString(m.label(fld, sliderTitle(s)) + sliderBar(f.SliderValue(s)) + " " + f.SliderDisplay(s) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.submitButton())
	b.WriteString("\n\n")

	b.WriteString(RenderDisplay(m.session.Display(), m.width))
	b.WriteString(mutedStyle.Render("tab/↑↓ move · ←→ adjust · enter submit · ctrl+r reset · esc/ctrl+c quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) label(fld field, text string) string {
	if m.focus == fld {
		return focusedStyle.Render("› " + text)
	}
	return labelStyle.Render("  " + text)
}

func (m Model) panelRows() string {
	snap := m.session.Panel()
	switch snap.State {
	case autocomplete.StateShowingNoResults:
		return rowStyle.Render(mutedStyle.Render("No artists found")) + "\n"
	case autocomplete.StateShowingResults:
		var b strings.Builder
		start, end := m.panel.window(len(snap.Suggestions))
		for i := start; i < end; i++ {
			if i == m.panel.highlighted {
				b.WriteString(selectedStyle.Render("▸ "+snap.Suggestions[i]) + "\n")
			} else {
				b.WriteString(rowStyle.Render("  "+snap.Suggestions[i]) + "\n")
			}
		}
		return b.String()
	default:
		return ""
	}
}

func (m Model) subgenreLabel() string {
	f := m.session.Form()
	if f.Genre() == "" {
		return mutedStyle.Render(form.SubgenrePlaceholder)
	}
	return selectLabel(f.SubgenreOptions(), f.Subgenre())
}

func (m Model) submitButton() string {
	if !m.session.SubmitEnabled() {
		return buttonStyle.Render(m.spinner.View() + " Getting recommendations...")
	}
	if m.focus == fieldSubmit {
		return activeButton.Render("Get Recommendations")
	}
	return buttonStyle.Render("Get Recommendations")
}

func selectLabel(opts []form.Option, value string) string {
	for _, o := range opts {
		if o.Value == value {
			if value == "" {
				return mutedStyle.Render("‹ " + o.Label + " ›")
			}
			return "‹ " + o.Label + " ›"
		}
	}
	return value
}

func sliderTitle(s form.Slider) string {
	name := string(s)
	return strings.ToUpper(name[:1]) + name[1:]
}

func sliderBar(v float64) string {
	const width = 20
	filled := int(v*width + 0.5)
	return fmt.Sprintf("[%s%s]", strings.Repeat("█", filled), strings.Repeat("░", width-filled))
}
