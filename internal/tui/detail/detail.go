// Package detail shows a single artwork.
package detail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/artic/internal/domain"
	"github.com/mmcdole/artic/internal/tui/home"
	"github.com/mmcdole/artic/internal/tui/styles"
)

const defaultLoadTimeout = 30 * time.Second

// Loader fetches a single artwork
type Loader interface {
	GetArtwork(ctx context.Context, id int) (*domain.Artwork, error)
}

// Lookup finds an artwork already in the feed
type Lookup interface {
	Artwork(id int) (*domain.Artwork, bool)
}

// Deps are the collaborators of the detail screen
type Deps struct {
	Loader   Loader
	Lookup   Lookup // Optional; shows the feed copy while the full record loads
	IIIFBase string
	Timeout  time.Duration
	Logger   *slog.Logger
}

// LoadedMsg carries the result of loading an artwork
type LoadedMsg struct {
	ID      int
	Artwork *domain.Artwork
	Err     error
}

// BackMsg asks the router to leave the detail screen
type BackMsg struct{}

// KeyMap defines key bindings for the detail screen
type KeyMap struct {
	Back key.Binding
	Up   key.Binding
	Down key.Binding
}

// DefaultKeyMap returns the default detail key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace", "h", "left"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
	}
}

// Screen is the single artwork view
type Screen struct {
	deps   Deps
	keys   KeyMap
	logger *slog.Logger

	id       int
	artwork  *domain.Artwork
	err      error
	loading  bool
	viewport viewport.Model
	spinner  spinner.Model

	width  int
	height int
}

// New creates the screen for an artwork id
func New(id int, deps Deps) *Screen {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if deps.Timeout <= 0 {
		deps.Timeout = defaultLoadTimeout
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	s := &Screen{
		deps:     deps,
		keys:     DefaultKeyMap(),
		logger:   logger,
		id:       id,
		viewport: viewport.New(0, 0),
		spinner:  sp,
	}
	if deps.Lookup != nil {
		if a, ok := deps.Lookup.Artwork(id); ok {
			s.artwork = a
		}
	}
	return s
}

// ID returns the artwork id
func (s *Screen) ID() int { return s.id }

// Artwork returns the artwork shown, nil until loaded
func (s *Screen) Artwork() *domain.Artwork { return s.artwork }

// Err returns the load error, if any
func (s *Screen) Err() error { return s.err }

// Init starts loading the full record
func (s *Screen) Init() tea.Cmd {
	if s.deps.Loader == nil {
		return nil
	}
	s.loading = true
	return tea.Batch(s.load(), s.spinner.Tick)
}

func (s *Screen) load() tea.Cmd {
	loader, id, timeout := s.deps.Loader, s.id, s.deps.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		a, err := loader.GetArtwork(ctx, id)
		return LoadedMsg{ID: id, Artwork: a, Err: err}
	}
}

// SetSize resizes the screen
func (s *Screen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.viewport.Width = width
	s.viewport.Height = max(height-1, 1)
	s.render()
}

// Update handles a message and returns the follow-up command
func (s *Screen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)

	case LoadedMsg:
		if msg.ID != s.id {
			return nil
		}
		s.loading = false
		if msg.Err != nil {
			s.logger.Error("failed to load artwork", "id", s.id, "error", msg.Err)
			s.err = msg.Err
		} else {
			s.err = nil
			s.artwork = msg.Artwork
		}
		s.render()

	case spinner.TickMsg:
		if msg.ID != s.spinner.ID() || !s.loading {
			return nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Back):
			return func() tea.Msg { return BackMsg{} }
		case key.Matches(msg, s.keys.Up):
			s.viewport.SetYOffset(s.viewport.YOffset - 1)
		case key.Matches(msg, s.keys.Down):
			s.viewport.SetYOffset(s.viewport.YOffset + 1)
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			s.viewport.SetYOffset(s.viewport.YOffset - 3)
		case tea.MouseButtonWheelDown:
			s.viewport.SetYOffset(s.viewport.YOffset + 3)
		}
	}
	return nil
}

func (s *Screen) render() {
	if s.width <= 0 {
		return
	}
	s.viewport.SetContent(s.content())
}

func (s *Screen) content() string {
	var b strings.Builder
	b.WriteString("\n")

	if s.err != nil && s.artwork == nil {
		b.WriteString("  " + styles.ErrorStyle.Render(errorText(s.err)))
		return b.String()
	}
	if s.artwork == nil {
		return b.String()
	}

	a := s.artwork
	textWidth := max(s.width-4, 10)

	b.WriteString(home.RenderItem(a, s.width, false))
	b.WriteString("\n\n")

	field := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		line := styles.DimStyle.Render(fmt.Sprintf("%-11s", label)) + value
		b.WriteString("  " + lipgloss.NewStyle().Width(textWidth).Render(line) + "\n")
	}
	field("Date", a.DateDisplay)
	field("Medium", a.MediumDisplay)
	field("Dimensions", a.Dimensions)
	field("Origin", a.PlaceOfOrigin)
	field("Credit", a.CreditLine)
	if a.Color != nil {
		swatch := lipgloss.NewStyle().Background(home.PanelColor(a)).Render("    ")
		field("Color", swatch+" "+a.Color.String())
	}
	if a.Thumbnail != nil {
		field("Image", a.Thumbnail.URL(s.deps.IIIFBase))
		field("Alt text", a.Thumbnail.AltText)
	}

	if s.err != nil {
		b.WriteString("\n  " + styles.ErrorStyle.Render(errorText(s.err)) + "\n")
	}
	return b.String()
}

func errorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrArtworkNotFound):
		return "This artwork is no longer in the collection."
	case errors.Is(err, domain.ErrServerOffline):
		return "The museum API is unreachable."
	case errors.Is(err, domain.ErrRateLimited):
		return "Too many requests, try again shortly."
	default:
		return "Could not load artwork: " + err.Error()
	}
}

// View renders the artwork and the status line
func (s *Screen) View() string {
	if s.width <= 0 || s.height <= 0 {
		return ""
	}

	var left string
	if s.loading {
		left = s.spinner.View() + " Loading…"
	} else {
		left = styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" back  ") +
			styles.HelpKeyStyle.Render("j/k") + styles.HelpDescStyle.Render(" scroll")
	}
	return s.viewport.View() + "\n" + styles.Truncate(" "+left, s.width)
}
