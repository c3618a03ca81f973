package tui

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/artic/internal/domain"
	"github.com/mmcdole/artic/internal/feed"
	"github.com/mmcdole/artic/internal/tui/detail"
	"github.com/mmcdole/artic/internal/tui/home"
)

// Catalog is the data-fetching side of the museum: the feed pages and single
// artwork lookups
type Catalog interface {
	feed.Fetcher
	detail.Loader
}

// Options tune the screens
type Options struct {
	Insets       home.Insets
	IIIFBase     string
	Stiffness    float64
	FetchTimeout time.Duration
}

// Model is the main Bubble Tea model for the application
type Model struct {
	catalog Catalog
	store   domain.Store
	opts    Options
	logger  *slog.Logger
	keys    KeyMap

	router *Router
	home   *home.Screen
	detail *detail.Screen // nil unless an artwork is open

	// Dimensions
	Width  int
	Height int
}

// NewModel creates a new application model resting on the home feed
func NewModel(catalog Catalog, store domain.Store, opts Options, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	router := NewRouter(RouteHome)

	return Model{
		catalog: catalog,
		store:   store,
		opts:    opts,
		logger:  logger,
		keys:    DefaultKeyMap(),
		router:  router,
		home: home.New(home.Deps{
			Fetcher:      catalog,
			Artworks:     store,
			Events:       store,
			Navigator:    router,
			Insets:       opts.Insets,
			Stiffness:    opts.Stiffness,
			FetchTimeout: opts.FetchTimeout,
			Logger:       logger.With("screen", "home"),
		}),
	}
}

// Init mounts the home feed
func (m Model) Init() tea.Cmd {
	return m.home.Init()
}

// Router exposes the navigation stack
func (m Model) Router() *Router { return m.router }

// Detail returns the open detail screen, nil on the home feed
func (m Model) Detail() *detail.Screen { return m.detail }

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		cmds = append(cmds, m.home.Update(msg))
		if m.detail != nil {
			m.detail.Update(msg)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.detail == nil && !m.home.Filtering() && key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		cmds = append(cmds, m.activeUpdate(msg))

	case tea.MouseMsg:
		cmds = append(cmds, m.activeUpdate(msg))

	case detail.BackMsg:
		m.router.Back()

	case detail.LoadedMsg:
		if m.detail != nil {
			cmds = append(cmds, m.detail.Update(msg))
		}

	case spinner.TickMsg:
		// Each screen ignores ticks of the other's spinner
		cmds = append(cmds, m.home.Update(msg))
		if m.detail != nil {
			cmds = append(cmds, m.detail.Update(msg))
		}

	default:
		// Fetch results and animation frames keep flowing to the feed while
		// an artwork is open
		cmds = append(cmds, m.home.Update(msg))
	}

	cmds = append(cmds, m.applyRoute())
	return m, tea.Batch(cmds...)
}

func (m *Model) activeUpdate(msg tea.Msg) tea.Cmd {
	if m.detail != nil {
		return m.detail.Update(msg)
	}
	return m.home.Update(msg)
}

// applyRoute swaps screens after a navigation
func (m *Model) applyRoute() tea.Cmd {
	route, ok := m.router.TakeChange()
	if !ok {
		return nil
	}

	switch route.Name {
	case RouteSingleArtwork:
		id, err := strconv.Atoi(route.Params["id"])
		if err != nil {
			m.logger.Warn("invalid artwork route", "params", route.Params, "error", err)
			m.router.Back()
			m.router.TakeChange()
			return nil
		}
		m.detail = detail.New(id, detail.Deps{
			Loader:   m.catalog,
			Lookup:   m.store,
			IIIFBase: m.opts.IIIFBase,
			Timeout:  m.opts.FetchTimeout,
			Logger:   m.logger.With("screen", "detail"),
		})
		m.detail.SetSize(m.Width, m.Height)
		return m.detail.Init()

	default:
		m.detail = nil
		return nil
	}
}

// View renders the active screen
func (m Model) View() string {
	if m.detail != nil {
		return m.detail.View()
	}
	return m.home.View()
}
