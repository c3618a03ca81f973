// Package home is the artwork feed screen: an events header, an endlessly
// paginated list of artwork cards, pull to refresh, and a header that slides
// away once the list is scrolled.
package home

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/artic/internal/domain"
	"github.com/mmcdole/artic/internal/feed"
	"github.com/mmcdole/artic/internal/motion"
	"github.com/mmcdole/artic/internal/search"
	"github.com/mmcdole/artic/internal/tui/styles"
)

// RouteSingleArtwork is the route of the artwork detail screen.
// Its params carry the artwork id under "id".
const RouteSingleArtwork = "SingleArtwork"

const (
	statusHeight = 1
	wheelStep    = 3
)

// ArtworkSource is the read-only view of the artwork feed
type ArtworkSource interface {
	Artworks() []*domain.Artwork
}

// EventSource is the read-only view of upcoming events
type EventSource interface {
	Events() []domain.Event
}

// Navigator moves to another screen
type Navigator interface {
	Navigate(route string, params map[string]string)
}

// Insets are the rows reserved at the top and bottom of the screen
type Insets struct {
	Top    int
	Bottom int
}

// Deps are the collaborators of the home screen
type Deps struct {
	Fetcher      feed.Fetcher
	Artworks     ArtworkSource
	Events       EventSource
	Navigator    Navigator
	Insets       Insets
	Stiffness    float64       // Header spring stiffness, 0 for the default
	FetchTimeout time.Duration // Per fetch, 0 for the default
	Logger       *slog.Logger
}

// FrameMsg advances the header animation by one frame
type FrameMsg struct{}

func frameCmd() tea.Cmd {
	return tea.Tick(time.Second/motion.FrameRate, func(time.Time) tea.Msg {
		return FrameMsg{}
	})
}

// cardSpan locates a rendered card in the list content
type cardSpan struct {
	index  int // Position in the artwork feed
	key    string
	top    int
	height int
}

// Screen is the home feed
type Screen struct {
	deps   Deps
	keys   KeyMap
	logger *slog.Logger

	viewport  viewport.Model
	spinner   spinner.Model
	filter    textinput.Model
	filtering bool // Filter input has focus

	tracker   motion.Tracker
	driver    *motion.Driver
	animating bool // A frame tick is scheduled
	spinning  bool // A spinner tick is scheduled

	controller *feed.Controller
	end        *feed.EndDetector
	pull       *feed.PullGesture
	carousel   *Carousel

	artworks []*domain.Artwork
	visible  []int // Indices into artworks after filtering
	spans    []cardSpan
	cursor   int    // Index into visible
	selected string // Key of the card under the cursor
	cache    map[string]string
	ready    bool // The first page has arrived

	width  int
	height int
}

// New creates the home screen; nothing is fetched until Init
func New(deps Deps) *Screen {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle

	ti := textinput.New()
	ti.Prompt = "/"
	ti.PromptStyle = styles.FilterPromptStyle
	ti.Placeholder = "title or artist"
	ti.CharLimit = 64

	return &Screen{
		deps:       deps,
		keys:       DefaultKeyMap(),
		logger:     logger,
		viewport:   viewport.New(0, 0),
		spinner:    sp,
		filter:     ti,
		driver:     motion.NewDriver(deps.Stiffness),
		controller: feed.NewController(deps.Fetcher, deps.FetchTimeout, logger),
		end:        feed.NewEndDetector(feed.DefaultEndThreshold),
		pull:       feed.NewPullGesture(feed.DefaultPullThreshold),
		carousel:   NewCarousel(),
		cache:      make(map[string]string),
	}
}

// Init requests events and the first page of artworks
func (s *Screen) Init() tea.Cmd {
	return s.controller.Mount()
}

// Loading reports whether an end-reached or refresh fetch is in flight
func (s *Screen) Loading() bool { return s.controller.Loading() }

// Active reports whether the list is scrolled past its top
func (s *Screen) Active() bool { return s.tracker.Active() }

// Progress is the header animation progress in [0,1]
func (s *Screen) Progress() float64 { return s.driver.Progress() }

// Offset is the list scroll offset in rows
func (s *Screen) Offset() int { return s.viewport.YOffset }

// Filtering reports whether the filter input has focus
func (s *Screen) Filtering() bool { return s.filtering }

// SetSize resizes the screen
func (s *Screen) SetSize(width, height int) {
	if width != s.width {
		clear(s.cache)
	}
	s.width = width
	s.height = height
	s.viewport.Width = width
	s.viewport.Height = max(height-statusHeight, 1)
	s.carousel.SetWidth(width)
	s.filter.Width = max(width-20, 10)
	s.rebuild()
}

// Sync re-reads artworks and events from the store
func (s *Screen) Sync() {
	if s.deps.Artworks != nil {
		s.artworks = s.deps.Artworks.Artworks()
	}
	if s.deps.Events != nil {
		s.carousel.SetEvents(s.deps.Events.Events())
	}
	s.applyFilter()
	s.rebuild()
}

// Update handles a message and returns the follow-up command
func (s *Screen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)
		return s.afterScroll()

	case tea.KeyMsg:
		if s.filtering {
			return s.handleFilterKey(msg)
		}
		return s.handleKey(msg)

	case tea.MouseMsg:
		return s.handleMouse(msg)

	case FrameMsg:
		s.driver.Step()
		if s.driver.Settled() {
			s.animating = false
			return nil
		}
		return frameCmd()

	case spinner.TickMsg:
		if msg.ID != s.spinner.ID() {
			return nil
		}
		if !s.controller.Loading() {
			s.spinning = false
			return nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd

	case feed.FetchDoneMsg:
		return s.handleFetchDone(msg)
	}
	return nil
}

func (s *Screen) handleFetchDone(msg feed.FetchDoneMsg) tea.Cmd {
	s.controller.Finish(msg)

	switch msg.Kind {
	case feed.KindInitial, feed.KindRefresh:
		s.ready = true
		if msg.Err == nil {
			clear(s.cache)
			s.end.Reset()
		}
	}

	s.Sync()
	return s.afterScroll()
}

func (s *Screen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, s.keys.Up):
		if s.cursor > 0 {
			s.moveCursor(s.cursor - 1)
			return s.afterScroll()
		}
		if s.viewport.YOffset > 0 {
			return s.ScrollTo(0)
		}
		return s.pullAtTop()

	case key.Matches(msg, s.keys.Down):
		s.pull.Release()
		if s.cursor < len(s.visible)-1 {
			s.moveCursor(s.cursor + 1)
			return s.afterScroll()
		}
		return s.ScrollTo(s.viewport.YOffset + 1)

	case key.Matches(msg, s.keys.PageDown):
		cmd := s.ScrollTo(s.viewport.YOffset + s.viewport.Height)
		s.cursorToOffset()
		return cmd

	case key.Matches(msg, s.keys.PageUp):
		cmd := s.ScrollTo(s.viewport.YOffset - s.viewport.Height)
		s.cursorToOffset()
		return cmd

	case key.Matches(msg, s.keys.Bottom):
		if len(s.visible) > 0 {
			s.cursor = len(s.visible) - 1
			s.rebuild()
		}
		s.viewport.GotoBottom()
		return s.afterScroll()

	case key.Matches(msg, s.keys.ScrollTop):
		return s.ScrollTop()

	case key.Matches(msg, s.keys.Refresh):
		return s.refresh()

	case key.Matches(msg, s.keys.Select):
		s.open()
		return nil

	case key.Matches(msg, s.keys.Filter):
		s.filtering = true
		s.filter.Focus()
		return textinput.Blink

	case key.Matches(msg, s.keys.Escape):
		if s.query() != "" {
			s.filter.SetValue("")
			s.applyFilter()
			s.rebuild()
			return s.afterScroll()
		}

	case key.Matches(msg, s.keys.NextEvent):
		s.carousel.Next()
		s.rebuild()

	case key.Matches(msg, s.keys.PrevEvent):
		s.carousel.Prev()
		s.rebuild()
	}
	return nil
}

func (s *Screen) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		s.filtering = false
		s.filter.Blur()
		s.filter.SetValue("")
	case tea.KeyEnter:
		s.filtering = false
		s.filter.Blur()
		return nil
	default:
		before := s.filter.Value()
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		if s.filter.Value() == before {
			return cmd
		}
		s.cursor = 0
		s.selected = ""
		s.applyFilter()
		s.rebuild()
		return tea.Batch(cmd, s.afterScroll())
	}

	s.applyFilter()
	s.rebuild()
	return s.afterScroll()
}

func (s *Screen) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if s.viewport.YOffset == 0 {
			return s.pullAtTop()
		}
		return s.ScrollTo(s.viewport.YOffset - wheelStep)

	case tea.MouseButtonWheelDown:
		s.pull.Release()
		return s.ScrollTo(s.viewport.YOffset + wheelStep)

	case tea.MouseButtonLeft:
		if s.onScrollTopButton(msg.X, msg.Y) {
			return s.ScrollTop()
		}
		if msg.Y >= s.viewport.Height || s.onOverlayBar(msg.Y) {
			return nil
		}
		line := s.viewport.YOffset + msg.Y
		for n, span := range s.spans {
			if line >= span.top && line < span.top+span.height {
				s.moveCursor(n)
				s.open()
				return nil
			}
		}
	}
	return nil
}

// ScrollTo moves the list to offset (clamped) and samples the new position
func (s *Screen) ScrollTo(offset int) tea.Cmd {
	if offset > s.viewport.YOffset {
		s.pull.Release()
	}
	s.viewport.SetYOffset(offset)
	return s.afterScroll()
}

// ScrollTop returns the list to its very top with the first card selected
func (s *Screen) ScrollTop() tea.Cmd {
	s.pull.Release()
	if s.cursor != 0 && len(s.visible) > 0 {
		s.cursor = 0
		s.rebuild()
	}
	s.viewport.GotoTop()
	return s.afterScroll()
}

// afterScroll feeds the offset to the tracker and checks for the list end
func (s *Screen) afterScroll() tea.Cmd {
	var cmds []tea.Cmd
	if s.tracker.OnScroll(float64(s.viewport.YOffset)) {
		s.driver.SetActive(s.tracker.Active())
		cmds = append(cmds, s.startAnimation())
	}
	cmds = append(cmds, s.checkEndReached())
	return tea.Batch(cmds...)
}

func (s *Screen) startAnimation() tea.Cmd {
	if s.animating {
		return nil
	}
	s.animating = true
	return frameCmd()
}

func (s *Screen) startSpinner() tea.Cmd {
	if s.spinning || !s.controller.Loading() {
		return nil
	}
	s.spinning = true
	return s.spinner.Tick
}

// checkEndReached asks for the next page once the viewport nears the end.
// A filtered list never paginates.
func (s *Screen) checkEndReached() tea.Cmd {
	if len(s.artworks) == 0 || s.query() != "" || !s.ready {
		return nil
	}
	if !s.end.Check(s.viewport.YOffset, s.viewport.Height, s.viewport.TotalLineCount()) {
		return nil
	}
	cmd := s.controller.EndReached()
	if cmd == nil {
		// Skipped while loading; stay armed so the end fires once the fetch settles
		s.end.Reset()
		return nil
	}
	return tea.Batch(cmd, s.startSpinner())
}

// pullAtTop counts one pull; enough of them refresh the feed
func (s *Screen) pullAtTop() tea.Cmd {
	if s.cursor != 0 || !s.pull.Pull() {
		return nil
	}
	return s.refresh()
}

func (s *Screen) refresh() tea.Cmd {
	s.pull.Release()
	cmd := s.controller.RefreshPull()
	return tea.Batch(cmd, s.startSpinner())
}

// open navigates to the artwork under the cursor
func (s *Screen) open() {
	if s.cursor >= len(s.visible) || s.deps.Navigator == nil {
		return
	}
	a := s.artworks[s.visible[s.cursor]]
	if a == nil {
		return
	}
	s.logger.Debug("opening artwork", "id", a.ID)
	s.deps.Navigator.Navigate(RouteSingleArtwork, map[string]string{"id": strconv.Itoa(a.ID)})
}

func (s *Screen) moveCursor(n int) {
	if n < 0 || n >= len(s.visible) {
		return
	}
	s.cursor = n
	s.rebuild()
	if n >= len(s.spans) {
		return
	}

	span := s.spans[n]
	switch {
	case span.top < s.viewport.YOffset:
		s.viewport.SetYOffset(span.top)
	case span.top+span.height > s.viewport.YOffset+s.viewport.Height:
		s.viewport.SetYOffset(span.top + span.height - s.viewport.Height)
	}
}

// cursorToOffset selects the first card that starts inside the viewport
func (s *Screen) cursorToOffset() {
	if len(s.spans) == 0 {
		return
	}
	n := len(s.spans) - 1
	for i, span := range s.spans {
		if span.top >= s.viewport.YOffset {
			n = i
			break
		}
	}
	if n != s.cursor {
		s.cursor = n
		s.rebuild()
	}
}

func (s *Screen) query() string {
	return strings.TrimSpace(s.filter.Value())
}

// applyFilter recomputes the visible cards, keeping the selected card under
// the cursor when it survives
func (s *Screen) applyFilter() {
	s.visible = search.Filter(s.query(), s.artworks)

	if s.selected != "" {
		for n, idx := range s.visible {
			if KeyFor(s.artworks[idx], idx) == s.selected {
				s.cursor = n
				return
			}
		}
	}
	s.cursor = max(min(s.cursor, len(s.visible)-1), 0)
}

// rebuild renders the header and cards into the viewport content
func (s *Screen) rebuild() {
	if s.width <= 0 {
		return
	}

	var b strings.Builder
	lines := 0
	write := func(block string) {
		b.WriteString(block)
		b.WriteString("\n")
		lines += lipgloss.Height(block)
	}

	write(RenderHeader(s.deps.Insets.Top, s.carousel.View()))
	write("")

	s.spans = s.spans[:0]
	s.selected = ""
	for n, idx := range s.visible {
		if n > 0 {
			write(RenderSeparator(s.width))
			write("")
		}
		a := s.artworks[idx]
		k := KeyFor(a, idx)
		card := s.renderCard(a, k, n == s.cursor)
		if n == s.cursor {
			s.selected = k
		}
		s.spans = append(s.spans, cardSpan{index: idx, key: k, top: lines, height: lipgloss.Height(card)})
		write(card)
	}

	if len(s.visible) == 0 {
		write(s.emptyState())
	}
	// Room below the last card so the end zone is reachable
	write(strings.Repeat("\n", max(s.deps.Insets.Bottom, 0)))

	s.viewport.SetContent(strings.TrimSuffix(b.String(), "\n"))
	s.viewport.SetYOffset(s.viewport.YOffset)
}

func (s *Screen) renderCard(a *domain.Artwork, key string, selected bool) string {
	cacheKey := key
	if selected {
		cacheKey += "*"
	}
	if card, ok := s.cache[cacheKey]; ok {
		return card
	}
	card := RenderItem(a, s.width, selected)
	s.cache[cacheKey] = card
	return card
}

func (s *Screen) emptyState() string {
	switch {
	case !s.ready:
		return styles.DimStyle.Render("  Loading artworks…")
	case s.query() != "":
		return styles.DimStyle.Render("  No artworks match " + strconv.Quote(s.query()))
	default:
		return styles.DimStyle.Render("  No artworks")
	}
}

// scrollTopRow is the screen row of the scroll-to-top control
func (s *Screen) scrollTopRow() int {
	return max(s.viewport.Height-1-s.deps.Insets.Bottom, 0)
}

func (s *Screen) scrollTopCol() int {
	return max(s.width-ScrollTopWidth()-1, 0)
}

func (s *Screen) onScrollTopButton(x, y int) bool {
	if ScrollTopButton(s.driver.Opacity()) == "" {
		return false
	}
	col := s.scrollTopCol()
	return y == s.scrollTopRow() && x >= col && x < col+ScrollTopWidth()
}

// onOverlayBar reports whether screen row y is covered by the header bar
func (s *Screen) onOverlayBar(y int) bool {
	top, bar := RenderOverlay(s.width, s.deps.Insets.Top, s.driver.TranslateY())
	return y >= top && y < top+len(bar)
}

// View renders the list with the header overlay and scroll-to-top control
// drawn over it, and the status line below
func (s *Screen) View() string {
	if s.width <= 0 || s.height <= 0 {
		return ""
	}

	rows := strings.Split(s.viewport.View(), "\n")

	top, bar := RenderOverlay(s.width, s.deps.Insets.Top, s.driver.TranslateY())
	for i, line := range bar {
		if r := top + i; r >= 0 && r < len(rows) {
			rows[r] = line
		}
	}

	if button := ScrollTopButton(s.driver.Opacity()); button != "" {
		if r := s.scrollTopRow(); r < len(rows) {
			rows[r] = overlayLine(rows[r], s.scrollTopCol(), s.width, button)
		}
	}

	return strings.Join(rows, "\n") + "\n" + s.statusLine()
}

func (s *Screen) statusLine() string {
	var left string
	switch {
	case s.filtering:
		left = s.filter.View()
	case s.controller.Loading():
		left = s.spinner.View() + " Loading…"
	case s.pull.Progress() > 0:
		left = styles.AccentStyle.Render(pullMeter(s.pull.Progress())) + styles.DimStyle.Render(" keep pulling to refresh")
	case s.query() != "":
		left = styles.FilterPromptStyle.Render("/") + s.query() + styles.DimStyle.Render(fmt.Sprintf("  %d matches · esc clears", len(s.visible)))
	default:
		left = styles.HelpKeyStyle.Render("/") + styles.HelpDescStyle.Render(" filter  ") +
			styles.HelpKeyStyle.Render("r") + styles.HelpDescStyle.Render(" refresh  ") +
			styles.HelpKeyStyle.Render("t") + styles.HelpDescStyle.Render(" top  ") +
			styles.HelpKeyStyle.Render("enter") + styles.HelpDescStyle.Render(" open")
	}

	right := styles.DimStyle.Render(fmt.Sprintf("%d artworks ", len(s.artworks)))
	gap := max(s.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return styles.Truncate(" "+left+strings.Repeat(" ", gap-1)+right, s.width)
}

// pullMeter draws pull progress as filled dots
func pullMeter(progress float64) string {
	filled := int(progress * feed.DefaultPullThreshold)
	return strings.Repeat("●", filled) + strings.Repeat("○", feed.DefaultPullThreshold-filled)
}
