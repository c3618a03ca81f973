package home

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/artic/internal/domain"
	"github.com/mmcdole/artic/internal/feed"
)

const testPageSize = 30

// fakeFeed is fetcher and store in one: fetches write straight into it
type fakeFeed struct {
	artworks []*domain.Artwork
	events   []domain.Event
	pages    []int
	eventsN  int
	next     int
}

func (f *fakeFeed) GetEvents(ctx context.Context) error {
	f.eventsN++
	f.events = []domain.Event{{ID: 1, Title: "Member Morning"}, {ID: 2, Title: "Gallery Talk"}}
	return nil
}

func (f *fakeFeed) GetArtworks(ctx context.Context, page int) error {
	f.pages = append(f.pages, page)
	if page == 1 {
		f.next = 0
		f.artworks = nil
	}
	for i := 0; i < testPageSize; i++ {
		f.next++
		f.artworks = append(f.artworks, &domain.Artwork{
			ID:          f.next,
			Title:       fmt.Sprintf("Artwork %d", f.next),
			ArtistTitle: "Artist",
		})
	}
	return nil
}

func (f *fakeFeed) Artworks() []*domain.Artwork { return f.artworks }
func (f *fakeFeed) Events() []domain.Event      { return f.events }

type fakeNavigator struct {
	route  string
	params map[string]string
}

func (n *fakeNavigator) Navigate(route string, params map[string]string) {
	n.route = route
	n.params = params
}

func newTestScreen(f *fakeFeed, nav Navigator) *Screen {
	s := New(Deps{
		Fetcher:   f,
		Artworks:  f,
		Events:    f,
		Navigator: nav,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	s.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	return s
}

// collect runs a command and flattens batches into their messages
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// fetchDone picks the fetch results out of a command's messages
func fetchDone(msgs []tea.Msg) []feed.FetchDoneMsg {
	var out []feed.FetchDoneMsg
	for _, m := range msgs {
		if done, ok := m.(feed.FetchDoneMsg); ok {
			out = append(out, done)
		}
	}
	return out
}

// mount runs Init and delivers its results
func mount(t *testing.T, s *Screen) {
	t.Helper()
	done := fetchDone(collect(s.Init()))
	if len(done) != 2 {
		t.Fatalf("Expected 2 mount fetches, got %d", len(done))
	}
	for _, d := range done {
		s.Update(d)
	}
}

// settle delivers frames until the animation rests, checking each step
func settle(t *testing.T, s *Screen, target float64) {
	t.Helper()
	prev := s.Progress()
	for i := 0; i < 1000; i++ {
		cmd := s.Update(FrameMsg{})
		p := s.Progress()
		if p < 0 || p > 1 {
			t.Fatalf("Progress out of range: %v", p)
		}
		if target == 1 && p < prev || target == 0 && p > prev {
			t.Fatalf("Progress moved away from %v: %v -> %v", target, prev, p)
		}
		prev = p
		if cmd == nil {
			break
		}
	}
	if s.Progress() != target {
		t.Fatalf("Expected progress to settle at %v, got %v", target, s.Progress())
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestHome_EndToEnd(t *testing.T) {
	f := &fakeFeed{}
	s := newTestScreen(f, &fakeNavigator{})

	// Mount issues events and page 1 before any interaction
	mount(t, s)
	if f.eventsN != 1 || len(f.pages) != 1 || f.pages[0] != 1 {
		t.Fatalf("Expected events and page 1 on mount, got events=%d pages=%v", f.eventsN, f.pages)
	}
	if s.Loading() {
		t.Fatal("Mount should not show the refresh spinner")
	}

	// Scroll down: active, progress trends to 1
	s.ScrollTo(50)
	if !s.Active() {
		t.Fatal("Expected active after scrolling to 50")
	}
	settle(t, s, 1)

	// Back to the top: inactive, progress trends to 0
	s.ScrollTo(0)
	if s.Active() {
		t.Fatal("Expected inactive at offset 0")
	}
	settle(t, s, 0)

	if len(f.pages) != 1 {
		t.Fatalf("Scrolling mid-list must not paginate, got %v", f.pages)
	}

	// Reach the end: one append, loading spans it
	appendCmd := s.Update(keyMsg("G"))
	if !s.Loading() {
		t.Fatal("Expected loading while the next page is in flight")
	}
	appended := fetchDone(collect(appendCmd))
	if len(appended) != 1 || appended[0].Kind != feed.KindAppend {
		t.Fatalf("Expected one append fetch, got %v", appended)
	}
	if len(f.pages) != 2 || f.pages[1] != 0 {
		t.Fatalf("Expected an append request, got %v", f.pages)
	}

	// Pull to refresh while the append is still undelivered
	s.Update(keyMsg("t"))
	var refreshCmd tea.Cmd
	for i := 0; i < feed.DefaultPullThreshold; i++ {
		refreshCmd = s.Update(keyMsg("up"))
	}
	refreshed := fetchDone(collect(refreshCmd))
	if len(refreshed) != 1 || refreshed[0].Kind != feed.KindRefresh {
		t.Fatalf("Expected one refresh fetch, got %v", refreshed)
	}
	if len(f.pages) != 3 || f.pages[2] != 1 {
		t.Fatalf("Expected a page 1 request, got %v", f.pages)
	}

	s.Update(appended[0])
	if !s.Loading() {
		t.Fatal("Expected loading until the refresh completes")
	}
	s.Update(refreshed[0])
	if s.Loading() {
		t.Fatal("Expected loading cleared after both fetches")
	}
	if len(f.Artworks()) != testPageSize {
		t.Errorf("Expected refreshed feed of %d, got %d", testPageSize, len(f.Artworks()))
	}
}

func TestHome_PullNeedsTheTop(t *testing.T) {
	f := &fakeFeed{}
	s := newTestScreen(f, nil)
	mount(t, s)

	s.Update(keyMsg("down"))
	for i := 0; i < feed.DefaultPullThreshold; i++ {
		s.Update(keyMsg("up"))
	}
	if s.Loading() {
		t.Fatal("Moving back up to the first card is not a pull")
	}
	if len(f.pages) != 1 {
		t.Fatalf("Expected no refresh, got %v", f.pages)
	}
}

func TestHome_RefreshKey(t *testing.T) {
	f := &fakeFeed{}
	s := newTestScreen(f, nil)
	mount(t, s)

	cmd := s.Update(keyMsg("r"))
	if !s.Loading() {
		t.Fatal("Expected loading during refresh")
	}
	for _, d := range fetchDone(collect(cmd)) {
		s.Update(d)
	}
	if s.Loading() {
		t.Fatal("Expected loading cleared")
	}
	if len(f.pages) != 2 || f.pages[1] != 1 {
		t.Errorf("Expected page 1 refresh, got %v", f.pages)
	}
}

func TestHome_EndReachedAfterFailedRefresh(t *testing.T) {
	f := &fakeFeed{}
	s := newTestScreen(f, nil)
	mount(t, s)

	// Refresh in flight, then the end comes into view and is skipped
	if cmd := s.Update(keyMsg("r")); cmd == nil {
		t.Fatal("Expected a refresh command")
	}
	s.Update(keyMsg("G"))
	if len(f.pages) != 1 {
		t.Fatalf("Expected no append while refreshing, pages=%v", f.pages)
	}

	cmd := s.Update(feed.FetchDoneMsg{Kind: feed.KindRefresh, Err: errors.New("offline")})
	if !s.Loading() {
		t.Fatal("Expected the skipped end to fetch once the refresh failed")
	}
	done := fetchDone(collect(cmd))
	if len(done) != 1 || done[0].Kind != feed.KindAppend {
		t.Fatalf("Expected one append, got %+v", done)
	}
	if len(f.pages) != 2 || f.pages[1] != 0 {
		t.Errorf("Expected next page appended, pages=%v", f.pages)
	}
}

func TestHome_SelectNavigates(t *testing.T) {
	f := &fakeFeed{}
	nav := &fakeNavigator{}
	s := newTestScreen(f, nav)
	mount(t, s)

	s.Update(keyMsg("down"))
	s.Update(keyMsg("enter"))

	if nav.route != RouteSingleArtwork {
		t.Fatalf("Expected route %q, got %q", RouteSingleArtwork, nav.route)
	}
	if nav.params["id"] != "2" {
		t.Errorf("Expected id 2, got %q", nav.params["id"])
	}
}

func TestHome_ClickUnderHeaderBar(t *testing.T) {
	f := &fakeFeed{}
	nav := &fakeNavigator{}
	s := newTestScreen(f, nav)
	mount(t, s)

	// Second card starts on row 1, right under the bar, which has not moved yet
	offset := s.spans[1].top - 1
	s.ScrollTo(offset)
	if s.Offset() != offset {
		t.Fatalf("Expected offset %d, got %d", offset, s.Offset())
	}

	click := func(y int) {
		s.Update(tea.MouseMsg{X: 10, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	}

	click(2)
	if nav.route != "" {
		t.Fatalf("Click on the header bar opened %v", nav.params)
	}

	click(s.spans[2].top - offset)
	if nav.route != RouteSingleArtwork || nav.params["id"] != "3" {
		t.Errorf("Expected artwork 3 opened below the bar, got %q %v", nav.route, nav.params)
	}
}

func TestHome_FilterStopsPagination(t *testing.T) {
	f := &fakeFeed{}
	s := newTestScreen(f, nil)
	mount(t, s)

	s.Update(keyMsg("/"))
	if !s.Filtering() {
		t.Fatal("Expected filter input focused")
	}
	for _, r := range "Artwork 3" {
		s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	s.Update(keyMsg("enter"))

	s.Update(keyMsg("G"))
	if s.Loading() || len(f.pages) != 1 {
		t.Fatalf("A filtered list must not paginate, pages=%v", f.pages)
	}

	s.Update(keyMsg("esc"))
	if s.query() != "" {
		t.Errorf("Expected filter cleared, got %q", s.query())
	}
}

func TestHome_ViewFitsScreen(t *testing.T) {
	f := &fakeFeed{}
	s := newTestScreen(f, nil)
	mount(t, s)

	s.ScrollTo(10)
	settle(t, s, 1)

	rows := 0
	for _, c := range s.View() {
		if c == '\n' {
			rows++
		}
	}
	if rows+1 != 20 {
		t.Errorf("Expected 20 rows, got %d", rows+1)
	}
}
