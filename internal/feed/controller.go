// Package feed coordinates pagination and pull-to-refresh for the artwork feed.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultFetchTimeout = 60 * time.Second

// Fetcher is the data-fetching collaborator.
// GetArtworks with page 0 appends the next page; page 1 replaces the feed.
type Fetcher interface {
	GetEvents(ctx context.Context) error
	GetArtworks(ctx context.Context, page int) error
}

// Kind identifies which request a FetchDoneMsg belongs to
type Kind int

const (
	KindEvents  Kind = iota // Mount-time events request
	KindInitial             // Mount-time first page
	KindAppend              // End reached: next page
	KindRefresh             // Pull to refresh: first page, replacing
)

func (k Kind) String() string {
	switch k {
	case KindEvents:
		return "events"
	case KindInitial:
		return "initial"
	case KindAppend:
		return "append"
	case KindRefresh:
		return "refresh"
	default:
		return "unknown"
	}
}

// FetchDoneMsg reports that a fetch finished, successfully or not.
// It is produced even when the fetch panics.
type FetchDoneMsg struct {
	Kind Kind
	Err  error
}

// Controller gates end-reached and refresh fetches behind the loading flag.
// All methods run on the bubbletea event loop; only the returned commands run elsewhere.
type Controller struct {
	fetcher Fetcher
	timeout time.Duration
	logger  *slog.Logger

	inFlight int  // Tracked fetches (append + refresh) not yet finished
	mounted  bool // Mount already issued its requests
}

// NewController creates a controller for the given fetcher
func NewController(fetcher Fetcher, timeout time.Duration, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Controller{fetcher: fetcher, timeout: timeout, logger: logger}
}

// Loading reports whether an end-reached or refresh fetch is in flight
func (c *Controller) Loading() bool {
	return c.inFlight > 0
}

// Mount requests events and the first page, concurrently, exactly once.
// Neither request shows the refresh spinner.
func (c *Controller) Mount() tea.Cmd {
	if c.mounted {
		return nil
	}
	c.mounted = true
	return tea.Batch(
		c.run(KindEvents, func(ctx context.Context) error { return c.fetcher.GetEvents(ctx) }),
		c.run(KindInitial, func(ctx context.Context) error { return c.fetcher.GetArtworks(ctx, 1) }),
	)
}

// EndReached requests the next page. Skipped while another fetch is in flight.
func (c *Controller) EndReached() tea.Cmd {
	if c.Loading() {
		c.logger.Debug("end reached while loading, skipping")
		return nil
	}
	c.inFlight++
	return c.run(KindAppend, func(ctx context.Context) error { return c.fetcher.GetArtworks(ctx, 0) })
}

// RefreshPull replaces the feed with the first page. Always issued, even
// while an append is in flight.
func (c *Controller) RefreshPull() tea.Cmd {
	c.inFlight++
	return c.run(KindRefresh, func(ctx context.Context) error { return c.fetcher.GetArtworks(ctx, 1) })
}

// Finish is the cleanup step for every FetchDoneMsg. It clears the loading
// state regardless of the outcome; errors are logged, never retried.
func (c *Controller) Finish(msg FetchDoneMsg) {
	switch msg.Kind {
	case KindAppend, KindRefresh:
		if c.inFlight > 0 {
			c.inFlight--
		}
	}
	if msg.Err != nil {
		c.logger.Warn("fetch failed", "kind", msg.Kind.String(), "error", msg.Err)
	}
}

// run wraps a fetch into a command that always yields a FetchDoneMsg
func (c *Controller) run(kind Kind, fetch func(ctx context.Context) error) tea.Cmd {
	timeout := c.timeout
	return func() (msg tea.Msg) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		defer func() {
			if r := recover(); r != nil {
				msg = FetchDoneMsg{Kind: kind, Err: fmt.Errorf("%s fetch panicked: %v", kind, r)}
			}
		}()

		return FetchDoneMsg{Kind: kind, Err: fetch(ctx)}
	}
}
