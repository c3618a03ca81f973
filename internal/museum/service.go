package museum

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmcdole/artic/internal/domain"
	"golang.org/x/sync/singleflight"
)

const (
	defaultPageSize    = 20
	defaultEventsLimit = 10
)

// Options tunes request sizes
type Options struct {
	PageSize    int
	EventsLimit int
}

// Service orchestrates the collection client and the in-memory store.
// It is the data-fetching side of the home screen: GetEvents and GetArtworks(page).
type Service struct {
	repo   domain.MuseumRepository
	store  domain.Store
	logger *slog.Logger
	opts   Options

	group singleflight.Group // Collapses identical in-flight appends

	mu         sync.Mutex // Protects the cursor below
	page       int        // Last page merged into the store
	totalPages int        // 0 until the first page arrives
	epoch      uint64     // Bumped by every replace; stale appends compare against it
}

// NewService creates a new museum service.
func NewService(repo domain.MuseumRepository, store domain.Store, logger *slog.Logger, opts Options) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.EventsLimit <= 0 {
		opts.EventsLimit = defaultEventsLimit
	}
	return &Service{repo: repo, store: store, logger: logger, opts: opts}
}

// GetEvents fetches upcoming events into the store.
func (s *Service) GetEvents(ctx context.Context) error {
	events, err := s.repo.GetEvents(ctx, s.opts.EventsLimit)
	if err != nil {
		s.logger.Error("failed to fetch events", "error", err)
		return err
	}
	s.store.SaveEvents(events)
	s.logger.Debug("fetched events", "count", len(events))
	return nil
}

// GetArtworks fetches artworks into the store.
// page <= 0 appends the next page; page >= 1 replaces the feed with that page.
func (s *Service) GetArtworks(ctx context.Context, page int) error {
	if page <= 0 {
		return s.appendNext(ctx)
	}
	return s.replace(ctx, page)
}

// GetArtwork fetches full metadata for one artwork and refreshes it in the store.
func (s *Service) GetArtwork(ctx context.Context, id int) (*domain.Artwork, error) {
	a, err := s.repo.GetArtwork(ctx, id)
	if err != nil {
		s.logger.Error("failed to fetch artwork", "error", err, "id", id)
		return nil, err
	}
	s.store.SaveArtwork(a)
	return a, nil
}

// Page returns the last page merged into the store and whether more exist
func (s *Service) Page() (page int, hasMore bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page, s.totalPages == 0 || s.page < s.totalPages
}

func (s *Service) replace(ctx context.Context, page int) error {
	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.mu.Unlock()

	items, pg, err := s.repo.GetArtworks(ctx, page, s.opts.PageSize)
	if err != nil {
		s.logger.Error("failed to fetch artworks", "error", err, "page", page)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A newer replace started while this one was in flight; it owns the feed now
	if s.epoch != epoch {
		s.logger.Debug("discarding superseded page", "page", page)
		return nil
	}

	s.store.ReplaceArtworks(items)
	s.page = page
	s.totalPages = pg.TotalPages
	s.logger.Debug("replaced artworks", "count", len(items), "page", page)
	return nil
}

func (s *Service) appendNext(ctx context.Context) error {
	s.mu.Lock()
	if s.totalPages > 0 && s.page >= s.totalPages {
		last := s.page
		s.mu.Unlock()
		s.logger.Debug("end of collection", "page", last)
		return nil
	}
	next, epoch := s.page+1, s.epoch
	s.mu.Unlock()

	key := fmt.Sprintf("append:%d:%d", epoch, next)
	_, err, shared := s.group.Do(key, func() (interface{}, error) {
		items, pg, err := s.repo.GetArtworks(ctx, next, s.opts.PageSize)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		// The feed was replaced while this page was loading
		if s.epoch != epoch {
			s.logger.Debug("discarding stale page", "page", next)
			return nil, nil
		}

		added := s.store.AppendArtworks(items)
		if next > s.page {
			s.page = next
		}
		s.totalPages = pg.TotalPages
		s.logger.Debug("appended artworks", "count", added, "page", next)
		return nil, nil
	})
	if err != nil {
		s.logger.Error("failed to fetch next page", "error", err, "page", next, "shared", shared)
		return err
	}
	return nil
}
