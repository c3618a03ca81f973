package store

import (
	"sync"

	"github.com/mmcdole/artic/internal/domain"
)

// MuseumStore implements domain.Store in memory.
// Readers get copies of the slices so they can keep them across updates.
type MuseumStore struct {
	mu sync.RWMutex // Protects everything below

	artworks []*domain.Artwork
	byID     map[int]*domain.Artwork // Feed artworks only
	lookups  map[int]*domain.Artwork // Looked up artworks outside the feed
	events   []domain.Event
}

func NewMuseumStore() *MuseumStore {
	return &MuseumStore{
		byID:    make(map[int]*domain.Artwork),
		lookups: make(map[int]*domain.Artwork),
	}
}

// === Artworks ===

// Artworks returns the feed in display order, empty when nothing was loaded yet.
func (s *MuseumStore) Artworks() []*domain.Artwork {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Artwork, len(s.artworks))
	copy(out, s.artworks)
	return out
}

func (s *MuseumStore) Artwork(id int) (*domain.Artwork, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, ok := s.byID[id]; ok {
		return a, true
	}
	a, ok := s.lookups[id]
	return a, ok
}

// ReplaceArtworks swaps the whole feed (first page after a refresh)
func (s *MuseumStore) ReplaceArtworks(items []*domain.Artwork) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.artworks = s.artworks[:0:0]
	s.byID = make(map[int]*domain.Artwork, len(items))
	s.appendLocked(items)
}

// AppendArtworks adds a page to the end of the feed, skipping artworks already present.
// Returns the number of artworks actually added.
func (s *MuseumStore) AppendArtworks(items []*domain.Artwork) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.appendLocked(items)
}

func (s *MuseumStore) appendLocked(items []*domain.Artwork) int {
	added := 0
	for _, a := range items {
		if a == nil {
			continue
		}
		if _, dup := s.byID[a.ID]; dup {
			continue
		}
		delete(s.lookups, a.ID)
		s.byID[a.ID] = a
		s.artworks = append(s.artworks, a)
		added++
	}
	return added
}

// SaveArtwork updates an artwork in place (e.g. after a detail lookup).
// Artworks not in the feed are kept aside for Artwork and never block a
// later page from adding them.
func (s *MuseumStore) SaveArtwork(item *domain.Artwork) {
	if item == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[item.ID]; !ok {
		s.lookups[item.ID] = item
		return
	}
	for i, a := range s.artworks {
		if a.ID == item.ID {
			s.artworks[i] = item
			break
		}
	}
	s.byID[item.ID] = item
}

// === Events ===

func (s *MuseumStore) Events() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *MuseumStore) SaveEvents(events []domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events[:0:0], events...)
}

// Clear drops everything held in memory
func (s *MuseumStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.artworks = nil
	s.byID = make(map[int]*domain.Artwork)
	s.lookups = make(map[int]*domain.Artwork)
	s.events = nil
}
