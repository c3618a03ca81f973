package domain

import (
	"context"
)

// MuseumRepository provides access to the museum's public collection
type MuseumRepository interface {
	// GetEvents returns upcoming events, at most limit of them
	GetEvents(ctx context.Context, limit int) ([]Event, error)

	// GetArtworks returns one page (1-based) of the artwork feed
	// Returns (items, pagination, error) so callers know when the collection ends
	GetArtworks(ctx context.Context, page, limit int) ([]*Artwork, Pagination, error)

	// GetArtwork returns full metadata for a single artwork
	GetArtwork(ctx context.Context, id int) (*Artwork, error)
}
