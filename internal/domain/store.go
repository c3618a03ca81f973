package domain

// Store holds the fetched feed in memory.
// The TUI reads from it through the read-only selectors; only services write.
type Store interface {
	// === Artworks ===
	Artworks() []*Artwork
	Artwork(id int) (*Artwork, bool)
	ReplaceArtworks(items []*Artwork)
	AppendArtworks(items []*Artwork) int
	SaveArtwork(item *Artwork)

	// === Events ===
	Events() []Event
	SaveEvents(events []Event)

	// === Invalidation ===
	Clear()
}
