package artic

import (
	"strings"
	"time"

	"github.com/mmcdole/artic/internal/domain"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MapArtworks converts API artworks to domain artworks
func MapArtworks(items []ArtworkDTO) []*domain.Artwork {
	out := make([]*domain.Artwork, 0, len(items))
	for _, item := range items {
		out = append(out, MapArtwork(item))
	}
	return out
}

// MapArtwork converts a single API artwork
func MapArtwork(item ArtworkDTO) *domain.Artwork {
	a := &domain.Artwork{
		ID:            item.ID,
		Title:         strings.TrimSpace(item.Title),
		ArtistTitle:   deref(item.ArtistTitle),
		DateDisplay:   deref(item.DateDisplay),
		MediumDisplay: deref(item.MediumDisplay),
		Dimensions:    deref(item.Dimensions),
		PlaceOfOrigin: deref(item.PlaceOfOrigin),
		CreditLine:    deref(item.CreditLine),
	}

	if item.FiscalYear != nil {
		year := *item.FiscalYear
		a.FiscalYear = &year
	}

	if item.Thumbnail != nil {
		a.Thumbnail = &domain.Thumbnail{
			Width:   item.Thumbnail.Width,
			Height:  item.Thumbnail.Height,
			ImageID: deref(item.ImageID),
			AltText: item.Thumbnail.AltText,
		}
	}

	if item.Color != nil {
		a.Color = &domain.Color{H: item.Color.H, S: item.Color.S, L: item.Color.L}
	}

	return a
}

// MapPagination converts the pagination block
func MapPagination(p PaginationDTO) domain.Pagination {
	return domain.Pagination{
		Total:       p.Total,
		Limit:       p.Limit,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
	}
}

// MapEvents converts API events to domain events
func MapEvents(items []EventDTO) []domain.Event {
	out := make([]domain.Event, 0, len(items))
	for _, item := range items {
		out = append(out, domain.Event{
			ID:               item.ID,
			Title:            strings.TrimSpace(item.Title),
			ShortDescription: stripTags(deref(item.ShortDescription)),
			Location:         deref(item.Location),
			ImageURL:         deref(item.ImageURL),
			StartDate:        parseTime(deref(item.StartDate)),
			EndDate:          parseTime(deref(item.EndDate)),
		})
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// parseTime accepts the RFC 3339 timestamps the API emits; anything else maps to zero
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// stripTags flattens the inline HTML the events API embeds in descriptions
// to a single line of plain text with entities decoded
func stripTags(s string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if blockTags[atom.Lookup(name)] {
				b.WriteByte(' ')
			}
		}
	}
}

// blockTags separate words when flattened
var blockTags = map[atom.Atom]bool{
	atom.P: true, atom.Br: true, atom.Div: true, atom.Li: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
}
