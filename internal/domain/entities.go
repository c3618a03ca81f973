package domain

import (
	"fmt"
	"strings"
	"time"
)

// Artwork is a single piece from the museum collection
type Artwork struct {
	ID          int        // Collection identifier (unique, used for keys and navigation)
	Title       string     // Display title
	ArtistTitle string     // Artist name, empty when unknown
	FiscalYear  *int       // Fiscal year of acquisition, nil when unknown
	Thumbnail   *Thumbnail // Preview image descriptor, nil when the piece has no image
	Color       *Color     // Dominant color of the image, nil when unknown

	// Detail fields (populated by single-artwork lookups and the feed alike)
	DateDisplay   string
	MediumDisplay string
	Dimensions    string
	PlaceOfOrigin string
	CreditLine    string
}

// HasArtist reports whether the artwork carries an artist name
func (a Artwork) HasArtist() bool {
	return strings.TrimSpace(a.ArtistTitle) != ""
}

// Thumbnail describes the preview image of an artwork
type Thumbnail struct {
	Width   int
	Height  int
	ImageID string // IIIF image identifier
	AltText string
}

// thumbnailPath is the IIIF request appended to the image id: full region, 200px wide, default quality
const thumbnailPath = "full/200,/0/default.jpg"

// AspectRatio returns width/height, or 1 when the descriptor is degenerate
func (t Thumbnail) AspectRatio() float64 {
	if t.Width <= 0 || t.Height <= 0 {
		return 1
	}
	return float64(t.Width) / float64(t.Height)
}

// URL builds the IIIF address of the thumbnail under the given base path
func (t Thumbnail) URL(base string) string {
	if t.ImageID == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), t.ImageID, thumbnailPath)
}

// Color is a hue/saturation/lightness triple (H in degrees, S and L in percent)
type Color struct {
	H float64
	S float64
	L float64
}

// String renders the color in CSS hsl() notation
func (c Color) String() string {
	return fmt.Sprintf("hsl(%g, %g%%, %g%%)", c.H, c.S, c.L)
}

// Event is an upcoming museum event shown in the home carousel
type Event struct {
	ID               int
	Title            string
	ShortDescription string
	Location         string
	ImageURL         string
	StartDate        time.Time
	EndDate          time.Time
}

// DateRange returns a short human readable span like "May 1 – May 3"
func (e Event) DateRange() string {
	switch {
	case e.StartDate.IsZero() && e.EndDate.IsZero():
		return ""
	case e.EndDate.IsZero() || sameDay(e.StartDate, e.EndDate):
		return e.StartDate.Format("Jan 2")
	case e.StartDate.IsZero():
		return "until " + e.EndDate.Format("Jan 2")
	default:
		return e.StartDate.Format("Jan 2") + " – " + e.EndDate.Format("Jan 2")
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Pagination describes where a page sits in the collection
type Pagination struct {
	Total       int // Total records
	Limit       int // Records per page
	CurrentPage int
	TotalPages  int
}

// HasMore reports whether pages exist after the current one
func (p Pagination) HasMore() bool {
	return p.TotalPages == 0 || p.CurrentPage < p.TotalPages
}
