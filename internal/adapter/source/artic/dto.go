package artic

// PaginationDTO is the pagination block of list responses
type PaginationDTO struct {
	Total       int    `json:"total"`
	Limit       int    `json:"limit"`
	Offset      int    `json:"offset"`
	TotalPages  int    `json:"total_pages"`
	CurrentPage int    `json:"current_page"`
	NextURL     string `json:"next_url"`
}

// ArtworksResponse is the envelope of GET /artworks
type ArtworksResponse struct {
	Pagination PaginationDTO `json:"pagination"`
	Data       []ArtworkDTO  `json:"data"`
}

// ArtworkResponse is the envelope of GET /artworks/{id}
type ArtworkResponse struct {
	Data ArtworkDTO `json:"data"`
}

// ArtworkDTO mirrors the artwork resource. Optional fields come back as null.
type ArtworkDTO struct {
	ID            int           `json:"id"`
	Title         string        `json:"title"`
	ArtistTitle   *string       `json:"artist_title"`
	FiscalYear    *int          `json:"fiscal_year"`
	ImageID       *string       `json:"image_id"`
	Thumbnail     *ThumbnailDTO `json:"thumbnail"`
	Color         *ColorDTO     `json:"color"`
	DateDisplay   *string       `json:"date_display"`
	MediumDisplay *string       `json:"medium_display"`
	Dimensions    *string       `json:"dimensions"`
	PlaceOfOrigin *string       `json:"place_of_origin"`
	CreditLine    *string       `json:"credit_line"`
}

// ThumbnailDTO is the preview image metadata
type ThumbnailDTO struct {
	LQIP    string `json:"lqip"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	AltText string `json:"alt_text"`
}

// ColorDTO is the dominant color of the image
type ColorDTO struct {
	H          float64 `json:"h"`
	S          float64 `json:"s"`
	L          float64 `json:"l"`
	Percentage float64 `json:"percentage"`
	Population int     `json:"population"`
}

// EventsResponse is the envelope of GET /events
type EventsResponse struct {
	Pagination PaginationDTO `json:"pagination"`
	Data       []EventDTO    `json:"data"`
}

// EventDTO mirrors the event resource
type EventDTO struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	ShortDescription *string `json:"short_description"`
	Location         *string `json:"location"`
	ImageURL         *string `json:"image_url"`
	StartDate        *string `json:"start_date"`
	EndDate          *string `json:"end_date"`
}
