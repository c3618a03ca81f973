package artic

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mmcdole/artic/internal/domain"
)

const artworksPage2 = `{
  "pagination": {"total": 120, "limit": 2, "offset": 2, "total_pages": 60, "current_page": 2},
  "data": [
    {
      "id": 27992,
      "title": "A Sunday on La Grande Jatte, 1884",
      "artist_title": "Georges Seurat",
      "fiscal_year": 1926,
      "image_id": "2d484387-2509-5e8e-2c43-22f9981972eb",
      "thumbnail": {"lqip": "data:image/gif;base64,R0lGOD", "width": 3000, "height": 2016, "alt_text": "Painting"},
      "color": {"h": 40, "l": 53, "s": 19, "percentage": 0.0005, "population": 23}
    },
    {
      "id": 5,
      "title": "Untitled",
      "artist_title": null,
      "fiscal_year": null,
      "image_id": null,
      "thumbnail": null,
      "color": null
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGetArtworks_ParsesPage(t *testing.T) {
	var gotQuery map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/artworks" {
			t.Errorf("Expected /artworks, got %s", r.URL.Path)
		}
		gotQuery = map[string]string{
			"page":  r.URL.Query().Get("page"),
			"limit": r.URL.Query().Get("limit"),
		}
		if r.Header.Get("AIC-User-Agent") == "" {
			t.Error("Expected AIC-User-Agent header")
		}
		io.WriteString(w, artworksPage2)
	})

	items, page, err := c.GetArtworks(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if gotQuery["page"] != "2" || gotQuery["limit"] != "2" {
		t.Errorf("Unexpected query %v", gotQuery)
	}
	if page.CurrentPage != 2 || page.TotalPages != 60 {
		t.Errorf("Unexpected pagination %+v", page)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 artworks, got %d", len(items))
	}

	first := items[0]
	if first.ArtistTitle != "Georges Seurat" {
		t.Errorf("Expected artist, got %q", first.ArtistTitle)
	}
	if first.FiscalYear == nil || *first.FiscalYear != 1926 {
		t.Errorf("Expected fiscal year 1926, got %v", first.FiscalYear)
	}
	if first.Thumbnail == nil || first.Thumbnail.ImageID != "2d484387-2509-5e8e-2c43-22f9981972eb" {
		t.Fatalf("Expected thumbnail with image id, got %+v", first.Thumbnail)
	}
	if first.Color == nil || first.Color.H != 40 || first.Color.S != 19 || first.Color.L != 53 {
		t.Errorf("Unexpected color %+v", first.Color)
	}

	second := items[1]
	if second.ArtistTitle != "" || second.FiscalYear != nil || second.Thumbnail != nil || second.Color != nil {
		t.Errorf("Expected null fields to stay empty, got %+v", second)
	}
}

func TestGetArtwork_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := c.GetArtwork(context.Background(), 42)
	if !errors.Is(err, domain.ErrArtworkNotFound) {
		t.Fatalf("Expected ErrArtworkNotFound, got %v", err)
	}
}

func TestGetArtwork_Path(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/artworks/27992" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		io.WriteString(w, `{"data": {"id": 27992, "title": "La Grande Jatte", "medium_display": "Oil on canvas"}}`)
	})

	a, err := c.GetArtwork(context.Background(), 27992)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if a.ID != 27992 || a.MediumDisplay != "Oil on canvas" {
		t.Errorf("Unexpected artwork %+v", a)
	}
}

func TestDoRequest_RetriesServerErrors(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		io.WriteString(w, `{"pagination": {}, "data": []}`)
	})

	events, err := c.GetEvents(context.Background(), 5)
	if err != nil {
		t.Fatalf("Expected retry to succeed, got %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Expected no events, got %d", len(events))
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("Expected 2 calls, got %d", calls)
	}
}

func TestDoRequest_RateLimited(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, _, err := c.GetArtworks(context.Background(), 1, 10)
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("Expected ErrRateLimited, got %v", err)
	}
}

func TestDoRequest_ServerOffline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := c.GetEvents(context.Background(), 1)
	if !errors.Is(err, domain.ErrServerOffline) {
		t.Fatalf("Expected ErrServerOffline, got %v", err)
	}
}

func TestMapEvents(t *testing.T) {
	desc := "<p>A talk in the <em>modern</em> wing &amp; garden.</p>"
	start := "2024-05-01T10:00:00-05:00"
	end := "2024-05-03T12:00:00-05:00"

	events := MapEvents([]EventDTO{{ID: 1, Title: " Talk ", ShortDescription: &desc, StartDate: &start, EndDate: &end}})
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Title != "Talk" {
		t.Errorf("Expected trimmed title, got %q", e.Title)
	}
	if e.ShortDescription != "A talk in the modern wing & garden." {
		t.Errorf("Expected tags stripped, got %q", e.ShortDescription)
	}
	if got := e.DateRange(); got != "May 1 – May 3" {
		t.Errorf("Expected date range, got %q", got)
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Gallery talk", "Gallery talk"},
		{"inline tags", "A <em>modern</em> wing", "A modern wing"},
		{"named entities", "<p>Art &amp; Design</p>", "Art & Design"},
		{"numeric entity", "Design&#8217;s talk", "Design’s talk"},
		{"nbsp collapses", "Art&nbsp;&nbsp;talk", "Art talk"},
		{"block boundaries", "<p>One</p><p>Two</p>", "One Two"},
		{"line break", "One<br/>Two", "One Two"},
		{"mixed", "<p>Art &amp; Design&#8217;s&nbsp;talk</p>", "Art & Design’s talk"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripTags(tt.in); got != tt.want {
				t.Errorf("stripTags(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
