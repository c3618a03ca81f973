package search

import (
	"testing"

	"github.com/mmcdole/artic/internal/domain"
)

func feed() []*domain.Artwork {
	return []*domain.Artwork{
		{ID: 1, Title: "The Bedroom", ArtistTitle: "Vincent van Gogh"},
		{ID: 2, Title: "Nighthawks", ArtistTitle: "Edward Hopper"},
		nil,
		{ID: 3, Title: "American Gothic", ArtistTitle: "Grant Wood"},
		{ID: 4, Title: "Self-Portrait", ArtistTitle: "Vincent van Gogh"},
	}
}

func TestFilter_EmptyQueryKeepsAllButNil(t *testing.T) {
	got := Filter("  ", feed())
	want := []int{0, 1, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, got)
		}
	}
}

func TestFilter_TitleMatch(t *testing.T) {
	got := Filter("nighthawk", feed())
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("Expected [1], got %v", got)
	}
}

func TestFilter_CaseInsensitive(t *testing.T) {
	got := Filter("GOTHIC", feed())
	if len(got) != 1 || got[0] != 3 {
		t.Fatalf("Expected [3], got %v", got)
	}
}

func TestFilter_ArtistMatchFollowsTitles(t *testing.T) {
	got := Filter("gogh", feed())
	if len(got) != 2 || got[0] != 0 || got[1] != 4 {
		t.Fatalf("Expected artist matches [0 4], got %v", got)
	}
}

func TestFilter_NoMatch(t *testing.T) {
	if got := Filter("zzzz", feed()); len(got) != 0 {
		t.Fatalf("Expected no matches, got %v", got)
	}
}
