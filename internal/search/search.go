// Package search narrows the artwork feed with fuzzy matching.
package search

import (
	"strings"

	"github.com/mmcdole/artic/internal/domain"

	fuzzysearch "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"
)

// titleSource implements sahilm/fuzzy.Source over lowercase artwork titles
type titleSource []*domain.Artwork

func (s titleSource) String(i int) string {
	if s[i] == nil {
		return ""
	}
	return strings.ToLower(s[i].Title)
}

func (s titleSource) Len() int { return len(s) }

// Filter returns indices into artworks matching query, best first.
// Title matches are ranked by sahilm/fuzzy; artworks matching only on the
// artist name follow in feed order. Nil entries never match.
func Filter(query string, artworks []*domain.Artwork) []int {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]int, 0, len(artworks))
		for i, a := range artworks {
			if a != nil {
				out = append(out, i)
			}
		}
		return out
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), titleSource(artworks))

	out := make([]int, 0, len(matches))
	seen := make(map[int]bool, len(matches))
	for _, m := range matches {
		if artworks[m.Index] == nil {
			continue
		}
		out = append(out, m.Index)
		seen[m.Index] = true
	}

	for i, a := range artworks {
		if a == nil || seen[i] || !a.HasArtist() {
			continue
		}
		if fuzzysearch.MatchFold(query, a.ArtistTitle) {
			out = append(out, i)
		}
	}
	return out
}
