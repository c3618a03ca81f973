package home

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/artic/internal/domain"
	"github.com/mmcdole/artic/internal/tui/styles"
)

const (
	panelPercent     = 80 // Panel width relative to the card
	framePercent     = 90 // Thumbnail frame width relative to the panel
	separatorPercent = 60 // Separator width relative to the list
	maxFrameRows     = 14

	// BylineDelimiter separates artist and year
	BylineDelimiter = "  |  "
)

// Byline is the second text line of a card
type Byline struct {
	Artist    string
	Delimiter string // Empty unless both artist and year are present
	Year      string
}

// NewByline builds the byline for an artist name and optional fiscal year.
// The year follows the artist after the delimiter, or stands alone when
// there is no artist.
func NewByline(artist string, year *int) Byline {
	b := Byline{Artist: strings.TrimSpace(artist)}
	if year != nil {
		b.Year = strconv.Itoa(*year)
	}
	if b.Artist != "" && b.Year != "" {
		b.Delimiter = BylineDelimiter
	}
	return b
}

// String returns the unstyled byline
func (b Byline) String() string {
	return b.Artist + b.Delimiter + b.Year
}

// Render styles the byline; the year uses the overline emphasis
func (b Byline) Render() string {
	if b.Artist == "" && b.Year == "" {
		return ""
	}
	var sb strings.Builder
	if b.Artist != "" {
		sb.WriteString(styles.CardBylineStyle.Render(b.Artist + b.Delimiter))
	}
	if b.Year != "" {
		sb.WriteString(styles.OverlineStyle.Render(b.Year))
	}
	return sb.String()
}

// KeyFor is the identity of a card: artwork id plus position, so duplicate
// ids across pages still yield distinct keys
func KeyFor(a *domain.Artwork, index int) string {
	if a == nil {
		return fmt.Sprintf("-%d", index)
	}
	return fmt.Sprintf("%d-%d", a.ID, index)
}

// PanelColor is the artwork's dominant color, or the brand color
func PanelColor(a *domain.Artwork) lipgloss.Color {
	if a == nil || a.Color == nil {
		return styles.Primary
	}
	return styles.HSL(a.Color.H, a.Color.S, a.Color.L)
}

// FrameRows is the height of the thumbnail frame for a frame width in
// cells. Terminal cells are about twice as tall as wide.
func FrameRows(t domain.Thumbnail, frameWidth int) int {
	rows := int(math.Round(float64(frameWidth) / t.AspectRatio() / 2))
	return max(1, min(rows, maxFrameRows))
}

// RenderItem renders one artwork card. A nil artwork renders nothing.
func RenderItem(a *domain.Artwork, width int, selected bool) string {
	if a == nil || width <= 0 {
		return ""
	}

	inner := max(width-1, 1) // Left border column for the selection marker
	panel := renderPanel(a, inner)

	textWidth := max(inner-4, 1)
	title := styles.CardTitleStyle.Render(styles.Truncate(a.Title, textWidth))
	lines := []string{panel, "  " + title}
	if byline := NewByline(a.ArtistTitle, a.FiscalYear); byline.String() != "" {
		lines = append(lines, "  "+styles.Truncate(byline.Render(), textWidth))
	}

	card := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if selected {
		return styles.CardSelectedStyle.Render(card)
	}
	return styles.CardNormalStyle.Render(card)
}

// renderPanel draws the colored panel, centered, with the thumbnail frame
func renderPanel(a *domain.Artwork, width int) string {
	panelWidth := max(width*panelPercent/100, 4)
	bg := PanelColor(a)
	fill := lipgloss.NewStyle().Background(bg).Width(panelWidth)

	var rows []string
	if a.Thumbnail != nil {
		frameWidth := max(panelWidth*framePercent/100, 2)
		frame := renderFrame(*a.Thumbnail, frameWidth, bg)
		rows = append(rows, fill.Render(""))
		rows = append(rows, fill.Align(lipgloss.Center).Render(frame))
		rows = append(rows, fill.Render(""))
	} else {
		rows = append(rows, fill.Render(""))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderFrame stands in for the thumbnail: a shaded block sized by the image
// aspect ratio, labelled with its alt text
func renderFrame(t domain.Thumbnail, width int, bg lipgloss.Color) string {
	rows := FrameRows(t, width)
	shade := lipgloss.NewStyle().
		Foreground(styles.Fade(bg, styles.White, 0.35)).
		Background(styles.Fade(bg, styles.SlateDark, 0.25))

	label := strings.TrimSpace(t.AltText)
	lines := make([]string, rows)
	for i := range lines {
		line := strings.Repeat("░", width)
		if i == rows/2 && label != "" {
			line = lipgloss.PlaceHorizontal(width, lipgloss.Center, styles.Truncate(label, width-2), lipgloss.WithWhitespaceChars("░"))
		}
		lines[i] = shade.Render(line)
	}
	return strings.Join(lines, "\n")
}

// RenderSeparator is the hairline drawn between cards
func RenderSeparator(width int) string {
	w := max(width*separatorPercent/100, 1)
	line := styles.SeparatorStyle.Render(strings.Repeat("─", w))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}
