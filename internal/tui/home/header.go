package home

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mmcdole/artic/internal/motion"
	"github.com/mmcdole/artic/internal/tui/styles"
)

const (
	// OverlayBarRows is the height of the badge and logo bar
	OverlayBarRows = 3

	overlayMarginTop = 1
	headerMarginTop  = 1

	minButtonOpacity = 0.05
	scrollTopLabel   = " ↑ top "
)

// SectionTitle renders a titled divider of the feed header
func SectionTitle(title string) string {
	return "  " + styles.SectionTitleStyle.Render(title)
}

// RenderHeader composes the list header: the top margin, the events section
// with its carousel, and the artworks section title. It is the first block of
// the scrolling content.
func RenderHeader(insetTop int, carousel string) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("\n", max(insetTop, 0)+headerMarginTop))
	b.WriteString(SectionTitle("Events"))
	b.WriteString("\n\n")
	b.WriteString(carousel)
	b.WriteString("\n\n")
	b.WriteString(SectionTitle("Artworks"))
	b.WriteString("\n")
	return b.String()
}

// RenderOverlay draws the notifications badge and museum logo bar that floats
// above the list. translateY is the header channel of the animation driver;
// at -HeaderTravel the bar has slid fully out of view. It returns the screen
// row of the first bar line, which is negative once lines have slid off.
func RenderOverlay(width, insetTop int, translateY float64) (top int, lines []string) {
	if width <= 0 {
		return 0, nil
	}

	extent := float64(max(insetTop, 0) + overlayMarginTop + OverlayBarRows)
	shift := int(math.Round(-translateY / motion.HeaderTravel * extent))
	top = max(insetTop, 0) + overlayMarginTop - shift

	badge := styles.BadgeStyle.Render("● 1")
	logo := styles.LogoStyle.Render("ART INSTITUTE CHICAGO")
	gap := max(width-lipgloss.Width(badge)-lipgloss.Width(logo)-2, 1)
	row := " " + badge + strings.Repeat(" ", gap) + logo + " "

	bar := styles.BarStyle.Width(width).MaxWidth(width)
	blank := bar.Render("")
	return top, []string{blank, bar.Render(row), blank}
}

// ScrollTopButton renders the scroll-to-top control faded by opacity. It is
// empty while effectively invisible.
func ScrollTopButton(opacity float64) string {
	if opacity < minButtonOpacity {
		return ""
	}
	fg := styles.Fade(styles.SlateDark, styles.White, opacity)
	bg := styles.Fade(styles.SlateDark, styles.Primary, opacity*0.9)
	return lipgloss.NewStyle().Foreground(fg).Background(bg).Bold(true).Render(scrollTopLabel)
}

// ScrollTopWidth is the display width of the scroll-to-top control
func ScrollTopWidth() int {
	return ansi.StringWidth(scrollTopLabel)
}

// overlayLine replaces the tail of line, from column col on, with s
func overlayLine(line string, col, width int, s string) string {
	if col < 0 {
		col = 0
	}
	head := ansi.Truncate(line, col, "")
	if pad := col - ansi.StringWidth(head); pad > 0 {
		head += strings.Repeat(" ", pad)
	}
	out := head + s
	if w := ansi.StringWidth(out); w < width {
		out += strings.Repeat(" ", width-w)
	}
	return out
}
