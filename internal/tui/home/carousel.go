package home

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/artic/internal/domain"
	"github.com/mmcdole/artic/internal/tui/styles"
)

const (
	carouselCardWidth = 34
	carouselCardGap   = 2
	carouselCardLines = 3

	// CarouselHeight is constant so the list below never shifts
	CarouselHeight = carouselCardLines + 2 + 1 // Card body, border, pager dots
)

var (
	eventCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.DimGray).
			Padding(0, 1)

	eventCardFocusedStyle = eventCardStyle.
				BorderForeground(styles.Primary)
)

// Carousel is the horizontal strip of upcoming events in the feed header
type Carousel struct {
	events []domain.Event
	focus  int
	width  int
}

// NewCarousel creates an empty carousel
func NewCarousel() *Carousel {
	return &Carousel{}
}

// SetEvents replaces the events, keeping focus in range
func (c *Carousel) SetEvents(events []domain.Event) {
	c.events = events
	if c.focus >= len(events) {
		c.focus = max(len(events)-1, 0)
	}
}

// SetWidth sets the available width
func (c *Carousel) SetWidth(width int) {
	c.width = width
}

// Len returns the number of events
func (c *Carousel) Len() int {
	return len(c.events)
}

// Focus returns the index of the focused event
func (c *Carousel) Focus() int {
	return c.focus
}

// Next focuses the following event, wrapping around
func (c *Carousel) Next() {
	if len(c.events) > 0 {
		c.focus = (c.focus + 1) % len(c.events)
	}
}

// Prev focuses the preceding event, wrapping around
func (c *Carousel) Prev() {
	if len(c.events) > 0 {
		c.focus = (c.focus - 1 + len(c.events)) % len(c.events)
	}
}

// View renders the strip starting at the focused event
func (c *Carousel) View() string {
	block := lipgloss.NewStyle().Height(CarouselHeight).MaxHeight(CarouselHeight)

	if len(c.events) == 0 {
		return block.Render(styles.DimStyle.Render("  No upcoming events"))
	}

	cardWidth := min(carouselCardWidth, max(c.width-carouselCardGap, 10))
	fit := max((c.width+carouselCardGap)/(cardWidth+carouselCardGap), 1)

	var cards []string
	for i := 0; i < fit && i < len(c.events); i++ {
		idx := (c.focus + i) % len(c.events)
		if i > 0 && idx == c.focus {
			break
		}
		if i > 0 {
			cards = append(cards, strings.Repeat(" ", carouselCardGap))
		}
		cards = append(cards, renderEventCard(c.events[idx], cardWidth, idx == c.focus))
	}

	strip := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	return block.Render(lipgloss.JoinVertical(lipgloss.Left, strip, c.pager()))
}

// pager renders one dot per event, the focused one filled
func (c *Carousel) pager() string {
	dots := make([]string, len(c.events))
	for i := range dots {
		if i == c.focus {
			dots[i] = styles.AccentStyle.Render("●")
		} else {
			dots[i] = styles.DimStyle.Render("○")
		}
	}
	return styles.Truncate(" "+strings.Join(dots, " "), c.width)
}

func renderEventCard(e domain.Event, width int, focused bool) string {
	textWidth := max(width-4, 1) // Border and padding

	meta := e.DateRange()
	if e.Location != "" {
		if meta != "" {
			meta += " · "
		}
		meta += e.Location
	}

	lines := []string{
		styles.TitleStyle.Render(styles.Truncate(e.Title, textWidth)),
		styles.SubtitleStyle.Render(styles.Truncate(meta, textWidth)),
		styles.DimStyle.Render(styles.Truncate(e.ShortDescription, textWidth)),
	}

	st := eventCardStyle
	if focused {
		st = eventCardFocusedStyle
	}
	return st.Width(width - 2).Height(carouselCardLines).Render(strings.Join(lines, "\n"))
}
