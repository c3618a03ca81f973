package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color palette
var (
	Primary    = lipgloss.Color("#B50938") // Museum red, default card panel
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Red        = lipgloss.Color("#EF4444")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Primary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	// OverlineStyle is the small caps emphasis used for a lone year
	OverlineStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Italic(true)

	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(White).
				Bold(true).
				Underline(true)
)

// Card styles
var (
	CardTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	CardBylineStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	CardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder(), false, false, false, true).
				BorderForeground(Primary)

	CardNormalStyle = lipgloss.NewStyle().
			Border(lipgloss.HiddenBorder(), false, false, false, true)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(SlateLight)
)

// Overlay and control styles
var (
	BarStyle = lipgloss.NewStyle().
			Background(SlateDark)

	BadgeStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Primary).
			Padding(0, 1)

	LogoStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Primary).
			Bold(true).
			Padding(0, 1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Primary)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Primary)
)

// Filter styles
var (
	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(Primary).
				Bold(true)
)

// Helper functions

// Truncate truncates a string to the given display width with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

// HSL converts a hue/saturation/lightness triple (S and L in percent) to a
// terminal color
func HSL(h, s, l float64) lipgloss.Color {
	return lipgloss.Color(colorful.Hsl(h, s/100, l/100).Clamped().Hex())
}

// Fade blends from toward to by t in [0,1]. t=0 yields from.
func Fade(from, to lipgloss.Color, t float64) lipgloss.Color {
	a, err := colorful.Hex(string(from))
	if err != nil {
		return to
	}
	b, err := colorful.Hex(string(to))
	if err != nil {
		return from
	}
	switch {
	case t <= 0:
		return from
	case t >= 1:
		return to
	}
	return lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
}
