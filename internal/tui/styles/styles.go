package styles

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme holds the dashboard palette.
type Theme struct {
	Name   string
	IsDark bool

	Primary   color.Color
	Secondary color.Color

	BgSubtle color.Color

	FgBase   color.Color
	FgMuted  color.Color
	FgSubtle color.Color

	Border      color.Color
	BorderFocus color.Color

	Success color.Color
	Error   color.Color
	Warning color.Color

	styles *Styles
}

// Styles are common pre-built lipgloss styles.
type Styles struct {
	Base     lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style
	Error    lipgloss.Style

	Section      lipgloss.Style
	SectionFocus lipgloss.Style

	Help help.Styles
}

// S returns lazily-initialized styles tied to the theme colors.
func (t *Theme) S() *Styles {
	if t.styles != nil {
		return t.styles
	}
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	s := &Styles{
		Base:     base,
		Title:    base.Foreground(t.Primary).Bold(true),
		Subtitle: base.Foreground(t.Secondary).Bold(true),
		Text:     base,
		Muted:    base.Foreground(t.FgMuted),
		Subtle:   base.Foreground(t.FgSubtle),
		Error:    base.Foreground(t.Error),

		Section: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		SectionFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),
	}

	s.Help = help.Styles{
		Ellipsis:       base.Foreground(t.FgMuted).SetString("…"),
		ShortKey:       base.Foreground(t.FgMuted),
		ShortDesc:      base.Foreground(t.FgSubtle),
		ShortSeparator: base.Foreground(t.FgSubtle).SetString(" · "),
		FullKey:        base.Foreground(t.FgMuted).Bold(true),
		FullDesc:       base.Foreground(t.FgBase),
		FullSeparator:  base.Foreground(t.FgSubtle),
	}

	t.styles = s
	return s
}

func CurrentTheme() Theme {
	fg := color.RGBA{0xdd, 0xdd, 0xdd, 0xff}
	primary := lipgloss.Color("#f7c0af")   // orangish
	secondary := lipgloss.Color("#3ccad7") // cyan

	fgMuted := color.RGBA{0x7f, 0x7f, 0x7f, 0xff}
	fgSubtle := color.RGBA{0x88, 0x88, 0x88, 0xff}
	border := color.RGBA{0x33, 0x33, 0x38, 0xff}

	return Theme{
		Name:   "Dark",
		IsDark: true,

		Primary:   primary,
		Secondary: secondary,

		BgSubtle: color.RGBA{0x12, 0x12, 0x14, 0xff},

		FgBase:   fg,
		FgMuted:  fgMuted,
		FgSubtle: fgSubtle,

		Border:      border,
		BorderFocus: primary,

		Success: color.RGBA{0x87, 0xbf, 0x47, 0xff}, // green
		Error:   color.RGBA{0xbf, 0x5d, 0x47, 0xff}, // red
		Warning: color.RGBA{0xff, 0xc1, 0x07, 0xff}, // yellow
	}
}

// ApplyForegroundGrad applies a foreground gradient across text.
func ApplyForegroundGrad(text string, from, to color.Color) string {
	rs := []rune(text)
	n := len(rs)
	if n == 0 {
		return ""
	}

	c1, _ := colorful.MakeColor(from)
	c2, _ := colorful.MakeColor(to)
	var out string
	for i, r := range rs {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		c := c1.BlendLab(c2, t)
		hex := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", uint8(c.R*255), uint8(c.G*255), uint8(c.B*255)))
		out += lipgloss.NewStyle().Foreground(hex).Render(string(r))
	}
	return out
}
