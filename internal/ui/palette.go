package ui

import (
	"io"

	"github.com/agbru/fibbuzz/internal/fizzbuzz"
	"github.com/charmbracelet/lipgloss"
)

// Theme assigns a color to each rule word.
type Theme struct {
	// Name is the identifier of the theme.
	Name  string
	Buzz  lipgloss.TerminalColor
	Fizz  lipgloss.TerminalColor
	Prime lipgloss.TerminalColor
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:  "dark",
		Buzz:  lipgloss.Color("#FF8C00"), // orange
		Fizz:  lipgloss.Color("#4488FF"), // blue
		Prime: lipgloss.Color("#9ECE6A"), // green
	}

	// NoColorTheme renders every word with the terminal's default colors.
	NoColorTheme = Theme{
		Name:  "none",
		Buzz:  lipgloss.NoColor{},
		Fizz:  lipgloss.NoColor{},
		Prime: lipgloss.NoColor{},
	}
)

// Palette styles rule words. It implements fizzbuzz.Styler.
type Palette struct {
	buzz  lipgloss.Style
	fizz  lipgloss.Style
	prime lipgloss.Style
}

var _ fizzbuzz.Styler = (*Palette)(nil)

// NewPalette returns a palette rendering for out with the given theme.
// The color profile is detected from out; a writer that is not a terminal
// gets plain text.
func NewPalette(out io.Writer, theme Theme) *Palette {
	return NewPaletteWithRenderer(lipgloss.NewRenderer(out), theme)
}

// NewPaletteWithRenderer returns a palette using an explicit renderer.
func NewPaletteWithRenderer(r *lipgloss.Renderer, theme Theme) *Palette {
	return &Palette{
		buzz:  r.NewStyle().Foreground(theme.Buzz),
		fizz:  r.NewStyle().Foreground(theme.Fizz),
		prime: r.NewStyle().Foreground(theme.Prime),
	}
}

// Style renders word with the style of rule. Unknown rules are returned
// unchanged.
func (p *Palette) Style(rule fizzbuzz.Rules, word string) string {
	switch rule {
	case fizzbuzz.RuleBuzz:
		return p.buzz.Render(word)
	case fizzbuzz.RuleFizz:
		return p.fizz.Render(word)
	case fizzbuzz.RulePrime:
		return p.prime.Render(word)
	}
	return word
}
