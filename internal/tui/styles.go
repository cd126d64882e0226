package tui

import (
	"tagsearch/internal/autocomplete"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Styles holds every style the view uses, derived from one catppuccin flavor
type Styles struct {
	Title        lipgloss.Style
	Status       lipgloss.Style
	Error        lipgloss.Style
	InputBox     lipgloss.Style
	InputBlurred lipgloss.Style
	Prompt       lipgloss.Style
	Text         lipgloss.Style
	Placeholder  lipgloss.Style
	Ghost        lipgloss.Style
	Dropdown     lipgloss.Style
	Item         lipgloss.Style
	SelectedItem lipgloss.Style
	Antecedent   lipgloss.Style
	Count        lipgloss.Style
	Muted        lipgloss.Style
	Help         lipgloss.Style
	HelpKey      lipgloss.Style

	selectedBg lipgloss.Color
	categories map[int]lipgloss.Color
}

// flavorByName maps a config theme to a catppuccin flavor, defaulting to mocha
func flavorByName(name string) catppuccin.Flavor {
	switch name {
	case "latte":
		return catppuccin.Latte
	case "frappe":
		return catppuccin.Frappe
	case "macchiato":
		return catppuccin.Macchiato
	default:
		return catppuccin.Mocha
	}
}

func hex(c catppuccin.Color) lipgloss.Color {
	return lipgloss.Color(c.Hex)
}

// NewStyles builds the style set for a catppuccin flavor name
func NewStyles(theme string) Styles {
	f := flavorByName(theme)

	primary := hex(f.Mauve())
	text := hex(f.Text())
	muted := hex(f.Overlay1())
	surface := hex(f.Surface0())

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),

		Status: lipgloss.NewStyle().
			Foreground(muted),

		Error: lipgloss.NewStyle().
			Foreground(hex(f.Red())).
			Bold(true),

		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1),

		InputBlurred: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),

		Prompt:      lipgloss.NewStyle().Foreground(primary),
		Text:        lipgloss.NewStyle().Foreground(text),
		Placeholder: lipgloss.NewStyle().Foreground(muted),
		Ghost:       lipgloss.NewStyle().Foreground(hex(f.Overlay0())),

		Dropdown: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(surface),

		Item: lipgloss.NewStyle().
			Foreground(text),

		SelectedItem: lipgloss.NewStyle().
			Background(surface).
			Foreground(text).
			Bold(true),

		Antecedent: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),

		Count: lipgloss.NewStyle().
			Foreground(muted),

		Muted: lipgloss.NewStyle().
			Foreground(muted),

		Help: lipgloss.NewStyle().
			Foreground(muted),

		HelpKey: lipgloss.NewStyle().
			Foreground(primary),

		selectedBg: surface,
		categories: map[int]lipgloss.Color{
			autocomplete.CategoryGeneral:   hex(f.Blue()),
			autocomplete.CategoryArtist:    hex(f.Red()),
			autocomplete.CategoryCopyright: hex(f.Mauve()),
			autocomplete.CategoryCharacter: hex(f.Green()),
			autocomplete.CategoryMeta:      hex(f.Peach()),
		},
	}
}

// CategoryStyle returns the label style for a tag category
func (s Styles) CategoryStyle(category int, selected bool) lipgloss.Style {
	style := s.Item
	if selected {
		style = s.SelectedItem
	}
	if c, ok := s.categories[category]; ok {
		style = style.Foreground(c)
	}
	return style
}
