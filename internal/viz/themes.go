package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Accent    lipgloss.Color
	Highlight lipgloss.Color
	Border    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
}

var (
	ThemeEmber = Theme{
		Name:      "ember",
		Primary:   lipgloss.Color("#ff8c42"),
		Accent:    lipgloss.Color("#ffd166"),
		Highlight: lipgloss.Color("#ff3b30"),
		Border:    lipgloss.Color("#5a3d2b"),
		Text:      lipgloss.Color("#fff5eb"),
		Muted:     lipgloss.Color("#8b6b5c"),
		Error:     lipgloss.Color("#ff4757"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Accent:    lipgloss.Color("#00a8cc"),
		Highlight: lipgloss.Color("#ffd700"),
		Border:    lipgloss.Color("#1f4e79"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Error:     lipgloss.Color("#ff4444"),
	}

	ThemeMono = Theme{
		Name:      "mono",
		Primary:   lipgloss.Color("#ffffff"),
		Accent:    lipgloss.Color("#cccccc"),
		Highlight: lipgloss.Color("#0088ff"),
		Border:    lipgloss.Color("#444444"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Error:     lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{ThemeEmber, ThemeOcean, ThemeMono}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
