package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles of one theme.
type Styles struct {
	Panel       lipgloss.Style
	Title       lipgloss.Style
	Selected    lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	KeyHint     lipgloss.Style
	Error       lipgloss.Style
	Arrow       lipgloss.Style
	ArrowActive lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Highlight),
		Label: lipgloss.NewStyle().
			Foreground(t.Muted),
		Value: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent),
		KeyHint: lipgloss.NewStyle().
			Foreground(t.Muted).
			Italic(true),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Error),
		Arrow:       lipgloss.NewStyle().Foreground(t.Text),
		ArrowActive: lipgloss.NewStyle().Foreground(t.Highlight).Bold(true),
	}
}

// SparklineChart renders values as a one-line bar chart of at most width
// characters.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := max(len(values)/width, 1)

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / span
		idx := int(norm * float64(len(chars)-1))
		result.WriteRune(chars[max(0, min(idx, len(chars)-1))])
	}
	return result.String()
}

// Separator renders a muted horizontal rule.
func (s Styles) Separator(width int) string {
	if width < 8 {
		return s.Label.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return s.Label.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}
