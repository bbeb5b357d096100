// Package tui is a terminal editor for flames. It edits a flame.Builder in
// place and re-renders a preview after every change.
package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/flamemaker/internal/flame"
	"github.com/san-kum/flamemaker/internal/geometry"
	"github.com/san-kum/flamemaker/internal/palette"
	"github.com/san-kum/flamemaker/internal/viz"
)

const (
	step       = 0.1
	rotateStep = math.Pi / 12
	scaleStep  = 1.1
)

// Options configure the preview of the editor.
type Options struct {
	Frame      geometry.Rectangle
	Palette    palette.Palette
	Background palette.Color
	Density    int
	Theme      viz.Theme
}

type mode int

const (
	modeList mode = iota
	modeFields
)

var fieldNames = []string{"a", "b", "c", "d", "e", "f"}

func init() {
	for _, v := range flame.Variations {
		fieldNames = append(fieldNames, strings.ToLower(v.Name()))
	}
}

type previewMsg struct {
	gen     int
	view    string
	columns string
	err     error
}

type model struct {
	b      *flame.Builder
	opts   Options
	styles viz.Styles

	mode    mode
	cursor  int
	field   int
	editing bool
	editBuf string

	gen     int
	preview string
	columns string
	err     error

	width  int
	height int
}

func newModel(b *flame.Builder, opts Options) model {
	if opts.Density <= 0 {
		opts.Density = 5
	}
	if opts.Theme.Name == "" {
		opts.Theme = viz.Themes[0]
	}
	return model{
		b:      b,
		opts:   opts,
		styles: viz.NewStyles(opts.Theme),
		width:  80,
		height: 24,
	}
}

func (m model) Init() tea.Cmd { return m.render() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.refresh()
	case previewMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.preview, m.columns, m.err = msg.view, msg.columns, msg.err
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case modeList:
		return m.listKey(msg)
	case modeFields:
		return m.fieldKey(msg)
	}
	return m, nil
}

func (m model) listKey(msg tea.KeyMsg) (model, tea.Cmd) {
	n := m.b.TransformationCount()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, m.refresh()
	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}
		return m, m.refresh()
	case "a":
		t, _ := flame.NewTransformation(geometry.Identity, []float64{1, 0, 0, 0, 0, 0})
		m.b.AddTransformation(t)
		m.cursor = m.b.TransformationCount() - 1
		return m, m.refresh()
	case "x", "delete":
		if n == 0 {
			return m, nil
		}
		if err := m.b.RemoveTransformation(m.cursor); err != nil {
			m.err = err
			return m, nil
		}
		if m.cursor >= m.b.TransformationCount() && m.cursor > 0 {
			m.cursor--
		}
		return m, m.refresh()
	case "enter":
		if n > 0 {
			m.mode = modeFields
			m.field = 0
		}
	case "t":
		m.opts.Theme = viz.NextTheme(m.opts.Theme)
		m.styles = viz.NewStyles(m.opts.Theme)
	case "H":
		return m, m.transform(geometry.Translation(-step, 0), true)
	case "L":
		return m, m.transform(geometry.Translation(step, 0), true)
	case "K":
		return m, m.transform(geometry.Translation(0, step), true)
	case "J":
		return m, m.transform(geometry.Translation(0, -step), true)
	case "r":
		return m, m.transform(geometry.Rotation(rotateStep), false)
	case "R":
		return m, m.transform(geometry.Rotation(-rotateStep), false)
	case "+", "=":
		return m, m.transform(geometry.Scaling(scaleStep, scaleStep), false)
	case "-", "_":
		return m, m.transform(geometry.Scaling(1/scaleStep, 1/scaleStep), false)
	case "[":
		return m, m.transform(geometry.ShearX(-step), false)
	case "]":
		return m, m.transform(geometry.ShearX(step), false)
	}
	return m, nil
}

// transform composes op with the selected affine map. Translations act on
// the plane; other maps act before the selected map so its offset is kept.
func (m *model) transform(op geometry.Affine, global bool) tea.Cmd {
	a, err := m.b.Affine(m.cursor)
	if err != nil {
		m.err = err
		return nil
	}
	if global {
		a = op.ComposeWith(a)
	} else {
		a = a.ComposeWith(op)
	}
	if err := m.b.SetAffine(m.cursor, a); err != nil {
		m.err = err
		return nil
	}
	return m.refresh()
}

func (m model) fieldKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			m.editing = false
			v, err := strconv.ParseFloat(m.editBuf, 64)
			m.editBuf = ""
			if err != nil {
				m.err = fmt.Errorf("not a number: %w", err)
				return m, nil
			}
			return m, m.setField(v)
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		m.mode = modeList
	case "up", "k":
		if m.field > 0 {
			m.field--
		}
	case "down", "j":
		if m.field < len(fieldNames)-1 {
			m.field++
		}
	case "enter", " ":
		v, _ := m.fieldValue(m.field)
		m.editing = true
		m.editBuf = strconv.FormatFloat(v, 'f', -1, 64)
	case "left", "h":
		v, _ := m.fieldValue(m.field)
		return m, m.setField(v - step)
	case "right", "l":
		v, _ := m.fieldValue(m.field)
		return m, m.setField(v + step)
	}
	return m, nil
}

// fieldValue returns an affine coefficient for fields 0..5 and a variation
// weight for the rest.
func (m model) fieldValue(field int) (float64, error) {
	if field < len(coefficients) {
		a, err := m.b.Affine(m.cursor)
		if err != nil {
			return 0, err
		}
		return *coefficients[field](&a), nil
	}
	return m.b.VariationWeight(m.cursor, flame.Variations[field-len(coefficients)])
}

func (m *model) setField(v float64) tea.Cmd {
	var err error
	if m.field < len(coefficients) {
		var a geometry.Affine
		if a, err = m.b.Affine(m.cursor); err == nil {
			*coefficients[m.field](&a) = v
			err = m.b.SetAffine(m.cursor, a)
		}
	} else {
		err = m.b.SetVariationWeight(m.cursor, flame.Variations[m.field-len(coefficients)], v)
	}
	if err != nil {
		m.err = err
		return nil
	}
	return m.refresh()
}

var coefficients = []func(*geometry.Affine) *float64{
	func(a *geometry.Affine) *float64 { return &a.A },
	func(a *geometry.Affine) *float64 { return &a.B },
	func(a *geometry.Affine) *float64 { return &a.C },
	func(a *geometry.Affine) *float64 { return &a.D },
	func(a *geometry.Affine) *float64 { return &a.E },
	func(a *geometry.Affine) *float64 { return &a.F },
}

func (m *model) refresh() tea.Cmd {
	m.gen++
	m.err = nil
	return m.render()
}

func (m model) previewSize() (cols, rows int) {
	return max(20, m.width/2-4), max(6, m.height/2-3)
}

// render computes the preview of the current builder state off the event
// loop. Results of older generations are dropped in Update.
func (m model) render() tea.Cmd {
	f := m.b.Build()
	cols, rows := m.previewSize()
	gen, opts := m.gen, m.opts
	return func() tea.Msg {
		if f.TransformationCount() == 0 {
			return previewMsg{gen: gen}
		}
		acc, err := viz.PreviewAccumulator(f, opts.Frame, cols, rows, opts.Density)
		if err != nil {
			return previewMsg{gen: gen, err: err}
		}
		view, err := viz.RenderAccumulator(acc, opts.Palette, opts.Background)
		return previewMsg{gen: gen, view: view, columns: viz.ColumnSparkline(acc, cols), err: err}
	}
}

func (m model) View() string {
	s := m.styles
	var left strings.Builder

	left.WriteString(s.Title.Render("f l a m e m a k e r") + "\n")
	left.WriteString(s.Separator(28) + "\n")

	n := m.b.TransformationCount()
	if n == 0 {
		left.WriteString(s.Label.Render("  no transformations") + "\n")
	}
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("Transformation %d", i+1)
		if i == m.cursor {
			left.WriteString(s.Selected.Render("▸ "+name) + "\n")
		} else {
			left.WriteString(s.Label.Render("  "+name) + "\n")
		}
	}

	if n > 0 {
		left.WriteString("\n")
		for i, name := range fieldNames {
			v, _ := m.fieldValue(i)
			val := fmt.Sprintf("%9.4f", v)
			if m.editing && i == m.field {
				val = fmt.Sprintf("%9s", m.editBuf+"▋")
			}
			if m.mode == modeFields && i == m.field {
				left.WriteString(s.Selected.Render("▸ "+fmt.Sprintf("%-11s", name)) + s.Value.Render(val) + "\n")
			} else {
				left.WriteString(s.Label.Render("  "+fmt.Sprintf("%-11s", name)+val) + "\n")
			}
		}
	}

	if m.err != nil {
		left.WriteString("\n" + s.Error.Render(m.err.Error()) + "\n")
	}

	left.WriteString("\n")
	if m.mode == modeList {
		left.WriteString(s.KeyHint.Render("↑↓ select  a add  x remove  enter edit") + "\n")
		left.WriteString(s.KeyHint.Render("HJKL move  r/R rotate  +/- scale  [] shear") + "\n")
		left.WriteString(s.KeyHint.Render("t theme  q quit") + "\n")
	} else {
		left.WriteString(s.KeyHint.Render("↑↓ select  ←→ adjust  enter type  esc back") + "\n")
	}

	cols, rows := m.previewSize()
	affines := make([]geometry.Affine, n)
	for i := range affines {
		affines[i], _ = m.b.Affine(i)
	}
	right := lipgloss.JoinVertical(lipgloss.Left,
		s.Panel.Render(m.preview+"\n"+s.Value.Render(m.columns)),
		s.Panel.Render(viz.TransformationView(affines, m.cursor, m.opts.Frame, cols, rows, s)),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, s.Panel.Render(left.String()), right)
}

// Run opens the editor on b and returns the flame built from its final
// state.
func Run(b *flame.Builder, opts Options) (*flame.Flame, error) {
	p := tea.NewProgram(newModel(b, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return nil, err
	}
	return b.Build(), nil
}
