package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/flamemaker/internal/flame"
	"github.com/san-kum/flamemaker/internal/geometry"
	"github.com/san-kum/flamemaker/internal/palette"
)

func testModel(t *testing.T) model {
	t.Helper()
	lin, err := flame.NewTransformation(geometry.Scaling(0.5, 0.5), []float64{1, 0, 0, 0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	frame, _ := geometry.NewRectangle(geometry.Origin, 2, 2)
	pal, _ := palette.NewInterpolated([]palette.Color{palette.Red, palette.Blue})
	b := flame.NewBuilder(flame.New([]flame.Transformation{lin}))
	return newModel(b, Options{Frame: frame, Palette: pal, Background: palette.Black, Density: 1})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, msgs ...tea.Msg) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(model)
	}
	return m, cmd
}

func TestAddRemove(t *testing.T) {
	m := testModel(t)

	m, cmd := press(t, m, runes("a"))
	if m.b.TransformationCount() != 2 || m.cursor != 1 {
		t.Fatalf("after add: count %d cursor %d", m.b.TransformationCount(), m.cursor)
	}
	if cmd == nil {
		t.Error("add should re-render the preview")
	}
	if w, _ := m.b.VariationWeight(1, flame.Variations[flame.Linear]); w != 1 {
		t.Errorf("new transformation linear weight %g", w)
	}

	m, _ = press(t, m, runes("x"))
	if m.b.TransformationCount() != 1 || m.cursor != 0 {
		t.Fatalf("after remove: count %d cursor %d", m.b.TransformationCount(), m.cursor)
	}

	m, _ = press(t, m, runes("x"), runes("x"))
	if m.b.TransformationCount() != 0 {
		t.Errorf("count %d after removing everything", m.b.TransformationCount())
	}
	if !strings.Contains(m.View(), "no transformations") {
		t.Error("empty flame not shown")
	}
}

func TestFieldEditing(t *testing.T) {
	m := testModel(t)
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	m, _ = press(t, m, enter)
	if m.mode != modeFields {
		t.Fatal("enter should open the field editor")
	}

	// field 0 is coefficient a, currently 0.5
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if a, _ := m.b.Affine(0); a.A != 0.6 {
		t.Errorf("a = %g, want 0.6", a.A)
	}

	// type a value for the bubble weight
	down := tea.KeyMsg{Type: tea.KeyDown}
	for i := 0; i < 6+flame.Bubble; i++ {
		m, _ = press(t, m, down)
	}
	m, _ = press(t, m, enter, tea.KeyMsg{Type: tea.KeyBackspace})
	m, cmd := press(t, m, runes("0"), runes("."), runes("2"), runes("5"), enter)
	if w, _ := m.b.VariationWeight(0, flame.Variations[flame.Bubble]); w != 0.25 {
		t.Errorf("bubble weight = %g, want 0.25", w)
	}
	if cmd == nil {
		t.Error("edit should re-render the preview")
	}

	m, _ = press(t, m, enter, runes("x"), enter)
	if m.err != nil {
		t.Errorf("unexpected error %v", m.err)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeList {
		t.Error("esc should return to the list")
	}
}

func TestTransformKeys(t *testing.T) {
	m := testModel(t)

	m, _ = press(t, m, runes("L"))
	a, _ := m.b.Affine(0)
	if a.C != 0.1 || a.A != 0.5 {
		t.Errorf("after move right: %+v", a)
	}

	m, _ = press(t, m, runes("+"))
	a, _ = m.b.Affine(0)
	if a.C != 0.1 || a.A <= 0.5 {
		t.Errorf("scaling changed the offset or did not grow: %+v", a)
	}
}

func TestPreviewGenerations(t *testing.T) {
	m := testModel(t)
	cmd := m.Init()
	msg := cmd()

	m, _ = press(t, m, runes("L"))
	m, _ = press(t, m, msg)
	if m.preview != "" {
		t.Error("stale preview was applied")
	}

	m, cmd = press(t, m, runes("H"))
	m, _ = press(t, m, cmd())
	if m.err != nil {
		t.Fatal(m.err)
	}
	if !strings.Contains(m.preview, "▀") {
		t.Error("preview not rendered")
	}
	cols, _ := m.previewSize()
	if n := len([]rune(m.columns)); n != cols {
		t.Errorf("column sparkline has %d cells, want %d", n, cols)
	}
	if !strings.Contains(m.View(), "Transformation 1") {
		t.Error("view misses the transformation list")
	}
}

func TestQuit(t *testing.T) {
	m := testModel(t)
	_, cmd := press(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not return a quit command")
	}
}
