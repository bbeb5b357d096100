package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/flamemaker/internal/flame"
	"github.com/san-kum/flamemaker/internal/geometry"
	"github.com/san-kum/flamemaker/internal/palette"
)

// testRender builds a 4x2 accumulator with three hits in row 0 and one in
// row 1.
func testRender(t *testing.T) (*flame.Accumulator, palette.Palette) {
	t.Helper()
	frame, err := geometry.NewRectangle(geometry.Pt(2, 1), 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	b, err := flame.NewAccumulatorBuilder(frame, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []geometry.Point{geometry.Pt(0.5, 0.5), geometry.Pt(0.5, 0.5), geometry.Pt(3.5, 0.2), geometry.Pt(1.5, 1.5)} {
		if err := b.Hit(p, 0.5); err != nil {
			t.Fatal(err)
		}
	}
	pal, err := palette.NewInterpolated([]palette.Color{palette.Red, palette.Blue})
	if err != nil {
		t.Fatal(err)
	}
	return b.Build(), pal
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	acc, pal := testRender(t)
	runID, err := st.Save(RunMetadata{Preset: "test", Seed: 42, Width: 4, Height: 2, Density: 1}, acc, pal, palette.Black)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Preset != "test" {
		t.Errorf("expected preset 'test', got '%s'", meta.Preset)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Metrics["total_hits"] != 4 {
		t.Errorf("expected 4 hits, got %f", meta.Metrics["total_hits"])
	}
	if meta.Metrics["max_hits"] != 2 {
		t.Errorf("expected max hits 2, got %f", meta.Metrics["max_hits"])
	}
	if meta.Metrics["coverage"] != 3.0/8 {
		t.Errorf("expected coverage 0.375, got %f", meta.Metrics["coverage"])
	}

	rows, err := st.LoadProfile(runID)
	if err != nil {
		t.Fatalf("load profile failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Hits != 3 || rows[1].Hits != 1 {
		t.Errorf("row hits %d, %d", rows[0].Hits, rows[1].Hits)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	acc, pal := testRender(t)
	if _, err := st.Save(RunMetadata{Preset: "test"}, acc, pal, palette.Black); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "missing")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("List() = %v, %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	acc, pal := testRender(t)
	runID, err := st.Save(RunMetadata{Preset: "test"}, acc, pal, palette.Black)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "image.png", "profile.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
	if st.ImagePath(runID) != filepath.Join(runDir, "image.png") {
		t.Errorf("image path %s", st.ImagePath(runID))
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	meta := &RunMetadata{ID: "x_1", Preset: "x", Palette: []string{"#ff0000", "#0000ff"}}
	if err := WriteJSON(&buf, meta); err != nil {
		t.Fatal(err)
	}
	var got RunMetadata
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.ID != "x_1" || len(got.Palette) != 2 {
		t.Errorf("decoded %+v", got)
	}
}

func TestProfile(t *testing.T) {
	acc, _ := testRender(t)
	rows := Profile(acc)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// row 1 has one of four cells lit, at intensity ln2/ln3
	if rows[1].Intensity <= 0 || rows[1].Intensity >= 0.25 {
		t.Errorf("row 1 intensity %f", rows[1].Intensity)
	}
	if rows[0].Intensity <= rows[1].Intensity {
		t.Errorf("row 0 intensity %f not above row 1 %f", rows[0].Intensity, rows[1].Intensity)
	}
}
