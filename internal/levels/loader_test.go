package levels

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/squares/internal/core"
)

// getTestdataPath returns path to testdata/levels.
func getTestdataPath() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	return filepath.Join(dir, "testdata", "levels")
}

func TestLoaderLoadAll(t *testing.T) {
	loader := NewLoader(getTestdataPath())

	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	ids := make([]string, len(lvls))
	for i, l := range lvls {
		ids[i] = l.ID
	}

	// broken.sq fails to parse and notes.md has no registered format
	want := []string{"lvl01", "lvl02", "lvl03", "pack/push"}
	if !slices.Equal(ids, want) {
		t.Errorf("IDs = %v, expected %v", ids, want)
	}
}

func TestLoaderLoadByID(t *testing.T) {
	loader := NewLoader(getTestdataPath())

	lvl, err := loader.LoadByID("lvl03")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}

	if lvl.Title() != "Face to face" {
		t.Errorf("expected title 'Face to face', got %q", lvl.Title())
	}
	if len(lvl.Puzzle.Initial.Squares) != 2 || len(lvl.Puzzle.Facts.Goals) != 2 {
		t.Errorf("expected 2 squares and 2 goals, got %d and %d",
			len(lvl.Puzzle.Initial.Squares), len(lvl.Puzzle.Facts.Goals))
	}
}

func TestLoaderLoadByNestedID(t *testing.T) {
	lvl, err := NewLoader(getTestdataPath()).LoadByID("pack/push")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.ID != "pack/push" || lvl.Title() != "Shove" {
		t.Errorf("got ID %q title %q", lvl.ID, lvl.Title())
	}
	if filepath.Ext(lvl.FilePath) != ".yml" {
		t.Errorf("expected the .yml file, got %s", lvl.FilePath)
	}
}

func TestLoaderLoadByIDErrors(t *testing.T) {
	loader := NewLoader(getTestdataPath())

	tests := map[string]string{
		"nonexistent": "not found",
		"notes":       "not found", // unsupported extension
		"pack":        "not found", // directory
		"../levels":   "invalid",
		"":            "invalid",
		"broken":      "parsing",
	}

	for id, want := range tests {
		t.Run(id, func(t *testing.T) {
			_, err := loader.LoadByID(id)
			if err == nil || !strings.Contains(err.Error(), want) {
				t.Errorf("LoadByID(%q) = %v, expected error containing %q", id, err, want)
			}
		})
	}
}

func TestLoaderListIDs(t *testing.T) {
	ids, err := NewLoader(getTestdataPath()).ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}
	if len(ids) != 4 {
		t.Errorf("expected 4 IDs, got %v", ids)
	}
}

func TestLoaderMissingRoot(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "missing")).LoadAll()
	if err == nil {
		t.Error("expected error for a missing directory")
	}
}

func TestLoadFile(t *testing.T) {
	p, err := LoadFile(filepath.Join(getTestdataPath(), "lvl01.sq"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if p.Name != "First steps" {
		t.Errorf("expected name 'First steps', got %q", p.Name)
	}
	sq := p.Initial.Squares[0]
	if sq.Pos != core.P(0, 0) || sq.Dir != core.DirRight {
		t.Errorf("unexpected square %+v", sq)
	}
	if p.Facts.Goals[0].Pos != core.P(3, 0) {
		t.Errorf("unexpected goal %+v", p.Facts.Goals[0])
	}
}

func TestLoadFileNameFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "untitled.sq")
	if err := os.WriteFile(path, []byte("square a 0,0 >\ngoal a 1,0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if p.Name != "untitled" {
		t.Errorf("expected name from file, got %q", p.Name)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFile(filepath.Join(dir, "missing.sq")); err == nil {
		t.Error("expected error for unreadable file")
	}

	unknown := filepath.Join(dir, "puzzle.json")
	if err := os.WriteFile(unknown, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(unknown); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
