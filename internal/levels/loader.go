// Package levels loads puzzles from files and directories.
// This package depends on core but core does not depend on levels.
package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/squares/internal/core"
	"github.com/vovakirdan/squares/internal/levels/formats"
)

// Level is a puzzle file found in a level pack.
type Level struct {
	ID       string // Path relative to the pack root, without extension
	Puzzle   *core.Puzzle
	FilePath string
}

// Title returns the puzzle name, falling back to the ID.
func (l Level) Title() string {
	if l.Puzzle != nil && l.Puzzle.Name != "" {
		return l.Puzzle.Name
	}
	return l.ID
}

// LoadFile reads and parses a single puzzle file, choosing the format by extension.
func LoadFile(path string) (*core.Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	p, err := formats.Parse(data, ext)
	if err != nil {
		return nil, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}

	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all puzzle files.
// Files that fail to parse are skipped. Returns levels sorted by ID for
// deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		p, err := LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		levels = append(levels, Level{
			ID:       l.idFor(path),
			Puzzle:   p,
			FilePath: path,
		})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadByID loads the level with the given ID. The file is found by trying
// each supported extension under the root, so the pack is not scanned.
// Unlike LoadAll, a file that fails to parse is reported, not skipped.
func (l *Loader) LoadByID(id string) (Level, error) {
	rel := filepath.FromSlash(id)
	if id == "" || !filepath.IsLocal(rel) {
		return Level{}, fmt.Errorf("levels: invalid level id %q", id)
	}

	base := filepath.Join(l.Root, rel)
	for _, ext := range formats.Extensions() {
		path := base + ext
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			continue
		}
		p, err := LoadFile(path)
		if err != nil {
			return Level{}, err
		}
		return Level{ID: id, Puzzle: p, FilePath: path}, nil
	}

	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}

// ListIDs returns the IDs of all loadable levels in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	lvls, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(lvls))
	for _, lvl := range lvls {
		ids = append(ids, lvl.ID)
	}
	return ids, nil
}

// idFor derives a level ID from its path: relative to the root, slash
// separated, extension stripped.
func (l *Loader) idFor(path string) string {
	rel, err := filepath.Rel(l.Root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.ToSlash(rel)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	return slices.Contains(formats.Extensions(), ext)
}
