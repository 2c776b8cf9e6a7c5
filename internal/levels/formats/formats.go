// Package formats provides pluggable puzzle file format parsers.
// Formats register themselves by file extension in init() functions, so the
// level loader can route files without knowing every format up front.
package formats

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/squares/internal/core"
)

// Parser turns the raw contents of a puzzle file into a puzzle.
// The returned puzzle's color registry is frozen.
type Parser func(data []byte) (*core.Puzzle, error)

var (
	parsers = make(map[string]Parser)
	mu      sync.RWMutex
)

// Register adds a parser for the given file extension (including the dot).
// Panics if the extension is already registered.
func Register(ext string, p Parser) {
	mu.Lock()
	defer mu.Unlock()

	ext = strings.ToLower(ext)
	if _, exists := parsers[ext]; exists {
		panic(fmt.Sprintf("formats: extension %q already registered", ext))
	}
	parsers[ext] = p
}

// Lookup returns the parser registered for ext.
func Lookup(ext string) (Parser, bool) {
	mu.RLock()
	defer mu.RUnlock()

	p, ok := parsers[strings.ToLower(ext)]
	return p, ok
}

// Extensions returns all registered extensions, sorted.
func Extensions() []string {
	mu.RLock()
	defer mu.RUnlock()

	exts := make([]string, 0, len(parsers))
	for ext := range parsers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Parse routes data to the parser registered for ext.
func Parse(data []byte, ext string) (*core.Puzzle, error) {
	p, ok := Lookup(ext)
	if !ok {
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
	return p(data)
}
