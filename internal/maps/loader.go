package maps

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-jumper/internal/config"
)

// Loader handles loading maps from a directory.
type Loader struct {
	Root string
	Cfg  config.MapConfig
}

// NewLoader creates a new map loader.
func NewLoader(root string, cfg config.MapConfig) *Loader {
	return &Loader{Root: root, Cfg: cfg}
}

// LoadAll recursively scans and loads all map files.
// Files that fail to parse are skipped. Returns maps sorted by ID for
// deterministic ordering.
func (l *Loader) LoadAll() ([]*Map, error) {
	var maps []*Map

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsMapFile(path) {
			return nil
		}

		m, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		maps = append(maps, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("maps: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(maps, func(i, j int) bool {
		return maps[i].ID < maps[j].ID
	})
	return maps, nil
}

// LoadFile loads a single map file. Text maps take their ID from the file
// name; YAML maps fall back to it when they declare none.
func (l *Loader) LoadFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("maps: reading file %s: %w", path, err)
	}

	var m *Map
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		m, err = ParseYAML(data, l.Cfg)
	case ".map", ".txt":
		m, err = ParseText(data, l.Cfg)
	default:
		return nil, fmt.Errorf("maps: unsupported extension: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("maps: parsing file %s: %w", path, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if m.ID == "" {
		m.ID = base
	}
	if m.Name == "" {
		m.Name = m.ID
	}
	m.FilePath = path
	return m, nil
}

// LoadByID loads a specific map by ID.
func (l *Loader) LoadByID(id string) (*Map, error) {
	maps, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, m := range maps {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, fmt.Errorf("maps: map not found: %s", id)
}

// ListIDs returns all map IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	maps, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(maps))
	for i, m := range maps {
		ids[i] = m.ID
	}
	return ids, nil
}

// Resolve finds a map by reference: "" or "default" selects the embedded
// map, an existing file path is loaded directly, and anything else is
// looked up by ID under Root.
func (l *Loader) Resolve(ref string) (*Map, error) {
	if ref == "" || ref == DefaultID {
		return Default(l.Cfg)
	}
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return l.LoadFile(ref)
	}
	if l.Root == "" {
		return nil, fmt.Errorf("maps: map not found: %s", ref)
	}
	return l.LoadByID(ref)
}

// IsMapFile reports whether path has a supported map extension.
func IsMapFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".map", ".txt":
		return true
	default:
		return false
	}
}
