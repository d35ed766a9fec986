package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry represents a discoverable scene file in the data directory
type Entry struct {
	Name string // Display name (file name without extension)
	Path string // Path to the JSON file
}

// ScanDirectory lists the scene files in dir, sorted by name.
// Hidden files and subdirectories are skipped.
func ScanDirectory(dir string) ([]Entry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene directory: %w", err)
	}

	var scenes []Entry
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".json") {
			continue
		}
		scenes = append(scenes, Entry{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: filepath.Join(dir, name),
		})
	}

	sort.Slice(scenes, func(i, j int) bool { return scenes[i].Name < scenes[j].Name })
	return scenes, nil
}

// Find returns the entry with the given name
func Find(entries []Entry, name string) (Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Load reads and builds the scene an entry points at
func (e Entry) Load() (*Scene, error) {
	cfg, err := LoadConfig(e.Path)
	if err != nil {
		return nil, err
	}
	if cfg.Name == "" || cfg.Name == "demo" {
		cfg.Name = e.Name
	}
	s, err := New(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid scene %s: %w", e.Path, err)
	}
	return s, nil
}
