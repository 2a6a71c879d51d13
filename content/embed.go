// Package content loads the static data tables, maps and mind scripts the
// simulation is built from. Files are read from an optional directory on
// disk first and fall back to the copies embedded in the binary.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml maps/*.yaml scripts/*.tengo
var embedded embed.FS

// Source resolves content file names. The zero value reads embedded files
// only.
type Source struct {
	Dir string
}

// NewSource returns a source that prefers files under dir.
func NewSource(dir string) Source {
	return Source{Dir: dir}
}

// Load returns the bytes of a content file such as "data/npcs.yaml".
func (s Source) Load(name string) ([]byte, error) {
	clean := cleanPath(name)
	if s.Dir != "" {
		if data, err := os.ReadFile(s.diskPath(clean)); err == nil {
			return data, nil
		}
	}
	return embedded.ReadFile(clean)
}

// LoadScript returns a mind script by bare name, with or without extension.
func (s Source) LoadScript(name string) ([]byte, error) {
	clean := cleanPath(name)
	clean = strings.TrimPrefix(clean, "scripts/")
	if filepath.Ext(clean) == "" {
		clean += ".tengo"
	}
	return s.Load("scripts/" + clean)
}

// ModTime reports the modification time of the disk copy of name.
func (s Source) ModTime(name string) (time.Time, bool) {
	if s.Dir == "" {
		return time.Time{}, false
	}
	info, err := os.Stat(s.diskPath(cleanPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// WatchDirs lists the disk directories a Watcher should observe.
func (s Source) WatchDirs() []string {
	if s.Dir == "" {
		return nil
	}
	var dirs []string
	for _, sub := range []string{"data", "maps", "scripts"} {
		dir := filepath.Join(s.Dir, sub)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// Maps lists the map names available in the embedded set and on disk.
func (s Source) Maps() ([]string, error) {
	seen := map[string]bool{}
	var names []string
	add := func(file string) {
		if !isSpecFile(file) {
			return
		}
		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	entries, err := fs.ReadDir(embedded, "maps")
	if err != nil {
		return nil, fmt.Errorf("content: list maps: %w", err)
	}
	for _, e := range entries {
		add(e.Name())
	}
	if s.Dir != "" {
		if entries, err := os.ReadDir(filepath.Join(s.Dir, "maps")); err == nil {
			for _, e := range entries {
				add(e.Name())
			}
		}
	}
	return names, nil
}

func loadYAML[T any](s Source, name string) (T, error) {
	var zero T
	data, err := s.Load(name)
	if err != nil {
		return zero, fmt.Errorf("content: load %s: %w", name, err)
	}
	var out T
	if err := yaml.Unmarshal(data, &out); err != nil {
		return zero, fmt.Errorf("content: unmarshal %s: %w", name, err)
	}
	return out, nil
}

func cleanPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "content/"); ok {
		s = after
	}
	return s
}

func (s Source) diskPath(clean string) string {
	return filepath.Join(s.Dir, filepath.FromSlash(clean))
}
