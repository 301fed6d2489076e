package file

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// DirName is the lexiverse directory created under the user's home.
const DirName = ".lexiverse"

// DefaultDir returns ~/.lexiverse.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// tomlFile is a flat dot-notation view of one TOML file.
// Keys like "backend.base_url" are written as nested tables.
type tomlFile struct {
	mu   sync.RWMutex
	path string
	data map[string]any
}

// openTOMLFile ensures dir exists and loads name from it.
// An empty dir means DefaultDir.
func openTOMLFile(dir, name string) (*tomlFile, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	f := &tomlFile{
		path: filepath.Join(dir, name),
		data: make(map[string]any),
	}
	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *tomlFile) get(key string) (any, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	val, ok := f.data[key]
	return val, ok
}

func (f *tomlFile) set(key string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return f.save()
}

func (f *tomlFile) remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; !ok {
		return nil
	}
	delete(f.data, key)
	return f.save()
}

// save writes the file with restricted permissions (caller must hold lock).
func (f *tomlFile) save() error {
	out, err := toml.Marshal(nestMap(f.data))
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(f.path), err)
	}
	if err := os.WriteFile(f.path, out, 0600); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}

// load replaces the in-memory data with the file contents.
// A missing file is an empty configuration.
func (f *tomlFile) load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			f.data = make(map[string]any)
			return nil
		}
		return fmt.Errorf("read %s: %w", f.path, err)
	}

	var loaded map[string]any
	if err := toml.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("parse %s: %w", f.path, err)
	}
	f.data = flattenMap(loaded, "")
	return nil
}

// flattenMap converts nested tables to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)
	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
			continue
		}
		result[fullKey] = value
	}
	return result
}

// nestMap is the inverse of flattenMap. Keys are applied in sorted order,
// so when "a" and "a.b" are both set the value of "a" wins.
func nestMap(flat map[string]any) map[string]any {
	root := make(map[string]any)
	for _, key := range slices.Sorted(maps.Keys(flat)) {
		parts := strings.Split(key, ".")
		table := root
		for _, part := range parts[:len(parts)-1] {
			next, exists := table[part]
			if !exists {
				next = make(map[string]any)
				table[part] = next
			}
			child, ok := next.(map[string]any)
			if !ok {
				table = nil
				break
			}
			table = child
		}
		if table != nil {
			table[parts[len(parts)-1]] = flat[key]
		}
	}
	return root
}
