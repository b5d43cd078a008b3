package trigger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// FileEntry is one static trigger in a definitions file.
type FileEntry struct {
	Names       []string `yaml:"names" json:"names"`
	Value       string   `yaml:"value" json:"value"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
}

// File is the on-disk shape of a trigger definitions file.
type File struct {
	Triggers []FileEntry `yaml:"triggers" json:"triggers"`
}

// ParseFile decodes definitions. The format is picked from the extension:
// .json and .jsonc accept comments and trailing commas, anything else is YAML.
func ParseFile(name string, data []byte) (*File, error) {
	var f File
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".jsonc":
		// Strip comments and trailing commas before parsing as standard JSON.
		if err := json.Unmarshal(jsonc.ToJSON(data), &f); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
	default:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
	}
	return &f, nil
}

// LoadFile reads a definitions file and registers every entry as a static
// trigger. It returns the number of descriptors added.
func (r *Registry) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := ParseFile(path, data)
	if err != nil {
		return 0, err
	}
	return r.Load(f)
}

// Load registers every entry of f. It stops at the first failing entry.
func (r *Registry) Load(f *File) (int, error) {
	added := 0
	for i, e := range f.Triggers {
		if err := r.Register(e.Names, Static(e.Value), e.Description); err != nil {
			return added, fmt.Errorf("trigger #%d %v: %w", i+1, e.Names, err)
		}
		added++
	}
	return added, nil
}
