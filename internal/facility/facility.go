// Package facility provides the fixed set of facilities a handover entry
// may target. The set ships with built-in defaults and can be replaced by
// a YAML file at startup; it is never user-editable at runtime.
package facility

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaults is the built-in facility set used when no override file is given.
var defaults = []string{
	"Ajeromi General Hospital",
	"Harvey Road General Hospital",
	"Massey Children Hospital",
	"God's Hope",
}

// List is an ordered, immutable set of facility names.
type List struct {
	names []string
}

// Default returns the built-in facility list.
func Default() *List {
	return &List{names: defaults}
}

// fileFormat is the YAML shape of an override file:
//
//	facilities:
//	  - General Hospital A
//	  - General Hospital B
type fileFormat struct {
	Facilities []string `yaml:"facilities"`
}

// Load returns the facility list for the given override path. An empty
// path returns the built-in defaults.
func Load(path string) (*List, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("facility: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML facility file. Blank entries are dropped; an empty
// result is rejected since the entry form would have nothing to select.
func Parse(data []byte) (*List, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("facility: decode: %w", err)
	}

	var names []string
	for _, name := range f.Facilities {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("facility: file defines no facilities")
	}
	return &List{names: names}, nil
}

// Names returns a copy of the facility names in display order.
func (l *List) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Contains reports whether name is a known facility.
func (l *List) Contains(name string) bool {
	for _, n := range l.names {
		if n == name {
			return true
		}
	}
	return false
}
