package formrules

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Preset names shipped with the site.
const (
	Registration      = "registration"
	Login             = "login"
	Adoption          = "adoption"
	AdminRegistration = "admin_registration"
)

//go:embed presets.yaml
var defaultPresets []byte

// FieldRules binds a posted field to its rule declaration.
type FieldRules struct {
	Field string `yaml:"field"`
	Rules string `yaml:"rules"`
}

// Presets maps a preset name to its fields in validation order.
type Presets map[string][]FieldRules

type presetsFile struct {
	Presets Presets `yaml:"presets"`
}

// LoadPresets decodes a presets document. Every field needs a name, and a field
// may appear only once per preset.
func LoadPresets(r io.Reader) (Presets, error) {
	var f presetsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Join(ErrInvalidPresets, err)
	}
	if len(f.Presets) == 0 {
		return nil, fmt.Errorf("%w: no presets defined", ErrInvalidPresets)
	}
	for name, fields := range f.Presets {
		seen := make(map[string]struct{}, len(fields))
		for i, fr := range fields {
			key := strings.TrimSpace(fr.Field)
			if key == "" {
				return nil, fmt.Errorf("%w: preset %q entry %d has no field", ErrInvalidPresets, name, i)
			}
			if _, dup := seen[key]; dup {
				return nil, fmt.Errorf("%w: preset %q repeats field %q", ErrInvalidPresets, name, key)
			}
			seen[key] = struct{}{}
			fields[i].Field = key
		}
	}
	return f.Presets, nil
}

// LoadPresetsFile reads presets from path.
func LoadPresetsFile(path string) (Presets, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrReadingPresets, err)
	}
	defer f.Close()
	return LoadPresets(f)
}

// DefaultPresets returns the embedded registration, login, adoption and
// admin_registration presets.
func DefaultPresets() Presets {
	p, err := LoadPresets(bytes.NewReader(defaultPresets))
	if err != nil {
		panic(fmt.Sprintf("formrules: embedded presets: %v", err))
	}
	return p
}

// Store holds the active presets and swaps them atomically on reload.
type Store struct {
	mu      sync.RWMutex
	presets Presets
}

func NewStore(p Presets) *Store {
	return &Store{presets: p}
}

// Get returns a copy of the named preset.
func (s *Store) Get(name string) ([]FieldRules, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fields, ok := s.presets[name]
	return slices.Clone(fields), ok
}

// Names returns the preset names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.presets))
}

func (s *Store) Replace(p Presets) {
	s.mu.Lock()
	s.presets = p
	s.mu.Unlock()
}

// ReloadFile replaces the presets with the contents of path. The current
// presets stay active when the file cannot be loaded.
func (s *Store) ReloadFile(path string) error {
	p, err := LoadPresetsFile(path)
	if err != nil {
		return err
	}
	s.Replace(p)
	return nil
}
