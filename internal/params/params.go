// Package params is the flat declare-then-get parameter table the control
// core consumes its gains and limits from. Parameters are declared once with
// a default, optionally overlaid from a yaml file, and snapshotted into a
// control.Params once per tick. All type checking happens here; the core
// never coerces.
package params

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

type Store struct {
	mu   sync.RWMutex
	vals map[string]any
}

func NewStore() *Store {
	return &Store{vals: make(map[string]any)}
}

func (s *Store) DeclareDouble(name string, def float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals[name] = def
}

func (s *Store) DeclareInt(name string, def int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals[name] = def
}

func (s *Store) DeclareBool(name string, def bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals[name] = def
}

func (s *Store) DeclareString(name string, def string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals[name] = def
}

func (s *Store) Double(name string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vals[name]
	if !ok {
		return 0, fmt.Errorf("params: %q not declared", name)
	}
	d, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("params: %q is %T, want float64", name, v)
	}
	return d, nil
}

func (s *Store) Int(name string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vals[name]
	if !ok {
		return 0, fmt.Errorf("params: %q not declared", name)
	}
	n, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("params: %q is %T, want int64", name, v)
	}
	return n, nil
}

func (s *Store) Bool(name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vals[name]
	if !ok {
		return false, fmt.Errorf("params: %q not declared", name)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("params: %q is %T, want bool", name, v)
	}
	return b, nil
}

func (s *Store) String(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vals[name]
	if !ok {
		return "", fmt.Errorf("params: %q not declared", name)
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("params: %q is %T, want string", name, v)
	}
	return str, nil
}

// LoadFile overlays declared parameters from a yaml mapping of name to
// value. Undeclared names and type mismatches are errors; on error the store
// is left unchanged.
func (s *Store) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("params: read %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("params: parse %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make(map[string]any, len(raw))
	for name, v := range raw {
		cur, ok := s.vals[name]
		if !ok {
			return fmt.Errorf("params: %q not declared", name)
		}
		switch cur.(type) {
		case float64:
			switch n := v.(type) {
			case float64:
				staged[name] = n
			case int:
				// yaml decodes whole numbers as int; doubles accept them.
				staged[name] = float64(n)
			default:
				return fmt.Errorf("params: %q is %T, want number", name, v)
			}
		case int64:
			n, ok := v.(int)
			if !ok {
				return fmt.Errorf("params: %q is %T, want integer", name, v)
			}
			staged[name] = int64(n)
		case bool:
			bv, ok := v.(bool)
			if !ok {
				return fmt.Errorf("params: %q is %T, want bool", name, v)
			}
			staged[name] = bv
		case string:
			sv, ok := v.(string)
			if !ok {
				return fmt.Errorf("params: %q is %T, want string", name, v)
			}
			staged[name] = sv
		}
	}

	for name, v := range staged {
		s.vals[name] = v
	}
	return nil
}
