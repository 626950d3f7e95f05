package param

import "fmt"

// Store is a fixed set of parameters addressed by ID.
type Store struct {
	params map[string]*Param
	order  []string
}

// NewStore validates specs and builds a store with every parameter at its
// default value. IDs must be unique.
func NewStore(specs ...Spec) (*Store, error) {
	s := &Store{
		params: make(map[string]*Param, len(specs)),
		order:  make([]string, 0, len(specs)),
	}
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.params[spec.ID]; dup {
			return nil, fmt.Errorf("param %q: duplicate id", spec.ID)
		}
		s.params[spec.ID] = newParam(spec)
		s.order = append(s.order, spec.ID)
	}
	return s, nil
}

// Lookup returns the parameter with the given ID, or nil.
// Callers on the audio path look a handle up once and cache it.
func (s *Store) Lookup(id string) *Param {
	if s == nil {
		return nil
	}
	return s.params[id]
}

// Value returns the current value of id.
func (s *Store) Value(id string) (float64, bool) {
	p := s.Lookup(id)
	if p == nil {
		return 0, false
	}
	return p.Value(), true
}

// Set stores v for id and returns the snapped value.
func (s *Store) Set(id string, v float64) (float64, error) {
	p := s.Lookup(id)
	if p == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParam, id)
	}
	return p.Set(v), nil
}

// IDs returns parameter IDs in declaration order.
func (s *Store) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Specs returns parameter specs in declaration order.
func (s *Store) Specs() []Spec {
	out := make([]Spec, len(s.order))
	for i, id := range s.order {
		out[i] = s.params[id].spec
	}
	return out
}

// Snapshot returns a copy of every current value. It allocates and is meant
// for control-side use.
func (s *Store) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(s.order))
	for _, id := range s.order {
		out[id] = s.params[id].Value()
	}
	return out
}

// Apply sets every value in values. Unknown IDs are reported after all known
// ones have been applied.
func (s *Store) Apply(values map[string]float64) error {
	var unknown []string
	for id, v := range values {
		p := s.Lookup(id)
		if p == nil {
			unknown = append(unknown, id)
			continue
		}
		p.Set(v)
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: %q", ErrUnknownParam, unknown)
	}
	return nil
}

// ResetAll restores every default value.
func (s *Store) ResetAll() {
	for _, p := range s.params {
		p.Reset()
	}
}
