package param

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const stateVersion = 1

type stateDoc struct {
	Version int                `yaml:"version"`
	Params  map[string]float64 `yaml:"params"`
}

// MarshalState encodes the current values as a versioned YAML document.
func (s *Store) MarshalState() ([]byte, error) {
	doc := stateDoc{Version: stateVersion, Params: s.Snapshot()}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("param: encode state: %w", err)
	}
	return data, nil
}

// UnmarshalState restores values written by MarshalState. Parameters missing
// from the document keep their current value; unknown IDs are ignored so
// state from newer layouts still loads.
func (s *Store) UnmarshalState(data []byte) error {
	var doc stateDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("param: decode state: %w", err)
	}
	if doc.Version != stateVersion {
		return fmt.Errorf("param: unsupported state version %d", doc.Version)
	}
	for id, v := range doc.Params {
		if p := s.Lookup(id); p != nil {
			p.Set(v)
		}
	}
	return nil
}
