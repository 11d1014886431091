package taxonomy

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Mapping is an aspect key -> phrases mapping that remembers insertion order.
// The zero value is ready to use.
type Mapping struct {
	keys   []string
	values map[string][]string
}

// Set stores phrases under key, appending key to the order on first use.
func (m *Mapping) Set(key string, phrases ...string) {
	if m.values == nil {
		m.values = make(map[string][]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = phrases
}

// Get returns the phrases stored under key.
func (m *Mapping) Get(key string) ([]string, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Len returns the number of keys.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// UnmarshalYAML decodes a YAML mapping node while keeping key order, which a
// plain Go map would lose.
func (m *Mapping) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.Errorf("line %d: expected a mapping of aspect keys", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if _, dup := m.Get(keyNode.Value); dup {
			return errors.Errorf("line %d: aspect %q declared twice", keyNode.Line, keyNode.Value)
		}
		var phrases []string
		if err := valNode.Decode(&phrases); err != nil {
			return errors.Wrapf(err, "line %d: aspect %q", valNode.Line, keyNode.Value)
		}
		m.Set(keyNode.Value, phrases...)
	}
	return nil
}
