package uuidscrub

import (
	"fmt"
	"io"

	"github.com/vvka-141/prepdir/pkg/prepdir"
	"gopkg.in/yaml.v3"
)

// Mapping is an insertion-ordered set of token to original UUID pairs.
// A token appears at most once and an original maps to at most one token.
// Mappings only grow.
type Mapping struct {
	tokens    []string
	originals map[string]string
	reverse   map[string]string
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{
		originals: make(map[string]string),
		reverse:   make(map[string]string),
	}
}

// Len returns the number of tokens. A nil mapping is empty.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.tokens)
}

// Has reports whether token is mapped.
func (m *Mapping) Has(token string) bool {
	if m == nil {
		return false
	}
	_, ok := m.originals[token]
	return ok
}

// Original returns the UUID a token stands for.
func (m *Mapping) Original(token string) (string, bool) {
	if m == nil {
		return "", false
	}
	orig, ok := m.originals[token]
	return orig, ok
}

// TokenFor returns the token already assigned to an original UUID.
func (m *Mapping) TokenFor(original string) (string, bool) {
	if m == nil {
		return "", false
	}
	tok, ok := m.reverse[original]
	return tok, ok
}

// Add records token for original. Re-adding an identical pair is a no-op.
func (m *Mapping) Add(token, original string) error {
	if existing, ok := m.originals[token]; ok {
		if existing == original {
			return nil
		}
		return fmt.Errorf("token %s already maps to %s: %w", token, existing, prepdir.ErrInvalidState)
	}
	if existing, ok := m.reverse[original]; ok {
		return fmt.Errorf("%s already mapped to token %s: %w", original, existing, prepdir.ErrInvalidState)
	}
	m.tokens = append(m.tokens, token)
	m.originals[token] = original
	m.reverse[original] = token
	return nil
}

// Tokens returns the tokens in insertion order.
func (m *Mapping) Tokens() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.tokens))
	copy(out, m.tokens)
	return out
}

// ToMap returns a copy of the mapping as a plain map.
func (m *Mapping) ToMap() map[string]string {
	out := make(map[string]string, m.Len())
	if m == nil {
		return out
	}
	for tok, orig := range m.originals {
		out[tok] = orig
	}
	return out
}

// MarshalYAML writes the mapping as an ordered YAML mapping of quoted strings.
func (m *Mapping) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, tok := range m.Tokens() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: tok},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: m.originals[tok]},
		)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping written by MarshalYAML, keeping document order.
func (m *Mapping) UnmarshalYAML(value *yaml.Node) error {
	if m.originals == nil {
		*m = *NewMapping()
	}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: UUID mapping must be a YAML mapping: %w", value.Line, prepdir.ErrInvalidInput)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if key.Kind != yaml.ScalarNode || val.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: UUID mapping entries must be scalars: %w", key.Line, prepdir.ErrInvalidInput)
		}
		if err := m.Add(key.Value, val.Value); err != nil {
			return fmt.Errorf("line %d: %w", key.Line, err)
		}
	}
	return nil
}

// WriteMapping encodes m as YAML.
func WriteMapping(w io.Writer, m *Mapping) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to encode UUID mapping: %w", err)
	}
	return enc.Close()
}

// ReadMapping decodes a YAML mapping. An empty stream yields an empty mapping.
func ReadMapping(r io.Reader) (*Mapping, error) {
	m := NewMapping()
	if err := yaml.NewDecoder(r).Decode(m); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode UUID mapping: %w", err)
	}
	return m, nil
}
