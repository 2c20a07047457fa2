package state

import (
	"bytes"
	stdjson "encoding/json"
	"fmt"
	"slices"

	"algoverse/internal/catalog"

	"github.com/goccy/go-json"
)

// CompletedSet holds the ids marked done. Order is insertion order so the
// persisted array is stable; an id is never held twice.
type CompletedSet struct {
	ids []catalog.ProblemID
}

func NewCompletedSet(ids ...catalog.ProblemID) CompletedSet {
	var s CompletedSet
	for _, id := range ids {
		if !s.Has(id) {
			s.ids = append(s.ids, id)
		}
	}
	return s
}

func (s CompletedSet) Has(id catalog.ProblemID) bool {
	return slices.Contains(s.ids, id)
}

func (s CompletedSet) Len() int { return len(s.ids) }

func (s CompletedSet) IDs() []catalog.ProblemID {
	return slices.Clone(s.ids)
}

// Toggle adds id when absent and removes it when present. It reports whether
// the id is now in the set.
func (s *CompletedSet) Toggle(id catalog.ProblemID) bool {
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

func (s CompletedSet) Clone() CompletedSet {
	return CompletedSet{ids: slices.Clone(s.ids)}
}

func (s CompletedSet) MarshalJSON() ([]byte, error) {
	if s.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.ids)
}

func (s *CompletedSet) UnmarshalJSON(b []byte) error {
	var ids []catalog.ProblemID
	if err := json.Unmarshal(b, &ids); err != nil {
		return fmt.Errorf("completed problems: %w", err)
	}
	*s = NewCompletedSet(ids...)
	return nil
}

// ProblemSets maps set names to ordered id sequences. Names keep creation
// order, which is also the key order of the persisted object.
type ProblemSets struct {
	names []string
	ids   map[string][]catalog.ProblemID
}

func NewProblemSets() ProblemSets {
	return ProblemSets{ids: map[string][]catalog.ProblemID{}}
}

func (p ProblemSets) Names() []string { return slices.Clone(p.names) }

func (p ProblemSets) Len() int { return len(p.names) }

func (p ProblemSets) Has(name string) bool {
	_, ok := p.ids[name]
	return ok
}

// IDs returns a copy of the named set's sequence.
func (p ProblemSets) IDs(name string) ([]catalog.ProblemID, bool) {
	ids, ok := p.ids[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(ids), true
}

func (p ProblemSets) Contains(name string, id catalog.ProblemID) bool {
	return slices.Contains(p.ids[name], id)
}

// ContainsAnywhere reports whether any set references id.
func (p ProblemSets) ContainsAnywhere(id catalog.ProblemID) bool {
	for _, name := range p.names {
		if slices.Contains(p.ids[name], id) {
			return true
		}
	}
	return false
}

// Create inserts an empty set. Empty or existing names are left alone.
func (p *ProblemSets) Create(name string) bool {
	if name == "" || p.Has(name) {
		return false
	}
	if p.ids == nil {
		p.ids = map[string][]catalog.ProblemID{}
	}
	p.names = append(p.names, name)
	p.ids[name] = []catalog.ProblemID{}
	return true
}

func (p *ProblemSets) Delete(name string) bool {
	if !p.Has(name) {
		return false
	}
	delete(p.ids, name)
	p.names = slices.DeleteFunc(p.names, func(n string) bool { return n == name })
	return true
}

// Toggle removes every occurrence of id from the named set when present and
// appends it otherwise. ok is false when the set does not exist.
func (p *ProblemSets) Toggle(name string, id catalog.ProblemID) (added, ok bool) {
	ids, ok := p.ids[name]
	if !ok {
		return false, false
	}
	if slices.Contains(ids, id) {
		p.ids[name] = without(ids, id)
		return false, true
	}
	p.ids[name] = append(slices.Clone(ids), id)
	return true, true
}

// Remove drops every occurrence of id from the named set.
func (p *ProblemSets) Remove(name string, id catalog.ProblemID) bool {
	ids, ok := p.ids[name]
	if !ok || !slices.Contains(ids, id) {
		return false
	}
	p.ids[name] = without(ids, id)
	return true
}

func (p ProblemSets) Clone() ProblemSets {
	out := ProblemSets{names: slices.Clone(p.names), ids: make(map[string][]catalog.ProblemID, len(p.ids))}
	for k, v := range p.ids {
		out.ids[k] = slices.Clone(v)
	}
	return out
}

func (p ProblemSets) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range p.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		ids := p.ids[name]
		if ids == nil {
			ids = []catalog.ProblemID{}
		}
		v, err := json.Marshal(ids)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p *ProblemSets) UnmarshalJSON(b []byte) error {
	dec := stdjson.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("problem sets: %w", err)
	}
	out := NewProblemSets()
	if tok == nil {
		*p = out
		return nil
	}
	if d, ok := tok.(stdjson.Delim); !ok || d != '{' {
		return fmt.Errorf("problem sets: expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("problem sets: %w", err)
		}
		name, _ := tok.(string)
		var ids []catalog.ProblemID
		if err := dec.Decode(&ids); err != nil {
			return fmt.Errorf("problem sets[%q]: %w", name, err)
		}
		if ids == nil {
			ids = []catalog.ProblemID{}
		}
		if !out.Has(name) {
			out.names = append(out.names, name)
		}
		out.ids[name] = ids
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("problem sets: %w", err)
	}
	*p = out
	return nil
}

func without(ids []catalog.ProblemID, id catalog.ProblemID) []catalog.ProblemID {
	out := make([]catalog.ProblemID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggled returns the other theme. Anything that is not dark flips to dark.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
