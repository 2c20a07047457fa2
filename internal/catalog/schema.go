package catalog

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ProblemID is the stable key of a problem. Datasets and persisted blobs may
// carry ids as JSON numbers or strings; both decode to the same canonical text.
type ProblemID string

func (id ProblemID) String() string { return string(id) }

// Numeric reports whether the id is a canonical base-10 integer.
func (id ProblemID) Numeric() bool {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return false
	}
	return strconv.FormatInt(n, 10) == string(id)
}

func (id ProblemID) MarshalJSON() ([]byte, error) {
	if id.Numeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *ProblemID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("problem id: %w", err)
		}
		*id = ProblemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("problem id: %w", err)
	}
	*id = ProblemID(n.String())
	return nil
}

func (id *ProblemID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("problem id: expected scalar at line %d", node.Line)
	}
	*id = ProblemID(node.Value)
	return nil
}

// Problem is one entry of the static dataset.
type Problem struct {
	ID           ProblemID `json:"problem_id" yaml:"problem_id"`
	Title        string    `json:"problem_title" yaml:"problem_title"`
	Link         string    `json:"problem_link" yaml:"problem_link"`
	Platform     string    `json:"platform" yaml:"platform"`
	PatternIndex int       `json:"pattern_index" yaml:"pattern_index"`
}

// Dataset is the on-disk shape of a catalog file.
type Dataset struct {
	Patterns []string  `json:"patterns" yaml:"patterns"`
	Problems []Problem `json:"problems" yaml:"problems"`
}

func (d Dataset) Validate() error {
	for i, p := range d.Problems {
		if strings.TrimSpace(string(p.ID)) == "" {
			return fmt.Errorf("problems[%d]: problem_id is required", i)
		}
		if strings.TrimSpace(p.Title) == "" {
			return fmt.Errorf("problems[%d] (%s): problem_title is required", i, p.ID)
		}
	}
	return nil
}

// Catalog is the read-only dataset held for the process lifetime.
type Catalog struct {
	patterns []string
	problems []Problem

	unique []Problem
	byID   map[ProblemID]int
}

// New builds a catalog. Duplicate ids keep the position of their first
// occurrence and the contents of their last one.
func New(patterns []string, problems []Problem) *Catalog {
	c := &Catalog{
		patterns: append([]string(nil), patterns...),
		problems: append([]Problem(nil), problems...),
		byID:     make(map[ProblemID]int, len(problems)),
	}
	for _, p := range c.problems {
		if i, ok := c.byID[p.ID]; ok {
			c.unique[i] = p
			continue
		}
		c.byID[p.ID] = len(c.unique)
		c.unique = append(c.unique, p)
	}
	return c
}

// Patterns returns the ordered pattern names.
func (c *Catalog) Patterns() []string {
	return append([]string(nil), c.patterns...)
}

// Problems returns the raw problem list, duplicates included.
func (c *Catalog) Problems() []Problem {
	return append([]Problem(nil), c.problems...)
}

// Unique returns the problems deduplicated by id.
func (c *Catalog) Unique() []Problem {
	return append([]Problem(nil), c.unique...)
}

// Total is the number of distinct problem ids.
func (c *Catalog) Total() int {
	return len(c.unique)
}

func (c *Catalog) Lookup(id ProblemID) (Problem, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Problem{}, false
	}
	return c.unique[i], true
}

// PatternName returns the name for a pattern index, if it is in range.
func (c *Catalog) PatternName(index int) (string, bool) {
	if index < 0 || index >= len(c.patterns) {
		return "", false
	}
	return c.patterns[index], true
}
