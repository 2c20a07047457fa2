// Package progress derives read-only views from the static catalog and the
// user's persisted state. Nothing here mutates its inputs.
package progress

import (
	"math"
	"slices"

	"algoverse/internal/catalog"
	"algoverse/internal/state"
)

type PatternGroup struct {
	Name     string
	Problems []catalog.Problem
}

type ProblemRow struct {
	Problem   catalog.Problem
	Completed bool
	Saved     bool
}

type PatternProgress struct {
	Name      string
	Problems  []ProblemRow
	Completed int
	Total     int
	Percent   int
}

// Overview is everything the home and patterns pages show.
type Overview struct {
	Patterns  []PatternProgress
	Completed int
	Total     int
}

// Clone copies the pattern and problem-row slices so the result shares no
// memory with o.
func (o Overview) Clone() Overview {
	out := o
	out.Patterns = make([]PatternProgress, len(o.Patterns))
	for i, p := range o.Patterns {
		p.Problems = slices.Clone(p.Problems)
		out.Patterns[i] = p
	}
	return out
}

// SetView is a problem set with its ids resolved against the catalog.
type SetView struct {
	Name     string
	Problems []catalog.Problem
}

type Membership struct {
	Name   string
	Member bool
}

// Builder caches the pattern grouping, which only depends on the catalog.
type Builder struct {
	catalog *catalog.Catalog
	groups  []PatternGroup
}

func NewBuilder(c *catalog.Catalog) *Builder {
	return &Builder{catalog: c, groups: GroupByPattern(c)}
}

func (b *Builder) Catalog() *catalog.Catalog { return b.catalog }

func (b *Builder) Groups() []PatternGroup { return b.groups }

// GroupByPattern maps each pattern name to the problems whose index points at
// it, in dataset order. A name listed twice keeps its first position and the
// problems of its last index.
func GroupByPattern(c *catalog.Catalog) []PatternGroup {
	patterns := c.Patterns()
	problems := c.Problems()
	groups := make([]PatternGroup, 0, len(patterns))
	pos := make(map[string]int, len(patterns))
	for i, name := range patterns {
		members := make([]catalog.Problem, 0)
		for _, p := range problems {
			if p.PatternIndex == i {
				members = append(members, p)
			}
		}
		if j, ok := pos[name]; ok {
			groups[j].Problems = members
			continue
		}
		pos[name] = len(groups)
		groups = append(groups, PatternGroup{Name: name, Problems: members})
	}
	return groups
}

// Percent is round(100*completed/total), with an empty group at 0.
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

func (b *Builder) Overview(completed state.CompletedSet, sets state.ProblemSets) Overview {
	out := Overview{
		Patterns:  make([]PatternProgress, 0, len(b.groups)),
		Completed: completed.Len(),
		Total:     b.catalog.Total(),
	}
	for _, g := range b.groups {
		pp := PatternProgress{
			Name:     g.Name,
			Problems: make([]ProblemRow, 0, len(g.Problems)),
			Total:    len(g.Problems),
		}
		for _, p := range g.Problems {
			done := completed.Has(p.ID)
			if done {
				pp.Completed++
			}
			pp.Problems = append(pp.Problems, ProblemRow{
				Problem:   p,
				Completed: done,
				Saved:     sets.ContainsAnywhere(p.ID),
			})
		}
		pp.Percent = Percent(pp.Completed, pp.Total)
		out.Patterns = append(out.Patterns, pp)
	}
	return out
}

// Sets resolves every set in creation order. Ids missing from the catalog are
// skipped.
func (b *Builder) Sets(sets state.ProblemSets) []SetView {
	names := sets.Names()
	out := make([]SetView, 0, len(names))
	for _, name := range names {
		ids, _ := sets.IDs(name)
		view := SetView{Name: name, Problems: make([]catalog.Problem, 0, len(ids))}
		for _, id := range ids {
			if p, ok := b.catalog.Lookup(id); ok {
				view.Problems = append(view.Problems, p)
			}
		}
		out = append(out, view)
	}
	return out
}

// Memberships lists every set with whether it holds id.
func Memberships(sets state.ProblemSets, id catalog.ProblemID) []Membership {
	names := sets.Names()
	out := make([]Membership, 0, len(names))
	for _, name := range names {
		out = append(out, Membership{Name: name, Member: sets.Contains(name, id)})
	}
	return out
}
