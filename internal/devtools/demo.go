// Package devtools seeds a tracker into fixed states for screenshots and
// manual checks of the TUI.
package devtools

import (
	"context"

	"algoverse/internal/catalog"
	"algoverse/internal/progress"
	"algoverse/internal/state"
	"algoverse/internal/tracker"
)

type Scenario struct {
	Name string
	Page tracker.Page
	Dark bool

	// SolvedPerPattern marks the first n problems of every pattern solved.
	SolvedPerPattern int
	Sets             []string
	// SavedPerSet puts the first n unsolved problems into every set.
	SavedPerSet int

	SaveDialog    bool
	ConfirmDelete bool
}

type Manager struct{}

func NewManager() *Manager { return &Manager{} }

func (m *Manager) Names() []string {
	return []string{"fresh", "progress", "patterns", "saved", "save_dialog", "confirm_delete", "dark"}
}

func (m *Manager) Resolve(name string) Scenario {
	sets := []string{"Favorites", "Revisit"}
	switch name {
	case "fresh":
		return Scenario{Name: name, Page: tracker.PageHome}
	case "progress":
		return Scenario{Name: name, Page: tracker.PageHome, SolvedPerPattern: 2}
	case "patterns":
		return Scenario{Name: name, Page: tracker.PagePatterns, SolvedPerPattern: 2, Sets: sets, SavedPerSet: 1}
	case "saved":
		return Scenario{Name: name, Page: tracker.PageSaved, SolvedPerPattern: 1, Sets: sets, SavedPerSet: 3}
	case "save_dialog":
		return Scenario{Name: name, Page: tracker.PagePatterns, Sets: sets, SavedPerSet: 1, SaveDialog: true}
	case "confirm_delete":
		return Scenario{Name: name, Page: tracker.PageSaved, Sets: sets, SavedPerSet: 2, ConfirmDelete: true}
	case "dark":
		return Scenario{Name: name, Page: tracker.PagePatterns, Dark: true, SolvedPerPattern: 3, Sets: sets, SavedPerSet: 2}
	default:
		return Scenario{Name: "fresh", Page: tracker.PageHome}
	}
}

// Apply drives t through its public mutations, so the result persists like
// any other session.
func (m *Manager) Apply(ctx context.Context, t *tracker.Tracker, s Scenario) {
	groups := progress.GroupByPattern(t.Catalog())

	var solved, open []catalog.ProblemID
	seen := make(map[catalog.ProblemID]bool)
	for _, g := range groups {
		for i, p := range g.Problems {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			if i < s.SolvedPerPattern {
				solved = append(solved, p.ID)
			} else {
				open = append(open, p.ID)
			}
		}
	}

	completed := t.Completed()
	for _, id := range solved {
		if !completed.Has(id) {
			t.ToggleComplete(ctx, id)
		}
	}

	for _, name := range s.Sets {
		t.CreateSet(ctx, name)
		sets := t.ProblemSets()
		for _, id := range firstN(open, s.SavedPerSet) {
			if !sets.Contains(name, id) {
				t.ToggleProblemInSet(ctx, name, id)
			}
		}
	}

	if (t.Theme() == state.ThemeDark) != s.Dark {
		t.ToggleTheme(ctx)
	}

	t.Navigate(s.Page)
	if s.SaveDialog && len(open) > 0 {
		t.OpenSaveDialog(open[0])
	}
	if s.ConfirmDelete && len(s.Sets) > 0 {
		t.RequestDeleteSet(s.Sets[0])
	}
}

func firstN(ids []catalog.ProblemID, n int) []catalog.ProblemID {
	return ids[:min(n, len(ids))]
}
