// Package tracker owns the application state: the three persisted slots plus
// navigation and dialog state. Every mutation writes its slot back through the
// state store before returning.
//
// A Tracker is driven by one event at a time and is not safe for concurrent use.
package tracker

import (
	"context"
	"io"

	"algoverse/internal/catalog"
	"algoverse/internal/progress"
	"algoverse/internal/state"

	"github.com/charmbracelet/log"
)

type Tracker struct {
	store   *state.Store
	builder *progress.Builder
	logger  *log.Logger

	completed state.CompletedSet
	sets      state.ProblemSets
	theme     state.Theme

	page    Page
	save    SaveDialog
	confirm Confirmation

	overview *progress.Overview
}

// New loads every slot from store once. Missing or corrupt slots start from
// their defaults.
func New(ctx context.Context, store *state.Store, c *catalog.Catalog, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := &Tracker{
		store:     store,
		builder:   progress.NewBuilder(c),
		logger:    logger,
		completed: store.LoadCompleted(ctx),
		sets:      store.LoadProblemSets(ctx),
		theme:     store.LoadTheme(ctx),
		page:      PageHome,
	}
	t.logger.Debug("tracker.loaded",
		"completed", t.completed.Len(),
		"sets", t.sets.Len(),
		"theme", string(t.theme),
	)
	return t
}

func (t *Tracker) Catalog() *catalog.Catalog { return t.builder.Catalog() }

// ToggleComplete flips id in the completed set. Ids are not checked against
// the catalog. It reports whether id is now complete.
func (t *Tracker) ToggleComplete(ctx context.Context, id catalog.ProblemID) bool {
	done := t.completed.Toggle(id)
	t.overview = nil
	t.store.SaveCompleted(ctx, t.completed)
	t.logger.Debug("tracker.toggle_complete", "id", id.String(), "done", done)
	return done
}

// CreateSet adds an empty set. Empty and existing names are ignored.
func (t *Tracker) CreateSet(ctx context.Context, name string) bool {
	if !t.sets.Create(name) {
		return false
	}
	t.store.SaveProblemSets(ctx, t.sets)
	t.logger.Debug("tracker.create_set", "name", name)
	return true
}

// RequestDeleteSet arms the delete confirmation for name, replacing any
// pending target. Nothing is removed until ConfirmDeleteSet.
func (t *Tracker) RequestDeleteSet(name string) {
	t.confirm.Request(name)
}

func (t *Tracker) CancelDeleteSet() {
	t.confirm.Cancel()
}

// ConfirmDeleteSet removes the pending set and returns to idle. It returns the
// deleted name, or false when nothing was pending or the set is already gone.
func (t *Tracker) ConfirmDeleteSet(ctx context.Context) (string, bool) {
	name, ok := t.confirm.Resolve()
	if !ok || !t.sets.Delete(name) {
		return "", false
	}
	t.overview = nil
	t.store.SaveProblemSets(ctx, t.sets)
	t.logger.Debug("tracker.delete_set", "name", name)
	return name, true
}

// ToggleProblemInSet appends id to the named set, or removes it when present.
// ok is false when the set does not exist.
func (t *Tracker) ToggleProblemInSet(ctx context.Context, name string, id catalog.ProblemID) (added, ok bool) {
	added, ok = t.sets.Toggle(name, id)
	if !ok {
		return false, false
	}
	t.overview = nil
	t.store.SaveProblemSets(ctx, t.sets)
	t.logger.Debug("tracker.toggle_in_set", "set", name, "id", id.String(), "added", added)
	return added, true
}

func (t *Tracker) RemoveProblemFromSet(ctx context.Context, name string, id catalog.ProblemID) bool {
	if !t.sets.Remove(name, id) {
		return false
	}
	t.overview = nil
	t.store.SaveProblemSets(ctx, t.sets)
	t.logger.Debug("tracker.remove_from_set", "set", name, "id", id.String())
	return true
}

func (t *Tracker) ToggleTheme(ctx context.Context) state.Theme {
	t.theme = t.theme.Toggled()
	t.store.SaveTheme(ctx, t.theme)
	t.logger.Debug("tracker.toggle_theme", "theme", string(t.theme))
	return t.theme
}

func (t *Tracker) Navigate(page Page) {
	t.page = ParsePage(string(page))
}

func (t *Tracker) OpenSaveDialog(id catalog.ProblemID) {
	t.save.Open(id)
}

func (t *Tracker) CloseSaveDialog() {
	t.save.Close()
}

// ToggleInSaveDialog toggles the dialog's problem in the named set and leaves
// the dialog open. It does nothing while the dialog is closed.
func (t *Tracker) ToggleInSaveDialog(ctx context.Context, name string) (added, ok bool) {
	id, open := t.save.Problem()
	if !open {
		return false, false
	}
	return t.ToggleProblemInSet(ctx, name, id)
}
