package tracker

import (
	"context"
	"testing"

	"algoverse/internal/catalog"
	"algoverse/internal/kv"
	"algoverse/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]string{"Two Pointers", "DP"}, []catalog.Problem{
		{ID: "1", Title: "Two Sum", Link: "https://example.com/1", PatternIndex: 0},
		{ID: "2", Title: "Three Sum", Link: "https://example.com/2", PatternIndex: 0},
		{ID: "3", Title: "Climbing Stairs", Link: "https://example.com/3", PatternIndex: 1},
	})
}

func newTracker(t *testing.T, store kv.Store) *Tracker {
	t.Helper()
	return New(context.Background(), state.New(store, nil), testCatalog(), nil)
}

func TestToggleCompleteUpdatesOverviewAndPersists(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	tr := newTracker(t, mem)

	assert.True(t, tr.ToggleComplete(ctx, "1"))
	snap := tr.Snapshot()
	assert.Equal(t, 1, snap.Overview.Completed)
	assert.Equal(t, 3, snap.Overview.Total)
	assert.Equal(t, 50, snap.Overview.Patterns[0].Percent)

	raw, err := mem.Get(ctx, state.KeyCompleted)
	require.NoError(t, err)
	assert.JSONEq(t, `[1]`, raw)

	assert.False(t, tr.ToggleComplete(ctx, "1"))
	assert.Equal(t, 0, tr.Snapshot().Overview.Completed)
	raw, err = mem.Get(ctx, state.KeyCompleted)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, raw)
}

func TestToggleCompleteAcceptsUnknownIDs(t *testing.T) {
	tr := newTracker(t, kv.NewMemory())
	tr.ToggleComplete(context.Background(), "999")
	assert.Equal(t, 1, tr.Snapshot().Overview.Completed)
	assert.True(t, tr.Completed().Has("999"))
}

func TestFavoritesToggleTwiceLeavesEmptySet(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	tr := newTracker(t, mem)

	require.True(t, tr.CreateSet(ctx, "Favorites"))
	added, ok := tr.ToggleProblemInSet(ctx, "Favorites", "2")
	require.True(t, ok)
	assert.True(t, added)
	assert.True(t, tr.Snapshot().Overview.Patterns[0].Problems[1].Saved)

	added, ok = tr.ToggleProblemInSet(ctx, "Favorites", "2")
	require.True(t, ok)
	assert.False(t, added)

	raw, err := mem.Get(ctx, state.KeyProblemSets)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Favorites":[]}`, raw)
	assert.False(t, tr.Snapshot().Overview.Patterns[0].Problems[1].Saved)
}

func TestCreateSetIsIdempotent(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(t, kv.NewMemory())

	require.True(t, tr.CreateSet(ctx, "Favorites"))
	tr.ToggleProblemInSet(ctx, "Favorites", "1")
	assert.False(t, tr.CreateSet(ctx, "Favorites"))
	assert.False(t, tr.CreateSet(ctx, ""))

	ids, ok := tr.ProblemSets().IDs("Favorites")
	require.True(t, ok)
	assert.Equal(t, []catalog.ProblemID{"1"}, ids)
	assert.Equal(t, []string{"Favorites"}, tr.Snapshot().SetNames)
}

func TestToggleInUnknownSetIsNoop(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	tr := newTracker(t, mem)

	_, ok := tr.ToggleProblemInSet(ctx, "missing", "1")
	assert.False(t, ok)
	assert.False(t, tr.RemoveProblemFromSet(ctx, "missing", "1"))

	_, err := mem.Get(ctx, state.KeyProblemSets)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestDeleteSetRequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(t, kv.NewMemory())
	tr.CreateSet(ctx, "A")
	tr.CreateSet(ctx, "B")

	tr.RequestDeleteSet("A")
	snap := tr.Snapshot()
	assert.True(t, snap.Confirm.Pending)
	assert.Equal(t, "A", snap.Confirm.Target)
	assert.Equal(t, []string{"A", "B"}, snap.SetNames)

	tr.CancelDeleteSet()
	assert.False(t, tr.Snapshot().Confirm.Pending)
	assert.Equal(t, []string{"A", "B"}, tr.Snapshot().SetNames)

	_, ok := tr.ConfirmDeleteSet(ctx)
	assert.False(t, ok, "confirm while idle does nothing")

	tr.RequestDeleteSet("A")
	tr.RequestDeleteSet("B")
	name, ok := tr.ConfirmDeleteSet(ctx)
	require.True(t, ok)
	assert.Equal(t, "B", name)
	assert.Equal(t, []string{"A"}, tr.Snapshot().SetNames)
	assert.False(t, tr.Snapshot().Confirm.Pending)
}

func TestConfirmDeleteOfVanishedSet(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(t, kv.NewMemory())
	tr.RequestDeleteSet("ghost")
	_, ok := tr.ConfirmDeleteSet(ctx)
	assert.False(t, ok)
	assert.False(t, tr.Snapshot().Confirm.Pending)
}

func TestRemoveProblemFromSet(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(t, kv.NewMemory())
	tr.CreateSet(ctx, "S")
	tr.ToggleProblemInSet(ctx, "S", "1")
	tr.ToggleProblemInSet(ctx, "S", "3")

	assert.True(t, tr.RemoveProblemFromSet(ctx, "S", "1"))
	views := tr.Snapshot().Sets
	require.Len(t, views, 1)
	require.Len(t, views[0].Problems, 1)
	assert.Equal(t, "Climbing Stairs", views[0].Problems[0].Title)
}

func TestSaveDialogTogglesMembershipAndStaysOpen(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(t, kv.NewMemory())
	tr.CreateSet(ctx, "A")
	tr.CreateSet(ctx, "B")

	_, ok := tr.ToggleInSaveDialog(ctx, "A")
	assert.False(t, ok, "closed dialog ignores toggles")

	tr.OpenSaveDialog("3")
	added, ok := tr.ToggleInSaveDialog(ctx, "B")
	require.True(t, ok)
	assert.True(t, added)

	snap := tr.Snapshot()
	require.True(t, snap.Save.Open)
	assert.Equal(t, "Climbing Stairs", snap.Save.Problem.Title)
	assert.Equal(t, catalog.ProblemID("3"), snap.Save.ProblemID)
	assert.Equal(t, []string{"A", "B"}, []string{snap.Save.Memberships[0].Name, snap.Save.Memberships[1].Name})
	assert.False(t, snap.Save.Memberships[0].Member)
	assert.True(t, snap.Save.Memberships[1].Member)

	tr.CloseSaveDialog()
	assert.False(t, tr.Snapshot().Save.Open)
	assert.True(t, tr.ProblemSets().Contains("B", "3"))
}

func TestNavigateFallsBackToHome(t *testing.T) {
	tr := newTracker(t, kv.NewMemory())
	assert.Equal(t, PageHome, tr.Snapshot().Page)
	tr.Navigate(PageSaved)
	assert.Equal(t, PageSaved, tr.Snapshot().Page)
	tr.Navigate(Page("settings"))
	assert.Equal(t, PageHome, tr.Snapshot().Page)
}

func TestThemeSurvivesReload(t *testing.T) {
	ctx := context.Background()
	opts := kv.Options{Backend: kv.BackendSQLite, Dir: t.TempDir()}

	store, err := kv.Open(ctx, opts)
	require.NoError(t, err)
	tr := newTracker(t, store)
	assert.Equal(t, state.ThemeLight, tr.Theme())
	assert.Equal(t, state.ThemeDark, tr.ToggleTheme(ctx))
	require.NoError(t, store.Close())

	reopened, err := kv.Open(ctx, opts)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, state.ThemeDark, newTracker(t, reopened).Snapshot().Theme)
}

func TestSnapshotIsDetached(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(t, kv.NewMemory())
	tr.CreateSet(ctx, "S")
	snap := tr.Snapshot()
	snap.SetNames[0] = "changed"
	assert.Equal(t, []string{"S"}, tr.Snapshot().SetNames)
}

func TestSnapshotOverviewIsDetached(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(t, kv.NewMemory())
	tr.ToggleComplete(ctx, "1")

	snap := tr.Snapshot()
	snap.Overview.Patterns[0].Completed = 99
	snap.Overview.Patterns[0].Problems[0].Completed = false
	snap.Overview.Patterns = nil

	again := tr.Snapshot()
	require.Len(t, again.Overview.Patterns, 2)
	assert.Equal(t, 1, again.Overview.Patterns[0].Completed)
	assert.True(t, again.Overview.Patterns[0].Problems[0].Completed)
}
