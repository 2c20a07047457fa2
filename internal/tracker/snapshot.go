package tracker

import (
	"algoverse/internal/catalog"
	"algoverse/internal/progress"
	"algoverse/internal/state"
)

// Snapshot is a read-only copy of the tracker state for presentation code.
type Snapshot struct {
	Page     Page
	Theme    state.Theme
	Overview progress.Overview
	Sets     []progress.SetView
	SetNames []string
	Save     SaveState
	Confirm  ConfirmState
}

type SaveState struct {
	Open bool
	// Problem is zero when the dialog's id is not in the catalog.
	Problem     catalog.Problem
	ProblemID   catalog.ProblemID
	Memberships []progress.Membership
}

type ConfirmState struct {
	Pending bool
	Target  string
}

func (t *Tracker) Snapshot() Snapshot {
	if t.overview == nil {
		ov := t.builder.Overview(t.completed, t.sets)
		t.overview = &ov
	}
	snap := Snapshot{
		Page:     t.page,
		Theme:    t.theme,
		Overview: t.overview.Clone(),
		Sets:     t.builder.Sets(t.sets),
		SetNames: t.sets.Names(),
	}
	if id, open := t.save.Problem(); open {
		p, _ := t.Catalog().Lookup(id)
		snap.Save = SaveState{
			Open:        true,
			Problem:     p,
			ProblemID:   id,
			Memberships: progress.Memberships(t.sets, id),
		}
	}
	if target, pending := t.confirm.Target(); pending {
		snap.Confirm = ConfirmState{Pending: true, Target: target}
	}
	return snap
}

// Completed returns a copy of the completed set.
func (t *Tracker) Completed() state.CompletedSet { return t.completed.Clone() }

// ProblemSets returns a copy of the problem sets.
func (t *Tracker) ProblemSets() state.ProblemSets { return t.sets.Clone() }

func (t *Tracker) Theme() state.Theme { return t.theme }
