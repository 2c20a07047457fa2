package ui

import (
	"algoverse/internal/catalog"
	"algoverse/internal/tracker"
)

// Controller receives user intents. Calls are synchronous and made from
// Update; the view re-reads Snapshot after each one.
type Controller interface {
	Snapshot() tracker.Snapshot
	OnNavigate(page tracker.Page)
	OnToggleComplete(id catalog.ProblemID)
	// OnCreateSet reports whether a new set was created.
	OnCreateSet(name string) bool
	OnRequestDeleteSet(name string)
	OnConfirmDeleteSet()
	OnCancelDeleteSet()
	OnRemoveFromSet(name string, id catalog.ProblemID)
	OnOpenSaveDialog(id catalog.ProblemID)
	OnCloseSaveDialog()
	OnToggleInSaveDialog(name string)
	OnToggleTheme()
	OnCopyLink(link string) error
}

type View interface {
	Run() error
	Stop()
	SetController(Controller)
	FlashStatus(msg string)
}

type LayoutMode int

const (
	LayoutWide LayoutMode = iota
	LayoutCompact
	LayoutTooSmall
)
