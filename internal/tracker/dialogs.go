package tracker

import "algoverse/internal/catalog"

type Page string

const (
	PageHome     Page = "home"
	PagePatterns Page = "patterns"
	PageSaved    Page = "saved"
)

// ParsePage maps a page name to a Page, falling back to home.
func ParsePage(raw string) Page {
	switch Page(raw) {
	case PagePatterns:
		return PagePatterns
	case PageSaved:
		return PageSaved
	default:
		return PageHome
	}
}

// SaveDialog is the save-to-set modal: closed, or open for one problem.
type SaveDialog struct {
	open    bool
	problem catalog.ProblemID
}

func (d SaveDialog) IsOpen() bool { return d.open }

// Problem is the id the dialog was opened for; ok is false while closed.
func (d SaveDialog) Problem() (catalog.ProblemID, bool) {
	return d.problem, d.open
}

func (d *SaveDialog) Open(id catalog.ProblemID) {
	d.open = true
	d.problem = id
}

func (d *SaveDialog) Close() {
	*d = SaveDialog{}
}

// Confirmation is a two-step destructive action: idle, or pending on a target.
type Confirmation struct {
	pending bool
	target  string
}

func (c Confirmation) IsPending() bool { return c.pending }

func (c Confirmation) Target() (string, bool) {
	return c.target, c.pending
}

// Request moves to pending(target), replacing any earlier target.
func (c *Confirmation) Request(target string) {
	c.pending = true
	c.target = target
}

func (c *Confirmation) Cancel() {
	*c = Confirmation{}
}

// Resolve returns the pending target and goes back to idle.
func (c *Confirmation) Resolve() (string, bool) {
	target, ok := c.target, c.pending
	*c = Confirmation{}
	return target, ok
}
