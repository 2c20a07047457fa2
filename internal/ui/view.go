package ui

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"algoverse/internal/catalog"
	"algoverse/internal/state"
	"algoverse/internal/tracker"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/progress"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	clog "github.com/charmbracelet/log"
)

type animateMsg time.Time

type Options struct {
	ASCIIOnly bool
	NoMotion  bool
	Logger    *clog.Logger
}

type Root struct {
	theme    Theme
	ascii    bool
	noMotion bool
	ctrl     Controller
	logger   *clog.Logger

	mu      sync.Mutex
	program *tea.Program
	running bool

	layout LayoutMode
	cols   int
	rows   int
	snap   tracker.Snapshot

	patternCursor int
	expanded      map[string]bool
	savedCursor   int
	inputFocused  bool
	input         textinput.Model
	saveCursor    int
	confirmDelete bool
	statusFlash   string

	help       help.Model
	keys       keyMap
	bar        progress.Model
	markdown   map[state.Theme]*glamour.TermRenderer
	rendered   map[string]string
	overlay    string
	overlayPos float64
	overlayVel float64
	spring     harmonica.Spring

	lastInputEvent string
}

func New(opts Options) *Root {
	logger := opts.Logger
	if logger == nil {
		logger = clog.New(io.Discard)
	}

	input := textinput.New()
	input.Placeholder = "e.g. Dynamic Programming Practice"
	input.Prompt = "New set: "
	input.CharLimit = 64

	r := &Root{
		theme:    ThemeFor(state.ThemeLight),
		ascii:    opts.ASCIIOnly,
		noMotion: opts.NoMotion,
		logger:   logger,
		layout:   LayoutWide,
		cols:     100,
		rows:     30,
		expanded: map[string]bool{},
		input:    input,
		help:     help.New(),
		keys:     defaultKeyMap(),
		markdown: map[state.Theme]*glamour.TermRenderer{},
		rendered: map[string]string{},
		spring:   harmonica.NewSpring(harmonica.FPS(60), 10.0, 0.8),
	}
	r.applyTheme(state.ThemeLight)
	return r
}

func (r *Root) Init() tea.Cmd {
	return nil
}

func (r *Root) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("update", rec, msg)
			model = r
			cmd = nil
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.cols = msg.Width
		r.rows = msg.Height
		r.layout = DetermineLayoutMode(r.cols, r.rows)
		r.input.SetWidth(max(10, r.cols-24))
		return r, nil
	case animateMsg:
		r.overlayPos, r.overlayVel = r.spring.Update(r.overlayPos, r.overlayVel, 1)
		if r.shouldAnimate() {
			return r, animateTickCmd()
		}
		r.overlayPos, r.overlayVel = 1, 0
		return r, nil
	case tea.KeyPressMsg:
		return r.handleKey(msg)
	}
	if r.inputFocused {
		var cmd tea.Cmd
		r.input, cmd = r.input.Update(msg)
		return r, cmd
	}
	return r, nil
}

func (r *Root) View() (view tea.View) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("view", rec, nil)
			width := max(1, r.cols)
			view = tea.NewView(r.theme.Fail.Render(trimForWidth("UI recovered from a rendering panic. Check logs.", width-1)))
		}
	}()
	v := tea.NewView(r.render())
	v.AltScreen = true
	return v
}

func (r *Root) Run() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	p := tea.NewProgram(r)
	r.program = p
	r.running = true
	r.mu.Unlock()

	_, err := p.Run()

	r.mu.Lock()
	r.program = nil
	r.running = false
	r.mu.Unlock()
	return err
}

func (r *Root) Stop() {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

// SetController attaches c and pulls its first snapshot.
func (r *Root) SetController(c Controller) {
	r.ctrl = c
	r.refresh()
}

func (r *Root) FlashStatus(msg string) {
	r.statusFlash = msg
}

// do runs one controller call and re-reads the snapshot.
func (r *Root) do(fn func(Controller)) tea.Cmd {
	if r.ctrl == nil {
		return nil
	}
	fn(r.ctrl)
	r.refresh()
	return r.animateIfNeeded()
}

func (r *Root) refresh() {
	if r.ctrl == nil {
		return
	}
	r.snap = r.ctrl.Snapshot()
	if r.snap.Theme != r.theme.Name {
		r.applyTheme(r.snap.Theme)
	}
	r.patternCursor = clampIndex(r.patternCursor, len(r.patternRows()))
	r.savedCursor = clampIndex(r.savedCursor, len(r.savedRows()))

	top := r.topOverlay()
	if top != r.overlay {
		r.overlay = top
		r.saveCursor = 0
		r.confirmDelete = false
		r.overlayPos, r.overlayVel = 0, 0
		if r.noMotion {
			r.overlayPos = 1
		}
	}
	if top == "save" {
		r.saveCursor = clampIndex(r.saveCursor, len(r.snap.Save.Memberships)+1)
	}
}

func (r *Root) applyTheme(t state.Theme) {
	r.theme = ThemeFor(t)
	if t == state.ThemeDark {
		r.help.Styles = help.DefaultDarkStyles()
	} else {
		r.help.Styles = help.DefaultLightStyles()
	}
	r.bar = progress.New(
		progress.WithWidth(20),
		progress.WithColors(r.theme.BarColors...),
		progress.WithScaled(true),
		progress.WithoutPercentage(),
	)
	if r.ascii {
		r.bar.Full = '#'
		r.bar.Empty = '-'
	}
}

func (r *Root) topOverlay() string {
	switch {
	case r.snap.Confirm.Pending:
		return "confirm"
	case r.snap.Save.Open:
		return "save"
	default:
		return ""
	}
}

func (r *Root) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	r.recordInputEvent(fmt.Sprintf("key:%v mod:%v text:%q", msg.Code, msg.Mod, msg.Text))

	if msg.Code == 'c' && msg.Mod&tea.ModCtrl != 0 {
		return r, tea.Quit
	}
	switch r.topOverlay() {
	case "confirm":
		return r.handleConfirmKey(msg)
	case "save":
		return r.handleSaveKey(msg)
	}
	if r.inputFocused {
		return r.handleInputKey(msg)
	}

	r.statusFlash = ""
	switch {
	case key.Matches(msg, r.keys.Quit):
		return r, tea.Quit
	case key.Matches(msg, r.keys.Home):
		return r, r.do(func(c Controller) { c.OnNavigate(tracker.PageHome) })
	case key.Matches(msg, r.keys.Patterns):
		return r, r.do(func(c Controller) { c.OnNavigate(tracker.PagePatterns) })
	case key.Matches(msg, r.keys.Saved):
		return r, r.do(func(c Controller) { c.OnNavigate(tracker.PageSaved) })
	case key.Matches(msg, r.keys.Theme):
		return r, r.do(func(c Controller) { c.OnToggleTheme() })
	}

	switch r.snap.Page {
	case tracker.PagePatterns:
		return r.handlePatternsKey(msg)
	case tracker.PageSaved:
		return r.handleSavedKey(msg)
	default:
		return r.handleHomeKey(msg)
	}
}

func (r *Root) handleHomeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, r.keys.Select) {
		return r, r.do(func(c Controller) { c.OnNavigate(tracker.PagePatterns) })
	}
	return r, nil
}

func (r *Root) handlePatternsKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	rows := r.patternRows()
	if len(rows) == 0 {
		return r, nil
	}
	row := rows[clampIndex(r.patternCursor, len(rows))]
	switch {
	case key.Matches(msg, r.keys.Up):
		r.patternCursor = wrapIndex(r.patternCursor-1, len(rows))
	case key.Matches(msg, r.keys.Down):
		r.patternCursor = wrapIndex(r.patternCursor+1, len(rows))
	case key.Matches(msg, r.keys.Back):
		return r, r.do(func(c Controller) { c.OnNavigate(tracker.PageHome) })
	case key.Matches(msg, r.keys.Select):
		if row.problem < 0 {
			name := r.snap.Overview.Patterns[row.pattern].Name
			r.expanded[name] = !r.expanded[name]
			return r, nil
		}
		return r, r.toggleComplete(r.patternProblem(row).ID)
	case key.Matches(msg, r.keys.Complete):
		if row.problem >= 0 {
			return r, r.toggleComplete(r.patternProblem(row).ID)
		}
	case key.Matches(msg, r.keys.SaveTo):
		if row.problem >= 0 {
			id := r.patternProblem(row).ID
			return r, r.do(func(c Controller) { c.OnOpenSaveDialog(id) })
		}
	case key.Matches(msg, r.keys.Copy):
		if row.problem >= 0 {
			return r, r.copyLink(r.patternProblem(row).Link)
		}
	}
	return r, nil
}

func (r *Root) handleSavedKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, r.keys.Focus) {
		r.inputFocused = true
		return r, r.input.Focus()
	}
	if key.Matches(msg, r.keys.Back) {
		return r, r.do(func(c Controller) { c.OnNavigate(tracker.PageHome) })
	}
	rows := r.savedRows()
	if len(rows) == 0 {
		return r, nil
	}
	row := rows[clampIndex(r.savedCursor, len(rows))]
	set := r.snap.Sets[row.set]
	switch {
	case key.Matches(msg, r.keys.Up):
		r.savedCursor = wrapIndex(r.savedCursor-1, len(rows))
	case key.Matches(msg, r.keys.Down):
		r.savedCursor = wrapIndex(r.savedCursor+1, len(rows))
	case key.Matches(msg, r.keys.Remove):
		if row.problem < 0 {
			return r, r.do(func(c Controller) { c.OnRequestDeleteSet(set.Name) })
		}
		id := set.Problems[row.problem].ID
		return r, r.do(func(c Controller) { c.OnRemoveFromSet(set.Name, id) })
	case key.Matches(msg, r.keys.Select), key.Matches(msg, r.keys.Complete):
		if row.problem >= 0 {
			return r, r.toggleComplete(set.Problems[row.problem].ID)
		}
	case key.Matches(msg, r.keys.SaveTo):
		if row.problem >= 0 {
			id := set.Problems[row.problem].ID
			return r, r.do(func(c Controller) { c.OnOpenSaveDialog(id) })
		}
	case key.Matches(msg, r.keys.Copy):
		if row.problem >= 0 {
			return r, r.copyLink(set.Problems[row.problem].Link)
		}
	}
	return r, nil
}

func (r *Root) handleInputKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.Code {
	case tea.KeyEnter:
		name := r.input.Value()
		return r, r.do(func(c Controller) {
			// Keep the text when nothing was created so it can be edited.
			if c.OnCreateSet(name) {
				r.input.Reset()
			}
		})
	case tea.KeyEsc, tea.KeyTab:
		r.inputFocused = false
		r.input.Blur()
		return r, nil
	}
	var cmd tea.Cmd
	r.input, cmd = r.input.Update(msg)
	return r, cmd
}

func (r *Root) handleSaveKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	items := r.snap.Save.Memberships
	n := len(items) + 1
	switch {
	case key.Matches(msg, r.keys.Back), key.Matches(msg, r.keys.Quit):
		return r, r.do(func(c Controller) { c.OnCloseSaveDialog() })
	case key.Matches(msg, r.keys.Up):
		r.saveCursor = wrapIndex(r.saveCursor-1, n)
	case key.Matches(msg, r.keys.Down), msg.Code == tea.KeyTab:
		r.saveCursor = wrapIndex(r.saveCursor+1, n)
	case key.Matches(msg, r.keys.Select):
		if r.saveCursor < len(items) {
			name := items[r.saveCursor].Name
			return r, r.do(func(c Controller) { c.OnToggleInSaveDialog(name) })
		}
		return r, r.do(func(c Controller) { c.OnCloseSaveDialog() })
	}
	return r, nil
}

func (r *Root) handleConfirmKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Code == tea.KeyEsc, msg.Code == 'n', msg.Code == 'N':
		return r, r.do(func(c Controller) { c.OnCancelDeleteSet() })
	case msg.Code == 'y', msg.Code == 'Y':
		return r, r.do(func(c Controller) { c.OnConfirmDeleteSet() })
	case msg.Code == tea.KeyLeft, msg.Code == tea.KeyRight, msg.Code == tea.KeyTab, msg.Code == 'h', msg.Code == 'l':
		r.confirmDelete = !r.confirmDelete
	case msg.Code == tea.KeyEnter:
		if r.confirmDelete {
			return r, r.do(func(c Controller) { c.OnConfirmDeleteSet() })
		}
		return r, r.do(func(c Controller) { c.OnCancelDeleteSet() })
	}
	return r, nil
}

func (r *Root) toggleComplete(id catalog.ProblemID) tea.Cmd {
	return r.do(func(c Controller) { c.OnToggleComplete(id) })
}

// copyLink tries the system clipboard first and falls back to the terminal's
// OSC 52 clipboard.
func (r *Root) copyLink(link string) tea.Cmd {
	if link == "" {
		r.statusFlash = "No link for this problem"
		return nil
	}
	if r.ctrl != nil {
		if err := r.ctrl.OnCopyLink(link); err == nil {
			r.statusFlash = "Copied " + link
			return nil
		}
	}
	r.statusFlash = "Copied " + link + " (terminal clipboard)"
	return tea.SetClipboard(link)
}

func (r *Root) animateIfNeeded() tea.Cmd {
	if r.shouldAnimate() {
		return animateTickCmd()
	}
	return nil
}

func (r *Root) shouldAnimate() bool {
	if r.noMotion || r.overlay == "" {
		return false
	}
	return r.overlayPos < 0.999 || abs(r.overlayVel) > 0.001
}

func animateTickCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return animateMsg(t) })
}

func (r *Root) recordInputEvent(event string) {
	r.lastInputEvent = trimForWidth(strings.TrimSpace(event), 160)
}

func (r *Root) onModelPanic(where string, recovered any, msg tea.Msg) {
	if r.statusFlash == "" {
		r.statusFlash = "Recovered UI panic"
	}
	msgType := ""
	if msg != nil {
		msgType = fmt.Sprintf("%T", msg)
	}
	r.logger.Error("ui.panic_recovered",
		"where", where,
		"panic", fmt.Sprintf("%v", recovered),
		"message_type", msgType,
		"page", string(r.snap.Page),
		"overlay", r.topOverlay(),
		"cols", r.cols,
		"rows", r.rows,
		"last_input", r.lastInputEvent,
		"stack", string(debug.Stack()),
	)
}

var _ tea.Model = (*Root)(nil)
var _ View = (*Root)(nil)
