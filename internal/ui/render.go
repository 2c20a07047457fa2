package ui

import (
	"fmt"
	"math"
	"strings"

	"algoverse/internal/catalog"
	"algoverse/internal/progress"
	"algoverse/internal/state"
	"algoverse/internal/tracker"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
)

const welcomeMarkdown = `# Welcome to AlgoVerse

Your structured guide to mastering algorithmic patterns. Track your progress, create custom problem sets, and conquer the coding interview.
`

// patternRow addresses a line on the patterns page; problem is -1 for the
// pattern card itself.
type patternRow struct {
	pattern int
	problem int
}

type savedRow struct {
	set     int
	problem int
}

func (r *Root) patternRows() []patternRow {
	var rows []patternRow
	for i, p := range r.snap.Overview.Patterns {
		rows = append(rows, patternRow{pattern: i, problem: -1})
		if !r.expanded[p.Name] {
			continue
		}
		for j := range p.Problems {
			rows = append(rows, patternRow{pattern: i, problem: j})
		}
	}
	return rows
}

func (r *Root) patternProblem(row patternRow) catalog.Problem {
	return r.snap.Overview.Patterns[row.pattern].Problems[row.problem].Problem
}

func (r *Root) savedRows() []savedRow {
	var rows []savedRow
	for i, s := range r.snap.Sets {
		rows = append(rows, savedRow{set: i, problem: -1})
		for j := range s.Problems {
			rows = append(rows, savedRow{set: i, problem: j})
		}
	}
	return rows
}

func (r *Root) render() string {
	if r.layout == LayoutTooSmall {
		return r.theme.Fail.Render(trimForWidth(
			fmt.Sprintf("Terminal too small (%dx%d). Resize to at least 60x16.", r.cols, r.rows),
			max(1, r.cols-1),
		))
	}
	header := r.headerText()
	footer := r.footerText()
	bodyH := max(1, r.rows-lipgloss.Height(header)-lipgloss.Height(footer))

	lines, focus := r.pageLines()
	lines = window(lines, focus, bodyH)
	for len(lines) < bodyH {
		lines = append(lines, "")
	}
	base := header + "\n" + strings.Join(lines, "\n") + "\n" + footer

	if overlay := r.renderOverlay(); overlay != "" {
		lift := 0
		if !r.noMotion {
			lift = int(math.Round((1 - r.overlayPos) * 4))
		}
		base = composeOverlay(base, overlay, r.cols, r.rows, lift)
	}
	return base
}

func (r *Root) pageLines() ([]string, int) {
	switch r.snap.Page {
	case tracker.PagePatterns:
		return r.patternsLines()
	case tracker.PageSaved:
		return r.savedLines()
	default:
		return r.homeLines(), 0
	}
}

func (r *Root) headerText() string {
	tabs := []struct {
		page  tracker.Page
		label string
	}{
		{tracker.PageHome, "1 Home"},
		{tracker.PagePatterns, "2 Patterns"},
		{tracker.PageSaved, "3 Saved"},
	}
	left := r.theme.Header.Render("AlgoVerse")
	for _, tab := range tabs {
		if tab.page == r.snap.Page {
			left += r.theme.TabActive.Render(tab.label)
		} else {
			left += r.theme.TabIdle.Render(tab.label)
		}
	}
	label := string(r.theme.Name)
	if !r.ascii {
		if r.theme.Name == state.ThemeDark {
			label = "☾ " + label
		} else {
			label = "☀ " + label
		}
	}
	right := r.theme.Muted.Render(label + " ")
	gap := max(1, r.cols-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

func (r *Root) footerText() string {
	status := r.statusFlash
	if status == "" {
		ov := r.snap.Overview
		status = fmt.Sprintf("%d / %d solved", ov.Completed, ov.Total)
	}
	statusLine := r.theme.Status.Width(max(1, r.cols)).Render(trimForWidth(status, max(1, r.cols-2)))
	return statusLine + "\n" + r.help.View(r.helpKeys())
}

func (r *Root) helpKeys() pageKeys {
	k := r.keys
	switch {
	case r.topOverlay() == "confirm":
		return pageKeys{bindings: []key.Binding{
			key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "delete")),
			key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", "cancel")),
		}}
	case r.topOverlay() == "save":
		return pageKeys{bindings: []key.Binding{k.Up, k.Down, k.Select, k.Back}}
	case r.inputFocused:
		return pageKeys{bindings: []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "create")),
			k.Back,
		}}
	}
	switch r.snap.Page {
	case tracker.PagePatterns:
		return pageKeys{bindings: []key.Binding{k.Up, k.Down, k.Select, k.Complete, k.SaveTo, k.Copy, k.Theme, k.Quit}}
	case tracker.PageSaved:
		return pageKeys{bindings: []key.Binding{k.Focus, k.Up, k.Down, k.Remove, k.SaveTo, k.Copy, k.Theme, k.Quit}}
	default:
		return pageKeys{bindings: []key.Binding{k.Select, k.Patterns, k.Saved, k.Theme, k.Quit}}
	}
}

func (r *Root) homeLines() []string {
	md := r.renderMarkdown(welcomeMarkdown)
	lines := strings.Split(strings.TrimRight(md, "\n"), "\n")
	ov := r.snap.Overview
	if ov.Completed > 0 {
		lines = append(lines, "  "+fmt.Sprintf("You've completed %s of %d problems. Keep up the great work!",
			r.theme.Pass.Render(fmt.Sprint(ov.Completed)), ov.Total))
	}
	lines = append(lines, "", "  "+r.theme.TabActive.Render("Explore Patterns")+r.theme.Muted.Render("  press enter"))
	return lines
}

func (r *Root) renderMarkdown(md string) string {
	cacheKey := string(r.theme.Name) + "\x00" + md
	if out, ok := r.rendered[cacheKey]; ok {
		return out
	}
	renderer, ok := r.markdown[r.theme.Name]
	if !ok {
		var err error
		renderer, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(string(r.theme.Name)),
			glamour.WithWordWrap(78),
		)
		if err != nil {
			r.logger.Warn("ui.markdown_renderer_failed", "err", err)
			renderer = nil
		}
		r.markdown[r.theme.Name] = renderer
	}
	out := md
	if renderer != nil {
		if rendered, err := renderer.Render(md); err == nil {
			out = rendered
		}
	}
	r.rendered[cacheKey] = out
	return out
}

func (r *Root) patternsLines() ([]string, int) {
	lines := []string{"  " + r.theme.PanelTitle.Render("Algorithm Patterns"), ""}
	rows := r.patternRows()
	if len(rows) == 0 {
		return append(lines, "  "+r.theme.Muted.Render("The dataset has no patterns.")), 0
	}
	barW := 20
	nameW := 26
	if r.layout == LayoutCompact {
		barW = 12
		nameW = 20
	}
	focus := len(lines)
	for i, row := range rows {
		selected := i == r.patternCursor
		if selected {
			focus = len(lines)
		}
		p := r.snap.Overview.Patterns[row.pattern]
		if row.problem < 0 {
			arrow := "▸"
			switch {
			case r.ascii && r.expanded[p.Name]:
				arrow = "v"
			case r.ascii:
				arrow = ">"
			case r.expanded[p.Name]:
				arrow = "▾"
			}
			name := padRune(arrow+" "+p.Name, nameW)
			stats := padRune(fmt.Sprintf("%d / %d problems completed", p.Completed, p.Total), 28)
			line := r.theme.PanelTitle.Render(name) + " " + r.theme.Muted.Render(stats) + " " +
				r.barView(p.Percent, barW) + fmt.Sprintf(" %3d%%", p.Percent)
			lines = append(lines, r.gutter(selected)+line)
			continue
		}
		pr := p.Problems[row.problem]
		lines = append(lines, r.gutter(selected)+"  "+r.problemLine(pr.Problem, pr.Completed, pr.Saved, true))
	}
	return lines, focus
}

func (r *Root) savedLines() ([]string, int) {
	lines := []string{"  " + r.theme.PanelTitle.Render("My Problem Sets"), ""}
	if r.inputFocused {
		lines = append(lines, "  "+r.input.View())
	} else {
		lines = append(lines, "  "+r.theme.Muted.Render("press tab to create a new set"))
	}
	lines = append(lines, "")

	if len(r.snap.Sets) == 0 {
		lines = append(lines, "  "+r.theme.Muted.Render("You haven't created any problem sets yet. Use the form above to start!"))
		return lines, 0
	}
	completed := map[catalog.ProblemID]bool{}
	for _, p := range r.snap.Overview.Patterns {
		for _, row := range p.Problems {
			if row.Completed {
				completed[row.Problem.ID] = true
			}
		}
	}
	focus := 0
	i := 0
	for _, set := range r.snap.Sets {
		if i > 0 {
			lines = append(lines, "")
		}
		selected := i == r.savedCursor
		if selected {
			focus = len(lines)
		}
		i++
		lines = append(lines, r.gutter(selected)+r.setHeader(set)+r.theme.Muted.Render("   d delete set"))
		if len(set.Problems) == 0 {
			lines = append(lines, "    "+r.theme.Muted.Render("This set is empty. Save problems from the Patterns page."))
			continue
		}
		for _, p := range set.Problems {
			selected := i == r.savedCursor
			if selected {
				focus = len(lines)
			}
			i++
			lines = append(lines, r.gutter(selected)+"  "+r.problemLine(p, completed[p.ID], false, false))
		}
	}
	return lines, focus
}

func (r *Root) setHeader(set progress.SetView) string {
	mark := "■ "
	if r.ascii {
		mark = "# "
	}
	return r.theme.Accent.Render(fmt.Sprintf("%s%s (%d)", mark, set.Name, len(set.Problems)))
}

func (r *Root) problemLine(p catalog.Problem, done, saved, showSaved bool) string {
	check := "[ ]"
	if done {
		check = r.theme.Pass.Render("[x]")
	}
	titleW := 34
	if r.layout == LayoutCompact {
		titleW = 24
	}
	line := check + " " + padRune(p.ID.String()+".", 7) + padRune(p.Title, titleW) + " " + r.theme.Muted.Render(padRune(p.Platform, 10))
	if showSaved {
		mark := " "
		if saved {
			mark = "★"
			if r.ascii {
				mark = "*"
			}
		}
		line += " " + r.theme.Saved.Render(mark)
	}
	return line
}

func (r *Root) gutter(selected bool) string {
	if selected {
		return r.theme.Accent.Render("> ")
	}
	return "  "
}

func (r *Root) barView(percent, width int) string {
	m := r.bar
	m.SetWidth(max(4, width))
	return m.ViewAs(float64(percent) / 100)
}

func (r *Root) renderOverlay() string {
	width := min(60, max(20, r.cols-8))
	switch r.topOverlay() {
	case "confirm":
		return r.theme.Overlay.Width(width).Render(r.confirmText())
	case "save":
		return r.theme.Overlay.Width(width).Render(r.saveText())
	default:
		return ""
	}
}

func (r *Root) saveText() string {
	save := r.snap.Save
	title := save.Problem.Title
	if title == "" {
		title = "Problem " + save.ProblemID.String()
	}
	lines := []string{
		r.theme.OverlayTitle.Render("Save Problem"),
		fmt.Sprintf("%q", title),
		"",
		"Add / Remove from sets:",
	}
	if len(save.Memberships) == 0 {
		lines = append(lines, r.theme.Muted.Render("No problem sets created yet. Go to Saved to create one."))
	}
	for i, m := range save.Memberships {
		mark := ""
		if m.Member {
			mark = " ✓"
			if r.ascii {
				mark = " [x]"
			}
		}
		lines = append(lines, r.cursorMark(i == r.saveCursor)+m.Name+mark)
	}
	lines = append(lines, "", r.cursorMark(r.saveCursor == len(save.Memberships))+"[ Done ]")
	return strings.Join(lines, "\n")
}

func (r *Root) confirmText() string {
	cancel, del := "[ Cancel ]", "  Delete  "
	if r.confirmDelete {
		cancel, del = "  Cancel  ", "[ Delete ]"
	}
	return strings.Join([]string{
		r.theme.OverlayTitle.Render("Delete Problem Set"),
		"",
		fmt.Sprintf("Are you sure you want to delete the %q problem set? This action cannot be undone.", r.snap.Confirm.Target),
		"",
		cancel + "   " + r.theme.Fail.Render(del),
	}, "\n")
}

func (r *Root) cursorMark(selected bool) string {
	if selected {
		return "> "
	}
	return "  "
}
