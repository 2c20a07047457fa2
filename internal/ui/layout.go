package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

func DetermineLayoutMode(cols, rows int) LayoutMode {
	if cols < 60 || rows < 16 {
		return LayoutTooSmall
	}
	if cols >= 100 && rows >= 28 {
		return LayoutWide
	}
	return LayoutCompact
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	if i < 0 {
		i = n - 1
	}
	if i >= n {
		i = 0
	}
	return i
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// window returns the slice of lines of at most height that keeps focus
// visible, scrolling as little as possible.
func window(lines []string, focus, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := 0
	if focus >= height {
		start = focus - height + 1
	}
	if start+height > len(lines) {
		start = len(lines) - height
	}
	return lines[start : start+height]
}

func padRune(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(s, "\t", "    "))
	if len(r) > width {
		r = r[:width]
	}
	if len(r) < width {
		r = append(r, []rune(strings.Repeat(" ", width-len(r)))...)
	}
	return string(r)
}

// composeOverlayAt paints overlay over base with its top-left corner at
// (startRow, startCol). Both inputs are stripped of styling first.
func composeOverlayAt(base, overlay string, cols, rows, startRow, startCol int) string {
	if cols <= 0 || rows <= 0 {
		return base
	}
	base = ansi.Strip(base)
	overlay = ansi.Strip(overlay)
	baseLines := strings.Split(base, "\n")
	if len(baseLines) < rows {
		pad := make([]string, rows-len(baseLines))
		baseLines = append(baseLines, pad...)
	}
	for i := 0; i < rows; i++ {
		baseLines[i] = padRune(baseLines[i], cols)
	}

	overlayLines := strings.Split(strings.TrimRight(overlay, "\n"), "\n")
	ow := 1
	for _, line := range overlayLines {
		if lw := len([]rune(line)); lw > ow {
			ow = lw
		}
	}
	ow = min(ow, cols)
	startRow = max(0, startRow)
	startCol = max(0, startCol)

	for i, line := range overlayLines {
		row := startRow + i
		if row >= rows {
			break
		}
		dst := []rune(baseLines[row])
		src := []rune(line)
		if len(src) > ow {
			src = src[:ow]
		}
		for j := 0; j < ow && startCol+j < len(dst); j++ {
			dst[startCol+j] = ' '
		}
		for j := 0; j < len(src) && startCol+j < len(dst); j++ {
			dst[startCol+j] = src[j]
		}
		baseLines[row] = string(dst)
	}
	return strings.Join(baseLines[:rows], "\n")
}

// composeOverlay centers overlay on base, shifted up by lift rows.
func composeOverlay(base, overlay string, cols, rows, lift int) string {
	lines := strings.Split(strings.TrimRight(ansi.Strip(overlay), "\n"), "\n")
	ow := 0
	for _, line := range lines {
		ow = max(ow, len([]rune(line)))
	}
	oh := min(len(lines), rows)
	return composeOverlayAt(base, overlay, cols, rows, (rows-oh)/2-lift, (cols-min(ow, cols))/2)
}

func trimForWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.ReplaceAll(ansi.Strip(s), "\n", " "))
	if len(r) <= width {
		return string(r)
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
