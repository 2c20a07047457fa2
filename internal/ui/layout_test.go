package ui

import (
	"strings"
	"testing"
)

func TestDetermineLayoutMode(t *testing.T) {
	if got := DetermineLayoutMode(140, 30); got != LayoutWide {
		t.Fatalf("expected wide, got %v", got)
	}
	if got := DetermineLayoutMode(80, 24); got != LayoutCompact {
		t.Fatalf("expected compact, got %v", got)
	}
	if got := DetermineLayoutMode(50, 30); got != LayoutTooSmall {
		t.Fatalf("expected too-small, got %v", got)
	}
	if got := DetermineLayoutMode(100, 10); got != LayoutTooSmall {
		t.Fatalf("expected too-small by height, got %v", got)
	}
}

func TestWindowKeepsFocusVisible(t *testing.T) {
	lines := []string{"0", "1", "2", "3", "4", "5"}
	if got := window(lines, 0, 3); strings.Join(got, "") != "012" {
		t.Fatalf("unexpected window at top: %v", got)
	}
	if got := window(lines, 4, 3); strings.Join(got, "") != "234" {
		t.Fatalf("unexpected window around focus: %v", got)
	}
	if got := window(lines, 5, 10); len(got) != 6 {
		t.Fatalf("expected all lines when they fit, got %v", got)
	}
}

func TestComposeOverlayCenters(t *testing.T) {
	base := strings.Repeat("..........\n", 5)
	out := composeOverlay(base, "ab\ncd", 10, 5, 0)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(lines))
	}
	if lines[1] != "....ab...." || lines[2] != "....cd...." {
		t.Fatalf("overlay not centered: %q", out)
	}
}

func TestTrimForWidth(t *testing.T) {
	if got := trimForWidth("hello world", 5); got != "hell…" {
		t.Fatalf("unexpected trim: %q", got)
	}
	if got := trimForWidth("hi", 5); got != "hi" {
		t.Fatalf("unexpected trim: %q", got)
	}
	if got := trimForWidth("x", 0); got != "" {
		t.Fatalf("expected empty for zero width, got %q", got)
	}
}

func TestWrapAndClampIndex(t *testing.T) {
	if wrapIndex(-1, 3) != 2 || wrapIndex(3, 3) != 0 || wrapIndex(1, 0) != 0 {
		t.Fatalf("wrapIndex misbehaves")
	}
	if clampIndex(5, 3) != 2 || clampIndex(-1, 3) != 0 || clampIndex(1, 0) != 0 {
		t.Fatalf("clampIndex misbehaves")
	}
}
