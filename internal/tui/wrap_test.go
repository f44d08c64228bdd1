package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestPivotIndex(t *testing.T) {
	cases := map[int]int{1: 0, 2: 1, 5: 1, 6: 2, 9: 2, 10: 3, 13: 3, 14: 4, 30: 4}
	for n, want := range cases {
		if got := pivotIndex(n); got != want {
			t.Fatalf("pivotIndex(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestBuildStyledRunesPivot(t *testing.T) {
	runes := buildStyledRunes("speed")
	if len(runes) != 5 {
		t.Fatalf("expected 5 runes, got %d", len(runes))
	}
	if runes[1].s != pivotStyle.Render("p") {
		t.Fatalf("expected pivot style on second rune")
	}
	if runes[0].s != wordStyle.Render("s") {
		t.Fatalf("expected word style on first rune")
	}
}

func TestBuildStyledRunesChunkHasNoPivot(t *testing.T) {
	unit := []rune("to be")
	runes := buildStyledRunes(string(unit))
	for i, r := range runes {
		if r.s != wordStyle.Render(string(unit[i])) {
			t.Fatalf("expected word style at %d", i)
		}
	}
	if !runes[2].isSpace {
		t.Fatalf("expected space flag")
	}
}

func TestBuildStyledRunesWideRunes(t *testing.T) {
	runes := buildStyledRunes("速読")
	if runes[0].width != 2 || runes[1].width != 2 {
		t.Fatalf("expected double-width runes")
	}
}

func TestPivotPad(t *testing.T) {
	if got := pivotPad("a", 4); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
	if got := pivotPad("reading", 4); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := pivotPad("two words", 4); got != 0 {
		t.Fatalf("expected no pad for chunks, got %d", got)
	}
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	out := ansi.Strip(wrapStyledRunes(buildStyledRunes("one two three"), 8))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 || lines[0] != "one two" || lines[1] != "three" {
		t.Fatalf("unexpected wrap: %q", lines)
	}
}

func TestWrapStyledRunesHardBreak(t *testing.T) {
	out := ansi.Strip(wrapStyledRunes(buildStyledRunes("abcdef"), 4))
	if out != "abcd\nef" {
		t.Fatalf("unexpected wrap: %q", out)
	}
}
