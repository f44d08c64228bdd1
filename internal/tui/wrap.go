package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// pivotIndex returns the rune the eye should fixate on, slightly left of
// the word's centre.
func pivotIndex(n int) int {
	switch {
	case n <= 1:
		return 0
	case n <= 5:
		return 1
	case n <= 9:
		return 2
	case n <= 13:
		return 3
	default:
		return 4
	}
}

// buildStyledRunes styles a display unit. Single words get a highlighted
// fixation rune; multi-word units render plainly.
func buildStyledRunes(unit string) []styledRune {
	runes := []rune(unit)
	pivot := -1
	if len(runes) > 0 && !strings.ContainsRune(unit, ' ') {
		pivot = pivotIndex(len(runes))
	}
	out := make([]styledRune, 0, len(runes))
	for i, r := range runes {
		style := wordStyle
		if i == pivot {
			style = pivotStyle
		}
		out = append(out, styledRune{
			s:       style.Render(string(r)),
			width:   runewidth.RuneWidth(r),
			isSpace: r == ' ',
		})
	}
	return out
}

// pivotPad returns the spaces needed before a single word so its fixation
// rune lands on column. Multi-word units are not padded.
func pivotPad(unit string, column int) int {
	if unit == "" || strings.ContainsRune(unit, ' ') {
		return 0
	}
	runes := []rune(unit)
	lead := runewidth.StringWidth(string(runes[:pivotIndex(len(runes))]))
	if lead >= column {
		return 0
	}
	return column - lead
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks runes into lines no wider than width, preferring
// the last space on a line. The space at a break is dropped; words longer
// than width are split.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var lines []string
	start, used, lastSpace := 0, 0, -1
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if used+r.width > width && i > start {
			end, next := i, i
			if lastSpace >= start {
				end, next = lastSpace, lastSpace+1
			}
			lines = append(lines, renderStyledRunes(runes[start:end]))
			start, used, lastSpace = next, 0, -1
			i = next - 1
			continue
		}
		used += r.width
		if r.isSpace {
			lastSpace = i
		}
	}
	lines = append(lines, renderStyledRunes(runes[start:]))
	return strings.Join(lines, "\n")
}
