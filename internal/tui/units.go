package tui

import (
	"strings"

	"github.com/samber/lo"

	"github.com/verte-zerg/readpace/internal/generator"
	"github.com/verte-zerg/readpace/internal/methods"
	"github.com/verte-zerg/readpace/internal/text"
)

// DrillFrames is the number of frames generated for a word-list drill.
const DrillFrames = 120

// Units splits material into display units for the method's mode. Drill
// modes draw frames of chunk random words from drillWords.
func Units(mode methods.Mode, chunk int, content text.Content, drillWords []string, gen *generator.Generator) []string {
	switch mode {
	case methods.ModeChunk:
		return text.SplitChunks(content.Text, chunk)
	case methods.ModeDrill:
		if gen == nil {
			gen = generator.New()
		}
		return lo.Map(gen.Drill(drillWords, DrillFrames, chunk), func(frame []string, _ int) string {
			return strings.Join(frame, "   ")
		})
	default:
		return content.Words
	}
}

func wordCount(unit string) int {
	return max(1, len(strings.Fields(unit)))
}
