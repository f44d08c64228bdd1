// Package generator builds random word drills for flash practice.
package generator

import (
	"math/rand"
	"strings"
	"time"
)

// Generator produces randomized drills from a word list.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a deterministic Generator.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Pick selects one word uniformly. It returns "" for an empty list.
func (g *Generator) Pick(words []string) string {
	if len(words) == 0 {
		return ""
	}
	return words[g.rnd.Intn(len(words))]
}

// Drill returns frames of perFrame words each. Words do not repeat within a
// frame while the list is long enough.
func (g *Generator) Drill(words []string, frames, perFrame int) [][]string {
	if len(words) == 0 || frames <= 0 {
		return nil
	}
	if perFrame <= 0 {
		perFrame = 1
	}
	out := make([][]string, 0, frames)
	for i := 0; i < frames; i++ {
		frame := make([]string, 0, perFrame)
		if perFrame <= len(words) {
			for _, idx := range g.rnd.Perm(len(words))[:perFrame] {
				frame = append(frame, words[idx])
			}
		} else {
			for j := 0; j < perFrame; j++ {
				frame = append(frame, g.Pick(words))
			}
		}
		out = append(out, frame)
	}
	return out
}

// Passage joins count random words into a practice text.
func (g *Generator) Passage(words []string, count int) string {
	picked := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if w := g.Pick(words); w != "" {
			picked = append(picked, w)
		}
	}
	return strings.Join(picked, " ")
}
