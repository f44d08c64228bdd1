// Package methods describes the reading methods the trainer offers.
package methods

import (
	"github.com/samber/lo"
)

// Mode selects how the trainer presents text.
type Mode string

const (
	// ModeWord flashes one word at a time at a fixed position.
	ModeWord Mode = "word"
	// ModeChunk flashes groups of words.
	ModeChunk Mode = "chunk"
	// ModeDrill flashes random words from a word list.
	ModeDrill Mode = "drill"
)

// Reference cites a source for a method.
type Reference struct {
	Text string
	URL  string
}

// Method is a catalog entry.
type Method struct {
	ID              string
	Name            string
	Description     string
	ScientificBasis string
	Features        []string
	Limitations     []string
	Recommendations []string
	References      []Reference
	Mode            Mode
	ChunkSize       int
}

// DefaultID is the method used when none is configured.
const DefaultID = "rsvp"

var catalog = []Method{
	{
		ID:              "rsvp",
		Name:            "RSVP",
		Description:     "Words appear one after another at a fixed position, minimizing eye movement.",
		ScientificBasis: "Reducing saccades can raise reading rate; comfortable display rates sit around 250-500 WPM.",
		Features: []string{
			"Single word at screen centre",
			"Adjustable rate",
		},
		Limitations: []string{
			"Working memory can overload at high rates, lowering comprehension",
			"No look-back limits use of surrounding context",
		},
		Recommendations: []string{
			"Keep the rate where comprehension stays at or above 80%",
			"Alternate with chunked display",
			"Check comprehension regularly",
		},
		References: []Reference{
			{Text: "WIRED: research on RSVP comprehension", URL: "https://wired.jp/2017/04/05/speed-reading/"},
		},
		Mode:      ModeWord,
		ChunkSize: 1,
	},
	{
		ID:              "chunking",
		Name:            "Chunking",
		Description:     "Read meaningful groups of words at once to keep comprehension while going faster.",
		ScientificBasis: "People process information in chunks; phrase-level units reduce per-word overhead.",
		Features: []string{
			"Phrase-sized display units",
			"Closer to natural reading",
		},
		References: []Reference{
			{Text: "Neural Speed Reading with Structural-Jump-LSTM", URL: "https://arxiv.org/abs/1904.00761"},
		},
		Mode:      ModeChunk,
		ChunkSize: 3,
	},
	{
		ID:              "skimming",
		Name:            "Skimming",
		Description:     "Extract key information quickly from large amounts of text.",
		ScientificBasis: "Reviews of speed-reading research find skimming to be one of the few effective techniques.",
		Features: []string{
			"Wide display units",
			"Structure before detail",
		},
		References: []Reference{
			{Text: "J-STAGE: Is speed reading beneficial?", URL: "https://www.jstage.jst.go.jp/article/sor/56/3-4/56_113/_article/-char/ja/"},
		},
		Mode:      ModeChunk,
		ChunkSize: 5,
	},
	{
		ID:              "park-sasaki",
		Name:            "Park-Sasaki method",
		Description:     "A trained method combining relaxation and visual exercises.",
		ScientificBasis: "Joint university studies report trained readers understanding fiction at very high rates.",
		Features: []string{
			"Breathing and relaxation warm-up",
			"Systematic visual training",
		},
		Mode:      ModeChunk,
		ChunkSize: 4,
	},
	{
		ID:              "speed-conversion",
		Name:            "Speed conversion",
		Description:     "Raise the rate step by step so faster reading feels natural.",
		ScientificBasis: "Stepwise rate training reportedly raised student reading volume by about 1.3x.",
		Features: []string{
			"Gradual rate increase",
			"Rate follows comprehension",
		},
		Mode:      ModeWord,
		ChunkSize: 1,
	},
	{
		ID:              "flying-words",
		Name:            "Flying words",
		Description:     "Single words flash from a word list to train attention and reaction speed.",
		ScientificBasis: "Visual stimulus drills may improve attention and reaction speed.",
		Features: []string{
			"Random words from a word list",
			"Adjustable rate",
		},
		Mode:      ModeDrill,
		ChunkSize: 1,
	},
	{
		ID:              "joint-method",
		Name:            "Joint method",
		Description:     "Instant recognition and parallel processing drills.",
		ScientificBasis: "Reported studies claim gains in information processing speed.",
		Features: []string{
			"Flash recognition",
			"Several words shown at once",
		},
		Limitations: []string{
			"Published papers for the cited studies could not be located",
		},
		Mode:      ModeDrill,
		ChunkSize: 3,
	},
	{
		ID:              "activeread",
		Name:            "ActiveRead",
		Description:     "An image-oriented method focused on grasping the whole page.",
		ScientificBasis: "Based on a marketing survey rather than academic study.",
		Features: []string{
			"Whole-view visual grasp",
		},
		Limitations: []string{
			"No academic validation",
		},
		Mode:      ModeChunk,
		ChunkSize: 6,
	},
	{
		ID:              "sp-method",
		Name:            "SP method",
		Description:     "Visual field expansion exercises.",
		ScientificBasis: "A reported collaboration found benefits for visual field width in older adults.",
		Features: []string{
			"Visual field expansion",
		},
		Limitations: []string{
			"Published papers for the cited study could not be located",
		},
		Mode:      ModeChunk,
		ChunkSize: 4,
	},
}

// All returns the method catalog in display order.
func All() []Method {
	return append([]Method(nil), catalog...)
}

// IDs lists every method id.
func IDs() []string {
	return lo.Map(catalog, func(m Method, _ int) string {
		return m.ID
	})
}

// ByID looks up a method.
func ByID(id string) (Method, bool) {
	return lo.Find(catalog, func(m Method) bool {
		return m.ID == id
	})
}
