package text

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

// Kind says where a source's text comes from.
type Kind string

const (
	KindLocal  Kind = "local"
	KindURL    Kind = "url"
	KindAozora Kind = "aozora"
	KindCustom Kind = "custom"
	KindPaper  Kind = "paper"
)

// Source describes a text that can be loaded for practice. Location is a
// file name, a URL or, for custom sources, the text itself.
type Source struct {
	ID          string
	Name        string
	Kind        Kind
	Location    string
	Description string
}

// Content is a loaded text split for display.
type Content struct {
	ID     string
	Title  string
	Author string
	Text   string
	Words  []string
	Chunks []string
}

var catalog = []Source{
	{
		ID:          "sample-1",
		Name:        "Sample text 1",
		Kind:        KindLocal,
		Location:    "sample1.txt",
		Description: "A short warm-up passage",
	},
	{
		ID:          "sample-2",
		Name:        "Sample text 2",
		Kind:        KindLocal,
		Location:    "sample2.txt",
		Description: "A medium-length passage",
	},
	{
		ID:          "aozora-1",
		Name:        "Run, Melos! (Osamu Dazai)",
		Kind:        KindAozora,
		Location:    "https://www.aozora.gr.jp/cards/000035/files/1567_14913.html",
		Description: "Short story from Aozora Bunko",
	},
	{
		ID:          "aozora-2",
		Name:        "Kokoro (Natsume Soseki)",
		Kind:        KindAozora,
		Location:    "https://www.aozora.gr.jp/cards/000148/files/773_14560.html",
		Description: "Novel from Aozora Bunko",
	},
}

// Catalog returns the built-in sources.
func Catalog() []Source {
	out := make([]Source, len(catalog))
	copy(out, catalog)
	return out
}

// Find looks up a built-in source or paper by id.
func Find(id string) (Source, bool) {
	if src, ok := lo.Find(catalog, func(s Source) bool {
		return s.ID == id
	}); ok {
		return src, true
	}
	if p, ok := FindPaper(id); ok {
		return p.Source(), true
	}
	return Source{}, false
}

// Custom wraps inline text as a source.
func Custom(name, body string) Source {
	return Source{
		ID:       fmt.Sprintf("custom-%d", time.Now().UnixMilli()),
		Name:     name,
		Kind:     KindCustom,
		Location: body,
	}
}
