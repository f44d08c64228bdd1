// Package text loads reading material and splits it into display units.
package text

import (
	"strings"
)

// DefaultChunkSize is the number of words per chunk when none is given.
const DefaultChunkSize = 3

var punctuation = strings.NewReplacer(
	"。", " ", "、", " ", "，", " ", "．", " ",
	"「", " ", "」", " ", "『", " ", "』", " ",
	"（", " ", "）", " ", "【", " ", "】", " ",
	"［", " ", "］", " ", "｛", " ", "｝", " ",
	"〈", " ", "〉", " ", "《", " ", "》", " ",
)

// SplitWords strips Japanese brackets and punctuation, then splits on
// whitespace. Empty tokens are dropped.
func SplitWords(s string) []string {
	return strings.Fields(punctuation.Replace(s))
}

// SplitChunks groups consecutive words into chunks of size words joined by a
// single space. The final chunk may be shorter.
func SplitChunks(s string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	words := SplitWords(s)
	chunks := make([]string, 0, (len(words)+size-1)/size)
	for i := 0; i < len(words); i += size {
		end := min(i+size, len(words))
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}
