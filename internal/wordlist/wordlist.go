// Package wordlist loads word lists for flash drills.
package wordlist

import (
	"bufio"
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

//go:embed data/*.csv
var bundled embed.FS

// List describes a bundled word list. File is looked up in the user's word
// list directory first.
type List struct {
	ID   string
	Name string
	File string
}

var catalog = []List{
	{ID: "general", Name: "General vocabulary", File: "words.csv"},
	{ID: "law", Name: "Legal vocabulary", File: "words-law.csv"},
}

// DefaultID is the list used when none is configured.
const DefaultID = "general"

// Catalog returns the bundled word lists.
func Catalog() []List {
	return append([]List(nil), catalog...)
}

// Find looks up a word list by id.
func Find(id string) (List, bool) {
	return lo.Find(catalog, func(l List) bool {
		return l.ID == id
	})
}

// Load reads the list with the given id, preferring an override in dir.
func Load(id, dir string) ([]string, error) {
	list, ok := Find(id)
	if !ok {
		return nil, fmt.Errorf("word list not found: %s", id)
	}
	if dir != "" {
		path := filepath.Join(dir, list.File)
		if _, err := os.Stat(path); err == nil {
			return LoadCSV(path)
		}
	}
	f, err := bundled.Open("data/" + list.File)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list %s: %w", id, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close for embedded file.
			_ = cerr
		}
	}()
	return parseCSV(f)
}

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	words = Filter(words)
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// LoadCSV reads the first column of a CSV file, skipping the header row.
func LoadCSV(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return parseCSV(file)
}

func parseCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var words []string
	header := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse word list: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(record) > 0 {
			words = append(words, record[0])
		}
	}
	words = Filter(words)
	if len(words) == 0 {
		return nil, fmt.Errorf("no words loaded")
	}
	return words, nil
}

// trimmed trims entries and drops blanks.
func trimmed(words []string) []string {
	return lo.FilterMap(words, func(w string, _ int) (string, bool) {
		w = strings.TrimSpace(w)
		return w, w != ""
	})
}
