package session

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/readpace/internal/model"
)

// Change is a validated mutation of an active session.
type Change func(*model.TrainingSession) error

// AddWords advances the words-read counter by n.
func AddWords(n int) Change {
	return func(s *model.TrainingSession) error {
		if n < 0 {
			return fmt.Errorf("%w: words delta %d is negative", ErrInvalidUpdate, n)
		}
		s.WordsRead += n
		return nil
	}
}

// SetWordsRead sets the words-read counter. The counter never decreases.
func SetWordsRead(n int) Change {
	return func(s *model.TrainingSession) error {
		if n < s.WordsRead {
			return fmt.Errorf("%w: words read %d below current %d", ErrInvalidUpdate, n, s.WordsRead)
		}
		s.WordsRead = n
		return nil
	}
}

// SetAverageWPM sets the running average speed.
func SetAverageWPM(wpm float64) Change {
	return func(s *model.TrainingSession) error {
		if wpm < 0 {
			return fmt.Errorf("%w: wpm %.2f is negative", ErrInvalidUpdate, wpm)
		}
		s.AverageWPM = wpm
		return nil
	}
}

// SetAverageComprehension sets the running comprehension percentage (0-100).
func SetAverageComprehension(pct float64) Change {
	return func(s *model.TrainingSession) error {
		if pct < 0 || pct > 100 {
			return fmt.Errorf("%w: comprehension %.2f outside 0-100", ErrInvalidUpdate, pct)
		}
		s.AverageComprehension = pct
		return nil
	}
}

// SetWordList records the word list used by the session.
func SetWordList(id string) Change {
	return func(s *model.TrainingSession) error {
		s.WordListID = strings.TrimSpace(id)
		return nil
	}
}

// SetSetting stores one settings entry.
func SetSetting(key string, value any) Change {
	return func(s *model.TrainingSession) error {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("%w: empty setting key", ErrInvalidUpdate)
		}
		if s.Settings == nil {
			s.Settings = map[string]any{}
		}
		s.Settings[key] = value
		return nil
	}
}
