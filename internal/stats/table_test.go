package stats

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"rsvp", "312", "1200"},
		{"chunking", "98", "40"},
	}

	lines := formatTable(columns([]string{"Method", "WPM", "Words"}, 1, 2), rows)
	require.Len(t, lines, 3)
	assert.Equal(t, "Method   WPM Words", lines[0])
	assert.Equal(t, "rsvp     312  1200", lines[1])
	assert.Equal(t, "chunking  98    40", lines[2])
}

func TestFormatTableUsesDisplayWidth(t *testing.T) {
	lines := formatTable(columns([]string{"Title", "N"}, 1), [][]string{{"走れメロス", "1"}, {"abc", "22"}})
	require.Len(t, lines, 3)
	assert.Equal(t, "Title       N", lines[0])
	assert.Equal(t, "走れメロス  1", lines[1])
	assert.Equal(t, "abc        22", lines[2])
}

func TestFormatTableShortRowsAndNoColumns(t *testing.T) {
	lines := formatTable(columns([]string{"A", "B"}), [][]string{{"x"}})
	assert.Equal(t, []string{"A B", "x"}, lines)
	assert.Nil(t, formatTable(nil, nil))
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, "Title", columns([]string{"K", "V"}, 1), [][]string{{"a", "1"}}))
	assert.Equal(t, "Title\nK V\na 1\n\n", buf.String())
}
