package corpus

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brogergvhs/taoscrape/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	c := New()
	tr := sampleTranslation("legge")
	tr.Chapters = []extract.Chapter{
		{Number: 1, Text: "text with, a comma"},
		{Number: 2, Text: "plain text"},
	}
	c.Add(tr)

	path := filepath.Join(t.TempDir(), "corpus.csv")
	require.NoError(t, c.WriteCSV(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"label", "chapter", "text"}, records[0])
	assert.Equal(t, []string{"legge", "1", "text with, a comma"}, records[1])
	assert.Equal(t, []string{"legge", "2", "plain text"}, records[2])
}

func TestWriteJSON(t *testing.T) {
	c := New()
	c.Add(sampleTranslation("legge", 1, 2))

	path := filepath.Join(t.TempDir(), "corpus.json")
	require.NoError(t, c.WriteJSON(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Corpus
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Translations, 1)
	assert.Equal(t, "legge", decoded.Translations[0].Label)
	assert.Len(t, decoded.Translations[0].Chapters, 2)
}

func TestWritersLeaveNoTempFiles(t *testing.T) {
	c := New()
	c.Add(sampleTranslation("legge", 1))

	dir := t.TempDir()
	require.NoError(t, c.WriteCSV(filepath.Join(dir, "corpus.csv")))
	require.NoError(t, c.WriteJSON(filepath.Join(dir, "corpus.json")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "temp file left behind: %s", e.Name())
	}
}
