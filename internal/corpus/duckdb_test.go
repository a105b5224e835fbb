package corpus

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/brogergvhs/taoscrape/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDuckDB(t *testing.T) {
	c := New()
	tr := sampleTranslation("legge")
	tr.Chapters = []extract.Chapter{
		{Number: 1, Text: "The tao that can be told"},
		{Number: 2, Text: "When people see some things as beautiful"},
	}
	c.Add(tr)

	path := filepath.Join(t.TempDir(), "corpus.duckdb")
	require.NoError(t, c.WriteDuckDB(path))

	db, err := sql.Open("duckdb", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM chapters`).Scan(&count))
	assert.Equal(t, 2, count)

	var translator, text string
	var chapter, length int
	row := db.QueryRow(`SELECT translator, chapter, text, text_length FROM chapters ORDER BY chapter LIMIT 1`)
	require.NoError(t, row.Scan(&translator, &chapter, &text, &length))

	assert.Equal(t, "legge", translator)
	assert.Equal(t, 1, chapter)
	assert.Equal(t, "The tao that can be told", text)
	assert.Equal(t, len(text), length)
}

func TestWriteDuckDBOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.duckdb")

	c := New()
	c.Add(sampleTranslation("legge", 1, 2, 3))
	require.NoError(t, c.WriteDuckDB(path))

	smaller := New()
	smaller.Add(sampleTranslation("legge", 1))
	require.NoError(t, smaller.WriteDuckDB(path))

	db, err := sql.Open("duckdb", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM chapters`).Scan(&count))
	assert.Equal(t, 1, count)
}
