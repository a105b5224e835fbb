package corpus

import (
	"testing"
	"time"

	"github.com/brogergvhs/taoscrape/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTranslation(label string, chapters ...int) Translation {
	t := Translation{
		Label:     label,
		URL:       "https://terebess.hu/english/tao/" + label + ".html",
		ScrapedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, n := range chapters {
		t.Chapters = append(t.Chapters, extract.Chapter{Number: n, Text: "chapter text"})
	}
	return t
}

func TestAddReplacesByLabel(t *testing.T) {
	c := New()
	c.Add(sampleTranslation("legge", 1, 2))
	c.Add(sampleTranslation("mitchell", 1))
	require.Equal(t, 2, c.Len())

	replacement := sampleTranslation("legge", 1, 2, 3)
	c.Add(replacement)

	require.Equal(t, 2, c.Len())
	assert.Len(t, c.Translations[0].Chapters, 3, "same-label add must replace, not append")
}

func TestRowsSortedByLabelThenChapter(t *testing.T) {
	c := New()
	c.Add(sampleTranslation("mitchell", 2, 1))
	c.Add(sampleTranslation("legge", 1))

	rows := c.Rows()
	require.Len(t, rows, 3)

	assert.Equal(t, "legge", rows[0].Label)
	assert.Equal(t, "mitchell", rows[1].Label)
	assert.Equal(t, 1, rows[1].Chapter)
	assert.Equal(t, 2, rows[2].Chapter)
}

func TestRowsCarryNormalizedText(t *testing.T) {
	c := New()
	tr := sampleTranslation("legge")
	tr.Chapters = []extract.Chapter{{Number: 1, Text: "The Tao, that CAN be told!"}}
	c.Add(tr)

	rows := c.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "the tao that can be told", rows[0].Normalized)
}

func TestInferredCount(t *testing.T) {
	tr := Translation{Chapters: []extract.Chapter{
		{Number: 1},
		{Number: 2, Inferred: true},
		{Number: 3, Inferred: true},
	}}
	assert.Equal(t, 2, tr.InferredCount())
}
