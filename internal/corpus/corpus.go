// Package corpus accumulates extraction results into one dataset and
// writes the flat (label, chapter, text) table the analysis notebook
// loads. The corpus is an explicit value passed through the pipeline;
// there is no global accumulator.
package corpus

import (
	"sort"
	"time"

	"github.com/brogergvhs/taoscrape/internal/extract"
)

type Translation struct {
	Label     string            `json:"translation_name"`
	URL       string            `json:"url"`
	ScrapedAt time.Time         `json:"timestamp"`
	Chapters  []extract.Chapter `json:"chapters"`
	Warnings  []string          `json:"warnings,omitempty"`
}

// InferredCount reports how many chapters were numbered by running
// sequence instead of a parsed boundary number.
func (t Translation) InferredCount() int {
	n := 0
	for _, ch := range t.Chapters {
		if ch.Inferred {
			n++
		}
	}
	return n
}

type Corpus struct {
	Translations []Translation `json:"translations"`
}

func New() *Corpus {
	return &Corpus{}
}

// Add appends a translation, replacing any existing entry with the same
// label. Manual additions merged after scraping win over scraped ones.
func (c *Corpus) Add(t Translation) {
	for i, existing := range c.Translations {
		if existing.Label == t.Label {
			c.Translations[i] = t
			return
		}
	}

	c.Translations = append(c.Translations, t)
}

func (c *Corpus) Len() int {
	return len(c.Translations)
}

// Row is one line of the flat output table.
type Row struct {
	Label      string
	Chapter    int
	Text       string
	Normalized string
	URL        string
	ScrapedAt  time.Time
}

// Rows flattens the corpus, sorted by (label, chapter).
func (c *Corpus) Rows() []Row {
	var rows []Row
	for _, t := range c.Translations {
		for _, ch := range t.Chapters {
			rows = append(rows, Row{
				Label:      t.Label,
				Chapter:    ch.Number,
				Text:       ch.Text,
				Normalized: Normalize(ch.Text),
				URL:        t.URL,
				ScrapedAt:  t.ScrapedAt,
			})
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Label != rows[j].Label {
			return rows[i].Label < rows[j].Label
		}
		return rows[i].Chapter < rows[j].Chapter
	})

	return rows
}
