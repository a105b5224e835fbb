package corpus

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/brogergvhs/taoscrape/internal/util"
)

// WriteJSON persists the full nested corpus, the richest output form.
func (c *Corpus) WriteJSON(path string) error {
	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}

	return util.WriteFileAtomic(path, append(data, '\n'))
}

// WriteCSV persists the flat table with the documented column contract:
// label, chapter, text.
func (c *Corpus) WriteCSV(path string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"label", "chapter", "text"}); err != nil {
		return err
	}

	for _, r := range c.Rows() {
		if err := w.Write([]string{r.Label, strconv.Itoa(r.Chapter), r.Text}); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	return util.WriteFileAtomic(path, buf.Bytes())
}
