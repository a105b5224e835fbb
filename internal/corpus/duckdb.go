package corpus

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/marcboeker/go-duckdb/v2"
)

const createChaptersTable = `
CREATE TABLE chapters (
	translator      VARCHAR NOT NULL,
	chapter         INTEGER NOT NULL,
	text            VARCHAR NOT NULL,
	normalized_text VARCHAR NOT NULL,
	text_length     INTEGER NOT NULL,
	url             VARCHAR,
	scraped_at      TIMESTAMP
)`

// WriteDuckDB persists the flat table as a DuckDB database, which the
// analysis notebook can query directly. The file is recreated on every
// run, matching the overwrite semantics of the other outputs.
func (c *Corpus) WriteDuckDB(path string) error {
	_ = os.Remove(path)

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("open duckdb %s: %w", path, err)
	}
	defer func() {
		_ = db.Close()
	}()

	if _, err := db.Exec(createChaptersTable); err != nil {
		return fmt.Errorf("create chapters table: %w", err)
	}

	stmt, err := db.Prepare(`INSERT INTO chapters VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, r := range c.Rows() {
		_, err := stmt.Exec(r.Label, r.Chapter, r.Text, r.Normalized, len(r.Text), r.URL, r.ScrapedAt)
		if err != nil {
			return fmt.Errorf("insert chapter %d of %q: %w", r.Chapter, r.Label, err)
		}
	}

	return nil
}
