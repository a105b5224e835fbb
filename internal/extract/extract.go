// Package extract turns one translation page into per-chapter text.
// Segmentation is best-effort: inconsistent markup degrades the result
// to fewer chapters instead of failing the source.
package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/taoscrape/internal/index"
	"github.com/brogergvhs/taoscrape/internal/ui"
	"github.com/brogergvhs/taoscrape/internal/util"
)

// MaxChapters is the number of chapters in the Tao Te Ching.
const MaxChapters = 81

type Chapter struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
	// Inferred marks chapters numbered by running sequence because the
	// boundary marker carried no parseable number.
	Inferred bool `json:"inferred,omitempty"`
}

type Result struct {
	Source    index.Source
	Chapters  []Chapter
	Warnings  []string
	Bytes     int64
	HTML      string
	ScrapedAt time.Time
}

// FetchError is a network or HTTP level failure for a single source.
// Callers skip the source and continue the batch.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

type Extractor struct {
	client  *http.Client
	log     *ui.Logger
	retries int
	keepRaw bool
}

func New(client *http.Client, log *ui.Logger, retries int, keepRaw bool) *Extractor {
	return &Extractor{
		client:  client,
		log:     log,
		retries: retries,
		keepRaw: keepRaw,
	}
}

// Extract fetches the source page, segments it into chapters and cleans
// each chunk. Only the fetch can fail; everything after degrades to
// warnings on the result. progress may be nil.
func (e *Extractor) Extract(ctx context.Context, src index.Source, progress func(done, total int, bytes int64)) (*Result, error) {
	body, err := e.fetchBody(ctx, src.URL)
	if err != nil {
		return nil, &FetchError{URL: src.URL, Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, &FetchError{URL: src.URL, Err: fmt.Errorf("parse response: %w", err)}
	}

	res := &Result{
		Source:    src,
		Bytes:     int64(len(body)),
		ScrapedAt: time.Now().UTC(),
	}
	if e.keepRaw {
		res.HTML = body
	}

	chunks, warnings := segment(doc)
	res.Warnings = warnings

	if len(chunks) == 0 {
		res.Warnings = append(res.Warnings, "no chapter boundaries found")
		e.log.Debugf("no boundaries in %s\n", src.URL)
		return res, nil
	}

	if progress != nil {
		progress(0, len(chunks), res.Bytes)
	}

	last := 0
	for i, c := range chunks {
		text := Clean(stripNumberEcho(c.text, c.number))
		if progress != nil {
			progress(i+1, len(chunks), res.Bytes)
		}
		if text == "" {
			continue
		}

		num := c.number
		inferred := false
		if num <= last || num > MaxChapters {
			num = last + 1
			inferred = true
		}

		if num > MaxChapters {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("discarding %d trailing chunks beyond chapter %d", len(chunks)-i, MaxChapters))
			break
		}

		res.Chapters = append(res.Chapters, Chapter{
			Number:   num,
			Text:     text,
			Inferred: inferred,
		})
		last = num
	}

	return res, nil
}

func (e *Extractor) fetchBody(ctx context.Context, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", target, nil)
	if err != nil {
		return "", err
	}

	resp, err := util.DoWithRetry(e.client, req, e.retries, 500*time.Millisecond)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	return string(data), err
}
