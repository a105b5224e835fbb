// Package index discovers translation sources on the terebess index
// page. It scans the link table's anchors, resolves them against the
// index URL and keeps only targets that look like translation documents.
package index

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/taoscrape/internal/util"
)

// Source is one translator's full-text page, discovered on the index.
type Source struct {
	Label string
	URL   string
	PDF   bool
}

// ErrNoSources means the index page had no recognizable translation
// links. The whole run has nothing to do, so callers treat it as fatal.
var ErrNoSources = errors.New("no translation links found on index page")

// Collect fetches the index page and parses it into sources. A network
// failure here aborts the run, unlike per-source fetches later on.
func Collect(ctx context.Context, client *http.Client, indexURL string, retries int) ([]Source, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", indexURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := util.DoWithRetry(client, req, retries, 500*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("fetch index %s: %w", indexURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch index %s: HTTP %d", indexURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse index %s: %w", indexURL, err)
	}

	return Parse(doc, indexURL)
}

// Parse extracts translation sources from the index document.
// Deduplicates by URL (last occurrence wins) and sorts by label so the
// output is reproducible across runs.
func Parse(doc *goquery.Document, baseURL string) ([]Source, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	sel := doc.Find("table td p a[href]")
	if sel.Length() == 0 {
		// older mirrors drop the table layout
		sel = doc.Find("a[href]")
	}

	byURL := map[string]int{}
	var out []Source

	sel.Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")

		label := cleanLabel(a.Text())
		if label == "" {
			return
		}

		u, err := base.Parse(href)
		if err != nil {
			return
		}

		if !isTranslationLink(u, base) {
			return
		}

		src := Source{
			Label: label,
			URL:   u.String(),
			PDF:   strings.HasSuffix(strings.ToLower(u.Path), ".pdf"),
		}

		if i, ok := byURL[src.URL]; ok {
			out[i] = src
			return
		}

		byURL[src.URL] = len(out)
		out = append(out, src)
	})

	if len(out) == 0 {
		return nil, ErrNoSources
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Label != out[j].Label {
			return out[i].Label < out[j].Label
		}
		return out[i].URL < out[j].URL
	})

	return out, nil
}

// isTranslationLink keeps only same-host documents living in the index
// page's directory subtree. Fragments, mailto, off-site links and the
// index itself are dropped.
func isTranslationLink(u, base *url.URL) bool {
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if !strings.EqualFold(u.Host, base.Host) {
		return false
	}

	dir := path.Dir(base.Path)
	if !strings.HasPrefix(u.Path, dir+"/") {
		return false
	}
	if u.Path == base.Path {
		return false
	}
	if strings.Contains(path.Base(u.Path), "_index") {
		return false
	}

	switch strings.ToLower(path.Ext(u.Path)) {
	case ".html", ".htm", ".pdf", "":
		return true
	default:
		return false
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func cleanLabel(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch {
		case unicode.IsSpace(c):
			b.WriteRune(' ')
		case unicode.IsPrint(c):
			b.WriteRune(c)
		}
	}

	out := strings.TrimSpace(b.String())
	return innerWhitespace.ReplaceAllString(out, " ")
}

// FilterLabel narrows sources to those whose label contains q,
// case-insensitively. Empty q keeps everything.
func FilterLabel(sources []Source, q string) []Source {
	if strings.TrimSpace(q) == "" {
		return sources
	}

	q = strings.ToLower(q)
	out := []Source{}
	for _, s := range sources {
		if strings.Contains(strings.ToLower(s.Label), q) {
			out = append(out, s)
		}
	}

	return out
}

// FilterScrapable drops PDFs, which the extractor cannot segment.
func FilterScrapable(sources []Source) []Source {
	out := []Source{}
	for _, s := range sources {
		if !s.PDF {
			out = append(out, s)
		}
	}

	return out
}
