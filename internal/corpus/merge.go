package corpus

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/brogergvhs/taoscrape/internal/extract"
)

// Manual files use the same shape as the scraped output, except that
// chapters may be a number-keyed object as produced by hand-transcribed
// JSON. Timestamps are free-form and ignored.
type manualTranslation struct {
	TranslationName string            `json:"translation_name"`
	URL             string            `json:"url"`
	Chapters        map[string]string `json:"chapters"`
}

type manualBundle struct {
	Translations []manualTranslation `json:"translations"`
}

// MergeManualDir loads every *.json file in dir into the corpus. A file
// holds either a single translation or a {"translations": [...]} bundle.
// Malformed files are skipped with a warning; a missing dir is not an
// error. Returns the number of translations merged.
func (c *Corpus) MergeManualDir(dir string, warn interface{ Warnf(string, ...any) }) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	added := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}

		full := filepath.Join(dir, e.Name())
		raw, err := os.ReadFile(full)
		if err != nil {
			warn.Warnf("manual file %s: %v\n", e.Name(), err)
			continue
		}

		decoded := decodeManual(raw)
		if len(decoded) == 0 {
			warn.Warnf("manual file %s: not a translation or bundle, skipped\n", e.Name())
			continue
		}

		for _, mt := range decoded {
			t, ok := mt.toTranslation()
			if !ok {
				warn.Warnf("manual file %s: entry %q has no usable chapters\n", e.Name(), mt.TranslationName)
				continue
			}
			c.Add(t)
			added++
		}
	}

	return added, nil
}

func decodeManual(raw []byte) []manualTranslation {
	var bundle manualBundle
	if err := json.Unmarshal(raw, &bundle); err == nil && len(bundle.Translations) > 0 {
		return bundle.Translations
	}

	var single manualTranslation
	if err := json.Unmarshal(raw, &single); err == nil && len(single.Chapters) > 0 {
		return []manualTranslation{single}
	}

	return nil
}

func (mt manualTranslation) toTranslation() (Translation, bool) {
	if strings.TrimSpace(mt.TranslationName) == "" {
		return Translation{}, false
	}

	var chapters []extract.Chapter
	for key, text := range mt.Chapters {
		num, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || num < 1 || num > extract.MaxChapters {
			continue
		}

		cleaned := extract.Clean(text)
		if cleaned == "" {
			continue
		}

		chapters = append(chapters, extract.Chapter{Number: num, Text: cleaned})
	}

	if len(chapters) == 0 {
		return Translation{}, false
	}

	sort.Slice(chapters, func(i, j int) bool { return chapters[i].Number < chapters[j].Number })

	return Translation{
		Label:     strings.TrimSpace(mt.TranslationName),
		URL:       mt.URL,
		ScrapedAt: time.Now().UTC(),
		Chapters:  chapters,
	}, true
}
