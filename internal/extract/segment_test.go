package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const anchoredPageHTML = `<html><body>
<p><a href="#Kap1">1</a> <a href="#Kap2">2</a> <a href="#Kap4">4</a></p>
<p>Introductory front matter that belongs to no chapter.</p>
<p><a name="Kap1"></a>1</p>
<p>The tao that can be told is not the eternal Tao.</p>
<p><a name="Kap2"></a>2</p>
<p>When people see some things as beautiful, other things become ugly.</p>
<p><a name="Kap4"></a>4</p>
<p>The tao is like a well: used but never used up.</p>
</body></html>`

func segmentDoc(t *testing.T, html string) ([]chunk, []string) {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return segment(doc)
}

func TestSegmentAnchors(t *testing.T) {
	chunks, warnings := segmentDoc(t, anchoredPageHTML)
	assert.Empty(t, warnings)
	require.Len(t, chunks, 3)

	assert.Equal(t, 1, chunks[0].number)
	assert.Equal(t, 2, chunks[1].number)
	assert.Equal(t, 4, chunks[2].number)

	assert.Contains(t, chunks[0].text, "eternal Tao")
	assert.Contains(t, chunks[2].text, "never used up")

	// TOC links carry href, not name; they must not open chapters
	assert.NotContains(t, chunks[0].text, "front matter")
}

func TestSegmentDiscardsFrontMatter(t *testing.T) {
	chunks, _ := segmentDoc(t, anchoredPageHTML)
	for _, c := range chunks {
		assert.NotContains(t, c.text, "Introductory front matter")
	}
}

func TestSegmentAnchorsZeroPadded(t *testing.T) {
	chunks, _ := segmentDoc(t, `<html><body>
		<p><a name="Kap07"></a>7</p><p>Heaven is eternal, the earth endures.</p>
		<p><a name="KAP08"></a>8</p><p>The highest good is like water.</p>
	</body></html>`)

	require.Len(t, chunks, 2)
	assert.Equal(t, 7, chunks[0].number)
	assert.Equal(t, 8, chunks[1].number)
}

func TestSegmentHeadingFallback(t *testing.T) {
	chunks, warnings := segmentDoc(t, `<html><body>
<p>1</p>
<p>The tao that can be told is not the eternal Tao.</p>
<p>2</p>
<p>When people see some things as beautiful, other things become ugly.</p>
<p>4</p>
<p>The tao is like a well.</p>
</body></html>`)

	require.Len(t, chunks, 3)
	assert.Equal(t, []int{1, 2, 4}, []int{chunks[0].number, chunks[1].number, chunks[2].number})

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "numeric headings")
}

func TestSegmentHeadingFallbackIgnoresNonAdvancingNumbers(t *testing.T) {
	chunks, _ := segmentDoc(t, `<html><body>
<p>1</p>
<p>The ten thousand things rise and fall.</p>
<p>1</p>
<p>This repeated marker must not open a new chapter.</p>
<p>2</p>
<p>Second chapter text.</p>
</body></html>`)

	require.Len(t, chunks, 2)
	assert.Equal(t, 1, chunks[0].number)
	assert.Contains(t, chunks[0].text, "repeated marker")
	assert.Equal(t, 2, chunks[1].number)
}

func TestSegmentNothing(t *testing.T) {
	chunks, warnings := segmentDoc(t, `<html><body><p>Just prose with no structure at all.</p></body></html>`)
	assert.Empty(t, chunks)
	assert.Empty(t, warnings)
}
