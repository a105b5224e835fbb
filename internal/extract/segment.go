package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// chunk is a contiguous span of text between two boundaries, before
// cleaning. number is 0 when the boundary carried no parseable number.
type chunk struct {
	number int
	text   string
}

var (
	// terebess pages anchor each chapter as <a name="Kap07">
	kapRe = regexp.MustCompile(`(?i)^kap0*([0-9]+)$`)

	// fallback: a line that is only a chapter number, optionally decorated
	standaloneNumRe = regexp.MustCompile(`^\s*[(\[]?([0-9]{1,2})[)\].:]?\s*$`)
)

// segment splits the document into per-chapter chunks. The primary
// strategy follows the site's own "Kap" chapter anchors; pages without
// them fall back to standalone numeric headings. Text before the first
// boundary is front matter and is discarded.
func segment(doc *goquery.Document) ([]chunk, []string) {
	var warnings []string

	root := doc.Selection.Nodes
	if len(root) == 0 {
		return nil, warnings
	}

	s := &segmenter{}
	for _, n := range root {
		s.walk(n)
	}
	s.flush()

	if len(s.chunks) > 0 {
		return s.chunks, warnings
	}

	chunks := segmentByHeadings(doc)
	if len(chunks) > 0 {
		warnings = append(warnings, "no chapter anchors, segmented by numeric headings")
		return chunks, warnings
	}

	return nil, warnings
}

type segmenter struct {
	chunks  []chunk
	cur     strings.Builder
	curNum  int
	started bool
}

func (s *segmenter) walk(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "a" {
		if num, ok := boundaryNumber(n); ok {
			s.flush()
			s.started = true
			s.curNum = num
		}
	}

	if n.Type == html.TextNode && s.started {
		s.cur.WriteString(n.Data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		s.walk(c)
	}

	if n.Type == html.ElementNode && s.started && isBlock(n.Data) {
		s.cur.WriteString("\n")
	}
}

func (s *segmenter) flush() {
	if !s.started {
		return
	}

	s.chunks = append(s.chunks, chunk{number: s.curNum, text: s.cur.String()})
	s.cur.Reset()
	s.curNum = 0
}

func boundaryNumber(n *html.Node) (int, bool) {
	for _, a := range n.Attr {
		if a.Key != "name" && a.Key != "id" {
			continue
		}
		if m := kapRe.FindStringSubmatch(a.Val); m != nil {
			num, err := strconv.Atoi(m[1])
			if err != nil {
				return 0, true
			}
			return num, true
		}
	}

	return 0, false
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "br", "tr", "li", "blockquote",
		"h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// segmentByHeadings splits on lines that contain nothing but a chapter
// number. Numbers must strictly advance, so verse counts and repeated
// numbers inside the text do not open bogus chapters.
func segmentByHeadings(doc *goquery.Document) []chunk {
	body := doc.Find("body")
	if body.Length() == 0 {
		return nil
	}

	text := textWithBreaks(body.Nodes[0])
	lines := strings.Split(text, "\n")

	var chunks []chunk
	var cur strings.Builder
	curNum := 0
	last := 0

	flush := func() {
		if curNum == 0 {
			return
		}
		chunks = append(chunks, chunk{number: curNum, text: cur.String()})
		cur.Reset()
	}

	for _, line := range lines {
		if m := standaloneNumRe.FindStringSubmatch(line); m != nil {
			num, _ := strconv.Atoi(m[1])
			if num > last && num <= MaxChapters {
				flush()
				curNum = num
				last = num
				continue
			}
		}

		if curNum != 0 {
			cur.WriteString(line)
			cur.WriteString("\n")
		}
	}
	flush()

	return chunks
}

func textWithBreaks(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && isBlock(n.Data) {
			b.WriteString("\n")
		}
	}
	walk(n)

	return b.String()
}
