package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCollapsesWhitespace(t *testing.T) {
	got := Clean("The tao   that\n\tcan be told\n")
	assert.Equal(t, "The tao that can be told", got)
}

func TestCleanRemovesMarkers(t *testing.T) {
	assert.Equal(t, "heaven and earth", Clean("heaven¶ and† earth‡§"))
	assert.Equal(t, "a thousand things", Clean("a thousand[12] things"))
}

func TestCleanRemovesCJK(t *testing.T) {
	got := Clean("道可道 The way that can be spoken 非常道")
	assert.Equal(t, "The way that can be spoken", got)
}

func TestCleanTrailingNavigation(t *testing.T) {
	assert.Equal(t, "the sage acts without striving", Clean("the sage acts without striving up"))
	assert.Equal(t, "knows when to stop", Clean("knows when to stop (3) up up"))
}

func TestCleanPunctuationDebris(t *testing.T) {
	assert.Equal(t, "to yield is to be preserved whole.", Clean("-  to yield is to be preserved whole. —"))
}

func TestCleanEmpty(t *testing.T) {
	assert.Equal(t, "", Clean("  \n\t "))
	assert.Equal(t, "", Clean("¶¶¶"))
}

func TestCleanIdempotent(t *testing.T) {
	samples := []string{
		"The tao   that\n can be told 道 up",
		"-- heaven and† earth[3] (12) up",
		"already clean text.",
		"",
		"up up up",
	}

	for _, s := range samples {
		once := Clean(s)
		assert.Equal(t, once, Clean(once), "re-cleaning %q must not change it", s)
	}
}

func TestStripNumberEcho(t *testing.T) {
	assert.Equal(t, "The tao that can be told", stripNumberEcho("7. The tao that can be told", 7))
	assert.Equal(t, "The tao", stripNumberEcho("7 The tao", 7))

	// longer number, not an echo
	assert.Equal(t, "70 disciples left", stripNumberEcho("70 disciples left", 7))

	// unknown boundary number
	assert.Equal(t, "3 text", stripNumberEcho("3 text", 0))
}
