package markdown_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/animus/anima"
	"github.com/animus/anima/markdown"
	"github.com/stretchr/testify/assert"
)

func stripANSI(s string) string {
	// Matches SGR, cursor movement, and other CSI sequences.
	re := regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	return re.ReplaceAllString(s, "")
}

func TestRender(t *testing.T) {
	t.Parallel()

	theme := anima.DefaultTheme()

	t.Run("empty input returns empty string", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", markdown.Render("", 80, theme))
	})

	t.Run("plain paragraph", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("hello world", 80, theme)
		assert.Contains(t, stripANSI(result), "hello world")
	})

	t.Run("heading content survives", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("# Title", 80, theme)
		assert.Contains(t, stripANSI(result), "Title")
	})

	t.Run("fenced code block preserves content without reflow", func(t *testing.T) {
		t.Parallel()
		src := "```go\nfmt.Println(\"hello world\")\n```"
		result := markdown.Render(src, 20, theme)
		assert.Contains(t, stripANSI(result), `fmt.Println("hello world")`)
	})

	t.Run("fenced code block lines carry gutter", func(t *testing.T) {
		t.Parallel()
		src := "```\ncode line\n```"
		result := stripANSI(markdown.Render(src, 80, theme))
		assert.Contains(t, result, "│ code line")
	})

	t.Run("unordered list markers", func(t *testing.T) {
		t.Parallel()
		result := stripANSI(markdown.Render("- first\n- second", 80, theme))
		assert.Contains(t, result, "- first")
		assert.Contains(t, result, "- second")
	})

	t.Run("ordered list numbering respects start", func(t *testing.T) {
		t.Parallel()
		result := stripANSI(markdown.Render("3. third\n4. fourth", 80, theme))
		assert.Contains(t, result, "3. third")
		assert.Contains(t, result, "4. fourth")
	})

	t.Run("long paragraph wraps to width", func(t *testing.T) {
		t.Parallel()
		src := strings.Repeat("word ", 30)
		result := stripANSI(markdown.Render(src, 20, theme))
		for _, line := range strings.Split(result, "\n") {
			assert.LessOrEqual(t, len(line), 20)
		}
	})

	t.Run("zero width falls back to default", func(t *testing.T) {
		t.Parallel()
		result := markdown.Render("hello", 0, theme)
		assert.Contains(t, stripANSI(result), "hello")
	})

	t.Run("link shows destination", func(t *testing.T) {
		t.Parallel()
		result := stripANSI(markdown.Render("[docs](https://example.com)", 80, theme))
		assert.Contains(t, result, "docs")
		assert.Contains(t, result, "https://example.com")
	})
}
