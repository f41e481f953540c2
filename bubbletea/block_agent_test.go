package bubbletea_test

import (
	"strings"
	"testing"

	"github.com/animus/anima"
	bt "github.com/animus/anima/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestAgentBlock_View(t *testing.T) {
	t.Parallel()

	t.Run("renders label and markdown", func(t *testing.T) {
		t.Parallel()
		theme := anima.DefaultTheme()
		styles := bt.NewStyles(theme)
		block := bt.NewAgentBlock("helper", theme, styles)
		block.SetContent("hello **world**")
		view := block.View(80)
		assert.Contains(t, view, "helper:")
		assert.Contains(t, view, "hello")
		assert.Contains(t, view, "world")
	})

	t.Run("set content replaces previous snapshot", func(t *testing.T) {
		t.Parallel()
		theme := anima.DefaultTheme()
		styles := bt.NewStyles(theme)
		block := bt.NewAgentBlock("helper", theme, styles)
		block.SetContent("Hello")
		block.SetContent("Hello world")
		view := block.View(80)
		assert.Contains(t, view, "Hello world")
		assert.Equal(t, 1, strings.Count(view, "Hello"))
	})

	t.Run("empty content renders header only", func(t *testing.T) {
		t.Parallel()
		theme := anima.DefaultTheme()
		styles := bt.NewStyles(theme)
		block := bt.NewAgentBlock("helper", theme, styles)
		view := block.View(80)
		assert.Contains(t, view, "helper:")
		assert.NotContains(t, view, "\n\n")
	})

	t.Run("set label updates header", func(t *testing.T) {
		t.Parallel()
		theme := anima.DefaultTheme()
		styles := bt.NewStyles(theme)
		block := bt.NewAgentBlock("Assistant", theme, styles)
		block.SetContent("hi")
		block.SetLabel("helper")
		view := block.View(80)
		assert.Contains(t, view, "helper:")
		assert.NotContains(t, view, "Assistant:")
	})

	t.Run("finalized paragraphs survive growing snapshots", func(t *testing.T) {
		t.Parallel()
		theme := anima.DefaultTheme()
		styles := bt.NewStyles(theme)
		block := bt.NewAgentBlock("helper", theme, styles)
		block.SetContent("first paragraph\n\nsecond")
		first := block.View(80)
		block.SetContent("first paragraph\n\nsecond paragraph grows")
		second := block.View(80)
		assert.Contains(t, first, "first paragraph")
		assert.Contains(t, second, "first paragraph")
		assert.Contains(t, second, "second paragraph grows")
	})

	t.Run("unclosed fence renders safely", func(t *testing.T) {
		t.Parallel()
		theme := anima.DefaultTheme()
		styles := bt.NewStyles(theme)
		block := bt.NewAgentBlock("helper", theme, styles)
		block.SetContent("```go\nfmt.Println(\"hi\")")
		view := block.View(80)
		assert.Contains(t, view, "fmt.Println")
	})

	t.Run("fence spanning paragraph break is not finalized mid-block", func(t *testing.T) {
		t.Parallel()
		theme := anima.DefaultTheme()
		styles := bt.NewStyles(theme)
		block := bt.NewAgentBlock("helper", theme, styles)
		block.SetContent("```text\nfirst\n\nsecond")
		view := block.View(80)
		assert.Contains(t, view, "first")
		assert.Contains(t, view, "second")
	})
}
