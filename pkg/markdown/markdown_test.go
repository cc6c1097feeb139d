package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderEmphasisAndLinks(t *testing.T) {
	out := string(Render("Applications are due **October 31**. See the [aid page](https://finaid.example.edu)."))

	assert.Contains(t, out, "<strong>October 31</strong>")
	assert.Contains(t, out, `<a href="https://finaid.example.edu">aid page</a>`)
}

func TestRenderDropsRawHTML(t *testing.T) {
	out := string(Render("hello <script>alert(1)</script>"))

	assert.False(t, strings.Contains(out, "<script>"))
	assert.Contains(t, out, "hello")
}
