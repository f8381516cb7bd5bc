package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-mdsite/internal/highlight"
)

// ErrExcerptRender indicates an excerpt could not be rendered.
var ErrExcerptRender = errors.New("excerpt rendering failed")

// ExcerptRenderer renders short Markdown snippets, such as the description
// of a post shown on the index. Unlike Renderer it accepts every construct
// goldmark knows; raw HTML is dropped.
type ExcerptRenderer struct {
	md goldmark.Markdown
}

// NewExcerptRenderer creates an ExcerptRenderer highlighting code with the
// given chroma style. An empty theme uses highlight.DefaultTheme.
func NewExcerptRenderer(theme string) *ExcerptRenderer {
	if theme == "" {
		theme = highlight.DefaultTheme
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(theme),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // Same inline styling as page bodies
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(), // Self-closing tags
			// Note: WithUnsafe() intentionally NOT used; excerpts never carry raw HTML.
		),
	)
	return &ExcerptRenderer{md: md}
}

// Render converts content to an HTML fragment. A single paragraph is
// unwrapped so the excerpt can sit inside any element.
func (r *ExcerptRenderer) Render(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrExcerptRender, err)}
			return
		}
		done <- result{html: unwrapParagraph(strings.TrimSpace(buf.String()))}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// unwrapParagraph strips <p>...</p> when it is the only top level element.
func unwrapParagraph(s string) string {
	inner, ok := strings.CutPrefix(s, "<p>")
	if !ok {
		return s
	}
	inner, ok = strings.CutSuffix(inner, "</p>")
	if !ok || strings.Contains(inner, "<p>") {
		return s
	}
	return inner
}
