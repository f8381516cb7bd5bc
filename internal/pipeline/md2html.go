package pipeline

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-mdsite/internal/mdast"
)

// Document is a parsed Markdown document.
// Root always has kind mdast.KindRoot. When the source carried frontmatter,
// Root's first child is the matching Yaml or Toml node.
type Document struct {
	Root        *mdast.Node
	Frontmatter Frontmatter
}

// MarkdownParser abstracts Markdown parsing.
type MarkdownParser interface {
	Parse(ctx context.Context, content string) (*Document, error)
}

// GoldmarkParser parses GitHub flavored Markdown with goldmark and converts
// the result to an mdast tree. Safe for concurrent use.
type GoldmarkParser struct {
	md           goldmark.Markdown
	preprocessor MarkdownPreprocessor
}

// NewGoldmarkParser creates a GoldmarkParser with GFM and footnote extensions.
func NewGoldmarkParser() *GoldmarkParser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
		),
	)
	return &GoldmarkParser{md: md, preprocessor: &CommonMarkPreprocessor{}}
}

// Parse preprocesses content, splits off frontmatter and parses the body.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (p *GoldmarkParser) Parse(ctx context.Context, content string) (*Document, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		doc *Document
		err error
	}

	done := make(chan result, 1)

	go func() {
		doc, err := p.parse(ctx, content)
		done <- result{doc: doc, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.doc, r.err
	}
}

func (p *GoldmarkParser) parse(ctx context.Context, content string) (*Document, error) {
	content = p.preprocessor.PreprocessMarkdown(ctx, content)
	frontmatter, body := SplitFrontmatter(content)

	source := []byte(body)
	pc := parser.NewContext()
	tree := p.md.Parser().Parse(text.NewReader(source), parser.WithContext(pc))
	if tree.Kind() != gast.KindDocument {
		return nil, ErrInvalidRoot
	}

	root, err := mdast.FromGoldmark(tree, source)
	if err != nil {
		return nil, &ParseError{Message: err.Error()}
	}
	if root.Kind != mdast.KindRoot {
		return nil, ErrInvalidRoot
	}
	// A definition sharing its paragraph with text leaves no empty block
	// behind, so the parser context is the only trace of it.
	if refs := pc.References(); len(refs) > 0 && !root.Contains(mdast.KindDefinition) {
		ref := refs[0]
		root.Children = append(root.Children, &mdast.Node{
			Kind:  mdast.KindDefinition,
			Label: string(ref.Label()),
			URL:   string(ref.Destination()),
			Title: string(ref.Title()),
		})
	}

	switch frontmatter.Format {
	case FrontmatterYAML:
		root.Children = append([]*mdast.Node{{Kind: mdast.KindYaml, Value: frontmatter.Raw}}, root.Children...)
	case FrontmatterTOML:
		root.Children = append([]*mdast.Node{{Kind: mdast.KindToml, Value: frontmatter.Raw}}, root.Children...)
	}

	return &Document{Root: root, Frontmatter: frontmatter}, nil
}

// ParseString is a convenience wrapper around a default GoldmarkParser.
func ParseString(content string) (*Document, error) {
	doc, err := defaultParser.Parse(context.Background(), content)
	if err != nil {
		return nil, fmt.Errorf("parsing markdown: %w", err)
	}
	return doc, nil
}

var defaultParser = NewGoldmarkParser()
