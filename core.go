package mdsite

import (
	"context"
	"log/slog"

	"github.com/alnah/go-mdsite/internal/highlight"
	"github.com/alnah/go-mdsite/internal/mdast"
	"github.com/alnah/go-mdsite/internal/pipeline"
	"github.com/alnah/go-mdsite/internal/slug"
)

// Node is one element of a parsed document.
type Node = mdast.Node

// Document is a parsed Markdown file: its tree and raw frontmatter.
type Document = pipeline.Document

// TOCEntry is one heading of a document outline.
type TOCEntry = pipeline.TOCEntry

// SyntaxSet is the immutable syntax and theme database used for code blocks.
type SyntaxSet = highlight.SyntaxSet

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.MarkdownParser       = (*pipeline.GoldmarkParser)(nil)
	_ pdfRenderer                   = (*rodRenderer)(nil)
)

// defaultParser is stateless and safe for concurrent use.
var defaultParser = pipeline.NewGoldmarkParser()

// Parse parses Markdown into a Document.
func Parse(ctx context.Context, content string) (*Document, error) {
	return defaultParser.Parse(ctx, content)
}

// BuildTOC derives the heading outline of a parsed document. The document
// must open with its only level 1 heading.
func BuildTOC(root *Node) (*TOCEntry, error) {
	return pipeline.BuildTOC(root)
}

// Render turns node into HTML fragments, highlighting code with syntaxes.
// Highlighting failures are logged through slog.Default. On error no
// fragments are returned.
func Render(node *Node, syntaxes *SyntaxSet) ([]string, error) {
	return pipeline.NewRenderer(syntaxes, slog.Default()).Render(node)
}

// Slugify turns heading text into an anchor id: "Foo Bar!" -> "foo-bar".
func Slugify(text string) string {
	return slug.Make(text)
}

// LoadSyntaxSet builds a SyntaxSet from the built-in syntaxes plus the chroma
// XML lexer definitions in syntaxDir (optional). theme names a chroma style;
// empty means monokai.
func LoadSyntaxSet(theme, syntaxDir string, logger *slog.Logger) (*SyntaxSet, error) {
	return highlight.Load(theme, syntaxDir, logger)
}

// Themes lists the available highlighting theme names.
func Themes() []string {
	return highlight.Themes()
}
