package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)
)

// byteOrderMark is stripped from the start of documents saved by some editors.
const byteOrderMark = "\uFEFF"

// Frontmatter delimiters. Each must sit alone on the first line and again on
// a later line to close the block.
const (
	yamlDelimiter = "---"
	tomlDelimiter = "+++"
)

// FrontmatterFormat identifies the syntax of a frontmatter block.
type FrontmatterFormat int

// Frontmatter formats.
const (
	FrontmatterNone FrontmatterFormat = iota
	FrontmatterYAML
	FrontmatterTOML
)

func (f FrontmatterFormat) String() string {
	switch f {
	case FrontmatterYAML:
		return "yaml"
	case FrontmatterTOML:
		return "toml"
	default:
		return "none"
	}
}

// Frontmatter is the raw metadata block found at the top of a document.
type Frontmatter struct {
	Format FrontmatterFormat
	Raw    string
}

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor applies transformations before CommonMark parsing.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown applies all transformations to prepare Markdown for parsing.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, byteOrderMark)
	content = normalizeLineEndings(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// SplitFrontmatter separates a leading YAML (---) or TOML (+++) block from
// the Markdown body. Content must already use \n line endings.
// A block that is never closed is not frontmatter; the content is returned
// unchanged so the parser sees it as ordinary Markdown.
func SplitFrontmatter(content string) (Frontmatter, string) {
	var format FrontmatterFormat
	var delimiter string
	switch {
	case strings.HasPrefix(content, yamlDelimiter+"\n"):
		format, delimiter = FrontmatterYAML, yamlDelimiter
	case strings.HasPrefix(content, tomlDelimiter+"\n"):
		format, delimiter = FrontmatterTOML, tomlDelimiter
	default:
		return Frontmatter{}, content
	}

	rest := content[len(delimiter)+1:]
	offset := 0
	for offset <= len(rest) {
		end := strings.IndexByte(rest[offset:], '\n')
		line := rest[offset:]
		if end >= 0 {
			line = rest[offset : offset+end]
		}
		if strings.TrimRight(line, " \t") == delimiter {
			body := ""
			if end >= 0 {
				body = rest[offset+end+1:]
			}
			return Frontmatter{Format: format, Raw: rest[:offset]}, body
		}
		if end < 0 {
			break
		}
		offset += end + 1
	}

	return Frontmatter{}, content
}
