package pipeline

import (
	"errors"
	"fmt"

	"github.com/alnah/go-mdsite/internal/highlight"
	"github.com/alnah/go-mdsite/internal/mdast"
)

// Structural errors, raised while parsing a document or building its TOC.
var (
	ErrInvalidRoot          = errors.New("markdown parser started with non root node")
	ErrParsing              = errors.New("error parsing markdown")
	ErrFirstHeadingNotTitle = errors.New("first heading in page was not the title, page should begin with a level 1 heading")
	ErrNoHeadings           = errors.New("unable to find page title as the page had no headings, page should begin with a level 1 heading")
	ErrManyTitles           = errors.New("page should contain only one title (level 1 heading)")
)

// Content errors, raised while rendering a document body.
var (
	ErrHighlighting     = highlight.ErrHighlighting
	ErrUnknownLang      = highlight.ErrUnknownLang
	ErrHeaderTooDeep    = errors.New("header too deep")
	ErrNodeNotSupported = errors.New("node not supported")
	ErrInternal         = errors.New("internal error: markdown nodes have been structured in an unexpected way")
)

// UnknownLangError is returned by the highlighter for an unregistered tag.
type UnknownLangError = highlight.UnknownLangError

// ManyTitlesError reports a second level 1 heading.
type ManyTitlesError struct {
	SecondTitle string
}

func (e *ManyTitlesError) Error() string {
	return fmt.Sprintf("%v, second title was %q", ErrManyTitles, e.SecondTitle)
}

// Unwrap lets errors.Is match ErrManyTitles.
func (e *ManyTitlesError) Unwrap() error {
	return ErrManyTitles
}

// UnsupportedNodeError reports a node kind the renderer refuses to render.
type UnsupportedNodeError struct {
	Kind mdast.Kind
}

func (e *UnsupportedNodeError) Error() string {
	return fmt.Sprintf("mdsite doesn't currently support %s", unsupportedLabel(e.Kind))
}

// Unwrap lets errors.Is match ErrNodeNotSupported.
func (e *UnsupportedNodeError) Unwrap() error {
	return ErrNodeNotSupported
}

// ParseError wraps a failure of the underlying Markdown parser.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %s", ErrParsing, e.Message)
}

// Unwrap lets errors.Is match ErrParsing.
func (e *ParseError) Unwrap() error {
	return ErrParsing
}

// unsupportedLabel names a node kind the way authors know it.
func unsupportedLabel(k mdast.Kind) string {
	switch k {
	case mdast.KindImage, mdast.KindImageReference:
		return "images"
	case mdast.KindLinkReference:
		return "reference style links"
	case mdast.KindDefinition:
		return "definitions"
	case mdast.KindMath, mdast.KindInlineMath:
		return "maths"
	case mdast.KindMdxjsEsm, mdast.KindMdxFlowExpression, mdast.KindMdxTextExpression,
		mdast.KindMdxJsxFlowElement, mdast.KindMdxJsxTextElement:
		return "JSX"
	default:
		return k.String()
	}
}
