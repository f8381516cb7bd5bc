package mdsite

import (
	"errors"

	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/highlight"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// Structural errors.
var (
	ErrInvalidRoot          = pipeline.ErrInvalidRoot
	ErrParsing              = pipeline.ErrParsing
	ErrFirstHeadingNotTitle = pipeline.ErrFirstHeadingNotTitle
	ErrNoHeadings           = pipeline.ErrNoHeadings
	ErrManyTitles           = pipeline.ErrManyTitles
)

// Content errors.
var (
	ErrHighlighting     = pipeline.ErrHighlighting
	ErrUnknownLang      = pipeline.ErrUnknownLang
	ErrHeaderTooDeep    = pipeline.ErrHeaderTooDeep
	ErrNodeNotSupported = pipeline.ErrNodeNotSupported
	ErrInternal         = pipeline.ErrInternal
)

// Syntax set errors.
var (
	ErrUnknownTheme     = highlight.ErrUnknownTheme
	ErrSyntaxDefinition = highlight.ErrSyntaxDefinition
	ErrSyntaxDirectory  = highlight.ErrSyntaxDirectory
)

// Layout errors.
var (
	ErrLayoutNotFound = assets.ErrLayoutNotFound
	ErrLayoutParse    = assets.ErrLayoutParse
	ErrStyleNotFound  = assets.ErrStyleNotFound
)

// Site and printing errors.
var (
	ErrFrontmatter    = errors.New("invalid frontmatter")
	ErrReadSource     = errors.New("failed to read markdown file")
	ErrWritePage      = errors.New("failed to write page")
	ErrLayoutRender   = errors.New("layout rendering failed")
	ErrBuildFailed    = errors.New("site build failed")
	ErrPageNotFound   = errors.New("page not found")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrInvalidPrint   = errors.New("invalid print settings")
	ErrNotMarkdown    = fileutil.ErrNotMarkdown
)

// Typed errors carrying details. Each unwraps to its sentinel.
type (
	ManyTitlesError      = pipeline.ManyTitlesError
	UnknownLangError     = pipeline.UnknownLangError
	UnsupportedNodeError = pipeline.UnsupportedNodeError
	ParseError           = pipeline.ParseError
)

// IsStructural reports whether err comes from a document whose heading or
// node structure cannot be published, as opposed to an I/O or setup failure.
func IsStructural(err error) bool {
	for _, target := range []error{
		ErrInvalidRoot, ErrParsing, ErrFirstHeadingNotTitle, ErrNoHeadings, ErrManyTitles,
		ErrHeaderTooDeep, ErrNodeNotSupported, ErrInternal, ErrFrontmatter,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
