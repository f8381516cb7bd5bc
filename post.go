package mdsite

import (
	"context"
	"fmt"
	"html"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/alnah/go-mdsite/internal/dateutil"
	"github.com/alnah/go-mdsite/internal/decode"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// summaryLength caps the plain-text summary taken from a post body.
const summaryLength = 200

// Frontmatter is the metadata block at the top of a post.
type Frontmatter struct {
	Title       string
	Date        time.Time
	Description string // Markdown
	Draft       bool
	Tags        []string
}

// rawFrontmatter mirrors Frontmatter as decoded. Date stays untyped because
// YAML and TOML hand dates over differently.
type rawFrontmatter struct {
	Title       string   `yaml:"title" toml:"title"`
	Date        any      `yaml:"date" toml:"date"`
	Description string   `yaml:"description" toml:"description"`
	Draft       bool     `yaml:"draft" toml:"draft"`
	Tags        []string `yaml:"tags" toml:"tags"`
}

// ParseFrontmatter decodes a raw YAML or TOML block. Unknown keys are
// ignored so posts may carry metadata for other tools.
func ParseFrontmatter(fm pipeline.Frontmatter) (Frontmatter, error) {
	if strings.TrimSpace(fm.Raw) == "" {
		return Frontmatter{}, nil
	}

	var raw rawFrontmatter
	var err error
	switch fm.Format {
	case pipeline.FrontmatterYAML:
		err = decode.YAML([]byte(fm.Raw), &raw)
	case pipeline.FrontmatterTOML:
		err = decode.TOML([]byte(fm.Raw), &raw)
	default:
		return Frontmatter{}, nil
	}
	if err != nil {
		return Frontmatter{}, fmt.Errorf("%w: %v", ErrFrontmatter, err)
	}

	date, err := dateutil.FromValue(raw.Date)
	if err != nil {
		return Frontmatter{}, fmt.Errorf("%w: date: %v", ErrFrontmatter, err)
	}

	return Frontmatter{
		Title:       strings.TrimSpace(raw.Title),
		Date:        date,
		Description: strings.TrimSpace(raw.Description),
		Draft:       raw.Draft,
		Tags:        raw.Tags,
	}, nil
}

// Post is one rendered Markdown page.
type Post struct {
	Title   string // level 1 heading
	TOC     string // nested <ol> of the subheadings, empty when there are none
	Content string
	Meta    PostMeta
}

// PostMeta describes a post on the index.
type PostMeta struct {
	Title       string // frontmatter title, else the level 1 heading
	Path        string // page path relative to the site root, e.g. "posts/a.html"
	Date        time.Time
	DateDisplay string
	Description template.HTML
	Summary     string // plain text for <meta name="description">
	Tags        []string
	Draft       bool
}

// postBuilder turns Markdown into a Post. It holds no per-document state and
// is safe for concurrent use.
type postBuilder struct {
	parser     pipeline.MarkdownParser
	renderer   *pipeline.Renderer
	excerpts   *pipeline.ExcerptRenderer
	dateFormat string
	logger     *slog.Logger
}

func newPostBuilder(syntaxes *SyntaxSet, theme, dateFormat string, logger *slog.Logger) *postBuilder {
	if theme == "" && syntaxes != nil {
		theme = syntaxes.Theme()
	}
	return &postBuilder{
		parser:     defaultParser,
		renderer:   pipeline.NewRenderer(syntaxes, logger),
		excerpts:   pipeline.NewExcerptRenderer(theme),
		dateFormat: dateFormat,
		logger:     logger,
	}
}

// NewPost renders a standalone Markdown document.
func NewPost(ctx context.Context, src string, syntaxes *SyntaxSet, opts ...Option) (*Post, error) {
	s := newSettings(opts)
	return newPostBuilder(syntaxes, s.theme, s.dateFormat, s.logger).build(ctx, src, s.path)
}

// build parses src, builds its outline and renders its body. path is the
// page path recorded in the metadata.
func (b *postBuilder) build(ctx context.Context, src, path string) (*Post, error) {
	doc, err := b.parser.Parse(ctx, src)
	if err != nil {
		return nil, err
	}

	toc, err := pipeline.BuildTOC(doc.Root)
	if err != nil {
		return nil, err
	}

	content, err := b.renderer.RenderString(doc.Root)
	if err != nil {
		return nil, err
	}

	fm, err := ParseFrontmatter(doc.Frontmatter)
	if err != nil {
		return nil, err
	}

	tocHTML, _ := toc.HTML()
	post := &Post{
		Title:   toc.Name,
		TOC:     tocHTML,
		Content: content,
	}
	post.Meta = b.meta(ctx, post, fm, path)
	return post, nil
}

func (b *postBuilder) meta(ctx context.Context, post *Post, fm Frontmatter, path string) PostMeta {
	meta := PostMeta{
		Title: post.Title,
		Path:  path,
		Date:  fm.Date,
		Tags:  fm.Tags,
		Draft: fm.Draft,
	}
	if fm.Title != "" {
		meta.Title = fm.Title
	}

	if !fm.Date.IsZero() && b.dateFormat != "" {
		display, err := dateutil.Format(fm.Date, b.dateFormat)
		if err != nil {
			b.logger.Warn("invalid date format, using ISO dates", "format", b.dateFormat, "error", err)
			display = fm.Date.Format(time.DateOnly)
		}
		meta.DateDisplay = display
	} else if !fm.Date.IsZero() {
		meta.DateDisplay = fm.Date.Format(time.DateOnly)
	}

	meta.Summary = pipeline.FirstParagraphText(post.Content, summaryLength)
	meta.Description = template.HTML(html.EscapeString(meta.Summary)) // #nosec G203 -- escaped above

	if fm.Description != "" {
		meta.Summary = fm.Description
		rendered, err := b.excerpts.Render(ctx, fm.Description)
		if err != nil {
			b.logger.Warn("description rendering failed, using plain text", "path", path, "error", err)
			meta.Description = template.HTML(html.EscapeString(fm.Description)) // #nosec G203 -- escaped
		} else {
			meta.Description = template.HTML(rendered) // #nosec G203 -- goldmark output without raw HTML
		}
	}

	return meta
}
