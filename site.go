package mdsite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/highlight"
)

// Config is the site configuration read from _config/site.yaml.
type Config = config.Config

// SiteInfo is the site-wide data available to layouts.
type SiteInfo struct {
	Title       string
	Description string
	BaseURL     string
}

// renderState is swapped as a whole when the syntax set is reloaded, so a
// render never mixes two sets.
type renderState struct {
	syntaxes *SyntaxSet
	builder  *postBuilder
}

// Site is a directory of Markdown pages plus its _config directory.
// All methods are safe for concurrent use.
type Site struct {
	root        string
	buildDir    string
	syntaxesDir string
	cfg         *config.Config
	logger      *slog.Logger
	workers     int
	layouts     *assets.Layouts
	state       atomic.Pointer[renderState]
}

// NewSite loads the site rooted at root: configuration, syntax set and
// layouts. Options override configuration values.
func NewSite(root string, opts ...Option) (*Site, error) {
	s := newSettings(opts)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving site root: %w", err)
	}
	if info, err := os.Stat(absRoot); err != nil {
		return nil, fmt.Errorf("site root: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("site root %s: not a directory", absRoot)
	}

	cfg, err := config.Load(absRoot, s.configPath)
	if err != nil {
		return nil, err
	}
	applySettings(cfg, s)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	site := &Site{
		root:        absRoot,
		cfg:         cfg,
		logger:      s.logger,
		workers:     cfg.Workers,
		buildDir:    resolvePath(absRoot, cfg.BuildDir),
		syntaxesDir: resolvePath(absRoot, cfg.SyntaxesDir),
	}

	if err := site.ReloadSyntaxes(); err != nil {
		return nil, err
	}

	resolver, err := assets.NewAssetResolver(resolvePath(absRoot, cfg.LayoutsDir))
	if err != nil {
		return nil, err
	}
	if site.layouts, err = assets.LoadLayouts(resolver); err != nil {
		return nil, err
	}

	site.logger.Debug("site loaded",
		"root", absRoot,
		"buildDir", site.buildDir,
		"theme", cfg.Theme,
		"customLayouts", resolver.HasCustomLoader())
	return site, nil
}

// applySettings copies option overrides into cfg.
func applySettings(cfg *config.Config, s *settings) {
	if s.buildDir != "" {
		cfg.BuildDir = s.buildDir
	}
	if s.workers > 0 {
		cfg.Workers = s.workers
	}
	if s.dateFormat != "" {
		cfg.DateFormat = s.dateFormat
	}
	if s.theme != "" {
		cfg.Theme = s.theme
	}
}

// resolvePath makes a configured path absolute, relative to the site root.
func resolvePath(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// Config returns the effective configuration. Callers must not modify it.
func (s *Site) Config() *Config { return s.cfg }

// Root returns the absolute site root.
func (s *Site) Root() string { return s.root }

// BuildDir returns the absolute output directory.
func (s *Site) BuildDir() string { return s.buildDir }

// SyntaxesDir returns the absolute directory of user syntax definitions.
func (s *Site) SyntaxesDir() string { return s.syntaxesDir }

// Syntaxes returns the syntax set currently used for rendering.
func (s *Site) Syntaxes() *SyntaxSet { return s.state.Load().syntaxes }

// Style returns the site stylesheet.
func (s *Site) Style() string { return s.layouts.Style }

// Info returns the site-wide layout data.
func (s *Site) Info() SiteInfo {
	return SiteInfo{Title: s.cfg.Title, Description: s.cfg.Description, BaseURL: s.cfg.BaseURL}
}

// ReloadSyntaxes loads the syntax set again from the syntaxes directory and
// swaps it in. Renders already running finish with the previous set. On
// error the current set is kept.
func (s *Site) ReloadSyntaxes() error {
	syntaxes, err := highlight.Load(s.cfg.Theme, s.syntaxesDir, s.logger)
	if err != nil {
		return err
	}
	s.state.Store(&renderState{
		syntaxes: syntaxes,
		builder:  newPostBuilder(syntaxes, syntaxes.Theme(), s.cfg.DateFormat, s.logger),
	})
	s.logger.Debug("syntax set loaded", "theme", syntaxes.Theme(), "syntaxes", len(syntaxes.Names()))
	return nil
}

// Sources lists the Markdown files of the site as slash-separated paths
// relative to the root. Hidden and underscore directories and the build
// directory are skipped.
func (s *Site) Sources() ([]string, error) {
	return fileutil.DiscoverMarkdown(s.root, s.buildDir)
}

// SourceFor returns the Markdown source that produces the page at pagePath,
// e.g. "posts/a.html" -> "posts/a.md". Pages outside the published tree
// yield ErrPageNotFound.
func (s *Site) SourceFor(pagePath string) (string, error) {
	clean := path.Clean(strings.TrimPrefix(pagePath, "/"))
	if clean == "." || strings.HasPrefix(clean, "../") || clean == ".." || path.Ext(clean) != ".html" {
		return "", fmt.Errorf("%w: %s", ErrPageNotFound, pagePath)
	}
	for _, dir := range strings.Split(path.Dir(clean), "/") {
		if dir != "." && fileutil.IsHiddenDir(dir) {
			return "", fmt.Errorf("%w: %s", ErrPageNotFound, pagePath)
		}
	}

	for _, candidate := range fileutil.MarkdownCandidates(clean) {
		abs := filepath.Join(s.root, filepath.FromSlash(candidate))
		if s.inBuildDir(abs) {
			continue
		}
		if info, err := os.Stat(abs); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrPageNotFound, pagePath)
}

// SourcePath converts a file path given on the command line (absolute or
// relative to the working directory) to a source path relative to the root.
func (s *Site) SourcePath(file string) (string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(s.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is outside the site root %s", ErrReadSource, file, s.root)
	}
	if err := fileutil.ValidateMarkdownExtension(rel); err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func (s *Site) inBuildDir(abs string) bool {
	rel, err := filepath.Rel(s.buildDir, abs)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// readSource reads a source given relative to the site root.
func (s *Site) readSource(source string) (string, error) {
	abs := filepath.Join(s.root, filepath.FromSlash(source))
	rel, err := filepath.Rel(s.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s: outside the site root", ErrReadSource, source)
	}
	data, err := os.ReadFile(abs) // #nosec G304 -- confined to the site root above
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadSource, err)
	}
	return string(data), nil
}

// RenderPost renders one source file without a layout.
func (s *Site) RenderPost(ctx context.Context, source string) (*Post, error) {
	src, err := s.readSource(source)
	if err != nil {
		return nil, err
	}
	post, err := s.state.Load().builder.build(ctx, src, fileutil.HTMLPath(source))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return post, nil
}

// postPageData is the data handed to the post layout.
type postPageData struct {
	Site        SiteInfo
	Title       string
	Description string
	Root        string // relative prefix from the page to the site root
	Meta        PostMeta
	TOC         template.HTML
	Content     template.HTML
}

// indexPageData is the data handed to the index layout.
type indexPageData struct {
	Site       SiteInfo
	Posts      []PostMeta
	Pagination *Pagination
	Root       string
}

// PostPage renders one source file into the post layout.
func (s *Site) PostPage(ctx context.Context, source string) ([]byte, *Post, error) {
	post, err := s.RenderPost(ctx, source)
	if err != nil {
		return nil, nil, err
	}
	page, err := s.executePost(post)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", source, err)
	}
	return page, post, nil
}

func (s *Site) executePost(post *Post) ([]byte, error) {
	data := postPageData{
		Site:        s.Info(),
		Title:       post.Meta.Title,
		Description: post.Meta.Summary,
		Root:        rootPrefix(post.Meta.Path),
		Meta:        post.Meta,
		TOC:         template.HTML(post.TOC),     // #nosec G203 -- built from escaped heading text
		Content:     template.HTML(post.Content), // #nosec G203 -- rendered page body, raw HTML is passed through on purpose
	}
	var buf bytes.Buffer
	if err := s.layouts.Post.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: post: %v", ErrLayoutRender, err)
	}
	return buf.Bytes(), nil
}

func (s *Site) executeIndex(page IndexPage) ([]byte, error) {
	data := indexPageData{
		Site:       s.Info(),
		Posts:      page.Posts,
		Pagination: page.Pagination,
	}
	var buf bytes.Buffer
	if err := s.layouts.Index.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: index: %v", ErrLayoutRender, err)
	}
	return buf.Bytes(), nil
}

// rootPrefix returns the relative path from a page back to the site root:
// "a.html" -> "", "posts/a.html" -> "../".
func rootPrefix(pagePath string) string {
	return strings.Repeat("../", strings.Count(pagePath, "/"))
}

// onIndex reports whether a source is listed on the index: every page when
// the site has no posts directory, else the pages under it.
func (s *Site) onIndex(source string) bool {
	dir := strings.Trim(filepath.ToSlash(s.cfg.PostsDir), "/")
	if dir == "" || dir == "." {
		return true
	}
	info, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(dir)))
	if err != nil || !info.IsDir() {
		return true
	}
	return strings.HasPrefix(source, dir+"/")
}

// Index renders every listed source and paginates the resulting metadata.
// Pages that fail to render are logged and left out.
func (s *Site) Index(ctx context.Context) ([]IndexPage, error) {
	sources, err := s.Sources()
	if err != nil {
		return nil, err
	}

	var listed []string
	for _, src := range sources {
		if s.onIndex(src) {
			listed = append(listed, src)
		}
	}

	type metaResult struct {
		meta PostMeta
		err  error
	}
	results := runBatch(ctx, s.workers, len(listed),
		func(ctx context.Context, i int) metaResult {
			post, err := s.RenderPost(ctx, listed[i])
			if err != nil {
				return metaResult{err: err}
			}
			return metaResult{meta: post.Meta}
		},
		func(_ int, err error) metaResult { return metaResult{err: err} },
	)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	metas := make([]PostMeta, 0, len(results))
	for i, r := range results {
		if r.err != nil {
			s.logger.Error("couldn't render page", "path", listed[i], "error", r.err)
			continue
		}
		metas = append(metas, r.meta)
	}
	return Paginate(metas, s.cfg.PageSize)
}

// IndexPageHTML renders index page n (1-based). Pages past the last one
// yield ErrPageNotFound.
func (s *Site) IndexPageHTML(ctx context.Context, n int) ([]byte, error) {
	pages, err := s.Index(ctx)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(pages) {
		return nil, fmt.Errorf("%w: index page %d of %d", ErrPageNotFound, n, len(pages))
	}
	return s.executeIndex(pages[n-1])
}

// BuildReport summarizes a Build.
type BuildReport struct {
	Pages      int // post pages written
	IndexPages int
	Drafts     int // drafts skipped
	Failed     int
	Bytes      int64
	Duration   time.Duration
	Errors     []error
}

// String returns a one-line summary, e.g. "12 pages, 1 index page, 0 failed,
// 48 kB in 120ms".
func (r *BuildReport) String() string {
	return fmt.Sprintf("%d pages, %d index %s, %d failed, %s in %s",
		r.Pages, r.IndexPages, plural(r.IndexPages, "page", "pages"), r.Failed,
		humanize.Bytes(uint64(max(r.Bytes, 0))), r.Duration.Round(time.Millisecond))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// pageResult is the outcome of building one source.
type pageResult struct {
	source string
	meta   PostMeta
	bytes  int
	draft  bool
	err    error
}

// Build renders every source into the build directory, then writes the
// stylesheet and the index pages. Every source is attempted; if any fails
// the returned error joins ErrBuildFailed with the per-page errors.
func (s *Site) Build(ctx context.Context) (*BuildReport, error) {
	start := time.Now()
	report := &BuildReport{}

	sources, err := s.Sources()
	if err != nil {
		return nil, err
	}
	s.logger.Info("building site", "sources", len(sources), "workers", ResolvePoolSize(s.workers), "buildDir", s.buildDir)

	results := runBatch(ctx, s.workers, len(sources),
		func(ctx context.Context, i int) pageResult {
			return s.buildPage(ctx, sources[i])
		},
		func(i int, err error) pageResult { return pageResult{source: sources[i], err: err} },
	)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var metas []PostMeta
	for _, r := range results {
		switch {
		case r.err != nil:
			report.Failed++
			report.Errors = append(report.Errors, r.err)
			s.logger.Error("couldn't render page", "path", r.source, "error", r.err)
		case r.draft:
			report.Drafts++
			s.logger.Debug("skipping draft", "path", r.source)
		default:
			report.Pages++
			report.Bytes += int64(r.bytes)
			if s.onIndex(r.source) {
				metas = append(metas, r.meta)
			}
		}
	}

	if err := s.write("style.css", []byte(s.Style()), report); err != nil {
		return nil, err
	}

	pages, err := Paginate(metas, s.cfg.PageSize)
	if err != nil {
		return nil, err
	}
	for i, page := range pages {
		data, err := s.executeIndex(page)
		if err != nil {
			return nil, err
		}
		if err := s.write(PageName(i+1), data, report); err != nil {
			return nil, err
		}
		report.IndexPages++
	}

	report.Duration = time.Since(start)
	s.logger.Info("site built", "summary", report.String())

	if report.Failed > 0 {
		errs := append([]error{fmt.Errorf("%w: %d of %d pages", ErrBuildFailed, report.Failed, len(sources))}, report.Errors...)
		return report, errors.Join(errs...)
	}
	return report, nil
}

// buildPage renders one source and writes it unless it is a draft.
func (s *Site) buildPage(ctx context.Context, source string) pageResult {
	data, post, err := s.PostPage(ctx, source)
	if err != nil {
		return pageResult{source: source, err: err}
	}
	if post.Meta.Draft {
		return pageResult{source: source, draft: true}
	}

	pagePath := post.Meta.Path
	if _, isIndex := ParsePageName(pagePath); isIndex {
		s.logger.Warn("page is replaced by the post index", "path", source, "page", pagePath)
	}
	if err := fileutil.WriteFile(filepath.Join(s.buildDir, filepath.FromSlash(pagePath)), data); err != nil {
		return pageResult{source: source, err: fmt.Errorf("%w: %s: %w", ErrWritePage, pagePath, err)}
	}
	s.logger.Debug("page written", "path", source, "page", pagePath, "size", humanize.Bytes(uint64(len(data))))
	return pageResult{source: source, meta: post.Meta, bytes: len(data)}
}

func (s *Site) write(name string, data []byte, report *BuildReport) error {
	if err := fileutil.WriteFile(filepath.Join(s.buildDir, name), data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWritePage, name, err)
	}
	report.Bytes += int64(len(data))
	return nil
}
