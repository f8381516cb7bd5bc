package mdsite

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/pipeline"
	"github.com/alnah/go-mdsite/internal/process"
)

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfOptions holds the page geometry in inches.
type pdfOptions struct {
	PaperWidth  float64
	PaperHeight float64
	Margin      float64
}

// paper dimensions in inches.
type paper struct {
	width, height float64
}

var paperSizes = map[string]paper{
	"letter": {8.5, 11},
	"a4":     {8.27, 11.69},
	"legal":  {8.5, 14},
}

// Margin limits in inches.
const (
	MinMargin = 0.0
	MaxMargin = 2.0
)

// PrintOptions configures a Printer.
type PrintOptions struct {
	Timeout  time.Duration // page load timeout; 0 means 30s
	PageSize string        // letter, a4 or legal; empty means letter
	Margin   float64       // inches
}

// PrintOptions returns the print settings from the site configuration.
func (s *Site) PrintOptions() (PrintOptions, error) {
	timeout, err := s.cfg.PrintTimeout()
	if err != nil {
		return PrintOptions{}, err
	}
	return PrintOptions{Timeout: timeout, PageSize: s.cfg.Print.PageSize, Margin: s.cfg.Print.Margin}, nil
}

// resolve validates the options and returns the page geometry.
func (o PrintOptions) resolve() (*pdfOptions, time.Duration, error) {
	size := strings.ToLower(o.PageSize)
	if size == "" {
		size = config.DefaultPaper
	}
	p, ok := paperSizes[size]
	if !ok {
		return nil, 0, fmt.Errorf("%w: page size %q (must be letter, a4, or legal)", ErrInvalidPrint, o.PageSize)
	}
	if o.Margin < MinMargin || o.Margin > MaxMargin {
		return nil, 0, fmt.Errorf("%w: margin %.2f (must be between %.0f and %.0f)", ErrInvalidPrint, o.Margin, MinMargin, MaxMargin)
	}
	if o.Timeout < 0 {
		return nil, 0, fmt.Errorf("%w: negative timeout %s", ErrInvalidPrint, o.Timeout)
	}
	timeout := o.Timeout
	if timeout == 0 {
		timeout = config.DefaultPrintTimeout
	}
	return &pdfOptions{PaperWidth: p.width, PaperHeight: p.height, Margin: o.Margin}, timeout, nil
}

// Printer turns rendered pages into PDF documents with headless Chrome.
// The browser starts on the first print. Close must be called to release it.
// A Printer is not safe for concurrent use.
type Printer struct {
	renderer pdfRenderer
	opts     *pdfOptions
}

// NewPrinter creates a Printer.
// Rod downloads Chromium on first use unless ROD_BROWSER_BIN names a browser.
func NewPrinter(opts PrintOptions) (*Printer, error) {
	pdfOpts, timeout, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	return &Printer{renderer: newRodRenderer(timeout), opts: pdfOpts}, nil
}

// Close releases browser resources.
func (p *Printer) Close() error {
	if p.renderer == nil {
		return nil
	}
	return p.renderer.Close()
}

// PrintHTML prints a complete HTML page. The page is loaded from a temporary
// file, so relative URLs should already be absolute.
func (p *Printer) PrintHTML(ctx context.Context, page string) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(page, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return p.renderer.RenderFromFile(ctx, tmpPath, p.opts)
}

// PrintPost renders source into the post layout and prints it. The site
// stylesheet is inlined, extraCSS is added for print media only, and
// relative links and images are resolved against the source directory.
func (s *Site) PrintPost(ctx context.Context, source string, printer *Printer, extraCSS string) ([]byte, error) {
	page, err := s.PrintablePage(ctx, source, extraCSS)
	if err != nil {
		return nil, err
	}
	return printer.PrintHTML(ctx, page)
}

// PrintablePage returns the self-contained HTML that PrintPost prints.
func (s *Site) PrintablePage(ctx context.Context, source, extraCSS string) (string, error) {
	data, _, err := s.PostPage(ctx, source)
	if err != nil {
		return "", err
	}

	page := pipeline.InjectStyle(string(data), s.Style(), "")
	page = pipeline.InjectStyle(page, extraCSS, "print")

	baseDir := filepath.Join(s.root, filepath.FromSlash(path.Dir(source)))
	page, err = pipeline.RewriteRelativePaths(page, baseDir, s.root)
	if err != nil {
		return "", fmt.Errorf("%w: rewriting paths: %v", ErrPDFGeneration, err)
	}
	return page, nil
}

// rodRenderer implements pdfRenderer using go-rod.
type rodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Pre-installed browser (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		r.killLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close closes the browser and kills its process group, so no renderer
// helper processes outlive the printer.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.killLauncher()
	return err
}

func (r *rodRenderer) killLauncher() {
	if r.launcher == nil {
		return
	}
	if pid := r.launcher.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	r.launcher.Kill()
	r.launcher = nil
}

// RenderFromFile opens a local HTML file in headless Chrome and renders it to PDF.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filepath.ToSlash(filePath)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Context(ctx).Timeout(timeout).WaitLoad(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	reader, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// buildPDFOptions converts page geometry to the DevTools print request.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	if opts == nil {
		opts = &pdfOptions{PaperWidth: paperSizes[config.DefaultPaper].width, PaperHeight: paperSizes[config.DefaultPaper].height, Margin: 0.5}
	}
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(opts.PaperWidth),
		PaperHeight:     floatPtr(opts.PaperHeight),
		MarginTop:       floatPtr(opts.Margin),
		MarginBottom:    floatPtr(opts.Margin),
		MarginLeft:      floatPtr(opts.Margin),
		MarginRight:     floatPtr(opts.Margin),
		PrintBackground: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
