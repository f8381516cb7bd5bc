package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	mdsite "github.com/alnah/go-mdsite"
)

// printFlags holds flags for the print command.
type printFlags struct {
	common   commonFlags
	output   string
	timeout  string
	pageSize string
	margin   float64
	css      string

	set func(name string) bool // reports flags given on the command line
}

func parsePrintFlags(args []string, env *Environment) (*printFlags, []string, error) {
	f := &printFlags{}
	fs := newFlagSet("print", env.Stderr, printPrintUsage)
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "output PDF path (default: input with .pdf)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "page size: letter, a4, legal")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0-2)")
	fs.StringVar(&f.css, "css", "", "extra print stylesheet")

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	f.set = changedIn(fs)
	return f, fs.Args(), nil
}

func changedIn(fs *flag.FlagSet) func(string) bool {
	return func(name string) bool { return fs.Changed(name) }
}

// apply overrides the configured print options with command-line values.
func (f *printFlags) apply(opts mdsite.PrintOptions) (mdsite.PrintOptions, error) {
	if f.set("timeout") {
		d, err := time.ParseDuration(f.timeout)
		if err != nil || d <= 0 {
			return opts, fmt.Errorf("%w: --timeout must be a positive duration, got %q", ErrUsage, f.timeout)
		}
		opts.Timeout = d
	}
	if f.set("page-size") {
		opts.PageSize = f.pageSize
	}
	if f.set("margin") {
		opts.Margin = f.margin
	}
	return opts, nil
}

// pdfPath returns the output path for input: the input with .pdf replacing
// its extension.
func pdfPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf"
}

func runPrint(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parsePrintFlags(args, env)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: print takes exactly one markdown file", ErrUsage)
	}
	input := positional[0]

	log := newLogger(env.Stderr, f.common)
	site, err := openSite(f.common, log)
	if err != nil {
		return configHint(err, f.common.site)
	}
	source, err := site.SourcePath(input)
	if err != nil {
		return err
	}

	opts, err := site.PrintOptions()
	if err != nil {
		return err
	}
	if opts, err = f.apply(opts); err != nil {
		return err
	}

	var css string
	if f.css != "" {
		data, err := os.ReadFile(f.css) // #nosec G304 -- user-provided stylesheet
		if err != nil {
			return fmt.Errorf("%w: %w", ErrReadCSS, err)
		}
		css = string(data)
	}

	printer, err := mdsite.NewPrinter(opts)
	if err != nil {
		return err
	}
	defer printer.Close()

	ctx, stop := notifyContext(ctx)
	defer stop()

	start := time.Now()
	pdf, err := site.PrintPost(ctx, source, printer, css)
	if err != nil {
		return err
	}

	output := f.output
	if output == "" {
		output = pdfPath(input)
	}
	if err := os.WriteFile(output, pdf, 0o644); err != nil { // #nosec G306 -- PDFs are meant to be shared
		return fmt.Errorf("%w: %w", ErrWritePDF, err)
	}

	log.Debug("printed", "source", source, "output", output, "duration", time.Since(start).Round(time.Millisecond))
	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", output)
	}
	return nil
}
