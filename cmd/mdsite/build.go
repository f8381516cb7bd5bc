package main

import (
	"context"
	"fmt"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/config"
)

// buildFlags holds flags for the build command.
type buildFlags struct {
	common     commonFlags
	output     string
	workers    int
	dateFormat string
	theme      string
}

func parseBuildFlags(args []string, env *Environment) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newFlagSet("build", env.Stderr, printBuildUsage)
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: _site)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.dateFormat, "date-format", "", "post date format, e.g. iso or \"MMMM D, YYYY\"")
	fs.StringVar(&f.theme, "theme", "", "highlighting theme")

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	if f.workers < 0 || f.workers > config.MaxWorkers {
		return nil, nil, fmt.Errorf("%w: --workers must be between 0 and %d, got %d", ErrUsage, config.MaxWorkers, f.workers)
	}
	return f, fs.Args(), nil
}

// siteOptions converts the overrides set on the command line.
func (f *buildFlags) siteOptions() []mdsite.Option {
	var opts []mdsite.Option
	if f.output != "" {
		opts = append(opts, mdsite.WithBuildDir(f.output))
	}
	if f.workers > 0 {
		opts = append(opts, mdsite.WithWorkers(f.workers))
	}
	if f.dateFormat != "" {
		opts = append(opts, mdsite.WithDateFormat(f.dateFormat))
	}
	if f.theme != "" {
		opts = append(opts, mdsite.WithTheme(f.theme))
	}
	return opts
}

// buildError reports failed pages by count. The pages themselves were
// already logged; the chain still reaches every page error.
type buildError struct {
	report *mdsite.BuildReport
	err    error
}

func (e *buildError) Error() string {
	return fmt.Sprintf("%d of %d pages failed", e.report.Failed, e.report.Failed+e.report.Pages+e.report.Drafts)
}

func (e *buildError) Unwrap() error { return e.err }

func runBuild(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseBuildFlags(args, env)
	if err != nil {
		return err
	}
	switch len(positional) {
	case 0:
	case 1:
		f.common.site = positional[0]
	default:
		return fmt.Errorf("%w: build takes at most one site directory", ErrUsage)
	}

	log := newLogger(env.Stderr, f.common)
	site, err := openSite(f.common, log, f.siteOptions()...)
	if err != nil {
		return configHint(err, f.common.site)
	}

	ctx, stop := notifyContext(ctx)
	defer stop()

	report, err := site.Build(ctx)
	if report != nil && !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Built %s: %s\n", site.BuildDir(), report)
	}
	if err != nil && report != nil {
		return &buildError{report: report, err: err}
	}
	return err
}
