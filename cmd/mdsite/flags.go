package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	flag "github.com/spf13/pflag"

	mdsite "github.com/alnah/go-mdsite"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	site    string
	config  string
	quiet   bool
	verbose bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.site, "site", "s", ".", "site root directory")
	fs.StringVarP(&f.config, "config", "c", "", "config file path (default: _config/site.yaml)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// newFlagSet creates a FlagSet whose usage and errors go to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parse parses args, marking failures as usage errors. flag.ErrHelp is
// returned as is.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}

// newLogger returns a text logger on w: INFO by default, DEBUG with
// --verbose, ERROR with --quiet.
func newLogger(w io.Writer, f commonFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case f.verbose:
		level = slog.LevelDebug
	case f.quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openSite loads the site selected by f.
func openSite(f commonFlags, log *slog.Logger, opts ...mdsite.Option) (*mdsite.Site, error) {
	opts = append(opts, mdsite.WithLogger(log))
	if f.config != "" {
		opts = append(opts, mdsite.WithConfigPath(f.config))
	}
	return mdsite.NewSite(f.site, opts...)
}
