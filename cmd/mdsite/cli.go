package main

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	flag "github.com/spf13/pflag"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage    = errors.New("invalid usage")
	ErrReadCSS  = errors.New("failed to read CSS file")
	ErrWritePDF = errors.New("failed to write PDF file")
)

// hintedError carries a hint computed where the context for it was known.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() }
func (e *hintedError) Unwrap() error { return e.err }

func withHint(err error, hint string) error {
	if err == nil || hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}

// run executes the command named by args[0] and returns the exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "build":
		err = runBuild(ctx, rest, env)
	case "serve":
		err = runServe(ctx, rest, env)
	case "print":
		err = runPrint(ctx, rest, env)
	case "inspect":
		err = runInspect(ctx, rest, env)
	case "init":
		err = runInit(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "mdsite %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// hintFor returns the actionable hint for err, if any.
func hintFor(err error) string {
	var hinted *hintedError
	if errors.As(err, &hinted) {
		return hinted.hint
	}

	switch {
	case errors.Is(err, mdsite.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, mdsite.ErrUnknownTheme):
		return hints.ForUnknownTheme(mdsite.Themes())
	case errors.Is(err, mdsite.ErrNodeNotSupported):
		return hints.ForUnsupportedNode()
	case errors.Is(err, mdsite.ErrNoHeadings),
		errors.Is(err, mdsite.ErrFirstHeadingNotTitle),
		errors.Is(err, mdsite.ErrManyTitles),
		errors.Is(err, mdsite.ErrHeaderTooDeep):
		return hints.ForPageStructure()
	case errors.Is(err, mdsite.ErrWritePage), errors.Is(err, ErrWritePDF):
		return hints.ForOutputDirectory()
	}
	return ""
}

// configHint wraps a config lookup failure with the locations that would
// have been picked up without --config.
func configHint(err error, siteRoot string) error {
	if errors.Is(err, config.ErrConfigNotFound) {
		return withHint(err, hints.ForConfigNotFound(config.SearchPaths(siteRoot)))
	}
	return err
}

// listenHint wraps a listener failure on addr.
func listenHint(err error, addr string) error {
	if errors.Is(err, syscall.EADDRINUSE) {
		return withHint(err, hints.ForPortInUse(addr))
	}
	return err
}
