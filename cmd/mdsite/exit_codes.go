package main

import (
	"errors"
	"os"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/config"
)

// Exit codes for the mdsite CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or print settings
	ExitIO      = 3 // File not found, permission denied, write failure
	ExitBrowser = 4 // Browser/Chrome errors
	ExitContent = 5 // A page cannot be published as written
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mdsite.ErrBrowserConnect) ||
		errors.Is(err, mdsite.ErrPageCreate) ||
		errors.Is(err, mdsite.ErrPageLoad) ||
		errors.Is(err, mdsite.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Content errors (exit 5)
	if mdsite.IsStructural(err) {
		return ExitContent
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdsite.ErrInvalidPrint) ||
		errors.Is(err, mdsite.ErrUnknownTheme) ||
		errors.Is(err, mdsite.ErrSyntaxDefinition) ||
		errors.Is(err, mdsite.ErrLayoutParse) ||
		errors.Is(err, mdsite.ErrNotMarkdown) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, os.ErrExist) ||
		errors.Is(err, mdsite.ErrReadSource) ||
		errors.Is(err, mdsite.ErrWritePage) ||
		errors.Is(err, mdsite.ErrSyntaxDirectory) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWritePDF) {
		return ExitIO
	}

	return ExitGeneral
}
