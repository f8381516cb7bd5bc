// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-mdsite/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing the print timeout.
func ForTimeout() string {
	return format("for large pages, use --timeout or print.timeout in the site config")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests the first default location, which the site picks up without
// --config.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "check the --config path"
	if len(searchedPaths) > 0 {
		hint += " or create " + searchedPaths[0]
	}
	return format(hint)
}

// ForUnknownTheme lists the available highlighting themes.
func ForUnknownTheme(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available themes: " + strings.Join(available, ", "))
}

// ForPageStructure returns hints for pages whose heading outline cannot be
// published.
func ForPageStructure() string {
	return format("start the page with a single level 1 heading (# Title); use ## and deeper for sections")
}

// ForUnsupportedNode returns hints for Markdown constructs the renderer
// refuses, such as images.
func ForUnsupportedNode() string {
	return format("embed images and other unsupported elements with raw HTML, e.g. <img src=\"...\">")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForPortInUse returns hints for a dev server that cannot listen.
func ForPortInUse(addr string) string {
	return format("another process is using " + addr + "; pick one with --addr")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
