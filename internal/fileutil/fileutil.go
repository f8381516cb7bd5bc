// Package fileutil provides file discovery and path helpers for site builds.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrNotMarkdown            = errors.New("file must have .md or .markdown extension")
)

// markdownExtensions lists the extensions of source files, preferred first.
var markdownExtensions = []string{".md", ".markdown"}

// IsMarkdown reports whether p has a markdown extension.
func IsMarkdown(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	for _, want := range markdownExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

// ValidateMarkdownExtension checks that p is a markdown source file name.
func ValidateMarkdownExtension(p string) error {
	if !IsMarkdown(p) {
		return fmt.Errorf("%w: got %q", ErrNotMarkdown, filepath.Ext(p))
	}
	return nil
}

// IsHiddenDir reports whether a directory name is excluded from discovery:
// names starting with "_" (site internals) or "." (dotfiles, VCS).
func IsHiddenDir(name string) bool {
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}

// DiscoverMarkdown walks root and returns the slash-separated paths, relative
// to root, of every markdown file. Hidden directories and the directories in
// skip (absolute or relative to root) are not entered. Results are sorted.
func DiscoverMarkdown(root string, skip ...string) ([]string, error) {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		if s == "" {
			continue
		}
		if !filepath.IsAbs(s) {
			s = filepath.Join(root, s)
		}
		skipped[filepath.Clean(s)] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", p, err)
		}
		if d.IsDir() {
			if p != root && (IsHiddenDir(d.Name()) || skipped[filepath.Clean(p)]) {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsMarkdown(p) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// HTMLPath maps a markdown source path to its page path: "posts/a.md" ->
// "posts/a.html".
func HTMLPath(source string) string {
	return strings.TrimSuffix(source, path.Ext(source)) + ".html"
}

// MarkdownCandidates maps a page path back to the source paths that may
// produce it, in lookup order: "posts/a.html" -> "posts/a.md",
// "posts/a.markdown".
func MarkdownCandidates(page string) []string {
	base := strings.TrimSuffix(page, path.Ext(page))
	out := make([]string, len(markdownExtensions))
	for i, ext := range markdownExtensions {
		out[i] = base + ext
	}
	return out
}

// WriteFile writes data to p, creating parent directories.
func WriteFile(p string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil { // #nosec G306 -- site output is meant to be world-readable
		return fmt.Errorf("writing %s: %w", p, err)
	}
	return nil
}

// WriteTempFile creates a temporary file with the given content and extension.
// Returns the file path and a cleanup function to remove the file.
func WriteTempFile(content, extension string) (p string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp("", "mdsite-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	p = tmpFile.Name()
	cleanup = func() { _ = os.Remove(p) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return p, cleanup, nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(p string) bool {
	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
