package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativePaths converts relative asset and link paths in a page to
// absolute file:// URLs, so the page still resolves after being copied out of
// the build directory (the printer loads it from a temp file).
// Paths are resolved against baseDir and must stay under rootDir; anything
// that escapes rootDir is left untouched. If baseDir is empty, returns the
// HTML unchanged.
//
// Rewrites:
//   - img[src]: images embedded through raw HTML
//   - link[href]: the site stylesheet
//   - a[href]: links to other pages, keeping any #fragment
//
// Does NOT rewrite:
//   - script[src] (security)
//   - srcset attributes and CSS url() references
//   - Absolute paths, URLs and bare anchors (already resolved)
func RewriteRelativePaths(htmlContent, baseDir, rootDir string) (string, error) {
	if baseDir == "" {
		return htmlContent, nil
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	absRoot := absBase
	if rootDir != "" {
		if absRoot, err = filepath.Abs(rootDir); err != nil {
			return "", err
		}
	}

	// Parse HTML - detect if full document or fragment
	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	rewriteNode(doc, absBase, absRoot)

	return renderHTML(doc, isFragment)
}

// parseHTML parses HTML content, handling both full documents and fragments.
// Returns the parsed node, whether it was a fragment, and any error.
func parseHTML(content string) (*html.Node, bool, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	// Full document: starts with <!DOCTYPE or <html
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	// Fragment: parse with body context to avoid wrapping
	nodes, err := html.ParseFragment(strings.NewReader(content), &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	})
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders the document back to string.
// For fragments, only renders the children (avoids adding <html><body> wrapper).
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder

	if isFragment {
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func rewriteNode(n *html.Node, baseDir, rootDir string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", baseDir, rootDir)
		case atom.Link, atom.A:
			rewriteAttr(n, "href", baseDir, rootDir)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, baseDir, rootDir)
	}
}

// rewriteAttr rewrites a single attribute if it holds a relative path.
func rewriteAttr(n *html.Node, attrName, baseDir, rootDir string) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativePath(attr.Val) {
			continue
		}

		path, fragment, _ := strings.Cut(attr.Val, "#")
		path, _, _ = strings.Cut(path, "?")
		absPath := filepath.Join(baseDir, filepath.FromSlash(path))

		// Security: validate path is under rootDir (prevent traversal)
		if !isPathUnderDir(absPath, rootDir) {
			continue
		}

		n.Attr[i].Val = pathToFileURL(absPath, fragment)
	}
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}

	// Any scheme (http:, https:, file:, data:, mailto:) is already resolved.
	if u, err := url.Parse(path); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		return false
	}

	return !filepath.IsAbs(path) && !strings.HasPrefix(path, "/")
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
// Handles both Unix and Windows paths correctly.
func pathToFileURL(absPath, fragment string) string {
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(absPath),
		Fragment: fragment,
	}
	return u.String()
}
