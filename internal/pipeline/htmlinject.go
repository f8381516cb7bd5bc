package pipeline

import (
	"strings"
)

// InjectStyle adds css to a page as a <style> element, scoped to media when
// media is not empty (the printer passes "print").
// The block goes before </head>, else right after <body ...>, else in front
// of the content. Returns page unchanged when css is empty.
func InjectStyle(page, css, media string) string {
	if strings.TrimSpace(css) == "" {
		return page
	}

	var block strings.Builder
	block.WriteString("<style")
	if media != "" {
		block.WriteString(` media="`)
		block.WriteString(strings.ReplaceAll(media, `"`, ""))
		block.WriteString(`"`)
	}
	block.WriteString(">")
	block.WriteString(sanitizeCSS(css))
	block.WriteString("</style>")

	lower := strings.ToLower(page)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return page[:idx] + block.String() + page[idx:]
	}

	if idx := strings.Index(lower, "<body"); idx != -1 {
		if end := strings.IndexByte(page[idx:], '>'); end != -1 {
			pos := idx + end + 1
			return page[:pos] + block.String() + page[pos:]
		}
	}

	return block.String() + page
}

// sanitizeCSS escapes "</" so the stylesheet cannot close its <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
