package pipeline

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ellipsis marks a summary that was cut short.
const Ellipsis = "…"

// FirstParagraphText returns the text of the first <p> in an HTML fragment,
// whitespace collapsed and cut at maxRunes (0 means no limit). Paragraphs
// nested in footnote definitions and blockquotes are skipped.
func FirstParagraphText(fragment string, maxRunes int) string {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return ""
	}

	for _, n := range nodes {
		if p := findParagraph(n); p != nil {
			return truncateRunes(collapseSpace(textContent(p)), maxRunes)
		}
	}
	return ""
}

func findParagraph(n *html.Node) *html.Node {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.P:
			return n
		case atom.Blockquote, atom.Script, atom.Style, atom.Pre:
			return nil
		case atom.Div:
			if hasClass(n, "footnote-definition") {
				return nil
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if p := findParagraph(c); p != nil {
			return p
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, c := range strings.Fields(attr.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateRunes cuts s to at most limit runes, ending on a word boundary when
// one is available, and appends Ellipsis.
func truncateRunes(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)
	cut := string(runes[:limit])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + Ellipsis
}
