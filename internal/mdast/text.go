package mdast

import "strings"

// PlainText flattens n into its text content, dropping all markup.
// Literal nodes contribute their Value; containers contribute their
// children in order. Headings use this as both TOC label and anchor source.
func PlainText(n *Node) string {
	var b strings.Builder
	writePlainText(&b, n)
	return b.String()
}

func writePlainText(b *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindText, KindHTML, KindInlineCode, KindCode, KindMath, KindInlineMath:
		b.WriteString(n.Value)
		return
	}
	for _, child := range n.Children {
		writePlainText(b, child)
	}
}
