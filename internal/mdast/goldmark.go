package mdast

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	gast "github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"
)

// ErrUnknownNode indicates goldmark produced a node kind with no mdast mapping.
var ErrUnknownNode = errors.New("no mdast mapping for goldmark node")

// FromGoldmark converts a goldmark document into an mdast tree.
// source must be the exact byte slice goldmark parsed, since goldmark nodes
// only hold segments into it.
func FromGoldmark(doc gast.Node, source []byte) (*Node, error) {
	c := &converter{source: source, footnoteRefs: make(map[int]string)}
	c.collectFootnotes(doc)

	nodes, err := c.convert(doc)
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 {
		return nil, fmt.Errorf("%w: document converted to %d nodes", ErrUnknownNode, len(nodes))
	}
	return nodes[0], nil
}

type converter struct {
	source       []byte
	footnoteRefs map[int]string // footnote index -> original label
}

// collectFootnotes records the labels of all footnote definitions so that
// references, which goldmark numbers by index, can carry their label.
func (c *converter) collectFootnotes(doc gast.Node) {
	_ = gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		if fn, ok := n.(*extast.Footnote); ok {
			c.footnoteRefs[fn.Index] = string(fn.Ref)
		}
		return gast.WalkContinue, nil
	})
}

func (c *converter) children(n gast.Node) ([]*Node, error) {
	var out []*Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		nodes, err := c.convert(child)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}

func (c *converter) container(k Kind, n gast.Node) ([]*Node, error) {
	children, err := c.children(n)
	if err != nil {
		return nil, err
	}
	return []*Node{{Kind: k, Children: children}}, nil
}

func (c *converter) convert(n gast.Node) ([]*Node, error) {
	switch n := n.(type) {
	case *gast.Document:
		return c.container(KindRoot, n)
	case *gast.Paragraph, *gast.TextBlock:
		// goldmark keeps an empty block where link reference definitions
		// were consumed.
		if n.Lines().Len() == 0 && !n.HasChildren() {
			return []*Node{{Kind: KindDefinition}}, nil
		}
		return c.container(KindParagraph, n)
	case *gast.Heading:
		children, err := c.children(n)
		if err != nil {
			return nil, err
		}
		return []*Node{NewHeading(n.Level, children...)}, nil
	case *gast.ThematicBreak:
		return []*Node{{Kind: KindThematicBreak}}, nil
	case *gast.CodeBlock:
		return []*Node{{Kind: KindCode, Value: c.lines(n)}}, nil
	case *gast.FencedCodeBlock:
		return []*Node{{Kind: KindCode, Lang: string(n.Language(c.source)), Value: c.lines(n)}}, nil
	case *gast.Blockquote:
		return c.container(KindBlockQuote, n)
	case *gast.List:
		children, err := c.children(n)
		if err != nil {
			return nil, err
		}
		return []*Node{{Kind: KindList, Ordered: n.IsOrdered(), Start: n.Start, Children: children}}, nil
	case *gast.ListItem:
		children, err := c.children(n)
		if err != nil {
			return nil, err
		}
		return []*Node{{Kind: KindListItem, Checked: taskState(n), Children: children}}, nil
	case *gast.HTMLBlock:
		value := c.lines(n)
		if n.HasClosure() {
			value += "\n" + string(n.ClosureLine.Value(c.source))
		}
		return []*Node{{Kind: KindHTML, Value: strings.TrimSuffix(value, "\n")}}, nil
	case *gast.Text:
		return c.text(n), nil
	case *gast.String:
		return []*Node{NewText(string(n.Value))}, nil
	case *gast.CodeSpan:
		return []*Node{{Kind: KindInlineCode, Value: c.codeSpan(n)}}, nil
	case *gast.Emphasis:
		if n.Level >= 2 {
			return c.container(KindStrong, n)
		}
		return c.container(KindEmphasis, n)
	case *gast.Link:
		children, err := c.children(n)
		if err != nil {
			return nil, err
		}
		return []*Node{{Kind: KindLink, URL: string(n.Destination), Title: string(n.Title), Children: children}}, nil
	case *gast.AutoLink:
		url := string(n.URL(c.source))
		if n.AutoLinkType == gast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
			url = "mailto:" + url
		}
		label := NewText(string(n.Label(c.source)))
		return []*Node{{Kind: KindLink, URL: url, Children: []*Node{label}}}, nil
	case *gast.Image:
		children, err := c.children(n)
		if err != nil {
			return nil, err
		}
		return []*Node{{Kind: KindImage, URL: string(n.Destination), Title: string(n.Title), Children: children}}, nil
	case *gast.RawHTML:
		var b strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(c.source))
		}
		return []*Node{{Kind: KindHTML, Value: b.String()}}, nil
	case *extast.Strikethrough:
		return c.container(KindDelete, n)
	case *extast.Table:
		children, err := c.children(n)
		if err != nil {
			return nil, err
		}
		align := make([]Align, len(n.Alignments))
		for i, a := range n.Alignments {
			align[i] = fromGoldmarkAlign(a)
		}
		return []*Node{{Kind: KindTable, Align: align, Children: children}}, nil
	case *extast.TableHeader, *extast.TableRow:
		return c.container(KindTableRow, n)
	case *extast.TableCell:
		return c.container(KindTableCell, n)
	case *extast.TaskCheckBox, *extast.FootnoteBacklink:
		// Folded into ListItem.Checked and dropped respectively.
		return nil, nil
	case *extast.FootnoteLink:
		label, ok := c.footnoteRefs[n.Index]
		if !ok {
			return []*Node{{Kind: KindFootnoteReference, Identifier: strconv.Itoa(n.Index)}}, nil
		}
		return []*Node{{Kind: KindFootnoteReference, Identifier: normalizeIdentifier(label), Label: label}}, nil
	case *extast.FootnoteList:
		return c.children(n)
	case *extast.Footnote:
		children, err := c.children(n)
		if err != nil {
			return nil, err
		}
		label := string(n.Ref)
		return []*Node{{
			Kind:       KindFootnoteDefinition,
			Identifier: normalizeIdentifier(label),
			Label:      label,
			Children:   children,
		}}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, n.Kind().String())
	}
}

// text converts a goldmark text run. A hard line break becomes a separate
// Break node; a soft break stays in the text as a newline.
func (c *converter) text(n *gast.Text) []*Node {
	value := n.Segment.Value(c.source)
	if !n.IsRaw() {
		value = util.UnescapePunctuations(value)
		value = util.ResolveNumericReferences(value)
		value = util.ResolveEntityNames(value)
	}

	text := NewText(string(value))
	switch {
	case n.HardLineBreak():
		return []*Node{text, {Kind: KindBreak}}
	case n.SoftLineBreak():
		text.Value += "\n"
	}
	return []*Node{text}
}

func (c *converter) codeSpan(n *gast.CodeSpan) string {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch t := child.(type) {
		case *gast.Text:
			value := t.Segment.Value(c.source)
			if len(value) > 0 && value[len(value)-1] == '\n' {
				b.Write(value[:len(value)-1])
				b.WriteByte(' ')
				continue
			}
			b.Write(value)
		case *gast.String:
			b.Write(t.Value)
		}
	}
	return b.String()
}

// lines joins the raw lines of a block node without the final newline.
func (c *converter) lines(n gast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(c.source))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// taskState returns the checkbox state of a task list item, or nil.
func taskState(item *gast.ListItem) *bool {
	block := item.FirstChild()
	if block == nil {
		return nil
	}
	if box, ok := block.FirstChild().(*extast.TaskCheckBox); ok {
		checked := box.IsChecked
		return &checked
	}
	return nil
}

func fromGoldmarkAlign(a extast.Alignment) Align {
	switch a {
	case extast.AlignLeft:
		return AlignLeft
	case extast.AlignRight:
		return AlignRight
	case extast.AlignCenter:
		return AlignCenter
	default:
		return AlignNone
	}
}

// normalizeIdentifier lowercases a footnote label and collapses whitespace,
// matching how CommonMark compares labels.
func normalizeIdentifier(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}
