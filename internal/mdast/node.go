// Package mdast defines the Markdown syntax tree consumed by the renderer and
// the TOC builder.
//
// The tree is a closed set of node kinds modelled as a single Node struct with
// a Kind tag. Fields that only make sense for some kinds (Depth, URL, Lang...)
// are zero for the others. Trees are built once by the parser and treated as
// read-only afterwards, so they can be shared between goroutines.
package mdast

// Kind identifies the variant of a Node.
type Kind int

// Node kinds. Kinds after KindToml are parsed but never rendered.
const (
	KindRoot Kind = iota
	KindParagraph
	KindHeading
	KindText
	KindHTML
	KindInlineCode
	KindEmphasis
	KindStrong
	KindDelete
	KindBreak
	KindLink
	KindList
	KindListItem
	KindBlockQuote
	KindTable
	KindTableRow
	KindTableCell
	KindCode
	KindThematicBreak
	KindFootnoteReference
	KindFootnoteDefinition
	KindYaml
	KindToml

	KindImage
	KindImageReference
	KindLinkReference
	KindDefinition
	KindMath
	KindInlineMath
	KindMdxjsEsm
	KindMdxFlowExpression
	KindMdxTextExpression
	KindMdxJsxFlowElement
	KindMdxJsxTextElement
)

var kindNames = map[Kind]string{
	KindRoot:               "Root",
	KindParagraph:          "Paragraph",
	KindHeading:            "Heading",
	KindText:               "Text",
	KindHTML:               "Html",
	KindInlineCode:         "InlineCode",
	KindEmphasis:           "Emphasis",
	KindStrong:             "Strong",
	KindDelete:             "Delete",
	KindBreak:              "Break",
	KindLink:               "Link",
	KindList:               "List",
	KindListItem:           "ListItem",
	KindBlockQuote:         "BlockQuote",
	KindTable:              "Table",
	KindTableRow:           "TableRow",
	KindTableCell:          "TableCell",
	KindCode:               "Code",
	KindThematicBreak:      "ThematicBreak",
	KindFootnoteReference:  "FootnoteReference",
	KindFootnoteDefinition: "FootnoteDefinition",
	KindYaml:               "Yaml",
	KindToml:               "Toml",
	KindImage:              "Image",
	KindImageReference:     "ImageReference",
	KindLinkReference:      "LinkReference",
	KindDefinition:         "Definition",
	KindMath:               "Math",
	KindInlineMath:         "InlineMath",
	KindMdxjsEsm:           "MdxjsEsm",
	KindMdxFlowExpression:  "MdxFlowExpression",
	KindMdxTextExpression:  "MdxTextExpression",
	KindMdxJsxFlowElement:  "MdxJsxFlowElement",
	KindMdxJsxTextElement:  "MdxJsxTextElement",
}

// String returns the kind name, e.g. "Heading".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Align is the alignment of a table column.
type Align int

// Column alignments.
const (
	AlignNone Align = iota
	AlignLeft
	AlignRight
	AlignCenter
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "none"
	}
}

// Node is one element of the syntax tree.
type Node struct {
	Kind     Kind
	Children []*Node

	// Value holds literal content: Text, Html, InlineCode, Code, Math,
	// InlineMath, Yaml and Toml.
	Value string

	// Depth is the heading level (1-6 for well-formed input).
	Depth int

	// URL and Title belong to Link, Image and Definition. An empty Title
	// means none.
	URL   string
	Title string

	// Lang is the info-string language of a fenced Code block. Empty means none.
	Lang string

	// Ordered and Start describe a List.
	Ordered bool
	Start   int

	// Checked is set on task list items.
	Checked *bool

	// Align holds one entry per table column.
	Align []Align

	// Identifier and Label belong to footnote and Definition nodes. An empty
	// Label means none.
	Identifier string
	Label      string
}

// NewText returns a Text node.
func NewText(value string) *Node {
	return &Node{Kind: KindText, Value: value}
}

// NewHeading returns a Heading node of the given depth.
func NewHeading(depth int, children ...*Node) *Node {
	return &Node{Kind: KindHeading, Depth: depth, Children: children}
}

// NewContainer returns a node of kind k owning children.
func NewContainer(k Kind, children ...*Node) *Node {
	return &Node{Kind: k, Children: children}
}

// IsHeading reports whether n is a Heading.
func (n *Node) IsHeading() bool {
	return n != nil && n.Kind == KindHeading
}

// Contains reports whether n or any of its descendants has kind k.
func (n *Node) Contains(k Kind) bool {
	if n == nil {
		return false
	}
	if n.Kind == k {
		return true
	}
	for _, child := range n.Children {
		if child.Contains(k) {
			return true
		}
	}
	return false
}
