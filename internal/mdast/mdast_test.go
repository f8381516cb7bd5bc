package mdast

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

func parse(t *testing.T, src string) *Node {
	t.Helper()

	md := goldmark.New(goldmark.WithExtensions(extension.GFM, extension.Footnote))
	source := []byte(src)
	root, err := FromGoldmark(md.Parser().Parse(text.NewReader(source)), source)
	if err != nil {
		t.Fatalf("FromGoldmark() unexpected error: %v", err)
	}
	return root
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want string
	}{
		{KindRoot, "Root"},
		{KindHeading, "Heading"},
		{KindHTML, "Html"},
		{KindFootnoteDefinition, "FootnoteDefinition"},
		{KindMdxJsxTextElement, "MdxJsxTextElement"},
		{Kind(-1), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestAlign_String(t *testing.T) {
	t.Parallel()

	for align, want := range map[Align]string{
		AlignNone:   "none",
		AlignLeft:   "left",
		AlignRight:  "right",
		AlignCenter: "center",
	} {
		if got := align.String(); got != want {
			t.Errorf("Align(%d).String() = %q, want %q", int(align), got, want)
		}
	}
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node *Node
		want string
	}{
		{name: "nil", node: nil, want: ""},
		{name: "text", node: NewText("hello"), want: "hello"},
		{
			name: "nested markup is dropped",
			node: NewHeading(2,
				NewText("Hello "),
				NewContainer(KindStrong, NewContainer(KindEmphasis, NewText("big"))),
				NewText(" "),
				&Node{Kind: KindInlineCode, Value: "world"},
			),
			want: "Hello big world",
		},
		{
			name: "link text without url",
			node: &Node{Kind: KindLink, URL: "https://go.dev", Children: []*Node{NewText("Go")}},
			want: "Go",
		},
		{
			name: "raw html contributes its value",
			node: NewContainer(KindParagraph, &Node{Kind: KindHTML, Value: "<br>"}, NewText("x")),
			want: "<br>x",
		},
		{
			name: "break contributes nothing",
			node: NewContainer(KindParagraph, NewText("a"), &Node{Kind: KindBreak}, NewText("b")),
			want: "ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := PlainText(tt.node); got != tt.want {
				t.Errorf("PlainText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	t.Parallel()

	tree := NewContainer(KindRoot,
		NewContainer(KindBlockQuote, NewContainer(KindParagraph, &Node{Kind: KindDefinition})),
	)

	if !tree.Contains(KindDefinition) {
		t.Error("Contains(Definition) = false, want true for a nested node")
	}
	if !tree.Contains(KindRoot) {
		t.Error("Contains(Root) = false, want true for the node itself")
	}
	if tree.Contains(KindImage) {
		t.Error("Contains(Image) = true, want false")
	}
	var nilNode *Node
	if nilNode.Contains(KindRoot) {
		t.Error("nil.Contains() = true, want false")
	}
}

func TestIsHeading(t *testing.T) {
	t.Parallel()

	var nilNode *Node
	if nilNode.IsHeading() {
		t.Error("nil.IsHeading() = true, want false")
	}
	if !NewHeading(3).IsHeading() {
		t.Error("heading.IsHeading() = false, want true")
	}
	if NewText("x").IsHeading() {
		t.Error("text.IsHeading() = true, want false")
	}
}

// ---------------------------------------------------------------------------
// TestFromGoldmark - Node Mapping
// ---------------------------------------------------------------------------

func TestFromGoldmark(t *testing.T) {
	t.Parallel()

	checked := true

	tests := []struct {
		name string
		src  string
		want *Node
	}{
		{
			name: "heading and paragraph",
			src:  "# Title\n\nHello *world*.\n",
			want: NewContainer(KindRoot,
				NewHeading(1, NewText("Title")),
				NewContainer(KindParagraph,
					NewText("Hello "),
					NewContainer(KindEmphasis, NewText("world")),
					NewText("."),
				),
			),
		},
		{
			name: "strong and strikethrough",
			src:  "**a** ~~b~~\n",
			want: NewContainer(KindRoot,
				NewContainer(KindParagraph,
					NewContainer(KindStrong, NewText("a")),
					NewText(" "),
					NewContainer(KindDelete, NewText("b")),
				),
			),
		},
		{
			name: "inline code",
			src:  "`x := 1`\n",
			want: NewContainer(KindRoot,
				NewContainer(KindParagraph, &Node{Kind: KindInlineCode, Value: "x := 1"}),
			),
		},
		{
			name: "link with title",
			src:  "[Go](https://go.dev \"Go\")\n",
			want: NewContainer(KindRoot,
				NewContainer(KindParagraph,
					&Node{Kind: KindLink, URL: "https://go.dev", Title: "Go", Children: []*Node{NewText("Go")}},
				),
			),
		},
		{
			name: "image",
			src:  "![cat](cat.png)\n",
			want: NewContainer(KindRoot,
				NewContainer(KindParagraph,
					&Node{Kind: KindImage, URL: "cat.png", Children: []*Node{NewText("cat")}},
				),
			),
		},
		{
			name: "fenced code",
			src:  "```go\na\nb\n```\n",
			want: NewContainer(KindRoot, &Node{Kind: KindCode, Lang: "go", Value: "a\nb"}),
		},
		{
			name: "blockquote",
			src:  "> quoted\n",
			want: NewContainer(KindRoot,
				NewContainer(KindBlockQuote, NewContainer(KindParagraph, NewText("quoted"))),
			),
		},
		{
			name: "html block",
			src:  "<div>\nhi\n</div>\n",
			want: NewContainer(KindRoot, &Node{Kind: KindHTML, Value: "<div>\nhi\n</div>"}),
		},
		{
			name: "ordered list",
			src:  "2. a\n3. b\n",
			want: NewContainer(KindRoot,
				&Node{Kind: KindList, Ordered: true, Start: 2, Children: []*Node{
					NewContainer(KindListItem, NewContainer(KindParagraph, NewText("a"))),
					NewContainer(KindListItem, NewContainer(KindParagraph, NewText("b"))),
				}},
			),
		},
		{
			name: "task list item",
			src:  "- [x] done\n",
			want: NewContainer(KindRoot,
				&Node{Kind: KindList, Children: []*Node{
					{Kind: KindListItem, Checked: &checked, Children: []*Node{
						NewContainer(KindParagraph, NewText(" done")),
					}},
				}},
			),
		},
		{
			name: "table",
			src:  "| a | b |\n|:-:|---|\n| 1 | 2 |\n",
			want: NewContainer(KindRoot,
				&Node{Kind: KindTable, Align: []Align{AlignCenter, AlignNone}, Children: []*Node{
					NewContainer(KindTableRow,
						NewContainer(KindTableCell, NewText("a")),
						NewContainer(KindTableCell, NewText("b")),
					),
					NewContainer(KindTableRow,
						NewContainer(KindTableCell, NewText("1")),
						NewContainer(KindTableCell, NewText("2")),
					),
				}},
			),
		},
		{
			name: "link reference definition",
			src:  "see [x][y]\n\n[y]: http://a\n",
			want: NewContainer(KindRoot,
				NewContainer(KindParagraph,
					NewText("see "),
					&Node{Kind: KindLink, URL: "http://a", Children: []*Node{NewText("x")}},
				),
				&Node{Kind: KindDefinition},
			),
		},
		{
			name: "footnote",
			src:  "x[^Note]\n\n[^Note]: body\n",
			want: NewContainer(KindRoot,
				NewContainer(KindParagraph,
					NewText("x"),
					&Node{Kind: KindFootnoteReference, Identifier: "note", Label: "Note"},
				),
				&Node{Kind: KindFootnoteDefinition, Identifier: "note", Label: "Note", Children: []*Node{
					NewContainer(KindParagraph, NewText("body")),
				}},
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, parse(t, tt.src)); diff != "" {
				t.Errorf("FromGoldmark() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromGoldmark_UnknownNode(t *testing.T) {
	t.Parallel()

	doc := gast.NewDocument()
	doc.AppendChild(doc, &unknownBlock{})

	_, err := FromGoldmark(doc, nil)
	if !errors.Is(err, ErrUnknownNode) {
		t.Errorf("FromGoldmark() error = %v, want ErrUnknownNode", err)
	}
}

var kindUnknownBlock = gast.NewNodeKind("UnknownBlock")

type unknownBlock struct {
	gast.BaseBlock
}

func (n *unknownBlock) Kind() gast.NodeKind { return kindUnknownBlock }

func (n *unknownBlock) Dump(source []byte, level int) {
	gast.DumpHelper(n, source, level, nil, nil)
}

func TestNormalizeIdentifier(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"note":        "note",
		"A Note":      "a note",
		"  many   ws": "many ws",
	}
	for in, want := range tests {
		if got := normalizeIdentifier(in); got != want {
			t.Errorf("normalizeIdentifier(%q) = %q, want %q", in, got, want)
		}
	}
}
