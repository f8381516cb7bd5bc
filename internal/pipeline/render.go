package pipeline

import (
	"html"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alnah/go-mdsite/internal/highlight"
	"github.com/alnah/go-mdsite/internal/mdast"
	"github.com/alnah/go-mdsite/internal/slug"
)

// fallbackBackground is used for plain code blocks when the theme defines no
// background color.
const fallbackBackground = "#2b303b"

var headingTags = [6]string{"h1", "h2", "h3", "h4", "h5", "h6"}

// Renderer turns an mdast tree into HTML fragments.
// A Renderer holds no mutable state and is safe for concurrent use.
type Renderer struct {
	syntaxes *highlight.SyntaxSet
	logger   *slog.Logger
}

// NewRenderer creates a Renderer. A nil syntaxes renders every code block
// plain. A nil logger discards warnings.
func NewRenderer(syntaxes *highlight.SyntaxSet, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Renderer{syntaxes: syntaxes, logger: logger}
}

// Render returns the HTML fragments for node and its descendants, in
// document order. On error no fragments are returned.
func (r *Renderer) Render(node *mdast.Node) ([]string, error) {
	var fragments []string
	if err := r.render(node, &fragments); err != nil {
		return nil, err
	}
	return fragments, nil
}

// RenderString is Render with the fragments concatenated.
func (r *Renderer) RenderString(node *mdast.Node) (string, error) {
	fragments, err := r.Render(node)
	if err != nil {
		return "", err
	}
	return strings.Join(fragments, ""), nil
}

func (r *Renderer) render(node *mdast.Node, out *[]string) error {
	if node == nil {
		return ErrInternal
	}

	switch node.Kind {
	case mdast.KindRoot:
		return r.children(node, out)

	case mdast.KindText, mdast.KindHTML:
		*out = append(*out, node.Value)
		return nil

	case mdast.KindInlineCode:
		*out = append(*out, "<code>", html.EscapeString(node.Value), "</code>")
		return nil

	case mdast.KindEmphasis:
		return r.wrap("<em>", node, "</em>", out)
	case mdast.KindStrong:
		return r.wrap("<strong>", node, "</strong>", out)
	case mdast.KindDelete:
		return r.wrap("<del>", node, "</del>", out)
	case mdast.KindParagraph:
		return r.wrap("<p>", node, "</p>", out)
	case mdast.KindBlockQuote:
		return r.wrap("<blockquote>", node, "</blockquote>", out)

	case mdast.KindBreak:
		*out = append(*out, "<br />")
		return nil
	case mdast.KindThematicBreak:
		*out = append(*out, "<hr />")
		return nil

	case mdast.KindLink:
		*out = append(*out, `<a href="`, html.EscapeString(node.URL))
		if node.Title != "" {
			*out = append(*out, `" title="`, html.EscapeString(node.Title))
		}
		*out = append(*out, `">`)
		if err := r.children(node, out); err != nil {
			return err
		}
		*out = append(*out, "</a>")
		return nil

	case mdast.KindList:
		return r.list(node, out)

	case mdast.KindListItem:
		*out = append(*out, "<li>")
		if node.Checked != nil {
			if *node.Checked {
				*out = append(*out, `<input type="checkbox" checked="" disabled="" /> `)
			} else {
				*out = append(*out, `<input type="checkbox" disabled="" /> `)
			}
		}
		if err := r.children(node, out); err != nil {
			return err
		}
		*out = append(*out, "</li>")
		return nil

	case mdast.KindHeading:
		if node.Depth < 1 || node.Depth > len(headingTags) {
			return ErrHeaderTooDeep
		}
		tag := headingTags[node.Depth-1]
		*out = append(*out, "<", tag, ` id="`, html.EscapeString(HeadingID(node)), `">`)
		if err := r.children(node, out); err != nil {
			return err
		}
		*out = append(*out, "</", tag, ">")
		return nil

	case mdast.KindCode:
		*out = append(*out, r.code(node))
		return nil

	case mdast.KindTable:
		return r.table(node, out)

	case mdast.KindTableRow, mdast.KindTableCell:
		// Only reachable through a Table.
		return ErrInternal

	case mdast.KindFootnoteReference:
		if node.Label == "" {
			*out = append(*out, node.Identifier)
			return nil
		}
		*out = append(*out,
			`<sup><a href="#`, html.EscapeString(slug.Make(node.Label)), `">`,
			html.EscapeString(node.Identifier),
			"</a></sup>",
		)
		return nil

	case mdast.KindFootnoteDefinition:
		label := node.Label
		if label == "" {
			label = node.Identifier
		}
		*out = append(*out,
			`<div class="footnote-definition" id="`, html.EscapeString(slug.Make(label)), `">`,
			`<div class="footnote-definition-label">`, html.EscapeString(label), "</div>",
		)
		if err := r.children(node, out); err != nil {
			return err
		}
		*out = append(*out, "</div>")
		return nil

	case mdast.KindYaml, mdast.KindToml:
		return nil

	default:
		return &UnsupportedNodeError{Kind: node.Kind}
	}
}

func (r *Renderer) children(node *mdast.Node, out *[]string) error {
	for _, child := range node.Children {
		if err := r.render(child, out); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) wrap(open string, node *mdast.Node, closing string, out *[]string) error {
	*out = append(*out, open)
	if err := r.children(node, out); err != nil {
		return err
	}
	*out = append(*out, closing)
	return nil
}

func (r *Renderer) list(node *mdast.Node, out *[]string) error {
	if !node.Ordered {
		return r.wrap("<ul>", node, "</ul>", out)
	}
	if node.Start != 1 {
		*out = append(*out, `<ol start="`+strconv.Itoa(node.Start)+`">`)
	} else {
		*out = append(*out, "<ol>")
	}
	if err := r.children(node, out); err != nil {
		return err
	}
	*out = append(*out, "</ol>")
	return nil
}

// code highlights a Code block, falling back to a plain block when the block
// has no language or the highlighter fails.
func (r *Renderer) code(node *mdast.Node) string {
	if node.Lang != "" && r.syntaxes != nil {
		highlighted, err := r.syntaxes.Highlight(node.Value, node.Lang)
		if err == nil {
			return highlighted
		}
		r.logger.Warn("highlighting failed, using plain block", "lang", node.Lang, "error", err)
	} else if node.Lang != "" {
		r.logger.Warn("no syntax set loaded, using plain block", "lang", node.Lang)
	}
	return plainCodeBlock(node.Value, r.background())
}

func (r *Renderer) background() string {
	if r.syntaxes != nil {
		if bg := r.syntaxes.Background(); bg != "" {
			return bg
		}
	}
	return fallbackBackground
}

func plainCodeBlock(value, background string) string {
	return `<pre style="background-color:` + background + `;"><code>` +
		html.EscapeString(value) + "</code></pre>"
}

// table renders the header row then the body rows. Every row must be a
// TableRow holding exactly one TableCell per column alignment.
func (r *Renderer) table(node *mdast.Node, out *[]string) error {
	if len(node.Children) == 0 {
		return ErrInternal
	}

	*out = append(*out, "<table><thead><tr>")
	if err := r.row(node.Children[0], node.Align, "th", out); err != nil {
		return err
	}
	*out = append(*out, "</tr></thead><tbody>")
	for _, row := range node.Children[1:] {
		*out = append(*out, "<tr>")
		if err := r.row(row, node.Align, "td", out); err != nil {
			return err
		}
		*out = append(*out, "</tr>")
	}
	*out = append(*out, "</tbody></table>")
	return nil
}

func (r *Renderer) row(row *mdast.Node, align []mdast.Align, tag string, out *[]string) error {
	if row == nil || row.Kind != mdast.KindTableRow || len(row.Children) != len(align) {
		return ErrInternal
	}

	for i, cell := range row.Children {
		if cell == nil || cell.Kind != mdast.KindTableCell {
			return ErrInternal
		}
		if a := align[i]; a != mdast.AlignNone {
			*out = append(*out, "<"+tag+" align='"+a.String()+"'>")
		} else {
			*out = append(*out, "<"+tag+">")
		}
		if err := r.children(cell, out); err != nil {
			return err
		}
		*out = append(*out, "</"+tag+">")
	}
	return nil
}
