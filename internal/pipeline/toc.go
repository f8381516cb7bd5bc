package pipeline

import (
	"html"
	"strings"

	"github.com/alnah/go-mdsite/internal/mdast"
	"github.com/alnah/go-mdsite/internal/slug"
)

// TOCEntry is one heading in a document outline.
// The root entry is the document title (depth 1). Every child is strictly
// deeper than its parent.
type TOCEntry struct {
	Depth    int
	Name     string
	Children []*TOCEntry
}

// HeadingLabel returns the flattened text of a heading. The same label feeds
// the TOC entry name and the heading's anchor id.
func HeadingLabel(heading *mdast.Node) string {
	return mdast.PlainText(heading)
}

// HeadingID returns the anchor id of a heading.
func HeadingID(heading *mdast.Node) string {
	return slug.Make(HeadingLabel(heading))
}

// BuildTOC derives the outline of a document from the headings directly under
// root. The first heading must be the only level 1 heading.
func BuildTOC(root *mdast.Node) (*TOCEntry, error) {
	if root == nil || root.Kind != mdast.KindRoot {
		return nil, ErrInvalidRoot
	}

	var headings []*mdast.Node
	for _, child := range root.Children {
		if child.IsHeading() {
			headings = append(headings, child)
		}
	}

	if len(headings) == 0 {
		return nil, ErrNoHeadings
	}
	title := headings[0]
	if title.Depth != 1 {
		return nil, ErrFirstHeadingNotTitle
	}

	stack := []*TOCEntry{{Depth: title.Depth, Name: HeadingLabel(title)}}

	for _, heading := range headings[1:] {
		for stack[len(stack)-1].Depth >= heading.Depth {
			child := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return nil, &ManyTitlesError{SecondTitle: HeadingLabel(heading)}
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, child)
		}
		stack = append(stack, &TOCEntry{Depth: heading.Depth, Name: HeadingLabel(heading)})
	}

	// Fold what is left, deepest first.
	for len(stack) > 1 {
		child := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, child)
	}

	return stack[0], nil
}

// HTML renders the entry's children as nested ordered lists linking to the
// heading anchors. Returns false when the entry has no children.
func (e *TOCEntry) HTML() (string, bool) {
	if e == nil || len(e.Children) == 0 {
		return "", false
	}

	var buf strings.Builder
	e.writeChildren(&buf)
	return buf.String(), true
}

func (e *TOCEntry) writeChildren(buf *strings.Builder) {
	buf.WriteString("<ol>")
	for _, child := range e.Children {
		buf.WriteString(`<li><a href="#`)
		buf.WriteString(html.EscapeString(slug.Make(child.Name)))
		buf.WriteString(`">`)
		// Labels keep raw HTML, matching how heading text is rendered.
		buf.WriteString(child.Name)
		buf.WriteString("</a></li>")
		if len(child.Children) > 0 {
			child.writeChildren(buf)
		}
	}
	buf.WriteString("</ol>")
}
