package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/k0kubun/pp"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/mdast"
)

// inspectFlags holds flags for the inspect command.
type inspectFlags struct {
	toc bool
}

func parseInspectFlags(args []string, env *Environment) (*inspectFlags, []string, error) {
	f := &inspectFlags{}
	fs := newFlagSet("inspect", env.Stderr, printInspectUsage)
	fs.BoolVar(&f.toc, "toc", false, "print the table of contents instead of the tree")

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

var disableColor sync.Once

// nodeView is the printed form of an mdast node: kind names instead of
// numbers and only the attributes the kind uses.
type nodeView struct {
	Kind     string
	Attrs    []string
	Children []*nodeView
}

func viewOf(n *mdast.Node) *nodeView {
	v := &nodeView{Kind: n.Kind.String()}
	attr := func(name, value string) {
		v.Attrs = append(v.Attrs, name+"="+value)
	}

	if n.Value != "" {
		attr("value", strconv.Quote(n.Value))
	}
	if n.Kind == mdast.KindHeading {
		attr("depth", strconv.Itoa(n.Depth))
	}
	if n.URL != "" {
		attr("url", n.URL)
	}
	if n.Title != "" {
		attr("title", strconv.Quote(n.Title))
	}
	if n.Lang != "" {
		attr("lang", n.Lang)
	}
	if n.Kind == mdast.KindList {
		attr("ordered", strconv.FormatBool(n.Ordered))
		if n.Ordered {
			attr("start", strconv.Itoa(n.Start))
		}
	}
	if n.Checked != nil {
		attr("checked", strconv.FormatBool(*n.Checked))
	}
	for i, a := range n.Align {
		attr("align"+strconv.Itoa(i), a.String())
	}
	if n.Identifier != "" {
		attr("id", n.Identifier)
	}

	for _, c := range n.Children {
		v.Children = append(v.Children, viewOf(c))
	}
	return v
}

func runInspect(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseInspectFlags(args, env)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: inspect takes exactly one markdown file", ErrUsage)
	}

	data, err := os.ReadFile(positional[0]) // #nosec G304 -- user-provided input
	if err != nil {
		return fmt.Errorf("%w: %w", mdsite.ErrReadSource, err)
	}
	doc, err := mdsite.Parse(ctx, string(data))
	if err != nil {
		return err
	}

	disableColor.Do(func() { pp.ColoringEnabled = false })

	if f.toc {
		toc, err := mdsite.BuildTOC(doc.Root)
		if err != nil {
			return err
		}
		_, err = pp.Fprintln(env.Stdout, toc)
		return err
	}
	_, err = pp.Fprintln(env.Stdout, viewOf(doc.Root))
	return err
}
