package assets

import (
	"fmt"
	"html/template"
	"time"

	"github.com/dustin/go-humanize"
)

// Layouts holds the parsed page templates and the site stylesheet.
type Layouts struct {
	Post  *template.Template
	Index *template.Template
	Style string
}

// Funcs are available to every layout.
var Funcs = template.FuncMap{
	// since renders a relative time such as "3 days ago".
	"since": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return humanize.Time(t)
	},
	"join": func(sep string, items []string) string {
		out := ""
		for i, s := range items {
			if i > 0 {
				out += sep
			}
			out += s
		}
		return out
	},
}

// LoadLayouts loads and parses the post and index layouts and the
// stylesheet from loader.
func LoadLayouts(loader AssetLoader) (*Layouts, error) {
	post, err := parseLayout(loader, PostLayout)
	if err != nil {
		return nil, err
	}
	index, err := parseLayout(loader, IndexLayout)
	if err != nil {
		return nil, err
	}
	style, err := loader.LoadStyle(StyleName)
	if err != nil {
		return nil, err
	}
	return &Layouts{Post: post, Index: index, Style: style}, nil
}

func parseLayout(loader AssetLoader, name string) (*template.Template, error) {
	src, err := loader.LoadLayout(name)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(name).Funcs(Funcs).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s.html: %v", ErrLayoutParse, name, err)
	}
	return tmpl, nil
}
