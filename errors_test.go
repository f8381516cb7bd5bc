package mdsite

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/alnah/go-mdsite/internal/mdast"
)

func TestIsStructural(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"no headings", ErrNoHeadings, true},
		{"wrapped first heading", fmt.Errorf("a.md: %w", ErrFirstHeadingNotTitle), true},
		{"many titles", &ManyTitlesError{SecondTitle: "Two"}, true},
		{"unsupported node", &UnsupportedNodeError{Kind: mdast.KindImage}, true},
		{"parse error", &ParseError{Message: "bad"}, true},
		{"frontmatter", fmt.Errorf("%w: bad date", ErrFrontmatter), true},
		{"joined with build failure", errors.Join(ErrBuildFailed, ErrHeaderTooDeep), true},
		{"unknown language is absorbed, not structural", &UnknownLangError{Lang: "x"}, false},
		{"io", fmt.Errorf("%w: %w", ErrReadSource, os.ErrNotExist), false},
		{"browser", ErrBrowserConnect, false},
	}

	for _, tt := range tests {
		if got := IsStructural(tt.err); got != tt.want {
			t.Errorf("IsStructural(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
