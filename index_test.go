package mdsite

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestPageName - index page file names
// ---------------------------------------------------------------------------

func TestPageName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want string
	}{
		{0, "index.html"},
		{1, "index.html"},
		{2, "page-2.html"},
		{12, "page-12.html"},
	}

	for _, tt := range tests {
		if got := PageName(tt.n); got != tt.want {
			t.Errorf("PageName(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestParsePageName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		want   int
		wantOK bool
	}{
		{"", 1, true},
		{"index.html", 1, true},
		{"page-2.html", 2, true},
		{"page-40.html", 40, true},
		{"page-1.html", 0, false},
		{"page-0.html", 0, false},
		{"page-x.html", 0, false},
		{"page-2.htm", 0, false},
		{"about.html", 0, false},
		{"posts/index.html", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParsePageName(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParsePageName(%q) = (%d, %v), want (%d, %v)", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

// ---------------------------------------------------------------------------
// TestSortPosts - newest first, stable on ties
// ---------------------------------------------------------------------------

func TestSortPosts(t *testing.T) {
	t.Parallel()

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	posts := []PostMeta{
		{Path: "old.html", Date: day(1)},
		{Path: "undated.html"},
		{Path: "b.html", Date: day(5)},
		{Path: "a.html", Date: day(5)},
		{Path: "new.html", Date: day(9)},
	}

	SortPosts(posts)

	var got []string
	for _, p := range posts {
		got = append(got, p.Path)
	}
	want := []string{"new.html", "a.html", "b.html", "old.html", "undated.html"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SortPosts() order mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestPaginate - page splitting and links
// ---------------------------------------------------------------------------

// makePosts returns n dated posts, post-1 being the oldest.
func makePosts(n int) []PostMeta {
	posts := make([]PostMeta, n)
	for i := range posts {
		posts[i] = PostMeta{
			Path: fmt.Sprintf("post-%d.html", i+1),
			Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
		}
	}
	return posts
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		posts     int
		pageSize  int
		wantPages []int // posts per page
	}{
		{"no posts still yields one page", 0, 20, []int{0}},
		{"fits on one page", 20, 20, []int{20}},
		{"one over spills to a second page", 21, 20, []int{20, 1}},
		{"exact multiple", 6, 3, []int{3, 3}},
		{"page size one", 3, 1, []int{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pages, err := Paginate(makePosts(tt.posts), tt.pageSize)
			if err != nil {
				t.Fatalf("Paginate() unexpected error: %v", err)
			}
			var got []int
			for _, p := range pages {
				got = append(got, len(p.Posts))
			}
			if diff := cmp.Diff(tt.wantPages, got); diff != "" {
				t.Errorf("Paginate() page sizes mismatch (-want +got):\n%s", diff)
			}
			if len(pages) == 1 && pages[0].Pagination != nil {
				t.Error("single page should have no pagination")
			}
		})
	}
}

func TestPaginate_Links(t *testing.T) {
	t.Parallel()

	pages, err := Paginate(makePosts(5), 2)
	if err != nil {
		t.Fatalf("Paginate() unexpected error: %v", err)
	}

	want := []Pagination{
		{Page: 1, TotalPages: 3, First: "index.html", Next: "page-2.html", Last: "page-3.html"},
		{Page: 2, TotalPages: 3, First: "index.html", Previous: "index.html", Next: "page-3.html", Last: "page-3.html"},
		{Page: 3, TotalPages: 3, First: "index.html", Previous: "page-2.html", Last: "page-3.html"},
	}
	if len(pages) != len(want) {
		t.Fatalf("Paginate() returned %d pages, want %d", len(pages), len(want))
	}
	for i, page := range pages {
		if diff := cmp.Diff(want[i], *page.Pagination); diff != "" {
			t.Errorf("page %d pagination mismatch (-want +got):\n%s", i+1, diff)
		}
	}

	if first := pages[0].Posts[0].Path; first != "post-5.html" {
		t.Errorf("first listed post = %q, want newest post-5.html", first)
	}
}

func TestPaginate_DropsDrafts(t *testing.T) {
	t.Parallel()

	posts := makePosts(3)
	posts[1].Draft = true

	pages, err := Paginate(posts, 10)
	if err != nil {
		t.Fatalf("Paginate() unexpected error: %v", err)
	}
	for _, p := range pages[0].Posts {
		if p.Draft {
			t.Errorf("draft %s listed on the index", p.Path)
		}
	}
	if len(pages[0].Posts) != 2 {
		t.Errorf("listed %d posts, want 2", len(pages[0].Posts))
	}
}

func TestPaginate_InvalidPageSize(t *testing.T) {
	t.Parallel()

	if _, err := Paginate(makePosts(1), 0); err == nil {
		t.Error("Paginate() with page size 0: expected error, got nil")
	}
}
