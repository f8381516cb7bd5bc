package mdsite

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Index page file names.
const (
	indexPageName  = "index.html"
	pagePrefix     = "page-"
	pageNameSuffix = ".html"
)

// Pagination links one index page to the others. Links are page paths
// relative to the site root.
type Pagination struct {
	Page       int
	TotalPages int
	First      string
	Previous   string // empty on the first page
	Next       string // empty on the last page
	Last       string
}

// IndexPage is one page of the post listing.
type IndexPage struct {
	Posts      []PostMeta
	Pagination *Pagination // nil when every post fits on one page
}

// PageName returns the file name of index page n (1-based): "index.html",
// "page-2.html", ...
func PageName(n int) string {
	if n <= 1 {
		return indexPageName
	}
	return pagePrefix + strconv.Itoa(n) + pageNameSuffix
}

// ParsePageName is the inverse of PageName. It returns false for names that
// are not index pages.
func ParsePageName(name string) (int, bool) {
	if name == indexPageName || name == "" {
		return 1, true
	}
	if !strings.HasPrefix(name, pagePrefix) || !strings.HasSuffix(name, pageNameSuffix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, pagePrefix), pageNameSuffix))
	if err != nil || n < 2 {
		return 0, false
	}
	return n, true
}

// SortPosts orders posts newest first. Posts without a date go last; ties
// are broken by path so the order is stable across builds.
func SortPosts(posts []PostMeta) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.Path < b.Path
	})
}

// Paginate sorts posts, drops drafts and splits them into pages of at most
// pageSize posts. There is always at least one page.
func Paginate(posts []PostMeta, pageSize int) ([]IndexPage, error) {
	if pageSize < 1 {
		return nil, fmt.Errorf("invalid page size %d", pageSize)
	}

	published := make([]PostMeta, 0, len(posts))
	for _, p := range posts {
		if !p.Draft {
			published = append(published, p)
		}
	}
	SortPosts(published)

	total := (len(published) + pageSize - 1) / pageSize
	if total <= 1 {
		return []IndexPage{{Posts: published}}, nil
	}

	pages := make([]IndexPage, total)
	for i := range pages {
		start := i * pageSize
		end := min(start+pageSize, len(published))
		n := i + 1

		p := &Pagination{
			Page:       n,
			TotalPages: total,
			First:      PageName(1),
			Last:       PageName(total),
		}
		if n > 1 {
			p.Previous = PageName(n - 1)
		}
		if n < total {
			p.Next = PageName(n + 1)
		}
		pages[i] = IndexPage{Posts: published[start:end], Pagination: p}
	}
	return pages, nil
}
