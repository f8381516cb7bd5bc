package mdsite_test

import (
	"context"
	"fmt"
	"strings"

	mdsite "github.com/alnah/go-mdsite"
)

// Example renders a document and its outline with the built-in syntaxes.
func Example() {
	ctx := context.Background()

	syntaxes, err := mdsite.LoadSyntaxSet("monokai", "", nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	doc, err := mdsite.Parse(ctx, "# Title\n\n## Sub\n\nHello *world*.")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	toc, err := mdsite.BuildTOC(doc.Root)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	tocHTML, _ := toc.HTML()

	fragments, err := mdsite.Render(doc.Root, syntaxes)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(toc.Name)
	fmt.Println(tocHTML)
	fmt.Println(strings.Join(fragments, ""))
	// Output:
	// Title
	// <ol><li><a href="#sub">Sub</a></li></ol>
	// <h1 id="title">Title</h1><h2 id="sub">Sub</h2><p>Hello <em>world</em>.</p>
}

// ExampleBuildTOC_manyTitles shows the error for a second level 1 heading.
func ExampleBuildTOC_manyTitles() {
	doc, err := mdsite.Parse(context.Background(), "# One\n\n## Part\n\n# Two")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	_, err = mdsite.BuildTOC(doc.Root)
	fmt.Println(err)
	// Output: page should contain only one title (level 1 heading), second title was "Two"
}

// ExampleSlugify shows how heading text becomes an anchor id.
func ExampleSlugify() {
	fmt.Println(mdsite.Slugify("Foo Bar!"))
	fmt.Println(mdsite.Slugify("  Lead In"))
	// Output:
	// foo-bar
	// lead-in
}

// ExampleNewPost renders a standalone post with frontmatter.
func ExampleNewPost() {
	src := "---\ntitle: Hello again\ndate: 2024-03-05\n---\n# Hello\n\nFirst words."

	post, err := mdsite.NewPost(context.Background(), src, nil, mdsite.WithDateFormat("long"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(post.Title)
	fmt.Println(post.Meta.Title)
	fmt.Println(post.Meta.DateDisplay)
	fmt.Println(post.Meta.Summary)
	// Output:
	// Hello
	// Hello again
	// March 5, 2024
	// First words.
}
