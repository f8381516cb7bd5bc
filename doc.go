// Package mdsite builds static sites from Markdown posts.
//
// # Quick Start
//
// Render a single document:
//
//	syntaxes, err := mdsite.LoadSyntaxSet("monokai", "", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	post, err := mdsite.NewPost(ctx, "# Hello\n\nWorld", syntaxes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(post.Title, post.Content)
//
// Build a whole site:
//
//	site, err := mdsite.NewSite(".", mdsite.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := site.Build(ctx)
//
// # Rendering Pipeline
//
// Each post goes through these stages:
//
//  1. Preprocessing (line endings, frontmatter split)
//  2. Parsing via goldmark (GFM, footnotes) into a closed node tree
//  3. Outline: BuildTOC derives the heading tree and requires the page to
//     open with its single level 1 title
//  4. Rendering: the tree becomes HTML, headings get slug ids matching the
//     outline links, fenced code is highlighted with inline styles
//
// Parse, BuildTOC, Render and Slugify expose the stages on their own.
//
// # Errors
//
// Structural errors (ErrNoHeadings, ErrFirstHeadingNotTitle, ErrManyTitles,
// ErrInvalidRoot, ErrParsing) and content errors (ErrHeaderTooDeep,
// ErrNodeNotSupported, ErrInternal) abort the document. A code block that
// cannot be highlighted is logged at WARN and rendered as a plain block.
//
// # Concurrency
//
// A SyntaxSet is immutable and may be shared by any number of renders.
// Site.Build renders posts with a bounded worker pool.
package mdsite
