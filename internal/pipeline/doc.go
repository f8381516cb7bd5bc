// Package pipeline implements the Markdown-to-HTML stages of a page build.
//
// The stages run in order, each usable on its own:
//   - Preprocessing: line ending normalization and frontmatter splitting
//   - Parsing: goldmark (GFM + footnotes) converted to an mdast tree
//   - Outline: BuildTOC derives the nested heading outline and enforces a
//     single level 1 title
//   - Rendering: Renderer turns the tree into HTML fragments, highlighting
//     fenced code through a shared, immutable highlight.SyntaxSet
//
// Supporting helpers cover index summaries (ExcerptRenderer,
// FirstParagraphText) and printing (CSS injection, relative path rewriting).
//
// Templating, file output and PDF generation live in the root mdsite package.
package pipeline
