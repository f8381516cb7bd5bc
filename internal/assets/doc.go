// Package assets provides the page layouts and stylesheet of a site.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in post.html, index.html and style.css
//	    ├── FilesystemLoader  - overrides from the site's layouts directory
//	    └── AssetResolver     - combines both with custom-first fallback
//
// A site overrides a single file by dropping it in its layouts directory
// (default _config/layouts); anything it does not override comes from the
// embedded defaults.
//
// # Directory Structure
//
//	{layoutsDir}/
//	├── post.html    # one rendered post
//	├── index.html   # one page of the post listing
//	└── style.css    # served as /style.css
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within its base
// directory.
package assets
