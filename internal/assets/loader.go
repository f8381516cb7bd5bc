package assets

// Asset names.
const (
	PostLayout  = "post"
	IndexLayout = "index"
	StyleName   = "style"
)

// AssetLoader defines the contract for loading layouts and stylesheets.
type AssetLoader interface {
	// LoadStyle loads a stylesheet by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadLayout loads an HTML layout by name (without .html extension).
	// Returns ErrLayoutNotFound if the layout doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadLayout(name string) (string, error)
}
