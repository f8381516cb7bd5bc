package assets

import (
	"errors"
	"os"
)

// AssetResolver combines site and embedded loaders. Site assets take
// precedence; an asset the site does not provide comes from the embedded
// defaults.
type AssetResolver struct {
	custom   AssetLoader // nil when the site has no layouts directory
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// An empty customBasePath, or one that does not exist, uses embedded assets
// only. A customBasePath that exists but is unusable is an error.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{embedded: NewEmbeddedLoader()}

	if customBasePath == "" {
		return resolver, nil
	}
	if _, err := os.Stat(customBasePath); os.IsNotExist(err) {
		return resolver, nil
	}

	fsLoader, err := NewFilesystemLoader(customBasePath)
	if err != nil {
		return nil, err
	}
	resolver.custom = fsLoader
	return resolver, nil
}

// LoadStyle loads a stylesheet, site first.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.loadWithFallback(func(loader AssetLoader) (string, error) {
		return loader.LoadStyle(name)
	})
}

// LoadLayout loads a layout, site first.
func (r *AssetResolver) LoadLayout(name string) (string, error) {
	return r.loadWithFallback(func(loader AssetLoader) (string, error) {
		return loader.LoadLayout(name)
	})
}

func (r *AssetResolver) loadWithFallback(loadFn func(AssetLoader) (string, error)) (string, error) {
	if r.custom == nil {
		return loadFn(r.embedded)
	}

	content, err := loadFn(r.custom)
	if err == nil {
		return content, nil
	}
	// Validation and I/O errors are not hidden by the defaults.
	if !isNotFoundError(err) {
		return "", err
	}
	return loadFn(r.embedded)
}

// isNotFoundError checks if the error indicates the asset was not found.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrLayoutNotFound)
}

// HasCustomLoader returns true if site assets are in use.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
