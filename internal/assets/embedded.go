package assets

import (
	"embed"
	"fmt"
)

//go:embed defaults/*
var defaults embed.FS

// EmbeddedLoader loads the built-in layouts and stylesheet.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a built-in stylesheet by name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return e.read(name, ".css", ErrStyleNotFound)
}

// LoadLayout loads a built-in layout by name.
func (e *EmbeddedLoader) LoadLayout(name string) (string, error) {
	return e.read(name, ".html", ErrLayoutNotFound)
}

func (e *EmbeddedLoader) read(name, ext string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	content, err := defaults.ReadFile("defaults/" + name + ext)
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}
	return string(content), nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
