// Package config loads and validates the site configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdsite/internal/dateutil"
	"github.com/alnah/go-mdsite/internal/decode"
	"github.com/alnah/go-mdsite/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrFieldTooLong   = errors.New("field exceeds maximum length")
	ErrInvalidValue   = errors.New("invalid config value")
)

// Dir is the site directory holding configuration, layouts and syntaxes.
const Dir = "_config"

// Field length limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 500
	MaxURLLength         = 2048 // Browser limit
	MaxNameLength        = 100  // Theme name
	MaxPathLength        = 4096
	MaxAddrLength        = 255
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxPageSize          = 1000
	MaxWorkers           = 64
)

// Defaults.
const (
	DefaultTheme        = "monokai"
	DefaultBuildDir     = "_site"
	DefaultPostsDir     = "posts"
	DefaultPageSize     = 20
	DefaultDateFormat   = "MMMM D, YYYY"
	DefaultAddr         = "127.0.0.1:1024"
	DefaultPrintTimeout = 30 * time.Second
	DefaultPaper        = "letter"
)

// Config holds the site configuration.
type Config struct {
	Title       string       `yaml:"title" toml:"title"`
	Description string       `yaml:"description" toml:"description"`
	BaseURL     string       `yaml:"baseURL" toml:"baseURL"`
	Theme       string       `yaml:"theme" toml:"theme"`             // chroma style name
	SyntaxesDir string       `yaml:"syntaxesDir" toml:"syntaxesDir"` // *.xml chroma lexers
	LayoutsDir  string       `yaml:"layoutsDir" toml:"layoutsDir"`   // post.html, index.html, style.css overrides
	BuildDir    string       `yaml:"buildDir" toml:"buildDir"`
	PostsDir    string       `yaml:"postsDir" toml:"postsDir"` // pages listed on the index, when the directory exists
	PageSize    int          `yaml:"pageSize" toml:"pageSize"`
	DateFormat  string       `yaml:"dateFormat" toml:"dateFormat"`
	Workers     int          `yaml:"workers" toml:"workers"` // 0 = auto
	Server      ServerConfig `yaml:"server" toml:"server"`
	Print       PrintConfig  `yaml:"print" toml:"print"`
}

// ServerConfig defines the development server options.
type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

// PrintConfig defines PDF printing options.
type PrintConfig struct {
	Timeout  string  `yaml:"timeout" toml:"timeout"`   // Go duration, e.g. "30s"
	PageSize string  `yaml:"pageSize" toml:"pageSize"` // "letter", "a4", "legal"
	Margin   float64 `yaml:"margin" toml:"margin"`     // inches
}

// DefaultConfig returns the configuration used when a site has no config file.
func DefaultConfig() *Config {
	return &Config{
		Theme:       DefaultTheme,
		SyntaxesDir: filepath.Join(Dir, "syntaxes"),
		LayoutsDir:  filepath.Join(Dir, "layouts"),
		BuildDir:    DefaultBuildDir,
		PostsDir:    DefaultPostsDir,
		PageSize:    DefaultPageSize,
		DateFormat:  DefaultDateFormat,
		Server:      ServerConfig{Addr: DefaultAddr},
		Print: PrintConfig{
			Timeout:  DefaultPrintTimeout.String(),
			PageSize: DefaultPaper,
			Margin:   0.5,
		},
	}
}

// Validate checks field lengths and ranges.
// Called automatically by Load, but available for callers that build a
// Config by hand.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"title", c.Title, MaxTitleLength},
		{"description", c.Description, MaxDescriptionLength},
		{"baseURL", c.BaseURL, MaxURLLength},
		{"theme", c.Theme, MaxNameLength},
		{"syntaxesDir", c.SyntaxesDir, MaxPathLength},
		{"layoutsDir", c.LayoutsDir, MaxPathLength},
		{"buildDir", c.BuildDir, MaxPathLength},
		{"postsDir", c.PostsDir, MaxPathLength},
		{"dateFormat", c.DateFormat, dateutil.MaxDateFormatLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
		{"print.pageSize", c.Print.PageSize, MaxPageSizeLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.BuildDir == "" {
		return fmt.Errorf("%w: buildDir: cannot be empty", ErrInvalidValue)
	}
	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		return fmt.Errorf("%w: pageSize: must be between 1 and %d, got %d", ErrInvalidValue, MaxPageSize, c.PageSize)
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}
	if c.DateFormat != "" {
		if _, err := dateutil.ParseDateFormat(c.DateFormat); err != nil {
			return fmt.Errorf("%w: dateFormat: %v", ErrInvalidValue, err)
		}
	}
	if _, err := c.PrintTimeout(); err != nil {
		return err
	}
	if c.Print.PageSize != "" {
		switch strings.ToLower(c.Print.PageSize) {
		case "letter", "a4", "legal":
			// valid
		default:
			return fmt.Errorf("%w: print.pageSize: %q (must be letter, a4, or legal)", ErrInvalidValue, c.Print.PageSize)
		}
	}
	if c.Print.Margin < 0 || c.Print.Margin > 2 {
		return fmt.Errorf("%w: print.margin: must be between 0 and 2, got %.2f", ErrInvalidValue, c.Print.Margin)
	}

	return nil
}

// PrintTimeout parses print.timeout. An empty value yields the default.
func (c *Config) PrintTimeout() (time.Duration, error) {
	if c.Print.Timeout == "" {
		return DefaultPrintTimeout, nil
	}
	d, err := time.ParseDuration(c.Print.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: print.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: print.timeout: must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// Load reads the configuration of the site rooted at siteRoot.
//
// A non-empty path names the config file explicitly and must exist.
// Otherwise _config/site.yaml, _config/site.yml and _config/site.toml are
// tried in order, and a site without any of them gets DefaultConfig.
// Values from the file override the defaults; unknown fields are rejected.
func Load(siteRoot, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		found, ok := resolveConfigPath(siteRoot)
		if !ok {
			return cfg, nil
		}
		path = found
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	decodeStrict := decode.YAMLStrict
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		decodeStrict = decode.TOMLStrict
	}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := decodeStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths returns the config locations tried for a site, in order.
func SearchPaths(siteRoot string) []string {
	names := []string{"site.yaml", "site.yml", "site.toml"}
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(siteRoot, Dir, name)
	}
	return paths
}

// resolveConfigPath returns the first existing config file of a site.
func resolveConfigPath(siteRoot string) (string, bool) {
	for _, p := range SearchPaths(siteRoot) {
		if fileutil.FileExists(p) {
			return p, true
		}
	}
	return "", false
}

// Write stores cfg as YAML at path, refusing to overwrite an existing file.
func Write(path string, cfg *Config) error {
	if fileutil.FileExists(path) {
		return fmt.Errorf("%w: %s already exists", os.ErrExist, path)
	}
	data, err := decode.MarshalYAML(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
