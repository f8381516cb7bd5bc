// Package highlight provides the syntax/theme database used to colorize
// fenced code blocks.
//
// A SyntaxSet is built once by Load from chroma's built-in lexers plus any
// user supplied chroma XML lexer definitions, and is immutable afterwards.
// It may be shared by any number of concurrent renders.
package highlight

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultTheme is the chroma style used when none is configured.
const DefaultTheme = "monokai"

// Sentinel errors for highlighting.
var (
	ErrHighlighting     = errors.New("error while highlighting")
	ErrUnknownLang      = errors.New("could not find syntax")
	ErrUnknownTheme     = errors.New("unknown highlighting theme")
	ErrSyntaxDefinition = errors.New("invalid syntax definition")
	ErrSyntaxDirectory  = errors.New("cannot read syntax directory")
)

// syntaxDefinitionGlob selects chroma XML lexer files in a syntax directory.
const syntaxDefinitionGlob = "*.xml"

// UnknownLangError reports a language tag with no matching syntax.
type UnknownLangError struct {
	Lang string
}

func (e *UnknownLangError) Error() string {
	return fmt.Sprintf("could not find syntax for %s", e.Lang)
}

// Unwrap lets errors.Is match ErrUnknownLang.
func (e *UnknownLangError) Unwrap() error {
	return ErrUnknownLang
}

// SyntaxSet is an immutable syntax and theme database.
type SyntaxSet struct {
	lexers    map[string]chroma.Lexer // lowercased name -> lexer
	names     []string
	theme     string
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// Load builds a SyntaxSet from chroma's built-in lexers and the *.xml lexer
// definitions found in syntaxDir. A missing or empty syntaxDir loads only the
// defaults. User definitions replace built-ins with the same name.
func Load(theme, syntaxDir string, logger *slog.Logger) (*SyntaxSet, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	if theme == "" {
		theme = DefaultTheme
	}

	style := findStyle(theme)
	if style == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}

	s := &SyntaxSet{
		lexers: make(map[string]chroma.Lexer),
		theme:  style.Name,
		style:  style,
		formatter: chromahtml.New(
			chromahtml.WithClasses(false), // inline styles, pages ship no highlight stylesheet
			chromahtml.TabWidth(4),
		),
	}

	for _, lexer := range lexers.GlobalLexerRegistry.Lexers {
		s.add(lexer)
	}

	if syntaxDir != "" {
		if err := s.loadDir(syntaxDir, logger); err != nil {
			return nil, err
		}
	}

	sort.Strings(s.names)
	return s, nil
}

func findStyle(name string) *chroma.Style {
	if style, ok := styles.Registry[name]; ok {
		return style
	}
	for registered, style := range styles.Registry {
		if strings.EqualFold(registered, name) {
			return style
		}
	}
	return nil
}

// loadDir adds every chroma XML lexer in dir. A directory that does not exist
// is not an error.
func (s *SyntaxSet) loadDir(dir string, logger *slog.Logger) error {
	fsys := os.DirFS(dir)
	matches, err := fs.Glob(fsys, syntaxDefinitionGlob)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSyntaxDirectory, err)
	}
	if len(matches) == 0 {
		if _, statErr := os.Stat(dir); statErr != nil && !os.IsNotExist(statErr) {
			return fmt.Errorf("%w: %v", ErrSyntaxDirectory, statErr)
		}
		return nil
	}

	for _, name := range matches {
		logger.Info("loading syntax definition", "path", filepath.Join(dir, name))
		lexer, err := chroma.NewXMLLexer(fsys, name)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrSyntaxDefinition, name, err)
		}
		s.add(lexer)
	}
	return nil
}

func (s *SyntaxSet) add(lexer chroma.Lexer) {
	cfg := lexer.Config()
	if cfg == nil || cfg.Name == "" {
		return
	}
	lexer = chroma.Coalesce(lexer)

	key := strings.ToLower(cfg.Name)
	if _, exists := s.lexers[key]; !exists {
		s.names = append(s.names, cfg.Name)
	}
	s.lexers[key] = lexer
}

// Lookup finds a syntax by case-insensitive exact match on its name.
// Aliases and file extensions are not consulted.
func (s *SyntaxSet) Lookup(lang string) (chroma.Lexer, bool) {
	lexer, ok := s.lexers[strings.ToLower(lang)]
	return lexer, ok
}

// Names returns the syntax names in the set, sorted.
func (s *SyntaxSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Theme returns the name of the style used for highlighting.
func (s *SyntaxSet) Theme() string {
	return s.theme
}

// Background returns the theme's background color as a CSS value, or an
// empty string when the theme does not define one.
func (s *SyntaxSet) Background() string {
	entry := s.style.Get(chroma.Background)
	if !entry.Background.IsSet() {
		return ""
	}
	return entry.Background.String()
}

// Highlight renders source as HTML with inline per-token styles.
// Returns an *UnknownLangError when lang has no syntax, and wraps
// ErrHighlighting when chroma fails.
func (s *SyntaxSet) Highlight(source, lang string) (string, error) {
	lexer, ok := s.Lookup(lang)
	if !ok {
		return "", &UnknownLangError{Lang: lang}
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrHighlighting, lang, err)
	}

	var buf strings.Builder
	if err := s.formatter.Format(&buf, s.style, iterator); err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrHighlighting, lang, err)
	}
	return buf.String(), nil
}

// Themes returns the names of the registered chroma styles, sorted.
func Themes() []string {
	return styles.Names()
}
