package mdsite

import "log/slog"

// Option configures a Site or a standalone post render.
type Option func(*settings)

// settings holds the values set through options.
type settings struct {
	logger     *slog.Logger
	configPath string
	buildDir   string
	workers    int
	dateFormat string
	theme      string
	path       string
}

// WithLogger sets the logger. Defaults to a logger that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithConfigPath loads the site configuration from path instead of
// _config/site.yaml.
func WithConfigPath(path string) Option {
	return func(s *settings) {
		s.configPath = path
	}
}

// WithBuildDir overrides the configured output directory.
func WithBuildDir(dir string) Option {
	return func(s *settings) {
		s.buildDir = dir
	}
}

// WithWorkers overrides the configured number of render workers.
// Panics if n < 0 (programmer error, similar to time.NewTicker).
func WithWorkers(n int) Option {
	if n < 0 {
		panic("mdsite: WithWorkers count must not be negative")
	}
	return func(s *settings) {
		s.workers = n
	}
}

// WithDateFormat sets the display format of post dates, e.g. "MMMM D, YYYY"
// or a preset name such as "iso".
func WithDateFormat(format string) Option {
	return func(s *settings) {
		s.dateFormat = format
	}
}

// WithTheme sets the highlighting theme used for frontmatter descriptions.
func WithTheme(theme string) Option {
	return func(s *settings) {
		s.theme = theme
	}
}

// WithPath sets the page path of a standalone post, e.g. "posts/a.html".
func WithPath(path string) Option {
	return func(s *settings) {
		s.path = path
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{logger: discardLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
