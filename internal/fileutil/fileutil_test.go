package fileutil_test

// Notes:
// - WriteTempFile write and close error branches are not tested because
//   triggering disk failures is platform-specific.
// - DiscoverMarkdown is tested against real directory trees under t.TempDir.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdsite/internal/fileutil"
)

// makeTree creates every file in paths (slash separated) under a new root.
func makeTree(t *testing.T, paths ...string) string {
	t.Helper()

	root := t.TempDir()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(full, []byte("# x\n"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	return root
}

// ---------------------------------------------------------------------------
// TestDiscoverMarkdown - Source discovery
// ---------------------------------------------------------------------------

func TestDiscoverMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		files []string
		skip  []string
		want  []string
	}{
		{
			name:  "nested sources sorted",
			files: []string{"posts/b.md", "about.markdown", "posts/a.md"},
			want:  []string{"about.markdown", "posts/a.md", "posts/b.md"},
		},
		{
			name:  "non markdown ignored",
			files: []string{"a.md", "b.txt", "img/cat.png"},
			want:  []string{"a.md"},
		},
		{
			name:  "extension case insensitive",
			files: []string{"README.MD"},
			want:  []string{"README.MD"},
		},
		{
			name:  "underscore and dot directories skipped",
			files: []string{"_config/notes.md", ".git/x.md", "_drafts/a.md", "ok.md"},
			want:  []string{"ok.md"},
		},
		{
			name:  "underscore files are still pages",
			files: []string{"_index.md"},
			want:  []string{"_index.md"},
		},
		{
			name:  "relative skip directory",
			files: []string{"public/a.md", "b.md"},
			skip:  []string{"public"},
			want:  []string{"b.md"},
		},
		{
			name:  "empty tree",
			files: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := makeTree(t, tt.files...)
			got, err := fileutil.DiscoverMarkdown(root, tt.skip...)
			if err != nil {
				t.Fatalf("DiscoverMarkdown() error = %v", err)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("DiscoverMarkdown() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscoverMarkdown_AbsoluteSkip(t *testing.T) {
	t.Parallel()

	root := makeTree(t, "out/a.md", "b.md")
	got, err := fileutil.DiscoverMarkdown(root, filepath.Join(root, "out"))
	if err != nil {
		t.Fatalf("DiscoverMarkdown() error = %v", err)
	}
	if len(got) != 1 || got[0] != "b.md" {
		t.Errorf("DiscoverMarkdown() = %v, want [b.md]", got)
	}
}

func TestDiscoverMarkdown_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := fileutil.DiscoverMarkdown(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("DiscoverMarkdown() expected error for missing root")
	}
}

// ---------------------------------------------------------------------------
// TestPaths - Source and page path mapping
// ---------------------------------------------------------------------------

func TestHTMLPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"a.md", "a.html"},
		{"posts/a.markdown", "posts/a.html"},
		{"posts/v1.2.md", "posts/v1.2.html"},
	}

	for _, tt := range tests {
		if got := fileutil.HTMLPath(tt.in); got != tt.want {
			t.Errorf("HTMLPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMarkdownCandidates(t *testing.T) {
	t.Parallel()

	got := fileutil.MarkdownCandidates("posts/a.html")
	want := []string{"posts/a.md", "posts/a.markdown"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("MarkdownCandidates() = %v, want %v", got, want)
	}
}

func TestValidateMarkdownExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		wantErr bool
	}{
		{"a.md", false},
		{"dir/a.markdown", false},
		{"a.txt", true},
		{"noext", true},
	}

	for _, tt := range tests {
		err := fileutil.ValidateMarkdownExtension(tt.path)
		if tt.wantErr != errors.Is(err, fileutil.ErrNotMarkdown) {
			t.Errorf("ValidateMarkdownExtension(%q) = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}

func TestIsHiddenDir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"_site", true},
		{".git", true},
		{"posts", false},
		{"a_b", false},
	}

	for _, tt := range tests {
		if got := fileutil.IsHiddenDir(tt.name); got != tt.want {
			t.Errorf("IsHiddenDir(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestWriteFile - Output writing
// ---------------------------------------------------------------------------

func TestWriteFile(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "site", "posts", "a.html")
	if err := fileutil.WriteFile(p, []byte("<p>hi</p>")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "<p>hi</p>" {
		t.Errorf("content = %q, want %q", data, "<p>hi</p>")
	}
}

// ---------------------------------------------------------------------------
// TestWriteTempFile - Temp files for the printer
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	p, cleanup, err := fileutil.WriteTempFile("<html></html>", "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}

	if !strings.Contains(filepath.Base(p), "mdsite-") {
		t.Errorf("path %q does not contain prefix 'mdsite-'", p)
	}
	if !strings.HasSuffix(p, ".html") {
		t.Errorf("path %q does not have extension .html", p)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("failed to read temp file: %v", err)
	}
	if string(data) != "<html></html>" {
		t.Errorf("file content = %q", data)
	}

	cleanup()
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Errorf("temp file still exists after cleanup at %s", p)
	}
}

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{"valid", "html", nil},
		{"empty", "", fileutil.ErrExtensionEmpty},
		{"forward slash", "../etc/passwd", fileutil.ErrExtensionPathTraversal},
		{"backslash", "..\\windows", fileutil.ErrExtensionPathTraversal},
		{"null byte", "html\x00exe", fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
			if tt.wantErr == nil {
				return
			}
			if _, _, err := fileutil.WriteTempFile("x", tt.extension); !errors.Is(err, tt.wantErr) {
				t.Errorf("WriteTempFile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false, want true")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true, want false")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists(missing) = true, want false")
	}
}
