package decode_test

// Notes:
// - MarshalYAML error branch: not tested because yaml.Marshal only fails with
//   unmarshalable types (channels, functions) that never reach it.
// - TestInputSizeLimit mutates MaxInputSize and therefore does not run in
//   parallel.

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-mdsite/internal/decode"
)

type testMeta struct {
	Title string   `yaml:"title" toml:"title"`
	Count int      `yaml:"count" toml:"count"`
	Draft bool     `yaml:"draft" toml:"draft"`
	Tags  []string `yaml:"tags" toml:"tags"`
}

type decodeFunc func([]byte, any) error

// ---------------------------------------------------------------------------
// TestDecoders - Shared behavior of every decoder
// ---------------------------------------------------------------------------

func TestDecoders_InputValidation(t *testing.T) {
	t.Parallel()

	decoders := map[string]decodeFunc{
		"YAML":       decode.YAML,
		"YAMLStrict": decode.YAMLStrict,
		"TOML":       decode.TOML,
		"TOMLStrict": decode.TOMLStrict,
	}

	for name, fn := range decoders {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if err := fn(nil, &testMeta{}); !errors.Is(err, decode.ErrNilData) {
				t.Errorf("nil data: error = %v, want ErrNilData", err)
			}
			if err := fn([]byte{}, &testMeta{}); !errors.Is(err, decode.ErrNilData) {
				t.Errorf("empty data: error = %v, want ErrNilData", err)
			}
			if err := fn([]byte("title = 'x'"), nil); !errors.Is(err, decode.ErrNilDestination) {
				t.Errorf("nil destination: error = %v, want ErrNilDestination", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestYAML - Lenient and strict YAML decoding
// ---------------------------------------------------------------------------

func TestYAML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		strict  bool
		want    testMeta
		wantErr error
	}{
		{
			name: "all fields",
			data: "title: Hello\ncount: 3\ndraft: true\ntags: [go, web]",
			want: testMeta{Title: "Hello", Count: 3, Draft: true, Tags: []string{"go", "web"}},
		},
		{
			name: "unknown field ignored",
			data: "title: Hello\nauthor: someone",
			want: testMeta{Title: "Hello"},
		},
		{
			name:    "unknown field rejected when strict",
			data:    "title: Hello\nauthor: someone",
			strict:  true,
			wantErr: errors.New("decode: yaml:"),
		},
		{
			name:   "strict accepts known fields",
			data:   "title: Hello",
			strict: true,
			want:   testMeta{Title: "Hello"},
		},
		{
			name:    "syntax error",
			data:    "title: [unclosed",
			wantErr: errors.New("decode: yaml:"),
		},
		{
			name: "unicode",
			data: "title: 日本語",
			want: testMeta{Title: "日本語"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fn := decode.YAML
			if tt.strict {
				fn = decode.YAMLStrict
			}

			var got testMeta
			err := fn([]byte(tt.data), &got)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("error = %q, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertMeta(t, got, tt.want)
		})
	}
}

// ---------------------------------------------------------------------------
// TestTOML - Lenient and strict TOML decoding
// ---------------------------------------------------------------------------

func TestTOML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		strict  bool
		want    testMeta
		wantErr error
	}{
		{
			name: "all fields",
			data: "title = \"Hello\"\ncount = 3\ndraft = true\ntags = [\"go\", \"web\"]",
			want: testMeta{Title: "Hello", Count: 3, Draft: true, Tags: []string{"go", "web"}},
		},
		{
			name: "unknown key ignored",
			data: "title = \"Hello\"\nauthor = \"someone\"",
			want: testMeta{Title: "Hello"},
		},
		{
			name:    "unknown key rejected when strict",
			data:    "title = \"Hello\"\nauthor = \"someone\"",
			strict:  true,
			wantErr: decode.ErrUnknownFields,
		},
		{
			name:   "strict accepts known keys",
			data:   "title = \"Hello\"",
			strict: true,
			want:   testMeta{Title: "Hello"},
		},
		{
			name:    "syntax error",
			data:    "title = ",
			wantErr: errors.New("decode: toml:"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fn := decode.TOML
			if tt.strict {
				fn = decode.TOMLStrict
			}

			var got testMeta
			err := fn([]byte(tt.data), &got)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("expected error %q, got nil", tt.wantErr)
				}
				if errors.Is(err, tt.wantErr) {
					return
				}
				if !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("error = %q, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertMeta(t, got, tt.want)
		})
	}
}

func TestTOMLStrict_NamesUnknownKeys(t *testing.T) {
	t.Parallel()

	var got testMeta
	err := decode.TOMLStrict([]byte("zeta = 1\ntitle = \"x\"\nalpha = 2"), &got)
	if !errors.Is(err, decode.ErrUnknownFields) {
		t.Fatalf("error = %v, want ErrUnknownFields", err)
	}
	if !strings.HasSuffix(err.Error(), "alpha, zeta") {
		t.Errorf("error = %q, want sorted key list", err)
	}
}

// ---------------------------------------------------------------------------
// TestMarshalYAML - Serializes Go structs to YAML
// ---------------------------------------------------------------------------

func TestMarshalYAML(t *testing.T) {
	t.Parallel()

	data, err := decode.MarshalYAML(&testMeta{Title: "marshal", Count: 5, Draft: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"title: marshal", "count: 5", "draft: true"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output missing %q, got: %s", want, data)
		}
	}

	var back testMeta
	if err := decode.YAMLStrict(data, &back); err != nil {
		t.Fatalf("decoding marshaled output: %v", err)
	}
	assertMeta(t, back, testMeta{Title: "marshal", Count: 5, Draft: true})
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Verifies MaxInputSize enforcement
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	originalMax := decode.MaxInputSize
	t.Cleanup(func() { decode.MaxInputSize = originalMax })

	t.Run("input at limit succeeds", func(t *testing.T) {
		decode.MaxInputSize = 100
		data := []byte("title: x" + strings.Repeat(" ", 92))
		var got testMeta
		if err := decode.YAML(data, &got); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("input exceeding limit fails", func(t *testing.T) {
		decode.MaxInputSize = 100
		data := []byte("title = \"x\"" + strings.Repeat(" ", 90))
		var got testMeta
		err := decode.TOML(data, &got)
		if !errors.Is(err, decode.ErrInputTooLarge) {
			t.Errorf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
	})

	t.Run("error message includes sizes", func(t *testing.T) {
		decode.MaxInputSize = 50
		var got testMeta
		err := decode.YAMLStrict(make([]byte, 100), &got)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "100 bytes") || !strings.Contains(err.Error(), "max 50") {
			t.Errorf("error = %q, want actual and max sizes", err)
		}
	})
}

func assertMeta(t *testing.T, got, want testMeta) {
	t.Helper()

	if got.Title != want.Title {
		t.Errorf("Title = %q, want %q", got.Title, want.Title)
	}
	if got.Count != want.Count {
		t.Errorf("Count = %d, want %d", got.Count, want.Count)
	}
	if got.Draft != want.Draft {
		t.Errorf("Draft = %v, want %v", got.Draft, want.Draft)
	}
	if strings.Join(got.Tags, ",") != strings.Join(want.Tags, ",") {
		t.Errorf("Tags = %v, want %v", got.Tags, want.Tags)
	}
}
