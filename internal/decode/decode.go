// Package decode wraps the YAML and TOML libraries behind size-checked
// helpers, so callers never depend on a parser directly.
package decode

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// MaxInputSize limits decoded input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("decode: nil or empty data")
	ErrNilDestination = errors.New("decode: nil destination pointer")
	ErrInputTooLarge  = errors.New("decode: input exceeds maximum size")
	ErrUnknownFields  = errors.New("decode: unknown fields")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// YAML decodes data into v, ignoring unknown fields.
func YAML(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode: yaml: %w", err)
	}
	return nil
}

// YAMLStrict decodes data into v and rejects unknown fields.
func YAMLStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("decode: yaml: %w", err)
	}
	return nil
}

// MarshalYAML encodes v as YAML.
func MarshalYAML(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("decode: yaml: %w", err)
	}
	return out, nil
}

// TOML decodes data into v, ignoring unknown keys.
func TOML(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if _, err := toml.Decode(string(data), v); err != nil {
		return fmt.Errorf("decode: toml: %w", err)
	}
	return nil
}

// TOMLStrict decodes data into v and rejects keys v has no field for.
func TOMLStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	meta, err := toml.Decode(string(data), v)
	if err != nil {
		return fmt.Errorf("decode: toml: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("%w: %s", ErrUnknownFields, strings.Join(keys, ", "))
	}
	return nil
}
