// Package config loads an optional carl configuration file, letting an
// operator pin defaults for options that also exist as CLI flags. This is
// entirely additive to spec.md's external interface: the teacher corpus
// has no configuration layer of its own, so this is grounded on the
// BurntSushi/toml library itself (used here the way it is documented to
// be used: Decode a struct from a file) plus dekarrin-tunaq's
// server/config.go for the shape of a config struct with validated
// string-enum fields.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// DecimalMode mirrors n3out.DecimalMode as a config-file-friendly string
// enum, so this package does not need to import n3out.
type DecimalMode string

const (
	DecimalLiteral  DecimalMode = "literal"
	DecimalRational DecimalMode = "rational"
)

// Encoding mirrors n3out.Encoding as a config-file-friendly string enum.
type Encoding string

const (
	EncodingUTF8  Encoding = "utf8"
	EncodingCESU8 Encoding = "cesu8"
)

// Config holds every option carl's CLI flags can also set. A zero Config
// leaves every field at its flag-level default.
type Config struct {
	Base        string      `toml:"base"`
	Output      string      `toml:"output"`
	DecimalMode DecimalMode `toml:"decimal_mode"`
	Encoding    Encoding    `toml:"encoding"`
}

// Load decodes a TOML config file at path. A missing file is not an error;
// it returns a zero Config so callers can apply CLI flags on top of it
// unconditionally.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %q: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.DecimalMode {
	case "", DecimalLiteral, DecimalRational:
	default:
		return fmt.Errorf("decimal_mode must be %q or %q, got %q", DecimalLiteral, DecimalRational, c.DecimalMode)
	}
	switch c.Encoding {
	case "", EncodingUTF8, EncodingCESU8:
	default:
		return fmt.Errorf("encoding must be %q or %q, got %q", EncodingUTF8, EncodingCESU8, c.Encoding)
	}
	return nil
}

// ParseDecimalMode parses a CLI-flag-supplied decimal mode string,
// case-insensitively.
func ParseDecimalMode(s string) (DecimalMode, error) {
	switch strings.ToLower(s) {
	case string(DecimalLiteral):
		return DecimalLiteral, nil
	case string(DecimalRational):
		return DecimalRational, nil
	default:
		return "", fmt.Errorf("decimal mode must be %q or %q, got %q", DecimalLiteral, DecimalRational, s)
	}
}

// ParseEncoding parses a CLI-flag-supplied encoding string,
// case-insensitively.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case string(EncodingUTF8):
		return EncodingUTF8, nil
	case string(EncodingCESU8):
		return EncodingCESU8, nil
	default:
		return "", fmt.Errorf("encoding must be %q or %q, got %q", EncodingUTF8, EncodingCESU8, s)
	}
}
