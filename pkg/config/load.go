package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/surveycharts/pkg/cache"
	"github.com/matzehuels/surveycharts/pkg/errors"
	"github.com/matzehuels/surveycharts/pkg/render/theme"
)

// Formats understood by [Parse] and [Write].
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// FormatFor picks the format from a file extension, defaulting to TOML.
func FormatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Load reads and validates the file at path on top of [Default].
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, FormatFor(path))
}

// LoadOrDefault is [Load] for an optional path: empty means defaults.
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Parse decodes data in the given format on top of [Default] and validates
// the result. Unknown keys are rejected so typos surface early.
func Parse(data []byte, format string) (Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse TOML")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && err != io.EOF {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse YAML")
		}
	default:
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q", format)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write encodes cfg in the given format.
func Write(w io.Writer, cfg Config, format string) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(cfg)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q", format)
	}
}

// Hash identifies the settings that affect rendered output. Cache and
// publish settings are excluded so changing them keeps cached artifacts.
func (c Config) Hash() string {
	view := struct {
		Roles     RolesConfig
		Orgs      OrgsConfig
		Network   NetworkConfig
		Histogram HistogramConfig
		Theme     theme.Theme
		Render    RenderConfig
	}{c.Roles, c.Orgs, c.Network, c.Histogram, c.Theme, c.Render}
	data, _ := json.Marshal(view)
	return cache.Hash(data)
}
