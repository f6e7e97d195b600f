// Package config handles delegen.toml project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"delegen/internal/plan"
)

// FileName is the configuration file looked up by FindAndLoad.
const FileName = "delegen.toml"

// Output formats.
const (
	FormatYAML = "yaml"
	FormatCBOR = "cbor"
	FormatText = "text"
)

// Config represents a delegen.toml file.
type Config struct {
	Naming  Naming  `toml:"naming"`
	Planner Planner `toml:"planner"`
	Output  Output  `toml:"output"`
	Log     Log     `toml:"log"`

	// Dir is the directory containing the file; empty for defaults.
	Dir string `toml:"-"`
}

// Naming configures delegate field and parameter names.
type Naming struct {
	Prefix   string `toml:"prefix"`
	Scheme   string `toml:"scheme"`
	Receiver string `toml:"receiver"`
	Value    string `toml:"value"`
}

// Planner configures planning runs.
type Planner struct {
	// Workers bounds concurrent planning; 0 means one per class.
	Workers int `toml:"workers"`
	// Strict turns warnings into failures.
	Strict bool `toml:"strict"`
}

// Output configures where and how plans are written.
type Output struct {
	Format string `toml:"format"`
	// Dir receives written plans; empty writes to standard output.
	Dir    string `toml:"dir"`
}

// Log configures commonlog.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	Path      string `toml:"path"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	pc := plan.DefaultConfig()

	return &Config{
		Naming: Naming{
			Prefix:   pc.DelegatePrefix,
			Scheme:   pc.Naming.String(),
			Receiver: pc.ReceiverParam,
			Value:    pc.ValueParam,
		},
		Planner: Planner{Workers: 4},
		Output:  Output{Format: FormatYAML},
	}
}

// Load parses the delegen.toml file in dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile parses the configuration file at path. Keys absent from the file
// keep their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	return c, nil
}

// Parse decodes TOML text over the defaults and validates the result.
func Parse(text string) (*Config, error) {
	c := Default()

	md, err := toml.Decode(text, c)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}

		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// FindAndLoad walks up from startDir to the first delegen.toml and loads it.
// Without one, it returns Default().
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}

		dir = parent
	}
}

// Validate checks enumerated values and ranges.
func (c *Config) Validate() error {
	var errs []error

	if _, ok := plan.ParseNamingScheme(c.Naming.Scheme); !ok {
		errs = append(errs, fmt.Errorf("naming.scheme: unknown scheme %q", c.Naming.Scheme))
	}

	switch c.Output.Format {
	case FormatYAML, FormatCBOR, FormatText:
	default:
		errs = append(errs, fmt.Errorf("output.format: unknown format %q", c.Output.Format))
	}

	if c.Planner.Workers < 0 {
		errs = append(errs, fmt.Errorf("planner.workers: must not be negative, got %d", c.Planner.Workers))
	}

	return errors.Join(errs...)
}

// PlanConfig converts the naming section into a planner configuration.
func (c *Config) PlanConfig() plan.Config {
	scheme, _ := plan.ParseNamingScheme(c.Naming.Scheme)

	return plan.Config{
		DelegatePrefix: c.Naming.Prefix,
		ReceiverParam:  c.Naming.Receiver,
		ValueParam:     c.Naming.Value,
		Naming:         scheme,
	}
}

// OutputDir returns the output directory, relative paths resolved against
// Dir. Empty means standard output.
func (c *Config) OutputDir() string {
	if c.Output.Dir == "" || c.Dir == "" || filepath.IsAbs(c.Output.Dir) {
		return c.Output.Dir
	}

	return filepath.Join(c.Dir, c.Output.Dir)
}

// LogPath returns the log file path, or nil to log to stderr.
func (c *Config) LogPath() *string {
	if c.Log.Path == "" {
		return nil
	}

	path := c.Log.Path
	if c.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(c.Dir, path)
	}

	return &path
}
