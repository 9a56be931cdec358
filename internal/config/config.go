// Package config loads the minic.yml project file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arnavsurve/minic/internal/compiler/parser"
	"github.com/arnavsurve/minic/internal/compiler/symbols"
)

// DefaultFile is the project file looked up in the working directory.
const DefaultFile = "minic.yml"

type Config struct {
	Name string `yaml:"name"`
	// Library lists standard functions callable without a declaration. Names
	// must come from the default library; nil keeps all of them.
	Library []string `yaml:"library"`
	// Functions adds externally-known functions with their return type.
	Functions map[string]string `yaml:"functions"`
	// StrictSeparators requires ';' after simple statements.
	StrictSeparators bool `yaml:"strict_separators"`
	Trace            bool `yaml:"trace"`
}

// Load reads path. A missing file yields the zero Config.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

func Parse(b []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if _, err := cfg.BuildLibrary(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BuildLibrary assembles the external function table described by the config.
func (c *Config) BuildLibrary() (symbols.Library, error) {
	defaults := symbols.DefaultLibrary()
	lib := defaults
	if c.Library != nil {
		lib = symbols.Library{}
		for _, name := range c.Library {
			t, ok := defaults.Lookup(name)
			if !ok {
				return nil, fmt.Errorf("library: %q is not a standard function (declare it under functions)", name)
			}
			lib[name] = t
		}
	}
	for name, typeName := range c.Functions {
		t, err := symbols.ParseType(typeName)
		if err != nil {
			return nil, fmt.Errorf("functions: %s: %w", name, err)
		}
		lib[name] = t
	}
	return lib, nil
}

// ParserOptions translates the config into analyzer options.
func (c *Config) ParserOptions() ([]parser.Option, error) {
	lib, err := c.BuildLibrary()
	if err != nil {
		return nil, err
	}
	opts := []parser.Option{parser.WithLibrary(lib)}
	if c.StrictSeparators {
		opts = append(opts, parser.WithSeparatorPolicy(parser.SeparatorRequired))
	}
	return opts, nil
}
