package cmd

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration file.
type Config struct {
	Prompt       string `yaml:"prompt"`
	HistoryFile  string `yaml:"history_file"`
	Strict       bool   `yaml:"strict"`
	Echo         bool   `yaml:"echo"`
	MaxCallDepth int    `yaml:"max_call_depth"`
}

func DefaultConfig() Config {
	return Config{
		Prompt: "> ",
		Echo:   true,
	}
}

// ParseConfig decodes YAML over the defaults. Unknown keys are an error; an
// empty document yields the defaults.
func ParseConfig(r io.Reader) (Config, error) {
	config := DefaultConfig()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("invalid config: %w", err)
	}

	if config.MaxCallDepth < 0 {
		return config, fmt.Errorf("invalid config: max_call_depth must not be negative, got %d", config.MaxCallDepth)
	}

	return config, nil
}
