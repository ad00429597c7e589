// Package config loads the optional session configuration file.
package config

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// ConfigurationName is the default file name looked up next to the history
// file when no --config flag is given.
const ConfigurationName = ".minsh.yaml"

type Configuration struct {
	// Prompt replaces the default "> " prompt.
	Prompt string `json:"prompt"`

	// HistoryFile overrides where history is persisted.
	HistoryFile string `json:"history_file"`

	// HistoryLimit bounds the number of retained history entries.
	HistoryLimit int `json:"history_limit" validate:"gte=0"`

	// LoopLimit caps while-loop iterations.
	LoopLimit int `json:"loop_limit" validate:"gte=0"`

	// Aliases are installed before the first prompt.
	Aliases map[string]string `json:"aliases"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Default returns the configuration used when no file exists.
func Default() *Configuration {
	return &Configuration{
		Prompt: "> ",
	}
}

// Load reads and validates a configuration file. A missing file yields the
// defaults.
func Load(fs afero.Fs, path string) (*Configuration, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return Default(), nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
