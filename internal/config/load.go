package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	bferrors "git.home.luguber.info/inful/blogforge/internal/errors"
)

// Load reads, defaults, normalizes and validates the configuration file.
func Load(path string) (*Config, error) {
	LoadEnvFiles()

	data, err := os.ReadFile(path) // #nosec G304 -- operator-provided config path
	if err != nil {
		return nil, bferrors.NewConfigError(fmt.Sprintf("read configuration file %s", path), err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse unmarshals raw YAML into a validated Config. Unknown fields are
// rejected so typos surface at build time instead of silently defaulting.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, bferrors.NewConfigError("parse configuration", err)
	}

	applyDefaults(&cfg)

	res, err := NormalizeConfig(&cfg)
	if err != nil {
		return nil, bferrors.NewConfigError("normalize configuration", err)
	}
	for _, w := range res.Warnings {
		slog.Warn("Configuration normalized", "warning", w)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
