package config

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

//go:embed homepage_defaults.yaml
var homepageDefaults []byte

// DefaultHomepageConfig returns the embedded homepage configuration used when
// the homepage_config row has not been saved yet.
func DefaultHomepageConfig() (*entity.HomepageConfig, error) {
	return ParseHomepageConfig(homepageDefaults)
}

// ParseHomepageConfig decodes a YAML homepage configuration. Unknown keys are
// rejected so that typos in overrides do not pass silently.
func ParseHomepageConfig(data []byte) (*entity.HomepageConfig, error) {
	var cfg entity.HomepageConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse homepage config: %w", err)
	}
	if cfg.NewsLimit < 1 || cfg.NewsLimit > 24 {
		return nil, fmt.Errorf("parse homepage config: news_limit must be between 1 and 24, got %d", cfg.NewsLimit)
	}
	return &cfg, nil
}
