// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package tweetlabel

import (
	"errors"
	"fmt"
	"os"

	"github.com/poiesic/tweetlabel/ai"
	"github.com/poiesic/tweetlabel/enrich"
	"github.com/poiesic/tweetlabel/objectstore"
	"gopkg.in/yaml.v3"
)

// DefaultProgressInterval is how many classified records pass between
// progress reports.
const DefaultProgressInterval = 100

// Config holds everything a labeling run needs.
type Config struct {
	AI ai.Config `yaml:"ai"`

	// Concurrency is the maximum number of outstanding classifier calls.
	Concurrency int `yaml:"concurrency"`

	// RateLimit caps classifier calls per second. Zero disables pacing.
	RateLimit float64 `yaml:"rate_limit"`
	Burst     int     `yaml:"burst"`

	// CacheDir enables the on-disk response cache when set.
	CacheDir string `yaml:"cache_dir"`

	// Normalize scales vectors to unit length before they are written.
	Normalize bool `yaml:"normalize"`

	ProgressInterval int `yaml:"progress_interval"`

	ObjectStore objectstore.Config `yaml:"object_store"`
}

// DefaultConfig returns a Config with the default AI settings and concurrency.
func DefaultConfig() *Config {
	return &Config{
		AI:               *ai.DefaultConfig(),
		Concurrency:      enrich.DefaultConcurrency,
		ProgressInterval: DefaultProgressInterval,
	}
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration, normalizing AI hosts along the way.
func (c *Config) Validate() error {
	if err := c.AI.Validate(); err != nil {
		return err
	}
	if c.Concurrency < 1 {
		return errors.New("config: concurrency must be at least 1")
	}
	if c.RateLimit < 0 {
		return errors.New("config: rate_limit must not be negative")
	}
	if c.Burst < 0 {
		return errors.New("config: burst must not be negative")
	}
	if c.ProgressInterval < 0 {
		return errors.New("config: progress_interval must not be negative")
	}
	if c.ObjectStore.Enabled() {
		if err := c.ObjectStore.Validate(); err != nil {
			return fmt.Errorf("config: object_store: %w", err)
		}
	}
	return nil
}
