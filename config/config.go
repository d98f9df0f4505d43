// Copyright 2026 The Sirius-Go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the process configuration in layers, the way the
// framework's bootstrap layers application.conf, test.conf, develop.conf,
// instance.conf and the process environment, each layer overriding the
// ones loaded before it. A missing optional layer is not fatal: it is
// recorded as a problem and skipped.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
)

// Layer names a configuration source in load order. Later layers loaded
// by Load override values from earlier ones.
type Layer struct {
	// Name identifies the layer in Problems (e.g. "application", "develop").
	Name string
	// Path is the file path to load. Optional layers that don't exist on
	// disk are skipped without failing Load.
	Path string
	// Optional marks the layer as non-fatal when missing or unreadable.
	Optional bool
}

// DefaultLayers mirrors the original bootstrap's base/developer/instance
// layering: a shipped application config, an optional developer override
// for local runs, and an optional per-instance override for the machine
// the process is running on.
func DefaultLayers() []Layer {
	return []Layer{
		{Name: "application", Path: "application.conf", Optional: false},
		{Name: "develop", Path: "develop.conf", Optional: true},
		{Name: "instance", Path: "instance.conf", Optional: true},
	}
}

// EnvPrefix is the prefix Load uses when overlaying environment variables,
// so SIRIUS_HTTP_PORT overrides the http.port key.
const EnvPrefix = "SIRIUS"

// Config is the fully-layered, queryable configuration.
type Config struct {
	v        *viper.Viper
	Problems error
}

// Load builds a Config by applying layers in order, then overlaying the
// process environment last, so an environment variable always wins over
// every file-based layer — matching the original's "environment overrides
// everything" rule.
//
// A required layer that fails to load is returned as an error. An optional
// layer that is missing or unreadable is recorded in the returned Config's
// Problems (a go-multierror chain) and otherwise skipped; Load itself does
// not fail because of it.
func Load(layers []Layer) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	var problems error

	for _, layer := range layers {
		if _, err := os.Stat(layer.Path); err != nil {
			if layer.Optional {
				problems = multierror.Append(problems, fmt.Errorf("layer %s: %w", layer.Name, err))
				continue
			}
			return nil, fmt.Errorf("layer %s: %w", layer.Name, err)
		}

		layerView := viper.New()
		layerView.SetConfigFile(layer.Path)
		layerView.SetConfigType("yaml")
		if err := layerView.ReadInConfig(); err != nil {
			if layer.Optional {
				problems = multierror.Append(problems, fmt.Errorf("layer %s: %w", layer.Name, err))
				continue
			}
			return nil, fmt.Errorf("layer %s: %w", layer.Name, err)
		}
		// File values go in at default precedence, below AutomaticEnv, so
		// the environment overlay still wins; a later layer's SetDefault
		// replaces an earlier one's.
		for _, key := range layerView.AllKeys() {
			v.SetDefault(key, layerView.Get(key))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{v: v, Problems: problems}, nil
}

// Get returns the value at key, or nil if unset.
func (c *Config) Get(key string) any {
	return c.v.Get(key)
}

// GetString returns the string value at key.
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt returns the int value at key.
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetBool returns the bool value at key.
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetDuration returns the duration value at key.
func (c *Config) GetDuration(key string) time.Duration {
	return c.v.GetDuration(key)
}

// IsSet reports whether key has an explicit value from any layer or the
// environment.
func (c *Config) IsSet(key string) bool {
	return c.v.IsSet(key)
}
