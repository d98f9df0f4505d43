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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLayer(t *testing.T, dir, name, body string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesLayersInOrder(t *testing.T) {
	dir := t.TempDir()
	app := writeLayer(t, dir, "application.conf", "http:\n  port: 8080\nname: base\n")
	instance := writeLayer(t, dir, "instance.conf", "http:\n  port: 9090\n")

	cfg, err := Load([]Layer{
		{Name: "application", Path: app},
		{Name: "instance", Path: instance, Optional: true},
	})
	require.NoError(t, err)
	require.NoError(t, cfg.Problems)

	assert.Equal(t, 9090, cfg.GetInt("http.port"), "instance layer overrides application layer")
	assert.Equal(t, "base", cfg.GetString("name"))
}

func TestLoadRecordsMissingOptionalLayerAsProblem(t *testing.T) {
	dir := t.TempDir()
	app := writeLayer(t, dir, "application.conf", "name: base\n")

	cfg, err := Load([]Layer{
		{Name: "application", Path: app},
		{Name: "develop", Path: filepath.Join(dir, "develop.conf"), Optional: true},
	})
	require.NoError(t, err)
	require.Error(t, cfg.Problems)
	assert.Contains(t, cfg.Problems.Error(), "develop")
}

func TestLoadFailsOnMissingRequiredLayer(t *testing.T) {
	dir := t.TempDir()

	_, err := Load([]Layer{
		{Name: "application", Path: filepath.Join(dir, "application.conf"), Optional: false},
	})
	require.Error(t, err)
}

func TestLoadEnvironmentOverridesFileLayers(t *testing.T) {
	dir := t.TempDir()
	app := writeLayer(t, dir, "application.conf", "http:\n  port: 8080\n")

	t.Setenv("SIRIUS_HTTP_PORT", "7070")

	cfg, err := Load([]Layer{{Name: "application", Path: app}})
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.GetInt("http.port"), "environment variable wins over every file layer")
}

func TestIsSetDistinguishesUnsetKeys(t *testing.T) {
	dir := t.TempDir()
	app := writeLayer(t, dir, "application.conf", "name: base\n")

	cfg, err := Load([]Layer{{Name: "application", Path: app}})
	require.NoError(t, err)

	assert.True(t, cfg.IsSet("name"))
	assert.False(t, cfg.IsSet("nonexistent"))
}
