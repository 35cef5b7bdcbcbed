// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/jtypes/internal/config"
)

func TestDetectSourceRoots(t *testing.T) {
	tests := []struct {
		name     string
		dirs     []string
		expected []string
	}{
		{
			name:     "maven layout",
			dirs:     []string{"src/main/java", "src/test/java"},
			expected: []string{"./src/main/java"},
		},
		{
			name:     "android gradle layout",
			dirs:     []string{"app/src/main/java"},
			expected: []string{"./app/src/main/java"},
		},
		{
			name:     "plain src",
			dirs:     []string{"src/com/example"},
			expected: []string{"./src"},
		},
		{
			name:     "no source roots",
			dirs:     []string{"docs"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, d := range tt.dirs {
				require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(d)), 0o755))
			}

			assert.Equal(t, tt.expected, detectSourceRoots(root))
		})
	}
}

func TestBuildConfigYAML(t *testing.T) {
	cfg := config.Default()

	data, err := buildConfigYAML(cfg)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(data, "# jtypes configuration file\n"))
	assert.Contains(t, data, "format: text")
	assert.Contains(t, data, "includeLocations: true")
	assert.Contains(t, data, "debounce: 500")
	assert.Contains(t, data, "**/*.java")
}

func TestInteractiveInit(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantPaths []string
		wantOut   string
		wantFmt   string
		wantKinds []string
	}{
		{
			name:      "all answers",
			input:     "src, lib\nreport.yaml\nyaml\ncollection,primitive\n",
			wantPaths: []string{"src", "lib"},
			wantOut:   "report.yaml",
			wantFmt:   "yaml",
			wantKinds: []string{"collection", "primitive"},
		},
		{
			name:      "keep defaults",
			input:     "\n\n\n\n",
			wantPaths: []string{"."},
			wantOut:   "",
			wantFmt:   "text",
			wantKinds: nil,
		},
		{
			name:      "end of input",
			input:     "",
			wantPaths: []string{"."},
			wantOut:   "",
			wantFmt:   "text",
			wantKinds: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prompts bytes.Buffer
			cfg, err := interactiveInit(config.Default(), strings.NewReader(tt.input), &prompts)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPaths, cfg.Source.Paths)
			assert.Equal(t, tt.wantOut, cfg.Output)
			assert.Equal(t, tt.wantFmt, cfg.Format)
			assert.Equal(t, tt.wantKinds, cfg.Report.Kinds)
			assert.Contains(t, prompts.String(), "Output format (text/yaml/json) [")
		})
	}
}

func TestInitCommand(t *testing.T) {
	dir := setupProject(t, map[string]string{
		"src/main/java/App.java": "class App {}",
	})

	output, err := executeCommand(rootCmd, "init")
	require.NoError(t, err)
	assert.Contains(t, output, "Created jtypes.yaml")

	cfg, err := config.LoadFromPath(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"./src/main/java"}, cfg.Source.Paths)
	assert.Equal(t, "text", cfg.Format)
	assert.NoError(t, cfg.Validate())

	_, err = executeCommand(rootCmd, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = executeCommand(rootCmd, "init", "--force", "-f", "json")
	require.NoError(t, err)

	cfg, err = config.LoadFromPath(dir)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
}

func TestInitCommand_InvalidFormat(t *testing.T) {
	setupProject(t, nil)

	_, err := executeCommand(rootCmd, "init", "-f", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	_, statErr := os.Stat("jtypes.yaml")
	assert.True(t, os.IsNotExist(statErr))
}

func TestInitCommand_ExistingConfigFile(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{name: "yaml", file: "jtypes.yaml"},
		{name: "json", file: "jtypes.json"},
		{name: "hidden yaml", file: ".jtypes.yaml"},
		{name: "hidden json", file: ".jtypes.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupProject(t, map[string]string{
				tt.file: "{}",
			})

			_, err := executeCommand(rootCmd, "init")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.file+" already exists")

			_, err = executeCommand(rootCmd, "init", "--force")
			require.NoError(t, err)

			_, statErr := os.Stat("jtypes.yaml")
			assert.NoError(t, statErr)
		})
	}
}
