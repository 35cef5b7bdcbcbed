// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/jtypes/internal/classutil"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()

	b := NewBuilder()
	b.BasePath = "/p"
	return buildReport(t, b)
}

func TestNewWriter(t *testing.T) {
	w := NewWriter()
	assert.Equal(t, 2, w.Indent)
}

func TestWriter_WriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter().WriteJSON(sampleReport(t), &buf))
	out := buf.String()

	assert.Contains(t, out, `"kind": "collection"`)
	assert.Contains(t, out, `"className": "List"`)
	assert.Contains(t, out, `"file": "src/Order.java"`)
	assert.NotContains(t, out, `"count"`)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.EqualValues(t, 2, decoded["files"])
	assert.Len(t, decoded["entries"], 7)
}

func TestWriter_WriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter().Write(sampleReport(t), &buf, "yml"))
	out := buf.String()

	assert.Contains(t, out, "summary:")
	assert.Contains(t, out, "parameter: Item")
	assert.Contains(t, out, "rawType: Map")

	var decoded struct {
		Types   []string       `yaml:"types"`
		Summary map[string]int `yaml:"summary"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, []string{"shop.Invoice", "shop.Order"}, decoded.Types)
	assert.Equal(t, 3, decoded.Summary["primitive"])
}

func TestWriter_WriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter().WriteText(sampleReport(t), &buf))
	out := buf.String()

	assert.Contains(t, out, "Scanned 2 files, 2 types declared, 7 type references")
	assert.Contains(t, out, "Primitive (3)")
	assert.Contains(t, out, "Collection (2)")
	assert.Contains(t, out, "Parameterized (1)")
	assert.Contains(t, out, "Reference (1)")
	assert.Contains(t, out, "src/Order.java:6")
	assert.Contains(t, out, "<String, Item>")
	assert.NotContains(t, out, "Errors")
}

func TestWriter_WriteText_UniqueAndErrors(t *testing.T) {
	r := &Report{
		Files: 1,
		Entries: []Entry{
			{
				TypeInfo: classutil.TypeInfo{
					Name:      "List<String>",
					ClassName: "List",
					Kind:      classutil.KindCollection,
				},
				Count: 3,
			},
		},
		Summary: map[classutil.Kind]int{classutil.KindCollection: 3},
		Errors:  []FileError{{File: "Bad.java", Message: "boom"}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter().WriteText(r, &buf))
	out := buf.String()

	assert.Contains(t, out, "x3")
	assert.Contains(t, out, "Errors (1)")
	assert.Contains(t, out, "Bad.java")
	assert.Contains(t, out, "boom")
}

func TestWriter_Write_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter().Write(sampleReport(t), &buf, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"report.yaml", "yaml"},
		{"report.YML", "yaml"},
		{"out/report.json", "json"},
		{"report.txt", "text"},
		{"report", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatFromPath(tt.path))
		})
	}
}

func TestWriter_WriteFile(t *testing.T) {
	dir := t.TempDir()
	r := sampleReport(t)
	w := NewWriter()

	jsonPath := filepath.Join(dir, "nested", "types.json")
	require.NoError(t, w.WriteFile(r, jsonPath, ""))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))

	textPath := filepath.Join(dir, "types.json.txt")
	require.NoError(t, w.WriteFile(r, textPath, ""))
	data, err = os.ReadFile(textPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Scanned 2 files")

	yamlPath := filepath.Join(dir, "types.out")
	require.NoError(t, w.WriteFile(r, yamlPath, "yaml"))
	data, err = os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "entries:")
}
