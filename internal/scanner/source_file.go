// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package scanner discovers Java source files for type analysis.
package scanner

import (
	"path/filepath"
	"strings"
	"time"
)

// JavaExtension is the only source extension the scanner collects.
const JavaExtension = ".java"

// SourceFile represents a discovered Java source file.
type SourceFile struct {
	// Path is the absolute path to the file
	Path string

	// Content is the file content
	Content []byte

	// ModTime is the last modification time
	ModTime time.Time
}

// IsJavaFile reports whether path has a .java extension, ignoring case.
func IsJavaFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), JavaExtension)
}
