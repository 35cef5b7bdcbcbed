// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultIncludePatterns matches every Java file below the base path.
var DefaultIncludePatterns = []string{"**/*.java"}

// Config holds scanner configuration.
type Config struct {
	// BasePath is the directory patterns are matched against (defaults to ".")
	BasePath string

	// IncludePatterns are glob patterns for files to include (e.g., "src/**/*.java")
	IncludePatterns []string

	// ExcludePatterns are glob patterns for files to exclude (e.g., "target/**")
	ExcludePatterns []string
}

// Scanner discovers Java source files in a project.
type Scanner struct {
	config Config
	base   string
}

// New creates a new Scanner with the given configuration.
func New(config Config) *Scanner {
	if config.BasePath == "" {
		config.BasePath = "."
	}
	if len(config.IncludePatterns) == 0 {
		config.IncludePatterns = DefaultIncludePatterns
	}

	base, err := filepath.Abs(config.BasePath)
	if err != nil {
		base = config.BasePath
	}

	return &Scanner{
		config: config,
		base:   base,
	}
}

// ScanPath scans a file or directory for Java files and reads their content.
// Patterns are matched relative to path, or to its directory when path is a file.
func (s *Scanner) ScanPath(path string) ([]SourceFile, error) {
	var files []SourceFile
	err := s.walk(path, func(filePath string, info fs.FileInfo) {
		content, err := os.ReadFile(filePath)
		if err != nil {
			// Unreadable files are skipped
			return
		}
		files = append(files, SourceFile{
			Path:    filePath,
			Content: content,
			ModTime: info.ModTime(),
		})
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ScanPaths scans multiple paths, dropping files reached more than once.
// With no paths it scans the base path.
func (s *Scanner) ScanPaths(paths []string) ([]SourceFile, error) {
	if len(paths) == 0 {
		paths = []string{s.base}
	}

	var allFiles []SourceFile
	seen := make(map[string]bool)

	for _, path := range paths {
		files, err := s.ScanPath(path)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if !seen[f.Path] {
				seen[f.Path] = true
				allFiles = append(allFiles, f)
			}
		}
	}

	return allFiles, nil
}

// FileCount returns the number of matching files under paths without
// reading them. With no paths it counts the base path.
func (s *Scanner) FileCount(paths ...string) (int, error) {
	if len(paths) == 0 {
		paths = []string{s.base}
	}

	count := 0
	for _, path := range paths {
		if err := s.walk(path, func(string, fs.FileInfo) { count++ }); err != nil {
			return 0, err
		}
	}
	return count, nil
}

// Dirs returns every non-excluded directory below path, including path itself.
// A file path yields its parent directory.
func (s *Scanner) Dirs(path string) ([]string, error) {
	absPath, info, err := stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{filepath.Dir(absPath)}, nil
	}

	var dirs []string
	err = filepath.WalkDir(absPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if s.shouldExcludeDir(s.base, p) {
			return filepath.SkipDir
		}
		dirs = append(dirs, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	return dirs, nil
}

// Matches reports whether path would be collected by a scan of the base path.
// The path need not exist.
func (s *Scanner) Matches(path string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	if rel := s.relative(s.base, absPath); strings.HasPrefix(rel, "../") {
		return false
	}
	return s.matches(s.base, absPath)
}

// Covers reports whether path lies under the base path outside any
// excluded directory. The path need not exist.
func (s *Scanner) Covers(path string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel := s.relative(s.base, absPath)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return false
	}
	return !s.shouldExcludeDir(s.base, absPath)
}

// matches reports whether the file at absPath is collected when scanning root.
func (s *Scanner) matches(root, absPath string) bool {
	if !IsJavaFile(absPath) {
		return false
	}
	rel := s.relative(root, absPath)
	if matchesPatterns(rel, s.config.ExcludePatterns) {
		return false
	}
	return matchesPatterns(rel, s.config.IncludePatterns)
}

func stat(path string) (string, fs.FileInfo, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("path does not exist: %s", absPath)
		}
		return "", nil, fmt.Errorf("failed to stat path: %w", err)
	}
	return absPath, info, nil
}

// walk calls fn for every file below path that the scanner matches.
// Patterns are relative to path, or to its directory for a file.
func (s *Scanner) walk(path string, fn func(string, fs.FileInfo)) error {
	absPath, info, err := stat(path)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		if s.matches(filepath.Dir(absPath), absPath) {
			fn(absPath, info)
		}
		return nil
	}

	err = filepath.WalkDir(absPath, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip inaccessible paths
			return nil
		}

		if d.IsDir() {
			if s.shouldExcludeDir(absPath, filePath) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.matches(absPath, filePath) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		fn(filePath, info)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk directory: %w", err)
	}
	return nil
}

// relative returns path relative to root, with forward slashes.
func (s *Scanner) relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

// shouldExcludeDir reports whether a directory is covered by an exclude pattern
// such as "target/**".
func (s *Scanner) shouldExcludeDir(root, dir string) bool {
	rel := s.relative(root, dir)
	if rel == "." || strings.HasPrefix(rel, "../") {
		return false
	}

	for _, pattern := range s.config.ExcludePatterns {
		dirPattern := strings.TrimSuffix(pattern, "/**")
		dirPattern = strings.TrimSuffix(dirPattern, "/*")
		if rel == dirPattern {
			return true
		}

		// Also check whether the pattern would cover any file in this directory
		if matched, _ := doublestar.Match(pattern, rel+"/Placeholder.java"); matched {
			return true
		}
	}

	return false
}

// matchesPatterns reports whether path matches any of the glob patterns.
// Invalid patterns never match.
func matchesPatterns(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}
