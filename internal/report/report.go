// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package report builds type classification reports for Java sources.
package report

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/api2spec/jtypes/internal/classutil"
	"github.com/api2spec/jtypes/internal/parser"
	"github.com/api2spec/jtypes/internal/scanner"
)

// Report is the classification of every type reference in a set of files.
type Report struct {
	// Files is the number of files examined
	Files int `json:"files" yaml:"files"`

	// Types are the fully qualified names of the declared types, sorted
	Types []string `json:"types" yaml:"types"`

	// Entries are the classified type references
	Entries []Entry `json:"entries" yaml:"entries"`

	// Summary counts matching references per kind
	Summary map[classutil.Kind]int `json:"summary" yaml:"summary"`

	// Errors are per-file problems that did not stop the build
	Errors []FileError `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Entry is one classified type reference.
type Entry struct {
	classutil.TypeInfo `yaml:",inline"`

	File  string      `json:"file,omitempty" yaml:"file,omitempty"`
	Owner string      `json:"owner,omitempty" yaml:"owner,omitempty"`
	Role  parser.Role `json:"role,omitempty" yaml:"role,omitempty"`
	Line  int         `json:"line,omitempty" yaml:"line,omitempty"`

	// Count is the number of references collapsed into a unique entry
	Count int `json:"count,omitempty" yaml:"count,omitempty"`
}

// FileError records a file that could not be parsed cleanly.
type FileError struct {
	File    string `json:"file" yaml:"file"`
	Message string `json:"message" yaml:"message"`
}

// Builder assembles reports from scanned source files.
type Builder struct {
	// Kinds restricts entries to these kinds; empty means all
	Kinds []classutil.Kind

	// IncludeLocations keeps file, owner, role and line on each entry
	IncludeLocations bool

	// Unique collapses entries with the same type name
	Unique bool

	// BasePath, when set, makes entry file paths relative to it
	BasePath string
}

// NewBuilder creates a Builder that reports every kind with locations.
func NewBuilder() *Builder {
	return &Builder{
		IncludeLocations: true,
	}
}

// Build parses files and classifies every type reference they contain.
// It stops early only when ctx is cancelled.
func (b *Builder) Build(ctx context.Context, files []scanner.SourceFile) (*Report, error) {
	p := parser.NewJavaParser()
	defer p.Close()

	r := &Report{
		Files:   len(files),
		Types:   []string{},
		Entries: []Entry{},
		Summary: make(map[classutil.Kind]int),
	}

	declared := make(map[string]bool)
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("report cancelled: %w", err)
		}

		path := b.displayPath(file.Path)
		pf, err := p.Parse(ctx, file.Path, file.Content)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("report cancelled: %w", ctx.Err())
			}
			r.Errors = append(r.Errors, FileError{File: path, Message: err.Error()})
			continue
		}
		if pf.HasErrors {
			r.Errors = append(r.Errors, FileError{File: path, Message: "syntax errors, results may be incomplete"})
		}

		for _, jt := range pf.Types {
			if !declared[jt.QualifiedName] {
				declared[jt.QualifiedName] = true
				r.Types = append(r.Types, jt.QualifiedName)
			}
		}

		for _, ref := range pf.References {
			info := classutil.Describe(ref.Type)
			if !b.wants(info.Kind) {
				continue
			}
			r.Summary[info.Kind]++

			entry := Entry{TypeInfo: info}
			if b.IncludeLocations && !b.Unique {
				entry.File = path
				entry.Owner = ref.Owner
				entry.Role = ref.Role
				entry.Line = ref.Line
			}
			r.Entries = append(r.Entries, entry)
		}
	}

	sort.Strings(r.Types)
	if b.Unique {
		r.Entries = collapse(r.Entries)
	}
	sortEntries(r.Entries)

	return r, nil
}

// wants reports whether entries of kind k belong in the report.
func (b *Builder) wants(k classutil.Kind) bool {
	if len(b.Kinds) == 0 {
		return true
	}
	for _, want := range b.Kinds {
		if want == k {
			return true
		}
	}
	return false
}

func (b *Builder) displayPath(path string) string {
	if b.BasePath == "" {
		return path
	}
	rel, err := filepath.Rel(b.BasePath, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// collapse merges entries with the same type name, keeping first-seen order.
func collapse(entries []Entry) []Entry {
	index := make(map[string]int)
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if i, ok := index[e.Name]; ok {
			out[i].Count++
			continue
		}
		index[e.Name] = len(out)
		e.Count = 1
		out = append(out, e)
	}
	return out
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Name < b.Name
	})
}

// Total returns the number of references the report covers.
func (r *Report) Total() int {
	total := 0
	for _, n := range r.Summary {
		total += n
	}
	return total
}
