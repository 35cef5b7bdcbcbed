// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/jtypes/internal/classutil"
	"github.com/api2spec/jtypes/internal/parser"
	"github.com/api2spec/jtypes/internal/scanner"
)

const orderSource = `package shop;

import java.util.List;

public class Order {
    private List<Item> items;
    private int count;
    private Map<String, Item> index;
    private Customer customer;

    public String label(Integer n) { return ""; }
}
`

const invoiceSource = `package shop;
class Invoice {
    List<Item> lines;
}
`

func testFiles() []scanner.SourceFile {
	return []scanner.SourceFile{
		{Path: "/p/src/Order.java", Content: []byte(orderSource)},
		{Path: "/p/src/Invoice.java", Content: []byte(invoiceSource)},
	}
}

// names returns the type names of entries in order.
func names(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func buildReport(t *testing.T, b *Builder) *Report {
	t.Helper()

	r, err := b.Build(context.Background(), testFiles())
	require.NoError(t, err)
	require.NotNil(t, r)
	return r
}

func TestNewBuilder(t *testing.T) {
	b := NewBuilder()

	assert.True(t, b.IncludeLocations)
	assert.False(t, b.Unique)
	assert.Empty(t, b.Kinds)
}

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder()
	b.BasePath = "/p"
	r := buildReport(t, b)

	assert.Equal(t, 2, r.Files)
	assert.Equal(t, []string{"shop.Invoice", "shop.Order"}, r.Types)
	assert.Empty(t, r.Errors)
	assert.Equal(t, map[classutil.Kind]int{
		classutil.KindCollection:    2,
		classutil.KindPrimitive:     3,
		classutil.KindParameterized: 1,
		classutil.KindReference:     1,
	}, r.Summary)
	assert.Equal(t, 7, r.Total())

	assert.Equal(t, []string{
		"List<Item>",
		"List<Item>",
		"int",
		"Map<String, Item>",
		"Customer",
		"Integer",
		"String",
	}, names(r.Entries))

	first := r.Entries[0]
	assert.Equal(t, "src/Invoice.java", first.File)
	assert.Equal(t, "Invoice", first.Owner)
	assert.Equal(t, parser.RoleField, first.Role)
	assert.Equal(t, 3, first.Line)
	assert.Equal(t, classutil.KindCollection, first.Kind)
	assert.Equal(t, "List", first.ClassName)
	assert.Equal(t, "Item", first.Parameter)
	assert.Zero(t, first.Count)

	last := r.Entries[len(r.Entries)-1]
	assert.Equal(t, "src/Order.java", last.File)
	assert.Equal(t, parser.RoleReturn, last.Role)
	assert.Equal(t, classutil.KindPrimitive, last.Kind)
}

func TestBuilder_Build_WithoutLocations(t *testing.T) {
	b := NewBuilder()
	b.IncludeLocations = false
	r := buildReport(t, b)

	require.Len(t, r.Entries, 7)
	for _, e := range r.Entries {
		assert.Empty(t, e.File)
		assert.Empty(t, e.Owner)
		assert.Empty(t, e.Role)
		assert.Zero(t, e.Line)
	}
}

func TestBuilder_Build_Unique(t *testing.T) {
	b := NewBuilder()
	b.Unique = true
	r := buildReport(t, b)

	assert.Equal(t, []string{
		"Customer",
		"Integer",
		"List<Item>",
		"Map<String, Item>",
		"String",
		"int",
	}, names(r.Entries))
	assert.Equal(t, 2, r.Entries[2].Count)
	assert.Equal(t, 1, r.Entries[0].Count)
	assert.Empty(t, r.Entries[2].File)

	// Summary still counts every reference
	assert.Equal(t, 7, r.Total())
}

func TestBuilder_Build_KindFilter(t *testing.T) {
	tests := []struct {
		name     string
		kinds    []classutil.Kind
		expected []string
	}{
		{
			name:     "collections",
			kinds:    []classutil.Kind{classutil.KindCollection},
			expected: []string{"List<Item>", "List<Item>"},
		},
		{
			name:     "parameterized and reference",
			kinds:    []classutil.Kind{classutil.KindParameterized, classutil.KindReference},
			expected: []string{"Map<String, Item>", "Customer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			b.Kinds = tt.kinds
			r := buildReport(t, b)

			assert.Equal(t, tt.expected, names(r.Entries))
			assert.Len(t, r.Summary, len(tt.kinds))
			assert.Equal(t, len(tt.expected), r.Total())
		})
	}
}

func TestBuilder_Build_SyntaxErrors(t *testing.T) {
	files := []scanner.SourceFile{
		{Path: "Broken.java", Content: []byte("class Broken { List<String> items = ; ")},
	}

	r, err := NewBuilder().Build(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "Broken.java", r.Errors[0].File)
	assert.Contains(t, r.Errors[0].Message, "syntax errors")
}

func TestBuilder_Build_Empty(t *testing.T) {
	r, err := NewBuilder().Build(context.Background(), nil)
	require.NoError(t, err)

	assert.Zero(t, r.Files)
	assert.Empty(t, r.Types)
	assert.Empty(t, r.Entries)
	assert.Zero(t, r.Total())
}

func TestBuilder_Build_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBuilder().Build(ctx, testFiles())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuilder_Build_SpacedAndAnnotatedTypes(t *testing.T) {
	files := []scanner.SourceFile{
		{Path: "A.java", Content: []byte(`class A {
    List <String> xs;
    java.util.@Deprecated List<Long> ids;
    Optional <@NonNull Item> item;
}`)},
	}

	r, err := NewBuilder().Build(context.Background(), files)
	require.NoError(t, err)
	require.Empty(t, r.Errors)

	byName := make(map[string]Entry)
	for _, e := range r.Entries {
		byName[e.Name] = e
	}

	tests := []struct {
		name      string
		kind      classutil.Kind
		className string
		parameter string
	}{
		{name: "List<String>", kind: classutil.KindCollection, className: "List", parameter: "String"},
		{name: "java.util.List<Long>", kind: classutil.KindCollection, className: "List", parameter: "Long"},
		{name: "Optional<Item>", kind: classutil.KindParameterized, className: "Optional", parameter: "Item"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := byName[tt.name]
			require.True(t, ok, "missing entry %s in %v", tt.name, names(r.Entries))
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.className, e.ClassName)
			assert.Equal(t, tt.parameter, e.Parameter)
		})
	}

	assert.Equal(t, 2, r.Summary[classutil.KindCollection])
	assert.Zero(t, r.Summary[classutil.KindReference])
}
