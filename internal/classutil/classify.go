// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package classutil

import "strings"

// Kind is the coarse classification of a type name.
type Kind string

const (
	// KindPrimitive is a primitive type or its wrapper (int, Integer, String).
	KindPrimitive Kind = "primitive"

	// KindCollection is a known collection type, parameterized or not.
	KindCollection Kind = "collection"

	// KindParameterized is a parameterized type that is not a collection
	// (Map<K, V>, Optional<T>).
	KindParameterized Kind = "parameterized"

	// KindReference is any other type.
	KindReference Kind = "reference"
)

// Kinds returns all kinds in classification precedence order.
func Kinds() []Kind {
	return []Kind{KindPrimitive, KindCollection, KindParameterized, KindReference}
}

// ParseKind returns the Kind named by s, ignoring case.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, true
		}
	}
	return "", false
}

// TypeInfo is the full classification of a single type name.
type TypeInfo struct {
	// Name is the type name as given, trimmed of surrounding whitespace
	Name string `json:"name" yaml:"name"`

	// ClassName is the unqualified name of the raw type
	ClassName string `json:"className" yaml:"className"`

	// RawType is the name with its parameterization removed
	RawType string `json:"rawType" yaml:"rawType"`

	// Parameter is the text between the outermost angle brackets
	Parameter string `json:"parameter,omitempty" yaml:"parameter,omitempty"`

	// Kind is the coarse classification
	Kind Kind `json:"kind" yaml:"kind"`

	Parameterized bool `json:"parameterized" yaml:"parameterized"`
	Collection    bool `json:"collection" yaml:"collection"`
	Primitive     bool `json:"primitive" yaml:"primitive"`
}

// Classify returns the Kind of typeName. Primitive wins over collection,
// which wins over parameterized.
func Classify(typeName string) Kind {
	return Describe(typeName).Kind
}

// Describe classifies typeName. Unlike the individual operations it never
// panics on malformed input.
func Describe(typeName string) TypeInfo {
	name := strings.TrimSpace(typeName)
	info := TypeInfo{
		Name:          name,
		RawType:       name,
		Parameterized: IsParameterized(name),
		Collection:    IsCollection(name),
		Primitive:     IsPrimitiveType(name),
	}

	if strings.Contains(name, "<") {
		info.RawType = strings.TrimSpace(RemoveParameterization(name))
	}
	if info.Parameterized && strings.LastIndex(name, ">") > strings.Index(name, "<") {
		info.Parameter, _ = ExtractParameterization(name)
	}
	info.ClassName = GetClassName(info.RawType)

	switch {
	case info.Primitive:
		info.Kind = KindPrimitive
	case info.Collection:
		info.Kind = KindCollection
	case info.Parameterized:
		info.Kind = KindParameterized
	default:
		info.Kind = KindReference
	}

	return info
}
