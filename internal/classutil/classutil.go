// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package classutil classifies and transforms textual Java class names.
//
// The functions operate on type names as they appear in source code or
// reflection metadata ("java.util.List", "Map<String, Integer>", "int").
// They are pure and safe for concurrent use.
//
// Functions with an input precondition (a required "." or "<") panic with an
// error wrapping ErrInvalidArgument when it is violated. Misuse is a caller
// bug, not a recoverable condition.
package classutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrInvalidArgument is wrapped by the panic value of functions whose input
// precondition does not hold.
var ErrInvalidArgument = errors.New("invalid argument")

const (
	utilPackagePrefix = "java.util."
	langPackagePrefix = "java.lang."
)

// collectionTypes holds unqualified names of java.util collection interfaces
// and implementations.
var collectionTypes = newSet(
	// Interfaces
	"Collection", "BeanContext", "BeanContextServices", "BlockingQueue", "List",
	"Queue", "Set", "SortedSet",

	// Implementations
	"AbstractCollection", "AbstractList", "AbstractQueue", "AbstractSequentialList",
	"AbstractSet", "ArrayBlockingQueue", "ArrayList", "AttributeList",
	"BeanContextServicesSupport", "ConcurrentLinkedQueue", "CopyOnWriteArrayList",
	"CopyOnWriteArraySet", "DelayQueue", "EnumSet", "HashSet", "JobStateReasons",
	"LinkedBlockingQueue", "LinkedHashSet", "LinkedList", "PriorityBlockingQueue",
	"PriorityQueue", "RoleList", "RoleUnresolvedList", "Stack", "SynchronousQueue",
	"TreeSet", "Vector",
)

// primitiveTypes holds lower-cased primitive names and their wrappers.
var primitiveTypes = newSet(
	"byte", "char", "character", "int", "integer", "double", "float", "long",
	"short", "boolean", "string",
)

func newSet(names ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func sortedKeys(s map[string]struct{}) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CollectionTypes returns the recognized collection names, sorted.
func CollectionTypes() []string {
	return sortedKeys(collectionTypes)
}

// PrimitiveTypes returns the recognized primitive and wrapper names
// (lower-cased), sorted.
func PrimitiveTypes() []string {
	return sortedKeys(primitiveTypes)
}

func invalid(format string, args ...interface{}) {
	panic(fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...)))
}

// GetClassName returns the part of a fully-qualified name after the last ".".
// A name without a "." is returned unchanged.
func GetClassName(fullyQualifiedName string) string {
	return fullyQualifiedName[strings.LastIndex(fullyQualifiedName, ".")+1:]
}

// GetFullyQualifiedName joins packageName with the type name taken from a
// source file. The type name is the file's base name up to its first ".", so
// "My.Generated.Type.java" yields "My".
//
// It panics if the base name contains no ".".
func GetFullyQualifiedName(fileName, packageName string) string {
	name := filepath.Base(fileName)
	dot := strings.Index(name, ".")
	if dot < 0 {
		invalid("file name %q has no extension", name)
	}
	return packageName + "." + name[:dot]
}

// IsParameterized reports whether typeName contains both "<" and ">".
// Ordering and balance are not checked.
func IsParameterized(typeName string) bool {
	return strings.Contains(typeName, "<") && strings.Contains(typeName, ">")
}

// ExtractParameterization returns the text between the first "<" and the
// last ">" of typeName. Nested parameters are kept verbatim:
// "Map<String, List<Integer>>" yields "String, List<Integer>".
//
// ok is false when typeName is not parameterized. It panics when the last ">"
// precedes the first "<".
func ExtractParameterization(typeName string) (param string, ok bool) {
	if !IsParameterized(typeName) {
		return "", false
	}
	start := strings.Index(typeName, "<") + 1
	end := strings.LastIndex(typeName, ">")
	if end < start {
		invalid("malformed parameterization in %q", typeName)
	}
	return typeName[start:end], true
}

// RemoveParameterization returns typeName up to its first "<".
//
// It panics if typeName contains no "<".
func RemoveParameterization(typeName string) string {
	i := strings.Index(typeName, "<")
	if i < 0 {
		invalid("%q is not parameterized", typeName)
	}
	return typeName[:i]
}

// IsCollection reports whether typeName names a known collection type,
// with or without type arguments and the java.util package.
//
// When the name contains "java.util." anywhere, its first ten bytes are
// dropped, so the package is only recognized as a prefix.
func IsCollection(typeName string) bool {
	if IsParameterized(typeName) {
		typeName = RemoveParameterization(typeName)
	}
	if strings.Contains(typeName, utilPackagePrefix) {
		typeName = typeName[len(utilPackagePrefix):]
	}
	_, ok := collectionTypes[typeName]
	return ok
}

// IsPrimitiveType reports whether typeName names a primitive or its wrapper,
// ignoring case. java.lang is stripped the same way IsCollection strips
// java.util.
func IsPrimitiveType(typeName string) bool {
	typeName = strings.ToLower(typeName)
	if strings.Contains(typeName, langPackagePrefix) {
		typeName = typeName[len(langPackagePrefix):]
	}
	_, ok := primitiveTypes[typeName]
	return ok
}
