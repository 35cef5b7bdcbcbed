// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package parser extracts declared types and type references from Java source.
package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/api2spec/jtypes/internal/classutil"
)

// TypeKind is the kind of a declared Java type.
type TypeKind string

const (
	TypeClass     TypeKind = "class"
	TypeInterface TypeKind = "interface"
	TypeEnum      TypeKind = "enum"
	TypeRecord    TypeKind = "record"
)

// declarationKinds maps tree-sitter declaration nodes to type kinds.
var declarationKinds = map[string]TypeKind{
	"class_declaration":     TypeClass,
	"interface_declaration": TypeInterface,
	"enum_declaration":      TypeEnum,
	"record_declaration":    TypeRecord,
}

// Role describes where a type reference appears.
type Role string

const (
	RoleField      Role = "field"
	RoleReturn     Role = "return"
	RoleParameter  Role = "parameter"
	RoleLocal      Role = "local"
	RoleExtends    Role = "extends"
	RoleImplements Role = "implements"
)

// JavaParser extracts types from Java source using tree-sitter.
// A JavaParser is not safe for concurrent use.
type JavaParser struct {
	parser *sitter.Parser
}

// NewJavaParser creates a new Java parser.
func NewJavaParser() *JavaParser {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())
	return &JavaParser{
		parser: parser,
	}
}

// JavaType is a class, interface, enum or record declaration.
type JavaType struct {
	// Name is the simple name
	Name string

	// QualifiedName is the package-qualified name, including enclosing types
	QualifiedName string

	// Kind is the declaration kind
	Kind TypeKind

	// Line is the source line number
	Line int
}

// TypeReference is a use of a type in a declaration.
type TypeReference struct {
	// Type is the type as written, with whitespace collapsed
	Type string

	// Role is where the type appears
	Role Role

	// Owner is the dotted name of the enclosing type (e.g. "Outer.Inner")
	Owner string

	// Line is the source line number
	Line int
}

// ParsedJavaFile represents a parsed Java source file.
type ParsedJavaFile struct {
	// Path is the file path
	Path string

	// Package is the package name
	Package string

	// QualifiedName is the class name implied by the file name and package.
	// It is empty for files without a package declaration.
	QualifiedName string

	// Imports are the imported names, without a trailing ".*"
	Imports []string

	// Types are the declared types, outer types first
	Types []JavaType

	// References are the type references in source order
	References []TypeReference

	// HasErrors is set when tree-sitter recovered from syntax errors
	HasErrors bool
}

// ParseFile parses a Java source file from disk.
func (p *JavaParser) ParseFile(ctx context.Context, path string) (*ParsedJavaFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return p.Parse(ctx, path, content)
}

// Parse parses Java source code from bytes.
func (p *JavaParser) Parse(ctx context.Context, filename string, content []byte) (*ParsedJavaFile, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Java: %w", err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode == nil {
		return nil, fmt.Errorf("failed to get root node")
	}

	pf := &ParsedJavaFile{
		Path:       filename,
		Imports:    []string{},
		Types:      []JavaType{},
		References: []TypeReference{},
		HasErrors:  rootNode.HasError(),
	}

	for i := 0; i < int(rootNode.NamedChildCount()); i++ {
		child := rootNode.NamedChild(i)
		switch child.Type() {
		case "package_declaration":
			pf.Package = p.extractPackageName(child, content)
		case "import_declaration":
			if imp := p.extractImport(child, content); imp != "" {
				pf.Imports = append(pf.Imports, imp)
			}
		default:
			if _, ok := declarationKinds[child.Type()]; ok {
				p.extractType(pf, child, content, "")
			}
		}
	}

	if pf.Package != "" && strings.Contains(filepath.Base(filename), ".") {
		pf.QualifiedName = classutil.GetFullyQualifiedName(filename, pf.Package)
	}

	return pf, nil
}

// extractPackageName returns the dotted name of a package declaration.
func (p *JavaParser) extractPackageName(node *sitter.Node, content []byte) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "scoped_identifier" || child.Type() == "identifier" {
			return child.Content(content)
		}
	}
	return ""
}

// extractImport returns the imported name of an import declaration.
func (p *JavaParser) extractImport(node *sitter.Node, content []byte) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "scoped_identifier" || child.Type() == "identifier" {
			return strings.TrimSuffix(child.Content(content), ".*")
		}
	}
	return ""
}

// extractType records a type declaration and everything referenced in it.
// owner is the dotted name of the enclosing type, empty for top-level types.
func (p *JavaParser) extractType(pf *ParsedJavaFile, node *sitter.Node, content []byte, owner string) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := joinName(owner, nameNode.Content(content))

	pf.Types = append(pf.Types, JavaType{
		Name:          nameNode.Content(content),
		QualifiedName: joinName(pf.Package, name),
		Kind:          declarationKinds[node.Type()],
		Line:          line(node),
	})

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "superclass":
			if child.NamedChildCount() > 0 {
				p.addReference(pf, child.NamedChild(0), content, RoleExtends, name)
			}
		case "super_interfaces":
			p.addTypeList(pf, child, content, RoleImplements, name)
		case "extends_interfaces":
			p.addTypeList(pf, child, content, RoleExtends, name)
		case "formal_parameters":
			// Record components
			p.addParameters(pf, child, content, name)
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		p.extractBody(pf, body, content, name)
	}
}

// extractBody walks a class, interface, enum or record body.
func (p *JavaParser) extractBody(pf *ParsedJavaFile, body *sitter.Node, content []byte, owner string) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)

		if _, ok := declarationKinds[member.Type()]; ok {
			p.extractType(pf, member, content, owner)
			continue
		}

		switch member.Type() {
		case "field_declaration", "constant_declaration":
			p.addReference(pf, member.ChildByFieldName("type"), content, RoleField, owner)

		case "method_declaration":
			p.addReference(pf, member.ChildByFieldName("type"), content, RoleReturn, owner)
			p.addParameters(pf, member.ChildByFieldName("parameters"), content, owner)
			p.extractLocals(pf, member.ChildByFieldName("body"), content, owner)

		case "constructor_declaration", "compact_constructor_declaration":
			p.addParameters(pf, member.ChildByFieldName("parameters"), content, owner)
			p.extractLocals(pf, member.ChildByFieldName("body"), content, owner)

		case "enum_body_declarations", "class_body":
			p.extractBody(pf, member, content, owner)

		case "enum_constant":
			// Constant-specific class bodies
			if constBody := member.ChildByFieldName("body"); constBody != nil {
				p.extractBody(pf, constBody, content, owner)
			}

		case "static_initializer", "block":
			p.extractLocals(pf, member, content, owner)
		}
	}
}

// extractLocals collects local variable types inside a code block. Local and
// anonymous class bodies found on the way are extracted as members.
func (p *JavaParser) extractLocals(pf *ParsedJavaFile, node *sitter.Node, content []byte, owner string) {
	if node == nil {
		return
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)

		if _, ok := declarationKinds[child.Type()]; ok {
			p.extractType(pf, child, content, owner)
			continue
		}

		switch child.Type() {
		case "local_variable_declaration", "enhanced_for_statement", "resource":
			p.addReference(pf, child.ChildByFieldName("type"), content, RoleLocal, owner)
		case "class_body":
			p.extractBody(pf, child, content, owner)
			continue
		}

		p.extractLocals(pf, child, content, owner)
	}
}

// addParameters records the types of a formal_parameters node.
func (p *JavaParser) addParameters(pf *ParsedJavaFile, params *sitter.Node, content []byte, owner string) {
	if params == nil {
		return
	}

	for i := 0; i < int(params.NamedChildCount()); i++ {
		param := params.NamedChild(i)
		switch param.Type() {
		case "formal_parameter":
			p.addReference(pf, param.ChildByFieldName("type"), content, RoleParameter, owner)
		case "spread_parameter":
			// Varargs have no type field; the type is the first child after modifiers
			for j := 0; j < int(param.NamedChildCount()); j++ {
				t := param.NamedChild(j)
				if t.Type() != "modifiers" && t.Type() != "variable_declarator" {
					p.addReference(pf, t, content, RoleParameter, owner)
					break
				}
			}
		}
	}
}

// addTypeList records every type in the type_list under node.
func (p *JavaParser) addTypeList(pf *ParsedJavaFile, node *sitter.Node, content []byte, role Role, owner string) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		list := node.NamedChild(i)
		if list.Type() != "type_list" {
			continue
		}
		for j := 0; j < int(list.NamedChildCount()); j++ {
			p.addReference(pf, list.NamedChild(j), content, role, owner)
		}
	}
}

// addReference records typeNode unless it is void or an inferred var.
func (p *JavaParser) addReference(pf *ParsedJavaFile, typeNode *sitter.Node, content []byte, role Role, owner string) {
	if typeNode == nil || typeNode.Type() == "void_type" {
		return
	}

	text := normalizeType(typeText(typeNode, content))
	if text == "" || text == "var" {
		return
	}

	pf.References = append(pf.References, TypeReference{
		Type:  text,
		Role:  role,
		Owner: owner,
		Line:  line(typeNode),
	})
}

// typeText returns the source text of a type node with type-use annotations
// (java.util.@Deprecated List, List<@NonNull String>) cut out.
func typeText(node *sitter.Node, content []byte) string {
	var sb strings.Builder
	pos := node.StartByte()

	var cut func(n *sitter.Node)
	cut = func(n *sitter.Node) {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			switch child.Type() {
			case "annotation", "marker_annotation":
				sb.Write(content[pos:child.StartByte()])
				sb.WriteByte(' ')
				pos = child.EndByte()
			default:
				cut(child)
			}
		}
	}
	cut(node)

	sb.Write(content[pos:node.EndByte()])
	return sb.String()
}

// normalizeType collapses runs of whitespace, including newlines inside
// long generic declarations, to single spaces. Spaces next to angle
// brackets, dots and array brackets are dropped, so "List <String>" reads
// "List<String>". A space after a comma is kept.
func normalizeType(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fields[0])
	for _, f := range fields[1:] {
		prev := sb.String()[sb.Len()-1]
		if !strings.ContainsRune("<.", rune(prev)) && !strings.ContainsRune("<>,.[]", rune(f[0])) {
			sb.WriteByte(' ')
		}
		sb.WriteString(f)
	}
	return sb.String()
}

// joinName builds a dotted name, skipping an empty parent.
func joinName(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func line(node *sitter.Node) int {
	return int(node.StartPoint().Row) + 1
}

// Close releases the underlying tree-sitter parser.
func (p *JavaParser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}
