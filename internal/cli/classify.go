// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/api2spec/jtypes/internal/classutil"
	"github.com/api2spec/jtypes/internal/parser"
)

var (
	classifyFQNFrom string
	classifyPackage string
)

var classifyCmd = &cobra.Command{
	Use:   "classify <type>...",
	Short: "Classify Java type names",
	Long: `Classify one or more Java type names.

Each name is reported with its kind (primitive, collection, parameterized
or reference), its unqualified class name and its type parameters.
Quote names containing angle brackets or spaces.

With --fqn-from, the fully qualified name of the type declared by a source
file is printed as well. The package is read from the file unless --package
is given.

Example:
  jtypes classify int "List<String>" java.util.ArrayList
  jtypes classify "Map<String, List<Integer>>" -f json
  jtypes classify --fqn-from src/com/shop/Order.java
  jtypes classify --fqn-from Order.java --package com.shop`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringVar(&classifyFQNFrom, "fqn-from", "", "source file to derive a fully qualified name from")
	classifyCmd.Flags().StringVar(&classifyPackage, "package", "", "package name used with --fqn-from (default: read from the file)")
}

// classifyResult is the structured output of the classify command.
type classifyResult struct {
	QualifiedName string               `json:"qualifiedName,omitempty" yaml:"qualifiedName,omitempty"`
	Types         []classutil.TypeInfo `json:"types" yaml:"types"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && classifyFQNFrom == "" {
		return fmt.Errorf("at least one type name or --fqn-from is required")
	}

	var result classifyResult

	if classifyFQNFrom != "" {
		pkg := classifyPackage
		if pkg == "" {
			var err error
			if pkg, err = sourcePackage(cmd.Context(), classifyFQNFrom); err != nil {
				return err
			}
			printVerbose(cmd, "Package %s read from %s", pkg, classifyFQNFrom)
		}
		err := guard(func() {
			result.QualifiedName = classutil.GetFullyQualifiedName(classifyFQNFrom, pkg)
		})
		if err != nil {
			return err
		}
	}

	result.Types = make([]classutil.TypeInfo, 0, len(args))
	for _, name := range args {
		result.Types = append(result.Types, classutil.Describe(name))
	}

	printVerbose(cmd, "Classified %d type names", len(result.Types))

	switch format {
	case "", "text":
		return writeClassifyText(cmd, result)
	default:
		return encode(cmd.OutOrStdout(), format, result)
	}
}

// sourcePackage returns the package declared by the Java file at path.
func sourcePackage(ctx context.Context, path string) (string, error) {
	p := parser.NewJavaParser()
	defer p.Close()

	pf, err := p.ParseFile(ctx, path)
	if err != nil {
		return "", err
	}
	if pf.Package == "" {
		return "", fmt.Errorf("%s has no package declaration, use --package", path)
	}
	return pf.Package, nil
}

func writeClassifyText(cmd *cobra.Command, result classifyResult) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	if result.QualifiedName != "" {
		fmt.Fprintf(tw, "%s\n", result.QualifiedName)
	}
	for _, info := range result.Types {
		param := "-"
		if info.Parameter != "" {
			param = info.Parameter
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Name, info.Kind, info.ClassName, param)
	}
	return tw.Flush()
}

// guard runs fn and returns the ErrInvalidArgument panic it raises, if any,
// as an error. Other panics propagate.
func guard(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok && errors.Is(e, classutil.ErrInvalidArgument) {
			err = e
			return
		}
		panic(r)
	}()

	fn()
	return nil
}
