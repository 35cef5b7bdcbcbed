// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/api2spec/jtypes/internal/classutil"
)

// referenceSets maps list arguments to the names they print.
var referenceSets = map[string]func() []string{
	"collections": classutil.CollectionTypes,
	"primitives":  classutil.PrimitiveTypes,
}

var listCmd = &cobra.Command{
	Use:   "list collections|primitives",
	Short: "Print the recognized collection or primitive type names",
	Long: `Print the type names jtypes recognizes, sorted.

Collections are unqualified java.util names. Primitives are lower-cased
and include the wrapper types and String.

Example:
  jtypes list collections
  jtypes list primitives -f json`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"collections", "primitives"},
	RunE:      runList,
}

func runList(cmd *cobra.Command, args []string) error {
	names, ok := referenceSets[args[0]]
	if !ok {
		return fmt.Errorf("unknown set %q, must be one of: collections, primitives", args[0])
	}

	switch format {
	case "", "text":
		for _, name := range names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	default:
		return encode(cmd.OutOrStdout(), format, names())
	}
}
