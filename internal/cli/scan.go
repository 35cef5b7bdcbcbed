// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/api2spec/jtypes/internal/config"
	"github.com/api2spec/jtypes/internal/report"
	"github.com/api2spec/jtypes/internal/scanner"
)

var (
	scanInclude     []string
	scanExclude     []string
	scanKinds       []string
	scanUnique      bool
	scanNoLocations bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Report the Java types used in source code",
	Long: `Scan Java source files and report every type they reference.

Each field, method return, parameter, local variable and supertype is
classified as a primitive, collection, parameterized type or plain
reference. The report is written to the configured output file, or to
stdout when none is set.

Example:
  jtypes scan                                # Scan the configured paths
  jtypes scan ./src/main/java                # Scan specific paths
  jtypes scan --kind collection --unique     # Distinct collection types only
  jtypes scan -o types.json                  # Write a JSON report
  jtypes scan --exclude "**/*Test.java"      # Skip test sources`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringSliceVarP(&scanInclude, "include", "i", nil, "glob patterns to include")
	scanCmd.Flags().StringSliceVarP(&scanExclude, "exclude", "e", nil, "glob patterns to exclude")
	scanCmd.Flags().StringSliceVarP(&scanKinds, "kind", "k", nil, "kinds to report: primitive, collection, parameterized, reference")
	scanCmd.Flags().BoolVar(&scanUnique, "unique", false, "report each type name once with a count")
	scanCmd.Flags().BoolVar(&scanNoLocations, "no-locations", false, "omit file, owner, role and line from entries")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if len(scanInclude) > 0 {
		cfg.Source.Include = scanInclude
	}
	if len(scanExclude) > 0 {
		cfg.Source.Exclude = scanExclude
	}
	if len(scanKinds) > 0 {
		cfg.Report.Kinds = scanKinds
	}
	if scanUnique {
		cfg.Report.Unique = true
	}
	if scanNoLocations {
		cfg.Report.IncludeLocations = false
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	paths := args
	if len(paths) == 0 {
		paths = cfg.Source.Paths
	}

	printVerbose(cmd, "Scan configuration:")
	printVerbose(cmd, "  Paths: %s", strings.Join(paths, ", "))
	printVerbose(cmd, "  Include: %s", strings.Join(cfg.Source.Include, ", "))
	printVerbose(cmd, "  Exclude: %s", strings.Join(cfg.Source.Exclude, ", "))
	if len(cfg.Report.Kinds) > 0 {
		printVerbose(cmd, "  Kinds: %s", strings.Join(cfg.Report.Kinds, ", "))
	}

	return scanAndReport(cmd.Context(), cmd, cfg, paths)
}

// loadConfig loads the configuration and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if output != "" {
		cfg.Output = output
	}
	switch {
	case format != "":
		cfg.Format = format
	case output != "" && cfg.Format == "text":
		cfg.Format = report.FormatFromPath(output)
	}

	return cfg, nil
}

// scanAndReport scans paths, builds the report and writes it.
func scanAndReport(ctx context.Context, cmd *cobra.Command, cfg *config.Config, paths []string) error {
	files, err := collectFiles(cfg, paths)
	if err != nil {
		return fmt.Errorf("failed to scan: %w", err)
	}
	printVerbose(cmd, "Found %d Java files", len(files))

	builder := report.NewBuilder()
	builder.Kinds = cfg.Kinds()
	builder.IncludeLocations = cfg.Report.IncludeLocations
	builder.Unique = cfg.Report.Unique
	if wd, err := os.Getwd(); err == nil {
		builder.BasePath = wd
	}

	r, err := builder.Build(ctx, files)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	for _, fe := range r.Errors {
		printVerbose(cmd, "Warning: %s: %s", fe.File, fe.Message)
	}

	writer := report.NewWriter()
	if cfg.Output == "" {
		return writer.Write(r, cmd.OutOrStdout(), cfg.Format)
	}

	if err := writer.WriteFile(r, cfg.Output, cfg.Format); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	printInfo(cmd, "Wrote %s (%d references in %d files)", cfg.Output, r.Total(), r.Files)

	return nil
}

// collectFiles scans paths with include and exclude patterns relative to
// each path, or to its directory when the path is a file.
func collectFiles(cfg *config.Config, paths []string) ([]scanner.SourceFile, error) {
	return newScanner(cfg, ".").ScanPaths(paths)
}

// newScanner creates a scanner rooted at path, or at its directory when
// path is a file.
func newScanner(cfg *config.Config, path string) *scanner.Scanner {
	base := path
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		base = filepath.Dir(path)
	}

	return scanner.New(scanner.Config{
		BasePath:        base,
		IncludePatterns: cfg.Source.Include,
		ExcludePatterns: cfg.Source.Exclude,
	})
}
