// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/jtypes/internal/config"
)

// defaultConfigFile is the file written by init.
const defaultConfigFile = "jtypes.yaml"

var (
	initForce       bool
	initInteractive bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new jtypes configuration file",
	Long: `Initialize a new jtypes configuration file in the current directory.

This command creates a jtypes.yaml file with sensible defaults
that you can customize for your project.

Features:
  - Detects Maven and Gradle source roots (src/main/java)
  - Sets up exclude patterns for build output and generated code

Example:
  jtypes init                 # Create config with detected source roots
  jtypes init --force         # Overwrite existing config
  jtypes init --interactive   # Interactive mode with prompts`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "interactive mode with prompts")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := defaultConfigFile

	// Any config file Load would pick up blocks init
	if existing := config.ConfigFilePath(); existing != "" && !initForce {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", existing)
	}

	// Determine project root
	projectRoot, err := filepath.Abs(".")
	if err != nil {
		return fmt.Errorf("failed to determine project root: %w", err)
	}

	// Create config with sensible defaults
	cfg := config.Default()
	if output != "" {
		cfg.Output = output
	}
	if format != "" {
		cfg.Format = format
	}

	// Detect source roots based on project structure
	if roots := detectSourceRoots(projectRoot); len(roots) > 0 {
		cfg.Source.Paths = roots
		printVerbose(cmd, "Detected source roots: %s", strings.Join(roots, ", "))
	}

	// Interactive mode
	if initInteractive && isTerminal() {
		cfg, err = interactiveInit(cfg, os.Stdin, cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("interactive init failed: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Build YAML with comments
	data, err := buildConfigYAML(cfg)
	if err != nil {
		return err
	}

	// Write config file
	if err := os.WriteFile(configFile, []byte(data), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printInfo(cmd, "Created %s", configFile)
	printVerbose(cmd, "Format: %s", cfg.Format)
	printVerbose(cmd, "Paths: %s", strings.Join(cfg.Source.Paths, ", "))

	return nil
}

// sourceRootCandidates are the conventional Java source directories, in
// priority order.
var sourceRootCandidates = []string{
	"src/main/java",
	"app/src/main/java",
	"src",
}

// detectSourceRoots returns the conventional source roots present under
// projectRoot. Plain "src" is only used when no Maven or Gradle layout is found.
func detectSourceRoots(projectRoot string) []string {
	var roots []string

	for _, candidate := range sourceRootCandidates {
		if candidate == "src" && len(roots) > 0 {
			break
		}
		fullPath := filepath.Join(projectRoot, filepath.FromSlash(candidate))
		if stat, err := os.Stat(fullPath); err == nil && stat.IsDir() {
			roots = append(roots, "./"+candidate)
		}
	}

	return roots
}

// isTerminal checks if stdin is a terminal.
func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// interactiveInit prompts for configuration options. Empty answers keep
// the current value.
func interactiveInit(cfg *config.Config, in io.Reader, out io.Writer) (*config.Config, error) {
	reader := bufio.NewReader(in)

	ask := func(prompt, current string) (string, error) {
		fmt.Fprintf(out, "%s [%s]: ", prompt, current)
		answer, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return current, nil
		}
		return answer, nil
	}

	paths, err := ask("Source paths (comma separated)", strings.Join(cfg.Source.Paths, ","))
	if err != nil {
		return nil, err
	}
	cfg.Source.Paths = splitList(paths)

	if cfg.Output, err = ask("Output file (empty for stdout)", cfg.Output); err != nil {
		return nil, err
	}

	if cfg.Format, err = ask("Output format (text/yaml/json)", cfg.Format); err != nil {
		return nil, err
	}

	kinds, err := ask("Kinds to report (comma separated, empty for all)", strings.Join(cfg.Report.Kinds, ","))
	if err != nil {
		return nil, err
	}
	cfg.Report.Kinds = splitList(kinds)

	return cfg, nil
}

// splitList splits a comma separated list, dropping empty items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// buildConfigYAML builds a YAML config with a header comment.
func buildConfigYAML(cfg *config.Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}

	header := `# jtypes configuration file
# Kinds: primitive, collection, parameterized, reference (empty reports all)

`
	return header + string(data), nil
}
