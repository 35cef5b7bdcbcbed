// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	// Version is the semantic version of the application.
	Version = "dev"

	// Commit is the git commit hash.
	Commit = "unknown"

	// BuildDate is the date the binary was built.
	BuildDate = "unknown"
)

// modulePath is reported when the binary carries no build info.
const modulePath = "github.com/api2spec/jtypes"

// VersionInfo describes the running binary.
type VersionInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"buildDate" yaml:"buildDate"`
	Module    string `json:"module" yaml:"module"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Platform  string `json:"platform" yaml:"platform"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long: `Print the version, commit hash, build date, module path and Go version.

Values not set at link time are taken from the build info embedded by
the Go toolchain. Use --format yaml or --format json for machine output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := GetVersionInfo()
		if format != "" && format != "text" {
			return encode(cmd.OutOrStdout(), format, info)
		}

		cmd.Printf("jtypes %s\n", info.Version)
		cmd.Printf("  Commit:     %s\n", info.Commit)
		cmd.Printf("  Build Date: %s\n", info.BuildDate)
		cmd.Printf("  Module:     %s\n", info.Module)
		cmd.Printf("  Go Version: %s\n", info.GoVersion)
		cmd.Printf("  OS/Arch:    %s\n", info.Platform)
		return nil
	},
}

// GetVersionInfo returns the version of the running binary. Link-time values
// win; the rest comes from the embedded module and VCS build info.
func GetVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		Module:    modulePath,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if bi.Main.Path != "" {
		info.Module = bi.Main.Path
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "unknown" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "unknown" {
				info.BuildDate = s.Value
			}
		}
	}
	return info
}

