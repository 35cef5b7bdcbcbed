// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/api2spec/jtypes/internal/scanner"
)

var watchDebounce int

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Watch for file changes and report again",
	Long: `Watch Java sources and regenerate the type report when they change.

The report is produced once at startup, then again after every batch of
.java file changes. Changes arriving within the debounce window are
combined into a single run.

Example:
  jtypes watch                          # Watch the configured paths
  jtypes watch ./src/main/java          # Watch specific paths
  jtypes watch --debounce 1000          # Wait 1s before reporting
  jtypes watch -o types.yaml            # Keep a report file up to date`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "debounce duration in milliseconds (default: watch.debounce from config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if watchDebounce > 0 {
		cfg.Watch.Debounce = watchDebounce
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	paths := args
	if len(paths) == 0 {
		paths = cfg.Source.Paths
	}

	printVerbose(cmd, "Watch configuration:")
	printVerbose(cmd, "  Debounce: %dms", cfg.Watch.Debounce)
	printVerbose(cmd, "  Paths: %s", strings.Join(paths, ", "))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := scanAndReport(ctx, cmd, cfg, paths); err != nil {
		return err
	}

	scanners := make([]*scanner.Scanner, 0, len(paths))
	for _, path := range paths {
		scanners = append(scanners, newScanner(cfg, path))
	}

	watcher, err := newWatcher(scanners, paths)
	if err != nil {
		return err
	}
	defer watcher.Close()

	if count, err := newScanner(cfg, ".").FileCount(paths...); err == nil {
		printVerbose(cmd, "Watching %d Java files", count)
	}
	printInfo(cmd, "Watching for changes in: %s", strings.Join(paths, ", "))
	printInfo(cmd, "Press Ctrl+C to stop")

	debounce := time.Duration(cfg.Watch.Debounce) * time.Millisecond
	return watchLoop(ctx, cmd, watcher, scanners, debounce, func() error {
		return scanAndReport(ctx, cmd, cfg, paths)
	})
}

// newWatcher creates an fsnotify watcher on every non-excluded directory
// under paths. scanners[i] belongs to paths[i].
func newWatcher(scanners []*scanner.Scanner, paths []string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	for i, path := range paths {
		dirs, err := scanners[i].Dirs(path)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		for _, dir := range dirs {
			if err := watcher.Add(dir); err != nil {
				watcher.Close()
				return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
			}
		}
	}

	return watcher, nil
}

// watchLoop calls rebuild after matching file events settle for debounce.
// It returns when ctx is done or the watcher is closed.
func watchLoop(ctx context.Context, cmd *cobra.Command, watcher *fsnotify.Watcher, scanners []*scanner.Scanner, debounce time.Duration, rebuild func() error) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			printInfo(cmd, "Stopped watching")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			changed := false
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					changed = watchNewDir(cmd, watcher, scanners, event.Name)
				}
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				unwatchTree(watcher, event.Name)
			}
			if !changed && !relevant(event, scanners) {
				continue
			}

			printVerbose(cmd, "Change detected: %s (%s)", event.Name, event.Op)
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := rebuild(); err != nil {
				printError(cmd, "%v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(cmd, "watch error: %v", err)
		}
	}
}

// relevant reports whether event can change a report. That is the case for
// a Java file one of the scanners would collect, and for the removal or move
// of any other path under a scanner, which may be a directory of sources.
func relevant(event fsnotify.Event, scanners []*scanner.Scanner) bool {
	removed := event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
	if !removed && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}

	for _, s := range scanners {
		if s.Matches(event.Name) {
			return true
		}
		if removed && !scanner.IsJavaFile(event.Name) && s.Covers(event.Name) {
			return true
		}
	}
	return false
}

// watchNewDir adds a newly created directory tree to the watcher. It
// reports whether the tree already holds files the scanners collect, as
// when a package is moved in.
func watchNewDir(cmd *cobra.Command, watcher *fsnotify.Watcher, scanners []*scanner.Scanner, dir string) bool {
	for _, s := range scanners {
		if !s.Covers(dir) {
			continue
		}
		dirs, err := s.Dirs(dir)
		if err != nil || len(dirs) == 0 {
			return false
		}
		for _, d := range dirs {
			if err := watcher.Add(d); err != nil {
				printError(cmd, "failed to watch %s: %v", d, err)
				continue
			}
			printVerbose(cmd, "Watching new directory: %s", d)
		}

		count := 0
		for _, d := range dirs {
			entries, err := os.ReadDir(d)
			if err != nil {
				continue
			}
			for _, e := range entries {
				if !e.IsDir() && s.Matches(filepath.Join(d, e.Name())) {
					count++
				}
			}
		}
		return count > 0
	}
	return false
}

// unwatchTree drops watches on path and everything below it. Watches on a
// directory moved out of the tree would otherwise follow it.
func unwatchTree(watcher *fsnotify.Watcher, path string) {
	prefix := path + string(filepath.Separator)
	for _, w := range watcher.WatchList() {
		if w == path || strings.HasPrefix(w, prefix) {
			_ = watcher.Remove(w)
		}
	}
}
