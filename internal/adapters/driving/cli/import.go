package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/rostlab/tmvis/internal/core/ports/driving"
	"github.com/rostlab/tmvis/internal/logger"
)

// importSettle is how long a dump must stay quiet before it is imported.
const importSettle = 500 * time.Millisecond

var importWatch bool

var importCmd = &cobra.Command{
	Use:   "import [file.jsonl|dir]",
	Short: "Import protein documents into the local store",
	Long: `Imports a JSON Lines protein dump: one document per line with _id,
uniprot_id, sequence, organism, predictions.transmembrane, topdb,
membranomedb and annotations. Re-importing a protein replaces it.

Given a directory, every .jsonl file in it is imported. With --watch the
command keeps running and imports each .jsonl file written to the directory
until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importWatch, "watch", false, "keep importing files written to the directory")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if proteinService == nil {
		return fmt.Errorf("protein %w", errNotConfigured)
	}

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if !info.IsDir() {
		if importWatch {
			return fmt.Errorf("--watch needs a directory, got file %s", path)
		}
		return importOne(cmd, path)
	}

	files, err := dumpFiles(path)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := importOne(cmd, f); err != nil {
			return err
		}
	}

	if !importWatch {
		if len(files) == 0 {
			cmd.Printf("No .jsonl files in %s\n", path)
		}
		return nil
	}
	return watchDumps(cmd, path)
}

func importOne(cmd *cobra.Command, path string) error {
	summary, err := proteinService.ImportFile(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	printImportSummary(cmd, path, summary)
	return nil
}

func printImportSummary(cmd *cobra.Command, path string, summary *driving.ImportSummary) {
	cmd.Printf("%s: %d imported, %d skipped\n", filepath.Base(path), summary.Imported, summary.Skipped)
	for _, e := range summary.Errors {
		cmd.Printf("  %s\n", e)
	}
}

// dumpFiles lists the importable files of a directory in name order.
func dumpFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !isDumpFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func isDumpFile(name string) bool {
	base := filepath.Base(name)
	return !strings.HasPrefix(base, ".") && strings.EqualFold(filepath.Ext(base), ".jsonl")
}

// importablePath returns the dump written by the event, if any.
// Removals, renames, permission changes, directories and hidden files are ignored.
func importablePath(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if !isDumpFile(event.Name) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return event.Name, true
}

func watchDumps(cmd *cobra.Command, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	cmd.Printf("Watching %s for new dumps (Ctrl+C to stop)\n", dir)

	ctx := cmd.Context()

	pending := make(map[string]struct{})
	timer := time.NewTimer(importSettle)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if path, ok := importablePath(event); ok {
				pending[path] = struct{}{}
				timer.Reset(importSettle)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)

			for _, p := range paths {
				if err := importOne(cmd, p); err != nil {
					logger.Warn("%v", err)
					cmd.PrintErrf("%s: %v\n", filepath.Base(p), err)
				}
			}
		}
	}
}
