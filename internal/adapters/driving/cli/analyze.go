package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexiverse-cli/internal/adapters/driving/upload"
	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
	"github.com/custodia-labs/lexiverse-cli/internal/logger"
)

var (
	analyzeJSON    bool
	analyzeDetails bool
	analyzeWatch   bool
	analyzeForce   bool
)

// watchDebounce batches the burst of events an editor emits on save.
const watchDebounce = 500 * time.Millisecond

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Upload a document and show its summary",
	Long: `Uploads a legal document (.pdf, .doc, .docx or .txt) to the analysis
service, prints the summary and the important clauses, and opens a chat
session for follow-up questions with "lexiverse ask".

Analysis usually takes 20-30 seconds.

With --watch the document is uploaded again every time it is saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the session as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeDetails, "details", false, "show the raw service response on failures")
	analyzeCmd.Flags().BoolVarP(&analyzeWatch, "watch", "w", false, "re-upload whenever the file changes")
	analyzeCmd.Flags().BoolVar(&analyzeForce, "force", false, "upload files with unrecognised extensions")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	svc, err := loadServices(cmd)
	if err != nil {
		return err
	}

	if err := analyzeOnce(cmd, svc, path); err != nil {
		return err
	}
	if !analyzeWatch {
		return nil
	}

	cmd.PrintErrln(mutedColor.Sprintf("Watching %s for changes (Ctrl+C to stop)...", path))
	return watchFile(cmd.Context(), path, func() {
		if err := analyzeOnce(cmd, svc, path); err != nil {
			cmd.PrintErrln(errorColor.Sprint("Error: "), err)
		}
	})
}

// analyzeOnce uploads path and prints the resulting session.
func analyzeOnce(cmd *cobra.Command, svc *Services, path string) error {
	doc, err := readDocument(path, analyzeForce)
	if err != nil {
		return err
	}

	if !analyzeJSON {
		cmd.PrintErrln(mutedColor.Sprintf("Analysing %s... this usually takes 20-30 seconds.", doc.FileName))
	}

	if err := svc.Session.StartUpload(cmd.Context(), doc); err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	snap := svc.Session.Snapshot()
	if analyzeJSON {
		return printSessionJSON(cmd.OutOrStdout(), snap)
	}
	printSession(cmd.OutOrStdout(), snap, analyzeDetails)
	return nil
}

// readDocument loads path for upload, pointing at --force when the
// extension is refused.
func readDocument(path string, force bool) (domain.Document, error) {
	doc, err := upload.Load(path, force)
	if errors.Is(err, domain.ErrUnsupportedType) {
		return domain.Document{}, fmt.Errorf("%w; use --force to upload anyway", err)
	}
	return doc, err
}

// watchFile calls onChange after path is written, until ctx is done.
// The parent directory is watched because editors often replace the file.
func watchFile(ctx context.Context, path string, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	ticker := time.NewTicker(watchDebounce / 5)
	defer ticker.Stop()

	var lastEvent time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("watch: %s %s", event.Op, event.Name)
			lastEvent = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case <-ticker.C:
			if !lastEvent.IsZero() && time.Since(lastEvent) >= watchDebounce {
				lastEvent = time.Time{}
				onChange()
			}
		}
	}
}
