package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/spf13/cobra"

	"github.com/Ev2geny/beanoutline/internal/document"
	"github.com/Ev2geny/beanoutline/internal/outline"
	"github.com/Ev2geny/beanoutline/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <ledger-file-or-dir>",
	Short: "Rebuild the outline whenever the ledger changes",
	Long: `Watch a ledger file or a directory of ledgers and rebuild the
outline on every change, logging the result.

Examples:
  beanoutline watch main.beancount
  beanoutline watch ./ledgers`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		w, err := watch.NewWatcher()
		if err != nil {
			return err
		}
		defer w.Stop()

		err = w.Watch(args[0], func(path string) {
			rescan(ctx, logger, path)
		})
		if err != nil {
			return err
		}

		logger.Info("watching", "path", args[0])
		<-ctx.Done()
		logger.Info("stopping")
		return nil
	},
}

// rescan rebuilds the outline of a changed ledger. The read is retried;
// editors often replace the file on save, leaving a brief window where it
// is missing or empty.
func rescan(ctx context.Context, logger *slog.Logger, path string) {
	var data []byte
	err := retry.Do(
		func() error {
			var rerr error
			data, rerr = os.ReadFile(path)
			return rerr
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(100*time.Millisecond),
	)
	if err != nil {
		logger.Warn("read failed", "path", path, "error", err)
		return
	}

	start := time.Now()
	roots, err := outline.Build(ctx, document.New(data))
	if err != nil {
		logger.Warn("outline build failed", "path", path, "error", err)
		return
	}

	logger.Info("outline rebuilt",
		"path", path,
		"headings", len(outline.Flatten(roots)),
		"roots", len(roots),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
