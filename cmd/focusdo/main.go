package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alexanderramin/focusdo/internal/cli"
	"github.com/alexanderramin/focusdo/internal/domain"
	"github.com/alexanderramin/focusdo/internal/kv"
	"github.com/alexanderramin/focusdo/internal/notify"
	"github.com/alexanderramin/focusdo/internal/repository"
	"github.com/alexanderramin/focusdo/internal/storage"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine store path: env var or default ~/.focusdo/focusdo.db
	dbPath := os.Getenv("FOCUSDO_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".focusdo", "focusdo.db")
	}

	var logWriter io.Writer
	if os.Getenv("FOCUSDO_LOG") != "" {
		logWriter = os.Stderr
	}
	logger := newLogger(logWriter)

	// Open the key-value store
	store, err := kv.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	// Wire storage, notifications, and repositories
	storageSvc := storage.NewService(store, logger)
	port := notify.NewMemoryPort()
	notifier := notify.NewService(port, storageSvc, logger)
	categoryRepo := repository.NewCategoryRepository(storageSvc, logger)
	todoRepo := repository.NewTodoRepository(storageSvc, notifier, categoryRepo, logger)
	focusRepo := repository.NewFocusRepository(storageSvc, notifier, todoRepo, logger)

	// Cold-start consistency pass: reconcile the suppression buffer and
	// rebuild the port's reminders from the persisted task list. Skipped
	// while a focus session is running so its suppression stays in effect.
	ctx := context.Background()
	active, err := focusRepo.GetActiveSession(ctx)
	if err != nil {
		return fmt.Errorf("reading active focus session: %w", err)
	}
	if active == nil {
		if err := notifier.RestoreNotifications(ctx); err != nil {
			logger.Warn("restoring stale suppression buffer failed", "error", err.Error())
		}
		views, err := todoRepo.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("loading tasks for resync: %w", err)
		}
		tasks := make([]domain.Todo, len(views))
		for i, v := range views {
			tasks[i] = v.Todo
		}
		if err := notifier.ResyncAll(ctx, tasks); err != nil {
			logger.Warn("reminder resync failed", "error", err.Error())
		}
	}

	app := &cli.App{
		Todos:      todoRepo,
		Focus:      focusRepo,
		Categories: categoryRepo,
		Notifier:   notifier,
		Plain:      !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

func newLogger(w io.Writer) *slog.Logger {
	if w == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
