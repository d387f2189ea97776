package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/focusdo/internal/domain"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import tasks from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading import file: %w", err)
			}

			var records []domain.TodoView
			if err := json.Unmarshal(data, &records); err != nil {
				return fmt.Errorf("parsing import file: %w", err)
			}

			st := domain.ImportStrategy(strategy)
			if st != domain.ImportMerge && st != domain.ImportReplace {
				return fmt.Errorf("unknown strategy %q (want merge or replace)", strategy)
			}

			result, err := app.Todos.Import(context.Background(), records, st)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d, skipped %d, errors %d\n",
				result.Imported, result.Skipped, result.Errors)
			return nil
		},
	}

	cmd.Flags().StringVarP(&strategy, "strategy", "s", "merge", "merge (skip existing ids) or replace (clear first)")

	return cmd
}

func newResyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resync",
		Short: "Rebuild all scheduled reminders from the task list",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			views, err := app.Todos.GetAll(ctx)
			if err != nil {
				return err
			}
			tasks := make([]domain.Todo, len(views))
			for i, v := range views {
				tasks[i] = v.Todo
			}
			if err := app.Notifier.ResyncAll(ctx, tasks); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Resynced reminders for %d tasks.\n", len(tasks))
			return nil
		},
	}
}
