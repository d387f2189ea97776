package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/focusdo/internal/cli/formatter"
	"github.com/alexanderramin/focusdo/internal/domain"
	"github.com/alexanderramin/focusdo/internal/repository"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// dueLayouts are the accepted formats for --due.
var dueLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"}

func parseDue(s string) (time.Time, error) {
	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized due date %q", s)
}

// addDueFlag registers the shared --due flag.
func addDueFlag(fs *pflag.FlagSet, due *string) {
	fs.StringVarP(due, "due", "d", "", "due date (RFC3339, '2006-01-02 15:04', or '2006-01-02')")
}

func newTodoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTodoAddCmd(app),
		newTodoListCmd(app),
		newTodoDoneCmd(app),
		newTodoRemoveCmd(app),
		newTodoRestoreCmd(app),
	)

	return cmd
}

func newTodoAddCmd(app *App) *cobra.Command {
	var due, description, categoryID string
	var priority int

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			todo := domain.Todo{
				Description: description,
				Priority:    priority,
				CategoryID:  categoryID,
			}
			if len(args) > 0 {
				todo.Title = args[0]
			}
			if due != "" {
				d, err := parseDue(due)
				if err != nil {
					return err
				}
				todo.DueDate = d
			}

			created, err := app.Todos.Create(ctx, todo)
			if err != nil {
				return err
			}

			view, err := app.Todos.GetByID(ctx, created.ID)
			if err != nil {
				return err
			}
			if view == nil {
				view = &domain.TodoView{Todo: *created}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTodoDetail(*view, app.Plain))
			return nil
		},
	}

	addDueFlag(cmd.Flags(), &due)
	cmd.Flags().StringVar(&description, "desc", "", "task description")
	cmd.Flags().IntVarP(&priority, "priority", "p", 0, "priority 1-10 (default 3)")
	cmd.Flags().StringVarP(&categoryID, "category", "c", "", "category id")

	return cmd
}

func newTodoListCmd(app *App) *cobra.Command {
	var categoryID string
	var overdueOnly, todayOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var views []domain.TodoView
			var err error
			switch {
			case overdueOnly:
				views, err = app.Todos.GetOverdue(ctx)
			case todayOnly:
				views, err = app.Todos.GetForDate(ctx, time.Now())
			case categoryID != "":
				views, err = app.Todos.GetByCategory(ctx, categoryID)
			default:
				views, err = app.Todos.GetAll(ctx)
			}
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTodoList(views, time.Now(), app.Plain))
			return nil
		},
	}

	cmd.Flags().StringVarP(&categoryID, "category", "c", "", "filter by category id")
	cmd.Flags().BoolVar(&overdueOnly, "overdue", false, "only overdue tasks")
	cmd.Flags().BoolVar(&todayOnly, "today", false, "only tasks due today")

	return cmd
}

func newTodoDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			completed := true
			updated, err := app.Todos.Update(context.Background(), args[0], repository.TodoPatch{
				IsCompleted: &completed,
			})
			if err != nil {
				return err
			}
			if updated == nil {
				return fmt.Errorf("no task with id %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed: %s\n", updated.Title)
			return nil
		},
	}
}

func newTodoRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task (soft)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Todos.SoftDelete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		},
	}
}

func newTodoRestoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore a deleted task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			restored, err := app.Todos.Restore(context.Background(), args[0])
			if err != nil {
				return err
			}
			if restored == nil {
				return fmt.Errorf("no task with id %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored: %s\n", restored.Title)
			return nil
		},
	}
}
