package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/focusdo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newFocusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Manage focus sessions",
	}

	cmd.AddCommand(
		newFocusStartCmd(app),
		newFocusStopCmd(app),
		newFocusStatusCmd(app),
		newFocusStatsCmd(app),
	)

	return cmd
}

func newFocusStartCmd(app *App) *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a focus session, silencing due-soon reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if active, err := app.Focus.GetActiveSession(ctx); err != nil {
				return err
			} else if active != nil {
				return fmt.Errorf("a focus session is already running until %s", active.EndTime.Format("15:04"))
			}

			session, err := app.Focus.CreateSession(ctx, minutes*60)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActiveSession(session, time.Now(), app.Plain))
			return nil
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", 25, "planned session length in minutes")

	return cmd
}

func newFocusStopCmd(app *App) *cobra.Command {
	var cancel bool

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running focus session and restore reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			active, err := app.Focus.GetActiveSession(ctx)
			if err != nil {
				return err
			}
			if active == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No active focus session.")
				return nil
			}

			if err := app.Focus.CompleteSession(ctx, active.ID, !cancel); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Focus session stopped.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&cancel, "cancel", false, "discard the session instead of completing it")

	return cmd
}

func newFocusStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running focus session",
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := app.Focus.GetActiveSession(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActiveSession(active, time.Now(), app.Plain))
			return nil
		},
	}
}

func newFocusStatsCmd(app *App) *cobra.Command {
	var weekOffset int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show focus time for today and the week",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.Focus.Stats(context.Background(), weekOffset)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFocusStats(stats, app.Plain))
			return nil
		},
	}

	cmd.Flags().IntVarP(&weekOffset, "week", "w", 0, "week offset from the current week (0 = this week)")

	return cmd
}
