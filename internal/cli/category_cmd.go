package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/focusdo/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := app.Categories.GetAll(context.Background())
			if err != nil {
				return err
			}
			for _, c := range categories {
				name := c.Name
				if !app.Plain {
					name = formatter.StyleBlue.Render(name)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", c.ID, name)
			}
			return nil
		},
	})

	return cmd
}
