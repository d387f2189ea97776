package cli

import (
	"github.com/alexanderramin/focusdo/internal/notify"
	"github.com/alexanderramin/focusdo/internal/repository"
	"github.com/spf13/cobra"
)

// App holds references to the repositories and services used by CLI commands.
type App struct {
	Todos      repository.TodoRepo
	Focus      repository.FocusRepo
	Categories repository.CategoryRepo
	Notifier   *notify.Service

	// Plain disables styled output for non-interactive terminals.
	Plain bool
}

// NewRootCmd creates the top-level "focusdo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "focusdo",
		Short:         "Local task manager with focus sessions",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newTodoCmd(app),
		newFocusCmd(app),
		newCategoryCmd(app),
		newImportCmd(app),
		newResyncCmd(app),
	)

	return root
}
