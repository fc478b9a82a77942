package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vaultbak/vaultbak/internal/cli"
	"github.com/vaultbak/vaultbak/internal/core"
)

// runMenuLoop shows the main menu until the user exits. Each non-exit
// choice runs its flow and returns to the menu.
func runMenuLoop(cmd *cobra.Command, f *core.Flows) error {
	for {
		p := tea.NewProgram(cli.NewMainMenu())

		finalModel, err := p.Run()
		if err != nil {
			return err
		}

		menuModel, ok := finalModel.(cli.MainMenuModel)
		if !ok {
			return fmt.Errorf("unexpected menu model %T", finalModel)
		}

		choice := menuModel.Choice()
		if choice == "" || choice == cli.ActionExit {
			_, _ = fmt.Fprintln(os.Stdout, "Goodbye!")
			return nil
		}

		if err := dispatch(cmd, f, choice); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		_, _ = fmt.Fprintln(os.Stdout, "\nPress Enter to continue...")
		_, _ = fmt.Scanln()
	}
}

func dispatch(cmd *cobra.Command, f *core.Flows, choice string) error {
	switch choice {
	case cli.ActionBackup:
		return f.Backup(cmd.Context())
	case cli.ActionRestore:
		return f.Restore(cmd.Context())
	case cli.ActionReconfigure:
		return f.Setup(cmd.Context())
	default:
		return fmt.Errorf("unknown menu action: %s", choice)
	}
}
