package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vaultbak/vaultbak/internal/deps"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that every required external tool is installed",
	RunE: func(cmd *cobra.Command, args []string) error {
		okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		missStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

		resolved := deps.NewChecker().Resolve()

		anyMissing := false

		for _, tool := range deps.Required {
			path := resolved[tool]
			if path == "" {
				anyMissing = true

				_, _ = fmt.Fprintf(os.Stdout, "%s %-5s %s\n", missStyle.Render("✗"), tool, deps.Hint(tool))
				continue
			}

			_, _ = fmt.Fprintf(os.Stdout, "%s %-5s %s\n", okStyle.Render("✓"), tool, path)
		}

		if anyMissing {
			return fmt.Errorf("some required tools are missing")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
