package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vaultbak/vaultbak/internal/config"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent backup and restore runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewStore()
		if err != nil {
			return err
		}

		history := openHistory(cfg.Dir())
		if history == nil {
			return fmt.Errorf("snapshot history is unavailable")
		}
		defer func() { _ = history.Close() }()

		snaps, err := history.Recent(historyLimit)
		if err != nil {
			return err
		}

		if len(snaps) == 0 {
			_, _ = fmt.Fprintln(os.Stdout, "No snapshots recorded yet.")
			return nil
		}

		header := lipgloss.NewStyle().Bold(true)
		dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

		_, _ = fmt.Fprintln(os.Stdout, header.Render(fmt.Sprintf("%-20s %-8s %-10s %-9s %s", "WHEN", "KIND", "SIZE", "COMMIT", "DURATION")))

		for _, s := range snaps {
			commit := s.Commit
			if commit == "" {
				commit = "-"
			}

			line := fmt.Sprintf("%-20s %-8s %-10s %-9s %s",
				s.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				s.Kind,
				formatBytes(s.ArchiveBytes),
				commit,
				s.Duration.String(),
			)
			_, _ = fmt.Fprintln(os.Stdout, dim.Render(line))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of snapshots to show")
}
