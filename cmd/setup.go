package cmd

import (
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure the vault and backup repository paths",
	Long: `Interactively confirm or change the vault directory and the local
backup repository. On first run this creates the repository, runs git
init, and offers to provision a private GitHub repository through gh.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, closeHistory, err := newFlows()
		if err != nil {
			return err
		}
		defer closeHistory()

		return f.Setup(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
