package cmd

import (
	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Pull the encrypted archive and extract it into the vault",
	Long: `Pull the current branch of the backup repository, then decrypt the
archive with your passphrase and extract it into the vault directory.

A wrong passphrase fails the decryption; the vault is left exactly as
the extraction tools left it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, closeHistory, err := newFlows()
		if err != nil {
			return err
		}
		defer closeHistory()

		return f.Restore(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
