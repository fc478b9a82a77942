package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vaultbak/vaultbak/internal/application"
	"github.com/vaultbak/vaultbak/internal/deps"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Encrypted git-backed backups for your Obsidian vault",
	Long: `Vaultbak archives your vault, encrypts it with a passphrase, and keeps
the encrypted snapshot in a git repository pushed to a private remote.

Run 'vaultbak' without arguments for the interactive menu, or use the
backup/restore/setup subcommands directly. Archiving, compression,
encryption, and version control are delegated to tar, gzip, gpg, git,
and gh.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		// doctor reports on missing tools instead of aborting.
		if cmd.Name() == "doctor" || cmd.Name() == "version" {
			return nil
		}

		if missing := deps.NewChecker().Missing(); len(missing) > 0 {
			return fmt.Errorf("%s", deps.FormatMissing(missing))
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		f, closeHistory, err := newFlows()
		if err != nil {
			return err
		}
		defer closeHistory()

		if err := f.Setup(cmd.Context()); err != nil {
			return err
		}

		return runMenuLoop(cmd, f)
	},
}

func setupLogger() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
