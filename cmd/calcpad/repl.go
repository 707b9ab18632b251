package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"calcpad/internal/observability"
	"calcpad/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Run the interactive terminal keypad",
	Long: `Reads keys straight from the terminal: digits, + - * /, Enter or =, the
decimal point, Backspace and Escape (clear). Press q or Ctrl-C to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return err
		}
		defer observability.SyncLogger()

		fd := int(os.Stdin.Fd())
		if term.IsTerminal(fd) {
			old, err := term.MakeRaw(fd)
			if err != nil {
				return err
			}
			defer term.Restore(fd, old)
		}

		_, err := repl.Run(cmd.Context(), os.Stdin, cmd.OutOrStdout(), repl.Options{
			Logger: observability.Logger.Named("repl"),
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
