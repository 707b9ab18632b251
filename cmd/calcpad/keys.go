package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"calcpad/internal/display"
	"calcpad/internal/repl"
)

var keysCmd = &cobra.Command{
	Use:   "keys <sequence>...",
	Short: "Press a key sequence and print the display",
	Long: `Each argument is a key name (Enter, Backspace, Escape) or a run of
single-character keys. For example:

  calcpad keys '12+7*2='
  calcpad keys 12 Backspace +1 Enter`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := repl.Feed(args...)
		if err != nil {
			return err
		}

		raw, _ := cmd.Flags().GetBool("raw")
		text := state.DisplayText
		if !raw {
			text = display.Format(text)
		}

		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	keysCmd.Flags().Bool("raw", false, "Print the unformatted display text")
	rootCmd.AddCommand(keysCmd)
}
