package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ssbprep/internal/prompt"
	"ssbprep/internal/session"
)

func (a *App) promptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt <wat|srt>",
		Short: "Print the AI prompt that generates practice items",
		Long: `Print the prompt to paste into an AI assistant to generate WAT words
or SRT situations in the format ssbprep accepts.

Examples:
  ssbprep prompt wat
  ssbprep prompt srt --copy`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(session.KindWAT), string(session.KindSRT)},
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := prompt.For(session.Kind(args[0]))
			if err != nil {
				return err
			}
			if a.flags.copy {
				if err := a.Copier.Copy(text); err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "Prompt copied to clipboard!")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&a.flags.copy, "copy", false, "copy to the clipboard instead of printing")
	return cmd
}
