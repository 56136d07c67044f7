package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate text into another language",
	Long:  "Translates --text, or standard input when --text is not given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		language, _ := cmd.Flags().GetString("language")
		text, _ := cmd.Flags().GetString("text")

		if text == "" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			text = string(data)
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.orch.Translate(cmd.Context(), text, language)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	translateCmd.Flags().StringP("language", "l", "", "Target language, e.g. Tamil or Hindi")
	translateCmd.Flags().String("text", "", "Text to translate (default: read standard input)")
	_ = translateCmd.MarkFlagRequired("language")
}
