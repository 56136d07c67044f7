package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/praveenr14083/studygen/internal/content"
	"github.com/praveenr14083/studygen/internal/ui/components"
	"github.com/praveenr14083/studygen/internal/ui/theme"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Explain a topic and write a five-question quiz about it",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		language, _ := cmd.Flags().GetString("language")
		showAnswers, _ := cmd.Flags().GetBool("answers")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		sess := content.NewSession()
		sess.Language = language
		res := a.orch.Refresh(cmd.Context(), sess, topic)
		if err := resultError(res); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printExplanation(out, res)

		if res.Quiz == nil {
			fmt.Fprintln(out, theme.Warning.Render("Quiz unavailable: "+res.QuizErr.Error()))
			return nil
		}
		if res.QuizErr != nil {
			fmt.Fprintln(out, theme.Warning.Render("Quiz shown untranslated: "+res.QuizErr.Error()))
		}
		for i, q := range res.Quiz.Questions {
			v := components.NewQuestionView(i+1, q)
			if showAnswers {
				v = v.Reveal("")
			}
			fmt.Fprintln(out, v.View())
		}
		return nil
	},
}

// resultError returns an error only when both halves of res failed.
func resultError(res *content.Result) error {
	if res.ExplanationErr == nil || res.Quiz != nil {
		return nil
	}
	if errors.Is(res.QuizErr, res.ExplanationErr) {
		return res.ExplanationErr
	}
	return errors.Join(res.ExplanationErr, res.QuizErr)
}

func printExplanation(out io.Writer, res *content.Result) {
	fmt.Fprintln(out, theme.Title.Render(res.Topic))
	if res.ExplanationErr != nil {
		fmt.Fprintln(out, theme.Warning.Render("Explanation unavailable: "+res.ExplanationErr.Error()))
	} else {
		fmt.Fprintln(out, theme.Body.Render(res.Explanation))
	}
	fmt.Fprintln(out)
}

func init() {
	generateCmd.Flags().StringP("topic", "t", "", "Topic to study")
	generateCmd.Flags().StringP("language", "l", "", "Language of the explanation and quiz (default English)")
	generateCmd.Flags().Bool("answers", false, "Show the correct answers and explanations")
	_ = generateCmd.MarkFlagRequired("topic")
}
