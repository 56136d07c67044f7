package cmd

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/praveenr14083/studygen/internal/content"
	"github.com/praveenr14083/studygen/internal/quiz"
	"github.com/praveenr14083/studygen/internal/ui/components"
	"github.com/praveenr14083/studygen/internal/ui/theme"
)

var errInputClosed = errors.New("input ended before every question was answered")

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a five-question quiz on a topic",
	Long:  "Prints the explanation, asks each question in turn (answer A, B, C or D) and scores the answer sheet.",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		language, _ := cmd.Flags().GetString("language")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		sess := content.NewSession()
		sess.Language = language
		res := a.orch.Refresh(cmd.Context(), sess, topic)
		if sess.Quiz == nil {
			return res.QuizErr
		}

		out := cmd.OutOrStdout()
		printExplanation(out, res)
		if res.QuizErr != nil {
			fmt.Fprintln(out, theme.Warning.Render("Quiz shown untranslated: "+res.QuizErr.Error()))
		}

		qs := sess.Quiz
		in := bufio.NewScanner(cmd.InOrStdin())
		for _, q := range qs.Set().Questions {
			fmt.Fprint(out, components.NewQuestionView(q.ID+1, q).View())
			for {
				fmt.Fprint(out, theme.Hint.Render("Your answer (A-D): "))
				if !in.Scan() {
					if err := in.Err(); err != nil {
						return err
					}
					return errInputClosed
				}
				key, err := quiz.ParseChoiceKey(in.Text())
				if err != nil {
					fmt.Fprintln(out, theme.Warning.Render("Please enter A, B, C or D."))
					continue
				}
				if err := qs.RecordAnswer(q.ID, key); err != nil {
					return err
				}
				break
			}
			fmt.Fprintln(out)
		}

		report, err := qs.Submit()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, components.ReportView{Report: report, Width: 40}.View())
		return nil
	},
}

func init() {
	quizCmd.Flags().StringP("topic", "t", "", "Topic to be quizzed on")
	quizCmd.Flags().StringP("language", "l", "", "Language of the explanation and quiz (default English)")
	_ = quizCmd.MarkFlagRequired("topic")
}
