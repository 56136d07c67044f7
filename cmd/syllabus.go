package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/praveenr14083/studygen/internal/ui/theme"
)

var syllabusCmd = &cobra.Command{
	Use:   "syllabus",
	Short: "Write a week-by-week study plan for a topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		plan, err := a.orch.Syllabus(cmd.Context(), topic)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Title.Render("Syllabus: "+topic))
		fmt.Fprintln(out, plan)
		return nil
	},
}

func init() {
	syllabusCmd.Flags().StringP("topic", "t", "", "Subject to plan")
	_ = syllabusCmd.MarkFlagRequired("topic")
}
