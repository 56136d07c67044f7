package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/praveenr14083/studygen/internal/quiz"
)

func sampleQuestion() quiz.Question {
	return quiz.Question{
		ID:     0,
		Prompt: "What is a page fault?",
		Options: map[quiz.ChoiceKey]string{
			quiz.ChoiceA: "A disk crash",
			quiz.ChoiceB: "A syntax error",
			quiz.ChoiceC: "Access to a page not in memory",
			quiz.ChoiceD: "A network timeout",
		},
		Answer:      quiz.ChoiceC,
		Explanation: "The page must be loaded from backing store.",
	}
}

func TestQuestionView(t *testing.T) {
	v := NewQuestionView(1, sampleQuestion())
	out := ansi.Strip(v.View())

	assert.Contains(t, out, "Q1. What is a page fault?")
	assert.Less(t, strings.Index(out, "A)"), strings.Index(out, "D)"))
	assert.NotContains(t, out, "backing store")

	revealed := ansi.Strip(v.Reveal(quiz.ChoiceA).View())
	assert.Contains(t, revealed, "backing store")
}

func TestReportView(t *testing.T) {
	report := &quiz.ScoreReport{
		Total: 1,
		PerQuestion: []quiz.QuestionResult{
			{ID: 0, Chosen: quiz.ChoiceC, Correct: quiz.ChoiceC, IsCorrect: true},
			{ID: 1, Chosen: quiz.ChoiceA, Correct: quiz.ChoiceB, Explanation: "B is right."},
		},
	}
	out := ansi.Strip(ReportView{Report: report, Width: 30}.View())

	assert.Contains(t, out, "Score: 1/2")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "Q2 ✗ A (answer: B)")
	assert.Contains(t, out, "B is right.")
}

func TestProgressBarWidth(t *testing.T) {
	bar := NewProgressBar("Score", 1, true, 30).View()
	assert.Equal(t, 30, lipgloss.Width(bar))

	clamped := NewProgressBar("", 2, false, 10).View()
	assert.Equal(t, 10, lipgloss.Width(clamped))
}
