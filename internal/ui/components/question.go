// Package components renders quiz material for the terminal.
package components

import (
	"fmt"
	"strings"

	"github.com/praveenr14083/studygen/internal/quiz"
	"github.com/praveenr14083/studygen/internal/ui/theme"
)

// QuestionView renders one question with its four lettered options.
// After Reveal, the correct option is highlighted and a wrong choice is
// marked.
type QuestionView struct {
	Number   int
	Question quiz.Question
	Chosen   quiz.ChoiceKey
	Revealed bool
}

// NewQuestionView creates an unanswered view. Number is the 1-based
// position shown to the learner.
func NewQuestionView(number int, q quiz.Question) QuestionView {
	return QuestionView{Number: number, Question: q}
}

// Reveal marks chosen as the learner's answer and shows the solution.
func (v QuestionView) Reveal(chosen quiz.ChoiceKey) QuestionView {
	v.Chosen = chosen
	v.Revealed = true
	return v
}

// View renders the question.
func (v QuestionView) View() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Q%d. %s", v.Number, v.Question.Prompt)))
	b.WriteString("\n")

	for _, k := range quiz.ChoiceKeys {
		line := fmt.Sprintf("  %s)  %s", k, v.Question.Option(k))
		switch {
		case v.Revealed && k == v.Question.Answer:
			line = theme.Correct.Render(line)
		case v.Revealed && k == v.Chosen:
			line = theme.Incorrect.Render(line)
		case v.Revealed:
			line = theme.Subtitle.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if v.Revealed && v.Question.Explanation != "" {
		b.WriteString(theme.Hint.Render("  " + v.Question.Explanation))
		b.WriteString("\n")
	}
	return b.String()
}
