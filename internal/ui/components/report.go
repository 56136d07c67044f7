package components

import (
	"fmt"
	"strings"

	"github.com/praveenr14083/studygen/internal/quiz"
	"github.com/praveenr14083/studygen/internal/ui/theme"
)

// ReportView renders a ScoreReport: a score bar followed by a verdict line
// per question.
type ReportView struct {
	Report *quiz.ScoreReport
	Width  int
}

// View renders the report.
func (r ReportView) View() string {
	n := len(r.Report.PerQuestion)
	var pct float64
	if n > 0 {
		pct = float64(r.Report.Total) / float64(n)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("Score: %d/%d", r.Report.Total, n)))
	b.WriteString("\n")
	b.WriteString(NewProgressBar("", pct, true, r.Width).View())
	b.WriteString("\n\n")

	for _, res := range r.Report.PerQuestion {
		if res.IsCorrect {
			b.WriteString(theme.Correct.Render(fmt.Sprintf("Q%d ✓ %s", res.ID+1, res.Chosen)))
		} else {
			b.WriteString(theme.Incorrect.Render(fmt.Sprintf("Q%d ✗ %s (answer: %s)", res.ID+1, res.Chosen, res.Correct)))
		}
		b.WriteString("\n")
		if res.Explanation != "" {
			b.WriteString(theme.Hint.Render("   " + res.Explanation))
			b.WriteString("\n")
		}
	}
	return b.String()
}
