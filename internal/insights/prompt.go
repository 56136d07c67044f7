package insights

import "strings"

const systemPrompt = "You are an ERP business analyst AI."

const tasks = `Based on the inventory table above:
- Predict which product might run out soon
- Generate sales insights
- Suggest stock reorder levels
- Summarize last week's performance`

// buildUserMessage places the inventory table before the analysis tasks.
func buildUserMessage(table string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(table, "\n"))
	b.WriteString("\n\n")
	b.WriteString(tasks)
	return b.String()
}
