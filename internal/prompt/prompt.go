// Package prompt renders the instruction text sent to the completion provider.
package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"
)

// Kind selects one of the fixed prompt templates.
type Kind int

const (
	Explain Kind = iota
	GenerateQuiz
	Translate
	GenerateSyllabus
	TranslateQuiz
)

func (k Kind) String() string {
	switch k {
	case Explain:
		return "explain"
	case GenerateQuiz:
		return "generate-quiz"
	case Translate:
		return "translate"
	case GenerateSyllabus:
		return "generate-syllabus"
	case TranslateQuiz:
		return "translate-quiz"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ErrUnknownKind is returned by Render and System for a Kind outside the
// declared constants.
var ErrUnknownKind = errors.New("unknown prompt kind")

// Input carries the values substituted into a template. Fields a template
// does not use are ignored.
type Input struct {
	Topic    string
	Content  string
	Language string
}

type spec struct {
	system string
	tmpl   *template.Template
}

var kinds = map[Kind]spec{
	Explain: {
		system: "You are a patient tutor who explains technical subjects to beginners.",
		tmpl: template.Must(template.New("explain").Parse(`Explain the topic "{{.Topic}}" in a clear and beginner-friendly way.
Use:
- Simple language
- Bullet points
- Examples
{{- if .Content}}

Base the explanation on this material:
{{.Content}}
{{- end}}`)),
	},
	GenerateQuiz: {
		system: "You are an exam author. You reply with machine-readable JSON only.",
		tmpl: template.Must(template.New("generate-quiz").Parse(`Create exactly 5 multiple-choice questions about the topic "{{.Topic}}".

Rules:
- Every question has exactly four options labelled A, B, C and D.
- Exactly one option is correct and no two options of a question have the same text.
- "answer" is the letter of the correct option.
- "explanation" says in one or two sentences why that option is correct.

Return only a JSON object of this exact shape, with no prose before or after it and no code fences:
{"questions": [{"question": "...", "options": {"A": "...", "B": "...", "C": "...", "D": "..."}, "answer": "A", "explanation": "..."}]}`)),
	},
	Translate: {
		system: "You are a translator for study material. Reply with the translation only.",
		tmpl: template.Must(template.New("translate").Parse(`Translate the following content into {{.Language}}.
Keep it simple and easy to understand.

Content:
{{.Content}}`)),
	},
	TranslateQuiz: {
		system: "You are a translator for exam material. You reply with machine-readable JSON only.",
		tmpl: template.Must(template.New("translate-quiz").Parse(`Translate the text values of this quiz JSON into {{.Language}}.

Rules:
- Translate every "question", every option text and every "explanation".
- Keep all keys, the option letters A, B, C and D, and every "answer" value unchanged.
- Keep the questions in the same order.

Return only the translated JSON object in the same shape, with no prose before or after it and no code fences.

Quiz:
{{.Content}}`)),
	},
	GenerateSyllabus: {
		system: "You are a curriculum designer.",
		tmpl: template.Must(template.New("generate-syllabus").Parse(`Create a week-by-week study syllabus for the topic "{{.Topic}}".
For each week give:
- A short title
- The subtopics to cover
- One practice activity`)),
	},
}

// Render fills the template for kind with in. It is pure: equal inputs give
// byte-identical output.
func Render(kind Kind, in Input) (string, error) {
	s, ok := kinds[kind]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, in); err != nil {
		return "", fmt.Errorf("execute %s template: %w", kind, err)
	}
	return buf.String(), nil
}

// System returns the system prompt paired with kind.
func System(kind Kind) (string, error) {
	s, ok := kinds[kind]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return s.system, nil
}
