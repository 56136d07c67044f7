package prompt

import (
	"errors"
	"strings"
	"testing"
)

func TestRender_Explain(t *testing.T) {
	msg, err := Render(Explain, Input{Topic: "Operating System - Deadlock"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg, `"Operating System - Deadlock"`) {
		t.Error("missing quoted topic")
	}
	for _, want := range []string{"Simple language", "Bullet points", "Examples"} {
		if !strings.Contains(msg, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(msg, "Base the explanation") {
		t.Error("material section should be omitted without content")
	}
}

func TestRender_ExplainWithContent(t *testing.T) {
	msg, err := Render(Explain, Input{Topic: "Paging", Content: "Pages are 4 KiB."})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg, "Base the explanation on this material:\nPages are 4 KiB.") {
		t.Errorf("material not included: %q", msg)
	}
}

func TestRender_GenerateQuizDescribesShape(t *testing.T) {
	msg, err := Render(GenerateQuiz, Input{Topic: "TCP"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"exactly 5 multiple-choice questions",
		`"TCP"`,
		`"questions"`,
		`"options": {"A"`,
		`"answer"`,
		`"explanation"`,
		"no code fences",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestRender_Translate(t *testing.T) {
	msg, err := Render(Translate, Input{Language: "Tamil", Content: "A process is a running program."})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(msg, "Translate the following content into Tamil.") {
		t.Errorf("unexpected prefix: %q", msg)
	}
	if !strings.HasSuffix(msg, "Content:\nA process is a running program.") {
		t.Errorf("content not at the end: %q", msg)
	}
}

func TestRender_TranslateQuiz(t *testing.T) {
	quizJSON := `{"questions":[{"question":"Q?","options":{"A":"a","B":"b","C":"c","D":"d"},"answer":"B","explanation":"e"}]}`
	msg, err := Render(TranslateQuiz, Input{Language: "Hindi", Content: quizJSON})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(msg, "Translate the text values of this quiz JSON into Hindi.") {
		t.Errorf("unexpected prefix: %q", msg)
	}
	if !strings.Contains(msg, `"answer" value unchanged`) {
		t.Errorf("answer letters not pinned: %q", msg)
	}
	if !strings.HasSuffix(msg, "Quiz:\n"+quizJSON) {
		t.Errorf("quiz not at the end: %q", msg)
	}
	if TranslateQuiz.String() != "translate-quiz" {
		t.Errorf("String() = %q", TranslateQuiz.String())
	}
}

func TestRender_Syllabus(t *testing.T) {
	msg, err := Render(GenerateSyllabus, Input{Topic: "Compilers"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg, "week-by-week") || !strings.Contains(msg, `"Compilers"`) {
		t.Errorf("unexpected syllabus prompt: %q", msg)
	}
}

func TestRender_Deterministic(t *testing.T) {
	in := Input{Topic: "Deadlock", Content: "x", Language: "Hindi"}
	for _, k := range []Kind{Explain, GenerateQuiz, Translate, GenerateSyllabus, TranslateQuiz} {
		a, err := Render(k, in)
		if err != nil {
			t.Fatalf("%s: %v", k, err)
		}
		b, _ := Render(k, in)
		if a != b {
			t.Errorf("%s: output differs between calls", k)
		}
	}
}

func TestRender_UnknownKind(t *testing.T) {
	_, err := Render(Kind(99), Input{Topic: "x"})
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	if _, err := System(Kind(-1)); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind from System, got %v", err)
	}
}

func TestSystem(t *testing.T) {
	for _, k := range []Kind{Explain, GenerateQuiz, Translate, GenerateSyllabus, TranslateQuiz} {
		s, err := System(k)
		if err != nil {
			t.Fatalf("%s: %v", k, err)
		}
		if s == "" {
			t.Errorf("%s: empty system prompt", k)
		}
	}
}

func TestKindString(t *testing.T) {
	if GenerateQuiz.String() != "generate-quiz" {
		t.Errorf("String() = %q", GenerateQuiz.String())
	}
	if Kind(42).String() != "kind(42)" {
		t.Errorf("String() = %q", Kind(42).String())
	}
}
