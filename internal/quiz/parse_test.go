package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawQuestion mirrors the wire shape so tests can build and break payloads.
type rawQuestion struct {
	Question    string            `json:"question,omitempty"`
	Options     map[string]string `json:"options,omitempty"`
	Answer      string            `json:"answer,omitempty"`
	Explanation string            `json:"explanation,omitempty"`
}

func validQuestions(n int) []rawQuestion {
	qs := make([]rawQuestion, n)
	for i := range qs {
		qs[i] = rawQuestion{
			Question: fmt.Sprintf("Question %d?", i),
			Options: map[string]string{
				"A": fmt.Sprintf("alpha %d", i),
				"B": fmt.Sprintf("bravo %d", i),
				"C": fmt.Sprintf("charlie %d", i),
				"D": fmt.Sprintf("delta %d", i),
			},
			Answer:      string(ChoiceKeys[i%4]),
			Explanation: fmt.Sprintf("Because %d.", i),
		}
	}
	return qs
}

func encode(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func payload(t *testing.T, qs []rawQuestion) string {
	t.Helper()
	return encode(t, map[string]any{"questions": qs})
}

func TestParse_WellFormed(t *testing.T) {
	set, err := Parse(payload(t, validQuestions(5)))
	require.NoError(t, err)
	require.Equal(t, 5, set.Len())

	for i, q := range set.Questions {
		assert.Equal(t, i, q.ID, "ids follow array order")
		assert.Equal(t, fmt.Sprintf("Question %d?", i), q.Prompt)
		assert.Equal(t, ChoiceKeys[i%4], q.Answer)
		assert.Len(t, q.Options, 4)
		assert.Equal(t, fmt.Sprintf("charlie %d", i), q.Option(ChoiceC))
		assert.Equal(t, fmt.Sprintf("Because %d.", i), q.Explanation)
	}
}

// markdownQuestions quote code fences inside question and explanation text.
func markdownQuestions() []rawQuestion {
	qs := validQuestions(5)
	qs[0].Question = "Which Markdown syntax opens a code block: ```go or ~~~?"
	qs[1].Explanation = "Wrap code in ``` markers."
	qs[4].Options["D"] = "```"
	return qs
}

func TestParse_WellFormedWithQuotedFences(t *testing.T) {
	body := payload(t, markdownQuestions())
	for name, raw := range map[string]string{
		"bare":   body,
		"fenced": "```json\n" + body + "\n```",
	} {
		t.Run(name, func(t *testing.T) {
			set, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, "Which Markdown syntax opens a code block: ```go or ~~~?", set.Questions[0].Prompt)
			assert.Equal(t, "Wrap code in ``` markers.", set.Questions[1].Explanation)
			assert.Equal(t, "```", set.Questions[4].Option(ChoiceD))
		})
	}
}

func TestParse_FencesAreContentNeutral(t *testing.T) {
	for payloadName, qs := range map[string][]rawQuestion{
		"plain text":    validQuestions(5),
		"quoted fences": markdownQuestions(),
	} {
		body := payload(t, qs)
		want, err := Parse(body)
		require.NoError(t, err, payloadName)

		cases := map[string]string{
			"json tag":          "```json\n" + body + "\n```",
			"bare fence":        "```\n" + body + "\n```",
			"surrounding space": "  \n```json\n" + body + "\n```\n\n",
			"text after fence":  "```json\n" + body + "\n```\nGood luck!",
			"single line":       "```json" + body + "```",
			"unclosed":          "```json\n" + body,
			"crlf":              "```json\r\n" + body + "\r\n```",
		}
		for name, raw := range cases {
			t.Run(payloadName+"/"+name, func(t *testing.T) {
				got, err := Parse(raw)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			})
		}
	}
}

func TestParse_ProseBeforeFenceIsRejected(t *testing.T) {
	body := payload(t, validQuestions(5))
	_, err := Parse("Here is your quiz:\n```json\n" + body + "\n```")
	assert.ErrorIs(t, err, ErrParseFailed)
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `  {"a":1}  `, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fence without tag", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"text after closing fence", "```json\n{}\n```\nthanks", `{}`},
		{"empty fence", "```\n```", ``},
		{"fence not at start", "see ```json\n{}\n```", "see ```json\n{}\n```"},
		{"quoted fence in payload", "{\"a\":\"x ``` y\"}", "{\"a\":\"x ``` y\"}"},
		{"quoted fence inside fenced payload", "```json\n{\"a\":\"```\"}\n```", "{\"a\":\"```\"}"},
		{"unclosed with quoted fence", "```json\n{\"a\":\"x```y\"}", "{\"a\":\"x```y\"}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.in))
		})
	}
}

func TestParse_RejectsBadShapes(t *testing.T) {
	mutate := func(f func(qs []rawQuestion) []rawQuestion) func(t *testing.T) string {
		return func(t *testing.T) string {
			return payload(t, f(validQuestions(5)))
		}
	}

	cases := map[string]func(t *testing.T) string{
		"empty":           func(*testing.T) string { return "   " },
		"not json":        func(*testing.T) string { return "Sure! Here are five questions about TCP." },
		"truncated json":  func(t *testing.T) string { return payload(t, validQuestions(5))[:40] },
		"trailing data":   func(t *testing.T) string { return payload(t, validQuestions(5)) + ` {"more":true}` },
		"top-level array": func(t *testing.T) string { return encode(t, validQuestions(5)) },
		"missing questions": func(t *testing.T) string {
			return encode(t, map[string]any{"items": validQuestions(5)})
		},
		"questions not array": func(t *testing.T) string {
			return encode(t, map[string]any{"questions": "five"})
		},
		"four questions": func(t *testing.T) string { return payload(t, validQuestions(4)) },
		"six questions":  func(t *testing.T) string { return payload(t, validQuestions(6)) },
		"zero questions": func(t *testing.T) string { return payload(t, []rawQuestion{}) },
		"missing question text": mutate(func(qs []rawQuestion) []rawQuestion {
			qs[2].Question = ""
			return qs
		}),
		"blank question text": mutate(func(qs []rawQuestion) []rawQuestion {
			qs[2].Question = "   "
			return qs
		}),
		"missing options": mutate(func(qs []rawQuestion) []rawQuestion {
			qs[0].Options = nil
			return qs
		}),
		"missing option D": mutate(func(qs []rawQuestion) []rawQuestion {
			delete(qs[1].Options, "D")
			return qs
		}),
		"extra option E": mutate(func(qs []rawQuestion) []rawQuestion {
			qs[1].Options["E"] = "echo"
			return qs
		}),
		"lowercase option keys": mutate(func(qs []rawQuestion) []rawQuestion {
			qs[3].Options = map[string]string{"a": "1", "b": "2", "c": "3", "d": "4"}
			return qs
		}),
		"answer not a key": mutate(func(qs []rawQuestion) []rawQuestion {
			qs[4].Answer = "E"
			return qs
		}),
		"answer is option text": mutate(func(qs []rawQuestion) []rawQuestion {
			qs[4].Answer = qs[4].Options["A"]
			return qs
		}),
		"missing answer": mutate(func(qs []rawQuestion) []rawQuestion {
			qs[4].Answer = ""
			return qs
		}),
		"missing explanation": mutate(func(qs []rawQuestion) []rawQuestion {
			qs[0].Explanation = ""
			return qs
		}),
		"duplicate option text": mutate(func(qs []rawQuestion) []rawQuestion {
			qs[2].Options["C"] = qs[2].Options["A"]
			return qs
		}),
	}

	for name, build := range cases {
		t.Run(name, func(t *testing.T) {
			set, err := Parse(build(t))
			require.Error(t, err)
			assert.Nil(t, set, "no partial set on failure")
			assert.True(t, errors.Is(err, ErrParseFailed), "expected ErrParseFailed, got %v", err)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.NotEmpty(t, pe.Reason)
		})
	}
}

func TestParse_NonStringOption(t *testing.T) {
	raw := strings.Replace(payload(t, validQuestions(5)), `"alpha 0"`, `42`, 1)
	_, err := Parse(raw)
	assert.ErrorIs(t, err, ErrParseFailed)
}

func TestParse_ToleratesExtraQuestionFields(t *testing.T) {
	raw := strings.Replace(payload(t, validQuestions(5)), `"question":"Question 0?"`, `"id":7,"question":"Question 0?"`, 1)
	set, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Questions[0].ID, "model-supplied ids are ignored")
}

func TestParseError_Message(t *testing.T) {
	err := &ParseError{Reason: "malformed JSON", Err: errors.New("unexpected EOF")}
	assert.Equal(t, "parse quiz: malformed JSON: unexpected EOF", err.Error())
	assert.Equal(t, "parse quiz: empty response", (&ParseError{Reason: "empty response"}).Error())
}

func TestParseChoiceKey(t *testing.T) {
	for in, want := range map[string]ChoiceKey{"A": ChoiceA, "b": ChoiceB, " c ": ChoiceC, "D\n": ChoiceD} {
		got, err := ParseChoiceKey(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"", "E", "AB", "1"} {
		_, err := ParseChoiceKey(in)
		assert.ErrorIs(t, err, ErrInvalidChoice, "input %q", in)
	}
}
