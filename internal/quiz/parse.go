package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

const fence = "```"

// StripFences removes a Markdown code fence wrapped around the payload.
// Only text that begins with a fence is touched: the opening fence line
// (including a language tag such as "json") is dropped, as is everything
// from the closing fence on. The closing fence is the last fence that
// starts a line or ends the text, so fences quoted inside JSON strings are
// kept. Text that does not begin with a fence is only trimmed.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, fence) {
		return s
	}
	s = s[len(fence):]

	// Skip the language tag, then the rest of the opening fence line.
	tag := 0
	for tag < len(s) && isTagByte(s[tag]) {
		tag++
	}
	s = s[tag:]
	s = strings.TrimLeft(s, " \t")
	s = strings.TrimPrefix(s, "\r")
	s = strings.TrimPrefix(s, "\n")

	if end := closingFence(s); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}

// closingFence returns the index of the fence closing s, or -1 when the
// fence was never closed. A JSON string cannot hold a raw newline, so a
// fence at the start of a line is never part of the payload.
func closingFence(s string) int {
	if strings.HasSuffix(s, fence) {
		return len(s) - len(fence)
	}
	for end := len(s); ; {
		i := strings.LastIndex(s[:end], fence)
		if i < 0 {
			return -1
		}
		if i == 0 || s[i-1] == '\n' {
			return i
		}
		end = i
	}
}

func isTagByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '-' || b == '_' || b == '+'
}

// Parse turns raw completion text into a validated Set. Every failure is a
// *ParseError; no partially populated Set is ever returned.
func Parse(raw string) (*Set, error) {
	text := StripFences(raw)
	if text == "" {
		return nil, &ParseError{Reason: "empty response"}
	}

	tree, err := decodeStrict(text)
	if err != nil {
		return nil, &ParseError{Reason: "malformed JSON", Err: err}
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, &ParseError{Reason: "quiz schema unavailable", Err: err}
	}
	if err := schema.Validate(tree); err != nil {
		return nil, &ParseError{Reason: "response does not match the quiz shape", Err: err}
	}

	set := buildSet(tree)
	for _, q := range set.Questions {
		if err := checkDistinctOptions(q); err != nil {
			return nil, &ParseError{Reason: fmt.Sprintf("question %d", q.ID), Err: err}
		}
	}
	return set, nil
}

// decodeStrict decodes exactly one JSON value and rejects trailing data.
func decodeStrict(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after the JSON value")
	}
	return tree, nil
}

// buildSet converts a schema-valid tree into a Set. Ids follow array order.
func buildSet(tree any) *Set {
	items := tree.(map[string]any)["questions"].([]any)

	set := &Set{Questions: make([]Question, len(items))}
	for i, item := range items {
		obj := item.(map[string]any)
		opts := obj["options"].(map[string]any)

		q := Question{
			ID:          i,
			Prompt:      strings.TrimSpace(obj["question"].(string)),
			Options:     make(map[ChoiceKey]string, len(ChoiceKeys)),
			Answer:      ChoiceKey(obj["answer"].(string)),
			Explanation: strings.TrimSpace(obj["explanation"].(string)),
		}
		for _, k := range ChoiceKeys {
			q.Options[k] = strings.TrimSpace(opts[string(k)].(string))
		}
		set.Questions[i] = q
	}
	return set
}

func checkDistinctOptions(q Question) error {
	seen := make(map[string]ChoiceKey, len(ChoiceKeys))
	for _, k := range ChoiceKeys {
		text := q.Options[k]
		if prev, dup := seen[text]; dup {
			return fmt.Errorf("options %s and %s have the same text %q", prev, k, text)
		}
		seen[text] = k
	}
	return nil
}
