package quiz

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://quiz-set.json"

// QuizSetSchema is the JSON Schema a model reply must satisfy to become a Set.
const QuizSetSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["questions"],
  "properties": {
    "questions": {
      "type": "array",
      "minItems": 5,
      "maxItems": 5,
      "items": {
        "type": "object",
        "required": ["question", "options", "answer", "explanation"],
        "properties": {
          "question": {"type": "string", "pattern": "\\S"},
          "options": {
            "type": "object",
            "required": ["A", "B", "C", "D"],
            "additionalProperties": false,
            "properties": {
              "A": {"type": "string", "pattern": "\\S"},
              "B": {"type": "string", "pattern": "\\S"},
              "C": {"type": "string", "pattern": "\\S"},
              "D": {"type": "string", "pattern": "\\S"}
            }
          },
          "answer": {"enum": ["A", "B", "C", "D"]},
          "explanation": {"type": "string", "pattern": "\\S"}
        }
      }
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// compiledSchema compiles QuizSetSchema on first use.
func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(QuizSetSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}
