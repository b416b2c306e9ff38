package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// MalformedResponseError reports a model reply that did not contain the
// JSON shape the caller asked for. Handlers map it to a 502.
type MalformedResponseError struct {
	Reason string
	Raw    string
}

func (e *MalformedResponseError) Error() string {
	return "malformed model response: " + e.Reason
}

// JSON Schemas for each structured reply the service requests.
const (
	MockQuestionsSchema = `{
		"type": "object",
		"required": ["technical_questions", "behavioral_questions"],
		"properties": {
			"technical_questions": {"type": "array", "items": {"type": "string"}, "minItems": 1},
			"behavioral_questions": {"type": "array", "items": {"type": "string"}, "minItems": 1}
		}
	}`

	ScoreSchema = `{
		"type": "object",
		"required": ["score"],
		"properties": {
			"score": {"type": "integer", "minimum": 0, "maximum": 100}
		}
	}`

	FeedbackSchema = `{
		"type": "object",
		"required": ["summary", "feedback"],
		"properties": {
			"summary": {"type": "string", "minLength": 1},
			"feedback": {"type": "string", "minLength": 1}
		}
	}`

	SummarySchema = `{
		"type": "object",
		"required": ["summary"],
		"properties": {
			"summary": {"type": "string", "minLength": 1}
		}
	}`
)

// ParseStructured extracts the first JSON object from a model reply,
// validates it against the given schema, and unmarshals it into out.
func ParseStructured(raw, schema string, out any) error {
	doc, ok := ExtractJSON(raw)
	if !ok {
		return &MalformedResponseError{Reason: "no JSON object in reply", Raw: raw}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(doc),
	)
	if err != nil {
		return &MalformedResponseError{Reason: "invalid JSON: " + err.Error(), Raw: raw}
	}
	if !result.Valid() {
		var reasons []string
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			reasons = append(reasons, fmt.Sprintf("%s: %s", field, desc.Description()))
		}
		return &MalformedResponseError{Reason: strings.Join(reasons, "; "), Raw: raw}
	}

	if err := json.Unmarshal([]byte(doc), out); err != nil {
		return &MalformedResponseError{Reason: "decode: " + err.Error(), Raw: raw}
	}
	return nil
}
