package llm

import (
	"errors"
	"testing"
)

func TestParseStructuredMockQuestions(t *testing.T) {
	raw := "Sure! ```json\n{\"technical_questions\": [\"Explain goroutines.\"], \"behavioral_questions\": [\"Tell me about a conflict.\"]}\n```"

	var out struct {
		Technical  []string `json:"technical_questions"`
		Behavioral []string `json:"behavioral_questions"`
	}
	if err := ParseStructured(raw, MockQuestionsSchema, &out); err != nil {
		t.Fatalf("ParseStructured: %v", err)
	}
	if len(out.Technical) != 1 || out.Technical[0] != "Explain goroutines." {
		t.Fatalf("technical = %v", out.Technical)
	}
	if len(out.Behavioral) != 1 {
		t.Fatalf("behavioral = %v", out.Behavioral)
	}
}

func TestParseStructuredScoreBounds(t *testing.T) {
	var out struct {
		Score int `json:"score"`
	}

	if err := ParseStructured(`{"score": 100}`, ScoreSchema, &out); err != nil {
		t.Fatalf("valid score rejected: %v", err)
	}
	if out.Score != 100 {
		t.Fatalf("score = %d", out.Score)
	}

	err := ParseStructured(`{"score": 120}`, ScoreSchema, &out)
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("out-of-range score: got %v, want MalformedResponseError", err)
	}
}

func TestParseStructuredMissingJSON(t *testing.T) {
	var out struct {
		Summary string `json:"summary"`
	}
	err := ParseStructured("I am unable to evaluate this resume.", SummarySchema, &out)

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want MalformedResponseError", err)
	}
	if malformed.Raw == "" {
		t.Fatal("expected raw reply preserved on the error")
	}
}

func TestParseStructuredMissingField(t *testing.T) {
	var out struct {
		Summary  string `json:"summary"`
		Feedback string `json:"feedback"`
	}
	err := ParseStructured(`{"summary": "went well"}`, FeedbackSchema, &out)

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want MalformedResponseError", err)
	}
}
