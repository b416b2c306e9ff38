package interviews

import (
	"context"

	"mitrahire-backend/internal/llm"
)

// QuestionSet is the validated shape of a question-generation reply.
type QuestionSet struct {
	Technical  []string `json:"technical_questions"`
	Behavioral []string `json:"behavioral_questions"`
}

// Ordered returns the questions in presentation order, behavioral first.
func (q QuestionSet) Ordered() []string {
	out := make([]string, 0, len(q.Behavioral)+len(q.Technical))
	out = append(out, q.Behavioral...)
	out = append(out, q.Technical...)
	return out
}

// Generator produces interview content through the model. Failures are
// returned as errors, never as placeholder content.
type Generator struct {
	LLM llm.Client
}

func NewGenerator(client llm.Client) *Generator {
	return &Generator{LLM: client}
}

// MockQuestions asks the model for one technical and one behavioral
// question and validates the reply shape.
func (g *Generator) MockQuestions(ctx context.Context, jobDescription, resumeContent string) (QuestionSet, error) {
	raw, err := g.LLM.GenerateText(ctx, llm.MockQuestionsPrompt(jobDescription, resumeContent))
	if err != nil {
		return QuestionSet{}, err
	}
	var set QuestionSet
	if err := llm.ParseStructured(raw, llm.MockQuestionsSchema, &set); err != nil {
		return QuestionSet{}, err
	}
	return set, nil
}

// Feedback asks the model for a summary and feedback over the full
// answer mapping.
func (g *Generator) Feedback(ctx context.Context, userName string, answers map[string]string) (summary, feedback string, err error) {
	raw, err := g.LLM.GenerateText(ctx, llm.FeedbackPrompt(userName, answers))
	if err != nil {
		return "", "", err
	}
	var out struct {
		Summary  string `json:"summary"`
		Feedback string `json:"feedback"`
	}
	if err := llm.ParseStructured(raw, llm.FeedbackSchema, &out); err != nil {
		return "", "", err
	}
	return out.Summary, out.Feedback, nil
}
