package interviews

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mitrahire-backend/internal/llm"
)

func feedbackClient(t *testing.T, captured *string) llm.Client {
	t.Helper()
	return llm.Func(func(ctx context.Context, prompt string) (string, error) {
		if captured != nil {
			*captured = prompt
		}
		return `{"summary": "solid interview", "feedback": "work on concurrency answers"}`, nil
	})
}

func newTestService(t *testing.T, client llm.Client) *Service {
	t.Helper()
	return NewService(NewMemoryRepo(), NewGenerator(client), nil)
}

func mustCreate(t *testing.T, svc *Service, questions ...string) Session {
	t.Helper()
	session, err := svc.Create(context.Background(), "user-1", "Asha", questions)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return session
}

func TestCreateStartsNotStarted(t *testing.T) {
	svc := newTestService(t, feedbackClient(t, nil))
	session := mustCreate(t, svc, "Q1", "Q2")

	if session.State != StateNotStarted || session.CurrentIndex != -1 {
		t.Fatalf("state = %s index = %d", session.State, session.CurrentIndex)
	}
	if session.CurrentQuestion() != "" {
		t.Fatalf("current question before start = %q", session.CurrentQuestion())
	}
}

func TestEmptyTranscriptBlocksAdvance(t *testing.T) {
	svc := newTestService(t, feedbackClient(t, nil))
	ctx := context.Background()
	session := mustCreate(t, svc, "Q1", "Q2")

	if _, err := svc.Start(ctx, "user-1", session.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	_, err := svc.Next(ctx, "user-1", session.ID)
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Fatalf("got %v, want ErrEmptyTranscript", err)
	}
	_, err = svc.End(ctx, "user-1", session.ID)
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Fatalf("end: got %v, want ErrEmptyTranscript", err)
	}

	// The blocked transition leaves index and answers untouched.
	got, err := svc.Get(ctx, "user-1", session.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CurrentIndex != 0 || len(got.Answers) != 0 {
		t.Fatalf("index = %d answers = %v after blocked advance", got.CurrentIndex, got.Answers)
	}
}

func TestTranscriptOverwritesNotAppends(t *testing.T) {
	svc := newTestService(t, feedbackClient(t, nil))
	ctx := context.Background()
	session := mustCreate(t, svc, "Q1")
	if _, err := svc.Start(ctx, "user-1", session.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := svc.SetTranscript(ctx, "user-1", session.ID, "first attempt"); err != nil {
		t.Fatalf("set transcript: %v", err)
	}
	got, err := svc.SetTranscript(ctx, "user-1", session.ID, "second attempt")
	if err != nil {
		t.Fatalf("set transcript: %v", err)
	}
	if got.Transcript != "second attempt" {
		t.Fatalf("transcript = %q, want latest utterance only", got.Transcript)
	}
}

func TestFullWalkReachesComplete(t *testing.T) {
	var prompt string
	svc := newTestService(t, feedbackClient(t, &prompt))
	ctx := context.Background()

	questions := []string{"Tell me about a conflict.", "Explain event loop."}
	session := mustCreate(t, svc, questions...)
	if _, err := svc.Start(ctx, "user-1", session.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	// N questions need exactly N advance-or-end transitions.
	answers := []string{"we disagreed on scope", "single threaded callback queue"}
	if _, err := svc.SetTranscript(ctx, "user-1", session.ID, answers[0]); err != nil {
		t.Fatalf("transcript: %v", err)
	}
	got, err := svc.Next(ctx, "user-1", session.ID)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if got.CurrentIndex != 1 || got.Transcript != "" {
		t.Fatalf("after next: index = %d transcript = %q", got.CurrentIndex, got.Transcript)
	}

	// The last question must be closed with end, not next.
	if _, err := svc.SetTranscript(ctx, "user-1", session.ID, answers[1]); err != nil {
		t.Fatalf("transcript: %v", err)
	}
	if _, err := svc.Next(ctx, "user-1", session.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("next at last question: got %v, want ErrInvalidState", err)
	}

	got, err = svc.End(ctx, "user-1", session.ID)
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if got.State != StateComplete {
		t.Fatalf("state = %s", got.State)
	}
	if got.Summary != "solid interview" || got.Feedback != "work on concurrency answers" {
		t.Fatalf("summary = %q feedback = %q", got.Summary, got.Feedback)
	}

	// The answer mapping is keyed by literal question text.
	if len(got.Answers) != 2 {
		t.Fatalf("answers = %v", got.Answers)
	}
	for i, q := range questions {
		if got.Answers[q] != answers[i] {
			t.Fatalf("answers[%q] = %q, want %q", q, got.Answers[q], answers[i])
		}
	}

	// The feedback prompt carries every recorded answer.
	for _, ans := range answers {
		if !strings.Contains(prompt, ans) {
			t.Fatalf("feedback prompt missing answer %q", ans)
		}
	}
}

func TestDuplicateQuestionsCollapse(t *testing.T) {
	svc := newTestService(t, feedbackClient(t, nil))
	ctx := context.Background()
	session := mustCreate(t, svc, "Same question", "Same question")
	if _, err := svc.Start(ctx, "user-1", session.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := svc.SetTranscript(ctx, "user-1", session.ID, "first answer"); err != nil {
		t.Fatalf("transcript: %v", err)
	}
	if _, err := svc.Next(ctx, "user-1", session.ID); err != nil {
		t.Fatalf("next: %v", err)
	}
	if _, err := svc.SetTranscript(ctx, "user-1", session.ID, "second answer"); err != nil {
		t.Fatalf("transcript: %v", err)
	}
	got, err := svc.End(ctx, "user-1", session.ID)
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	// Literal-text keying means the second answer wins.
	if len(got.Answers) != 1 || got.Answers["Same question"] != "second answer" {
		t.Fatalf("answers = %v", got.Answers)
	}
}

func TestEndGenerationFailureLeavesSessionInProgress(t *testing.T) {
	svc := newTestService(t, llm.Func(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("http status 503: overloaded")
	}))
	ctx := context.Background()
	session := mustCreate(t, svc, "Q1")
	if _, err := svc.Start(ctx, "user-1", session.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.SetTranscript(ctx, "user-1", session.ID, "my answer"); err != nil {
		t.Fatalf("transcript: %v", err)
	}

	_, err := svc.End(ctx, "user-1", session.ID)
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("got %v, want GenerationError", err)
	}

	got, err := svc.Get(ctx, "user-1", session.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.State != StateInProgress {
		t.Fatalf("state = %s, want in_progress for retry", got.State)
	}
	if got.Transcript != "my answer" {
		t.Fatalf("transcript = %q, want preserved for retry", got.Transcript)
	}
}

func TestMalformedFeedbackReplyIsTyped(t *testing.T) {
	svc := newTestService(t, llm.Func(func(ctx context.Context, prompt string) (string, error) {
		return "I think the interview went fine overall.", nil
	}))
	ctx := context.Background()
	session := mustCreate(t, svc, "Q1")
	if _, err := svc.Start(ctx, "user-1", session.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.SetTranscript(ctx, "user-1", session.ID, "my answer"); err != nil {
		t.Fatalf("transcript: %v", err)
	}

	_, err := svc.End(ctx, "user-1", session.ID)
	var malformed *llm.MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want MalformedResponseError", err)
	}
}

func TestOwnershipEnforced(t *testing.T) {
	svc := newTestService(t, feedbackClient(t, nil))
	session := mustCreate(t, svc, "Q1")

	if _, err := svc.Get(context.Background(), "user-2", session.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}
