package shortlist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"mitrahire-backend/internal/llm"
)

type fakeStore struct {
	objects map[string]string
}

func (s *fakeStore) OpenByKey(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	content, ok := s.objects[storageKey]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

// scoreByContent maps resume text to a canned score reply.
func scoreByContent(scores map[string]int) llm.Client {
	return llm.Func(func(ctx context.Context, prompt string) (string, error) {
		for content, score := range scores {
			if strings.Contains(prompt, content) {
				return fmt.Sprintf(`{"score": %d}`, score), nil
			}
		}
		return "no idea", nil
	})
}

func newTestService(client llm.Client, objects map[string]string) *Service {
	svc := NewService(client, &fakeStore{objects: objects})
	svc.extractText = func(ctx context.Context, r io.Reader) (string, error) {
		data, err := io.ReadAll(r)
		return string(data), err
	}
	return svc
}

func TestShortlistOrdersByScoreDescending(t *testing.T) {
	svc := newTestService(scoreByContent(map[string]int{
		"resume-a": 40,
		"resume-b": 90,
		"resume-c": 70,
	}), map[string]string{
		"keys/a.pdf": "resume-a",
		"keys/b.pdf": "resume-b",
		"keys/c.pdf": "resume-c",
	})

	out, err := svc.Shortlist(context.Background(), 2, "backend role", []ResumeRef{
		{Name: "A", ResumeURL: "keys/a.pdf"},
		{Name: "B", ResumeURL: "keys/b.pdf"},
		{Name: "C", ResumeURL: "keys/c.pdf"},
	})
	if err != nil {
		t.Fatalf("shortlist: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("shortlisted = %d, want 2", len(out))
	}
	if out[0].Name != "B" || out[0].Score != 90 {
		t.Fatalf("first = %+v", out[0])
	}
	if out[1].Name != "C" || out[1].Score != 70 {
		t.Fatalf("second = %+v", out[1])
	}
}

func TestShortlistSkipsUnfetchableEntries(t *testing.T) {
	svc := newTestService(scoreByContent(map[string]int{
		"resume-a": 55,
	}), map[string]string{
		"keys/a.pdf": "resume-a",
	})

	out, err := svc.Shortlist(context.Background(), 5, "", []ResumeRef{
		{Name: "A", ResumeURL: "keys/a.pdf"},
		{Name: "Missing", ResumeURL: "keys/missing.pdf"},
		{Name: "", ResumeURL: "keys/a.pdf"},
		{Name: "NoURL", ResumeURL: ""},
	})
	if err != nil {
		t.Fatalf("shortlist: %v", err)
	}
	if len(out) != 1 || out[0].Name != "A" {
		t.Fatalf("shortlisted = %v", out)
	}
}

func TestShortlistMalformedReplyScoresZero(t *testing.T) {
	svc := newTestService(scoreByContent(map[string]int{
		"resume-a": 80,
		// resume-b falls through to the "no idea" reply.
	}), map[string]string{
		"keys/a.pdf": "resume-a",
		"keys/b.pdf": "resume-b",
	})

	out, err := svc.Shortlist(context.Background(), 5, "", []ResumeRef{
		{Name: "A", ResumeURL: "keys/a.pdf"},
		{Name: "B", ResumeURL: "keys/b.pdf"},
	})
	if err != nil {
		t.Fatalf("shortlist: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("shortlisted = %d, want 2", len(out))
	}
	if out[1].Name != "B" || out[1].Score != 0 {
		t.Fatalf("malformed entry = %+v", out[1])
	}
}

func TestShortlistTransportErrorFailsBatch(t *testing.T) {
	svc := newTestService(llm.Func(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("http status 503: overloaded")
	}), map[string]string{
		"keys/a.pdf": "resume-a",
	})

	_, err := svc.Shortlist(context.Background(), 1, "", []ResumeRef{
		{Name: "A", ResumeURL: "keys/a.pdf"},
	})
	if err == nil {
		t.Fatal("expected transport failure to surface")
	}
}

func TestShortlistRejectsInvalidInput(t *testing.T) {
	svc := newTestService(scoreByContent(nil), nil)

	if _, err := svc.Shortlist(context.Background(), 0, "", []ResumeRef{{Name: "A", ResumeURL: "k"}}); err == nil {
		t.Fatal("expected error for zero count")
	}
	if _, err := svc.Shortlist(context.Background(), 3, "", nil); err == nil {
		t.Fatal("expected error for empty resume list")
	}
}

func TestSummary(t *testing.T) {
	svc := newTestService(llm.Func(func(ctx context.Context, prompt string) (string, error) {
		return `{"summary": "strong backend candidate"}`, nil
	}), map[string]string{
		"keys/a.pdf": "resume-a",
	})

	summary, err := svc.Summary(context.Background(), "keys/a.pdf", "backend role")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary != "strong backend candidate" {
		t.Fatalf("summary = %q", summary)
	}
}

func TestSummaryMalformedReplyIsTyped(t *testing.T) {
	svc := newTestService(llm.Func(func(ctx context.Context, prompt string) (string, error) {
		return "plain prose reply", nil
	}), map[string]string{
		"keys/a.pdf": "resume-a",
	})

	_, err := svc.Summary(context.Background(), "keys/a.pdf", "")
	var malformed *llm.MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want MalformedResponseError", err)
	}
}
