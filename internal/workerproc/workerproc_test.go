package workerproc

import (
	"context"
	"errors"
	"testing"

	"mitrahire-backend/internal/projects"
	"mitrahire-backend/internal/queue"
)

type stubResumer struct {
	resumed []string
	pending []projects.DeleteIntent
	fail    map[string]error
}

func (s *stubResumer) ResumeIntent(ctx context.Context, intentID string) error {
	if err := s.fail[intentID]; err != nil {
		return err
	}
	s.resumed = append(s.resumed, intentID)
	return nil
}

func (s *stubResumer) PendingIntents(ctx context.Context, limit int) ([]projects.DeleteIntent, error) {
	return s.pending, nil
}

func TestParseMessage(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantErr error
		wantID  string
	}{
		{name: "empty", body: "   ", wantErr: ErrEmptyBody},
		{name: "not json", body: "{nope", wantErr: ErrDecode},
		{name: "missing intent id", body: `{"requestId":"r1"}`, wantErr: ErrMissingIntentID},
		{name: "valid", body: `{"intentId":"i1","version":1}`, wantID: "i1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := ParseMessage([]byte(tc.body))
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if msg.IntentID != tc.wantID {
				t.Fatalf("intent id = %q, want %q", msg.IntentID, tc.wantID)
			}
		})
	}
}

func TestHandleMessageResumesIntent(t *testing.T) {
	resumer := &stubResumer{}
	err := HandleMessage(context.Background(), resumer, queue.Message{IntentID: "i7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resumer.resumed) != 1 || resumer.resumed[0] != "i7" {
		t.Fatalf("resumed = %v, want [i7]", resumer.resumed)
	}
}

func TestHandleMessageWrapsResumeFailure(t *testing.T) {
	boom := errors.New("boom")
	resumer := &stubResumer{fail: map[string]error{"i1": boom}}

	err := HandleMessage(context.Background(), resumer, queue.Message{IntentID: "i1"})

	var perr *ProcessError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want ProcessError", err)
	}
	if perr.IntentID != "i1" || !errors.Is(err, boom) {
		t.Fatalf("unexpected wrapped error: %+v", perr)
	}
}

func TestSweepResumesPendingIntents(t *testing.T) {
	resumer := &stubResumer{pending: []projects.DeleteIntent{{ID: "a"}, {ID: "b"}}}
	w := NewWorker(nil, resumer)

	w.sweep(context.Background())

	if len(resumer.resumed) != 2 {
		t.Fatalf("resumed = %v, want two intents", resumer.resumed)
	}
}
