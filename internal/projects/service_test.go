package projects

import (
	"context"
	"errors"
	"testing"
)

type fakePurger struct {
	failures int
	calls    int
}

func (p *fakePurger) PurgeProject(ctx context.Context, recruiterID, projectID string) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("object store unavailable")
	}
	return nil
}

type recordingPublisher struct {
	intentIDs []string
}

func (p *recordingPublisher) PublishDeleteIntent(ctx context.Context, intentID string) error {
	p.intentIDs = append(p.intentIDs, intentID)
	return nil
}

func newServiceWithProject(t *testing.T, purger ResumePurger, publisher IntentPublisher) (*Service, Project) {
	t.Helper()
	svc := NewService(NewMemoryRepo(), purger, publisher, "http://localhost:3000/upload")
	project, err := svc.Create(context.Background(), "rec-1", "Backend Hiring", "Go roles")
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return svc, project
}

func TestDeleteCascadeSuccess(t *testing.T) {
	purger := &fakePurger{}
	svc, project := newServiceWithProject(t, purger, nil)

	if err := svc.Delete(context.Background(), "rec-1", project.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if purger.calls != 1 {
		t.Fatalf("purger calls = %d, want 1", purger.calls)
	}
	if _, err := svc.Get(context.Background(), "rec-1", project.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("project still present after delete: %v", err)
	}
	pending, err := svc.PendingIntents(context.Background(), 10)
	if err != nil {
		t.Fatalf("pending intents: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("pending intents = %d, want 0", len(pending))
	}
}

func TestDeleteFailureLeavesPendingIntent(t *testing.T) {
	purger := &fakePurger{failures: 1}
	publisher := &recordingPublisher{}
	svc, project := newServiceWithProject(t, purger, publisher)

	err := svc.Delete(context.Background(), "rec-1", project.ID)
	if err == nil {
		t.Fatal("expected delete to fail when the purge fails")
	}

	pending, err := svc.PendingIntents(context.Background(), 10)
	if err != nil {
		t.Fatalf("pending intents: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending intents = %d, want 1", len(pending))
	}
	if len(publisher.intentIDs) != 1 || publisher.intentIDs[0] != pending[0].ID {
		t.Fatalf("published intents = %v", publisher.intentIDs)
	}

	// The project row must survive a failed cascade.
	if _, err := svc.Get(context.Background(), "rec-1", project.ID); err != nil {
		t.Fatalf("project missing after failed delete: %v", err)
	}
}

func TestResumeIntentCompletesCascade(t *testing.T) {
	purger := &fakePurger{failures: 1}
	svc, project := newServiceWithProject(t, purger, nil)

	if err := svc.Delete(context.Background(), "rec-1", project.ID); err == nil {
		t.Fatal("expected first delete to fail")
	}
	pending, _ := svc.PendingIntents(context.Background(), 10)
	if len(pending) != 1 {
		t.Fatalf("pending intents = %d, want 1", len(pending))
	}

	if err := svc.ResumeIntent(context.Background(), pending[0].ID); err != nil {
		t.Fatalf("resume intent: %v", err)
	}
	if _, err := svc.Get(context.Background(), "rec-1", project.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("project still present after resumed delete: %v", err)
	}
	pending, _ = svc.PendingIntents(context.Background(), 10)
	if len(pending) != 0 {
		t.Fatalf("pending intents = %d, want 0", len(pending))
	}
}

func TestResumeIntentIdempotent(t *testing.T) {
	svc, project := newServiceWithProject(t, &fakePurger{}, nil)

	if err := svc.Delete(context.Background(), "rec-1", project.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// The intent is done; resuming it must be a no-op.
	intents, err := svc.Repo.ListPendingIntents(context.Background(), 10)
	if err != nil || len(intents) != 0 {
		t.Fatalf("pending = %v, err = %v", intents, err)
	}
}

func TestOwnershipEnforced(t *testing.T) {
	svc, project := newServiceWithProject(t, &fakePurger{}, nil)

	if _, err := svc.Get(context.Background(), "rec-2", project.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
	if err := svc.Delete(context.Background(), "rec-2", project.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestShareLink(t *testing.T) {
	svc, project := newServiceWithProject(t, &fakePurger{}, nil)

	link, err := svc.ShareLink(context.Background(), "rec-1", project.ID)
	if err != nil {
		t.Fatalf("share link: %v", err)
	}
	want := "http://localhost:3000/upload?projectId=" + project.ID + "&recruiterId=rec-1"
	if link != want {
		t.Fatalf("link = %q, want %q", link, want)
	}
}
