package projects

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"mitrahire-backend/internal/shared/telemetry"
)

var ErrForbidden = errors.New("project belongs to another recruiter")

// ResumePurger removes every stored resume of a project, objects first,
// rows second. Implemented by the resumes service.
type ResumePurger interface {
	PurgeProject(ctx context.Context, recruiterID, projectID string) error
}

// IntentPublisher hands a stalled delete intent to the background worker.
type IntentPublisher interface {
	PublishDeleteIntent(ctx context.Context, intentID string) error
}

type Service struct {
	Repo      Repo
	Purger    ResumePurger
	Publisher IntentPublisher
	LinkBase  string
}

func NewService(repo Repo, purger ResumePurger, publisher IntentPublisher, linkBase string) *Service {
	return &Service{Repo: repo, Purger: purger, Publisher: publisher, LinkBase: linkBase}
}

func (s *Service) Create(ctx context.Context, recruiterID, title, description string) (Project, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Project{}, errors.New("title is required")
	}
	project := Project{
		ID:          uuid.NewString(),
		RecruiterID: recruiterID,
		Title:       title,
		Description: strings.TrimSpace(description),
	}
	if err := s.Repo.Create(ctx, project); err != nil {
		return Project{}, err
	}
	return s.Repo.GetByID(ctx, project.ID)
}

func (s *Service) List(ctx context.Context, recruiterID string) ([]Project, error) {
	return s.Repo.ListByRecruiter(ctx, recruiterID)
}

// Get loads a project and enforces ownership.
func (s *Service) Get(ctx context.Context, recruiterID, projectID string) (Project, error) {
	project, err := s.Repo.GetByID(ctx, projectID)
	if err != nil {
		return Project{}, err
	}
	if project.RecruiterID != recruiterID {
		return Project{}, ErrForbidden
	}
	return project, nil
}

func (s *Service) Update(ctx context.Context, recruiterID, projectID, title, description string) (Project, error) {
	project, err := s.Get(ctx, recruiterID, projectID)
	if err != nil {
		return Project{}, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return Project{}, errors.New("title is required")
	}
	project.Title = title
	project.Description = strings.TrimSpace(description)
	if err := s.Repo.Update(ctx, project); err != nil {
		return Project{}, err
	}
	return s.Repo.GetByID(ctx, projectID)
}

// Delete runs the cascade as a two-phase workflow: the intent row is
// persisted before any destructive step, so a crash or storage failure
// leaves a pending intent the worker can resume instead of orphaned
// objects. Failures surface to the caller, never a silent success.
func (s *Service) Delete(ctx context.Context, recruiterID, projectID string) error {
	if _, err := s.Get(ctx, recruiterID, projectID); err != nil {
		return err
	}

	intent := DeleteIntent{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		RecruiterID: recruiterID,
		State:       IntentPending,
	}
	if err := s.Repo.CreateIntent(ctx, intent); err != nil {
		return fmt.Errorf("record delete intent: %w", err)
	}

	if err := s.executeIntent(ctx, intent); err != nil {
		s.publishRetry(ctx, intent.ID)
		return err
	}
	return nil
}

// ResumeIntent re-runs a pending intent. Used by the worker; idempotent
// for already-deleted projects.
func (s *Service) ResumeIntent(ctx context.Context, intentID string) error {
	intent, err := s.Repo.GetIntent(ctx, intentID)
	if err != nil {
		return err
	}
	if intent.State == IntentDone {
		return nil
	}
	return s.executeIntent(ctx, intent)
}

// PendingIntents lists intents awaiting resumption.
func (s *Service) PendingIntents(ctx context.Context, limit int) ([]DeleteIntent, error) {
	return s.Repo.ListPendingIntents(ctx, limit)
}

func (s *Service) executeIntent(ctx context.Context, intent DeleteIntent) error {
	if s.Purger != nil {
		if err := s.Purger.PurgeProject(ctx, intent.RecruiterID, intent.ProjectID); err != nil {
			return fmt.Errorf("purge project resumes: %w", err)
		}
	}
	if err := s.Repo.Delete(ctx, intent.ProjectID); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete project: %w", err)
	}
	if err := s.Repo.MarkIntentDone(ctx, intent.ID); err != nil {
		return fmt.Errorf("mark intent done: %w", err)
	}
	return nil
}

func (s *Service) publishRetry(ctx context.Context, intentID string) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishDeleteIntent(ctx, intentID); err != nil {
		telemetry.Error("projects.intent_publish_failed", map[string]any{"intent_id": intentID, "error": err.Error()})
	}
}

// ShareLink builds the public upload link for a project.
func (s *Service) ShareLink(ctx context.Context, recruiterID, projectID string) (string, error) {
	if _, err := s.Get(ctx, recruiterID, projectID); err != nil {
		return "", err
	}
	base := s.LinkBase
	if base == "" {
		base = "http://localhost:3000/upload"
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("recruiterId", recruiterID)
	q.Set("projectId", projectID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
