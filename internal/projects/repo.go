package projects

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("project not found")

type Repo interface {
	Create(ctx context.Context, project Project) error
	GetByID(ctx context.Context, projectID string) (Project, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]Project, error)
	Update(ctx context.Context, project Project) error
	Delete(ctx context.Context, projectID string) error

	CreateIntent(ctx context.Context, intent DeleteIntent) error
	GetIntent(ctx context.Context, intentID string) (DeleteIntent, error)
	MarkIntentDone(ctx context.Context, intentID string) error
	ListPendingIntents(ctx context.Context, limit int) ([]DeleteIntent, error)
}
