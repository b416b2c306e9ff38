package resumes

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("resume not found")

type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, resumeID string) (Resume, error)
	ListByProject(ctx context.Context, projectID string) ([]Resume, error)
	DeleteByProject(ctx context.Context, projectID string) error
}
