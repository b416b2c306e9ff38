package interviews

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("interview session not found")

type Repo interface {
	Create(ctx context.Context, session Session) error
	GetByID(ctx context.Context, sessionID string) (Session, error)
	Update(ctx context.Context, session Session) error
}
