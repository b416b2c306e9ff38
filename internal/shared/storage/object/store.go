package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving and retrieving binary objects.
// Keys are caller-chosen, slash-separated paths (e.g. recruiter/<id>/<project>/<file>).
type ObjectStore interface {
	Save(ctx context.Context, storageKey string, r io.Reader) (sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
	List(ctx context.Context, prefix string) ([]string, error)
}
