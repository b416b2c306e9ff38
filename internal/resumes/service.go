package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"mitrahire-backend/internal/extract"
	"mitrahire-backend/internal/shared/storage/object"
	"mitrahire-backend/internal/shared/telemetry"
	"mitrahire-backend/internal/shared/util"
)

var (
	ErrTooLarge = errors.New("file too large, maximum size is 5MB")
	ErrNotPDF   = errors.New("only PDF files are allowed")
)

type Service struct {
	Repo  Repo
	Store object.ObjectStore
}

func NewService(repo Repo, store object.ObjectStore) *Service {
	return &Service{Repo: repo, Store: store}
}

// Upload validates and stores one applicant resume under the project's
// storage prefix.
func (s *Service) Upload(ctx context.Context, recruiterID, projectID, applicantName, fileName, contentType string, r io.Reader) (Resume, error) {
	applicantName = strings.TrimSpace(applicantName)
	if applicantName == "" {
		return Resume{}, errors.New("applicant name is required")
	}
	if !extract.IsPDF(contentType) {
		return Resume{}, ErrNotPDF
	}
	safeName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Resume{}, err
	}

	data, err := io.ReadAll(io.LimitReader(r, extract.MaxUploadBytes+1))
	if err != nil {
		return Resume{}, err
	}
	if len(data) > extract.MaxUploadBytes {
		return Resume{}, ErrTooLarge
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return Resume{}, ErrNotPDF
	}

	resumeID := uuid.NewString()
	storageKey := projectPrefix(recruiterID, projectID) + resumeID + "_" + safeName
	size, mimeType, err := s.Store.Save(ctx, storageKey, bytes.NewReader(data))
	if err != nil {
		return Resume{}, fmt.Errorf("store resume: %w", err)
	}

	resume := Resume{
		ID:            resumeID,
		ProjectID:     projectID,
		RecruiterID:   recruiterID,
		ApplicantName: applicantName,
		FileName:      safeName,
		StorageKey:    storageKey,
		MimeType:      mimeType,
		SizeBytes:     size,
	}
	if err := s.Repo.Create(ctx, resume); err != nil {
		// Keep storage and rows consistent when the row insert fails.
		if delErr := s.Store.Delete(ctx, storageKey); delErr != nil {
			telemetry.Error("resumes.orphan_object", map[string]any{"storage_key": storageKey, "error": delErr.Error()})
		}
		return Resume{}, err
	}
	return s.Repo.GetByID(ctx, resumeID)
}

func (s *Service) ListByProject(ctx context.Context, projectID string) ([]Resume, error) {
	return s.Repo.ListByProject(ctx, projectID)
}

// Open returns the resume row and its object stream. The caller closes
// the stream.
func (s *Service) Open(ctx context.Context, resumeID string) (Resume, io.ReadCloser, error) {
	resume, err := s.Repo.GetByID(ctx, resumeID)
	if err != nil {
		return Resume{}, nil, err
	}
	rc, err := s.Store.Open(ctx, resume.StorageKey)
	if err != nil {
		return Resume{}, nil, err
	}
	return resume, rc, nil
}

// OpenByKey streams an object by storage key, used by the shortlist
// scorer to fetch resume content.
func (s *Service) OpenByKey(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	return s.Store.Open(ctx, storageKey)
}

// PurgeProject deletes every stored object under the project prefix and
// then the resume rows. Object failures propagate so a cascade delete
// never reports success over leaked files.
func (s *Service) PurgeProject(ctx context.Context, recruiterID, projectID string) error {
	prefix := projectPrefix(recruiterID, projectID)
	keys, err := s.Store.List(ctx, prefix)
	if err != nil {
		return fmt.Errorf("list project objects: %w", err)
	}
	for _, key := range keys {
		if err := s.Store.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete object %s: %w", path.Base(key), err)
		}
	}
	return s.Repo.DeleteByProject(ctx, projectID)
}

func projectPrefix(recruiterID, projectID string) string {
	return "recruiter/" + recruiterID + "/" + projectID + "/"
}
