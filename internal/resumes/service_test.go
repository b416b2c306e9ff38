package resumes

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"mitrahire-backend/internal/shared/storage/object/local"
)

func pdfPayload(filler int) []byte {
	return append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("x"), filler)...)
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewMemoryRepo(), local.New(t.TempDir()))
}

func TestUploadAndDownload(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	resume, err := svc.Upload(ctx, "rec-1", "proj-1", "Asha Rao", "asha resume.pdf", "application/pdf", bytes.NewReader(pdfPayload(64)))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if resume.ApplicantName != "Asha Rao" {
		t.Fatalf("applicant = %q", resume.ApplicantName)
	}
	if !strings.HasPrefix(resume.StorageKey, "recruiter/rec-1/proj-1/") {
		t.Fatalf("storage key = %q", resume.StorageKey)
	}

	got, rc, err := svc.Open(ctx, resume.ID)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.ID != resume.ID || !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("round trip mismatch")
	}
}

func TestUploadRejectsNonPDF(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Upload(context.Background(), "rec-1", "proj-1", "Asha", "resume.txt", "text/plain", strings.NewReader("hello"))
	if !errors.Is(err, ErrNotPDF) {
		t.Fatalf("got %v, want ErrNotPDF", err)
	}

	// Declared PDF type but non-PDF content.
	_, err = svc.Upload(context.Background(), "rec-1", "proj-1", "Asha", "resume.pdf", "application/pdf", strings.NewReader("hello"))
	if !errors.Is(err, ErrNotPDF) {
		t.Fatalf("got %v, want ErrNotPDF", err)
	}
}

func TestUploadRejectsOversized(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Upload(context.Background(), "rec-1", "proj-1", "Asha", "big.pdf", "application/pdf", bytes.NewReader(pdfPayload(6*1024*1024)))
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("got %v, want ErrTooLarge", err)
	}
}

func TestUploadAllowsDuplicateApplicantNames(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Upload(ctx, "rec-1", "proj-1", "Asha Rao", "one.pdf", "application/pdf", bytes.NewReader(pdfPayload(8)))
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	second, err := svc.Upload(ctx, "rec-1", "proj-1", "Asha Rao", "two.pdf", "application/pdf", bytes.NewReader(pdfPayload(8)))
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("expected distinct resume ids")
	}

	out, err := svc.ListByProject(ctx, "proj-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("resumes = %d, want 2", len(out))
	}
}

func TestPurgeProjectRemovesObjectsAndRows(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	resume, err := svc.Upload(ctx, "rec-1", "proj-1", "Asha", "one.pdf", "application/pdf", bytes.NewReader(pdfPayload(8)))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if _, err := svc.Upload(ctx, "rec-1", "proj-2", "Dev", "two.pdf", "application/pdf", bytes.NewReader(pdfPayload(8))); err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.PurgeProject(ctx, "rec-1", "proj-1"); err != nil {
		t.Fatalf("purge: %v", err)
	}

	if _, _, err := svc.Open(ctx, resume.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("resume survived purge: %v", err)
	}
	if keys, err := svc.Store.List(ctx, "recruiter/rec-1/proj-1/"); err != nil || len(keys) != 0 {
		t.Fatalf("objects after purge = %v, err = %v", keys, err)
	}

	// Other projects stay intact.
	remaining, err := svc.ListByProject(ctx, "proj-2")
	if err != nil || len(remaining) != 1 {
		t.Fatalf("other project resumes = %v, err = %v", remaining, err)
	}
}
