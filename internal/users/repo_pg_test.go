package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateLowercasesEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	user := User{
		ID:           "user-1",
		Email:        "Asha@Example.com",
		Name:         "Asha",
		Role:         RoleApplicant,
		PasswordHash: "hash",
	}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Email, user.Name, user.Role, user.PasswordHash).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New(`duplicate key value violates unique constraint "users_email_key"`))

	err = repo.Create(context.Background(), User{ID: "u1", Email: "dup@example.com", Role: RoleApplicant})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestPGRepoGetByIDScansStoredQuestions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "email", "name", "role", "password_hash",
		"questions", "interview_summary", "interview_feedback",
		"created_at", "updated_at",
	}).AddRow(
		"user-1", "asha@example.com", "Asha", string(RoleApplicant), nil,
		[]byte(`["Tell me about Go.","Describe a conflict."]`), "strong", nil,
		now, now,
	)

	mock.ExpectQuery("SELECT id, email, name, role").
		WithArgs("user-1").
		WillReturnRows(rows)

	user, err := repo.GetByID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(user.Questions) != 2 {
		t.Fatalf("questions = %v, want two entries", user.Questions)
	}
	if user.InterviewSummary != "strong" || user.InterviewFeedback != "" {
		t.Fatalf("unexpected interview fields: %+v", user)
	}
}

func TestPGRepoSaveQuestionsMissingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE users SET questions").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.SaveQuestions(context.Background(), "nope", []string{"q1"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
