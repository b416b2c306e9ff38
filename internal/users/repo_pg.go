package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, name, role, password_hash, created_at, updated_at)
VALUES ($1, lower($2), $3, $4, $5, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Role,
		nullableString(user.PasswordHash),
	)
	if err != nil && strings.Contains(err.Error(), "users_email_key") {
		return ErrEmailTaken
	}
	return err
}

func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, name, role, password_hash, created_at, updated_at)
VALUES ($1, lower($2), $3, $4, $5, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  name = EXCLUDED.name,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Role,
		nullableString(user.PasswordHash),
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, email, name, role, password_hash, questions, interview_summary, interview_feedback, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `
SELECT id, email, name, role, password_hash, questions, interview_summary, interview_feedback, created_at, updated_at
FROM users
WHERE email = lower($1)
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) SaveQuestions(ctx context.Context, userID string, questions []string) error {
	payload, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	const query = `UPDATE users SET questions = $2, updated_at = now() WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, userID, payload)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) SaveInterviewResults(ctx context.Context, userID, summary, feedback string) error {
	const query = `
UPDATE users SET interview_summary = $2, interview_feedback = $3, updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, userID, summary, feedback)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) scanOne(row *sql.Row) (User, error) {
	var user User
	var passwordHash sql.NullString
	var questions []byte
	var summary sql.NullString
	var feedback sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Role,
		&passwordHash,
		&questions,
		&summary,
		&feedback,
		&user.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if passwordHash.Valid {
		user.PasswordHash = passwordHash.String
	}
	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &user.Questions); err != nil {
			return User{}, err
		}
	}
	if summary.Valid {
		user.InterviewSummary = summary.String
	}
	if feedback.Valid {
		user.InterviewFeedback = feedback.String
	}
	if updatedAt.Valid {
		user.UpdatedAt = updatedAt.Time
	} else {
		user.UpdatedAt = time.Now().UTC()
	}
	return user, nil
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
