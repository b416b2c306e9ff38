package interviews

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, session Session) error {
	questions, answers, err := marshalState(session)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO interview_sessions (id, user_id, user_name, questions, answers, current_index, state, transcript, summary, feedback, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())`
	_, err = r.DB.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.UserName,
		questions,
		answers,
		session.CurrentIndex,
		session.State,
		session.Transcript,
		nullableString(session.Summary),
		nullableString(session.Feedback),
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, sessionID string) (Session, error) {
	const query = `
SELECT id, user_id, user_name, questions, answers, current_index, state, transcript, summary, feedback, created_at, updated_at
FROM interview_sessions
WHERE id = $1
LIMIT 1`
	var session Session
	var questions, answers []byte
	var summary, feedback sql.NullString
	err := r.DB.QueryRowContext(ctx, query, sessionID).Scan(
		&session.ID,
		&session.UserID,
		&session.UserName,
		&questions,
		&answers,
		&session.CurrentIndex,
		&session.State,
		&session.Transcript,
		&summary,
		&feedback,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &session.Questions); err != nil {
			return Session{}, err
		}
	}
	session.Answers = make(map[string]string)
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &session.Answers); err != nil {
			return Session{}, err
		}
	}
	if summary.Valid {
		session.Summary = summary.String
	}
	if feedback.Valid {
		session.Feedback = feedback.String
	}
	return session, nil
}

func (r *PGRepo) Update(ctx context.Context, session Session) error {
	questions, answers, err := marshalState(session)
	if err != nil {
		return err
	}
	const query = `
UPDATE interview_sessions
SET questions = $2, answers = $3, current_index = $4, state = $5, transcript = $6, summary = $7, feedback = $8, updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		session.ID,
		questions,
		answers,
		session.CurrentIndex,
		session.State,
		session.Transcript,
		nullableString(session.Summary),
		nullableString(session.Feedback),
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalState(session Session) (questions, answers []byte, err error) {
	questions, err = json.Marshal(session.Questions)
	if err != nil {
		return nil, nil, err
	}
	if session.Answers == nil {
		session.Answers = map[string]string{}
	}
	answers, err = json.Marshal(session.Answers)
	if err != nil {
		return nil, nil, err
	}
	return questions, answers, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
