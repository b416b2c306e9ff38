package projects

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, project Project) error {
	const query = `
INSERT INTO projects (id, recruiter_id, title, description, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		project.ID,
		project.RecruiterID,
		project.Title,
		nullableString(project.Description),
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, projectID string) (Project, error) {
	const query = `
SELECT id, recruiter_id, title, description, created_at, updated_at
FROM projects
WHERE id = $1
LIMIT 1`
	var project Project
	var description sql.NullString
	err := r.DB.QueryRowContext(ctx, query, projectID).Scan(
		&project.ID,
		&project.RecruiterID,
		&project.Title,
		&description,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}
	if description.Valid {
		project.Description = description.String
	}
	return project, nil
}

func (r *PGRepo) ListByRecruiter(ctx context.Context, recruiterID string) ([]Project, error) {
	const query = `
SELECT id, recruiter_id, title, description, created_at, updated_at
FROM projects
WHERE recruiter_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, recruiterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		var project Project
		var description sql.NullString
		if err := rows.Scan(
			&project.ID,
			&project.RecruiterID,
			&project.Title,
			&description,
			&project.CreatedAt,
			&project.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if description.Valid {
			project.Description = description.String
		}
		out = append(out, project)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, project Project) error {
	const query = `
UPDATE projects SET title = $2, description = $3, updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, project.ID, project.Title, nullableString(project.Description))
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) Delete(ctx context.Context, projectID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) CreateIntent(ctx context.Context, intent DeleteIntent) error {
	const query = `
INSERT INTO project_delete_intents (id, project_id, recruiter_id, state, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())`
	_, err := r.DB.ExecContext(ctx, query, intent.ID, intent.ProjectID, intent.RecruiterID, intent.State)
	return err
}

func (r *PGRepo) GetIntent(ctx context.Context, intentID string) (DeleteIntent, error) {
	const query = `
SELECT id, project_id, recruiter_id, state, created_at, updated_at
FROM project_delete_intents
WHERE id = $1
LIMIT 1`
	var intent DeleteIntent
	err := r.DB.QueryRowContext(ctx, query, intentID).Scan(
		&intent.ID,
		&intent.ProjectID,
		&intent.RecruiterID,
		&intent.State,
		&intent.CreatedAt,
		&intent.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DeleteIntent{}, ErrNotFound
		}
		return DeleteIntent{}, err
	}
	return intent, nil
}

func (r *PGRepo) MarkIntentDone(ctx context.Context, intentID string) error {
	const query = `
UPDATE project_delete_intents SET state = $2, updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, intentID, IntentDone)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) ListPendingIntents(ctx context.Context, limit int) ([]DeleteIntent, error) {
	const query = `
SELECT id, project_id, recruiter_id, state, created_at, updated_at
FROM project_delete_intents
WHERE state = $1
ORDER BY created_at ASC
LIMIT $2`
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.DB.QueryContext(ctx, query, IntentPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DeleteIntent
	for rows.Next() {
		var intent DeleteIntent
		if err := rows.Scan(
			&intent.ID,
			&intent.ProjectID,
			&intent.RecruiterID,
			&intent.State,
			&intent.CreatedAt,
			&intent.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, intent)
	}
	return out, rows.Err()
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
