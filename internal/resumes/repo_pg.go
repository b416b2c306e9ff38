package resumes

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (id, project_id, recruiter_id, applicant_name, file_name, storage_key, mime_type, size_bytes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`
	_, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.ProjectID,
		resume.RecruiterID,
		resume.ApplicantName,
		resume.FileName,
		resume.StorageKey,
		resume.MimeType,
		resume.SizeBytes,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, resumeID string) (Resume, error) {
	const query = `
SELECT id, project_id, recruiter_id, applicant_name, file_name, storage_key, mime_type, size_bytes, created_at
FROM resumes
WHERE id = $1
LIMIT 1`
	var resume Resume
	err := r.DB.QueryRowContext(ctx, query, resumeID).Scan(
		&resume.ID,
		&resume.ProjectID,
		&resume.RecruiterID,
		&resume.ApplicantName,
		&resume.FileName,
		&resume.StorageKey,
		&resume.MimeType,
		&resume.SizeBytes,
		&resume.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

func (r *PGRepo) ListByProject(ctx context.Context, projectID string) ([]Resume, error) {
	const query = `
SELECT id, project_id, recruiter_id, applicant_name, file_name, storage_key, mime_type, size_bytes, created_at
FROM resumes
WHERE project_id = $1
ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		var resume Resume
		if err := rows.Scan(
			&resume.ID,
			&resume.ProjectID,
			&resume.RecruiterID,
			&resume.ApplicantName,
			&resume.FileName,
			&resume.StorageKey,
			&resume.MimeType,
			&resume.SizeBytes,
			&resume.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

func (r *PGRepo) DeleteByProject(ctx context.Context, projectID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM resumes WHERE project_id = $1`, projectID)
	return err
}
