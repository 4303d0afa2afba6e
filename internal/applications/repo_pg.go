package applications

import (
	"context"
	"database/sql"
	"encoding/json"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO submitted_applications (id, session_id, job_id, fields, submitted_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO NOTHING`
	fields, err := json.Marshal(app.Fields)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		app.ID,
		app.SessionID,
		app.JobID,
		fields,
		app.SubmittedAt,
	)
	return err
}

func (r *PGRepo) List(ctx context.Context, jobID string, limit, offset int) ([]Application, error) {
	const query = `
SELECT id, session_id, job_id, fields, submitted_at
FROM submitted_applications
WHERE ($1 = '' OR job_id = $1)
ORDER BY submitted_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, jobID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Application{}
	for rows.Next() {
		var app Application
		var rawFields []byte
		if err := rows.Scan(&app.ID, &app.SessionID, &app.JobID, &rawFields, &app.SubmittedAt); err != nil {
			return nil, err
		}
		if len(rawFields) > 0 {
			if err := json.Unmarshal(rawFields, &app.Fields); err != nil {
				return nil, err
			}
		}
		if app.Fields == nil {
			app.Fields = map[string]string{}
		}
		out = append(out, app)
	}
	return out, rows.Err()
}
