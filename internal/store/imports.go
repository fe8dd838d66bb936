package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Import run statuses. A run is created pending and flipped to completed
// exactly once, after the whole batch has been processed. A run that
// stays pending marks a commit that was cut short.
const (
	ImportStatusPending   = "pending"
	ImportStatusCompleted = "completed"
)

// ImportRun is the persisted audit record of one commit batch.
type ImportRun struct {
	ID             string
	FileName       string
	Status         string
	TotalRows      int32
	SuccessfulRows int32
	FailedRows     int32
	Report         []byte
	CreatedAt      pgtype.Timestamptz
	CompletedAt    pgtype.Timestamptz
}

const createImportRun = `
INSERT INTO imports (id, file_name, status, total_rows, successful_rows, failed_rows, created_at)
VALUES ($1, $2, 'pending', $3, 0, 0, now())
`

// CreateImportRun records the start of a commit batch.
func (q *Queries) CreateImportRun(ctx context.Context, id, fileName string, totalRows int32) error {
	_, err := q.db.Exec(ctx, createImportRun, id, fileName, totalRows)
	return err
}

const completeImportRun = `
UPDATE imports
SET status = 'completed', successful_rows = $2, failed_rows = $3, report = $4, completed_at = now()
WHERE id = $1
`

// CompleteImportRun finalizes a run with its counts and the JSON row
// report. Called once, after the last row; never mid-batch.
func (q *Queries) CompleteImportRun(ctx context.Context, id string, successful, failed int32, report []byte) error {
	_, err := q.db.Exec(ctx, completeImportRun, id, successful, failed, report)
	return err
}

const getImportRun = `
SELECT id, file_name, status, total_rows, successful_rows, failed_rows, report, created_at, completed_at
FROM imports
WHERE id = $1
`

// GetImportRun fetches one run by ID.
func (q *Queries) GetImportRun(ctx context.Context, id string) (ImportRun, error) {
	var r ImportRun
	err := q.db.QueryRow(ctx, getImportRun, id).Scan(
		&r.ID, &r.FileName, &r.Status, &r.TotalRows, &r.SuccessfulRows, &r.FailedRows,
		&r.Report, &r.CreatedAt, &r.CompletedAt,
	)
	return r, err
}

const listImportRuns = `
SELECT id, file_name, status, total_rows, successful_rows, failed_rows, report, created_at, completed_at
FROM imports
ORDER BY created_at DESC
LIMIT $1
`

// ListImportRuns returns the most recent runs, newest first.
func (q *Queries) ListImportRuns(ctx context.Context, limit int32) ([]ImportRun, error) {
	rows, err := q.db.Query(ctx, listImportRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []ImportRun
	for rows.Next() {
		var r ImportRun
		if err := rows.Scan(
			&r.ID, &r.FileName, &r.Status, &r.TotalRows, &r.SuccessfulRows, &r.FailedRows,
			&r.Report, &r.CreatedAt, &r.CompletedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
