package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Audit actions recorded by the import subsystem.
const (
	AuditActionImportCommit = "import_commit"
)

const insertAuditLog = `
INSERT INTO audit_log (id, action, user_id, user_name, user_role, detail, created_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
`

// InsertAuditLogParams describe one append-only audit row.
type InsertAuditLogParams struct {
	ID       string
	Action   string
	UserID   pgtype.Text
	UserName pgtype.Text
	UserRole pgtype.Text
	Detail   string
}

// InsertAuditLog appends an audit entry. The log is append-only; there
// are no update or delete statements for it anywhere in this codebase.
func (q *Queries) InsertAuditLog(ctx context.Context, p InsertAuditLogParams) error {
	_, err := q.db.Exec(ctx, insertAuditLog, p.ID, p.Action, p.UserID, p.UserName, p.UserRole, p.Detail)
	return err
}
