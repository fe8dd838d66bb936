package importer

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/atelierware/fitbook/internal/store"
)

// DB is what the service needs from the database: plain query access for
// the import-run bookkeeping plus the ability to open the per-row
// transactions. Satisfied by *pgxpool.Pool and by pgxmock in tests.
type DB interface {
	store.DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// MergePolicy decides how an incoming row updates an existing customer
// matched by dedup key.
type MergePolicy int

const (
	// MergeFillMissing only fills fields the stored customer does not
	// have yet; existing non-empty values always win ("first write
	// wins"). This mirrors the shop's historical behavior.
	MergeFillMissing MergePolicy = iota

	// MergeLatestWins overwrites stored fields with any non-empty
	// incoming value.
	MergeLatestWins
)

// Service runs the import pipeline against a database.
type Service struct {
	db          DB
	policy      MergePolicy
	previewRows int
}

// Option configures a Service.
type Option func(*Service)

// WithMergePolicy sets the customer merge policy.
func WithMergePolicy(p MergePolicy) Option {
	return func(s *Service) { s.policy = p }
}

// WithPreviewRows sets how many rows previews display.
func WithPreviewRows(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.previewRows = n
		}
	}
}

// NewService creates a Service with the default merge policy
// (MergeFillMissing) and preview size.
func NewService(db DB, opts ...Option) *Service {
	s := &Service{db: db, policy: MergeFillMissing, previewRows: DefaultPreviewRows}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PreviewResponse is the full result of the preview stage: the bounded
// row preview, whole-set statistics, and the resolved column mapping the
// client sends back on commit.
type PreviewResponse struct {
	ImportID      string            `json:"importId"`
	FileName      string            `json:"fileName"`
	Preview       Preview           `json:"preview"`
	Statistics    Statistics        `json:"statistics"`
	ColumnMapping map[string]string `json:"columnMapping"`
	Headers       []string          `json:"headers"`
}

// Preview decodes, maps, normalizes, and validates a file without
// touching the database. It can be re-run freely; the importId it mints
// is only a correlation handle for the later commit.
func (s *Service) Preview(fileData []byte, fileName string, defaultUnit Unit) (*PreviewResponse, error) {
	if defaultUnit == "" {
		defaultUnit = UnitCentimeters
	}

	table, err := Decode(fileData, fileName)
	if err != nil {
		return nil, err
	}

	mapping := MapColumns(table.Headers)

	rows := make([]Row, 0, len(table.Rows))
	for i, raw := range table.Rows {
		rows = append(rows, NormalizeRow(raw, mapping, defaultUnit, i+1))
	}
	validated := ValidateRows(rows)

	preview, stats := BuildPreview(validated, s.previewRows)

	return &PreviewResponse{
		ImportID:      uuid.NewString(),
		FileName:      fileName,
		Preview:       preview,
		Statistics:    stats,
		ColumnMapping: mapping,
		Headers:       table.Headers,
	}, nil
}
