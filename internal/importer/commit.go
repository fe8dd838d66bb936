package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/atelierware/fitbook/internal/logging"
	"github.com/atelierware/fitbook/internal/store"
)

// Commit persists a reviewed batch. Every incoming raw row is
// re-normalized and re-validated here; the preview's isValid flags are
// client-held state and are never trusted.
//
// Rows are processed strictly sequentially, one transaction per row, so
// a later row's customer lookup observes every earlier row's committed
// writes: two rows sharing a new phone number resolve to the same
// customer. A row failure rolls back only that row's transaction and the
// loop continues; SuccessCount+FailedCount always equals len(req.Rows).
//
// Commit is not idempotent. Re-submitting a batch creates new
// measurement rows (and new customers unless the phone/email dedup
// catches them); there is no commit-level deduplication key.
func (s *Service) Commit(ctx context.Context, req CommitRequest) (*CommitResult, error) {
	start := time.Now()

	defaultUnit := req.DefaultUnit
	if defaultUnit == "" {
		defaultUnit = UnitCentimeters
	}

	validated := make([]ValidatedRow, 0, len(req.Rows))
	for i, raw := range req.Rows {
		row := NormalizeRow(stringifyRow(raw), req.ColumnMapping, defaultUnit, i+1)
		validated = append(validated, ValidatedRow{Row: row, Errors: ValidateRow(row)})
	}

	importID := req.ImportID
	if _, err := uuid.Parse(importID); err != nil {
		importID = uuid.NewString()
	}

	q := store.New(s.db)
	if err := q.CreateImportRun(ctx, importID, req.FileName, int32(len(validated))); err != nil {
		return nil, fmt.Errorf("create import run: %w", err)
	}

	result := &CommitResult{
		ImportID: importID,
		Errors:   make([]RowError, 0),
	}

	for _, vr := range validated {
		if !vr.IsValid() {
			// Never reaches the database at all.
			msgs := make([]string, len(vr.Errors))
			for i, fe := range vr.Errors {
				msgs[i] = fe.Message
			}
			result.Errors = append(result.Errors, RowError{RowNumber: vr.RowNumber, Errors: msgs})
			result.FailedCount++
			continue
		}

		if err := s.commitRow(ctx, vr.Row); err != nil {
			result.Errors = append(result.Errors, RowError{RowNumber: vr.RowNumber, Error: err.Error()})
			result.FailedCount++
			continue
		}
		result.SuccessCount++
	}

	report, err := json.Marshal(result.Errors)
	if err != nil {
		return nil, fmt.Errorf("marshal row report: %w", err)
	}
	if err := q.CompleteImportRun(ctx, importID, int32(result.SuccessCount), int32(result.FailedCount), report); err != nil {
		return nil, fmt.Errorf("complete import run: %w", err)
	}

	if err := q.InsertAuditLog(ctx, store.InsertAuditLogParams{
		ID:       uuid.NewString(),
		Action:   store.AuditActionImportCommit,
		UserID:   store.Text(req.Actor.UserID),
		UserName: store.Text(req.Actor.Name),
		UserRole: store.Text(req.Actor.Role),
		Detail:   fmt.Sprintf("imported %s: %d succeeded, %d failed", req.FileName, result.SuccessCount, result.FailedCount),
	}); err != nil {
		return nil, fmt.Errorf("audit log: %w", err)
	}

	result.Duration = time.Since(start)
	logging.WithFields(ctx,
		"import_id", importID,
		"file", req.FileName,
	).Info("import committed",
		"total", len(validated),
		"succeeded", result.SuccessCount,
		"failed", result.FailedCount,
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}

// commitRow resolves or creates the owning customer and inserts the
// measurement inside one transaction, so a failed insert rolls back the
// customer mutation made for the same row without touching other rows.
func (s *Service) commitRow(ctx context.Context, row Row) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	q := store.New(tx)

	customerID, err := s.resolveCustomer(ctx, q, row)
	if err != nil {
		return err
	}

	entryID := row.EntryID
	if entryID == "" {
		entryID = NewEntryID()
	}

	if err := q.InsertMeasurement(ctx, store.InsertMeasurementParams{
		ID:             uuid.NewString(),
		CustomerID:     customerID,
		EntryID:        entryID,
		Units:          string(row.Units),
		AcrossBack:     row.AcrossBack,
		Chest:          row.Chest,
		SleeveLength:   row.SleeveLength,
		AroundArm:      row.AroundArm,
		Neck:           row.Neck,
		TopLength:      row.TopLength,
		Wrist:          row.Wrist,
		TrouserWaist:   row.TrouserWaist,
		TrouserThigh:   row.TrouserThigh,
		TrouserKnee:    row.TrouserKnee,
		TrouserLength:  row.TrouserLength,
		TrouserBars:    row.TrouserBars,
		AdditionalInfo: store.Text(row.AdditionalInfo),
		Branch:         store.Text(row.Branch),
		Version:        1,
	}); err != nil {
		return fmt.Errorf("insert measurement: %w", err)
	}

	return tx.Commit(ctx)
}

// resolveCustomer finds an existing customer by phone or email (phone
// wins when both match different rows) and merge-updates it, or inserts
// a new one. No attempt is made to reconcile the case where phone and
// email point at two different existing customers; first match wins.
func (s *Service) resolveCustomer(ctx context.Context, q *store.Queries, row Row) (string, error) {
	if row.ClientPhone != "" || row.ClientEmail != "" {
		existing, err := q.GetCustomerByPhoneOrEmail(ctx, row.ClientPhone, row.ClientEmail)
		switch {
		case err == nil:
			merged, changed := mergeCustomer(existing, row, s.policy)
			if changed {
				if err := q.UpdateCustomer(ctx, merged); err != nil {
					return "", fmt.Errorf("update customer: %w", err)
				}
			}
			return existing.ID, nil
		case errors.Is(err, pgx.ErrNoRows):
			// fall through to insert
		default:
			return "", fmt.Errorf("lookup customer: %w", err)
		}
	}

	name := row.ClientName
	if name == "" {
		name = "Unknown"
	}
	id := uuid.NewString()
	if err := q.InsertCustomer(ctx, store.InsertCustomerParams{
		ID:      id,
		Name:    name,
		Phone:   store.Text(row.ClientPhone),
		Email:   store.Text(row.ClientEmail),
		Address: store.Text(row.ClientAddress),
	}); err != nil {
		return "", fmt.Errorf("insert customer: %w", err)
	}
	return id, nil
}

// mergeCustomer applies the merge policy and reports whether anything
// changed. Under MergeFillMissing a stored non-empty value is never
// overwritten, matching the historical coalesce behavior.
func mergeCustomer(existing store.Customer, row Row, policy MergePolicy) (store.Customer, bool) {
	changed := false

	apply := func(current *pgtype.Text, incoming string) {
		if incoming == "" {
			return
		}
		switch policy {
		case MergeLatestWins:
			if !current.Valid || current.String != incoming {
				*current = store.Text(incoming)
				changed = true
			}
		default: // MergeFillMissing
			if !current.Valid || current.String == "" {
				*current = store.Text(incoming)
				changed = true
			}
		}
	}

	apply(&existing.Phone, row.ClientPhone)
	apply(&existing.Email, row.ClientEmail)
	apply(&existing.Address, row.ClientAddress)

	if row.ClientName != "" {
		switch policy {
		case MergeLatestWins:
			if existing.Name != row.ClientName {
				existing.Name = row.ClientName
				changed = true
			}
		default:
			if existing.Name == "" {
				existing.Name = row.ClientName
				changed = true
			}
		}
	}

	return existing, changed
}

// NewEntryID mints a deterministically-unique measurement identifier:
// millisecond timestamp plus a random suffix.
func NewEntryID() string {
	return "ENT-" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + uuid.NewString()[:8]
}

// stringifyRow flattens a JSON-decoded row (string or number cells) into
// the string cells the normalizer works on.
func stringifyRow(raw map[string]any) map[string]string {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = cellString(v)
	}
	return out
}

func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
