// Package importer implements the bulk measurement import pipeline:
// decoding an uploaded spreadsheet, mapping its free-form headers onto
// canonical measurement fields, normalizing and validating each row,
// building a bounded preview, and committing valid rows with per-row
// partial-failure semantics.
//
// Stages are strictly linear and, up to the preview, free of side
// effects; only Commit writes to the database.
package importer

import "time"

// Unit is the measurement unit for a row.
type Unit string

const (
	UnitCentimeters Unit = "cm"
	UnitInches      Unit = "in"
)

// ParseUnit interprets a raw units cell. "in" and "inches" (any case)
// mean inches; anything else, including an empty cell, falls back to def.
func ParseUnit(raw string, def Unit) Unit {
	switch normalizeHeader(raw) {
	case "in", "inches":
		return UnitInches
	case "cm", "centimeters", "centimetres":
		return UnitCentimeters
	default:
		return def
	}
}

// Canonical client/meta field names.
const (
	FieldClientName     = "client_name"
	FieldClientPhone    = "client_phone"
	FieldClientEmail    = "client_email"
	FieldClientAddress  = "client_address"
	FieldUnits          = "units"
	FieldEntryID        = "entry_id"
	FieldAdditionalInfo = "additional_info"
	FieldBranch         = "branch"
)

// NumericFields lists the canonical measurement fields in display order.
var NumericFields = []string{
	"across_back",
	"chest",
	"sleeve_length",
	"around_arm",
	"neck",
	"top_length",
	"wrist",
	"trouser_waist",
	"trouser_thigh",
	"trouser_knee",
	"trouser_length",
	"trouser_bars",
}

// CanonicalFields lists every canonical field in display order, used for
// preview headers and the downloadable template.
var CanonicalFields = buildCanonicalFields()

func buildCanonicalFields() []string {
	fields := []string{
		FieldClientName,
		FieldClientPhone,
		FieldClientEmail,
		FieldClientAddress,
		FieldUnits,
	}
	fields = append(fields, NumericFields...)
	return append(fields, FieldEntryID, FieldAdditionalInfo, FieldBranch)
}

// Table is the decoded form of an uploaded file: an ordered header list
// and one string-valued cell map per data row, keyed by raw header.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// Row is a canonical measurement row after normalization. Numeric fields
// are nil when the source cell was absent or unparseable; the Validator
// surfaces genuinely bad values, the normalizer never errors.
type Row struct {
	ClientName    string
	ClientPhone   string
	ClientEmail   string
	ClientAddress string
	Units         Unit

	AcrossBack    *float64
	Chest         *float64
	SleeveLength  *float64
	AroundArm     *float64
	Neck          *float64
	TopLength     *float64
	Wrist         *float64
	TrouserWaist  *float64
	TrouserThigh  *float64
	TrouserKnee   *float64
	TrouserLength *float64
	TrouserBars   *float64

	EntryID        string
	AdditionalInfo string
	Branch         string

	// RowNumber is the 1-based position in the source file. Used for
	// error reporting only, never persisted.
	RowNumber int
}

// Numeric returns the value of a canonical measurement field by name,
// or nil for unknown fields.
func (r *Row) Numeric(field string) *float64 {
	switch field {
	case "across_back":
		return r.AcrossBack
	case "chest":
		return r.Chest
	case "sleeve_length":
		return r.SleeveLength
	case "around_arm":
		return r.AroundArm
	case "neck":
		return r.Neck
	case "top_length":
		return r.TopLength
	case "wrist":
		return r.Wrist
	case "trouser_waist":
		return r.TrouserWaist
	case "trouser_thigh":
		return r.TrouserThigh
	case "trouser_knee":
		return r.TrouserKnee
	case "trouser_length":
		return r.TrouserLength
	case "trouser_bars":
		return r.TrouserBars
	default:
		return nil
	}
}

func (r *Row) setNumeric(field string, v *float64) {
	switch field {
	case "across_back":
		r.AcrossBack = v
	case "chest":
		r.Chest = v
	case "sleeve_length":
		r.SleeveLength = v
	case "around_arm":
		r.AroundArm = v
	case "neck":
		r.Neck = v
	case "top_length":
		r.TopLength = v
	case "wrist":
		r.Wrist = v
	case "trouser_waist":
		r.TrouserWaist = v
	case "trouser_thigh":
		r.TrouserThigh = v
	case "trouser_knee":
		r.TrouserKnee = v
	case "trouser_length":
		r.TrouserLength = v
	case "trouser_bars":
		r.TrouserBars = v
	}
}

// FieldError is a single per-field validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidatedRow pairs a canonical row with its validation errors.
type ValidatedRow struct {
	Row
	Errors []FieldError `json:"errors,omitempty"`
}

// IsValid reports whether the row passed every validation rule.
func (v ValidatedRow) IsValid() bool { return len(v.Errors) == 0 }

// Principal identifies the acting user for audit logging. It is threaded
// explicitly through Commit rather than held in package state.
type Principal struct {
	UserID string
	Name   string
	Role   string
}

// RowError is one entry in a commit report. Error is set for store-level
// failures, Errors for rows that failed re-validation.
type RowError struct {
	RowNumber int      `json:"rowNumber"`
	Error     string   `json:"error,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// CommitRequest carries everything Commit needs for one batch.
type CommitRequest struct {
	ImportID      string
	FileName      string
	Rows          []map[string]any
	ColumnMapping map[string]string
	DefaultUnit   Unit
	Actor         Principal
}

// CommitResult is the outcome of a batch commit. SuccessCount plus
// FailedCount always equals the number of submitted rows.
type CommitResult struct {
	ImportID     string        `json:"importId"`
	SuccessCount int           `json:"successCount"`
	FailedCount  int           `json:"failedCount"`
	Errors       []RowError    `json:"errors"`
	Duration     time.Duration `json:"-"`
}
