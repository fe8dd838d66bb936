package importer

import (
	"fmt"
	"math"
	"strings"
)

// clientInfoMessage is the exact wording the UI keys on.
const clientInfoMessage = "Either client name or phone number is required"

// ValidateRow checks one canonical row against the business rules and
// returns every failure. It never returns an error value: a clean row
// simply yields an empty list.
//
// Per-field min/max range tables exist in the measurement schema but are
// intentionally not enforced here; any non-negative number is accepted.
func ValidateRow(r Row) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(r.ClientName) == "" && strings.TrimSpace(r.ClientPhone) == "" {
		errs = append(errs, FieldError{Field: "client_info", Message: clientInfoMessage})
	}

	for _, field := range NumericFields {
		v := r.Numeric(field)
		if v == nil {
			continue
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("%s must be a finite number", field)})
		} else if *v < 0 {
			errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("%s must not be negative", field)})
		}
	}

	return errs
}

// ValidateRows validates a batch.
func ValidateRows(rows []Row) []ValidatedRow {
	out := make([]ValidatedRow, len(rows))
	for i, r := range rows {
		out[i] = ValidatedRow{Row: r, Errors: ValidateRow(r)}
	}
	return out
}
