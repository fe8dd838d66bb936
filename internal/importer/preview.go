package importer

// DefaultPreviewRows is how many rows a preview displays when the caller
// does not say otherwise.
const DefaultPreviewRows = 10

// PreviewRow is one displayed row: its canonical data plus validation
// outcome, so the reviewer sees exactly what commit would act on.
type PreviewRow struct {
	RowNumber int            `json:"rowNumber"`
	Data      map[string]any `json:"data"`
	Errors    []FieldError   `json:"errors,omitempty"`
	IsValid   bool           `json:"isValid"`
}

// Preview is the bounded slice shown for human review.
type Preview struct {
	Rows      []PreviewRow `json:"rows"`
	Headers   []string     `json:"headers"`
	TotalRows int          `json:"totalRows"`
}

// Statistics aggregates over the entire row set, not just the displayed
// slice.
type Statistics struct {
	TotalRows   int `json:"totalRows"`
	ValidRows   int `json:"validRows"`
	InvalidRows int `json:"invalidRows"`
}

// BuildPreview assembles the first limit rows plus whole-set statistics.
// It is a pure function: no I/O, safe to call repeatedly and discard.
func BuildPreview(rows []ValidatedRow, limit int) (Preview, Statistics) {
	if limit <= 0 {
		limit = DefaultPreviewRows
	}

	stats := Statistics{TotalRows: len(rows)}
	for _, r := range rows {
		if r.IsValid() {
			stats.ValidRows++
		} else {
			stats.InvalidRows++
		}
	}

	p := Preview{TotalRows: len(rows)}
	for i := 0; i < len(rows) && i < limit; i++ {
		r := rows[i]
		p.Rows = append(p.Rows, PreviewRow{
			RowNumber: r.RowNumber,
			Data:      rowData(r.Row),
			Errors:    r.Errors,
			IsValid:   r.IsValid(),
		})
	}

	if len(p.Rows) > 0 {
		for _, f := range CanonicalFields {
			if _, ok := p.Rows[0].Data[f]; ok {
				p.Headers = append(p.Headers, f)
			}
		}
	}

	return p, stats
}

// rowData flattens the populated canonical fields of a row for display.
func rowData(r Row) map[string]any {
	data := make(map[string]any)
	put := func(field, v string) {
		if v != "" {
			data[field] = v
		}
	}
	put(FieldClientName, r.ClientName)
	put(FieldClientPhone, r.ClientPhone)
	put(FieldClientEmail, r.ClientEmail)
	put(FieldClientAddress, r.ClientAddress)
	data[FieldUnits] = string(r.Units)
	for _, field := range NumericFields {
		if v := r.Numeric(field); v != nil {
			data[field] = *v
		}
	}
	put(FieldEntryID, r.EntryID)
	put(FieldAdditionalInfo, r.AdditionalInfo)
	put(FieldBranch, r.Branch)
	return data
}
