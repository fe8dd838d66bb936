package importer

import (
	"sort"
	"strconv"
	"strings"
)

// NormalizeRow applies a column mapping to one raw row, producing a
// canonical row. Only mapped columns are copied; everything else in the
// source row is discarded. Parsing is tolerant by design: a numeric cell
// that fails to parse becomes nil here and the Validator decides whether
// that matters.
//
// entry_id passes through untouched when the source supplies one;
// otherwise it stays empty and is minted at commit time, so repeated
// preview renders of the same row are deterministic.
func NormalizeRow(raw map[string]string, mapping map[string]string, defaultUnit Unit, rowNumber int) Row {
	row := Row{Units: defaultUnit, RowNumber: rowNumber}

	// Iterate in sorted header order so two source columns mapped to the
	// same canonical field resolve the same way on every render.
	headers := make([]string, 0, len(raw))
	for h := range raw {
		headers = append(headers, h)
	}
	sort.Strings(headers)

	for _, h := range headers {
		canonical, ok := mapping[h]
		if !ok {
			continue
		}
		value := strings.TrimSpace(raw[h])
		if value == "" {
			continue
		}

		switch canonical {
		case FieldClientName:
			row.ClientName = value
		case FieldClientPhone:
			row.ClientPhone = NormalizePhone(value)
		case FieldClientEmail:
			row.ClientEmail = value
		case FieldClientAddress:
			row.ClientAddress = value
		case FieldUnits:
			row.Units = ParseUnit(value, defaultUnit)
		case FieldEntryID:
			row.EntryID = value
		case FieldAdditionalInfo:
			row.AdditionalInfo = value
		case FieldBranch:
			row.Branch = value
		default:
			row.setNumeric(canonical, ParseMeasurement(value))
		}
	}

	return row
}

// ParseMeasurement parses one measurement cell. Values like "9/24" mean
// "size 9 or 24" in the source spreadsheets; only the first segment is
// used. Trailing text after the number is ignored, so "40cm" and "38 in"
// read as 40 and 38. Unparseable or negative values yield nil rather
// than an error.
func ParseMeasurement(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if i := strings.Index(raw, "/"); i >= 0 {
		raw = strings.TrimSpace(raw[:i])
	}

	v, err := strconv.ParseFloat(numericPrefix(raw), 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

// numericPrefix returns the longest leading run of s that can start a
// decimal number: an optional sign, digits, at most one point.
func numericPrefix(s string) string {
	end := 0
	seenDot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !seenDot:
			seenDot = true
		case (r == '+' || r == '-') && i == 0:
		default:
			return s[:end]
		}
		end = i + 1
	}
	return s
}

// NormalizePhone strips every character except digits and a leading "+".
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	var b strings.Builder
	b.Grow(len(raw))
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
