package importer

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// Decode turns raw file bytes into a Table. The file extension decides
// the format: .xlsx/.xlsm go through excelize (first worksheet only),
// everything else is treated as CSV. Zero data rows after parsing is a
// *DecodeError; there is no partial decode.
func Decode(data []byte, fileName string) (*Table, error) {
	if len(data) == 0 {
		return nil, &DecodeError{FileName: fileName, Reason: "empty file"}
	}

	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xlsm":
		records, err = readXLSX(data)
	default:
		records, err = readCSV(data)
	}
	if err != nil {
		return nil, &DecodeError{FileName: fileName, Reason: "unparseable file", Err: err}
	}

	return tableFromRecords(records, fileName)
}

func readCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(sanitizeUTF8(data)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

// readXLSX reads the first worksheet. excelize already trims trailing
// empty cells per row; missing cells default to "" when the table is
// assembled, so sparse rows never fail.
func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	return f.GetRows(sheets[0])
}

func tableFromRecords(records [][]string, fileName string) (*Table, error) {
	// The header is the first non-empty record.
	start := 0
	for start < len(records) && isEmptyRecord(records[start]) {
		start++
	}
	if start >= len(records) {
		return nil, &DecodeError{FileName: fileName, Reason: "no data rows"}
	}

	headers := make([]string, 0, len(records[start]))
	for _, h := range records[start] {
		headers = append(headers, strings.TrimSpace(h))
	}

	t := &Table{Headers: headers}
	for _, rec := range records[start+1:] {
		if isEmptyRecord(rec) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}

	if len(t.Rows) == 0 {
		return nil, &DecodeError{FileName: fileName, Reason: "no data rows"}
	}
	return t, nil
}

func isEmptyRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// sanitizeUTF8 replaces invalid byte sequences with U+FFFD so the CSV
// reader never chokes on Latin-1 or Windows-1252 exports.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}
	return buf.Bytes()
}
