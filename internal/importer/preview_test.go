package importer

import "testing"

func makeValidatedRows(n int) []ValidatedRow {
	rows := make([]Row, n)
	for i := range rows {
		chest := 38.0
		rows[i] = Row{ClientName: "Client", Units: UnitCentimeters, Chest: &chest, RowNumber: i + 1}
	}
	return ValidateRows(rows)
}

func TestBuildPreviewBoundsRows(t *testing.T) {
	preview, stats := BuildPreview(makeValidatedRows(25), 10)

	if got, want := len(preview.Rows), 10; got != want {
		t.Errorf("got %d preview rows, want %d", got, want)
	}
	if preview.TotalRows != 25 {
		t.Errorf("TotalRows = %d, want 25", preview.TotalRows)
	}
	if stats.TotalRows != 25 || stats.ValidRows != 25 || stats.InvalidRows != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestBuildPreviewStatisticsCoverWholeSet(t *testing.T) {
	validated := makeValidatedRows(5)
	// Make the last row invalid; it sits past the preview cutoff.
	validated[4].ClientName = ""
	validated[4].Errors = ValidateRow(validated[4].Row)

	preview, stats := BuildPreview(validated, 3)

	if len(preview.Rows) != 3 {
		t.Fatalf("got %d preview rows, want 3", len(preview.Rows))
	}
	if stats.InvalidRows != 1 || stats.ValidRows != 4 {
		t.Errorf("stats = %+v, want 4 valid / 1 invalid", stats)
	}
}

func TestBuildPreviewHeadersFollowCanonicalOrder(t *testing.T) {
	chest := 38.0
	neck := 15.0
	rows := ValidateRows([]Row{{
		ClientName: "Ada",
		Units:      UnitCentimeters,
		Chest:      &chest,
		Neck:       &neck,
		Branch:     "Westlands",
		RowNumber:  1,
	}})

	preview, _ := BuildPreview(rows, 10)

	want := []string{FieldClientName, FieldUnits, "chest", "neck", FieldBranch}
	if len(preview.Headers) != len(want) {
		t.Fatalf("headers = %v, want %v", preview.Headers, want)
	}
	for i, h := range want {
		if preview.Headers[i] != h {
			t.Errorf("headers[%d] = %q, want %q", i, preview.Headers[i], h)
		}
	}
}

func TestBuildPreviewRowData(t *testing.T) {
	chest := 40.5
	rows := ValidateRows([]Row{{
		ClientPhone: "0712345678",
		Units:       UnitInches,
		Chest:       &chest,
		RowNumber:   1,
	}})

	preview, _ := BuildPreview(rows, 10)
	data := preview.Rows[0].Data

	if data[FieldClientPhone] != "0712345678" {
		t.Errorf("phone = %v", data[FieldClientPhone])
	}
	if data[FieldUnits] != "in" {
		t.Errorf("units = %v", data[FieldUnits])
	}
	if data["chest"] != 40.5 {
		t.Errorf("chest = %v", data["chest"])
	}
	if _, ok := data["neck"]; ok {
		t.Error("absent measurement should not appear in row data")
	}
	if !preview.Rows[0].IsValid {
		t.Error("row should be valid")
	}
}

func TestBuildPreviewZeroLimitFallsBack(t *testing.T) {
	preview, _ := BuildPreview(makeValidatedRows(30), 0)
	if got, want := len(preview.Rows), DefaultPreviewRows; got != want {
		t.Errorf("got %d rows, want default %d", got, want)
	}
}
