package importer

import "testing"

func TestNormalizeRow(t *testing.T) {
	raw := map[string]string{
		"Name":          "Amina Yusuf",
		"Phone":         "+254 (712) 345-678",
		"Units":         "Inches",
		"Chest":         "38",
		"Sleeve Lenght": "9/24",
		"Waist":         "not a number",
		"Notes":         "prefers slim fit",
		"Ignored":       "whatever",
	}
	mapping := MapColumns([]string{"Name", "Phone", "Units", "Chest", "Sleeve Lenght", "Waist", "Notes"})

	row := NormalizeRow(raw, mapping, UnitCentimeters, 3)

	if row.ClientName != "Amina Yusuf" {
		t.Errorf("ClientName = %q", row.ClientName)
	}
	if row.ClientPhone != "+254712345678" {
		t.Errorf("ClientPhone = %q, want %q", row.ClientPhone, "+254712345678")
	}
	if row.Units != UnitInches {
		t.Errorf("Units = %q, want %q", row.Units, UnitInches)
	}
	if row.Chest == nil || *row.Chest != 38 {
		t.Errorf("Chest = %v, want 38", row.Chest)
	}
	if row.SleeveLength == nil || *row.SleeveLength != 9 {
		t.Errorf("SleeveLength = %v, want 9 (first segment of 9/24)", row.SleeveLength)
	}
	if row.TrouserWaist != nil {
		t.Errorf("TrouserWaist = %v, want nil for unparseable cell", row.TrouserWaist)
	}
	if row.AdditionalInfo != "prefers slim fit" {
		t.Errorf("AdditionalInfo = %q", row.AdditionalInfo)
	}
	if row.RowNumber != 3 {
		t.Errorf("RowNumber = %d, want 3", row.RowNumber)
	}
}

func TestNormalizeRowDefaultUnit(t *testing.T) {
	mapping := MapColumns([]string{"Name"})
	row := NormalizeRow(map[string]string{"Name": "Bob"}, mapping, UnitInches, 1)
	if row.Units != UnitInches {
		t.Errorf("Units = %q, want default %q", row.Units, UnitInches)
	}
}

func TestParseMeasurement(t *testing.T) {
	tests := []struct {
		raw  string
		want *float64
	}{
		{"38", f(38)},
		{"40.5", f(40.5)},
		{" 17 ", f(17)},
		{"9/24", f(9)},
		{"9 / 24", f(9)},
		{"0", f(0)},
		{"40cm", f(40)},
		{"38 in", f(38)},
		{"40.5 cm approx", f(40.5)},
		{".5in", f(0.5)},
		{"", nil},
		{"abc", nil},
		{"-5", nil},
		{"-5cm", nil},
		{"/24", nil},
		{"NaN", nil},
		{"Inf", nil},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseMeasurement(tt.raw)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("ParseMeasurement(%q) = %v, want nil", tt.raw, *got)
			case tt.want != nil && got == nil:
				t.Errorf("ParseMeasurement(%q) = nil, want %v", tt.raw, *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("ParseMeasurement(%q) = %v, want %v", tt.raw, *got, *tt.want)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		raw, want string
	}{
		{"0712 345 678", "0712345678"},
		{"+254-712-345-678", "+254712345678"},
		{"(0712) 345678", "0712345678"},
		{"07 12 34 56 78 ext. 9", "07123456789"},
		{"n/a", ""},
		{"++0712", "+0712"},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.raw); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		raw  string
		def  Unit
		want Unit
	}{
		{"in", UnitCentimeters, UnitInches},
		{"Inches", UnitCentimeters, UnitInches},
		{"CM", UnitInches, UnitCentimeters},
		{"centimetres", UnitInches, UnitCentimeters},
		{"", UnitCentimeters, UnitCentimeters},
		{"furlongs", UnitInches, UnitInches},
	}
	for _, tt := range tests {
		if got := ParseUnit(tt.raw, tt.def); got != tt.want {
			t.Errorf("ParseUnit(%q, %q) = %q, want %q", tt.raw, tt.def, got, tt.want)
		}
	}
}

func f(v float64) *float64 { return &v }
