package importer

import "strings"

// synonyms maps normalized source headers to canonical field names.
// The keys cover the header variants seen in real client spreadsheets,
// including the long "Client Information (...)" composites and the
// recurring "Sleeve Lenght" misspelling, which is tolerated on purpose
// to match the upstream spreadsheet convention.
var synonyms = map[string]string{
	// client identity
	"name":                                   FieldClientName,
	"client name":                            FieldClientName,
	"customer name":                          FieldClientName,
	"full name":                              FieldClientName,
	"client":                                 FieldClientName,
	"name (reference)":                       FieldClientName,
	"client information (name (reference))":  FieldClientName,
	"phone":                                  FieldClientPhone,
	"phone number":                           FieldClientPhone,
	"phone no":                               FieldClientPhone,
	"mobile":                                 FieldClientPhone,
	"mobile number":                          FieldClientPhone,
	"telephone":                              FieldClientPhone,
	"contact number":                         FieldClientPhone,
	"client information (phone number)":      FieldClientPhone,
	"email":                                  FieldClientEmail,
	"e-mail":                                 FieldClientEmail,
	"email address":                          FieldClientEmail,
	"client information (email)":             FieldClientEmail,
	"address":                                FieldClientAddress,
	"client address":                         FieldClientAddress,
	"client information (address)":           FieldClientAddress,

	// units
	"units":            FieldUnits,
	"unit":             FieldUnits,
	"measurement unit": FieldUnits,
	"uom":              FieldUnits,

	// upper body
	"across back":   "across_back",
	"across-back":   "across_back",
	"back":          "across_back",
	"shoulder":      "across_back",
	"shoulders":     "across_back",
	"chest":         "chest",
	"bust":          "chest",
	"chest/bust":    "chest",
	"sleeve length": "sleeve_length",
	"sleeve lenght": "sleeve_length", // upstream misspelling, kept deliberately
	"sleeve":        "sleeve_length",
	"sleeves":       "sleeve_length",
	"around arm":    "around_arm",
	"arm":           "around_arm",
	"arm round":     "around_arm",
	"bicep":         "around_arm",
	"biceps":        "around_arm",
	"neck":          "neck",
	"collar":        "neck",
	"top length":    "top_length",
	"shirt length":  "top_length",
	"length (top)":  "top_length",
	"wrist":         "wrist",
	"cuff":          "wrist",

	// trousers
	"waist":            "trouser_waist",
	"trouser waist":    "trouser_waist",
	"trousers waist":   "trouser_waist",
	"thigh":            "trouser_thigh",
	"lap":              "trouser_thigh",
	"trouser thigh":    "trouser_thigh",
	"knee":             "trouser_knee",
	"trouser knee":     "trouser_knee",
	"trouser length":   "trouser_length",
	"trousers length":  "trouser_length",
	"pant length":      "trouser_length",
	"length (trouser)": "trouser_length",
	"bars":             "trouser_bars",
	"trouser bars":     "trouser_bars",
	"ankle":            "trouser_bars",
	"bottom":           "trouser_bars",

	// metadata
	"entry id":               FieldEntryID,
	"entry_id":               FieldEntryID,
	"reference":              FieldEntryID,
	"ref":                    FieldEntryID,
	"additional info":        FieldAdditionalInfo,
	"additional information": FieldAdditionalInfo,
	"notes":                  FieldAdditionalInfo,
	"note":                   FieldAdditionalInfo,
	"comments":               FieldAdditionalInfo,
	"comment":                FieldAdditionalInfo,
	"branch":                 FieldBranch,
	"store":                  FieldBranch,
	"outlet":                 FieldBranch,
}

// MapColumns resolves each source header to at most one canonical field.
// Headers with no synonym entry are silently excluded: their columns
// never reach a normalized row, and that is not an error.
func MapColumns(headers []string) map[string]string {
	mapping := make(map[string]string, len(headers))
	for _, h := range headers {
		key := normalizeHeader(h)
		if key == "" {
			continue
		}
		if canonical, ok := synonyms[key]; ok {
			mapping[h] = canonical
		}
	}
	return mapping
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}
