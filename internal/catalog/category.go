package catalog

import "strings"

// categorySynonyms maps lowercased free-text inputs to the server's
// canonical category tokens. Multi-word categories keep the literal
// ampersand form the server enumerates.
var categorySynonyms = map[string]string{
	"electronics":         "ELECTRONICS",
	"clothing":            "CLOTHING",
	"books":               "BOOKS",
	"home & kitchen":      "HOME & KITCHEN",
	"home and kitchen":    "HOME & KITCHEN",
	"homekitchen":         "HOME & KITCHEN",
	"sports & outdoors":   "SPORTS & OUTDOORS",
	"sports and outdoors": "SPORTS & OUTDOORS",
	"sportsoutdoors":      "SPORTS & OUTDOORS",
}

// NormalizeCategory maps a free-text category to the server's canonical
// enumeration. Blank input normalizes to "" (no filter). The same
// function backs both server query building and the favorites-mode
// local filter so the two paths cannot disagree; it is idempotent.
func NormalizeCategory(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if canon, ok := categorySynonyms[strings.ToLower(trimmed)]; ok {
		return canon
	}
	if trimmed == strings.ToUpper(trimmed) {
		return trimmed
	}
	return strings.ToUpper(trimmed)
}

// KnownCategories lists the canonical categories the filter UI offers.
func KnownCategories() []string {
	return []string{"ELECTRONICS", "CLOTHING", "BOOKS", "HOME & KITCHEN", "SPORTS & OUTDOORS"}
}
