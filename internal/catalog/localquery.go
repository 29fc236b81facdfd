package catalog

import (
	"cmp"
	"sort"
	"strconv"
	"strings"
)

// Sort field names accepted by the server and mirrored locally.
const (
	SortByPrice       = "price"
	SortByRating      = "averageRating"
	SortByName        = "name"
	SortByReviewCount = "reviewCount"
)

// Query holds the filter and sort parameters shared by the server query
// path and the favorites-mode local path. Price bounds stay as strings
// because that is how the UI holds them; blank or unparseable bounds
// apply no filter, matching the server.
type Query struct {
	Search    string
	Category  string
	MinRating int // 0 applies no filter
	MinPrice  string
	MaxPrice  string
	SortBy    string
	SortDir   string
}

// Filter applies the query's predicates client-side, mirroring the
// server semantics: normalized category equality, case-insensitive
// substring search over name+description, and numeric rating/price
// bounds where an unparseable product price compares as 0.
func Filter(items []ProductSummary, q Query) []ProductSummary {
	cat := NormalizeCategory(q.Category)
	search := strings.ToLower(strings.TrimSpace(q.Search))
	minPrice, hasMinPrice := parseBound(q.MinPrice)
	maxPrice, hasMaxPrice := parseBound(q.MaxPrice)

	out := make([]ProductSummary, 0, len(items))
	for _, item := range items {
		if cat != "" && item.Category != cat {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.Description), search) {
			continue
		}
		if q.MinRating > 0 && item.AverageRating < float64(q.MinRating) {
			continue
		}
		if hasMinPrice && item.PriceValue() < minPrice {
			continue
		}
		if hasMaxPrice && item.PriceValue() > maxPrice {
			continue
		}
		out = append(out, item)
	}
	return out
}

// SortProducts orders items by the given field and direction without
// mutating the input. The sort is stable: ties keep encounter order.
// Ascending only when sortDir equals "ASC" case-insensitively.
func SortProducts(items []ProductSummary, sortBy, sortDir string) []ProductSummary {
	out := make([]ProductSummary, len(items))
	copy(out, items)

	asc := strings.EqualFold(sortDir, "ASC")
	sort.SliceStable(out, func(i, j int) bool {
		c := compareProducts(out[i], out[j], sortBy)
		if asc {
			return c < 0
		}
		return c > 0
	})
	return out
}

func compareProducts(a, b ProductSummary, sortBy string) int {
	switch sortBy {
	case SortByPrice:
		return cmp.Compare(a.PriceValue(), b.PriceValue())
	case SortByRating:
		return cmp.Compare(a.AverageRating, b.AverageRating)
	case SortByName:
		return strings.Compare(a.Name, b.Name)
	default:
		return cmp.Compare(a.ReviewCount, b.ReviewCount)
	}
}

func parseBound(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
