package catalog

import "testing"

func sample() []ProductSummary {
	return []ProductSummary{
		{ID: 1, Name: "Kettle", Description: "Steel kettle", Category: "HOME & KITCHEN", Price: "29.99", AverageRating: 3.0, ReviewCount: 12},
		{ID: 2, Name: "Headphones", Description: "Noise cancelling", Category: "ELECTRONICS", Price: "199.00", AverageRating: 4.0, ReviewCount: 310},
		{ID: 3, Name: "Novel", Description: "A long novel", Category: "BOOKS", Price: "not-a-price", AverageRating: 4.5, ReviewCount: 57},
	}
}

func TestFilter_MinRating(t *testing.T) {
	got := Filter(sample(), Query{MinRating: 4})
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 3 {
		t.Fatalf("Filter minRating=4 = %v, want ids [2 3]", ids(got))
	}
}

func TestFilter_CategoryUsesNormalization(t *testing.T) {
	got := Filter(sample(), Query{Category: "home and kitchen"})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("Filter category = %v, want ids [1]", ids(got))
	}
}

func TestFilter_SearchMatchesNameAndDescription(t *testing.T) {
	got := Filter(sample(), Query{Search: "  NOISE "})
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("Filter search = %v, want ids [2]", ids(got))
	}
	got = Filter(sample(), Query{Search: "kettle"})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("Filter search name = %v, want ids [1]", ids(got))
	}
}

func TestFilter_PriceBounds(t *testing.T) {
	// Unparseable product price compares as 0, so minPrice excludes it.
	got := Filter(sample(), Query{MinPrice: "20"})
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("Filter minPrice = %v, want ids [1 2]", ids(got))
	}
	got = Filter(sample(), Query{MaxPrice: "50"})
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("Filter maxPrice = %v, want ids [1 3]", ids(got))
	}
	// Unparseable bound applies no filter.
	got = Filter(sample(), Query{MinPrice: "cheap"})
	if len(got) != 3 {
		t.Fatalf("Filter bad bound = %v, want all 3", ids(got))
	}
}

func TestSortProducts_FieldsAndDirection(t *testing.T) {
	items := sample()

	got := SortProducts(items, SortByPrice, "ASC")
	if ids(got)[0] != 3 || ids(got)[1] != 1 || ids(got)[2] != 2 {
		t.Fatalf("sort price asc = %v, want [3 1 2]", ids(got))
	}

	got = SortProducts(items, SortByRating, "desc")
	if ids(got)[0] != 3 || ids(got)[2] != 1 {
		t.Fatalf("sort rating desc = %v, want [3 2 1]", ids(got))
	}

	got = SortProducts(items, SortByName, "asc")
	if got[0].Name != "Headphones" || got[2].Name != "Novel" {
		t.Fatalf("sort name asc = %v, want Headphones first", ids(got))
	}

	// Unknown field falls back to reviewCount, default direction is
	// descending for anything that is not exactly "ASC".
	got = SortProducts(items, "bogus", "")
	if ids(got)[0] != 2 || ids(got)[2] != 1 {
		t.Fatalf("sort default = %v, want [2 3 1]", ids(got))
	}
}

func TestSortProducts_StableOnTies(t *testing.T) {
	items := []ProductSummary{
		{ID: 10, Name: "A", ReviewCount: 5},
		{ID: 11, Name: "B", ReviewCount: 5},
		{ID: 12, Name: "C", ReviewCount: 5},
	}
	got := SortProducts(items, SortByReviewCount, "DESC")
	if ids(got)[0] != 10 || ids(got)[1] != 11 || ids(got)[2] != 12 {
		t.Fatalf("tie order = %v, want encounter order [10 11 12]", ids(got))
	}
}

func TestSortProducts_DoesNotMutateInput(t *testing.T) {
	items := sample()
	_ = SortProducts(items, SortByPrice, "ASC")
	if items[0].ID != 1 || items[1].ID != 2 || items[2].ID != 3 {
		t.Fatalf("input mutated: %v", ids(items))
	}
}

func ids(items []ProductSummary) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
