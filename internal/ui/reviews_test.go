package ui

import (
	"context"
	"testing"

	"github.com/claro-app/claro/internal/catalog"
)

func openTestReviews(t *testing.T, m Model, productID int64) Model {
	t.Helper()
	cmd := m.openReviews(productID)
	m, _ = runCmd(t, m, cmd)
	return m
}

func TestReviewsScreenOrdersByCreationAndAppendsVerbatim(t *testing.T) {
	api := &fakeAPI{
		fetchReviews: func(_ context.Context, q catalog.ReviewQuery) (catalog.Page[catalog.Review], error) {
			if q.SortBy != "createdAt" || q.SortDir != "DESC" {
				t.Errorf("sort = %s %s, want createdAt DESC", q.SortBy, q.SortDir)
			}
			switch q.Page {
			case 0:
				return reviewPage([]catalog.Review{
					{ID: 3, CreatedAt: "2026-03-01T00:00:00Z"},
					{ID: 2, CreatedAt: "2026-02-01T00:00:00Z"},
				}, 0, false), nil
			case 1:
				// Id 2 repeats across the boundary; this screen keeps
				// the server's pages exactly as sent.
				return reviewPage([]catalog.Review{
					{ID: 2, CreatedAt: "2026-02-01T00:00:00Z"},
					{ID: 1, CreatedAt: "2026-01-01T00:00:00Z"},
				}, 1, true), nil
			}
			return catalog.Page[catalog.Review]{}, nil
		},
	}
	m := newTestModel(t, api)
	m = openTestReviews(t, m, 7)

	if len(m.reviews.reviews) != 2 {
		t.Fatalf("first page = %d reviews, want 2", len(m.reviews.reviews))
	}

	m, cmd := update(t, m, keyMsg("m"))
	m, _ = runCmd(t, m, cmd)

	if got := len(m.reviews.reviews); got != 4 {
		t.Fatalf("reviews = %d, want 4 (duplicates kept)", got)
	}
	if m.reviews.hasMore {
		t.Fatalf("hasMore = true after last page")
	}
}

func TestReviewsHelpfulPatchesEveryOccurrence(t *testing.T) {
	api := &fakeAPI{
		toggleHelpful: func(_ context.Context, reviewID int64, _ string) (*catalog.HelpfulVote, error) {
			return &catalog.HelpfulVote{ReviewID: reviewID, HelpfulCount: 8, HelpfulByMe: true}, nil
		},
	}
	m := newTestModel(t, api)
	m.reviews = reviewsState{
		productID: 7,
		reviews: []catalog.Review{
			{ID: 2, HelpfulCount: 7},
			{ID: 5, HelpfulCount: 1},
			{ID: 2, HelpfulCount: 7}, // duplicate from append mode
		},
	}
	m.screen = screenReviews

	cmd := m.toggleReviewsHelpful()
	m, _ = runCmd(t, m, cmd)

	if m.reviews.reviews[0].HelpfulCount != 8 || m.reviews.reviews[2].HelpfulCount != 8 {
		t.Fatalf("duplicate occurrences diverged: %+v", m.reviews.reviews)
	}
	if m.reviews.reviews[1].HelpfulCount != 1 {
		t.Fatalf("unrelated review mutated")
	}
}

func TestReviewsResultForOtherProductDropped(t *testing.T) {
	m := newTestModel(t, &fakeAPI{})
	m.reviews = reviewsState{productID: 7}
	m.screen = screenReviews

	m, _ = update(t, m, reviewsPageMsg{
		productID: 3,
		page:      reviewPage([]catalog.Review{{ID: 99}}, 0, true),
	})

	if len(m.reviews.reviews) != 0 {
		t.Fatalf("result for another product applied: %+v", m.reviews.reviews)
	}
}

func TestReviewsErrorKeepsLoadedPages(t *testing.T) {
	m := newTestModel(t, &fakeAPI{})
	m.reviews = reviewsState{
		productID: 7,
		reviews:   []catalog.Review{{ID: 1}},
		hasMore:   true,
	}
	m.screen = screenReviews

	m, _ = update(t, m, reviewsPageMsg{
		productID:     7,
		requestedPage: 1,
		appendMode:    true,
		err:           context.DeadlineExceeded,
	})

	if len(m.reviews.reviews) != 1 {
		t.Fatalf("loaded reviews dropped on error")
	}
	if m.reviews.errMsg == "" {
		t.Fatalf("error not surfaced")
	}
}
