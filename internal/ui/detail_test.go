package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/claro-app/claro/internal/catalog"
)

func openTestDetail(t *testing.T, m Model, productID int64) Model {
	t.Helper()
	cmd := m.openDetail(productID)
	m, _ = runCmd(t, m, cmd)
	return m
}

func TestOpenDetailLoadsEverythingConcurrently(t *testing.T) {
	api := &fakeAPI{
		fetchProduct: func(_ context.Context, id int64) (*catalog.ProductDetail, error) {
			return &catalog.ProductDetail{ID: id, Name: "Keyboard"}, nil
		},
		fetchSummary: func(_ context.Context, productID int64, limit int, lang string) (*catalog.ReviewSummary, error) {
			if limit != reviewSummaryLimit {
				t.Errorf("summary limit = %d, want %d", limit, reviewSummaryLimit)
			}
			return &catalog.ReviewSummary{ProductID: productID, Takeaway: "Solid."}, nil
		},
		fetchReviews: func(_ context.Context, q catalog.ReviewQuery) (catalog.Page[catalog.Review], error) {
			if q.SortBy != "helpfulCount" || q.SortDir != "DESC" {
				t.Errorf("review sort = %s %s, want helpfulCount DESC", q.SortBy, q.SortDir)
			}
			return reviewPage([]catalog.Review{{ID: 10, ProductID: q.ProductID}}, 0, false), nil
		},
	}
	m := newTestModel(t, api)
	m = openTestDetail(t, m, 7)

	if m.detail.loading {
		t.Fatalf("loading still set")
	}
	if m.detail.detail == nil || m.detail.detail.Name != "Keyboard" {
		t.Fatalf("detail not applied: %+v", m.detail.detail)
	}
	if m.detail.summary == nil || m.detail.summary.Takeaway != "Solid." {
		t.Fatalf("summary not applied: %+v", m.detail.summary)
	}
	if len(m.detail.reviews) != 1 || m.detail.reviews[0].ID != 10 {
		t.Fatalf("reviews not applied: %+v", m.detail.reviews)
	}
	if !m.detail.hasMoreReviews {
		t.Fatalf("hasMoreReviews = false, want true")
	}
}

func TestOpenDetailFailsWholeOnAnyError(t *testing.T) {
	api := &fakeAPI{
		fetchSummary: func(context.Context, int64, int, string) (*catalog.ReviewSummary, error) {
			return nil, errors.New("summary backend down")
		},
	}
	m := newTestModel(t, api)
	m = openTestDetail(t, m, 7)

	if m.detail.errMsg == "" {
		t.Fatalf("error not surfaced")
	}
	if m.detail.detail != nil {
		t.Fatalf("partial detail applied despite failure")
	}
}

func TestDetailReviewPagesDedupByFirstSeen(t *testing.T) {
	api := &fakeAPI{
		fetchReviews: func(_ context.Context, q catalog.ReviewQuery) (catalog.Page[catalog.Review], error) {
			switch q.Page {
			case 0:
				return reviewPage([]catalog.Review{
					{ID: 1, HelpfulCount: 9},
					{ID: 2, HelpfulCount: 5},
				}, 0, false), nil
			case 1:
				// Id 2 reappears after a boundary shift; its first-seen
				// copy must win.
				return reviewPage([]catalog.Review{
					{ID: 2, HelpfulCount: 6},
					{ID: 3, HelpfulCount: 1},
				}, 1, true), nil
			}
			return catalog.Page[catalog.Review]{}, nil
		},
	}
	m := newTestModel(t, api)
	m = openTestDetail(t, m, 7)

	cmd := m.loadMoreDetailReviews()
	m, _ = runCmd(t, m, cmd)

	if len(m.detail.reviews) != 3 {
		t.Fatalf("reviews = %d, want 3 (duplicate dropped)", len(m.detail.reviews))
	}
	if m.detail.reviews[1].HelpfulCount != 5 {
		t.Fatalf("duplicate replaced first-seen copy: helpful = %d, want 5", m.detail.reviews[1].HelpfulCount)
	}
	if m.detail.hasMoreReviews {
		t.Fatalf("hasMoreReviews = true after last page")
	}
}

func TestEmptyReviewPageStopsPagination(t *testing.T) {
	m := newTestModel(t, &fakeAPI{})
	m = openTestDetail(t, m, 7)
	m.detail.hasMoreReviews = true

	// A server claiming more pages while returning nothing must not
	// induce an endless fetch loop.
	m, _ = update(t, m, detailReviewsPageMsg{
		productID:     7,
		requestedPage: 1,
		page:          reviewPage(nil, 1, false),
	})

	if m.detail.hasMoreReviews {
		t.Fatalf("hasMoreReviews = true for empty page")
	}
}

func TestLateDetailResultForOtherProductDropped(t *testing.T) {
	m := newTestModel(t, &fakeAPI{})
	m = openTestDetail(t, m, 7)

	m, _ = update(t, m, detailReviewsPageMsg{
		productID:     3, // from a previous navigation
		requestedPage: 1,
		page:          reviewPage([]catalog.Review{{ID: 99}}, 1, true),
	})

	for _, review := range m.detail.reviews {
		if review.ID == 99 {
			t.Fatalf("review from another product applied")
		}
	}
}

func TestToggleHelpfulPatchesInPlace(t *testing.T) {
	calls := 0
	api := &fakeAPI{
		fetchReviews: func(_ context.Context, q catalog.ReviewQuery) (catalog.Page[catalog.Review], error) {
			calls++
			return reviewPage([]catalog.Review{
				{ID: 10, HelpfulCount: 3},
				{ID: 11, HelpfulCount: 1},
			}, 0, true), nil
		},
		toggleHelpful: func(_ context.Context, reviewID int64, deviceID string) (*catalog.HelpfulVote, error) {
			if deviceID != "device-test" {
				t.Errorf("deviceID = %q, want device-test", deviceID)
			}
			return &catalog.HelpfulVote{ReviewID: reviewID, HelpfulCount: 4, HelpfulByMe: true}, nil
		},
	}
	m := newTestModel(t, api)
	m = openTestDetail(t, m, 7)
	fetchesAfterLoad := calls

	cmd := m.toggleDetailHelpful()
	m, _ = runCmd(t, m, cmd)

	if m.detail.reviews[0].HelpfulCount != 4 {
		t.Fatalf("helpful count = %d, want 4", m.detail.reviews[0].HelpfulCount)
	}
	if m.detail.reviews[1].HelpfulCount != 1 {
		t.Fatalf("unrelated review mutated")
	}
	if calls != fetchesAfterLoad {
		t.Fatalf("helpful toggle triggered a refetch")
	}
}

func TestSubmitReviewOptimisticThenReconciled(t *testing.T) {
	api := &fakeAPI{
		submitReview: func(_ context.Context, input catalog.SubmitReviewInput) (*catalog.Review, error) {
			return &catalog.Review{
				ID:        42,
				ProductID: input.ProductID,
				Rating:    input.Rating,
				Comment:   input.Comment,
			}, nil
		},
	}
	m := newTestModel(t, api)
	m = openTestDetail(t, m, 7)

	cmd := m.submitReview(5, "Great keys", "Ana")
	if !m.detail.submitting {
		t.Fatalf("submitting not set")
	}
	if len(m.detail.reviews) != 1 || m.detail.reviews[0].ID >= 0 {
		t.Fatalf("optimistic entry missing: %+v", m.detail.reviews)
	}

	m, reload := runCmd(t, m, cmd)
	if m.detail.submitting {
		t.Fatalf("submitting still set after success")
	}
	if m.detail.reviews[0].ID != 42 {
		t.Fatalf("optimistic entry not reconciled: id = %d", m.detail.reviews[0].ID)
	}
	if reload == nil {
		t.Fatalf("no delayed authoritative reload scheduled")
	}

	// The delayed tick triggers a page-zero replace.
	m, _ = update(t, m, reviewsReloadTickMsg{productID: 7})
	if m.detail.loadingMore {
		// fetchDetailReviewsCmd runs via the returned command; state
		// flags stay untouched until its message lands.
		t.Fatalf("reload tick mutated loading flags")
	}
}

func TestSubmitReviewInvalidRatingRejectedLocally(t *testing.T) {
	requests := 0
	api := &fakeAPI{
		submitReview: func(context.Context, catalog.SubmitReviewInput) (*catalog.Review, error) {
			requests++
			return nil, nil
		},
	}
	m := newTestModel(t, api)
	m = openTestDetail(t, m, 7)

	cmd := m.submitReview(0, "no stars", "")
	if cmd != nil {
		t.Fatalf("invalid rating produced a submit command")
	}
	if m.detail.submitting {
		t.Fatalf("submitting set for invalid input")
	}
	if len(m.detail.reviews) != 0 {
		t.Fatalf("optimistic entry added for invalid input")
	}
	if m.form.errMsg == "" {
		t.Fatalf("validation error not surfaced")
	}
	if requests != 0 {
		t.Fatalf("request issued for invalid rating")
	}
}

func TestSubmitReviewFailureRollsBackOptimistic(t *testing.T) {
	api := &fakeAPI{
		submitReview: func(context.Context, catalog.SubmitReviewInput) (*catalog.Review, error) {
			return nil, errors.New("server rejected")
		},
	}
	m := newTestModel(t, api)
	m = openTestDetail(t, m, 7)
	m.form.commentInput.SetValue("Great keys")

	cmd := m.submitReview(4, "Great keys", "Ana")
	m, _ = runCmd(t, m, cmd)

	if len(m.detail.reviews) != 0 {
		t.Fatalf("optimistic entry not rolled back: %+v", m.detail.reviews)
	}
	if m.form.errMsg == "" {
		t.Fatalf("submit error not surfaced")
	}
	if !m.form.open {
		t.Fatalf("form not reopened for retry")
	}
	if m.form.commentInput.Value() != "Great keys" {
		t.Fatalf("form input lost on failure")
	}
}

func TestSubmitReviewUpdatesProductHeaderLocally(t *testing.T) {
	api := &fakeAPI{
		fetchProduct: func(_ context.Context, id int64) (*catalog.ProductDetail, error) {
			return &catalog.ProductDetail{ID: id, Name: "Keyboard", ReviewCount: 2, AverageRating: 3.0}, nil
		},
		fetchReviews: func(_ context.Context, q catalog.ReviewQuery) (catalog.Page[catalog.Review], error) {
			return reviewPage([]catalog.Review{
				{ID: 1, Rating: 3},
				{ID: 2, Rating: 3},
			}, 0, true), nil
		},
		submitReview: func(_ context.Context, input catalog.SubmitReviewInput) (*catalog.Review, error) {
			return &catalog.Review{ID: 42, ProductID: input.ProductID, Rating: input.Rating}, nil
		},
	}
	m := newTestModel(t, api)
	m = openTestDetail(t, m, 7)

	cmd := m.submitReview(5, "Great keys", "Ana")
	m, _ = runCmd(t, m, cmd)

	if got := m.detail.detail.ReviewCount; got != 3 {
		t.Fatalf("reviewCount = %d, want 3 (incremented by 1)", got)
	}
	// Mean of the locally-known ratings 5, 3, 3.
	if got := m.detail.detail.AverageRating; got < 3.66 || got > 3.67 {
		t.Fatalf("averageRating = %v, want 11/3", got)
	}
}

func TestDetailLoadTranslatesDescriptionAndNonBlankComments(t *testing.T) {
	var gotLang string
	var gotTexts []string
	api := &fakeAPI{
		fetchProduct: func(_ context.Context, id int64) (*catalog.ProductDetail, error) {
			return &catalog.ProductDetail{ID: id, Name: "Keyboard", Description: "A fine keyboard"}, nil
		},
		fetchReviews: func(_ context.Context, q catalog.ReviewQuery) (catalog.Page[catalog.Review], error) {
			return reviewPage([]catalog.Review{
				{ID: 1, Comment: "Great"},
				{ID: 2, Comment: "   "}, // blank, stays out of the batch
				{ID: 3, Comment: "Sturdy"},
			}, 0, true), nil
		},
		translateBatch: func(_ context.Context, lang string, texts []string) ([]string, error) {
			gotLang = lang
			gotTexts = texts
			return []string{"Un teclado excelente", "Genial", "Robusto"}, nil
		},
	}
	m := newTestModel(t, api)
	m.language = "es"

	cmd := m.openDetail(7)
	m, translate := runCmd(t, m, cmd)
	if translate == nil {
		t.Fatalf("load did not start a translation")
	}
	m, _ = runCmd(t, m, translate)

	if gotLang != "es" {
		t.Fatalf("lang = %q, want es", gotLang)
	}
	wantTexts := []string{"A fine keyboard", "Great", "Sturdy"}
	if len(gotTexts) != len(wantTexts) {
		t.Fatalf("batch = %q, want %q", gotTexts, wantTexts)
	}
	for i := range wantTexts {
		if gotTexts[i] != wantTexts[i] {
			t.Fatalf("batch[%d] = %q, want %q", i, gotTexts[i], wantTexts[i])
		}
	}

	if !m.detail.showTranslations {
		t.Fatalf("overlay not shown after load")
	}
	if m.detail.translatedDesc != "Un teclado excelente" {
		t.Fatalf("translatedDesc = %q", m.detail.translatedDesc)
	}
	if got := m.detail.translatedComments[1]; got != "Genial" {
		t.Fatalf("comment 1 = %q, want Genial", got)
	}
	if _, ok := m.detail.translatedComments[2]; ok {
		t.Fatalf("blank comment got a translation entry")
	}
}

func TestEnglishLanguageNeverCallsTranslate(t *testing.T) {
	calls := 0
	api := &fakeAPI{
		fetchProduct: func(_ context.Context, id int64) (*catalog.ProductDetail, error) {
			return &catalog.ProductDetail{ID: id, Description: "A fine keyboard"}, nil
		},
		fetchReviews: func(_ context.Context, q catalog.ReviewQuery) (catalog.Page[catalog.Review], error) {
			return reviewPage([]catalog.Review{{ID: 1, Comment: "Great"}}, 0, true), nil
		},
		translateBatch: func(_ context.Context, _ string, texts []string) ([]string, error) {
			calls++
			return make([]string, len(texts)), nil
		},
	}
	m := newTestModel(t, api) // language defaults to en
	m = openTestDetail(t, m, 7)

	if calls != 0 {
		t.Fatalf("TranslateBatch called %d times with lang=en, want 0", calls)
	}

	// Switching back to the source language resets the overlay without
	// a call.
	m.detail.translatedDesc = "Un teclado excelente"
	m.detail.translatedComments = map[int64]string{1: "Genial"}
	m.detail.showTranslations = true

	if cmd := m.translateIfNeeded(); cmd != nil {
		t.Fatalf("source language produced a translate command")
	}
	if calls != 0 {
		t.Fatalf("TranslateBatch called %d times on reset, want 0", calls)
	}
	if m.detail.showTranslations || m.detail.translatedDesc != "" || m.detail.translatedComments != nil {
		t.Fatalf("overlay not reset for source language")
	}
}

func TestTranslationShortResponseDiscardedSilently(t *testing.T) {
	api := &fakeAPI{
		fetchProduct: func(_ context.Context, id int64) (*catalog.ProductDetail, error) {
			return &catalog.ProductDetail{ID: id, Description: "A fine keyboard"}, nil
		},
		fetchReviews: func(_ context.Context, q catalog.ReviewQuery) (catalog.Page[catalog.Review], error) {
			return reviewPage([]catalog.Review{
				{ID: 1, Comment: "Great"},
				{ID: 2, Comment: "Sturdy"},
			}, 0, true), nil
		},
		translateBatch: func(_ context.Context, _ string, texts []string) ([]string, error) {
			return []string{"Un teclado excelente"}, nil // wrong length
		},
	}
	m := newTestModel(t, api)
	m.language = "es"

	cmd := m.openDetail(7)
	m, translate := runCmd(t, m, cmd)
	m, _ = runCmd(t, m, translate)

	if m.detail.showTranslations {
		t.Fatalf("short response applied")
	}
	if m.detail.errMsg != "" {
		t.Fatalf("translation failure surfaced as error: %q", m.detail.errMsg)
	}
	if m.detail.translating {
		t.Fatalf("translating still set")
	}
}

func TestTranslationBlankEntriesFallBackToSource(t *testing.T) {
	calls := 0
	api := &fakeAPI{
		fetchProduct: func(_ context.Context, id int64) (*catalog.ProductDetail, error) {
			return &catalog.ProductDetail{ID: id, Description: "A fine keyboard"}, nil
		},
		fetchReviews: func(_ context.Context, q catalog.ReviewQuery) (catalog.Page[catalog.Review], error) {
			return reviewPage([]catalog.Review{
				{ID: 1, Comment: "Great"},
				{ID: 2, Comment: "Sturdy"},
			}, 0, true), nil
		},
		translateBatch: func(_ context.Context, _ string, texts []string) ([]string, error) {
			calls++
			return []string{"", "Genial", ""}, nil
		},
	}
	m := newTestModel(t, api)
	m.language = "es"

	cmd := m.openDetail(7)
	m, translate := runCmd(t, m, cmd)
	m, _ = runCmd(t, m, translate)

	if !m.detail.showTranslations {
		t.Fatalf("overlay not shown")
	}
	if m.detail.translatedDesc != "A fine keyboard" {
		t.Fatalf("blank description translation did not fall back: %q", m.detail.translatedDesc)
	}
	if got := m.detail.translatedComments[2]; got != "Sturdy" {
		t.Fatalf("blank comment translation did not fall back: %q", got)
	}

	// Toggling off and on again reuses the overlay without refetching.
	if cmd := m.toggleTranslations(); cmd != nil {
		t.Fatalf("hide produced a command")
	}
	if cmd := m.toggleTranslations(); cmd != nil {
		t.Fatalf("cached overlay refetched")
	}
	if !m.detail.showTranslations {
		t.Fatalf("cached overlay not shown")
	}
	if calls != 1 {
		t.Fatalf("TranslateBatch calls = %d, want 1", calls)
	}
}

func TestLanguageChangeRetranslatesOpenProduct(t *testing.T) {
	var langs []string
	api := &fakeAPI{
		fetchProduct: func(_ context.Context, id int64) (*catalog.ProductDetail, error) {
			return &catalog.ProductDetail{ID: id, Description: "A fine keyboard"}, nil
		},
		translateBatch: func(_ context.Context, lang string, texts []string) ([]string, error) {
			langs = append(langs, lang)
			return make([]string, len(texts)), nil
		},
	}
	m := newTestModel(t, api)
	m = openTestDetail(t, m, 7)

	m.openSettings()
	m.settings.languageIdx = languageIndex("fr")
	next, cmd := m.handleSettingsKey(keyMsg("enter"))
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("language change did not start a translation")
	}
	m, _ = runCmd(t, m, cmd)

	if len(langs) != 1 || langs[0] != "fr" {
		t.Fatalf("translate langs = %v, want [fr]", langs)
	}
}
