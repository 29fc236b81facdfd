package ui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/claro-app/claro/internal/catalog"
	"github.com/claro-app/claro/internal/favorites"
)

// fakeAPI implements catalog.API with overridable function fields. Nil
// fields answer with empty values.
type fakeAPI struct {
	fetchProducts  func(ctx context.Context, q catalog.ProductQuery) (catalog.Page[catalog.ProductSummary], error)
	fetchProduct   func(ctx context.Context, id int64) (*catalog.ProductDetail, error)
	fetchSummary   func(ctx context.Context, productID int64, limit int, lang string) (*catalog.ReviewSummary, error)
	fetchReviews   func(ctx context.Context, q catalog.ReviewQuery) (catalog.Page[catalog.Review], error)
	submitReview   func(ctx context.Context, input catalog.SubmitReviewInput) (*catalog.Review, error)
	toggleHelpful  func(ctx context.Context, reviewID int64, deviceID string) (*catalog.HelpfulVote, error)
	translateBatch func(ctx context.Context, lang string, texts []string) ([]string, error)
}

var _ catalog.API = (*fakeAPI)(nil)

func (f *fakeAPI) FetchProducts(ctx context.Context, q catalog.ProductQuery) (catalog.Page[catalog.ProductSummary], error) {
	if f.fetchProducts == nil {
		return catalog.Page[catalog.ProductSummary]{}, nil
	}
	return f.fetchProducts(ctx, q)
}

func (f *fakeAPI) FetchProductByID(ctx context.Context, id int64) (*catalog.ProductDetail, error) {
	if f.fetchProduct == nil {
		return &catalog.ProductDetail{ID: id}, nil
	}
	return f.fetchProduct(ctx, id)
}

func (f *fakeAPI) FetchReviewSummary(ctx context.Context, productID int64, limit int, lang string) (*catalog.ReviewSummary, error) {
	if f.fetchSummary == nil {
		return &catalog.ReviewSummary{ProductID: productID}, nil
	}
	return f.fetchSummary(ctx, productID, limit, lang)
}

func (f *fakeAPI) FetchReviews(ctx context.Context, q catalog.ReviewQuery) (catalog.Page[catalog.Review], error) {
	if f.fetchReviews == nil {
		return catalog.Page[catalog.Review]{}, nil
	}
	return f.fetchReviews(ctx, q)
}

func (f *fakeAPI) SubmitReview(ctx context.Context, input catalog.SubmitReviewInput) (*catalog.Review, error) {
	if f.submitReview == nil {
		return &catalog.Review{ID: 1, ProductID: input.ProductID, Rating: input.Rating}, nil
	}
	return f.submitReview(ctx, input)
}

func (f *fakeAPI) ToggleHelpful(ctx context.Context, reviewID int64, deviceID string) (*catalog.HelpfulVote, error) {
	if f.toggleHelpful == nil {
		return &catalog.HelpfulVote{ReviewID: reviewID}, nil
	}
	return f.toggleHelpful(ctx, reviewID, deviceID)
}

func (f *fakeAPI) TranslateBatch(ctx context.Context, lang string, texts []string) ([]string, error) {
	if f.translateBatch == nil {
		return make([]string, len(texts)), nil
	}
	return f.translateBatch(ctx, lang, texts)
}

// newTestModel builds a ready Model over a fake API and a throwaway
// favorites store.
func newTestModel(t *testing.T, api catalog.API) Model {
	t.Helper()
	store, err := favorites.Open(filepath.Join(t.TempDir(), "favorites.toml"))
	if err != nil {
		t.Fatalf("favorites.Open: %v", err)
	}
	m := New(Options{
		Client:    api,
		Favorites: store,
		DeviceID:  "device-test",
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	m.width = 120
	m.height = 40
	m.ready = true
	return m
}

// update drives one message through Update and returns the new Model.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

// runCmd executes a command synchronously and feeds its message back.
func runCmd(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command, got nil")
	}
	msg := cmd()
	if msg == nil {
		return m, nil
	}
	return update(t, m, msg)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func productPage(items []catalog.ProductSummary, number int, last bool) catalog.Page[catalog.ProductSummary] {
	return catalog.Page[catalog.ProductSummary]{
		Content: items,
		Number:  intPtr(number),
		Last:    boolPtr(last),
	}
}

func reviewPage(items []catalog.Review, number int, last bool) catalog.Page[catalog.Review] {
	return catalog.Page[catalog.Review]{
		Content: items,
		Number:  intPtr(number),
		Last:    boolPtr(last),
	}
}
