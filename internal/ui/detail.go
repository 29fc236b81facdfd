package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/claro-app/claro/internal/catalog"
)

const (
	reviewPageSize     = 10
	reviewSummaryLimit = 30
	reviewReloadDelay  = 500 * time.Millisecond
)

// detailState holds the product detail screen state.
//
// Async results are tagged with the product id they were fetched for;
// after navigating to another product, late results for the previous one
// are dropped instead of bleeding into the new screen.
type detailState struct {
	productID int64
	detail    *catalog.ProductDetail
	summary   *catalog.ReviewSummary

	reviews        []catalog.Review
	seenReviews    map[int64]struct{}
	reviewPage     int
	hasMoreReviews bool

	loading     bool
	loadingMore bool
	errMsg      string
	statusMsg   string

	submitting bool
	nextTempID int64

	translating        bool
	showTranslations   bool
	translatedDesc     string
	translatedComments map[int64]string // by review id

	selectedReview int
	viewport       viewport.Model
}

func newDetailState() detailState {
	return detailState{
		seenReviews: make(map[int64]struct{}),
	}
}

// Messages

type detailLoadedMsg struct {
	productID int64
	detail    *catalog.ProductDetail
	summary   *catalog.ReviewSummary
	reviews   catalog.Page[catalog.Review]
	err       error
}

type detailReviewsPageMsg struct {
	productID     int64
	requestedPage int
	replace       bool
	page          catalog.Page[catalog.Review]
	err           error
}

type detailHelpfulMsg struct {
	productID int64
	reviewID  int64
	vote      *catalog.HelpfulVote
	err       error
}

type reviewSubmittedMsg struct {
	productID int64
	tempID    int64
	review    *catalog.Review
	err       error
}

type reviewsReloadTickMsg struct {
	productID int64
}

// translationMsg carries the translated batch together with a snapshot
// of what was sent, so the result can be applied (and sanity-checked)
// against the request rather than whatever the screen holds by the time
// it lands.
type translationMsg struct {
	productID    int64
	hasDesc      bool
	desc         string
	commentIDs   []int64
	comments     []string
	translations []string
	err          error
}

// Commands

// loadDetailCmd fetches the product, its review summary, and the first
// review page concurrently. The join is all-or-nothing: one failure
// fails the load rather than rendering a partial screen.
func (m Model) loadDetailCmd(productID int64) tea.Cmd {
	client := m.client
	ctx := m.ctx
	lang := m.language
	return func() tea.Msg {
		var (
			detail  *catalog.ProductDetail
			summary *catalog.ReviewSummary
			reviews catalog.Page[catalog.Review]
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			detail, err = client.FetchProductByID(gctx, productID)
			return err
		})
		g.Go(func() error {
			var err error
			summary, err = client.FetchReviewSummary(gctx, productID, reviewSummaryLimit, lang)
			return err
		})
		g.Go(func() error {
			var err error
			reviews, err = client.FetchReviews(gctx, catalog.ReviewQuery{
				ProductID: productID,
				Page:      0,
				Size:      reviewPageSize,
				SortBy:    "helpfulCount",
				SortDir:   "DESC",
			})
			return err
		})
		if err := g.Wait(); err != nil {
			return detailLoadedMsg{productID: productID, err: err}
		}
		return detailLoadedMsg{
			productID: productID,
			detail:    detail,
			summary:   summary,
			reviews:   reviews,
		}
	}
}

func (m Model) fetchDetailReviewsCmd(productID int64, page int, replace bool) tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		resp, err := client.FetchReviews(ctx, catalog.ReviewQuery{
			ProductID: productID,
			Page:      page,
			Size:      reviewPageSize,
			SortBy:    "helpfulCount",
			SortDir:   "DESC",
		})
		return detailReviewsPageMsg{
			productID:     productID,
			requestedPage: page,
			replace:       replace,
			page:          resp,
			err:           err,
		}
	}
}

func (m Model) toggleHelpfulCmd(productID, reviewID int64) tea.Cmd {
	client := m.client
	ctx := m.ctx
	deviceID := m.deviceID
	return func() tea.Msg {
		vote, err := client.ToggleHelpful(ctx, reviewID, deviceID)
		return detailHelpfulMsg{productID: productID, reviewID: reviewID, vote: vote, err: err}
	}
}

func (m Model) submitReviewCmd(input catalog.SubmitReviewInput, tempID int64) tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		review, err := client.SubmitReview(ctx, input)
		return reviewSubmittedMsg{
			productID: input.ProductID,
			tempID:    tempID,
			review:    review,
			err:       err,
		}
	}
}

func reviewsReloadCmd(productID int64) tea.Cmd {
	return tea.Tick(reviewReloadDelay, func(time.Time) tea.Msg {
		return reviewsReloadTickMsg{productID: productID}
	})
}

func (m Model) translateDetailCmd(lang string, productID int64, desc string, commentIDs []int64, comments []string) tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		texts := make([]string, 0, len(comments)+1)
		if desc != "" {
			texts = append(texts, desc)
		}
		texts = append(texts, comments...)
		translations, err := client.TranslateBatch(ctx, lang, texts)
		return translationMsg{
			productID:    productID,
			hasDesc:      desc != "",
			desc:         desc,
			commentIDs:   commentIDs,
			comments:     comments,
			translations: translations,
			err:          err,
		}
	}
}

// Update handlers

// openDetail resets the detail screen for a product and starts the load.
func (m *Model) openDetail(productID int64) tea.Cmd {
	m.detail = newDetailState()
	m.detail.productID = productID
	m.detail.loading = true
	m.detail.viewport = viewport.New(m.width, m.contentHeight())
	m.screen = screenDetail
	return m.loadDetailCmd(productID)
}

func (m *Model) handleDetailLoaded(msg detailLoadedMsg) tea.Cmd {
	if msg.productID != m.detail.productID || m.screen == screenList {
		return nil
	}
	m.detail.loading = false
	if msg.err != nil {
		m.detail.errMsg = msg.err.Error()
		return nil
	}
	m.detail.errMsg = ""
	m.detail.detail = msg.detail
	m.detail.summary = msg.summary
	m.detail.reviews = nil
	m.detail.seenReviews = make(map[int64]struct{})
	m.detail.selectedReview = 0
	m.appendDetailReviews(msg.reviews.Content)
	m.detail.reviewPage = msg.reviews.PageNumber(0)
	m.detail.hasMoreReviews = msg.reviews.HasMore() && len(msg.reviews.Content) > 0
	m.updateDetailViewport()
	return m.translateIfNeeded()
}

// appendDetailReviews adds reviews the screen has not seen yet. The
// first occurrence of an id wins; later duplicates across page
// boundaries are dropped. Optimistic entries occupy negative ids and
// participate in the same dedup. The translation overlay is keyed by
// review id, so new reviews simply render untranslated until the next
// overlay fetch.
func (m *Model) appendDetailReviews(reviews []catalog.Review) {
	for _, review := range reviews {
		if _, seen := m.detail.seenReviews[review.ID]; seen {
			continue
		}
		m.detail.seenReviews[review.ID] = struct{}{}
		m.detail.reviews = append(m.detail.reviews, review)
	}
}

// loadMoreDetailReviews fetches the next review page.
func (m *Model) loadMoreDetailReviews() tea.Cmd {
	d := &m.detail
	if !d.hasMoreReviews || d.loading || d.loadingMore {
		return nil
	}
	d.loadingMore = true
	return m.fetchDetailReviewsCmd(d.productID, d.reviewPage+1, false)
}

func (m *Model) handleDetailReviewsPage(msg detailReviewsPageMsg) tea.Cmd {
	if msg.productID != m.detail.productID {
		return nil
	}
	m.detail.loadingMore = false
	if msg.err != nil {
		m.detail.errMsg = msg.err.Error()
		return nil
	}
	m.detail.errMsg = ""

	if msg.replace {
		m.detail.reviews = nil
		m.detail.seenReviews = make(map[int64]struct{})
		m.detail.selectedReview = 0
	}
	m.appendDetailReviews(msg.page.Content)
	m.detail.reviewPage = msg.page.PageNumber(msg.requestedPage)
	// An empty page cannot mean more pages, whatever the flag claims.
	m.detail.hasMoreReviews = msg.page.HasMore() && len(msg.page.Content) > 0
	m.clampDetailSelection()
	m.updateDetailViewport()
	return nil
}

// toggleDetailHelpful flips the helpful vote on the selected review.
// Optimistic entries have no server id yet and cannot be voted on.
func (m *Model) toggleDetailHelpful() tea.Cmd {
	review := m.selectedDetailReview()
	if review == nil || review.ID <= 0 {
		return nil
	}
	return m.toggleHelpfulCmd(m.detail.productID, review.ID)
}

func (m *Model) handleDetailHelpful(msg detailHelpfulMsg) tea.Cmd {
	if msg.productID != m.detail.productID {
		return nil
	}
	if msg.err != nil {
		m.detail.errMsg = msg.err.Error()
		return nil
	}
	// Patch the one review in place; no refetch.
	for i := range m.detail.reviews {
		if m.detail.reviews[i].ID == msg.reviewID {
			m.detail.reviews[i].HelpfulCount = msg.vote.HelpfulCount
			break
		}
	}
	m.updateDetailViewport()
	return nil
}

// submitReview validates locally, prepends an optimistic entry, and
// sends the review. The submitting flag never flips on for input the
// server would reject outright.
func (m *Model) submitReview(rating int, comment, reviewerName string) tea.Cmd {
	if m.detail.submitting {
		return nil
	}
	if err := catalog.ValidateRating(rating); err != nil {
		m.form.errMsg = err.Error()
		return nil
	}

	m.detail.nextTempID--
	tempID := m.detail.nextTempID
	optimistic := catalog.Review{
		ID:           tempID,
		ProductID:    m.detail.productID,
		Comment:      comment,
		Rating:       rating,
		ReviewerName: reviewerName,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	m.detail.seenReviews[tempID] = struct{}{}
	m.detail.reviews = append([]catalog.Review{optimistic}, m.detail.reviews...)
	m.detail.submitting = true
	m.detail.statusMsg = "Submitting review..."
	m.updateDetailViewport()

	input := catalog.SubmitReviewInput{
		ProductID:    m.detail.productID,
		Comment:      comment,
		Rating:       rating,
		ReviewerName: reviewerName,
		DeviceID:     m.deviceID,
	}
	return m.submitReviewCmd(input, tempID)
}

func (m *Model) handleReviewSubmitted(msg reviewSubmittedMsg) tea.Cmd {
	if msg.productID != m.detail.productID {
		return nil
	}
	m.detail.submitting = false

	if msg.err != nil {
		// Roll the optimistic entry back; the form keeps its input so
		// the user can retry without retyping.
		m.removeDetailReview(msg.tempID)
		m.detail.statusMsg = ""
		m.form.errMsg = msg.err.Error()
		m.form.open = true
		m.updateDetailViewport()
		return nil
	}

	if msg.review != nil {
		for i := range m.detail.reviews {
			if m.detail.reviews[i].ID == msg.tempID {
				m.detail.reviews[i] = *msg.review
				delete(m.detail.seenReviews, msg.tempID)
				m.detail.seenReviews[msg.review.ID] = struct{}{}
				break
			}
		}
		// The product header reflects the accepted review right away;
		// the delayed reload only replaces the review list, never the
		// product itself.
		if d := m.detail.detail; d != nil {
			d.ReviewCount++
			d.AverageRating = localAverageRating(m.detail.reviews, d.AverageRating)
		}
	}
	m.detail.statusMsg = "Review submitted"
	m.form = newFormState()
	m.updateDetailViewport()
	// The authoritative reload is delayed so the server has settled
	// counts and ordering by the time it answers.
	return reviewsReloadCmd(msg.productID)
}

func (m *Model) handleReviewsReloadTick(msg reviewsReloadTickMsg) tea.Cmd {
	if msg.productID != m.detail.productID {
		return nil
	}
	return m.fetchDetailReviewsCmd(msg.productID, 0, true)
}

func (m *Model) removeDetailReview(id int64) {
	for i := range m.detail.reviews {
		if m.detail.reviews[i].ID == id {
			m.detail.reviews = append(m.detail.reviews[:i], m.detail.reviews[i+1:]...)
			break
		}
	}
	delete(m.detail.seenReviews, id)
	m.clampDetailSelection()
}

// localAverageRating is the mean of the loaded reviews' ratings, used
// to keep the product header honest between an accepted submit and the
// next full load.
func localAverageRating(reviews []catalog.Review, fallback float64) float64 {
	if len(reviews) == 0 {
		return fallback
	}
	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	return float64(sum) / float64(len(reviews))
}

// translateIfNeeded starts an overlay fetch for the current language.
// English (or a blank language) resets the overlay without a call. The
// batch is the trimmed product description first, then every non-blank
// review comment.
func (m *Model) translateIfNeeded() tea.Cmd {
	d := &m.detail
	target := strings.ToLower(strings.TrimSpace(m.language))
	if target == "" || target == "en" {
		m.clearTranslations()
		m.updateDetailViewport()
		return nil
	}
	if d.detail == nil || d.translating {
		return nil
	}

	desc := strings.TrimSpace(d.detail.Description)
	var commentIDs []int64
	var comments []string
	for _, review := range d.reviews {
		comment := strings.TrimSpace(review.Comment)
		if comment == "" {
			continue
		}
		commentIDs = append(commentIDs, review.ID)
		comments = append(comments, comment)
	}
	if desc == "" && len(comments) == 0 {
		return nil
	}
	d.translating = true
	return m.translateDetailCmd(target, d.productID, desc, commentIDs, comments)
}

// toggleTranslations flips the overlay's visibility. With no overlay on
// hand (an earlier fetch failed, say) it retries the fetch instead.
func (m *Model) toggleTranslations() tea.Cmd {
	d := &m.detail
	if d.showTranslations {
		d.showTranslations = false
		m.updateDetailViewport()
		return nil
	}
	if d.translatedDesc != "" || len(d.translatedComments) > 0 {
		d.showTranslations = true
		m.updateDetailViewport()
		return nil
	}
	return m.translateIfNeeded()
}

// handleTranslation applies a finished batch. Failures and short
// responses leave the source text on screen without surfacing an
// error; the overlay never replaces canonical state. The count check
// runs against the request snapshot, so the result is either applied
// whole or discarded whole.
func (m *Model) handleTranslation(msg translationMsg) tea.Cmd {
	if msg.productID != m.detail.productID {
		return nil
	}
	m.detail.translating = false

	want := len(msg.commentIDs)
	if msg.hasDesc {
		want++
	}
	if msg.err != nil || len(msg.translations) != want {
		return nil
	}

	idx := 0
	if msg.hasDesc {
		// A blank translation falls back to the source text.
		if translated := msg.translations[0]; translated != "" {
			m.detail.translatedDesc = translated
		} else {
			m.detail.translatedDesc = msg.desc
		}
		idx = 1
	} else {
		m.detail.translatedDesc = ""
	}
	translated := make(map[int64]string, len(msg.commentIDs))
	for i, id := range msg.commentIDs {
		text := msg.translations[idx+i]
		if text == "" {
			text = msg.comments[i]
		}
		translated[id] = text
	}
	m.detail.translatedComments = translated
	m.detail.showTranslations = true
	m.updateDetailViewport()
	return nil
}

// clearTranslations drops the overlay, e.g. when the language returns
// to the source language.
func (m *Model) clearTranslations() {
	m.detail.translatedDesc = ""
	m.detail.translatedComments = nil
	m.detail.showTranslations = false
}

// toggleDetailFavorite flips the favorite state of the open product.
func (m *Model) toggleDetailFavorite() tea.Cmd {
	if m.detail.productID == 0 {
		return nil
	}
	return m.toggleFavoriteCmd(m.detail.productID)
}

func (m *Model) selectedDetailReview() *catalog.Review {
	if len(m.detail.reviews) == 0 || m.detail.selectedReview >= len(m.detail.reviews) {
		return nil
	}
	return &m.detail.reviews[m.detail.selectedReview]
}

func (m *Model) clampDetailSelection() {
	if m.detail.selectedReview >= len(m.detail.reviews) {
		m.detail.selectedReview = len(m.detail.reviews) - 1
	}
	if m.detail.selectedReview < 0 {
		m.detail.selectedReview = 0
	}
}

// handleDetailKey processes keyboard input for the product detail screen.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form.open {
		return m.handleFormKey(msg)
	}

	switch msg.String() {
	case "esc":
		m.screen = screenList
		return m, nil

	case "r":
		return m, m.openDetail(m.detail.productID)

	case "R":
		return m, m.openReviews(m.detail.productID)

	case "m":
		return m, m.loadMoreDetailReviews()

	case " ":
		return m, m.toggleDetailFavorite()

	case "u":
		return m, m.toggleDetailHelpful()

	case "t":
		return m, m.toggleTranslations()

	case "w":
		m.openForm()
		return m, textinput.Blink

	case "j", "down":
		if m.detail.selectedReview < len(m.detail.reviews)-1 {
			m.detail.selectedReview++
			m.updateDetailViewport()
			return m, nil
		}
		return m, m.loadMoreDetailReviews()

	case "k", "up":
		if m.detail.selectedReview > 0 {
			m.detail.selectedReview--
			m.updateDetailViewport()
		}
		return m, nil

	case "g", "home":
		m.detail.selectedReview = 0
		m.detail.viewport.GotoTop()
		m.updateDetailViewport()
		return m, nil

	case "G", "end":
		m.detail.selectedReview = len(m.detail.reviews) - 1
		m.clampDetailSelection()
		m.detail.viewport.GotoBottom()
		m.updateDetailViewport()
		return m, nil

	case "ctrl+d", "pgdown":
		m.detail.viewport.HalfViewDown()
		return m, nil

	case "ctrl+u", "pgup":
		m.detail.viewport.HalfViewUp()
		return m, nil
	}

	return m, nil
}
