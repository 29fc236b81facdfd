package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/claro-app/claro/internal/catalog"
)

// reviewsState holds the standalone all-reviews screen state. Unlike
// the detail screen's review strip, this list is ordered by creation
// time and appends pages exactly as the server returns them.
type reviewsState struct {
	productID   int64
	productName string

	reviews     []catalog.Review
	page        int
	hasMore     bool
	loading     bool
	loadingMore bool
	errMsg      string

	selectedRow int
}

// Messages

type reviewsPageMsg struct {
	productID     int64
	requestedPage int
	appendMode    bool
	page          catalog.Page[catalog.Review]
	err           error
}

type reviewsHelpfulMsg struct {
	productID int64
	reviewID  int64
	vote      *catalog.HelpfulVote
	err       error
}

// Commands

func (m Model) fetchReviewsCmd(productID int64, page int, appendMode bool) tea.Cmd {
	client := m.client
	ctx := m.ctx
	return func() tea.Msg {
		resp, err := client.FetchReviews(ctx, catalog.ReviewQuery{
			ProductID: productID,
			Page:      page,
			Size:      reviewPageSize,
			SortBy:    "createdAt",
			SortDir:   "DESC",
		})
		return reviewsPageMsg{
			productID:     productID,
			requestedPage: page,
			appendMode:    appendMode,
			page:          resp,
			err:           err,
		}
	}
}

func (m Model) reviewsHelpfulCmd(productID, reviewID int64) tea.Cmd {
	client := m.client
	ctx := m.ctx
	deviceID := m.deviceID
	return func() tea.Msg {
		vote, err := client.ToggleHelpful(ctx, reviewID, deviceID)
		return reviewsHelpfulMsg{productID: productID, reviewID: reviewID, vote: vote, err: err}
	}
}

// Update handlers

// openReviews switches to the all-reviews screen for a product and
// starts the first page load.
func (m *Model) openReviews(productID int64) tea.Cmd {
	name := ""
	if m.detail.productID == productID && m.detail.detail != nil {
		name = m.detail.detail.Name
	}
	m.reviews = reviewsState{
		productID:   productID,
		productName: name,
		loading:     true,
	}
	m.screen = screenReviews
	return m.fetchReviewsCmd(productID, 0, false)
}

func (m *Model) loadMoreReviews() tea.Cmd {
	r := &m.reviews
	if !r.hasMore || r.loading || r.loadingMore {
		return nil
	}
	r.loadingMore = true
	return m.fetchReviewsCmd(r.productID, r.page+1, true)
}

func (m *Model) handleReviewsPage(msg reviewsPageMsg) tea.Cmd {
	if msg.productID != m.reviews.productID {
		return nil
	}
	m.reviews.loading = false
	m.reviews.loadingMore = false

	if msg.err != nil {
		m.reviews.errMsg = msg.err.Error()
		return nil
	}
	m.reviews.errMsg = ""

	if msg.appendMode {
		// Pages append verbatim; the server owns ordering and any
		// duplicate across page boundaries.
		m.reviews.reviews = append(m.reviews.reviews, msg.page.Content...)
	} else {
		m.reviews.reviews = msg.page.Content
		m.reviews.selectedRow = 0
	}
	m.reviews.page = msg.page.PageNumber(msg.requestedPage)
	m.reviews.hasMore = msg.page.HasMore()
	m.clampReviewsSelection()
	return nil
}

func (m *Model) toggleReviewsHelpful() tea.Cmd {
	review := m.selectedReview()
	if review == nil || review.ID <= 0 {
		return nil
	}
	return m.reviewsHelpfulCmd(m.reviews.productID, review.ID)
}

func (m *Model) handleReviewsHelpful(msg reviewsHelpfulMsg) tea.Cmd {
	if msg.productID != m.reviews.productID {
		return nil
	}
	if msg.err != nil {
		m.reviews.errMsg = msg.err.Error()
		return nil
	}
	// Patch every occurrence: append mode can hold the same review
	// twice when pages shifted underneath the client.
	for i := range m.reviews.reviews {
		if m.reviews.reviews[i].ID == msg.reviewID {
			m.reviews.reviews[i].HelpfulCount = msg.vote.HelpfulCount
		}
	}
	return nil
}

func (m *Model) selectedReview() *catalog.Review {
	if len(m.reviews.reviews) == 0 || m.reviews.selectedRow >= len(m.reviews.reviews) {
		return nil
	}
	return &m.reviews.reviews[m.reviews.selectedRow]
}

func (m *Model) clampReviewsSelection() {
	if m.reviews.selectedRow >= len(m.reviews.reviews) {
		m.reviews.selectedRow = len(m.reviews.reviews) - 1
	}
	if m.reviews.selectedRow < 0 {
		m.reviews.selectedRow = 0
	}
}

// handleReviewsKey processes keyboard input for the all-reviews screen.
func (m Model) handleReviewsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenDetail
		return m, nil

	case "r":
		return m, m.openReviews(m.reviews.productID)

	case "m":
		return m, m.loadMoreReviews()

	case "u":
		return m, m.toggleReviewsHelpful()

	case "j", "down":
		if m.reviews.selectedRow < len(m.reviews.reviews)-1 {
			m.reviews.selectedRow++
			return m, nil
		}
		return m, m.loadMoreReviews()

	case "k", "up":
		if m.reviews.selectedRow > 0 {
			m.reviews.selectedRow--
		}
		return m, nil

	case "g", "home":
		m.reviews.selectedRow = 0
		return m, nil

	case "G", "end":
		m.reviews.selectedRow = len(m.reviews.reviews) - 1
		m.clampReviewsSelection()
		return m, nil
	}

	return m, nil
}
