package ui

import (
	"strings"
)

// renderReviews renders the standalone all-reviews screen, newest first.
func (m Model) renderReviews() string {
	styles := m.theme.Styles()

	if m.reviews.loading {
		return styles.MutedText.Render(" Loading reviews...")
	}
	if len(m.reviews.reviews) == 0 {
		return styles.MutedText.Render(" No reviews yet.")
	}

	var b strings.Builder
	start, end := m.visibleReviewsWindow()
	for i := start; i < end; i++ {
		review := m.reviews.reviews[i]
		b.WriteString(m.renderReviewBlock(review, review.Comment, i == m.reviews.selectedRow))
	}

	if m.reviews.hasMore {
		label := " m: load more"
		if m.reviews.loadingMore {
			label = " loading more..."
		}
		b.WriteString(styles.FaintText.Render(label))
	}

	return b.String()
}

// visibleReviewsWindow returns the review index range that fits the
// content area at three rendered lines per review.
func (m Model) visibleReviewsWindow() (int, int) {
	capacity := m.contentHeight() / 3
	if capacity < 1 {
		capacity = 1
	}

	start := 0
	if m.reviews.selectedRow >= capacity {
		start = m.reviews.selectedRow - capacity + 1
	}
	end := start + capacity
	if end > len(m.reviews.reviews) {
		end = len(m.reviews.reviews)
	}
	return start, end
}
