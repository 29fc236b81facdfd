package ui

import (
	"fmt"
	"strings"

	"github.com/claro-app/claro/internal/catalog"
)

// renderDetail renders the product detail screen.
func (m Model) renderDetail() string {
	styles := m.theme.Styles()

	if m.detail.loading {
		return styles.MutedText.Render(" Loading product...")
	}
	if m.detail.detail == nil {
		if m.detail.errMsg != "" {
			return styles.DangerText.Render(" " + truncate(m.detail.errMsg, m.width-2))
		}
		return styles.MutedText.Render(" No product loaded.")
	}

	return m.detail.viewport.View()
}

// updateDetailViewport rebuilds the detail viewport content.
func (m *Model) updateDetailViewport() {
	if m.detail.detail == nil {
		m.detail.viewport.SetContent("")
		return
	}

	styles := m.theme.Styles()
	d := m.detail.detail
	var b strings.Builder

	// Product section
	b.WriteString(styles.Text.Bold(true).Render(d.Name))
	b.WriteString("\n")
	if d.Category != "" {
		b.WriteString(styles.CategoryStyle(catalog.NormalizeCategory(d.Category)).Render(d.Category))
		b.WriteString("  ")
	}
	if d.Price != "" {
		b.WriteString(styles.SuccessText.Render("$" + d.Price))
	}
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("%s %.1f (%d reviews)",
		renderStars(d.AverageRating), d.AverageRating, d.ReviewCount)))
	b.WriteString("\n\n")
	desc := d.Description
	if m.detail.showTranslations && m.detail.translatedDesc != "" {
		desc = m.detail.translatedDesc
	}
	if desc != "" {
		b.WriteString(styles.Text.Render(desc))
		b.WriteString("\n\n")
	}
	if len(d.ImageURLs) > 0 {
		b.WriteString(styles.FaintText.Render("Images:"))
		b.WriteString("\n")
		for _, imageURL := range d.ImageURLs {
			b.WriteString(styles.FaintText.Render("  " + truncate(imageURL, m.width-4)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Review summary section
	if s := m.detail.summary; s != nil && (s.Takeaway != "" || len(s.Pros) > 0 || len(s.Cons) > 0) {
		b.WriteString(styles.AccentText.Render("Review summary"))
		if s.ReviewCountUsed > 0 {
			b.WriteString(styles.FaintText.Render(fmt.Sprintf("  (from %d reviews)", s.ReviewCountUsed)))
		}
		b.WriteString("\n")
		if s.Takeaway != "" {
			b.WriteString(styles.Text.Render(s.Takeaway))
			b.WriteString("\n")
		}
		for _, pro := range s.Pros {
			b.WriteString(styles.SuccessText.Render("+ "))
			b.WriteString(styles.Text.Render(pro))
			b.WriteString("\n")
		}
		for _, con := range s.Cons {
			b.WriteString(styles.DangerText.Render("- "))
			b.WriteString(styles.Text.Render(con))
			b.WriteString("\n")
		}
		if len(s.TopTopics) > 0 {
			b.WriteString(styles.MutedText.Render("Topics: " + strings.Join(s.TopTopics, ", ")))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Reviews section
	title := fmt.Sprintf("Most helpful reviews (%d loaded)", len(m.detail.reviews))
	if m.detail.showTranslations {
		title += "  [translated: " + m.language + "]"
	}
	b.WriteString(styles.AccentText.Render(title))
	b.WriteString("\n")

	if len(m.detail.reviews) == 0 {
		b.WriteString(styles.MutedText.Render("No reviews yet. Press w to write one."))
		b.WriteString("\n")
	}

	for i, review := range m.detail.reviews {
		comment := review.Comment
		if m.detail.showTranslations {
			if translated, ok := m.detail.translatedComments[review.ID]; ok {
				comment = translated
			}
		}
		b.WriteString(m.renderReviewBlock(review, comment, i == m.detail.selectedReview))
	}

	if m.detail.hasMoreReviews {
		label := "m: load more reviews"
		if m.detail.loadingMore {
			label = "loading more..."
		}
		b.WriteString(styles.FaintText.Render(label))
		b.WriteString("\n")
	}

	if m.detail.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.InfoText.Render(m.detail.statusMsg))
	}

	m.detail.viewport.SetContent(b.String())
}

// renderReviewBlock renders one review. Pending optimistic entries have
// no server id yet and are labeled as sending.
func (m Model) renderReviewBlock(review catalog.Review, comment string, selected bool) string {
	styles := m.theme.Styles()
	var b strings.Builder

	marker := "  "
	if selected {
		marker = styles.AccentText.Render("> ")
	}

	name := review.ReviewerName
	if name == "" {
		name = "Anonymous"
	}

	head := marker + styles.Text.Bold(true).Render(name) + "  " +
		styles.WarningText.Render(renderStars(float64(review.Rating)))
	if review.ID <= 0 {
		head += "  " + styles.FaintText.Render("(sending...)")
	} else {
		head += "  " + styles.MutedText.Render(fmt.Sprintf("%d found this helpful", review.HelpfulCount))
		if ts := review.ParsedCreatedAt(); !ts.IsZero() {
			head += "  " + styles.FaintText.Render(ts.Format("2006-01-02"))
		}
	}
	b.WriteString(head)
	b.WriteString("\n")

	if comment != "" {
		b.WriteString("  ")
		b.WriteString(styles.Text.Render(comment))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}
