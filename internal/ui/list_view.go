package ui

import (
	"fmt"
	"strings"

	"github.com/claro-app/claro/internal/catalog"
)

// renderList renders the product list screen.
func (m Model) renderList() string {
	styles := m.theme.Styles()
	var b strings.Builder

	if m.list.searching || m.list.searchInput.Value() != "" {
		b.WriteString(" ")
		b.WriteString(m.list.searchInput.View())
		b.WriteString("\n")
	}

	if len(m.list.items) == 0 {
		switch {
		case m.list.loading:
			b.WriteString(styles.MutedText.Render(" Loading products..."))
		case m.list.showFavorites:
			b.WriteString(styles.MutedText.Render(" No favorites yet. Press Space on a product to add one."))
		default:
			b.WriteString(styles.MutedText.Render(" No products match."))
		}
		return b.String()
	}

	rows := m.visibleListWindow()
	for _, idx := range rows {
		b.WriteString(m.renderListRow(idx))
		b.WriteString("\n")
	}

	if m.list.hasMore && !m.list.showFavorites {
		label := " m: load more"
		if m.list.loadingMore {
			label = " loading more..."
		}
		b.WriteString(styles.FaintText.Render(label))
	}

	return b.String()
}

// visibleListWindow returns the item indexes that fit in the content
// area, keeping the selection in view.
func (m Model) visibleListWindow() []int {
	capacity := m.contentHeight()
	if m.list.searching || m.list.searchInput.Value() != "" {
		capacity--
	}
	if m.list.hasMore {
		capacity--
	}
	if capacity < 1 {
		capacity = 1
	}

	start := 0
	if m.list.selectedRow >= capacity {
		start = m.list.selectedRow - capacity + 1
	}
	end := start + capacity
	if end > len(m.list.items) {
		end = len(m.list.items)
	}

	rows := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, i)
	}
	return rows
}

func (m Model) renderListRow(idx int) string {
	styles := m.theme.Styles()
	item := m.list.items[idx]

	marker := "  "
	if m.favSnapshot.Has(item.ID) {
		marker = styles.WarningText.Render("★") + " "
	}

	name := truncate(item.Name, 40)
	badge := ""
	if item.Category != "" {
		badge = " " + styles.CategoryStyle(catalog.NormalizeCategory(item.Category)).Render(item.Category)
	}

	price := ""
	if item.Price != "" {
		price = styles.SuccessText.Render(fmt.Sprintf("  $%s", item.Price))
	}

	rating := styles.MutedText.Render(fmt.Sprintf("  %s (%d)",
		renderStars(item.AverageRating), item.ReviewCount))

	line := marker + name + badge + price + rating
	if idx == m.list.selectedRow {
		return styles.Selected.Width(m.width).Render("> " + line)
	}
	return styles.Text.Render("  " + line)
}
