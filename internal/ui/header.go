package ui

import (
	"fmt"
	"strings"
)

// renderHeader renders the top status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	var parts []string
	parts = append(parts, bg.Render("claro", styles.Logo))

	switch m.screen {
	case screenDetail:
		title := "Product"
		if m.detail.detail != nil {
			title = m.detail.detail.Name
		}
		parts = append(parts, bg.Render(truncate(title, 48), styles.Text))
		if m.detail.productID != 0 && m.favSnapshot.Has(m.detail.productID) {
			parts = append(parts, bg.Render("★", styles.WarningText))
		}
		if m.detail.detail != nil {
			parts = append(parts,
				bg.Render(fmt.Sprintf("%s (%d reviews)",
					renderStars(m.detail.detail.AverageRating),
					m.detail.detail.ReviewCount), styles.MutedText))
		}

	case screenReviews:
		title := "Reviews"
		if m.reviews.productName != "" {
			title = "Reviews · " + truncate(m.reviews.productName, 40)
		}
		parts = append(parts, bg.Render(title, styles.Text))
		parts = append(parts,
			bg.Render(fmt.Sprintf("%d loaded", len(m.reviews.reviews)), styles.MutedText))

	default:
		label := "Products"
		if m.list.showFavorites {
			label = "Favorites"
		}
		parts = append(parts, bg.Render(label, styles.Text))
		parts = append(parts,
			bg.Render(fmt.Sprintf("%d shown", len(m.list.items)), styles.MutedText))
		if !m.list.showFavorites && m.list.hasMore {
			parts = append(parts, bg.Render("more available", styles.FaintText))
		}
		if m.list.query.Category != "" {
			parts = append(parts, bg.Render(m.list.query.Category, styles.InfoText))
		}
		if m.list.query.Search != "" {
			parts = append(parts,
				bg.Render("/"+truncate(m.list.query.Search, 24), styles.AccentText))
		}
	}

	if label := m.loadingLabel(); label != "" {
		parts = append(parts, bg.Render(m.spin.View()+" "+label, styles.WarningText))
	}

	if errMsg := m.screenError(); errMsg != "" {
		parts = append(parts,
			bg.Render("!", styles.DangerText)+bg.Space()+
				bg.Render(truncate(errMsg, 60), styles.DangerText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  ") + sep)
}

// loadingLabel returns the active screen's in-flight indicator, if any.
func (m Model) loadingLabel() string {
	switch m.screen {
	case screenDetail:
		switch {
		case m.detail.loading:
			return "Loading..."
		case m.detail.loadingMore:
			return "Loading more..."
		case m.detail.submitting:
			return "Submitting..."
		case m.detail.translating:
			return "Translating..."
		}
	case screenReviews:
		switch {
		case m.reviews.loading:
			return "Loading..."
		case m.reviews.loadingMore:
			return "Loading more..."
		}
	default:
		switch {
		case m.list.loading:
			return "Loading..."
		case m.list.loadingMore:
			return "Loading more..."
		}
	}
	return ""
}

// screenError returns the active screen's error message, if any.
func (m Model) screenError() string {
	switch m.screen {
	case screenDetail:
		return m.detail.errMsg
	case screenReviews:
		return m.reviews.errMsg
	default:
		return m.list.errMsg
	}
}

// renderCommandBar renders the command hints bar below the header.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.screen {
	case screenDetail:
		translateLabel := "Translate"
		if m.detail.showTranslations {
			translateLabel = "Original"
		}
		commands = []cmd{
			{"j/k", "Navigate"},
			{"m", "More reviews"},
			{"u", "Helpful"},
			{"w", "Write review"},
			{"t", translateLabel},
			{"R", "All reviews"},
			{"Space", "Favorite"},
			{"esc", "Back"},
			{"?", "More"},
		}
	case screenReviews:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"m", "More"},
			{"u", "Helpful"},
			{"r", "Reload"},
			{"esc", "Back"},
			{"?", "More"},
		}
	default:
		favLabel := "Favorites"
		if m.list.showFavorites {
			favLabel = "All products"
		}
		commands = []cmd{
			{"/", "Search"},
			{"f", "Filters"},
			{"v", favLabel},
			{"Space", "Favorite"},
			{"Enter", "Open"},
			{"m", "More"},
			{"r", "Refresh"},
			{"?", "More keys"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	switch m.screen {
	case screenDetail:
		b.WriteString(m.renderDetail())
	case screenReviews:
		b.WriteString(m.renderReviews())
	default:
		b.WriteString(m.renderList())
	}

	return b.String()
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// renderStars formats an average rating as a five-star gauge.
func renderStars(rating float64) string {
	full := int(rating + 0.5)
	if full < 0 {
		full = 0
	}
	if full > 5 {
		full = 5
	}
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
}
