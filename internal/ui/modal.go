package ui

import (
	"fmt"
	"strings"
)

// renderForm renders the write-review modal.
func (m Model) renderForm() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Write a review"))
	b.WriteString("\n\n")

	ratingLabel := "  Rating   "
	if m.form.focusIdx == 0 {
		ratingLabel = styles.AccentText.Render("> Rating   ")
	}
	b.WriteString(ratingLabel)
	b.WriteString(styles.WarningText.Render(renderStars(float64(m.form.rating))))
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("  (%d/5)", m.form.rating)))
	b.WriteString("\n\n")

	nameLabel := "  Name     "
	if m.form.focusIdx == 1 {
		nameLabel = styles.AccentText.Render("> Name     ")
	}
	b.WriteString(nameLabel)
	b.WriteString(m.form.nameInput.View())
	b.WriteString("\n\n")

	commentLabel := "  Comment  "
	if m.form.focusIdx == 2 {
		commentLabel = styles.AccentText.Render("> Comment  ")
	}
	b.WriteString(commentLabel)
	b.WriteString(m.form.commentInput.View())
	b.WriteString("\n\n")

	if m.form.errMsg != "" {
		b.WriteString(styles.DangerText.Render(truncate(m.form.errMsg, 70)))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.FaintText.Render("tab: next field  ·  enter: submit  ·  esc: cancel"))

	return m.renderModal(b.String(), 80)
}

// renderFilters renders the list filter modal.
func (m Model) renderFilters() string {
	styles := m.theme.Styles()
	labels := [4]string{"Category ", "Min rate ", "Min price", "Max price"}
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Filters & sort"))
	b.WriteString("\n\n")

	for i, label := range labels {
		prefix := "  "
		if m.filters.focusIdx == i {
			prefix = styles.AccentText.Render("> ")
		}
		b.WriteString(prefix)
		b.WriteString(styles.MutedText.Render(label))
		b.WriteString("  ")
		b.WriteString(m.filters.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	sortPrefix := "  "
	if m.filters.focusIdx == 4 {
		sortPrefix = styles.AccentText.Render("> ")
	}
	b.WriteString(sortPrefix)
	b.WriteString(styles.MutedText.Render("Sort by  "))
	b.WriteString("  ")
	b.WriteString(styles.Text.Render(m.filters.sortBy))
	b.WriteString("\n")

	dirPrefix := "  "
	if m.filters.focusIdx == 5 {
		dirPrefix = styles.AccentText.Render("> ")
	}
	b.WriteString(dirPrefix)
	b.WriteString(styles.MutedText.Render("Order    "))
	b.WriteString("  ")
	b.WriteString(styles.Text.Render(strings.ToUpper(m.filters.sortDir)))
	b.WriteString("\n\n")

	b.WriteString(styles.FaintText.Render("tab: next  ·  h/l: change  ·  enter: apply  ·  esc: cancel"))

	return m.renderModal(b.String(), 60)
}

// renderSettings renders the settings overlay.
func (m Model) renderSettings() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Settings"))
	b.WriteString("\n\n")

	b.WriteString(styles.MutedText.Render("Language  "))
	for i, lang := range languageOptions {
		label := " " + lang + " "
		if i == m.settings.languageIdx {
			b.WriteString(styles.Selected.Render(label))
		} else {
			b.WriteString(styles.FaintText.Render(label))
		}
	}
	b.WriteString("\n\n")

	b.WriteString(styles.MutedText.Render("Theme     "))
	b.WriteString(styles.Text.Render(m.theme.Name))
	b.WriteString(styles.FaintText.Render("  (T to cycle)"))
	b.WriteString("\n\n")

	b.WriteString(styles.FaintText.Render("h/l: change language  ·  enter: save  ·  esc: close"))

	return m.renderModal(b.String(), 60)
}
