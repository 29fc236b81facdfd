package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// helpGroupTitles label the binding groups returned by keyMap.FullHelp,
// in order.
var helpGroupTitles = []string{
	"Navigation",
	"Scrolling",
	"Products",
	"Selection",
	"Reviews",
	"General",
}

// renderHelp renders the help overlay from the key map.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	groups := m.keys.FullHelp()

	var b strings.Builder

	title := styles.Text.Bold(true).Render("Keyboard Shortcuts")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)

	for i, group := range groups {
		if i < len(helpGroupTitles) {
			b.WriteString(styles.AccentText.Bold(true).Render(helpGroupTitles[i]))
			b.WriteString("\n")
		}

		for _, binding := range group {
			help := binding.Help()
			b.WriteString(keyStyle.Render(help.Key))
			b.WriteString(styles.Text.Render(help.Desc))
			b.WriteString("\n")
		}

		if i < len(groups)-1 {
			b.WriteString("\n")
		}
	}

	return m.renderModal(b.String(), 44)
}

// renderModal centers content in a bordered box over the backdrop.
func (m Model) renderModal(content string, width int) string {
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(width)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
