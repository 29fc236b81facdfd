package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/claro-app/claro/internal/prefs"
)

// settingsState holds the settings overlay: language selection plus the
// theme cycler. Both persist to the prefs file on change.
type settingsState struct {
	open        bool
	languageIdx int
}

// languageOptions are the summary and translation languages offered.
var languageOptions = []string{"en", "es", "fr", "de", "it", "pt", "ja"}

func languageIndex(lang string) int {
	for i, option := range languageOptions {
		if option == lang {
			return i
		}
	}
	return 0
}

func (m *Model) openSettings() {
	m.settings.open = true
	m.settings.languageIdx = languageIndex(m.language)
}

// savePrefs persists the current theme and language, best-effort.
func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{
		Theme:    m.theme.Name,
		Language: m.language,
	})
}

// handleSettingsKey processes keyboard input while settings are open.
// Committing a language rebuilds the translation overlay for an open
// product in the new language, or clears it when switching back to the
// source language.
func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "S":
		m.settings.open = false
		return m, nil

	case "j", "down", "right", "l":
		m.settings.languageIdx = (m.settings.languageIdx + 1) % len(languageOptions)
		return m, nil

	case "k", "up", "left", "h":
		n := len(languageOptions)
		m.settings.languageIdx = (m.settings.languageIdx + n - 1) % n
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case "enter":
		m.language = languageOptions[m.settings.languageIdx]
		m.savePrefs()
		m.settings.open = false
		// The overlay held translations for the old language.
		m.clearTranslations()
		m.updateDetailViewport()
		return m, m.translateIfNeeded()
	}

	return m, nil
}
