package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/claro-app/claro/internal/catalog"
)

// filtersState holds the filter modal over the product list.
type filtersState struct {
	open     bool
	inputs   [4]textinput.Model // category, min rating, min price, max price
	focusIdx int                // 0-3 inputs, 4 sort field, 5 sort direction
	sortBy   string
	sortDir  string
}

var sortFields = []string{
	catalog.SortByReviewCount,
	catalog.SortByRating,
	catalog.SortByPrice,
	catalog.SortByName,
}

func newFiltersState() filtersState {
	placeholders := [4]string{"Category", "Min rating (1-5)", "Min price", "Max price"}
	f := filtersState{
		sortBy:  catalog.SortByReviewCount,
		sortDir: "DESC",
	}
	for i := range f.inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.CharLimit = 40
		input.Width = 24
		f.inputs[i] = input
	}
	return f
}

// openFilters seeds the modal from the active query so applying with no
// edits is a no-op.
func (m *Model) openFilters() {
	q := m.list.query
	m.filters.inputs[0].SetValue(q.Category)
	if q.MinRating > 0 {
		m.filters.inputs[1].SetValue(strconv.Itoa(q.MinRating))
	} else {
		m.filters.inputs[1].SetValue("")
	}
	m.filters.inputs[2].SetValue(q.MinPrice)
	m.filters.inputs[3].SetValue(q.MaxPrice)
	m.filters.sortBy = q.SortBy
	m.filters.sortDir = q.SortDir
	m.filters.focusIdx = 0
	m.filters.open = true
	m.filtersFocusChanged()
}

func (m *Model) closeFilters() {
	m.filters.open = false
	for i := range m.filters.inputs {
		m.filters.inputs[i].Blur()
	}
}

// filtersQuery converts the modal's fields to a catalog query. An
// unparseable min rating applies no rating filter, matching the price
// bound behavior.
func (f filtersState) filtersQuery() catalog.Query {
	minRating := 0
	if v, err := strconv.Atoi(strings.TrimSpace(f.inputs[1].Value())); err == nil && v > 0 {
		minRating = v
	}
	return catalog.Query{
		Category:  f.inputs[0].Value(),
		MinRating: minRating,
		MinPrice:  f.inputs[2].Value(),
		MaxPrice:  f.inputs[3].Value(),
		SortBy:    f.sortBy,
		SortDir:   f.sortDir,
	}
}

func (m *Model) filtersFocusChanged() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.filters.inputs {
		if i == m.filters.focusIdx {
			cmd = m.filters.inputs[i].Focus()
		} else {
			m.filters.inputs[i].Blur()
		}
	}
	return cmd
}

func cycleSortField(current string, step int) string {
	for i, field := range sortFields {
		if field == current {
			return sortFields[(i+step+len(sortFields))%len(sortFields)]
		}
	}
	return sortFields[0]
}

// handleFiltersKey processes keyboard input while the filter modal is open.
func (m Model) handleFiltersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeFilters()
		return m, nil

	case "tab", "down":
		m.filters.focusIdx = (m.filters.focusIdx + 1) % 6
		return m, m.filtersFocusChanged()

	case "shift+tab", "up":
		m.filters.focusIdx = (m.filters.focusIdx + 5) % 6
		return m, m.filtersFocusChanged()

	case "enter":
		q := m.filters.filtersQuery()
		m.closeFilters()
		return m, m.applyListFilters(q)
	}

	switch m.filters.focusIdx {
	case 4:
		switch msg.String() {
		case "left", "h":
			m.filters.sortBy = cycleSortField(m.filters.sortBy, -1)
		case "right", "l":
			m.filters.sortBy = cycleSortField(m.filters.sortBy, 1)
		}
		return m, nil
	case 5:
		switch msg.String() {
		case "left", "right", "h", "l", " ":
			if strings.EqualFold(m.filters.sortDir, "ASC") {
				m.filters.sortDir = "DESC"
			} else {
				m.filters.sortDir = "ASC"
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filters.inputs[m.filters.focusIdx], cmd = m.filters.inputs[m.filters.focusIdx].Update(msg)
	return m, cmd
}
