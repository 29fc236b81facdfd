package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formState holds the write-review form. The form keeps its input on
// submission failure so the user can retry without retyping; it resets
// only after a successful submit.
type formState struct {
	open     bool
	focusIdx int // 0 = rating, 1 = name, 2 = comment

	rating       int
	nameInput    textinput.Model
	commentInput textinput.Model

	errMsg string
}

func newFormState() formState {
	name := textinput.New()
	name.Placeholder = "Your name (optional)"
	name.CharLimit = 60
	name.Width = 40

	comment := textinput.New()
	comment.Placeholder = "What did you think?"
	comment.CharLimit = 500
	comment.Width = 60

	return formState{
		rating:       5,
		nameInput:    name,
		commentInput: comment,
	}
}

// openForm opens the review form over the detail screen.
func (m *Model) openForm() {
	m.form.open = true
	m.form.errMsg = ""
	m.form.focusIdx = 0
	m.form.nameInput.Blur()
	m.form.commentInput.Blur()
}

func (m *Model) closeForm() {
	m.form.open = false
	m.form.nameInput.Blur()
	m.form.commentInput.Blur()
}

func (m *Model) formFocusChanged() tea.Cmd {
	m.form.nameInput.Blur()
	m.form.commentInput.Blur()
	switch m.form.focusIdx {
	case 1:
		return m.form.nameInput.Focus()
	case 2:
		return m.form.commentInput.Focus()
	}
	return nil
}

// handleFormKey processes keyboard input while the review form is open.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		return m, nil

	case "tab", "down":
		m.form.focusIdx = (m.form.focusIdx + 1) % 3
		return m, m.formFocusChanged()

	case "shift+tab", "up":
		m.form.focusIdx = (m.form.focusIdx + 2) % 3
		return m, m.formFocusChanged()

	case "enter":
		m.closeForm()
		return m, m.submitReview(
			m.form.rating,
			m.form.commentInput.Value(),
			m.form.nameInput.Value(),
		)
	}

	if m.form.focusIdx == 0 {
		switch msg.String() {
		case "left", "h":
			if m.form.rating > 1 {
				m.form.rating--
			}
			return m, nil
		case "right", "l":
			if m.form.rating < 5 {
				m.form.rating++
			}
			return m, nil
		case "1", "2", "3", "4", "5":
			m.form.rating = int(msg.String()[0] - '0')
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.form.focusIdx {
	case 1:
		m.form.nameInput, cmd = m.form.nameInput.Update(msg)
	case 2:
		m.form.commentInput, cmd = m.form.commentInput.Update(msg)
	}
	return m, cmd
}
