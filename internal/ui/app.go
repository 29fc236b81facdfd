// Package ui provides the Bubble Tea TUI for claro.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/claro-app/claro/internal/catalog"
	"github.com/claro-app/claro/internal/config"
	"github.com/claro-app/claro/internal/favorites"
	"github.com/claro-app/claro/internal/prefs"
)

// Screen represents the current active screen.
type Screen int

const (
	screenList Screen = iota
	screenDetail
	screenReviews
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    catalog.API
	Favorites *favorites.Store
	DeviceID  string
	Config    *config.Config
	ThemeName string
	Language  string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    catalog.API
	favStore  *favorites.Store
	deviceID  string
	prefsPath string
	language  string
	pageSize  int

	// UI state
	keys     keyMap
	theme    Theme
	spin     spinner.Model
	screen   Screen
	width    int
	height   int
	ready    bool
	showHelp bool

	// Screen state
	list     listState
	detail   detailState
	reviews  reviewsState
	form     formState
	filters  filtersState
	settings settingsState

	// Favorites state
	favSnapshot favorites.Snapshot
	favCh       <-chan favorites.Snapshot
	favCancel   func()
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	language := opts.Language
	if language == "" {
		language = "en"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	pageSize := 20
	if opts.Config != nil && opts.Config.PageSize > 0 {
		pageSize = opts.Config.PageSize
	}

	m := Model{
		ctx:       ctx,
		client:    opts.Client,
		favStore:  opts.Favorites,
		deviceID:  opts.DeviceID,
		prefsPath: prefsPath,
		language:  language,
		pageSize:  pageSize,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		spin:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		screen:    screenList,
		list:      newListState(),
		detail:    newDetailState(),
		form:      newFormState(),
		filters:   newFiltersState(),
	}
	m.list.loading = true

	if m.favStore != nil {
		m.favSnapshot = m.favStore.Snapshot()
		m.favCh, m.favCancel = m.favStore.Subscribe()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		m.spin.Tick,
		m.fetchListCmd(m.list.generation, 0, false),
	}
	if m.favCh != nil {
		cmds = append(cmds, waitFavoritesCmd(m.favCh))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.detail.viewport.Width = msg.Width
		m.detail.viewport.Height = m.contentHeight()
		m.updateDetailViewport()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case listPageMsg:
		return m, m.handleListPage(msg)

	case favoritesListMsg:
		return m, m.handleFavoritesList(msg)

	case searchTickMsg:
		return m, m.handleSearchTick(msg)

	case favToggledMsg:
		return m, m.handleFavToggled(msg)

	case favoritesChangedMsg:
		cmd := m.applyFavoritesSnapshot(favorites.Snapshot(msg))
		if m.favCh != nil {
			return m, tea.Batch(cmd, waitFavoritesCmd(m.favCh))
		}
		return m, cmd

	case detailLoadedMsg:
		return m, m.handleDetailLoaded(msg)

	case detailReviewsPageMsg:
		return m, m.handleDetailReviewsPage(msg)

	case detailHelpfulMsg:
		return m, m.handleDetailHelpful(msg)

	case reviewSubmittedMsg:
		return m, m.handleReviewSubmitted(msg)

	case reviewsReloadTickMsg:
		return m, m.handleReviewsReloadTick(msg)

	case translationMsg:
		return m, m.handleTranslation(msg)

	case reviewsPageMsg:
		return m, m.handleReviewsPage(msg)

	case reviewsHelpfulMsg:
		return m, m.handleReviewsHelpful(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}
	if m.settings.open {
		return m.renderSettings()
	}
	if m.filters.open {
		return m.renderFilters()
	}
	if m.form.open {
		return m.renderForm()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes the help overlay.
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.settings.open {
		return m.handleSettingsKey(msg)
	}
	if m.filters.open {
		return m.handleFiltersKey(msg)
	}
	if m.form.open {
		return m.handleFormKey(msg)
	}

	// A focused search input owns printable keys, so global bindings
	// are reduced to the one chord that cannot be typed.
	if m.screen == screenList && m.list.searching {
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		return m.handleListKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m.quit()

	case "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case "S":
		m.openSettings()
		return m, nil
	}

	switch m.screen {
	case screenList:
		return m.handleListKey(msg)
	case screenDetail:
		return m.handleDetailKey(msg)
	case screenReviews:
		return m.handleReviewsKey(msg)
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.favCancel != nil {
		m.favCancel()
	}
	return m, tea.Quit
}

// contentHeight returns the rows available below the header and above
// the footer.
func (m Model) contentHeight() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
