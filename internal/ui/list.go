package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/claro-app/claro/internal/catalog"
	"github.com/claro-app/claro/internal/favorites"
)

const (
	searchDebounce = 500 * time.Millisecond
)

// listState holds the product list screen state.
//
// Every in-flight fetch carries the generation current at launch; results
// arriving with an older generation are dropped, so a refresh triggered
// mid-fetch can never be overwritten by the fetch it superseded.
type listState struct {
	items       []catalog.ProductSummary
	page        int
	hasMore     bool
	loading     bool
	loadingMore bool
	errMsg      string

	showFavorites bool
	generation    int

	searchInput textinput.Model
	searching   bool // input focused
	searchSeq   int

	query catalog.Query

	selectedRow int
}

func newListState() listState {
	input := textinput.New()
	input.Placeholder = "Search products..."
	input.CharLimit = 120
	input.Width = 40

	return listState{
		hasMore:     true,
		searchInput: input,
		query: catalog.Query{
			SortBy:  catalog.SortByReviewCount,
			SortDir: "DESC",
		},
	}
}

// Messages

type listPageMsg struct {
	generation    int
	requestedPage int
	appendMode    bool
	page          catalog.Page[catalog.ProductSummary]
	err           error
}

type favoritesListMsg struct {
	generation int
	items      []catalog.ProductSummary
	err        error
}

type searchTickMsg struct {
	seq int
}

type favToggledMsg struct {
	snapshot favorites.Snapshot
	err      error
}

type favoritesChangedMsg favorites.Snapshot

// Commands

// fetchListCmd fetches one page of the server-side product list.
func (m Model) fetchListCmd(generation, page int, appendMode bool) tea.Cmd {
	client := m.client
	ctx := m.ctx
	query := catalog.ProductQuery{
		Page:      page,
		Size:      m.pageSize,
		SortBy:    m.list.query.SortBy,
		SortDir:   m.list.query.SortDir,
		Category:  m.list.query.Category,
		Search:    m.list.query.Search,
		MinRating: m.list.query.MinRating,
		MinPrice:  m.list.query.MinPrice,
		MaxPrice:  m.list.query.MaxPrice,
	}
	return func() tea.Msg {
		resp, err := client.FetchProducts(ctx, query)
		return listPageMsg{
			generation:    generation,
			requestedPage: page,
			appendMode:    appendMode,
			page:          resp,
			err:           err,
		}
	}
}

// fetchFavoritesCmd builds the favorites view: a best-effort per-id fetch
// where individual failures drop that product rather than failing the
// whole view, followed by the same filter and sort the server applies.
func (m Model) fetchFavoritesCmd(generation int) tea.Cmd {
	client := m.client
	ctx := m.ctx
	store := m.favStore
	query := m.list.query
	return func() tea.Msg {
		snap := store.Snapshot()
		items := make([]catalog.ProductSummary, 0, snap.Len())
		for _, id := range snap.IDs() {
			detail, err := client.FetchProductByID(ctx, id)
			if err != nil {
				continue
			}
			items = append(items, detail.Summary())
		}
		items = catalog.Filter(items, query)
		items = catalog.SortProducts(items, query.SortBy, query.SortDir)
		return favoritesListMsg{generation: generation, items: items}
	}
}

func (m Model) toggleFavoriteCmd(id int64) tea.Cmd {
	store := m.favStore
	return func() tea.Msg {
		snap, err := store.Toggle(id)
		return favToggledMsg{snapshot: snap, err: err}
	}
}

// waitFavoritesCmd blocks on the store's broadcast channel and re-arms
// itself from the update loop after each delivery.
func waitFavoritesCmd(ch <-chan favorites.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return favoritesChangedMsg(snap)
	}
}

func searchTickCmd(seq int) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq}
	})
}

// Update handlers

// refreshList restarts the list from page zero under the current query.
// A failed refresh keeps whatever items are already on screen.
func (m *Model) refreshList() tea.Cmd {
	m.list.generation++
	m.list.loading = true
	m.list.errMsg = ""
	if m.list.showFavorites {
		return m.fetchFavoritesCmd(m.list.generation)
	}
	return m.fetchListCmd(m.list.generation, 0, false)
}

// loadMoreList fetches the next page. Favorites view is not paginated.
func (m *Model) loadMoreList() tea.Cmd {
	if m.list.showFavorites || !m.list.hasMore || m.list.loading || m.list.loadingMore {
		return nil
	}
	m.list.loadingMore = true
	return m.fetchListCmd(m.list.generation, m.list.page+1, true)
}

func (m *Model) handleListPage(msg listPageMsg) tea.Cmd {
	if msg.generation != m.list.generation {
		return nil
	}
	m.list.loading = false
	m.list.loadingMore = false

	if msg.err != nil {
		m.list.errMsg = msg.err.Error()
		return nil
	}
	m.list.errMsg = ""

	if msg.appendMode {
		// Later pages append as received; the server owns ordering and
		// any duplicate across page boundaries.
		m.list.items = append(m.list.items, msg.page.Content...)
	} else {
		m.list.items = msg.page.Content
		m.list.selectedRow = 0
	}
	m.list.page = msg.page.PageNumber(msg.requestedPage)
	m.list.hasMore = msg.page.HasMore()
	m.clampListSelection()
	return nil
}

func (m *Model) handleFavoritesList(msg favoritesListMsg) tea.Cmd {
	if msg.generation != m.list.generation {
		return nil
	}
	m.list.loading = false
	if msg.err != nil {
		m.list.errMsg = msg.err.Error()
		return nil
	}
	m.list.errMsg = ""
	m.list.items = msg.items
	m.list.page = 0
	m.list.hasMore = false
	m.clampListSelection()
	return nil
}

// handleSearchTick commits the debounced search text when no newer
// keystroke has superseded this tick.
func (m *Model) handleSearchTick(msg searchTickMsg) tea.Cmd {
	if msg.seq != m.list.searchSeq {
		return nil
	}
	m.list.query.Search = m.list.searchInput.Value()
	return m.refreshList()
}

// handleSearchInput forwards a keystroke to the search input and arms the
// debounce. Clearing the input refreshes immediately.
func (m *Model) handleSearchInput(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	before := m.list.searchInput.Value()
	m.list.searchInput, cmd = m.list.searchInput.Update(msg)
	after := m.list.searchInput.Value()
	if after == before {
		return cmd
	}

	m.list.searchSeq++
	if after == "" {
		m.list.query.Search = ""
		return tea.Batch(cmd, m.refreshList())
	}
	return tea.Batch(cmd, searchTickCmd(m.list.searchSeq))
}

// toggleFavoritesView flips between the server list and the local
// favorites view, reloading either way.
func (m *Model) toggleFavoritesView() tea.Cmd {
	m.list.showFavorites = !m.list.showFavorites
	return m.refreshList()
}

// applyListFilters installs a new filter set and reloads from page zero.
func (m *Model) applyListFilters(q catalog.Query) tea.Cmd {
	q.Search = m.list.query.Search
	m.list.query = q
	return m.refreshList()
}

func (m *Model) handleFavToggled(msg favToggledMsg) tea.Cmd {
	if msg.err != nil {
		m.list.errMsg = msg.err.Error()
	}
	return m.applyFavoritesSnapshot(msg.snapshot)
}

// applyFavoritesSnapshot reconciles screens with a new favorite set.
// In favorites view the whole view is rebuilt from the new set, so a
// product favorited on another screen appears without a manual
// refresh; filtering the on-screen rows would only ever handle
// removals.
func (m *Model) applyFavoritesSnapshot(snap favorites.Snapshot) tea.Cmd {
	m.favSnapshot = snap
	if !m.list.showFavorites {
		return nil
	}
	return m.refreshList()
}

func (m *Model) clampListSelection() {
	if m.list.selectedRow >= len(m.list.items) {
		m.list.selectedRow = len(m.list.items) - 1
	}
	if m.list.selectedRow < 0 {
		m.list.selectedRow = 0
	}
}

func (m *Model) selectedProduct() *catalog.ProductSummary {
	if len(m.list.items) == 0 || m.list.selectedRow >= len(m.list.items) {
		return nil
	}
	return &m.list.items[m.list.selectedRow]
}

// handleListKey processes keyboard input for the product list.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the search input is focused it owns every key except the
	// ones that leave it.
	if m.list.searching {
		switch msg.String() {
		case "esc":
			m.list.searching = false
			m.list.searchInput.Blur()
			return m, nil
		case "enter":
			m.list.searching = false
			m.list.searchInput.Blur()
			// Commit immediately instead of waiting out the debounce.
			m.list.searchSeq++
			m.list.query.Search = m.list.searchInput.Value()
			return m, m.refreshList()
		default:
			return m, m.handleSearchInput(msg)
		}
	}

	switch msg.String() {
	case "/":
		m.list.searching = true
		m.list.searchInput.Focus()
		return m, textinput.Blink

	case "r":
		return m, m.refreshList()

	case "m":
		return m, m.loadMoreList()

	case "v":
		return m, m.toggleFavoritesView()

	case "f":
		m.openFilters()
		return m, nil

	case "c":
		m.list.query = catalog.Query{
			Search:  m.list.query.Search,
			SortBy:  catalog.SortByReviewCount,
			SortDir: "DESC",
		}
		return m, m.refreshList()

	case " ":
		if item := m.selectedProduct(); item != nil {
			return m, m.toggleFavoriteCmd(item.ID)
		}
		return m, nil

	case "enter":
		if item := m.selectedProduct(); item != nil {
			return m, m.openDetail(item.ID)
		}
		return m, nil

	case "j", "down":
		if m.list.selectedRow < len(m.list.items)-1 {
			m.list.selectedRow++
			return m, nil
		}
		// Walking past the last row pulls the next page in.
		return m, m.loadMoreList()

	case "k", "up":
		if m.list.selectedRow > 0 {
			m.list.selectedRow--
		}
		return m, nil

	case "g", "home":
		m.list.selectedRow = 0
		return m, nil

	case "G", "end":
		m.list.selectedRow = len(m.list.items) - 1
		m.clampListSelection()
		return m, nil
	}

	return m, nil
}
