package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Settings   key.Binding
	Escape     key.Binding

	// List actions
	Search       key.Binding
	Filters      key.Binding
	Favorites    key.Binding
	Refresh      key.Binding
	Open         key.Binding
	LoadMore     key.Binding
	ToggleFav    key.Binding
	ClearFilters key.Binding

	// Detail / reviews actions
	Reviews     key.Binding
	WriteReview key.Binding
	Helpful     key.Binding
	Translate   key.Binding

	// Navigation
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding

	// Search/input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Settings: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "Settings"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),

		// List actions
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search products"),
		),
		Filters: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Filters"),
		),
		Favorites: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Favorites view"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open product"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Load more"),
		),
		ToggleFav: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Toggle favorite"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clear filters"),
		),

		// Detail / reviews actions
		Reviews: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "All reviews"),
		),
		WriteReview: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Write review"),
		),
		Helpful: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Mark helpful"),
		),
		Translate: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Translate reviews"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "Page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Half page down"),
		),

		// Search/input
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.HalfPageDown, k.HalfPageUp},
		// List
		{k.Search, k.Filters, k.Favorites, k.Refresh, k.LoadMore},
		{k.Open, k.ToggleFav, k.ClearFilters},
		// Detail and reviews
		{k.Reviews, k.WriteReview, k.Helpful, k.Translate},
		// General
		{k.Settings, k.CycleTheme, k.Help, k.Quit},
	}
}
