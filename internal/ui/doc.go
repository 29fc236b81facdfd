// Package ui provides the terminal user interface for claro.
//
// # Architecture Overview
//
// The UI is built on Bubble Tea's Model/Update/View loop. All state lives
// in the root Model; every network call runs inside a tea.Cmd and reports
// back as a typed message. Handlers never block: screens stay responsive
// while pages, summaries, and translations load.
//
// # Package Structure
//
// The package is organized into focused modules:
//
//   - app.go: Root model, message routing, global key handling, and Run
//   - list.go: Product list screen (pagination, debounced search, favorites view)
//   - detail.go: Product detail screen (concurrent load, reviews, submission, translation)
//   - reviews.go: Standalone all-reviews screen, ordered newest first
//   - form.go: Write-review form state and input handling
//   - filters.go: Filter and sort modal over the product list
//   - settings.go: Language and theme settings overlay
//   - theme.go: Color themes and lipgloss style construction
//   - *_view.go, header.go, help.go, modal.go: Rendering
//
// # Screens
//
// Three screens are available:
//
//   - Product list: Paginated catalog with search, filters, and sorting;
//     toggles into a locally assembled favorites view
//   - Product detail: Product info, aggregated review summary, and the
//     most helpful reviews, with review submission and translation
//   - All reviews: The product's complete review history, newest first
//
// # Staleness and Concurrency
//
// List fetches are tagged with a generation counter and detail fetches
// with the product id they were issued for; results that arrive after a
// newer refresh or a navigation are dropped rather than applied. Search
// input is debounced with a sequence-tagged tick so only the final
// keystroke in a burst triggers a fetch. Favorite toggles broadcast
// through the favorites store so every screen converges on one set.
//
// # Usage Example
//
//	opts := ui.Options{
//		Client:    client,
//		Favorites: favStore,
//		DeviceID:  deviceID,
//		Config:    cfg,
//		ThemeName: p.Theme,
//		Language:  p.Language,
//	}
//	if err := ui.Run(opts); err != nil {
//		log.Fatal(err)
//	}
//
// # Key Bindings
//
//   - /: Search products (debounced)
//   - f: Filter and sort modal
//   - v: Toggle favorites view
//   - Space: Toggle favorite
//   - Enter: Open product
//   - m: Load next page
//   - R: All reviews for the open product
//   - w: Write a review
//   - u: Mark the selected review helpful
//   - t: Toggle review translation
//   - S: Settings, T: Cycle theme
//   - ?: Help, q or Ctrl+C: Quit
//
// # Design Principles
//
//   - Optimistic where safe: Review submission renders immediately and is
//     reconciled against the server afterwards
//   - Authoritative server: Helpful counts and page ordering always come
//     from responses, never from local arithmetic
//   - Graceful failure: A failed refresh keeps stale data on screen with
//     an error indicator instead of blanking the view
package ui
