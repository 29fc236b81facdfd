// Package app provides the orchestration layer for the Claro application.
//
// # Overview
//
// This package wires together configuration, the catalog client, local
// stores, and the UI to create the complete Claro TUI experience. It is
// the composition root where all dependencies are initialized and
// connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load the Claro configuration from ~/.config/claro/config.toml
//     (with CLARO_API_URL and CLARO_LANG environment overrides)
//  2. Load UI preferences (theme, language) from prefs.toml
//  3. Initialize the HTTP client for the catalog API
//  4. Open the persistent favorites store
//  5. Resolve the stable per-installation device id (created on first run)
//  6. Start the TUI and block until the user exits or the context cancels
//
// # Error Handling
//
// Startup errors (unreadable config path, client construction, favorites
// path resolution, device id persistence) are fatal and returned from
// Run. Once the UI is running, network failures are recoverable: screens
// keep their last data and surface the error inline.
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{}); err != nil {
//		log.Fatalf("claro failed: %v", err)
//	}
//
// # Dependencies
//
//   - config: Loads and parses the Claro configuration file
//   - prefs: UI preferences persisted across sessions
//   - catalog: HTTP client for the product catalog API
//   - favorites: Persistent favorite set shared by all screens
//   - device: Stable anonymous device identifier
//   - ui: Terminal user interface implementation
//
// # Design Rationale
//
// This package intentionally keeps orchestration logic minimal. Domain
// behavior lives in catalog and ui; app simply connects the pieces with
// sensible defaults for a single-user client.
package app
