package app

import (
	"context"
	"fmt"

	"github.com/claro-app/claro/internal/catalog"
	"github.com/claro-app/claro/internal/config"
	"github.com/claro-app/claro/internal/device"
	"github.com/claro-app/claro/internal/favorites"
	"github.com/claro-app/claro/internal/prefs"
	"github.com/claro-app/claro/internal/ui"
)

// Options configure the Claro application.
type Options struct {
	ConfigPath    string
	PrefsPath     string // empty uses default ~/.config/claro/prefs.toml
	FavoritesPath string // empty uses default ~/.config/claro/favorites.toml
	APIURL        string // overrides the configured API URL when set
}

// Run boots the Claro TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	client, err := catalog.NewClient(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}

	favStore, err := favorites.Open(opts.FavoritesPath)
	if err != nil {
		return fmt.Errorf("open favorites: %w", err)
	}

	devices, err := device.NewProvider("")
	if err != nil {
		return fmt.Errorf("init device id: %w", err)
	}
	deviceID, err := devices.GetOrCreate()
	if err != nil {
		return fmt.Errorf("resolve device id: %w", err)
	}

	// Prefs win for language; the config file is the fallback.
	language := userPrefs.Language
	if language == "" {
		language = cfg.Language
	}

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Favorites: favStore,
		DeviceID:  deviceID,
		Config:    &cfg,
		ThemeName: userPrefs.Theme,
		Language:  language,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
