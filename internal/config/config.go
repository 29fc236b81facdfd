package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v10"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields Claro needs to reach the catalog API.
type Config struct {
	APIURL   string
	Language string
	PageSize int
}

const (
	defaultConfigPath = "~/.config/claro/config.toml"
	defaultAPIURL     = "http://127.0.0.1:8080"
	defaultLanguage   = "en"
	defaultPageSize   = 20
)

// envOverrides are applied on top of whatever the config file said.
type envOverrides struct {
	APIURL   string `env:"CLARO_API_URL"`
	Language string `env:"CLARO_LANG"`
}

// Load locates and parses the Claro config, falling back to defaults
// when the file is missing, then applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{APIURL: defaultAPIURL, Language: defaultLanguage, PageSize: defaultPageSize}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg)
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL   string `toml:"api_url"`
		Language string `toml:"language"`
		PageSize int    `toml:"page_size"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.Language); v != "" {
		cfg.Language = v
	}
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}

	return applyEnv(cfg)
}

func applyEnv(cfg Config) (Config, error) {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if v := strings.TrimSpace(overrides.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(overrides.Language); v != "" {
		cfg.Language = v
	}
	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
