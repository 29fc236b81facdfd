// Package device provides the stable per-installation identifier used
// to attribute reviews and helpful votes without accounts.
// The id is created lazily on first use and stored in
// ~/.config/claro/device.toml.
package device

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"
)

const defaultIDPath = "~/.config/claro/device.toml"

// Provider hands out the installation's device id.
type Provider struct {
	mu     sync.Mutex
	path   string
	cached string
}

// DefaultPath returns the default device id file path.
func DefaultPath() string { return defaultIDPath }

// NewProvider builds a Provider persisting to path (default when blank).
func NewProvider(path string) (*Provider, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve device id path: %w", err)
	}
	return &Provider{path: resolved}, nil
}

// GetOrCreate returns the persisted device id, generating and storing a
// new one on first use. The id is stable across restarts.
func (p *Provider) GetOrCreate() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != "" {
		return p.cached, nil
	}

	if id := p.loadLocked(); id != "" {
		p.cached = id
		return id, nil
	}

	id := uuid.NewString()
	if err := p.persistLocked(id); err != nil {
		return "", err
	}
	p.cached = id
	return id, nil
}

func (p *Provider) loadLocked() string {
	bytes, err := os.ReadFile(p.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "" // Unreadable file regenerates; graceful degradation
		}
		return ""
	}
	var raw struct {
		DeviceID string `toml:"device_id"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return ""
	}
	return strings.TrimSpace(raw.DeviceID)
}

func (p *Provider) persistLocked(id string) error {
	bytes, err := toml.Marshal(struct {
		DeviceID string `toml:"device_id"`
	}{DeviceID: id})
	if err != nil {
		return fmt.Errorf("marshal device id: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("create device id dir: %w", err)
	}
	if err := os.WriteFile(p.path, bytes, 0o600); err != nil {
		return fmt.Errorf("write device id: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = defaultIDPath
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
