package device

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetOrCreate_StableAcrossCallsAndRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.toml")

	p, err := NewProvider(path)
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}

	first, err := p.GetOrCreate()
	if err != nil {
		t.Fatalf("GetOrCreate returned error: %v", err)
	}
	if first == "" {
		t.Fatalf("GetOrCreate returned empty id")
	}

	second, err := p.GetOrCreate()
	if err != nil {
		t.Fatalf("GetOrCreate returned error: %v", err)
	}
	if second != first {
		t.Fatalf("second call id = %q, want %q", second, first)
	}

	// A fresh Provider over the same file simulates a restart.
	reopened, err := NewProvider(path)
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}
	third, err := reopened.GetOrCreate()
	if err != nil {
		t.Fatalf("GetOrCreate returned error: %v", err)
	}
	if third != first {
		t.Fatalf("restart id = %q, want %q", third, first)
	}
}

func TestGetOrCreate_RegeneratesOnCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device.toml")
	if err := os.WriteFile(path, []byte("not toml {{{"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := NewProvider(path)
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}
	id, err := p.GetOrCreate()
	if err != nil {
		t.Fatalf("GetOrCreate returned error: %v", err)
	}
	if id == "" {
		t.Fatalf("GetOrCreate returned empty id after corrupt file")
	}
}
