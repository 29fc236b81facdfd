// Package favorites persists the set of favorited product ids and
// broadcasts membership changes to subscribers.
//
// The store is the only state shared between screens. Writes are
// serialized by the store's own mutex; consumers never cache membership
// beyond the latest snapshot pushed to them. Snapshots are immutable
// copies, so a subscriber can hold one across renders without racing
// a concurrent toggle.
package favorites

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultStorePath = "~/.config/claro/favorites.toml"

// Snapshot is an immutable view of the favorite set.
type Snapshot struct {
	ids map[int64]struct{}
}

// Has reports membership of a product id.
func (s Snapshot) Has(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of favorited products.
func (s Snapshot) Len() int { return len(s.ids) }

// IDs returns the favorited ids in ascending order.
func (s Snapshot) IDs() []int64 {
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Store owns the persisted favorite set.
type Store struct {
	mu      sync.Mutex
	path    string
	ids     map[int64]struct{}
	subs    map[int]chan Snapshot
	nextSub int
}

// DefaultPath returns the default favorites file path.
func DefaultPath() string { return defaultStorePath }

// Open loads the store from path (default path when blank). A missing
// or unreadable file yields an empty set rather than an error; only a
// path that cannot be resolved fails.
func Open(path string) (*Store, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve favorites path: %w", err)
	}

	s := &Store{
		path: resolved,
		ids:  make(map[int64]struct{}),
		subs: make(map[int]chan Snapshot),
	}

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, nil // Graceful degradation
	}

	var raw struct {
		IDs []int64 `toml:"ids"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return s, nil // Graceful degradation
	}
	for _, id := range raw.IDs {
		s.ids[id] = struct{}{}
	}
	return s, nil
}

// Snapshot returns a copy of the current favorite set.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Toggle flips membership of id, persists the new set, broadcasts it to
// subscribers, and returns it. The returned snapshot is the same one
// subscribers receive, so callers and observers agree on the outcome.
func (s *Store) Toggle(id int64) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}

	snap := s.snapshotLocked()
	if err := s.persistLocked(); err != nil {
		return snap, err
	}
	s.broadcastLocked(snap)
	return snap, nil
}

// Subscribe registers a listener for future snapshots. The returned
// cancel func must be called on teardown. The channel holds only the
// latest snapshot: a slow consumer sees the newest state, not a queue.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, 1)
	s.subs[key] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, key)
	}
	return ch, cancel
}

func (s *Store) snapshotLocked() Snapshot {
	dup := make(map[int64]struct{}, len(s.ids))
	for id := range s.ids {
		dup[id] = struct{}{}
	}
	return Snapshot{ids: dup}
}

func (s *Store) broadcastLocked(snap Snapshot) {
	for _, ch := range s.subs {
		// Replace any undelivered snapshot with the newest one.
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

func (s *Store) persistLocked() error {
	ids := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	bytes, err := toml.Marshal(struct {
		IDs []int64 `toml:"ids"`
	}{IDs: ids})
	if err != nil {
		return fmt.Errorf("marshal favorites: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create favorites dir: %w", err)
	}
	if err := os.WriteFile(s.path, bytes, 0o644); err != nil {
		return fmt.Errorf("write favorites: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = defaultStorePath
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
