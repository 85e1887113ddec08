// internal/subscription/store.go
package subscription

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Subscription is one watched GitHub repository in "owner/name" form.
type Subscription struct {
	Repo    string `json:"repo"`
	Enabled bool   `json:"enabled"`
}

// Store is a JSON-file-backed store for repository subscriptions.
type Store struct {
	path string
	mu   sync.RWMutex
}

// NewStore creates a new file-backed Store at the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file path used by this store.
func (s *Store) Path() string {
	return s.path
}

// List returns all subscriptions. Returns an empty slice if the file doesn't exist.
func (s *Store) List() ([]*Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subs, err := s.load()
	if err != nil {
		return nil, err
	}
	if subs == nil {
		return []*Subscription{}, nil
	}
	return subs, nil
}

// Enabled returns the repos of all enabled subscriptions.
func (s *Store) Enabled() ([]string, error) {
	subs, err := s.List()
	if err != nil {
		return nil, err
	}
	var repos []string
	for _, sub := range subs {
		if sub.Enabled {
			repos = append(repos, sub.Repo)
		}
	}
	return repos, nil
}

// Add appends a subscription. Returns an error if the repo is not in
// "owner/name" form or is already subscribed.
func (s *Store) Add(repo string) error {
	if err := validateRepo(repo); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	subs, err := s.load()
	if err != nil {
		return err
	}

	for _, existing := range subs {
		if existing.Repo == repo {
			return fmt.Errorf("already subscribed: %s", repo)
		}
	}

	subs = append(subs, &Subscription{Repo: repo, Enabled: true})
	return s.save(subs)
}

// Remove deletes a subscription by repo. Returns an error if not found.
func (s *Store) Remove(repo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs, err := s.load()
	if err != nil {
		return err
	}

	for i, sub := range subs {
		if sub.Repo == repo {
			subs = append(subs[:i], subs[i+1:]...)
			return s.save(subs)
		}
	}
	return fmt.Errorf("not subscribed: %s", repo)
}

// SetEnabled toggles the enabled flag for a subscription. Returns an error if not found.
func (s *Store) SetEnabled(repo string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs, err := s.load()
	if err != nil {
		return err
	}

	for _, sub := range subs {
		if sub.Repo == repo {
			sub.Enabled = enabled
			return s.save(subs)
		}
	}
	return fmt.Errorf("not subscribed: %s", repo)
}

func validateRepo(repo string) error {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("invalid repository %q: expected owner/name", repo)
	}
	return nil
}

// load reads the JSON file and returns the subscription list. Returns nil if
// the file doesn't exist.
func (s *Store) load() ([]*Subscription, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read subscriptions file: %w", err)
	}

	var subs []*Subscription
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, fmt.Errorf("unmarshal subscriptions: %w", err)
	}
	return subs, nil
}

// save writes the subscription list to disk using atomic write (temp file + rename).
func (s *Store) save(subs []*Subscription) error {
	data, err := json.MarshalIndent(subs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal subscriptions: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create subscriptions dir: %w", err)
	}

	// Atomic write: write to temp file then rename
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp subscriptions file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp subscriptions file: %w", err)
	}
	return nil
}
