// Package alerts keeps topic/author subscriptions and the reading list in a
// single JSON file on disk. The file is the source of truth across restarts;
// writes go through a temp file and rename so a crash never corrupts it.
package alerts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Entry is one saved paper on the reading list.
type Entry struct {
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
	Notes   string `json:"notes,omitempty"`
	SavedAt string `json:"saved_at"`
}

// State is the persisted shape of the alerts file.
type State struct {
	Topics      []string `json:"topics"`
	Authors     []string `json:"authors"`
	ReadingList []Entry  `json:"reading_list"`
}

// Store is a file-backed alerts store, safe for concurrent use.
type Store struct {
	path  string
	mu    sync.Mutex
	state State
}

// NewStore loads existing state from path, starting empty when the file does
// not exist yet. A malformed file is an error rather than silent data loss.
func NewStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("alerts path must be provided")
	}
	s := &Store{path: path, state: State{
		Topics:      []string{},
		Authors:     []string{},
		ReadingList: []Entry{},
	}}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read alerts file: %w", err)
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		return nil, fmt.Errorf("parse alerts file: %w", err)
	}
	s.normalize()
	return s, nil
}

func (s *Store) normalize() {
	if s.state.Topics == nil {
		s.state.Topics = []string{}
	}
	if s.state.Authors == nil {
		s.state.Authors = []string{}
	}
	if s.state.ReadingList == nil {
		s.state.ReadingList = []Entry{}
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Topics:      append([]string{}, s.state.Topics...),
		Authors:     append([]string{}, s.state.Authors...),
		ReadingList: append([]Entry{}, s.state.ReadingList...),
	}
}

// AddTopic subscribes to a topic. Duplicates are ignored.
func (s *Store) AddTopic(topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return errors.New("topic must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.state.Topics {
		if strings.EqualFold(t, topic) {
			return nil
		}
	}
	s.state.Topics = append(s.state.Topics, topic)
	return s.persist()
}

// AddAuthor follows an author. Duplicates are ignored.
func (s *Store) AddAuthor(author string) error {
	author = strings.TrimSpace(author)
	if author == "" {
		return errors.New("author must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.state.Authors {
		if strings.EqualFold(a, author) {
			return nil
		}
	}
	s.state.Authors = append(s.state.Authors, author)
	return s.persist()
}

// SaveEntry appends a paper to the reading list. An entry with the same
// title and URL as an existing one is ignored.
func (s *Store) SaveEntry(entry Entry) error {
	if strings.TrimSpace(entry.Title) == "" {
		return errors.New("entry title must not be empty")
	}
	if entry.SavedAt == "" {
		entry.SavedAt = time.Now().UTC().Format(time.RFC3339)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.state.ReadingList {
		if e.Title == entry.Title && e.URL == entry.URL {
			return nil
		}
	}
	s.state.ReadingList = append(s.state.ReadingList, entry)
	return s.persist()
}

// Topics returns the subscribed topics.
func (s *Store) Topics() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.state.Topics...)
}

// persist writes the state atomically. Callers must hold the lock.
func (s *Store) persist() error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "alerts-*.json")
	if err != nil {
		return fmt.Errorf("create temp alerts file: %w", err)
	}

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.state); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encode alerts: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp alerts file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("persist alerts: %w", err)
	}
	return nil
}
