package bookmarks

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

var ErrNotFound = errors.New("bookmark not found")

// Bookmark is a remembered document.
type Bookmark struct {
	Path    string    `json:"path"`
	AddedAt time.Time `json:"added_at"`
}

type fileFormat struct {
	Version   int        `json:"version"`
	Bookmarks []Bookmark `json:"bookmarks"`
}

const formatVersion = 1

// Store persists bookmarks in a JSON file. It is safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	path  string
	items []Bookmark
	now   func() time.Time
}

// Open loads the store at path. A missing file is an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path, now: time.Now}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bookmarks: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}
	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode bookmarks %s: %w", path, err)
	}
	s.items = f.Bookmarks
	return s, nil
}

// List returns bookmarks, most recently added first.
func (s *Store) List() []Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Bookmark, len(s.items))
	copy(out, s.items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AddedAt.After(out[j].AddedAt)
	})
	return out
}

// Add records path. Adding an existing path refreshes its time.
func (s *Store) Add(path string) (Bookmark, error) {
	abs, err := normalize(path)
	if err != nil {
		return Bookmark{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b := Bookmark{Path: abs, AddedAt: s.now().UTC()}
	if idx := s.indexLocked(abs); idx >= 0 {
		s.items[idx] = b
	} else {
		s.items = append(s.items, b)
	}
	if err := s.saveLocked(); err != nil {
		return Bookmark{}, err
	}
	return b, nil
}

// Remove deletes path, returning ErrNotFound when it is not bookmarked.
func (s *Store) Remove(path string) error {
	abs, err := normalize(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(abs)
	if idx < 0 {
		return fmt.Errorf("%s: %w", abs, ErrNotFound)
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return s.saveLocked()
}

// Contains reports whether path is bookmarked.
func (s *Store) Contains(path string) bool {
	abs, err := normalize(path)
	if err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(abs) >= 0
}

// Latest returns the most recently added bookmark.
func (s *Store) Latest() (Bookmark, error) {
	list := s.List()
	if len(list) == 0 {
		return Bookmark{}, ErrNotFound
	}
	return list[0], nil
}

func (s *Store) indexLocked(abs string) int {
	for i, b := range s.items {
		if b.Path == abs {
			return i
		}
	}
	return -1
}

// saveLocked writes to a temp file in the same directory and renames it
// over the store so readers never see a partial file.
func (s *Store) saveLocked() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create bookmarks dir: %w", err)
	}
	data, err := json.MarshalIndent(fileFormat{Version: formatVersion, Bookmarks: s.items}, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".bookmarks-*.json")
	if err != nil {
		return fmt.Errorf("write bookmarks: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write bookmarks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write bookmarks: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write bookmarks: %w", err)
	}
	return nil
}

func normalize(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty bookmark path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}
