// Package store persists diary entries as a single JSON object keyed by date.
//
// The file is loaded wholesale when the store opens and rewritten wholesale on
// every mutation, via a temp file and rename so a crash never leaves a
// truncated file behind. Keys written by older versions in the unpadded
// "Y-M-D" form are migrated to canonical keys on load.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/treykane/cli-diary/internal/diary"
	"github.com/treykane/cli-diary/internal/logging"
)

// ErrCorrupt is wrapped when the entries file exists but cannot be parsed.
var ErrCorrupt = errors.New("entries file is corrupt")

const (
	dirPermission  = 0o700
	filePermission = 0o600
)

var storeLog = logging.New("store")

// Store is the on-disk entry store. It is safe for concurrent use; writes are
// serialized.
type Store struct {
	path string

	mu      sync.Mutex
	entries diary.Entries
}

// Open loads the entries file at path. A missing file yields an empty store.
// The returned store is usable even when err is non-nil; it is then empty and
// the file on disk is left alone until the next mutation.
func Open(path string) (*Store, error) {
	s := &Store{path: path, entries: diary.Entries{}}
	entries, err := readEntries(path)
	if err != nil {
		return s, err
	}
	s.entries = entries
	return s, nil
}

// Reload re-reads the file, replacing the entries in memory. On error the
// current entries are kept.
func (s *Store) Reload() error {
	entries, err := readEntries(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	return nil
}

func readEntries(path string) (diary.Entries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return diary.Entries{}, nil
		}
		return nil, fmt.Errorf("read entries %q: %w", path, err)
	}
	if len(data) == 0 {
		return diary.Entries{}, nil
	}

	raw := map[string]diary.Entry{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse %q: %v", ErrCorrupt, path, err)
	}

	entries, migrated := migrateKeys(raw)
	if migrated > 0 {
		storeLog.Info("migrated legacy date keys", "path", path, "count", migrated)
	}
	return entries, nil
}

// migrateKeys converts every key to canonical form. When a legacy and a
// canonical key name the same date, the canonical one wins.
func migrateKeys(raw map[string]diary.Entry) (diary.Entries, int) {
	out := make(diary.Entries, len(raw))
	migrated := 0

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		key, err := diary.ParseDateKey(k)
		if err != nil {
			storeLog.Warn("drop entry with invalid date key", "key", k, "error", err)
			continue
		}
		if string(key) == k {
			out[key] = raw[k]
			continue
		}
		migrated++
		if _, canonicalExists := raw[string(key)]; canonicalExists {
			continue
		}
		out[key] = raw[k]
	}
	return out, migrated
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Get returns the entry stored for key.
func (s *Store) Get(key diary.DateKey) (diary.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return diary.Entry{}, false
	}
	return e.Clone(), true
}

// Put stores entry under key, replacing any previous entry, and rewrites the
// file. The entry is validated first.
func (s *Store) Put(key diary.DateKey, entry diary.Entry) error {
	canonical, err := diary.ParseDateKey(string(key))
	if err != nil {
		return err
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.entries[canonical]
	s.entries[canonical] = entry.Clone()
	if err := s.writeLocked(); err != nil {
		if had {
			s.entries[canonical] = prev
		} else {
			delete(s.entries, canonical)
		}
		return err
	}
	return nil
}

// Delete removes the entry for key. Deleting a missing key is not an error
// and does not touch the file.
func (s *Store) Delete(key diary.DateKey) error {
	key, err := diary.ParseDateKey(string(key))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.entries[key]
	if !ok {
		return nil
	}
	delete(s.entries, key)
	if err := s.writeLocked(); err != nil {
		s.entries[key] = prev
		return err
	}
	return nil
}

// Merge folds remote entries into the store by key, last write wins, and
// rewrites the file once. It returns how many keys changed.
func (s *Store) Merge(remote map[string]diary.Entry) (int, error) {
	incoming, _ := migrateKeys(remote)

	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.entries.Clone()
	changed := 0
	for key, entry := range incoming {
		if err := entry.Validate(); err != nil {
			storeLog.Warn("skip invalid merged entry", "key", key, "error", err)
			continue
		}
		s.entries[key] = entry.Clone()
		changed++
	}
	if changed == 0 {
		return 0, nil
	}
	if err := s.writeLocked(); err != nil {
		s.entries = before
		return 0, err
	}
	return changed, nil
}

// Snapshot returns a deep copy of every entry.
func (s *Store) Snapshot() diary.Entries {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.Clone()
}

// Month returns the entries dated within the given month.
func (s *Store) Month(year int, month time.Month) diary.Entries {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := diary.Entries{}
	for key, entry := range s.entries {
		y, m, _, ok := key.Date()
		if ok && y == year && m == month {
			out[key] = entry.Clone()
		}
	}
	return out
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) writeLocked() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirPermission); err != nil {
		return fmt.Errorf("create entries dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".entries-*.json")
	if err != nil {
		return fmt.Errorf("create temp entries file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write entries: %w", err)
	}
	if err := tmp.Chmod(filePermission); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod entries: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close entries: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace entries file: %w", err)
	}
	storeLog.Debug("wrote entries", "path", s.path, "count", len(s.entries))
	return nil
}
