// Package store persists named JSON collections on disk.
//
// Each collection is an independent document with a registered default and
// shape validator. Writes are serialized per collection and committed with
// a write-temp-then-rename replace, so readers observe either the previous
// or the next fully written version, never a torn file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Store manages the data directory holding all collections. It is safe for
// concurrent use.
type Store struct {
	logger      *slog.Logger
	collections map[string]collection
	locks       map[string]*sync.Mutex
	dir         string
	mu          sync.Mutex
}

// New creates the data directory if needed and returns a store with the
// standard collection set registered.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}

	return &Store{
		logger:      logger,
		collections: defaultCollections(),
		locks:       make(map[string]*sync.Mutex),
		dir:         dir,
	}, nil
}

// lockFor returns the write lock of a collection, creating it on first use.
func (s *Store) lockFor(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

// Exists reports whether the collection's backing file has been created.
func (s *Store) Exists(name string) (bool, error) {
	col, ok := s.collections[name]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}

	_, err := os.Stat(filepath.Join(s.dir, col.file))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: stat %s: %v", ErrStorage, name, err)
	}
	return true, nil
}

// Load returns the collection's current content. A missing file yields the
// registered default; an unreadable or syntactically invalid file yields
// ErrStorage. Loads take no lock and see the last committed version.
func (s *Store) Load(name string) (json.RawMessage, error) {
	col, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}
	return s.read(name, col)
}

func (s *Store) read(name string, col collection) (json.RawMessage, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, col.file))
	if errors.Is(err, fs.ErrNotExist) {
		return json.RawMessage(col.defaultJSON), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrStorage, name, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s contains invalid JSON", ErrStorage, name)
	}
	return data, nil
}

// Save validates value against the collection's shape and durably replaces
// the backing file. On validation failure the file is left untouched.
func (s *Store) Save(name string, value any) error {
	col, ok := s.collections[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrValidation, name, err)
	}
	if err := col.validate(raw); err != nil {
		return err
	}

	l := s.lockFor(name)
	l.Lock()
	defer l.Unlock()

	return s.write(name, col, raw)
}

// Mutate runs a read-modify-write cycle while holding the collection's
// write lock, so the callback's decision cannot race another writer. The
// callback receives the current content (or the default) and returns the
// replacement value; its error is passed through unchanged.
func (s *Store) Mutate(name string, fn func(current json.RawMessage) (any, error)) (json.RawMessage, error) {
	col, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}

	l := s.lockFor(name)
	l.Lock()
	defer l.Unlock()

	current, err := s.read(name, col)
	if err != nil {
		return nil, err
	}

	next, err := fn(current)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %v", ErrValidation, name, err)
	}
	if err := col.validate(raw); err != nil {
		return nil, err
	}
	if err := s.write(name, col, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// write replaces the collection file via temp file and rename. The rename
// is what makes a crash mid-write harmless: the old content stays intact
// until the new file is fully on disk.
func (s *Store) write(name string, col collection, raw []byte) error {
	tmp, err := os.CreateTemp(s.dir, col.file+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp for %s: %v", ErrStorage, name, err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(raw)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmpName, filepath.Join(s.dir, col.file))
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", ErrStorage, name, err)
	}

	s.logger.Debug("collection saved",
		slog.String("collection", name),
		slog.Int("bytes", len(raw)),
	)
	return nil
}
