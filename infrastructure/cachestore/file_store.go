// Package cachestore holds the concrete cache backends: a Valkey store for
// shared deployments and a flat JSON file for local use and fallback.
package cachestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/shiurnotes/shiurnotes/pkg/utils"
	"github.com/sirupsen/logrus"
)

const lockRetryDelay = 50 * time.Millisecond

// FileStore persists the whole cache as one JSON object mapping cache key to text.
//
// Every Set reads the document, changes one key and rewrites it in full, so
// the last writer wins. An empty string value reads back as not found, unlike
// ValkeyStore.
type FileStore struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

// NewFileStore returns a store backed by path. The file is created on first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

func (s *FileStore) Name() string {
	return "file"
}

// Path returns the location of the cache document.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return "", false, err
	}
	value := doc[key]
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

func (s *FileStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := utils.EnsureParentDir(s.path); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock cache file: %w", err)
	}
	if !locked {
		return errors.New("lock cache file: not acquired")
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			logrus.Warnf("[CACHE] failed to release %s: %v", s.lock.Path(), err)
		}
	}()

	doc, err := s.load()
	if err != nil {
		// An unreadable document is replaced rather than blocking every write.
		logrus.Warnf("[CACHE] rewriting unreadable cache file %s: %v", s.path, err)
		doc = map[string]string{}
	}
	doc[key] = value
	return s.write(doc)
}

// Len returns the number of entries in the document.
func (s *FileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return 0
	}
	return len(doc)
}

// Size returns the document size in bytes, 0 when it does not exist yet.
func (s *FileStore) Size() int64 {
	info, err := os.Stat(s.path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// load treats a missing file as an empty cache.
func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return map[string]string{}, nil
	}

	doc := map[string]string{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode cache file: %w", err)
	}
	return doc, nil
}

// write replaces the document via a temp file and rename so readers never
// see a half-written file.
func (s *FileStore) write(doc map[string]string) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode cache file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp cache file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace cache file: %w", err)
	}
	return nil
}
