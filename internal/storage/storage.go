// Copyright 2026 OmniConvert Authors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

// Package storage manages the two on-disk directories the service persists:
// uploaded originals and converted outputs. Uploads are stored under a
// generated unique identifier plus the original extension so concurrent
// requests never collide on a path.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Store is one managed directory.
type Store struct {
	dir string
}

// New creates the directory if needed and returns a Store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the managed directory.
func (s *Store) Dir() string { return s.dir }

// StoredFile describes one persisted upload.
type StoredFile struct {
	ID           string
	Path         string
	OriginalName string
	// Ext is the original extension, lowercase without the dot.
	Ext string
	// MIME is sniffed from the stored bytes, for diagnostics only;
	// routing stays extension-based.
	MIME string
}

// Save persists the reader's content under a fresh unique name.
func (s *Store) Save(r io.Reader, originalName string) (StoredFile, error) {
	ext := strings.ToLower(filepath.Ext(originalName))

	id := uuid.NewString()
	path := filepath.Join(s.dir, id+ext)

	f, err := os.Create(path)
	if err != nil {
		return StoredFile{}, fmt.Errorf("storage: create %s: %w", path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return StoredFile{}, fmt.Errorf("storage: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return StoredFile{}, fmt.Errorf("storage: close %s: %w", path, err)
	}

	mime := ""
	if mt, err := mimetype.DetectFile(path); err == nil {
		mime = mt.String()
	}

	return StoredFile{
		ID:           id,
		Path:         path,
		OriginalName: originalName,
		Ext:          strings.TrimPrefix(ext, "."),
		MIME:         mime,
	}, nil
}

// Open returns a handle to a file in the store by its bare name. Names are
// reduced to their base to keep lookups inside the directory.
func (s *Store) Open(name string) (*os.File, error) {
	return os.Open(filepath.Join(s.dir, filepath.Base(name)))
}

// Sweep removes regular files older than maxAge and reports how many were
// deleted. Retention used to be unbounded; the sweep caps it.
func (s *Store) Sweep(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("storage: read dir %s: %w", s.dir, err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.dir, entry.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
