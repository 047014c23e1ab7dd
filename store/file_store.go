package store

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

const (
	checksumSuffix = ".checksum"
	tempSuffix     = ".tmp"
	lockFileName   = ".lock"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// FileKVStore implements KVStore with one file per key under a directory.
// Each value has a SHA-256 checksum sidecar; writes go through a temp file
// and a rename. On the OS filesystem the directory is flock'ed for the
// lifetime of the store so only one process writes at a time.
type FileKVStore struct {
	fs       afero.Fs
	dir      string
	maxBytes int64
	flk      *flock.Flock
}

// FileOption configures a FileKVStore.
type FileOption func(*FileKVStore)

// WithFs sets the filesystem. Locking is only applied on the OS filesystem.
func WithFs(fsys afero.Fs) FileOption {
	return func(s *FileKVStore) { s.fs = fsys }
}

// WithMaxBytes limits the total size of all stored values. Zero means unlimited.
func WithMaxBytes(n int64) FileOption {
	return func(s *FileKVStore) { s.maxBytes = n }
}

// NewFileKVStore opens (creating if needed) a store rooted at dir.
func NewFileKVStore(dir string, opts ...FileOption) (*FileKVStore, error) {
	s := &FileKVStore{fs: afero.NewOsFs(), dir: dir}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	if _, isOS := s.fs.(*afero.OsFs); isOS {
		s.flk = flock.New(filepath.Join(dir, lockFileName))
		locked, err := s.flk.TryLock()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock for %s: %w", dir, err)
		}
		if !locked {
			return nil, fmt.Errorf("%w: %s", ErrLocked, dir)
		}
	}
	return s, nil
}

// NewMemoryKVStore returns a FileKVStore over an in-memory filesystem.
func NewMemoryKVStore(opts ...FileOption) *FileKVStore {
	opts = append([]FileOption{WithFs(afero.NewMemMapFs())}, opts...)
	s, err := NewFileKVStore("/taskdeck", opts...)
	if err != nil {
		// MkdirAll on a MemMapFs does not fail.
		panic(err)
	}
	return s
}

// Dir returns the directory the store writes to.
func (s *FileKVStore) Dir() string { return s.dir }

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (s *FileKVStore) pathFor(key string) (string, error) {
	if !validKey.MatchString(key) || strings.HasSuffix(key, checksumSuffix) || strings.HasSuffix(key, tempSuffix) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, key), nil
}

// Get reads the value for key and verifies it against its checksum sidecar.
// A value without a sidecar is accepted; the next Set writes one.
func (s *FileKVStore) Get(key string) (string, bool, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return "", false, err
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	expected, err := afero.ReadFile(s.fs, path+checksumSuffix)
	switch {
	case err == nil:
		if actual := calculateChecksum(data); strings.TrimSpace(string(expected)) != actual {
			return "", true, fmt.Errorf("%w for %s: expected %s, got %s", ErrChecksumMismatch, path, strings.TrimSpace(string(expected)), actual)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return "", false, fmt.Errorf("failed to read checksum for %s: %w", path, err)
	}
	return string(data), true, nil
}

// Set writes value and its checksum, each via a temp file renamed into place.
func (s *FileKVStore) Set(key, value string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	data := []byte(value)

	if s.maxBytes > 0 {
		used, err := s.usage(key)
		if err != nil {
			return err
		}
		if used+int64(len(data)) > s.maxBytes {
			return fmt.Errorf("%w: writing %d bytes to %q would exceed %d", ErrQuotaExceeded, len(data), key, s.maxBytes)
		}
	}

	checksumPath := path + checksumSuffix
	tempPath := path + tempSuffix
	tempChecksumPath := checksumPath + tempSuffix
	defer func() { _ = s.fs.Remove(tempPath) }()
	defer func() { _ = s.fs.Remove(tempChecksumPath) }()

	if err := afero.WriteFile(s.fs, tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file %s: %w", tempPath, err)
	}
	if err := afero.WriteFile(s.fs, tempChecksumPath, []byte(calculateChecksum(data)), 0o644); err != nil {
		return fmt.Errorf("failed to write temporary checksum %s: %w", tempChecksumPath, err)
	}
	if err := s.fs.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", tempPath, path, err)
	}
	if err := s.fs.Rename(tempChecksumPath, checksumPath); err != nil {
		return fmt.Errorf("data file %s updated but checksum %s was not: %w", path, checksumPath, err)
	}
	return nil
}

// Delete removes key and its checksum.
func (s *FileKVStore) Delete(key string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}
	for _, p := range []string{path, path + checksumSuffix} {
		if err := s.fs.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}

// Close releases the directory lock.
func (s *FileKVStore) Close() error {
	if s.flk == nil {
		return nil
	}
	if err := s.flk.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

// usage sums the sizes of all stored values except the one under skipKey.
func (s *FileKVStore) usage(skipKey string) (int64, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to list %s: %w", s.dir, err)
	}
	var total int64
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == skipKey || name == lockFileName ||
			strings.HasSuffix(name, checksumSuffix) || strings.HasSuffix(name, tempSuffix) {
			continue
		}
		total += e.Size()
	}
	return total, nil
}
