package store

import (
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Options selects and configures a KVStore backend.
type Options struct {
	Backend  string
	Dir      string
	MaxBytes int64
}

// Open returns the KVStore named by opts.Backend. An empty backend means file.
func Open(opts Options) (KVStore, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendFile:
		if opts.Dir == "" {
			return nil, fmt.Errorf("file backend requires a data directory")
		}
		return NewFileKVStore(opts.Dir, WithMaxBytes(opts.MaxBytes))
	case BackendSQLite:
		if opts.Dir == "" {
			return nil, fmt.Errorf("sqlite backend requires a data directory")
		}
		return NewSQLiteKVStore(opts.Dir)
	case BackendMemory:
		return NewMemoryKVStore(WithMaxBytes(opts.MaxBytes)), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want file, sqlite, or memory)", opts.Backend)
	}
}
