package store

import (
	"errors"
	"fmt"
)

var (
	// ErrStorage matches any *StorageError.
	ErrStorage = errors.New("storage unavailable")
	// ErrCorruptData matches any *CorruptDataError.
	ErrCorruptData = errors.New("stored data is corrupt")

	// ErrQuotaExceeded is returned by a store whose size limit would be passed by a write.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrChecksumMismatch is returned when a value no longer matches its recorded checksum.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrLocked is returned when another process holds the data directory.
	ErrLocked = errors.New("data directory is locked by another process")
	// ErrInvalidKey is returned for keys that cannot be mapped to storage.
	ErrInvalidKey = errors.New("invalid key")
)

// StorageError reports that the durable store rejected or failed an operation.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrStorage) true for every StorageError.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// CorruptDataError reports stored or imported data that failed to parse or validate.
type CorruptDataError struct {
	Source string
	Err    error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt data in %s: %v", e.Source, e.Err)
}

func (e *CorruptDataError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrCorruptData) true for every CorruptDataError.
func (e *CorruptDataError) Is(target error) bool { return target == ErrCorruptData }
