package store

// KVStore is a durable string-keyed store.
// Implementations must make a successful Set visible to a later Get on a
// fresh instance over the same location.
type KVStore interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases locks and handles held by the store.
	Close() error
}
