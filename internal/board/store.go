package board

// Store is the durable key/value storage the board state persists into.
// Values are opaque string blobs; the board writes one JSON document per key.
type Store interface {
	// Get returns the value stored under key. found is false when the key
	// has never been written or was removed.
	Get(key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error

	// Close releases any resources held by the store.
	Close() error
}
