package cache

import "errors"

var (
	// ErrKeyEmpty is returned when an empty key is provided.
	ErrKeyEmpty = errors.New("cache: key cannot be empty")

	// ErrConnection is returned when the Redis backend cannot be reached.
	ErrConnection = errors.New("cache: connection failed")

	// ErrSerialization is returned when a report cannot be encoded or decoded.
	ErrSerialization = errors.New("cache: serialization failed")

	// ErrUnknownBackend is returned by New for an unsupported backend name.
	ErrUnknownBackend = errors.New("cache: unknown backend")
)
