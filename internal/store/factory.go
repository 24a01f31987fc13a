package store

import "fmt"

// DefaultStoreKind is the backend used when --store is not passed.
func DefaultStoreKind() string {
	return "memory"
}

// NewStore builds a Store for kind ("memory" or "sqlite"); sqlitePath is
// ignored for the memory backend.
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return newSQLiteStore(sqlitePath)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}
