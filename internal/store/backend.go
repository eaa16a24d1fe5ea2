package store

import "fmt"

// OpenBackend builds the persister for a named backend: "sqlite", "file" or
// "memory". The returned DB is non-nil only for sqlite and must be closed by
// the caller.
func OpenBackend(kind, path string) (Persister, *DB, error) {
	switch kind {
	case "sqlite":
		db, err := Open(path)
		if err != nil {
			return nil, nil, err
		}
		return NewBlobPersister(NewKVStore(db)), db, nil
	case "file":
		return NewFilePersister(path), nil, nil
	case "memory":
		return NewMemoryPersister(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}
