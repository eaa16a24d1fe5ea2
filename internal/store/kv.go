package store

import (
	"database/sql"
	"fmt"
	"time"
)

// KVStore is a key/value blob store on top of the kv table.
type KVStore struct {
	db *DB
}

func NewKVStore(db *DB) *KVStore {
	return &KVStore{db: db}
}

// Get returns the blob stored under key. found is false when the key is absent.
func (s *KVStore) Get(key string) (value []byte, found bool, err error) {
	err = s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous blob.
func (s *KVStore) Put(key string, value []byte) error {
	now := time.Now().Unix()
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, now)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
