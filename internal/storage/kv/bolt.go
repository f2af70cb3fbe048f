package kv

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("collections")

var _ Store = (*BoltStore)(nil)

// BoltStore persists slots in a single-file bbolt database.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (creating if needed) the database file at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("create collections bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(slot string) ([]byte, error) {
	var data []byte
	if err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(slot))
		if v != nil {
			// v is only valid inside the transaction
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("get slot %q: %w", slot, err)
	}

	return data, nil
}

func (s *BoltStore) Put(slot string, data []byte) error {
	if err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(slot), data)
	}); err != nil {
		return fmt.Errorf("put slot %q: %w", slot, err)
	}

	return nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
