package buffer

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// ErrUnknownItem is returned by Retry for an item that was never enqueued.
var ErrUnknownItem = errors.New("buffer: item has no sequence")

// Store is an append-only replay log of content writes kept while Postgres is
// unavailable. Keys are the bucket sequence in big-endian form, so a cursor
// walk yields writes in the order they were made.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes the BoltDB file and ensures the log bucket exists.
func Open(path string, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = "content_writes"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, bucket: []byte(bucket)}, nil
}

// Enqueue appends item to the end of the log and returns its sequence.
func (s *Store) Enqueue(item Item) (uint64, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	item.normalize()

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		item.Seq = seq
		return put(b, item)
	})
	return item.Seq, err
}

// GetBatch returns up to limit items from the head of the log without removing them.
func (s *Store) GetBatch(limit int) ([]Item, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	if limit <= 0 {
		limit = 50
	}

	var items []Item
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil && len(items) < limit; k, v = c.Next() {
			item, ok := decode(k, v)
			if !ok {
				continue
			}
			items = append(items, item)
		}
		return nil
	})
	return items, err
}

// Remove deletes the item from the log. Items without a sequence are matched by ID.
func (s *Store) Remove(item Item) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if item.Seq != 0 {
			return b.Delete(seqKey(item.Seq))
		}
		if item.ID == "" {
			return nil
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if stored, ok := decode(k, v); ok && stored.ID == item.ID {
				return c.Delete()
			}
		}
		return nil
	})
}

// Retry rewrites item in place, keeping its position in the log.
func (s *Store) Retry(item Item) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if item.Seq == 0 {
		return ErrUnknownItem
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return put(tx.Bucket(s.bucket), item)
	})
}

// Size returns the number of buffered items.
func (s *Store) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Cleanup removes items older than the provided timestamp and reports how many were dropped.
func (s *Store) Cleanup(olderThan time.Time) (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		var expired [][]byte
		_ = b.ForEach(func(k, v []byte) error {
			if item, ok := decode(k, v); ok && item.Timestamp.Before(olderThan) {
				expired = append(expired, append([]byte(nil), k...))
			}
			return nil
		})
		// deleting while a cursor walks the bucket skips keys
		for _, k := range expired {
			if err := b.Delete(k); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	return removed, err
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func put(b *bolt.Bucket, item Item) error {
	payload, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return b.Put(seqKey(item.Seq), payload)
}

func decode(k, v []byte) (Item, bool) {
	var item Item
	if len(k) != 8 {
		return item, false
	}
	if err := json.Unmarshal(v, &item); err != nil {
		return item, false
	}
	item.Seq = binary.BigEndian.Uint64(k)
	return item, true
}

func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
