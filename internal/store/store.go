package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Store is a persistent string key-value store backed by BoltDB.
// Each plugin id gets its own bucket.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// Open opens the store at path. An empty path gives a memory-only store.
func Open(path string) (*Store, error) {
	if path == "" {
		// Memory-only mode (no persistence)
		return &Store{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	return &Store{db: db, cache: make(map[string][]byte)}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Bucket returns the key-value view scoped to name
func (s *Store) Bucket(name string) *Bucket {
	return &Bucket{store: s, name: []byte(name)}
}

// === Generic helpers ===

func (s *Store) get(bucket []byte, key string) ([]byte, bool) {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return data, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return nil, false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return data, true
}

func (s *Store) set(bucket []byte, key string, data []byte) error {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})
}

func (s *Store) delete(bucket []byte, key string) error {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// Bucket implements domain.KeyValue over one BoltDB bucket
type Bucket struct {
	store *Store
	name  []byte
}

func (b *Bucket) Get(key string) (string, bool) {
	data, ok := b.store.get(b.name, key)
	if !ok {
		return "", false
	}
	return string(data), true
}

func (b *Bucket) Set(key, value string) error {
	return b.store.set(b.name, key, []byte(value))
}

func (b *Bucket) Delete(key string) error {
	return b.store.delete(b.name, key)
}
