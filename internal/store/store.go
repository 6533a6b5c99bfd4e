package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/flightdeck/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// rootScope is the bolt key used for entries without a scope
const rootScope = "-"

var _ domain.Cache = (*Store)(nil)

// Store implements domain.Cache with an in-memory map backed, optionally,
// by BoltDB. Each resource type gets its own bucket.
type Store struct {
	db     *bolt.DB
	logger *slog.Logger

	mu    sync.RWMutex      // Protects cache and gen
	cache map[string][]byte // Hot-path reads (promoted on access)
	gen   uint64            // Bumped by every memory write or delete

	// coldRead runs between a bolt read and its promotion to memory (tests)
	coldRead func(domain.CacheKey)

	writeMu sync.Mutex // Serializes writers so Update is atomic

	watchMu  sync.Mutex
	watchers map[int]func(domain.CacheKey)
	nextID   int
}

// NewMemoryStore creates a store without persistence
func NewMemoryStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		logger:   logger,
		cache:    make(map[string][]byte),
		watchers: make(map[int]func(domain.CacheKey)),
	}
}

// Open creates a store persisted under baseCacheDir. Each API server gets
// its own database so switching servers never mixes cached records.
// An empty baseCacheDir yields a memory-only store.
func Open(baseCacheDir, serverURL string, logger *slog.Logger) (*Store, error) {
	s := NewMemoryStore(logger)
	if baseCacheDir == "" {
		return s, nil
	}

	dir := baseCacheDir
	if serverURL != "" {
		dir = filepath.Join(baseCacheDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, "flightdeck.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	s.db = db
	return s, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === domain.Cache ===

func (s *Store) Load(key domain.CacheKey, dest any) bool {
	data, ok := s.get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Error("failed to decode cache entry", "key", key.String(), "error", err)
		return false
	}
	return true
}

func (s *Store) Save(key domain.CacheKey, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}

	s.writeMu.Lock()
	err = s.set(key, data)
	s.writeMu.Unlock()
	if err != nil {
		return err
	}
	s.notify(key)
	return nil
}

// Update decodes the entry into dest and saves whatever fn returns, with no
// other write in between. When fn reports false the entry is left alone.
// The returned snapshot is the entry as it was before the update.
func (s *Store) Update(key domain.CacheKey, dest any, fn func(present bool) (any, bool)) (domain.Snapshot, error) {
	s.writeMu.Lock()
	data, present := s.get(key)
	snap := domain.Snapshot{Key: key, Data: data, Present: present}
	if present {
		if err := json.Unmarshal(data, dest); err != nil {
			s.writeMu.Unlock()
			return snap, fmt.Errorf("failed to decode cache entry %s: %w", key, err)
		}
	}

	next, ok := fn(present)
	if !ok {
		s.writeMu.Unlock()
		return snap, nil
	}

	encoded, err := json.Marshal(next)
	if err == nil {
		err = s.set(key, encoded)
	}
	s.writeMu.Unlock()
	if err != nil {
		return snap, fmt.Errorf("failed to update cache entry %s: %w", key, err)
	}

	s.notify(key)
	return snap, nil
}

func (s *Store) Snapshot(key domain.CacheKey) domain.Snapshot {
	data, ok := s.get(key)
	return domain.Snapshot{Key: key, Data: data, Present: ok}
}

func (s *Store) Restore(snap domain.Snapshot) error {
	s.writeMu.Lock()
	var err error
	if snap.Present {
		err = s.set(snap.Key, snap.Data)
	} else {
		s.delete(snap.Key)
	}
	s.writeMu.Unlock()
	if err != nil {
		return err
	}
	s.notify(snap.Key)
	return nil
}

func (s *Store) Invalidate(key domain.CacheKey) {
	s.writeMu.Lock()
	s.delete(key)
	s.writeMu.Unlock()
	s.notify(key)
}

// InvalidatePrefix wipes key and every entry scoped beneath it
func (s *Store) InvalidatePrefix(key domain.CacheKey) {
	s.writeMu.Lock()
	removed := s.deletePrefix(key)
	s.writeMu.Unlock()
	for _, k := range removed {
		s.notify(k)
	}
}

func (s *Store) InvalidateAll() {
	s.writeMu.Lock()
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.gen++
	s.mu.Unlock()

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			var names [][]byte
			if err := tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
				names = append(names, append([]byte(nil), name...))
				return nil
			}); err != nil {
				return err
			}
			for _, name := range names {
				if err := tx.DeleteBucket(name); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			s.logger.Error("failed to clear cache database", "error", err)
		}
	}
	s.writeMu.Unlock()

	s.notify(domain.CacheKey{})
}

// Subscribe registers fn for change notifications. InvalidateAll is
// reported with the zero key.
func (s *Store) Subscribe(fn func(domain.CacheKey)) func() {
	s.watchMu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = fn
	s.watchMu.Unlock()

	return func() {
		s.watchMu.Lock()
		delete(s.watchers, id)
		s.watchMu.Unlock()
	}
}

// Keys lists the in-memory entry keys covered by prefix, in no particular order
func (s *Store) Keys(prefix domain.CacheKey) []domain.CacheKey {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []domain.CacheKey
	for k := range s.cache {
		key := parseKey(k)
		if prefix.Covers(key) {
			keys = append(keys, key)
		}
	}
	return keys
}

// === Generic helpers ===

func (s *Store) notify(key domain.CacheKey) {
	s.watchMu.Lock()
	fns := make([]func(domain.CacheKey), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.watchMu.Unlock()

	for _, fn := range fns {
		fn(key)
	}
}

func (s *Store) get(key domain.CacheKey) ([]byte, bool) {
	cacheKey := key.String()

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return data, true
	}
	gen := s.gen
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false
	}

	// Read from BoltDB
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(key.Resource))
		if b == nil {
			return nil
		}
		if v := b.Get(boltKey(key)); v != nil {
			data = bytes.Clone(v)
		}
		return nil
	})
	if err != nil || data == nil {
		return nil, false
	}
	if s.coldRead != nil {
		s.coldRead(key)
	}

	// Promote to memory cache unless a write landed since the miss; that
	// write already set memory, or dropped an entry bolt may still have held.
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.cache[cacheKey]; ok {
		return current, true
	}
	if s.gen != gen {
		return data, true
	}
	s.cache[cacheKey] = data
	return data, true
}

func (s *Store) set(key domain.CacheKey, data []byte) error {
	// Update memory cache
	s.mu.Lock()
	s.cache[key.String()] = data
	s.gen++
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	// Write to BoltDB
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(key.Resource))
		if err != nil {
			return err
		}
		return b.Put(boltKey(key), data)
	})
}

func (s *Store) delete(key domain.CacheKey) {
	// Clear from memory cache
	s.mu.Lock()
	delete(s.cache, key.String())
	s.gen++
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	// Delete from BoltDB
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(key.Resource))
		if b == nil {
			return nil
		}
		return b.Delete(boltKey(key))
	})
	if err != nil {
		s.logger.Error("failed to delete cache entry", "key", key.String(), "error", err)
	}
}

// deletePrefix removes key and its descendants, returning the removed keys
func (s *Store) deletePrefix(key domain.CacheKey) []domain.CacheKey {
	removed := make(map[domain.CacheKey]struct{})

	// Clear from memory cache
	s.mu.Lock()
	for k := range s.cache {
		if parsed := parseKey(k); key.Covers(parsed) {
			delete(s.cache, k)
			removed[parsed] = struct{}{}
		}
	}
	s.gen++
	s.mu.Unlock()

	if s.db != nil {
		// Delete from BoltDB using a scan of the resource bucket
		err := s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket([]byte(key.Resource))
			if b == nil {
				return nil
			}
			var doomed [][]byte
			c := b.Cursor()
			for k, _ := c.First(); k != nil; k, _ = c.Next() {
				child := domain.CacheKey{Resource: key.Resource, Scope: scopeOf(k)}
				if key.Covers(child) {
					doomed = append(doomed, bytes.Clone(k))
					removed[child] = struct{}{}
				}
			}
			for _, k := range doomed {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			s.logger.Error("failed to invalidate cache prefix", "key", key.String(), "error", err)
		}
	}

	keys := make([]domain.CacheKey, 0, len(removed))
	for k := range removed {
		keys = append(keys, k)
	}
	return keys
}

func boltKey(key domain.CacheKey) []byte {
	if key.Scope == "" {
		return []byte(rootScope)
	}
	return []byte(key.Scope)
}

func scopeOf(k []byte) string {
	if string(k) == rootScope {
		return ""
	}
	return string(k)
}

// parseKey reverses CacheKey.String. Resource names never contain ":".
func parseKey(s string) domain.CacheKey {
	resource, scope, _ := strings.Cut(s, ":")
	return domain.CacheKey{Resource: resource, Scope: scope}
}
