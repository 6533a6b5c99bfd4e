package domain

import (
	"fmt"
	"strings"
)

// CacheKey identifies one cache entry: a resource type plus an optional
// scope, e.g. {"performance-profiles", "12"} for the profiles of aircraft 12.
// Scopes are hierarchical ("12:3") so prefix invalidation cascades.
type CacheKey struct {
	Resource string
	Scope    string
}

// Key builds a CacheKey, joining scope parts with ":"
func Key(resource string, scope ...any) CacheKey {
	parts := make([]string, len(scope))
	for i, s := range scope {
		parts[i] = fmt.Sprint(s)
	}
	return CacheKey{Resource: resource, Scope: strings.Join(parts, ":")}
}

func (k CacheKey) String() string {
	if k.Scope == "" {
		return k.Resource
	}
	return k.Resource + ":" + k.Scope
}

// Covers reports whether k equals other or is an ancestor of it
func (k CacheKey) Covers(other CacheKey) bool {
	if k.Resource != other.Resource {
		return false
	}
	if k.Scope == "" || k.Scope == other.Scope {
		return true
	}
	return strings.HasPrefix(other.Scope, k.Scope+":")
}

// Snapshot is the verbatim state of one entry at a point in time.
// Restoring a snapshot of an absent entry deletes the entry.
type Snapshot struct {
	Key     CacheKey
	Data    []byte
	Present bool
}

// Cache is the process-wide keyed store shared by every feature.
// Values are stored as immutable snapshots: readers always get either the
// last written value or nothing, never a partially applied patch.
type Cache interface {
	// Load decodes the entry into dest; false on miss
	Load(key CacheKey, dest any) bool
	// Save replaces the entry wholesale
	Save(key CacheKey, value any) error
	// Update decodes the entry into dest, then saves fn's result unless fn
	// reports false. No other write can interleave. The snapshot returned
	// is the entry before the update.
	Update(key CacheKey, dest any, fn func(present bool) (next any, ok bool)) (Snapshot, error)

	// Snapshot captures the entry for a later Restore
	Snapshot(key CacheKey) Snapshot
	Restore(snap Snapshot) error

	// Invalidate removes the entry; InvalidatePrefix removes it and all
	// descendants (same resource, scope prefixed by key's scope)
	Invalidate(key CacheKey)
	InvalidatePrefix(key CacheKey)
	InvalidateAll()

	// Subscribe registers fn to be called with the key of every changed entry
	Subscribe(fn func(CacheKey)) (unsubscribe func())

	Close() error
}
