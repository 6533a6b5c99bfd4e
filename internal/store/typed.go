package store

import "github.com/mmcdole/flightdeck/internal/domain"

// Get reads a typed entry from any domain.Cache
func Get[T any](c domain.Cache, key domain.CacheKey) (T, bool) {
	var v T
	if !c.Load(key, &v) {
		var zero T
		return zero, false
	}
	return v, true
}

// Put writes a typed entry to any domain.Cache
func Put[T any](c domain.Cache, key domain.CacheKey, v T) error {
	return c.Save(key, v)
}
