package mutation

import "github.com/mmcdole/flightdeck/internal/domain"

// The helpers below build optimistic patches. None of them modify their
// input slice; each returns a fresh one.

// Append adds item to the end of list
func Append[T domain.Record](list []T, item T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, list...)
	return append(out, item)
}

// Find returns the record with id
func Find[T domain.Record](list []T, id domain.RecordID) (T, bool) {
	for _, item := range list {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// UpdateByID applies fn to the record with id
func UpdateByID[T domain.Record](list []T, id domain.RecordID, fn func(T) T) []T {
	out := make([]T, len(list))
	for i, item := range list {
		if item.GetID() == id {
			item = fn(item)
		}
		out[i] = item
	}
	return out
}

// ReplaceByID swaps the record with id for item
func ReplaceByID[T domain.Record](list []T, id domain.RecordID, item T) []T {
	return UpdateByID(list, id, func(T) T { return item })
}

// RemoveByID drops the record with id
func RemoveByID[T domain.Record](list []T, id domain.RecordID) []T {
	out := make([]T, 0, len(list))
	for _, item := range list {
		if item.GetID() != id {
			out = append(out, item)
		}
	}
	return out
}

// ReplacePending swaps the placeholder identified by pending for the saved
// record. When the placeholder is gone (the list was refetched in the
// meantime) the saved record is appended unless it is already present.
func ReplacePending[T domain.Record](list []T, pending domain.RecordID, saved T) []T {
	if _, ok := Find(list, pending); ok {
		return ReplaceByID(list, pending, saved)
	}
	if _, ok := Find(list, saved.GetID()); ok {
		return ReplaceByID(list, saved.GetID(), saved)
	}
	return Append(list, saved)
}

// SelectPreferred marks the record with id as preferred and demotes the
// previously preferred sibling, so at most one record stays preferred.
func SelectPreferred[T domain.Preferable[T]](list []T, id domain.RecordID) []T {
	out := make([]T, len(list))
	for i, item := range list {
		switch {
		case item.GetID() == id:
			item = item.WithPreferred(true)
		case item.IsPreferred():
			item = item.WithPreferred(false)
		}
		out[i] = item
	}
	return out
}
