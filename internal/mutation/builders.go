package mutation

import (
	"context"

	"github.com/mmcdole/flightdeck/internal/domain"
)

// Draft pairs a create payload with the placeholder id of its optimistic
// record, so reconciliation replaces exactly that placeholder.
type Draft[I any] struct {
	Data    I
	Pending domain.RecordID
}

// NewDraft wraps data with a fresh pending id
func NewDraft[I any](data I) Draft[I] {
	return Draft[I]{Data: data, Pending: domain.Pending()}
}

// Change addresses an update payload to one saved record
type Change[I any] struct {
	ID   domain.RecordID
	Data I
}

// AddToList builds a mutation that appends a placeholder built by
// placeholder, then swaps it for the server record.
func AddToList[T domain.Record, I any](
	name string,
	key domain.CacheKey,
	placeholder func(data I, pending domain.RecordID) T,
	send func(ctx context.Context, data I) (T, error),
) Mutation[[]T, Draft[I], T] {
	return Mutation[[]T, Draft[I], T]{
		Name: name,
		Key:  key,
		Optimistic: func(current []T, in Draft[I]) []T {
			return Append(current, placeholder(in.Data, in.Pending))
		},
		Send: func(ctx context.Context, in Draft[I]) (T, error) {
			return send(ctx, in.Data)
		},
		Reconcile: func(current []T, in Draft[I], saved T) []T {
			return ReplacePending(current, in.Pending, saved)
		},
	}
}

// EditInList builds a mutation that applies the payload to the cached
// record in place, then replaces it with the server record.
func EditInList[T domain.Record, I any](
	name string,
	key domain.CacheKey,
	apply func(current T, data I) T,
	send func(ctx context.Context, id domain.RecordID, data I) (T, error),
) Mutation[[]T, Change[I], T] {
	return Mutation[[]T, Change[I], T]{
		Name: name,
		Key:  key,
		Optimistic: func(current []T, in Change[I]) []T {
			return UpdateByID(current, in.ID, func(item T) T { return apply(item, in.Data) })
		},
		Send: func(ctx context.Context, in Change[I]) (T, error) {
			return send(ctx, in.ID, in.Data)
		},
		Reconcile: func(current []T, in Change[I], saved T) []T {
			return ReplaceByID(current, in.ID, saved)
		},
	}
}

// RemoveFromList builds a mutation that filters the record out before the
// request resolves. R is whatever the delete call returns.
func RemoveFromList[T domain.Record, R any](
	name string,
	key domain.CacheKey,
	send func(ctx context.Context, id domain.RecordID) (R, error),
) Mutation[[]T, domain.RecordID, R] {
	return Mutation[[]T, domain.RecordID, R]{
		Name: name,
		Key:  key,
		Optimistic: func(current []T, id domain.RecordID) []T {
			return RemoveByID(current, id)
		},
		Send: send,
	}
}
