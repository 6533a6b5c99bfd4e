// Package mutation implements the optimistic update protocol shared by every
// feature: patch the cache before the request resolves, reconcile with the
// server's answer on success, restore the snapshot on failure.
package mutation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmcdole/flightdeck/internal/api"
	"github.com/mmcdole/flightdeck/internal/domain"
	"github.com/mmcdole/flightdeck/internal/notify"
)

// Env is what a mutation needs from the surrounding application
type Env struct {
	Cache    domain.Cache
	Notifier notify.Notifier
	Logger   *slog.Logger
}

func (e Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

// Overwrite replaces another entry wholesale with a server-returned value,
// e.g. a flight recomputed after one of its legs was removed.
type Overwrite struct {
	Key   domain.CacheKey
	Value any
}

// Mutation describes one optimistic operation on the entry at Key.
// V is the cached value, I the caller's input and R the server result.
type Mutation[V, I, R any] struct {
	// Name identifies the mutation in logs
	Name string
	// Key is the entry patched optimistically
	Key domain.CacheKey

	// Optimistic computes the patched value from the current one. Nil, or
	// an absent entry, skips the patch.
	Optimistic func(current V, input I) V
	// Send performs the request
	Send func(ctx context.Context, input I) (R, error)
	// Reconcile folds the server result into the value current at
	// reconciliation time; nil leaves the entry as patched. Skipped when
	// the entry was invalidated while the request was in flight.
	Reconcile func(current V, input I, result R) V

	// Overwrites lists entries replaced wholesale with server data
	Overwrites func(input I, result R) []Overwrite
	// Cascade lists dependent entries to invalidate (with descendants)
	Cascade func(input I, result R) []domain.CacheKey

	// Success builds the success notification; empty means none
	Success func(input I, result R) string
	// Failure prefixes the error notification (optional)
	Failure string
}

// Run executes m with input. The optimistic write happens strictly before
// the request is dispatched and reconciliation strictly after it returns.
//
// On failure the entry is restored from the pre-mutation snapshot and an
// error notification is emitted. Canceled requests are silent: no rollback,
// no notification, and the returned error satisfies api.IsCanceled.
func Run[V, I, R any](ctx context.Context, env Env, m Mutation[V, I, R], input I) (R, error) {
	log := env.logger().With("mutation", m.Name, "key", m.Key.String())

	var (
		snap    domain.Snapshot
		patched bool
	)
	if m.Optimistic != nil {
		var current V
		var err error
		snap, err = env.Cache.Update(m.Key, &current, func(present bool) (any, bool) {
			if !present {
				return nil, false
			}
			patched = true
			return m.Optimistic(current, input), true
		})
		if err != nil {
			log.Error("failed to apply optimistic update", "error", err)
			patched = false
		}
	}

	result, err := m.Send(ctx, input)
	if err != nil {
		if api.IsCanceled(err) || errors.Is(err, context.Canceled) {
			log.Debug("mutation canceled")
			var zero R
			return zero, api.ErrCanceled
		}

		if patched {
			if rerr := env.Cache.Restore(snap); rerr != nil {
				log.Error("failed to roll back optimistic update", "error", rerr)
			}
		}

		log.Error("mutation failed", "error", err)
		env.notifyError(m.Failure, err)

		var zero R
		return zero, err
	}

	if m.Reconcile != nil {
		var current V
		_, err := env.Cache.Update(m.Key, &current, func(present bool) (any, bool) {
			if !present {
				return nil, false
			}
			return m.Reconcile(current, input, result), true
		})
		if err != nil {
			log.Error("failed to reconcile cache", "error", err)
		}
	}

	if m.Overwrites != nil {
		for _, ow := range m.Overwrites(input, result) {
			if err := env.Cache.Save(ow.Key, ow.Value); err != nil {
				log.Error("failed to overwrite cache entry", "target", ow.Key.String(), "error", err)
			}
		}
	}

	if m.Cascade != nil {
		for _, k := range m.Cascade(input, result) {
			env.Cache.InvalidatePrefix(k)
		}
	}

	log.Debug("mutation succeeded")
	if m.Success != nil && env.Notifier != nil {
		if msg := m.Success(input, result); msg != "" {
			env.Notifier.Success(msg)
		}
	}

	return result, nil
}

func (e Env) notifyError(prefix string, err error) {
	if e.Notifier == nil {
		return
	}
	msg := notify.ErrorMessage(err)
	if prefix != "" {
		msg = fmt.Sprintf("%s: %s", prefix, msg)
	}
	e.Notifier.Error(msg)
}
