// Package cache holds the single-slot result cache used for the console
// system status, with an optional shared mirror behind it.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/fivetwenty-io/console-client/pkg/console"
)

// singleflight keys. Forced reloads never join a load that may be answered
// from the mirror.
const (
	loadKey   = "load"
	reloadKey = "reload"
)

// FetchFunc performs the network fetch behind a slot.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// SlotConfig holds the optional collaborators of a Slot.
type SlotConfig struct {
	// Mirror is consulted before the network while the slot is empty and
	// receives every successfully fetched value.
	Mirror console.StatusMirror
	// Logger receives mirror failures, which are never returned to callers.
	Logger console.Logger
}

// Slot caches the last successful result of fetch. It has no TTL: a value is
// replaced only by a successful forced fetch and dropped only by Invalidate.
type Slot[T any] struct {
	fetch  FetchFunc[T]
	mirror console.StatusMirror
	logger console.Logger
	group  singleflight.Group

	mutex   sync.RWMutex
	value   T
	present bool
	// generation moves on every forced store and on Invalidate. A load only
	// stores when the generation it started under is still current.
	generation uint64
}

// NewSlot creates an empty slot.
func NewSlot[T any](fetch FetchFunc[T], config SlotConfig) *Slot[T] {
	return &Slot[T]{
		fetch:  fetch,
		mirror: config.Mirror,
		logger: config.Logger,
	}
}

// Get returns the cached value, fetching it when the slot is empty or when
// forceReload is set. A failed fetch leaves the slot unchanged, so a stale
// value stays servable after a failed forced reload.
//
// Concurrent callers share one fetch. The shared fetch is detached from the
// caller that started it: a caller whose ctx ends gets ctx.Err() while the
// others keep waiting for the result.
func (s *Slot[T]) Get(ctx context.Context, forceReload bool) (T, error) {
	var zero T

	if !forceReload {
		value, ok := s.Peek()
		if ok {
			return value, nil
		}
	}

	key := loadKey
	if forceReload {
		key = reloadKey
	}

	shared := context.WithoutCancel(ctx)

	ch := s.group.DoChan(key, func() (interface{}, error) {
		return s.load(shared, forceReload)
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case result := <-ch:
		if result.Err != nil {
			return zero, result.Err
		}

		value, ok := result.Val.(T)
		if !ok {
			return zero, console.ErrUnexpectedResponse
		}

		return value, nil
	}
}

// Invalidate empties the slot and the mirror.
func (s *Slot[T]) Invalidate(ctx context.Context) error {
	s.mutex.Lock()

	var zero T

	s.value = zero
	s.present = false
	s.generation++
	s.mutex.Unlock()

	if s.mirror == nil {
		return nil
	}

	return s.mirror.Delete(ctx)
}

// Peek returns the cached value without fetching.
func (s *Slot[T]) Peek() (T, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.value, s.present
}

func (s *Slot[T]) load(ctx context.Context, forceReload bool) (T, error) {
	generation := s.currentGeneration()

	if !forceReload {
		value, ok := s.Peek()
		if ok {
			return value, nil
		}

		value, ok = s.fromMirror(ctx)
		if ok {
			if !s.store(value, generation, false) {
				return s.current(value), nil
			}

			return value, nil
		}
	}

	value, err := s.fetch(ctx)
	if err != nil {
		var zero T

		return zero, err
	}

	if !s.store(value, generation, forceReload) {
		return s.current(value), nil
	}

	s.toMirror(ctx, value)

	return value, nil
}

func (s *Slot[T]) currentGeneration() uint64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.generation
}

// store writes value unless a forced reload or Invalidate happened since the
// load began at generation.
func (s *Slot[T]) store(value T, generation uint64, forced bool) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.generation != generation {
		return false
	}

	s.value = value
	s.present = true

	if forced {
		s.generation++
	}

	return true
}

// current returns the cached value, or fallback when the slot is empty.
func (s *Slot[T]) current(fallback T) T {
	value, ok := s.Peek()
	if ok {
		return value
	}

	return fallback
}

func (s *Slot[T]) fromMirror(ctx context.Context) (T, bool) {
	var value T

	if s.mirror == nil {
		return value, false
	}

	payload, err := s.mirror.Get(ctx)
	if err != nil {
		if !errors.Is(err, console.ErrStatusMirrorMiss) {
			s.warn("reading status mirror failed", err)
		}

		return value, false
	}

	err = json.Unmarshal(payload, &value)
	if err != nil {
		s.warn("decoding status mirror entry failed", err)

		return value, false
	}

	return value, true
}

func (s *Slot[T]) toMirror(ctx context.Context, value T) {
	if s.mirror == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		s.warn("encoding status mirror entry failed", err)

		return
	}

	err = s.mirror.Put(ctx, payload)
	if err != nil {
		s.warn("writing status mirror failed", err)
	}
}

func (s *Slot[T]) warn(msg string, err error) {
	if s.logger == nil {
		return
	}

	s.logger.Warn(msg, map[string]interface{}{"error": err.Error()})
}
