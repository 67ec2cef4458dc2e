package registry

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/nibzard/ryo-go/internal/container"
)

// ErrFrozen is returned when registering after the scan phase has ended.
var ErrFrozen = errors.New("registry is frozen")

// Store is a keyed set of container buckets.
//
// Writes happen only before Freeze and must not run concurrently with each
// other. After Freeze the buckets are read-only and safe for concurrent use.
type Store[K comparable, C container.Container] struct {
	buckets map[K][]C
	keys    []K
	frozen  atomic.Bool
}

// NewStore creates an empty store.
func NewStore[K comparable, C container.Container]() *Store[K, C] {
	return &Store[K, C]{buckets: make(map[K][]C)}
}

// AddOrGet returns the container to add a file to for key.
//
// A new key gets a new bucket holding the container built by create. For an
// existing key, a non-empty sharedID returns the bucket's container with that
// shared id if there is one. Otherwise a container from create is appended.
func (s *Store[K, C]) AddOrGet(key K, sharedID string, create func() (C, error)) (C, error) {
	var zero C
	if s.frozen.Load() {
		return zero, fmt.Errorf("%w: cannot register %v", ErrFrozen, key)
	}

	bucket, ok := s.buckets[key]
	if ok && sharedID != "" {
		for _, c := range bucket {
			if c.SharedContainerID() == sharedID {
				return c, nil
			}
		}
	}

	c, err := create()
	if err != nil {
		return zero, err
	}
	if !ok {
		s.keys = append(s.keys, key)
	}
	s.buckets[key] = append(bucket, c)
	return c, nil
}

// Lookup returns the last enabled container registered under key.
func (s *Store[K, C]) Lookup(key K) (C, bool) {
	bucket := s.buckets[key]
	for i := len(bucket) - 1; i >= 0; i-- {
		if bucket[i].Enabled() {
			return bucket[i], true
		}
	}
	var zero C
	return zero, false
}

// Bucket returns a copy of the containers registered under key, in order.
func (s *Store[K, C]) Bucket(key K) []C {
	return append([]C(nil), s.buckets[key]...)
}

// Group returns every container with the given group id, in key
// registration order then bucket order. An empty id matches nothing.
func (s *Store[K, C]) Group(groupID string) []C {
	if groupID == "" {
		return nil
	}
	var out []C
	for _, key := range s.keys {
		for _, c := range s.buckets[key] {
			if c.GroupID() == groupID {
				out = append(out, c)
			}
		}
	}
	return out
}

// All returns every container in key registration order then bucket order.
func (s *Store[K, C]) All() []C {
	var out []C
	for _, key := range s.keys {
		out = append(out, s.buckets[key]...)
	}
	return out
}

// Keys returns the keys in registration order.
func (s *Store[K, C]) Keys() []K {
	return append([]K(nil), s.keys...)
}

// Len returns the number of keys.
func (s *Store[K, C]) Len() int {
	return len(s.keys)
}

// Freeze ends the registration phase.
func (s *Store[K, C]) Freeze() {
	s.frozen.Store(true)
}

// Frozen reports whether Freeze has been called.
func (s *Store[K, C]) Frozen() bool {
	return s.frozen.Load()
}
