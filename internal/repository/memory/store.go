// Package memory provides the insertion-ordered in-memory repositories the
// scheduling core runs against. Stores hand out copies: callers mutate a
// retrieved entity freely and persist with an explicit Update call.
package memory

import (
	"sync"
	"time"

	"github.com/synapsehq/synapse-api/pkg/errors"
)

type entity[T any] interface {
	EntityID() int64
	SetEntityID(int64)
	Stamp(time.Time)
	Clone() T
}

type store[T entity[T]] struct {
	mu       sync.RWMutex
	seq      int64
	items    map[int64]T
	order    []int64
	resource string
}

func newStore[T entity[T]](resource string) *store[T] {
	return &store[T]{
		items:    make(map[int64]T),
		resource: resource,
	}
}

// create assigns the next monotonic ID, stamps timestamps and stores a copy.
func (s *store[T]) create(e T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	e.SetEntityID(s.seq)
	e.Stamp(time.Now())
	s.items[s.seq] = e.Clone()
	s.order = append(s.order, s.seq)
}

func (s *store[T]) get(id int64) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		var zero T
		return zero, errors.NotFound(s.resource, id)
	}
	return item.Clone(), nil
}

func (s *store[T]) update(e T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := e.EntityID()
	if _, ok := s.items[id]; !ok {
		return errors.NotFound(s.resource, id)
	}
	e.Stamp(time.Now())
	s.items[id] = e.Clone()
	return nil
}

func (s *store[T]) delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return errors.NotFound(s.resource, id)
	}
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *store[T]) list() []T {
	return s.filter(func(T) bool { return true })
}

func (s *store[T]) filter(pred func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		if item := s.items[id]; pred(item) {
			out = append(out, item.Clone())
		}
	}
	return out
}
