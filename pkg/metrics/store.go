package metrics

import (
	"fmt"
	"sync"

	"github.com/gateixeira/walletmon/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// store maps metric names to instruments of a single kind. Names whose
// registration failed are remembered until clear, so they warn once.
type store[T prometheus.Collector] struct {
	kind   Kind
	mu     sync.RWMutex
	items  map[string]T
	failed map[string]struct{}
}

func newStore[T prometheus.Collector](kind Kind) *store[T] {
	return &store[T]{
		kind:   kind,
		items:  make(map[string]T),
		failed: make(map[string]struct{}),
	}
}

// getOrCreate returns the instrument registered under name, building it with
// factory on first use. Concurrent first use of the same name yields a single
// instrument. A factory error or panic is logged once and reported as
// ok == false on this and every later call for the name.
func (s *store[T]) getOrCreate(name string, factory func(string) (T, error)) (T, bool) {
	var zero T

	s.mu.RLock()
	inst, ok := s.items[name]
	_, failed := s.failed[name]
	s.mu.RUnlock()
	if ok {
		return inst, true
	}
	if failed {
		return zero, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have won between RUnlock and Lock
	if inst, ok := s.items[name]; ok {
		return inst, true
	}
	if _, failed := s.failed[name]; failed {
		return zero, false
	}

	inst, err := build(name, factory)
	if err != nil {
		logger.Logger.Warn("Failed to register metric",
			zap.String("name", name),
			zap.Stringer("kind", s.kind),
			zap.Error(err))
		s.failed[name] = struct{}{}
		return zero, false
	}

	s.items[name] = inst
	return inst, true
}

// build runs factory, turning a panic into an error so the store lock is
// released normally and the caller degrades to a no-op
func build[T any](name string, factory func(string) (T, error)) (inst T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("metric factory panicked: %v", r)
		}
	}()
	return factory(name)
}

func (s *store[T]) get(name string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.items[name]
	return inst, ok
}

func (s *store[T]) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// each calls fn for every instrument while holding the read lock
func (s *store[T]) each(fn func(name string, inst T)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for name, inst := range s.items {
		fn(name, inst)
	}
}

// clear drops every instrument, calling release on each first, and forgets
// failed names
func (s *store[T]) clear(release func(inst T)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inst := range s.items {
		release(inst)
	}
	s.items = make(map[string]T)
	s.failed = make(map[string]struct{})
}
