// Package observable provides a typed value holder that notifies listeners
// synchronously whenever the value is replaced.
package observable

import "sync"

type Subject[T any] struct {
	mu        sync.Mutex
	value     T
	nextID    uint64
	order     []uint64
	listeners map[uint64]func(T)
}

func NewSubject[T any](initial T) *Subject[T] {
	return &Subject[T]{value: initial, listeners: make(map[uint64]func(T))}
}

func (s *Subject[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the value and calls every listener, in subscription order,
// before returning. Listeners run outside the lock and may call Value.
func (s *Subject[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	fns := s.snapshot()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Update applies fn to the current value under the lock, then notifies.
func (s *Subject[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	next := fn(s.value)
	s.value = next
	fns := s.snapshot()
	s.mu.Unlock()

	for _, l := range fns {
		l(next)
	}
	return next
}

// Subscribe registers fn and immediately replays the current value to it.
// The returned func removes the listener; calling it twice is harmless.
func (s *Subject[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners[id] = fn
	s.order = append(s.order, id)
	current := s.value
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.listeners[id]; !ok {
			return
		}
		delete(s.listeners, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

func (s *Subject[T]) snapshot() []func(T) {
	fns := make([]func(T), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.listeners[id])
	}
	return fns
}
