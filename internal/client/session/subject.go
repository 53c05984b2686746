package session

import "sync"

type observer[T any] struct {
	id uint64
	fn func(T)
}

// Subject holds the latest value and broadcasts every new one to its
// observers in registration order. New observers get the latest value
// immediately (replay-latest).
//
// Observers run synchronously on the goroutine that called Next or
// Subscribe, outside the internal lock, so they may read Value.
type Subject[T any] struct {
	mu        sync.Mutex
	value     T
	nextID    uint64
	observers []observer[T]
}

func NewSubject[T any](initial T) *Subject[T] {
	return &Subject[T]{value: initial}
}

func (s *Subject[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Subscribe registers fn, invokes it with the current value and returns a
// handle that removes it. Calling the handle more than once is harmless.
func (s *Subject[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, observer[T]{id: id, fn: fn})
	current := s.value
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

// Next stores v and delivers it to every observer registered at call time.
func (s *Subject[T]) Next(v T) {
	s.mu.Lock()
	s.value = v
	snapshot := make([]observer[T], len(s.observers))
	copy(snapshot, s.observers)
	s.mu.Unlock()

	for _, o := range snapshot {
		o.fn(v)
	}
}

// Len reports the number of active observers.
func (s *Subject[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

func (s *Subject[T]) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.observers {
		if o.id == id {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}
