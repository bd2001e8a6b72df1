// Package observe provides a small publish/subscribe primitive used to
// broadcast the active tenant and authentication state.
package observe

import "sync"

// Subject holds a current value and fans every new value out to subscribers.
// New subscribers receive the current value immediately once one has been
// published. Callbacks run synchronously on the publishing goroutine, outside
// the subject's lock, in subscription order.
type Subject[T any] struct {
	mu     sync.Mutex
	value  T
	has    bool
	nextID int
	order  []int
	subs   map[int]func(T)
}

// NewSubject returns an empty Subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{subs: make(map[int]func(T))}
}

// NewBehaviorSubject returns a Subject that already holds initial.
func NewBehaviorSubject[T any](initial T) *Subject[T] {
	s := NewSubject[T]()
	s.value = initial
	s.has = true
	return s
}

// Value returns the current value and whether one has been published.
func (s *Subject[T]) Value() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.has
}

// Publish stores v and notifies every subscriber registered at call time.
func (s *Subject[T]) Publish(v T) {
	s.mu.Lock()
	s.value = v
	s.has = true
	fns := s.snapshotLocked()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Subscribe registers fn and returns a function that deregisters it.
// Calling the returned function more than once is harmless.
func (s *Subject[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)
	v, has := s.value, s.has
	s.mu.Unlock()

	if has {
		fn(v)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			for i, o := range s.order {
				if o == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Len reports the number of active subscribers.
func (s *Subject[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *Subject[T]) snapshotLocked() []func(T) {
	fns := make([]func(T), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.subs[id])
	}
	return fns
}
