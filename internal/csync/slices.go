package csync

import (
	"iter"
	"slices"
	"sync"
)

// Slice is a thread-safe slice.
type Slice[T any] struct {
	inner []T
	mu    sync.RWMutex
}

// NewSlice creates a new empty slice.
func NewSlice[T any]() *Slice[T] {
	return &Slice[T]{}
}

// NewSliceFrom creates a new slice holding a copy of s.
func NewSliceFrom[T any](s []T) *Slice[T] {
	return &Slice[T]{
		inner: slices.Clone(s),
	}
}

// Append adds an element at the end.
func (s *Slice[T]) Append(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner = append(s.inner, v)
}

// Prepend adds an element at the start.
func (s *Slice[T]) Prepend(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner = append([]T{v}, s.inner...)
}

// Delete removes the element at index.
func (s *Slice[T]) Delete(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.inner) {
		return false
	}
	s.inner = slices.Delete(s.inner, index, index+1)
	return true
}

// Get returns the element at index.
func (s *Slice[T]) Get(index int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.inner) {
		var zero T
		return zero, false
	}
	return s.inner[index], true
}

// Set replaces the element at index.
func (s *Slice[T]) Set(index int, v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.inner) {
		return false
	}
	s.inner[index] = v
	return true
}

// SetSlice replaces the whole content with a copy of items.
func (s *Slice[T]) SetSlice(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner = slices.Clone(items)
}

// Len returns the number of elements.
func (s *Slice[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.inner)
}

// Seq returns an iterator over a snapshot of the elements.
func (s *Slice[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s.Seq2() {
			if !yield(v) {
				return
			}
		}
	}
}

// Seq2 returns an iterator over a snapshot of the elements and their
// indexes.
func (s *Slice[T]) Seq2() iter.Seq2[int, T] {
	s.mu.RLock()
	items := slices.Clone(s.inner)
	s.mu.RUnlock()
	return func(yield func(int, T) bool) {
		for i, v := range items {
			if !yield(i, v) {
				return
			}
		}
	}
}
