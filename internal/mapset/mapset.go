// Package mapset provides map-backed set types used throughout the
// module for predicate value sets and bookkeeping during evaluation.
package mapset

import (
	"iter"
	"maps"
	"slices"

	"golang.org/x/exp/constraints"
)

// MapSet is a mutable set of comparable values.
type MapSet[T comparable] struct {
	m map[T]struct{}
}

// Make returns a MapSet ready for use. A zero MapSet is also usable; Make
// just pre-sizes the backing map.
func Make[T comparable](size int) *MapSet[T] {
	return &MapSet[T]{m: make(map[T]struct{}, size)}
}

// FromItems returns a MapSet containing the given items.
func FromItems[T comparable](items ...T) *MapSet[T] {
	s := Make[T](len(items))
	for _, i := range items {
		s.m[i] = struct{}{}
	}
	return s
}

// FromSeq returns a MapSet containing the items produced by seq.
func FromSeq[T comparable](seq iter.Seq[T]) *MapSet[T] {
	s := Make[T](0)
	for i := range seq {
		s.Add(i)
	}
	return s
}

// Add adds an item, returning true if it was not already present.
func (s *MapSet[T]) Add(item T) bool {
	if s.m == nil {
		s.m = map[T]struct{}{}
	}
	_, exists := s.m[item]
	s.m[item] = struct{}{}
	return !exists
}

// Remove removes an item, returning true if it was present.
func (s *MapSet[T]) Remove(item T) bool {
	_, exists := s.m[item]
	delete(s.m, item)
	return exists
}

// Contains reports whether item is in the set.
func (s *MapSet[T]) Contains(item T) bool {
	_, ok := s.m[item]
	return ok
}

// Len returns the number of items in the set.
func (s *MapSet[T]) Len() int { return len(s.m) }

// All returns an iterator over the items in the set, in no particular
// order.
func (s *MapSet[T]) All() iter.Seq[T] {
	return maps.Keys(s.m)
}

// Slice returns the items of the set in unspecified order.
func (s *MapSet[T]) Slice() []T {
	return slices.Collect(maps.Keys(s.m))
}

// Equal reports whether two sets contain exactly the same items.
func (s *MapSet[T]) Equal(o *MapSet[T]) bool {
	if len(s.m) != len(o.m) {
		return false
	}
	for i := range s.m {
		if _, ok := o.m[i]; !ok {
			return false
		}
	}
	return true
}

// Immutable returns an immutable snapshot of the set.
func (s *MapSet[T]) Immutable() ImmutableMapSet[T] {
	return Immutable(s.Slice()...)
}

// ImmutableMapSet is a set that cannot be changed after construction.
// Its zero value is an empty set. Because it holds no exported mutators,
// values of this type may be shared freely.
type ImmutableMapSet[T comparable] struct {
	s MapSet[T]
}

// Immutable returns an ImmutableMapSet containing the given items.
func Immutable[T comparable](items ...T) ImmutableMapSet[T] {
	return ImmutableMapSet[T]{s: *FromItems(items...)}
}

// Contains reports whether item is in the set.
func (s ImmutableMapSet[T]) Contains(item T) bool { return s.s.Contains(item) }

// Len returns the number of items in the set.
func (s ImmutableMapSet[T]) Len() int { return s.s.Len() }

// All returns an iterator over the items in the set, in no particular
// order.
func (s ImmutableMapSet[T]) All() iter.Seq[T] { return s.s.All() }

// Slice returns the items of the set in unspecified order.
func (s ImmutableMapSet[T]) Slice() []T { return s.s.Slice() }

// Equal reports whether two sets contain exactly the same items.
func (s ImmutableMapSet[T]) Equal(o ImmutableMapSet[T]) bool { return s.s.Equal(&o.s) }

// Sorted returns the items of s in ascending order. Evaluation results
// and tests rely on it for deterministic enumeration.
func Sorted[T constraints.Ordered](s ImmutableMapSet[T]) []T {
	out := s.Slice()
	slices.Sort(out)
	return out
}
