package internal

// Set is an unordered set of comparable values.
type Set[T comparable] map[T]struct{}

func NewSet[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Add inserts item and reports whether it was not there before.
func (s Set[T]) Add(item T) bool {
	if _, exists := s[item]; exists {
		return false
	}
	s[item] = struct{}{}
	return true
}

func (s Set[T]) Contains(item T) bool {
	_, exists := s[item]
	return exists
}
