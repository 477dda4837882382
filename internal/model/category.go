package model

import "strings"

// DefaultCategories seeds a fresh category set.
var DefaultCategories = []string{"Food", "Transport", "Shopping", "Bills", "Entertainment", "Health", "Other"}

// CategorySet is an ordered collection of distinct, non-empty category names.
// Matching is exact and case-sensitive.
type CategorySet struct {
	names []string
	index map[string]struct{}
}

// NewCategorySet builds a set, dropping blanks and duplicates but keeping order.
func NewCategorySet(names ...string) *CategorySet {
	s := &CategorySet{index: make(map[string]struct{}, len(names))}
	for _, n := range names {
		_, _ = s.Add(n)
	}
	return s
}

// Contains reports membership.
func (s *CategorySet) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Add appends name if it is new. It reports whether the set changed.
func (s *CategorySet) Add(name string) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, &ValidationError{Field: "category", Reason: "cannot be empty"}
	}
	if s.Contains(name) {
		return false, nil
	}
	s.names = append(s.names, name)
	s.index[name] = struct{}{}
	return true, nil
}

// Remove deletes name, reporting whether it was present.
func (s *CategorySet) Remove(name string) bool {
	if !s.Contains(name) {
		return false
	}
	delete(s.index, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	return true
}

// Names returns a copy of the names in insertion order.
func (s *CategorySet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of categories.
func (s *CategorySet) Len() int {
	return len(s.names)
}
