package stats

import "context"

// URLSet is a set of distinct request paths.
// Implementations need not be safe for concurrent use.
type URLSet interface {
	// Add inserts path into the set. Adding a path twice has no effect.
	Add(ctx context.Context, path string) error

	// Len returns the number of distinct paths added so far.
	Len(ctx context.Context) (int, error)

	// Close releases any resources held by the set.
	Close() error
}

// URLSetFactory creates a fresh, empty URLSet for one log file.
type URLSetFactory func() (URLSet, error)

// MemoryURLSet is a URLSet backed by a Go map.
type MemoryURLSet struct {
	paths map[string]struct{}
}

// NewMemoryURLSet creates an empty in-memory URL set.
func NewMemoryURLSet() *MemoryURLSet {
	return &MemoryURLSet{paths: make(map[string]struct{})}
}

// NewMemoryURLSetFactory returns a URLSetFactory producing MemoryURLSets.
func NewMemoryURLSetFactory() URLSetFactory {
	return func() (URLSet, error) {
		return NewMemoryURLSet(), nil
	}
}

// Add implements URLSet.Add.
func (s *MemoryURLSet) Add(_ context.Context, path string) error {
	s.paths[path] = struct{}{}
	return nil
}

// Len implements URLSet.Len.
func (s *MemoryURLSet) Len(_ context.Context) (int, error) {
	return len(s.paths), nil
}

// Close implements URLSet.Close. It drops the stored paths.
func (s *MemoryURLSet) Close() error {
	s.paths = make(map[string]struct{})
	return nil
}
