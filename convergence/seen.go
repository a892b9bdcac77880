package convergence

import "sync"

// SeenSet remembers which order ids a session has already been told about.
type SeenSet struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func NewSeenSet() *SeenSet {
	return &SeenSet{ids: make(map[string]struct{})}
}

// Diff returns the ids not seen before, in input order, and records them.
func (s *SeenSet) Diff(ids []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	fresh := []string{}
	for _, id := range ids {
		if _, ok := s.ids[id]; ok {
			continue
		}
		s.ids[id] = struct{}{}
		fresh = append(fresh, id)
	}
	return fresh
}

func (s *SeenSet) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

func (s *SeenSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}
