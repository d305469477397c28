package assets

// orderedSet keeps insertion order and answers membership in O(1). The zero
// value is empty and ready to use.
type orderedSet struct {
	items []string
	index map[string]struct{}
}

func newOrderedSet() orderedSet {
	return orderedSet{index: make(map[string]struct{})}
}

func (s *orderedSet) has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// add reports whether name was newly inserted.
func (s *orderedSet) add(name string) bool {
	if s.has(name) {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	s.index[name] = struct{}{}
	s.items = append(s.items, name)
	return true
}

func (s *orderedSet) list() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s *orderedSet) clear() {
	s.items = nil
	s.index = make(map[string]struct{})
}

func (s *orderedSet) len() int {
	return len(s.items)
}
