// Package members tracks which requested archive members have been seen.
package members

// Set is an ordered set of requested member names. An empty set selects
// every entry.
type Set struct {
	names []string
	found map[string]bool
}

// NewSet keeps the first occurrence of every name.
func NewSet(names []string) *Set {
	s := &Set{
		names: []string{},
		found: map[string]bool{},
	}

	for _, name := range names {
		if _, ok := s.found[name]; ok {
			continue
		}

		s.names = append(s.names, name)
		s.found[name] = false
	}

	return s
}

func (s *Set) Len() int {
	return len(s.names)
}

// Select reports whether the entry with the given full name is selected,
// marking a matching request as found. Names are compared byte for byte.
func (s *Set) Select(name string) bool {
	if len(s.names) == 0 {
		return true
	}

	if _, ok := s.found[name]; !ok {
		return false
	}

	s.found[name] = true

	return true
}

// Missing returns the requested names that were never selected, in request
// order.
func (s *Set) Missing() []string {
	missing := []string{}
	for _, name := range s.names {
		if !s.found[name] {
			missing = append(missing, name)
		}
	}

	return missing
}
