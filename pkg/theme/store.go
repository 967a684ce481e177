package theme

import "sync/atomic"

// Store publishes the active [Themes] mapping.
//
// Readers call [Store.Load] once per unit of work and keep the returned
// pointer; writers replace the whole mapping with [Store.Swap]. Since a
// [Themes] value is never mutated after construction, a reader sees either
// the complete old mapping or the complete new one.
type Store struct {
	current atomic.Pointer[Themes]
}

// NewStore creates a store holding ts. A nil ts starts with the builtin themes.
func NewStore(ts *Themes) *Store {
	if ts == nil {
		ts = Builtin()
	}
	s := &Store{}
	s.current.Store(ts)
	return s
}

// Load returns the active mapping.
func (s *Store) Load() *Themes {
	return s.current.Load()
}

// Swap installs ts and returns the previous mapping. A nil ts is ignored.
func (s *Store) Swap(ts *Themes) *Themes {
	if ts == nil {
		return s.current.Load()
	}
	return s.current.Swap(ts)
}
