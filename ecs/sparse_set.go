package ecs

// SparseSet is a cache-friendly storage for one component kind keyed by entity slot.
type SparseSet struct {
	denseEntities []Entity
	denseValues   []any
	sparse        []int
}

func (s *SparseSet) index(e Entity) int {
	id := int(e.id())
	if s == nil || id <= 0 || id-1 >= len(s.sparse) {
		return -1
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.denseEntities) || s.denseEntities[idx] != e {
		return -1
	}
	return idx
}

// Has returns true if the entity exists in the set.
func (s *SparseSet) Has(e Entity) bool {
	return s.index(e) >= 0
}

// Get returns the component for e, or nil.
func (s *SparseSet) Get(e Entity) any {
	idx := s.index(e)
	if idx < 0 {
		return nil
	}
	return s.denseValues[idx]
}

// Set inserts or updates a component for e.
func (s *SparseSet) Set(e Entity, v any) {
	id := int(e.id())
	if s == nil || id <= 0 {
		return
	}
	for id-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if idx := s.index(e); idx >= 0 {
		s.denseValues[idx] = v
		return
	}
	// A stale generation may still occupy the slot.
	if old := s.sparse[id-1]; old >= 0 && old < len(s.denseEntities) && s.denseEntities[old].id() == e.id() {
		s.removeAt(old)
	}
	s.denseEntities = append(s.denseEntities, e)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id-1] = len(s.denseEntities) - 1
}

// Remove deletes the component for e if present.
func (s *SparseSet) Remove(e Entity) bool {
	idx := s.index(e)
	if idx < 0 {
		return false
	}
	s.removeAt(idx)
	return true
}

func (s *SparseSet) removeAt(idx int) {
	last := len(s.denseEntities) - 1
	removed := s.denseEntities[idx]
	moved := s.denseEntities[last]

	s.denseEntities[idx] = moved
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[moved.id()-1] = idx

	s.denseEntities = s.denseEntities[:last]
	s.denseValues = s.denseValues[:last]
	s.sparse[removed.id()-1] = -1
}

// Len returns the number of stored components.
func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}

// Entities returns the dense entity list.
func (s *SparseSet) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.denseEntities
}
