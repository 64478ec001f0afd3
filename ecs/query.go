package ecs

import "github.com/milk9111/oneroom/ecs/component"

// Query returns the live entities that carry every listed component kind, in
// the dense order of the smallest set.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		set := w.stores[k.ID()]
		if set == nil || set.Len() == 0 {
			return nil
		}
		sets = append(sets, set)
	}
	smallest := sets[0]
	for _, set := range sets[1:] {
		if set.Len() < smallest.Len() {
			smallest = set
		}
	}
	out := make([]Entity, 0, smallest.Len())
	for _, e := range smallest.Entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		match := true
		for _, set := range sets {
			if set != smallest && !set.Has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first live entity carrying kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	ents := w.Query(kind)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}
