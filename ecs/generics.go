package ecs

import "github.com/gavinmorrow/Pollywog/ecs/component"

func storeOf[T any](w *World, kind component.ComponentKind[T]) *sparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	s, ok := w.stores[kind.ID()]
	if !ok {
		return nil
	}
	return s.(*sparseSet[T])
}

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return ErrInvalidComponentKind
	}
	if value == nil {
		return ErrNilComponent
	}
	if !IsAlive(w, e) {
		return ErrEntityNotAlive
	}
	s := storeOf(w, kind)
	if s == nil {
		s = newSparseSet[T]()
		if w.stores == nil {
			w.stores = make(map[component.ComponentID]componentStore)
		}
		w.stores[kind.ID()] = s
	}
	s.set(e.id(), value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	s := storeOf(w, kind)
	if s == nil {
		return nil, false
	}
	v := s.get(e.id())
	return v, v != nil
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	s := storeOf(w, kind)
	if s == nil {
		return false
	}
	return s.remove(e.id())
}

// First returns the lowest-slot live entity carrying kind. It is meant for
// singletons such as the player or the camera.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := storeOf(w, kind)
	if s == nil {
		return 0, false
	}
	var (
		best  Entity
		found bool
	)
	for _, id := range s.ids() {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		if !found || id < best.id() {
			best, found = e, true
		}
	}
	return best, found
}

// CountOf returns how many live entities carry kind.
func CountOf[T any](w *World, kind component.ComponentKind[T]) int {
	s := storeOf(w, kind)
	if s == nil {
		return 0
	}
	return s.len()
}
