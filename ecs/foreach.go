package ecs

import "github.com/gavinmorrow/Pollywog/ecs/component"

// The ForEach helpers iterate over a snapshot of the driving store, so the
// callback may add, remove or destroy freely. Entities destroyed mid-loop are
// skipped.

func snapshot(ids []entityID) []entityID {
	return append([]entityID(nil), ids...)
}

func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	sa := storeOf(w, ka)
	if sa == nil {
		return
	}
	for _, id := range snapshot(sa.ids()) {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		a := sa.get(id)
		if a == nil {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, sb := storeOf(w, ka), storeOf(w, kb)
	if sa == nil || sb == nil {
		return
	}
	for _, id := range snapshot(sa.ids()) {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		a, b := sa.get(id), sb.get(id)
		if a == nil || b == nil {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa, sb, sc := storeOf(w, ka), storeOf(w, kb), storeOf(w, kc)
	if sa == nil || sb == nil || sc == nil {
		return
	}
	for _, id := range snapshot(sa.ids()) {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		a, b, c := sa.get(id), sb.get(id), sc.get(id)
		if a == nil || b == nil || c == nil {
			continue
		}
		fn(e, a, b, c)
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sa, sb, sc, sd := storeOf(w, ka), storeOf(w, kb), storeOf(w, kc), storeOf(w, kd)
	if sa == nil || sb == nil || sc == nil || sd == nil {
		return
	}
	for _, id := range snapshot(sa.ids()) {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		a, b, c, d := sa.get(id), sb.get(id), sc.get(id), sd.get(id)
		if a == nil || b == nil || c == nil || d == nil {
			continue
		}
		fn(e, a, b, c, d)
	}
}
