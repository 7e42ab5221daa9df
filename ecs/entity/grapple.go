package entity

import "github.com/gavinmorrow/Pollywog/ecs"

// NewGrappleMarker spawns the dot drawn at a grapple target.
func NewGrappleMarker(w *ecs.World, x, y float64) (ecs.Entity, error) {
	return spawnLevelPrefab(w, "grapple_marker.yaml", x, y)
}

// NewGuidelineDot spawns one dot of the aiming guideline.
func NewGuidelineDot(w *ecs.World, x, y float64) (ecs.Entity, error) {
	return spawnLevelPrefab(w, "guideline_dot.yaml", x, y)
}
