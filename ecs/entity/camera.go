package entity

import (
	"fmt"

	"github.com/gavinmorrow/Pollywog/ecs"
)

// NewCameraAt spawns a camera centred on (x, y).
func NewCameraAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	camera, err := BuildEntity(w, "camera.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, camera, x, y); err != nil {
		return 0, fmt.Errorf("camera: override transform: %w", err)
	}
	if err := TagLevelEntity(w, camera); err != nil {
		return 0, fmt.Errorf("camera: tag level entity: %w", err)
	}
	return camera, nil
}
