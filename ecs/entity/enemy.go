package entity

import (
	"fmt"

	"github.com/gavinmorrow/Pollywog/ecs"
	"github.com/gavinmorrow/Pollywog/ecs/component"
)

// NewEnemyAt spawns an enemy. A non-nil movement replaces the prefab's
// patrol.
func NewEnemyAt(w *ecs.World, x, y float64, movement *component.Movement) (ecs.Entity, error) {
	enemy, err := BuildEntity(w, "enemy.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, enemy, x, y); err != nil {
		return 0, fmt.Errorf("enemy: override transform: %w", err)
	}
	if movement != nil {
		if err := ecs.Add(w, enemy, component.MovementComponent.Kind(), movement); err != nil {
			return 0, fmt.Errorf("enemy: override movement: %w", err)
		}
	}
	if err := TagLevelEntity(w, enemy); err != nil {
		return 0, fmt.Errorf("enemy: tag level entity: %w", err)
	}
	return enemy, nil
}
