package entity

import (
	"fmt"

	"github.com/gavinmorrow/Pollywog/ecs"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "player.yaml")
}

// NewPlayerAt spawns the player for the active level.
func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	entity, err := NewPlayer(w)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	if err := TagLevelEntity(w, entity); err != nil {
		return 0, fmt.Errorf("player: tag level entity: %w", err)
	}
	return entity, nil
}
