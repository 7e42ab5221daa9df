package entity

import (
	"fmt"

	"github.com/gavinmorrow/Pollywog/ecs"
)

func NewCoinAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	return spawnLevelPrefab(w, "coin.yaml", x, y)
}

func NewBlockAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	return spawnLevelPrefab(w, "block.yaml", x, y)
}

func spawnLevelPrefab(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, x, y); err != nil {
		return 0, fmt.Errorf("%s: override transform: %w", prefab, err)
	}
	if err := TagLevelEntity(w, e); err != nil {
		return 0, fmt.Errorf("%s: tag level entity: %w", prefab, err)
	}
	return e, nil
}
