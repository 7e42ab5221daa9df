package entity

import (
	"fmt"

	"github.com/gavinmorrow/Pollywog/common"
	"github.com/gavinmorrow/Pollywog/ecs"
	"github.com/gavinmorrow/Pollywog/ecs/component"
	"github.com/gavinmorrow/Pollywog/levels"
)

// SpawnLevel populates w from a level descriptor: background sections first,
// then the blocks in descriptor order, then the player, camera and score
// text. Every spawned entity carries LevelEntity.
func SpawnLevel(w *ecs.World, lvl *levels.Level, spawnX, spawnY float64) (ecs.Entity, error) {
	if w == nil || lvl == nil {
		return 0, fmt.Errorf("spawn level: nil world or level")
	}
	biome, err := lvl.BiomeID()
	if err != nil {
		return 0, fmt.Errorf("spawn level %q: %w", lvl.Name, err)
	}

	for _, section := range biome.Sections() {
		if _, err := NewBackground(w, section); err != nil {
			return 0, fmt.Errorf("spawn level %q: %w", lvl.Name, err)
		}
	}

	for i, block := range lvl.Blocks {
		if err := spawnBlock(w, block); err != nil {
			return 0, fmt.Errorf("spawn level %q: block %d: %w", lvl.Name, i, err)
		}
	}

	player, err := NewPlayerAt(w, spawnX, spawnY)
	if err != nil {
		return 0, fmt.Errorf("spawn level %q: %w", lvl.Name, err)
	}
	if _, err := NewCameraAt(w, spawnX, 0); err != nil {
		return 0, fmt.Errorf("spawn level %q: %w", lvl.Name, err)
	}
	if _, err := NewScoreText(w); err != nil {
		return 0, fmt.Errorf("spawn level %q: %w", lvl.Name, err)
	}
	return player, nil
}

func spawnBlock(w *ecs.World, block levels.Block) error {
	x, y := block.WorldPosition()
	switch block.Data.Type {
	case levels.BlockDirt:
		_, err := NewBlockAt(w, x, y)
		return err
	case levels.BlockCoin:
		_, err := NewCoinAt(w, x, y)
		return err
	case levels.BlockEnemy:
		e, err := NewEnemyAt(w, x, y, nil)
		if err != nil {
			return err
		}
		if m, ok := ecs.Get(w, e, component.MovementComponent.Kind()); ok {
			applyEnemyOverrides(m, block.Data)
		}
		return nil
	default:
		return fmt.Errorf("unknown block type %q", block.Data.Type)
	}
}

// applyEnemyOverrides replaces the prefab patrol with the bounds (in tiles)
// given on the block. A missing bound keeps the prefab's value.
func applyEnemyOverrides(m *component.Movement, data levels.BlockData) {
	if data.Stationary {
		*m = *component.Stationary()
		return
	}
	if data.Left == nil && data.Right == nil {
		return
	}
	left, right := m.Left, m.Right
	if data.Left != nil {
		left = *data.Left * common.Tile
	}
	if data.Right != nil {
		right = *data.Right * common.Tile
	}
	*m = *component.PatrolBetween(left, right, m.MinSpeed)
}
