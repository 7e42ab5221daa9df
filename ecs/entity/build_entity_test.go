package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavinmorrow/Pollywog/common"
	"github.com/gavinmorrow/Pollywog/ecs"
	"github.com/gavinmorrow/Pollywog/ecs/component"
	"github.com/gavinmorrow/Pollywog/levels"
)

func TestBuildPrefabs(t *testing.T) {
	tests := []struct {
		name  string
		spawn func(w *ecs.World) (ecs.Entity, error)
		check func(t *testing.T, w *ecs.World, e ecs.Entity)
	}{
		{
			name:  "player",
			spawn: func(w *ecs.World) (ecs.Entity, error) { return NewPlayerAt(w, 10, 20) },
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
				require.True(t, ok)
				assert.Equal(t, common.MovementSpeed, p.MoveSpeed)
				assert.Equal(t, common.JumpHeight, p.JumpHeight)
				assert.Equal(t, common.JumpTimeToPeak, p.JumpTimeToPeak)

				h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
				require.True(t, ok)
				assert.Equal(t, common.InitialHealth, h.Current)

				g, ok := ecs.Get(w, e, component.GrappleComponent.Kind())
				require.True(t, ok)
				assert.Equal(t, component.GrappleIdle, g.State)
				assert.Equal(t, common.PullStrength, g.PullStrength)

				col, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
				require.True(t, ok)
				assert.Equal(t, component.BodyKinematic, col.Kind)

				tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
				require.True(t, ok)
				assert.Equal(t, 10.0, tr.X)
				assert.Equal(t, 20.0, tr.Y)
				assert.Equal(t, 1.0, tr.ScaleX)

				assert.True(t, ecs.Has(w, e, component.ActionStateComponent.Kind()))
				assert.True(t, ecs.Has(w, e, component.CharacterControllerComponent.Kind()))
				assert.True(t, ecs.Has(w, e, component.AnimatedSpriteComponent.Kind()))
			},
		},
		{
			name:  "enemy",
			spawn: func(w *ecs.World) (ecs.Entity, error) { return NewEnemyAt(w, 500, 64, nil) },
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				en, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
				require.True(t, ok)
				assert.Equal(t, 100.0, en.Damage)

				m, ok := ecs.Get(w, e, component.MovementComponent.Kind())
				require.True(t, ok)
				assert.Equal(t, component.MovementPatrol, m.Kind)
				assert.Equal(t, 7*common.Tile, m.Left)
				assert.Equal(t, 12*common.Tile, m.Right)
				assert.Equal(t, 0.1, m.MinSpeed)

				col, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
				require.True(t, ok)
				assert.Equal(t, component.ShapeCircle, col.Shape)
				assert.Equal(t, 32.0, col.Radius)
			},
		},
		{
			name:  "coin",
			spawn: func(w *ecs.World) (ecs.Entity, error) { return NewCoinAt(w, 200, 0) },
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				assert.True(t, ecs.Has(w, e, component.CoinComponent.Kind()))
				col, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
				require.True(t, ok)
				assert.Equal(t, component.BodySensor, col.Kind)
				assert.Equal(t, 30.0, col.Radius)
			},
		},
		{
			name:  "block",
			spawn: func(w *ecs.World) (ecs.Entity, error) { return NewBlockAt(w, 0, 0) },
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				assert.True(t, ecs.Has(w, e, component.BlockComponent.Kind()))
				s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
				require.True(t, ok)
				assert.NotNil(t, s.Fill)
				assert.Empty(t, s.ImageKey)
			},
		},
		{
			name:  "camera",
			spawn: func(w *ecs.World) (ecs.Entity, error) { return NewCameraAt(w, 1, 2) },
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				c, ok := ecs.Get(w, e, component.CameraComponent.Kind())
				require.True(t, ok)
				assert.Equal(t, 100.0, c.Divisor)
				assert.Equal(t, 3.0, c.MaxSpeedX)
				assert.Equal(t, 1.0, c.MaxSpeedY)
			},
		},
		{
			name:  "guideline dot",
			spawn: func(w *ecs.World) (ecs.Entity, error) { return NewGuidelineDot(w, 1, 2) },
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				rl, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind())
				require.True(t, ok)
				assert.Equal(t, float64(component.ZGuideline), rl.Z)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e, err := tt.spawn(w)
			require.NoError(t, err)
			assert.True(t, ecs.Has(w, e, component.LevelEntityComponent.Kind()))
			tt.check(t, w, e)
		})
	}
}

func TestBuildEntityErrors(t *testing.T) {
	_, err := BuildEntity(nil, "player.yaml")
	assert.Error(t, err)

	w := ecs.NewWorld()
	_, err = BuildEntity(w, "missing.yaml")
	assert.Error(t, err)
	assert.Zero(t, ecs.Count(w))
}

func TestSpawnLevel(t *testing.T) {
	lvl, err := levels.LoadFromFS(levels.DefaultLevel)
	require.NoError(t, err)

	w := ecs.NewWorld()
	player, err := SpawnLevel(w, lvl, 0, 720)
	require.NoError(t, err)
	assert.True(t, ecs.Has(w, player, component.PlayerComponent.Kind()))

	want := map[levels.BlockKind]int{}
	for _, b := range lvl.Blocks {
		want[b.Data.Type]++
	}
	assert.Equal(t, want[levels.BlockDirt], ecs.CountOf(w, component.BlockComponent.Kind()))
	assert.Equal(t, want[levels.BlockEnemy], ecs.CountOf(w, component.EnemyComponent.Kind()))
	assert.Equal(t, want[levels.BlockCoin], ecs.CountOf(w, component.CoinComponent.Kind()))
	assert.Equal(t, len(component.BiomeSwamp.Sections()), ecs.CountOf(w, component.BackgroundComponent.Kind()))
	assert.Equal(t, 1, ecs.CountOf(w, component.CameraComponent.Kind()))
	assert.Equal(t, 1, ecs.CountOf(w, component.ScoreTextComponent.Kind()))
	assert.Equal(t, ecs.Count(w), ecs.CountOf(w, component.LevelEntityComponent.Kind()))

	// Backgrounds occupy the lowest slots since they are spawned first.
	first, ok := ecs.First(w, component.LevelEntityComponent.Kind())
	require.True(t, ok)
	assert.True(t, ecs.Has(w, first, component.BackgroundComponent.Kind()))
}

func TestApplyEnemyOverrides(t *testing.T) {
	left, right := 2.0, 5.0
	tests := []struct {
		name      string
		data      levels.BlockData
		wantKind  component.MovementKind
		wantLeft  float64
		wantRight float64
	}{
		{name: "none", data: levels.BlockData{}, wantKind: component.MovementPatrol, wantLeft: 7 * common.Tile, wantRight: 12 * common.Tile},
		{name: "stationary", data: levels.BlockData{Stationary: true}, wantKind: component.MovementStationary},
		{name: "both", data: levels.BlockData{Left: &left, Right: &right}, wantKind: component.MovementPatrol, wantLeft: 2 * common.Tile, wantRight: 5 * common.Tile},
		{name: "left only", data: levels.BlockData{Left: &left}, wantKind: component.MovementPatrol, wantLeft: 2 * common.Tile, wantRight: 12 * common.Tile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := component.PatrolBetween(7*common.Tile, 12*common.Tile, 0.1)
			applyEnemyOverrides(m, tt.data)
			assert.Equal(t, tt.wantKind, m.Kind)
			if tt.wantKind == component.MovementPatrol {
				assert.Equal(t, tt.wantLeft, m.Left)
				assert.Equal(t, tt.wantRight, m.Right)
				assert.Equal(t, 0.1, m.MinSpeed)
			}
		})
	}
}

func TestLayerTint(t *testing.T) {
	assert.Nil(t, LayerTint(0))

	light := LayerTint(0.15)
	dim := LayerTint(0.10)
	require.NotNil(t, light)
	require.NotNil(t, dim)

	lr, _, _, _ := light.RGBA()
	dr, _, _, _ := dim.RGBA()
	assert.Greater(t, lr, dr, "more transparent layers get a lighter tint")
}
