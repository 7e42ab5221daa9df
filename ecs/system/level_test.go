package system

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavinmorrow/Pollywog/ecs"
	"github.com/gavinmorrow/Pollywog/ecs/component"
	"github.com/gavinmorrow/Pollywog/levels"
	"github.com/gavinmorrow/Pollywog/metrics"
)

func fakeDecode(string) (image.Image, error) {
	return image.NewNRGBA(image.Rect(0, 0, 1, 1)), nil
}

// runUntil updates ls until it reaches want or the deadline passes.
func runUntil(t *testing.T, w *ecs.World, ls *LevelSystem, want component.LevelState) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		ls.Update(w)
		if ls.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("level state stuck at %s, want %s", ls.State(), want)
}

func newLevelSystem(t *testing.T, decode levels.ImageDecoder) (*ecs.World, *component.GameFlow, *LevelSystem) {
	t.Helper()
	w := ecs.NewWorld()
	flow := newSession(t, w, component.StateStartScreen)
	loader := levels.NewLoader(nil, decode, "enemy.png", "coin.png")
	ps := NewPhysicsSystem(nil, 1.0/60)
	ls := NewLevelSystem(nil, loader, ps, metrics.New("test"), levels.DefaultLevel, 0, 720)
	return w, flow, ls
}

func TestLevelLifecycle(t *testing.T) {
	w, flow, ls := newLevelSystem(t, fakeDecode)

	var got *levels.Assets
	ls.OnAssets(func(a *levels.Assets) { got = a })

	require.Equal(t, component.LevelLoadingAssets, ls.State())
	runUntil(t, w, ls, component.LevelWaitingForStart)
	require.NotNil(t, got)
	require.NotNil(t, ls.Level())
	assert.Contains(t, got.Images, "enemy.png")

	// Nothing spawns until the game is InGame.
	ls.Update(w)
	assert.Equal(t, component.LevelWaitingForStart, ls.State())
	assert.Zero(t, ecs.CountOf(w, component.LevelEntityComponent.Kind()))

	flow.Current = component.StateInGame
	ls.Update(w)
	require.Equal(t, component.LevelLoaded, ls.State())
	player, ok := ls.Player()
	require.True(t, ok)
	assert.True(t, ecs.Has(w, player, component.PlayerComponent.Kind()))
	spawned := ecs.CountOf(w, component.LevelEntityComponent.Kind())
	assert.Positive(t, spawned)
	first := levelSnapshot(w)

	ls.Cleanup(w)
	assert.Equal(t, component.LevelWaitingForStart, ls.State())
	assert.Zero(t, ecs.CountOf(w, component.LevelEntityComponent.Kind()))
	assert.Equal(t, 1, ecs.Count(w), "only the session survives")
	assert.Empty(t, ls.physics.entities)
	_, ok = ls.Player()
	assert.False(t, ok)

	// Respawning the retained descriptor gives the same level.
	ls.Update(w)
	require.Equal(t, component.LevelLoaded, ls.State())
	assert.Equal(t, spawned, ecs.CountOf(w, component.LevelEntityComponent.Kind()))
	assert.Equal(t, first, levelSnapshot(w))
}

// levelSnapshot describes every level entity by position and patrol bounds,
// independent of entity ids.
func levelSnapshot(w *ecs.World) []string {
	var out []string
	ecs.ForEach2(w, component.LevelEntityComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, _ *component.LevelEntity, tr *component.Transform) {
			desc := fmt.Sprintf("pos=(%.3f,%.3f)", tr.X, tr.Y)
			if m, ok := ecs.Get(w, e, component.MovementComponent.Kind()); ok {
				desc += fmt.Sprintf(" %s [%.3f,%.3f] min=%.3f dir=%v", m.Kind, m.Left, m.Right, m.MinSpeed, m.Direction)
			}
			if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
				desc += fmt.Sprintf(" health=%.1f", h.Current)
			}
			out = append(out, desc)
		})
	sort.Strings(out)
	return out
}

func TestLevelSpawnsPatrollingEnemies(t *testing.T) {
	w, flow, ls := newLevelSystem(t, fakeDecode)
	runUntil(t, w, ls, component.LevelWaitingForStart)
	flow.Current = component.StateInGame
	ls.Update(w)
	require.Equal(t, component.LevelLoaded, ls.State())
	assert.Positive(t, ecs.CountOf(w, component.MovementComponent.Kind()))
}

func TestLevelRetriesAfterTextureFailure(t *testing.T) {
	var calls atomic.Int32
	w, _, ls := newLevelSystem(t, func(key string) (image.Image, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("disk hiccup")
		}
		return fakeDecode(key)
	})
	ls.retryDelay = 0

	runUntil(t, w, ls, component.LevelWaitingForStart)
	assert.NotNil(t, ls.Level())
	assert.Greater(t, calls.Load(), int32(1))
	assert.False(t, ls.loader.Busy())
}

func TestLevelCleanupResetsGrapple(t *testing.T) {
	w, flow, ls := newLevelSystem(t, fakeDecode)
	runUntil(t, w, ls, component.LevelWaitingForStart)
	flow.Current = component.StateInGame
	ls.Update(w)
	player, ok := ls.Player()
	require.True(t, ok)

	g, ok := ecs.Get(w, player, component.GrappleComponent.Kind())
	require.True(t, ok)
	g.State = component.GrappleGrappling
	g.Target = &component.GrappleTarget{X: 1, Y: 2}

	ls.Cleanup(w)
	assert.Equal(t, component.GrappleIdle, g.State)
	assert.Nil(t, g.Target)
}

func TestLevelCleanupBeforeLoad(t *testing.T) {
	w, _, ls := newLevelSystem(t, fakeDecode)
	ls.Cleanup(w)
	assert.Equal(t, component.LevelLoadingAssets, ls.State())
}

func TestLevelTextureFailureStaysLoading(t *testing.T) {
	w, _, ls := newLevelSystem(t, func(string) (image.Image, error) {
		return nil, errors.New("no such texture")
	})
	for i := 0; i < 200; i++ {
		ls.Update(w)
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, component.LevelLoadingAssets, ls.State())
	assert.Nil(t, ls.Level())
}

func TestReplaceLevel(t *testing.T) {
	w, flow, ls := newLevelSystem(t, fakeDecode)
	runUntil(t, w, ls, component.LevelWaitingForStart)

	small, err := levels.Parse([]byte(`{"name":"tiny","biome":"Swamp","blocks":[{"data":{"type":"Dirt"},"position":[0,0]}]}`))
	require.NoError(t, err)
	ls.ReplaceLevel(small)
	ls.ReplaceLevel(nil)
	assert.Equal(t, "tiny", ls.Level().Name)

	flow.Current = component.StateInGame
	ls.Update(w)
	require.Equal(t, component.LevelLoaded, ls.State())
	assert.Equal(t, 1, ecs.CountOf(w, component.BlockComponent.Kind()))
}
