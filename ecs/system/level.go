package system

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/gavinmorrow/Pollywog/ecs"
	"github.com/gavinmorrow/Pollywog/ecs/component"
	"github.com/gavinmorrow/Pollywog/ecs/entity"
	"github.com/gavinmorrow/Pollywog/levels"
	"github.com/gavinmorrow/Pollywog/metrics"
)

// LevelSystem owns the LevelState. It polls the asynchronous loader, waits
// for the game to enter InGame, spawns the level, and tears it down again
// when the game leaves InGame. The loaded descriptor is kept across runs.
type LevelSystem struct {
	logger   *zap.Logger
	loader   *levels.Loader
	physics  *PhysicsSystem
	metrics  *metrics.Recorder
	name     string
	spawnX   float64
	spawnY   float64
	onAssets func(*levels.Assets)

	state      component.LevelState
	retryDelay time.Duration
	retryAt    time.Time
	level      *levels.Level
	player     ecs.Entity
}

// loadRetryDelay spaces out attempts after a texture failure.
const loadRetryDelay = time.Second

func NewLevelSystem(logger *zap.Logger, loader *levels.Loader, physics *PhysicsSystem, rec *metrics.Recorder, name string, spawnX, spawnY float64) *LevelSystem {
	return &LevelSystem{
		logger:  orNop(logger),
		loader:  loader,
		physics: physics,
		metrics: rec,
		name:    name,
		spawnX:  spawnX,
		spawnY:  spawnY,
		state:   component.LevelLoadingAssets,

		retryDelay: loadRetryDelay,
	}
}

// OnAssets registers a callback run on the game loop once the level's assets
// have been decoded.
func (ls *LevelSystem) OnAssets(fn func(*levels.Assets)) {
	ls.onAssets = fn
}

func (ls *LevelSystem) State() component.LevelState {
	return ls.state
}

// Level returns the retained descriptor, or nil before it has loaded.
func (ls *LevelSystem) Level() *levels.Level {
	return ls.level
}

// Player returns the player spawned for the current run.
func (ls *LevelSystem) Player() (ecs.Entity, bool) {
	return ls.player, ls.state == component.LevelLoaded
}

// ReplaceLevel swaps the retained descriptor. The change is seen the next
// time the level is spawned.
func (ls *LevelSystem) ReplaceLevel(lvl *levels.Level) {
	if lvl == nil {
		return
	}
	ls.level = lvl
	ls.logger.Info("level descriptor replaced", zap.String("level", lvl.Name))
}

func (ls *LevelSystem) setState(next component.LevelState) {
	if next == ls.state {
		return
	}
	ls.logger.Info("level state", zap.Stringer("from", ls.state), zap.Stringer("to", next))
	ls.state = next
}

func (ls *LevelSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	switch ls.state {
	case component.LevelLoadingAssets:
		ls.pollAssets()

	case component.LevelConstructing:
		if ls.level == nil {
			// Invalid descriptor; there is no automatic recovery.
			return
		}
		ls.setState(component.LevelWaitingForStart)

	case component.LevelWaitingForStart:
		flow, ok := gameFlow(w)
		if !ok {
			ls.logger.Debug("no game flow")
			return
		}
		if flow.Current == component.StateInGame {
			ls.setState(component.LevelSpawningBlocks)
			ls.spawn(w)
		}
	}
}

func (ls *LevelSystem) pollAssets() {
	if ls.loader == nil {
		return
	}
	if !ls.loader.Busy() {
		if time.Now().Before(ls.retryAt) {
			return
		}
		ls.loader.Start(ls.name)
		return
	}
	assets, done, err := ls.loader.Poll()
	if !done {
		return
	}
	if err != nil {
		ls.metrics.LevelLoaded(0, err)
		ls.logger.Error("level load failed", zap.String("level", ls.name), zap.Error(err))
		if errors.Is(err, levels.ErrInvalidDescriptor) {
			ls.setState(component.LevelConstructing)
			return
		}
		ls.retryAt = time.Now().Add(ls.retryDelay)
		return
	}

	ls.metrics.LevelLoaded(assets.Took, nil)
	ls.logger.Info("level loaded",
		zap.String("level", assets.Level.Name),
		zap.Int("blocks", len(assets.Level.Blocks)),
		zap.Int("textures", len(assets.Images)),
		zap.Duration("took", assets.Took))
	if ls.onAssets != nil {
		ls.onAssets(assets)
	}
	ls.level = assets.Level
	ls.setState(component.LevelConstructing)
}

func (ls *LevelSystem) spawn(w *ecs.World) {
	player, err := entity.SpawnLevel(w, ls.level, ls.spawnX, ls.spawnY)
	if err != nil {
		// Stays in SpawningBlocks until the next Cleanup.
		ls.logger.Error("spawn level", zap.Error(err))
		ls.despawn(w)
		return
	}
	ls.player = player
	ls.setState(component.LevelLoaded)
}

// Cleanup despawns every level entity, resets the grapple and returns to
// WaitingForStart. It is a no-op before the level has been constructed.
func (ls *LevelSystem) Cleanup(w *ecs.World) {
	if w == nil {
		return
	}
	switch ls.state {
	case component.LevelLoadingAssets, component.LevelConstructing:
		return
	}
	ls.despawn(w)
	ls.setState(component.LevelWaitingForStart)
}

func (ls *LevelSystem) despawn(w *ecs.World) {
	ecs.ForEach(w, component.GrappleComponent.Kind(), func(_ ecs.Entity, g *component.Grapple) {
		ResetGrapple(w, g)
	})
	count := 0
	ecs.ForEach(w, component.LevelEntityComponent.Kind(), func(e ecs.Entity, _ *component.LevelEntity) {
		if ecs.DestroyEntity(w, e) {
			count++
		}
	})
	if ls.physics != nil {
		ls.physics.Reset()
	}
	ls.player = 0
	ls.logger.Debug("level despawned", zap.Int("entities", count))
}
