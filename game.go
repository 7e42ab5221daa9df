package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/gavinmorrow/Pollywog/common"
	"github.com/gavinmorrow/Pollywog/config"
	"github.com/gavinmorrow/Pollywog/ecs"
	"github.com/gavinmorrow/Pollywog/ecs/component"
	"github.com/gavinmorrow/Pollywog/ecs/render"
	"github.com/gavinmorrow/Pollywog/ecs/system"
	"github.com/gavinmorrow/Pollywog/levels"
	"github.com/gavinmorrow/Pollywog/metrics"
	"github.com/gavinmorrow/Pollywog/prefabs"
)

// entityTextures are decoded alongside every level.
var entityTextures = []string{"player_sheet.png", "enemy.png", "coin.png"}

// Game owns the world and runs three schedules: per-frame systems, the fixed
// simulation tick (only while InGame), and post-tick presentation. GameState
// changes requested during a frame are applied once, at the end of Update.
type Game struct {
	logger  *zap.Logger
	cfg     *config.Config
	metrics *metrics.Recorder

	world   *ecs.World
	clock   *ecs.Clock
	session ecs.Entity
	last    time.Time

	frame *ecs.Scheduler
	fixed *ecs.Scheduler
	post  *ecs.Scheduler

	physics *system.PhysicsSystem
	level   *system.LevelSystem
	render  *system.RenderSystem
	screens map[component.GameState]*Screen
	watcher *prefabs.Watcher

	lastFrame *ebiten.Image
}

func NewGame(cfg *config.Config, logger *zap.Logger, rec *metrics.Recorder) (*Game, error) {
	bindings, err := system.ParseKeyBindings(map[component.Action][]string{
		component.ActionLeft:    cfg.Input.Left,
		component.ActionRight:   cfg.Input.Right,
		component.ActionJump:    cfg.Input.Jump,
		component.ActionGrapple: cfg.Input.Grapple,
	})
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	w := ecs.NewWorld()
	session := ecs.CreateEntity(w)
	start := component.StateStartScreen
	if cfg.Game.SkipStartScreen {
		start = component.StateInGame
	}
	if err := ecs.Add(w, session, component.GameFlowComponent.Kind(), &component.GameFlow{Current: start}); err != nil {
		return nil, fmt.Errorf("game: add game flow: %w", err)
	}

	clock := ecs.NewClock(cfg.Simulation.TPS)
	dt := clock.Dt()
	screenW, screenH := float64(cfg.Window.Width), float64(cfg.Window.Height)

	physics := system.NewPhysicsSystem(logger.Named("physics"), dt)
	loader := levels.NewLoader(logger.Named("loader"), render.DecodeImage, entityTextures...)
	// The player spawns one window height above the origin.
	level := system.NewLevelSystem(logger.Named("level"), loader, physics, rec, cfg.Game.Level, 0, screenH)

	g := &Game{
		logger:  logger,
		cfg:     cfg,
		metrics: rec,
		world:   w,
		clock:   clock,
		session: session,
		physics: physics,
		level:   level,
		render:  system.NewRenderSystem(logger.Named("render"), screenW, screenH),
	}
	level.OnAssets(g.registerImages)

	g.frame = ecs.NewScheduler(
		system.NewInputSystem(system.NewEbitenInput(bindings, cfg.Window.Width, cfg.Window.Height)),
		system.NewGrappleSystem(logger.Named("grapple"), physics, screenW, screenH),
		level,
	)
	g.fixed = ecs.NewScheduler(
		system.NewStopJumpSystem(logger.Named("jump")),
		system.NewPlayerMoveSystem(logger.Named("move")),
		system.NewJumpSystem(dt),
		system.NewGrapplePullSystem(),
		system.NewEnemyPatrolSystem(),
		physics,
		system.NewDamageSystem(logger.Named("damage"), rec),
		system.NewCoinPickupSystem(logger.Named("coins"), physics, rec),
		system.NewWinDeathSystem(logger.Named("outcome"), common.WinX, rec),
		system.NewCameraFollowSystem(logger.Named("camera")),
	)
	g.post = ecs.NewScheduler(
		system.NewParallaxSystem(),
		system.NewAnimationSystem(dt),
		system.NewScoreTextSystem(),
	)
	g.screens = newScreens(cfg.Window.Width, cfg.Window.Height, g.request)

	if cfg.Debug.Watch {
		g.startWatcher()
	}
	rec.Transition("", start.String())
	logger.Info("game created", zap.Stringer("state", start), zap.Int("tps", cfg.Simulation.TPS))
	return g, nil
}

func (g *Game) flow() *component.GameFlow {
	flow, ok := ecs.Get(g.world, g.session, component.GameFlowComponent.Kind())
	if !ok {
		panic("game: session lost its game flow")
	}
	return flow
}

func (g *Game) request(next component.GameState) {
	g.flow().Request(next)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.logger.Info("quit requested")
		return ebiten.Termination
	}
	g.drainWatcher()

	now := time.Now()
	elapsed := g.clock.Dt()
	if !g.last.IsZero() {
		elapsed = now.Sub(g.last).Seconds()
	}
	g.last = now

	flow := g.flow()
	g.frame.Update(g.world)

	if flow.Current == component.StateInGame {
		steps := g.clock.Advance(elapsed)
		ran := 0
		for ; ran < steps && !flow.Requested; ran++ {
			g.fixed.Update(g.world)
		}
		g.metrics.Ticks(ran)
		g.post.Update(g.world)
		g.metrics.Entities(ecs.Count(g.world))
	} else if s := g.screens[flow.Current]; s != nil {
		s.Update()
	}

	g.applyTransition(flow)
	return nil
}

// applyTransition runs the exit hook of the current state, switches, and
// runs the enter hook of the next.
func (g *Game) applyTransition(flow *component.GameFlow) {
	if !flow.Requested {
		return
	}
	from, to := flow.Current, flow.Next
	flow.Requested = false
	if from == to {
		return
	}

	if from == component.StateInGame {
		g.level.Cleanup(g.world)
	}
	flow.Current = to
	if to == component.StateInGame {
		g.last = time.Time{}
		g.clock = ecs.NewClock(g.cfg.Simulation.TPS)
	}

	g.metrics.Transition(from.String(), to.String())
	g.logger.Info("game state", zap.Stringer("from", from), zap.Stringer("to", to))
}

func (g *Game) Draw(screen *ebiten.Image) {
	flow := g.flow()
	if flow.Current == component.StateInGame {
		if g.lastFrame == nil {
			g.lastFrame = ebiten.NewImage(g.cfg.Window.Width, g.cfg.Window.Height)
		}
		g.lastFrame.Fill(common.BackgroundColor)
		g.render.Draw(g.world, g.lastFrame)
		screen.DrawImage(g.lastFrame, nil)

		if g.cfg.Debug.Physics {
			view, _ := system.CurrentView(g.world, float64(g.cfg.Window.Width), float64(g.cfg.Window.Height))
			system.DrawPhysicsDebug(g.physics.Space(), view, screen)
			system.DrawPlayerStateDebug(g.world, screen, g.clock.Ticks())
		}
		return
	}

	screen.Fill(common.BackgroundColor)
	if g.lastFrame != nil {
		screen.DrawImage(g.lastFrame, nil)
	}
	if s := g.screens[flow.Current]; s != nil {
		s.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// registerImages uploads freshly decoded level textures. It runs on the game
// loop, where creating GPU images is allowed.
func (g *Game) registerImages(a *levels.Assets) {
	for key, img := range a.Images {
		render.RegisterImage(key, ebiten.NewImageFromImage(img))
	}
	g.logger.Debug("textures registered", zap.Int("count", len(a.Images)))
}

func (g *Game) startWatcher() {
	var dirs []string
	for _, dir := range []string{"prefabs", "levels"} {
		if abs, err := filepath.Abs(dir); err == nil {
			dirs = append(dirs, abs)
		}
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		g.logger.Warn("hot reload disabled", zap.Strings("dirs", dirs), zap.Error(err))
		return
	}
	g.watcher = w
	g.logger.Info("hot reload enabled", zap.Strings("dirs", dirs))
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("watcher error", zap.Error(err))
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	name := filepath.Base(path)
	switch {
	case prefabs.IsSpecFile(path):
		prefabs.Invalidate(name)
		g.logger.Info("prefab reloaded", zap.String("prefab", name))
	case prefabs.IsLevelFile(path):
		if name != filepath.Base(g.cfg.Game.Level) {
			return
		}
		lvl, err := levels.Load(name)
		if err != nil {
			g.logger.Warn("level reload rejected", zap.String("level", name), zap.Error(err))
			return
		}
		g.level.ReplaceLevel(lvl)
	}
}

// Close releases the watcher.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
