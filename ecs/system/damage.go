package system

import (
	"go.uber.org/zap"

	"github.com/gavinmorrow/Pollywog/ecs"
	"github.com/gavinmorrow/Pollywog/ecs/component"
	"github.com/gavinmorrow/Pollywog/metrics"
)

// DamageSystem applies enemy contact damage to the player. Contacts are
// gathered from both sides since each kinematic body only reports what it
// ran into while moving; an enemy touching the player from either side
// deals its damage once per tick.
type DamageSystem struct {
	logger  *zap.Logger
	metrics *metrics.Recorder
}

func NewDamageSystem(logger *zap.Logger, rec *metrics.Recorder) *DamageSystem {
	return &DamageSystem{logger: orNop(logger), metrics: rec}
}

func (s *DamageSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := firstPlayer(w)
	if !ok {
		s.logger.Debug("no player")
		return
	}
	health, ok := ecs.Get(w, player, component.HealthComponent.Kind())
	if !ok {
		return
	}

	hits := make(map[ecs.Entity]float64)
	if ctrl, ok := ecs.Get(w, player, component.CharacterControllerComponent.Kind()); ok {
		for _, hit := range ctrl.Collisions {
			e := ecs.Entity(hit)
			if enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind()); ok {
				hits[e] = enemy.Damage
			}
		}
	}
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.CharacterControllerComponent.Kind(),
		func(e ecs.Entity, enemy *component.Enemy, ctrl *component.CharacterController) {
			if ctrl.Touched(uint64(player)) {
				hits[e] = enemy.Damage
			}
		})

	for enemy, amount := range hits {
		health.Damage(amount)
		s.metrics.Damaged()
		s.logger.Debug("player damaged",
			zap.Stringer("enemy", enemy),
			zap.Float64("amount", amount),
			zap.Float64("health", health.Current))
	}
}

// CoinPickupSystem collects every coin sensor the player overlaps.
type CoinPickupSystem struct {
	logger  *zap.Logger
	physics *PhysicsSystem
	metrics *metrics.Recorder
}

func NewCoinPickupSystem(logger *zap.Logger, physics *PhysicsSystem, rec *metrics.Recorder) *CoinPickupSystem {
	return &CoinPickupSystem{logger: orNop(logger), physics: physics, metrics: rec}
}

func (s *CoinPickupSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.CoinCollectorComponent.Kind(), func(collector ecs.Entity, cc *component.CoinCollector) {
		for _, hit := range s.physics.Intersections(collector) {
			if !ecs.Has(w, hit, component.CoinComponent.Kind()) {
				continue
			}
			if !ecs.DestroyEntity(w, hit) {
				continue
			}
			cc.Coins++
			s.metrics.CoinCollected()
			s.logger.Debug("coin collected", zap.Stringer("coin", hit), zap.Int("coins", cc.Coins))
		}
	})
}

// WinDeathSystem ends the run when the player reaches the goal or dies.
type WinDeathSystem struct {
	logger  *zap.Logger
	winX    float64
	metrics *metrics.Recorder
}

func NewWinDeathSystem(logger *zap.Logger, winX float64, rec *metrics.Recorder) *WinDeathSystem {
	return &WinDeathSystem{logger: orNop(logger), winX: winX, metrics: rec}
}

func (s *WinDeathSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := firstPlayer(w)
	if !ok {
		s.logger.Debug("no player")
		return
	}
	if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok && t.X >= s.winX {
		if RequestState(w, component.StateWin) {
			s.metrics.Outcome("win")
			s.logger.Info("player reached the goal", zap.Float64("x", t.X))
		}
		return
	}
	if h, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok && h.Dead() {
		if RequestState(w, component.StateDead) {
			s.metrics.Outcome("dead")
			s.logger.Info("player died")
		}
	}
}
