package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavinmorrow/Pollywog/common"
	"github.com/gavinmorrow/Pollywog/ecs"
	"github.com/gavinmorrow/Pollywog/ecs/component"
	"github.com/gavinmorrow/Pollywog/ecs/entity"
	"github.com/gavinmorrow/Pollywog/metrics"
)

func TestCoinPickup(t *testing.T) {
	w := ecs.NewWorld()
	coin, err := entity.NewCoinAt(w, 200, 0)
	require.NoError(t, err)
	player := spawnPlayer(t, w, 100, 0)
	ctrl := controller(t, w, player)

	rec := metrics.New("test")
	ps := NewPhysicsSystem(nil, 1.0/60)
	pickup := NewCoinPickupSystem(nil, ps, rec)

	cc, ok := ecs.Get(w, player, component.CoinCollectorComponent.Kind())
	require.True(t, ok)

	for i := 0; i < 20 && ecs.IsAlive(w, coin); i++ {
		ctrl.Translation = cp.Vector{X: common.MovementSpeed}
		ps.Update(w)
		pickup.Update(w)
	}

	assert.False(t, ecs.IsAlive(w, coin))
	assert.Equal(t, 1, cc.Coins)
	assert.Zero(t, ecs.CountOf(w, component.CoinComponent.Kind()))

	// The body is gone on the next sync, so the coin cannot be counted twice.
	ps.Update(w)
	pickup.Update(w)
	assert.Equal(t, 1, cc.Coins)
}

func TestEnemyContactKills(t *testing.T) {
	w := ecs.NewWorld()
	flow := newSession(t, w, component.StateInGame)
	player := spawnPlayer(t, w, 0, 100)
	enemy, err := entity.NewEnemyAt(w, 50, 100, component.Stationary())
	require.NoError(t, err)

	ctrl := controller(t, w, player)
	ctrl.Collisions = []uint64{uint64(enemy)}

	NewDamageSystem(nil, nil).Update(w)
	h, ok := ecs.Get(w, player, component.HealthComponent.Kind())
	require.True(t, ok)
	assert.Zero(t, h.Current)

	NewWinDeathSystem(nil, common.WinX, nil).Update(w)
	assert.True(t, flow.Requested)
	assert.Equal(t, component.StateDead, flow.Next)
}

func TestDamageDeduplicatesSources(t *testing.T) {
	tests := []struct {
		name       string
		fromPlayer bool
		fromEnemy  bool
		otherEnemy bool
		wantHealth float64
	}{
		{name: "player_side", fromPlayer: true, wantHealth: 60},
		{name: "enemy_side", fromEnemy: true, wantHealth: 60},
		{name: "both_sides_once", fromPlayer: true, fromEnemy: true, wantHealth: 60},
		{name: "two_enemies", fromPlayer: true, otherEnemy: true, wantHealth: 20},
		{name: "no_contact", wantHealth: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			player := spawnPlayer(t, w, 0, 100)
			enemy, err := entity.NewEnemyAt(w, 50, 100, component.Stationary())
			require.NoError(t, err)
			setDamage(t, w, enemy, 40)

			pc := controller(t, w, player)
			if tt.fromPlayer {
				pc.Collisions = append(pc.Collisions, uint64(enemy))
			}
			if tt.fromEnemy {
				ec := controller(t, w, enemy)
				ec.Collisions = append(ec.Collisions, uint64(player))
			}
			if tt.otherEnemy {
				other, err := entity.NewEnemyAt(w, -50, 100, component.Stationary())
				require.NoError(t, err)
				setDamage(t, w, other, 40)
				oc := controller(t, w, other)
				oc.Collisions = append(oc.Collisions, uint64(player))
			}

			rec := metrics.New("test")
			NewDamageSystem(nil, rec).Update(w)

			h, ok := ecs.Get(w, player, component.HealthComponent.Kind())
			require.True(t, ok)
			assert.Equal(t, tt.wantHealth, h.Current)
		})
	}
}

func TestHealthStaysInRange(t *testing.T) {
	h := component.FullHealth(100)
	h.Damage(-50)
	assert.Equal(t, 100.0, h.Current)
	h.Damage(250)
	assert.Equal(t, 0.0, h.Current)
	assert.True(t, h.Dead())
}

func TestWinDeath(t *testing.T) {
	tests := []struct {
		name      string
		x         float64
		health    float64
		wantState component.GameState
		wantReq   bool
	}{
		{name: "playing", x: 0, health: 100},
		{name: "at_goal", x: common.WinX, health: 100, wantState: component.StateWin, wantReq: true},
		{name: "dead", x: 0, health: 0, wantState: component.StateDead, wantReq: true},
		{name: "win_beats_death", x: common.WinX + 10, health: 0, wantState: component.StateWin, wantReq: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			flow := newSession(t, w, component.StateInGame)
			player := spawnPlayer(t, w, tt.x, 100)
			h, ok := ecs.Get(w, player, component.HealthComponent.Kind())
			require.True(t, ok)
			h.Current = tt.health

			NewWinDeathSystem(nil, common.WinX, metrics.New("test")).Update(w)
			assert.Equal(t, tt.wantReq, flow.Requested)
			if tt.wantReq {
				assert.Equal(t, tt.wantState, flow.Next)
			}
		})
	}
}

func TestFirstRequestWins(t *testing.T) {
	w := ecs.NewWorld()
	flow := newSession(t, w, component.StateInGame)
	require.True(t, RequestState(w, component.StateDead))
	require.True(t, RequestState(w, component.StateWin))
	assert.Equal(t, component.StateDead, flow.Next)

	assert.False(t, RequestState(ecs.NewWorld(), component.StateWin), "no session")
}

func setDamage(t *testing.T, w *ecs.World, e ecs.Entity, amount float64) {
	t.Helper()
	en, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
	require.True(t, ok)
	en.Damage = amount
}
