package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gavinmorrow/Pollywog/ecs"
	"github.com/gavinmorrow/Pollywog/ecs/component"
	"github.com/gavinmorrow/Pollywog/ecs/entity"
)

func TestFollowStep(t *testing.T) {
	tests := []struct {
		name     string
		cam      float64
		target   float64
		maxSpeed float64
		want     float64
	}{
		{name: "inside_dead_zone", cam: 0, target: 20, maxSpeed: 3, want: 0},
		{name: "proportional", cam: 0, target: 200, maxSpeed: 3, want: -2},
		{name: "clamped_forward", cam: 0, target: 1000, maxSpeed: 3, want: -3},
		{name: "clamped_backward", cam: 1000, target: 0, maxSpeed: 3, want: 3},
		{name: "y_clamp", cam: 0, target: 720, maxSpeed: 1, want: -1},
		{name: "uncapped", cam: 0, target: 1000, maxSpeed: 0, want: -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, followStep(tt.cam, tt.target, 100, 0.25, tt.maxSpeed), 1e-9)
		})
	}
}

func TestCameraFollowsPlayer(t *testing.T) {
	w := ecs.NewWorld()
	cam := spawnCamera(t, w, 0, 0)
	spawnPlayer(t, w, 1000, 720)
	ct := transform(t, w, cam)

	follow := NewCameraFollowSystem(nil)
	follow.Update(w)
	assert.InDelta(t, 3, ct.X, 1e-9)
	assert.InDelta(t, 1, ct.Y, 1e-9)

	for i := 0; i < 5000; i++ {
		follow.Update(w)
	}
	assert.InDelta(t, 1000, ct.X, 25.0001, "settles inside the dead zone")
	assert.InDelta(t, 720, ct.Y, 25.0001)
}

func TestParallax(t *testing.T) {
	near := component.SwampKelp0.Info()
	far := component.SwampHills2.Info()
	require.Greater(t, near.Z, far.Z)

	const camX = 1000.0
	nx, ny := ParallaxPosition(near, camX)
	fx, _ := ParallaxPosition(far, camX)

	ratio := (nx - near.Width/5) / (fx - far.Width/5)
	want := float64(component.BGMax-near.Z) / float64(component.BGMax-far.Z)
	assert.InDelta(t, want, ratio, 1e-9)
	assert.Equal(t, near.Height/5, ny)

	// The nearest layer (z == BGMax) does not move.
	top := component.SectionInfo{Width: 2048, Height: 540, Z: component.BGMax}
	x0, _ := ParallaxPosition(top, 0)
	x1, _ := ParallaxPosition(top, camX)
	assert.Equal(t, x0, x1)
}

func TestParallaxSystem(t *testing.T) {
	w := ecs.NewWorld()
	spawnCamera(t, w, 420, 0)
	bg, err := entity.NewBackground(w, component.SwampPond)
	require.NoError(t, err)

	NewParallaxSystem().Update(w)
	tr := transform(t, w, bg)
	wantX, wantY := ParallaxPosition(component.SwampPond.Info(), 420)
	assert.Equal(t, wantX, tr.X)
	assert.Equal(t, wantY, tr.Y)
}

func TestAnimation(t *testing.T) {
	const dt = 0.05
	w := ecs.NewWorld()
	player := spawnPlayer(t, w, 0, 0)
	p, ok := ecs.Get(w, player, component.PlayerComponent.Kind())
	require.True(t, ok)
	anim, ok := ecs.Get(w, player, component.AnimatedSpriteComponent.Kind())
	require.True(t, ok)
	sprite, ok := ecs.Get(w, player, component.SpriteComponent.Kind())
	require.True(t, ok)

	sys := NewAnimationSystem(dt)
	p.Animating = true
	p.Facing = component.Left
	for i := 0; i < 3; i++ {
		sys.Update(w)
	}
	assert.Equal(t, anim.First+3, anim.Index)
	assert.True(t, sprite.FlipX)
	assert.True(t, sprite.UseSource)
	assert.Equal(t, anim.Frame(), sprite.Source)

	for i := 0; i < anim.Last; i++ {
		sys.Update(w)
	}
	assert.GreaterOrEqual(t, anim.Index, anim.First)
	assert.LessOrEqual(t, anim.Index, anim.Last)

	p.Animating = false
	p.Facing = component.Right
	sys.Update(w)
	assert.Equal(t, anim.First, anim.Index)
	assert.False(t, sprite.FlipX)
}

func TestScoreText(t *testing.T) {
	w := ecs.NewWorld()
	player := spawnPlayer(t, w, 0, 0)
	text, err := entity.NewScoreText(w)
	require.NoError(t, err)
	st, ok := ecs.Get(w, text, component.ScoreTextComponent.Kind())
	require.True(t, ok)

	sys := NewScoreTextSystem()
	sys.Update(w)
	assert.Equal(t, "Coins: 0", st.RenderedText)

	cc, ok := ecs.Get(w, player, component.CoinCollectorComponent.Kind())
	require.True(t, ok)
	cc.Coins = 4
	sys.Update(w)
	assert.Equal(t, "Coins: 4", st.RenderedText)
}

func TestView(t *testing.T) {
	v := View{CamX: 100, CamY: 50, Zoom: 1, ScreenW: testScreenW, ScreenH: testScreenH}

	x, y := v.ScreenToWorld(testScreenW/2, testScreenH/2)
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 50.0, y)

	x, y = v.ScreenToWorld(testScreenW/2, 0)
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 50.0+testScreenH/2, y, "screen top is world up")

	sx, sy := v.WorldToScreen(x, y)
	assert.Equal(t, float64(testScreenW/2), sx)
	assert.Equal(t, 0.0, sy)

	tests := []struct {
		name   string
		origin cp.Vector
		dir    cp.Vector
		want   float64
	}{
		{name: "right", origin: cp.Vector{X: 100, Y: 50}, dir: cp.Vector{X: 1}, want: testScreenW / 2},
		{name: "down", origin: cp.Vector{X: 100, Y: 50}, dir: cp.Vector{Y: -1}, want: testScreenH / 2},
		{name: "offset_left", origin: cp.Vector{X: 0, Y: 50}, dir: cp.Vector{X: -5}, want: testScreenW/2 - 100},
		{name: "outside", origin: cp.Vector{X: 5000, Y: 50}, dir: cp.Vector{X: 1}, want: 0},
		{name: "zero_dir", origin: cp.Vector{X: 100, Y: 50}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, v.EdgeDistance(tt.origin, tt.dir), 1e-9)
		})
	}
}

func TestCurrentViewWithoutCamera(t *testing.T) {
	v, ok := CurrentView(ecs.NewWorld(), testScreenW, testScreenH)
	assert.False(t, ok)
	assert.Equal(t, 1.0, v.Zoom)
}
