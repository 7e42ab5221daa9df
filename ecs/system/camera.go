package system

import (
	"math"

	"go.uber.org/zap"

	"github.com/gavinmorrow/Pollywog/common"
	"github.com/gavinmorrow/Pollywog/ecs"
	"github.com/gavinmorrow/Pollywog/ecs/component"
)

// CameraFollowSystem eases the camera toward the player with a dead zone and
// a per-axis speed cap.
type CameraFollowSystem struct {
	logger *zap.Logger
}

func NewCameraFollowSystem(logger *zap.Logger) *CameraFollowSystem {
	return &CameraFollowSystem{logger: orNop(logger)}
}

func (s *CameraFollowSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := firstPlayer(w)
	if !ok {
		s.logger.Debug("no player")
		return
	}
	pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	ecs.ForEach2(w, component.CameraComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, cam *component.Camera, ct *component.Transform) {
			ct.X -= followStep(ct.X, pt.X, cam.Divisor, cam.DeadZone, cam.MaxSpeedX)
			ct.Y -= followStep(ct.Y, pt.Y, cam.Divisor, cam.DeadZone, cam.MaxSpeedY)
		})
}

// followStep returns how far the camera moves toward target on one axis,
// signed so that cam - step approaches target.
func followStep(cam, target, divisor, deadZone, maxSpeed float64) float64 {
	if divisor <= 0 {
		divisor = 1
	}
	delta := (cam - target) / divisor
	if math.Abs(delta) < deadZone {
		return 0
	}
	if maxSpeed > 0 {
		delta = common.Clamp(delta, -maxSpeed, maxSpeed)
	}
	return delta
}

// ParallaxSystem offsets each background layer by the camera position scaled
// by the layer's depth.
type ParallaxSystem struct{}

func NewParallaxSystem() *ParallaxSystem {
	return &ParallaxSystem{}
}

func (s *ParallaxSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	camX := 0.0
	if cam, ok := ecs.First(w, component.CameraComponent.Kind()); ok {
		if t, ok := ecs.Get(w, cam, component.TransformComponent.Kind()); ok {
			camX = t.X
		}
	}
	ecs.ForEach2(w, component.BackgroundComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, bg *component.Background, t *component.Transform) {
			t.X, t.Y = ParallaxPosition(bg.Section.Info(), camX)
		})
}

// ParallaxPosition is the world position of a layer for a camera at camX.
func ParallaxPosition(info component.SectionInfo, camX float64) (x, y float64) {
	depth := float64(component.BGMax - info.Z)
	return -camX*depth/42 + info.Width/5, info.Height / 5
}

// AnimationSystem steps animated sprites and mirrors the player's facing.
// A player that is not animating rests on its first frame.
type AnimationSystem struct {
	dt float64
}

func NewAnimationSystem(dt float64) *AnimationSystem {
	if dt <= 0 {
		dt = 1.0 / ecs.DefaultTPS
	}
	return &AnimationSystem{dt: dt}
}

func (s *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.AnimatedSpriteComponent.Kind(), component.SpriteComponent.Kind(),
		func(e ecs.Entity, anim *component.AnimatedSprite, sprite *component.Sprite) {
			animating := true
			if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
				animating = p.Animating
				sprite.FlipX = p.Facing == component.Left
			}
			if !animating {
				anim.Index = anim.First
				anim.Timer = 0
			} else if anim.Interval > 0 {
				anim.Timer += s.dt
				for anim.Timer >= anim.Interval {
					anim.Timer -= anim.Interval
					anim.Index++
					if anim.Index > anim.Last {
						anim.Index = anim.First
					}
				}
			}
			sprite.Source = anim.Frame()
			sprite.UseSource = true
		})
}

// ScoreTextSystem mirrors the player's coin count into the HUD text.
type ScoreTextSystem struct{}

func NewScoreTextSystem() *ScoreTextSystem {
	return &ScoreTextSystem{}
}

func (s *ScoreTextSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	coins := 0
	if player, ok := firstPlayer(w); ok {
		if cc, ok := ecs.Get(w, player, component.CoinCollectorComponent.Kind()); ok {
			coins = cc.Coins
		}
	}
	ecs.ForEach(w, component.ScoreTextComponent.Kind(), func(_ ecs.Entity, st *component.ScoreText) {
		st.Set(coins)
	})
}
