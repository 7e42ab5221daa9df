package entity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gavinmorrow/Pollywog/common"
	"github.com/gavinmorrow/Pollywog/ecs"
	"github.com/gavinmorrow/Pollywog/ecs/component"
	"github.com/gavinmorrow/Pollywog/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player":               addPlayer,
	"transform":            addTransform,
	"sprite":               addSprite,
	"animated_sprite":      addAnimatedSprite,
	"render_layer":         addRenderLayer,
	"collider":             addCollider,
	"character_controller": addCharacterController,
	"health":               addHealth,
	"coin_collector":       addCoinCollector,
	"grapple":              addGrapple,
	"action_state":         addActionState,
	"enemy":                addEnemy,
	"movement":             addMovement,
	"camera":               addCamera,
	"coin":                 addCoinTag,
	"block":                addBlockTag,
	"grapple_marker":       addGrappleMarkerTag,
	"guideline_dot":        addGuidelineDotTag,
	"score_text":           addScoreText,
}

// componentBuildOrder fixes the order for known components; anything else is
// added afterwards in name order.
var componentBuildOrder = []string{
	"player",
	"enemy",
	"coin",
	"block",
	"grapple_marker",
	"guideline_dot",
	"camera",
	"score_text",
	"transform",
	"sprite",
	"animated_sprite",
	"render_layer",
	"collider",
	"character_controller",
	"movement",
	"health",
	"coin_collector",
	"grapple",
	"action_state",
}

// BuildEntity creates an entity from a prefab file. On any failure the
// partially built entity is destroyed.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	build := func(name string, raw any) error {
		builder, ok := componentRegistry[name]
		if !ok {
			return fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, raw, ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		return nil
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := build(name, raw); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
		delete(remaining, name)
	}

	names := make([]string, 0, len(remaining))
	for name := range remaining {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := build(name, remaining[name]); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	return e, nil
}

// SetEntityTransform moves e, creating a unit-scale Transform if needed.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

// TagLevelEntity marks e for bulk despawn when the level is torn down.
func TagLevelEntity(w *ecs.World, e ecs.Entity) error {
	return ecs.Add(w, e, component.LevelEntityComponent.Kind(), &component.LevelEntity{})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	if spec.MoveSpeed == 0 {
		spec.MoveSpeed = common.MovementSpeed
	}
	if spec.JumpHeight == 0 {
		spec.JumpHeight = common.JumpHeight
	}
	if spec.JumpTimeToPeak == 0 {
		spec.JumpTimeToPeak = common.JumpTimeToPeak
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:      spec.MoveSpeed,
		JumpHeight:     spec.JumpHeight,
		JumpTimeToPeak: spec.JumpTimeToPeak,
		Facing:         component.Right,
	})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      spec.X,
		Y:      spec.Y,
		ScaleX: spec.ScaleX,
		ScaleY: spec.ScaleY,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

// addSprite records the image key only; the image itself is resolved by the
// renderer so prefabs can be built without a graphics context.
func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	if spec.Width < 0 || spec.Height < 0 {
		return fmt.Errorf("sprite size must not be negative")
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		ImageKey: spec.Image,
		Width:    spec.Width,
		Height:   spec.Height,
		FlipX:    spec.FlipX,
		Fill:     spec.Fill.Color,
	})
}

type animatedSpriteSpec = prefabs.AnimatedSpriteComponentSpec

func addAnimatedSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animatedSpriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animated sprite spec: %w", err)
	}
	if spec.FrameW <= 0 || spec.FrameH <= 0 || spec.Columns <= 0 {
		return fmt.Errorf("animated sprite needs positive frame size and columns")
	}
	if spec.Last < spec.First {
		return fmt.Errorf("animated sprite last frame %d before first %d", spec.Last, spec.First)
	}
	return ecs.Add(w, e, component.AnimatedSpriteComponent.Kind(), &component.AnimatedSprite{
		FrameW:   spec.FrameW,
		FrameH:   spec.FrameH,
		Columns:  spec.Columns,
		First:    spec.First,
		Last:     spec.Last,
		Index:    spec.First,
		Interval: spec.Interval,
	})
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Z: spec.Z})
}

type colliderSpec = prefabs.ColliderComponentSpec

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[colliderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}

	col := &component.Collider{
		Width:  spec.Width,
		Height: spec.Height,
		Radius: spec.Radius,
	}
	switch strings.ToLower(spec.Kind) {
	case "kinematic":
		col.Kind = component.BodyKinematic
	case "", "static":
		col.Kind = component.BodyStatic
	case "sensor":
		col.Kind = component.BodySensor
	default:
		return fmt.Errorf("unknown collider kind %q", spec.Kind)
	}
	switch strings.ToLower(spec.Shape) {
	case "", "box":
		col.Shape = component.ShapeBox
		if col.Width <= 0 || col.Height <= 0 {
			return fmt.Errorf("box collider needs positive width and height")
		}
	case "circle":
		col.Shape = component.ShapeCircle
		if col.Radius <= 0 {
			return fmt.Errorf("circle collider needs a positive radius")
		}
	default:
		return fmt.Errorf("unknown collider shape %q", spec.Shape)
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), col)
}

func addCharacterController(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CharacterControllerComponent.Kind(), &component.CharacterController{})
}

type healthSpec = prefabs.HealthComponentSpec

func addHealth(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[healthSpec](raw)
	if err != nil {
		return fmt.Errorf("decode health spec: %w", err)
	}
	if spec.Max == 0 {
		spec.Max = common.InitialHealth
	}
	return ecs.Add(w, e, component.HealthComponent.Kind(), component.FullHealth(spec.Max))
}

func addCoinCollector(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CoinCollectorComponent.Kind(), &component.CoinCollector{})
}

type grappleSpec = prefabs.GrappleComponentSpec

func addGrapple(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[grappleSpec](raw)
	if err != nil {
		return fmt.Errorf("decode grapple spec: %w", err)
	}
	if spec.PullStrength == 0 {
		spec.PullStrength = common.PullStrength
	}
	if spec.GuidelineDistance == 0 {
		spec.GuidelineDistance = common.GuidelineDistance
	}
	return ecs.Add(w, e, component.GrappleComponent.Kind(), &component.Grapple{
		State:             component.GrappleIdle,
		PullStrength:      spec.PullStrength,
		GuidelineDistance: spec.GuidelineDistance,
	})
}

func addActionState(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ActionStateComponent.Kind(), &component.ActionState{})
}

type enemySpec = prefabs.EnemyComponentSpec

func addEnemy(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[enemySpec](raw)
	if err != nil {
		return fmt.Errorf("decode enemy spec: %w", err)
	}
	if spec.Damage == 0 {
		spec.Damage = common.InitialHealth
	}
	return ecs.Add(w, e, component.EnemyComponent.Kind(), &component.Enemy{Damage: spec.Damage})
}

type movementSpec = prefabs.MovementComponentSpec

func addMovement(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[movementSpec](raw)
	if err != nil {
		return fmt.Errorf("decode movement spec: %w", err)
	}
	switch strings.ToLower(spec.Kind) {
	case "", "stationary":
		return ecs.Add(w, e, component.MovementComponent.Kind(), component.Stationary())
	case "patrol":
		if spec.Left == spec.Right {
			return fmt.Errorf("patrol bounds must differ")
		}
		return ecs.Add(w, e, component.MovementComponent.Kind(),
			component.PatrolBetween(spec.Left*common.Tile, spec.Right*common.Tile, spec.MinSpeed))
	default:
		return fmt.Errorf("unknown movement kind %q", spec.Kind)
	}
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Divisor == 0 {
		spec.Divisor = 100
	}
	if spec.Zoom == 0 {
		spec.Zoom = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Divisor:   spec.Divisor,
		DeadZone:  spec.DeadZone,
		MaxSpeedX: spec.MaxSpeedX,
		MaxSpeedY: spec.MaxSpeedY,
		Zoom:      spec.Zoom,
	})
}

func addCoinTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CoinComponent.Kind(), &component.Coin{})
}

func addBlockTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.BlockComponent.Kind(), &component.Block{})
}

func addGrappleMarkerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.GrappleMarkerComponent.Kind(), &component.GrappleMarker{})
}

func addGuidelineDotTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.GuidelineDotComponent.Kind(), &component.GuidelineDot{})
}

func addScoreText(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ScoreTextComponent.Kind(), &component.ScoreText{})
}
