package entity

import (
	"fmt"
	"image/color"

	"github.com/gavinmorrow/Pollywog/common"
	"github.com/gavinmorrow/Pollywog/ecs"
	"github.com/gavinmorrow/Pollywog/ecs/component"
)

// maxTransparency is the largest transparency in the section table.
const maxTransparency = 0.15

// NewBackground spawns one parallax layer. Its position is set by the
// parallax system every frame.
func NewBackground(w *ecs.World, section component.BackgroundSection) (ecs.Entity, error) {
	info := section.Info()
	if info.Texture == "" {
		return 0, fmt.Errorf("background: unknown section %d", int(section))
	}

	e := ecs.CreateEntity(w)
	add := func(err error) error {
		if err != nil {
			ecs.DestroyEntity(w, e)
			return fmt.Errorf("background %s: %w", info.Name, err)
		}
		return nil
	}

	if err := add(ecs.Add(w, e, component.BackgroundComponent.Kind(), &component.Background{Section: section})); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      info.Width / 5,
		Y:      info.Height / 5,
		ScaleX: 1,
		ScaleY: 1,
	})); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		ImageKey: info.Texture,
		Width:    info.Width,
		Height:   info.Height,
		Tint:     LayerTint(info.Transparency),
	})); err != nil {
		return 0, err
	}
	if err := add(ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Z: float64(info.Z)})); err != nil {
		return 0, err
	}
	if err := add(TagLevelEntity(w, e)); err != nil {
		return 0, err
	}
	return e, nil
}

// LayerTint maps a section transparency in [0, 0.15] to a tint of the clear
// colour with lightness in [0.1, 0.42]. Opaque layers get no tint.
func LayerTint(transparency float64) color.Color {
	if transparency <= 0 {
		return nil
	}
	t := common.Clamp(transparency, 0, maxTransparency) / maxTransparency
	return common.WithLightness(common.BackgroundColor, common.Lerp(0.1, 0.42, t))
}
