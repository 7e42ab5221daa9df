package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"github.com/gavinmorrow/Pollywog/ecs"
	"github.com/gavinmorrow/Pollywog/ecs/component"
	"github.com/gavinmorrow/Pollywog/ecs/render"
)

const hudMargin = 10

// RenderSystem draws sprites in RenderLayer order through the camera view,
// then the HUD in screen space.
type RenderSystem struct {
	logger  *zap.Logger
	screenW float64
	screenH float64
	face    *text.GoXFace
	missing map[string]bool
	queue   []drawItem
}

type drawItem struct {
	e ecs.Entity
	z float64
	t *component.Transform
	s *component.Sprite
}

func NewRenderSystem(logger *zap.Logger, screenW, screenH float64) *RenderSystem {
	return &RenderSystem{
		logger:  orNop(logger),
		screenW: screenW,
		screenH: screenH,
		face:    text.NewGoXFace(basicfont.Face7x13),
		missing: map[string]bool{},
	}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	view, _ := CurrentView(w, r.screenW, r.screenH)

	r.queue = r.queue[:0]
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind(),
		func(e ecs.Entity, t *component.Transform, s *component.Sprite) {
			z := 0.0
			if rl, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
				z = rl.Z
			}
			r.queue = append(r.queue, drawItem{e: e, z: z, t: t, s: s})
		})
	sort.SliceStable(r.queue, func(i, j int) bool {
		if r.queue[i].z != r.queue[j].z {
			return r.queue[i].z < r.queue[j].z
		}
		return r.queue[i].e < r.queue[j].e
	})

	for _, it := range r.queue {
		r.drawSprite(screen, view, it.t, it.s)
	}

	r.drawHUD(w, screen)
}

func (r *RenderSystem) drawSprite(screen *ebiten.Image, view View, t *component.Transform, s *component.Sprite) {
	zoom := view.zoom()
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	dw := s.Width * sx * zoom
	dh := s.Height * sy * zoom
	cx, cy := view.WorldToScreen(t.X, t.Y)
	left, top := cx-dw/2, cy-dh/2

	if s.ImageKey == "" {
		if s.Fill != nil {
			vector.DrawFilledRect(screen, float32(left), float32(top), float32(dw), float32(dh), s.Fill, false)
		}
		return
	}

	img := r.image(s.ImageKey)
	if img == nil {
		return
	}
	if s.UseSource {
		if sub, ok := img.SubImage(s.Source).(*ebiten.Image); ok {
			img = sub
		}
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}
	if dw == 0 {
		dw = iw * zoom
		left = cx - dw/2
	}
	if dh == 0 {
		dh = ih * zoom
		top = cy - dh/2
	}

	op := &ebiten.DrawImageOptions{}
	if s.FlipX {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(iw, 0)
	}
	op.GeoM.Scale(dw/iw, dh/ih)
	op.GeoM.Translate(left, top)
	op.Filter = ebiten.FilterLinear
	if s.Tint != nil {
		op.ColorScale.ScaleWithColor(s.Tint)
	}
	screen.DrawImage(img, op)
}

// image resolves a key through the registry, loading it on first use.
// Keys that fail to load are reported once and then skipped.
func (r *RenderSystem) image(key string) *ebiten.Image {
	if img := render.GetImage(key); img != nil {
		return img
	}
	if r.missing[key] {
		return nil
	}
	img, err := render.LoadImage(key)
	if err != nil {
		r.missing[key] = true
		r.logger.Warn("sprite image unavailable", zap.String("key", key), zap.Error(err))
		return nil
	}
	return img
}

func (r *RenderSystem) drawHUD(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach(w, component.ScoreTextComponent.Kind(), func(_ ecs.Entity, st *component.ScoreText) {
		if st.RenderedText == "" {
			return
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(hudMargin, hudMargin)
		text.Draw(screen, st.RenderedText, r.face, op)
	})
}
