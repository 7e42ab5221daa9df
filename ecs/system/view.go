package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/gavinmorrow/Pollywog/ecs"
	"github.com/gavinmorrow/Pollywog/ecs/component"
)

// View maps between window pixels (y down, origin top-left) and world units
// (y up) for a camera centred on (CamX, CamY).
type View struct {
	CamX, CamY       float64
	Zoom             float64
	ScreenW, ScreenH float64
}

// CurrentView builds the view of the first camera in w.
func CurrentView(w *ecs.World, screenW, screenH float64) (View, bool) {
	v := View{Zoom: 1, ScreenW: screenW, ScreenH: screenH}
	cam, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return v, false
	}
	t, ok := ecs.Get(w, cam, component.TransformComponent.Kind())
	if !ok {
		return v, false
	}
	v.CamX, v.CamY = t.X, t.Y
	if c, ok := ecs.Get(w, cam, component.CameraComponent.Kind()); ok && c.Zoom > 0 {
		v.Zoom = c.Zoom
	}
	return v, true
}

func (v View) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

func (v View) ScreenToWorld(sx, sy float64) (x, y float64) {
	z := v.zoom()
	return v.CamX + (sx-v.ScreenW/2)/z, v.CamY - (sy-v.ScreenH/2)/z
}

func (v View) WorldToScreen(x, y float64) (sx, sy float64) {
	z := v.zoom()
	return (x-v.CamX)*z + v.ScreenW/2, v.ScreenH/2 - (y-v.CamY)*z
}

// EdgeDistance returns how far a ray from origin along dir travels before it
// leaves the visible world rectangle. Origins outside the view yield 0.
func (v View) EdgeDistance(origin, dir cp.Vector) float64 {
	if dir.LengthSq() == 0 {
		return 0
	}
	d := dir.Normalize()
	z := v.zoom()
	halfW, halfH := v.ScreenW/2/z, v.ScreenH/2/z
	minX, maxX := v.CamX-halfW, v.CamX+halfW
	minY, maxY := v.CamY-halfH, v.CamY+halfH
	if origin.X < minX || origin.X > maxX || origin.Y < minY || origin.Y > maxY {
		return 0
	}

	dist := math.Inf(1)
	if d.X > 0 {
		dist = math.Min(dist, (maxX-origin.X)/d.X)
	} else if d.X < 0 {
		dist = math.Min(dist, (minX-origin.X)/d.X)
	}
	if d.Y > 0 {
		dist = math.Min(dist, (maxY-origin.Y)/d.Y)
	} else if d.Y < 0 {
		dist = math.Min(dist, (minY-origin.Y)/d.Y)
	}
	return dist
}
