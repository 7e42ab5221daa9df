package component

// RenderLayer orders drawing: lower Z is drawn first.
type RenderLayer struct {
	Z float64
}

var RenderLayerComponent = NewComponent[RenderLayer]()

// Z bands used by the spawners. Background sections occupy 0..BGMax.
const (
	ZLevelBase     = 9
	ZGrappleMarker = ZLevelBase + 1
	ZGuideline     = ZLevelBase + 2
)
