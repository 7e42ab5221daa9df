package component

type GrappleState int

const (
	GrappleIdle GrappleState = iota
	GrappleAiming
	GrappleGrappling
)

func (s GrappleState) String() string {
	switch s {
	case GrappleAiming:
		return "aiming"
	case GrappleGrappling:
		return "grappling"
	default:
		return "idle"
	}
}

// GrappleTarget is the point the player aimed at. Attached and Marker hold
// ecs.Entity values.
type GrappleTarget struct {
	X        float64
	Y        float64
	Attached uint64
	Marker   uint64
}

// Grapple lives on the player. Grappling implies Target != nil.
type Grapple struct {
	State     GrappleState
	Target    *GrappleTarget
	Guideline []uint64

	// PullStrength is the translation per tick while grappling.
	PullStrength      float64
	GuidelineDistance float64
}

var GrappleComponent = NewComponent[Grapple]()

// Grappling reports whether the player is being pulled toward a target.
func (g *Grapple) Grappling() bool {
	return g.State == GrappleGrappling && g.Target != nil
}
