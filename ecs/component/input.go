package component

// Action is a logical input bound to one or more keys.
type Action uint8

const (
	ActionLeft Action = 1 << iota
	ActionRight
	ActionJump
	ActionGrapple
)

func (a Action) String() string {
	switch a {
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionJump:
		return "jump"
	case ActionGrapple:
		return "grapple"
	default:
		return "actions"
	}
}

// Actions is a set of Action bits.
type Actions uint8

func (s Actions) Has(a Action) bool {
	return s&Actions(a) != 0
}

func (s Actions) With(a Action) Actions {
	return s | Actions(a)
}

// Any reports whether any action other than those in except is set.
func (s Actions) Any(except ...Action) bool {
	mask := s
	for _, a := range except {
		mask &^= Actions(a)
	}
	return mask != 0
}

// ActionState is the per-frame input sample for an entity. Cursor is in
// window pixels.
type ActionState struct {
	Pressed        Actions
	JustPressed    Actions
	JustReleased   Actions
	CursorX        float64
	CursorY        float64
	CursorInWindow bool
}

var ActionStateComponent = NewComponent[ActionState]()
