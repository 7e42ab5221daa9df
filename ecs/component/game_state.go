package component

type GameState int

const (
	StateStartScreen GameState = iota
	StateInGame
	StateWin
	StateDead
)

func (s GameState) String() string {
	switch s {
	case StateStartScreen:
		return "start_screen"
	case StateInGame:
		return "in_game"
	case StateWin:
		return "win"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// GameFlow is the session singleton holding the active GameState. Systems
// ask for a change with Request; the game loop applies it between ticks.
type GameFlow struct {
	Current   GameState
	Next      GameState
	Requested bool
}

var GameFlowComponent = NewComponent[GameFlow]()

// Request asks for a transition. The first request in a tick wins.
func (f *GameFlow) Request(next GameState) {
	if f.Requested || next == f.Current {
		return
	}
	f.Next = next
	f.Requested = true
}

type LevelState int

const (
	LevelLoadingAssets LevelState = iota
	LevelConstructing
	LevelWaitingForStart
	LevelSpawningBlocks
	LevelLoaded
)

func (s LevelState) String() string {
	switch s {
	case LevelLoadingAssets:
		return "loading_assets"
	case LevelConstructing:
		return "constructing_level"
	case LevelWaitingForStart:
		return "waiting_for_level_start"
	case LevelSpawningBlocks:
		return "spawning_blocks"
	case LevelLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}
