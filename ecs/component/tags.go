package component

// LevelEntity tags everything spawned for the active level so it can be
// despawned in one pass.
type LevelEntity struct{}

var LevelEntityComponent = NewComponent[LevelEntity]()

type Coin struct{}

var CoinComponent = NewComponent[Coin]()

type Block struct{}

var BlockComponent = NewComponent[Block]()

// GrappleMarker tags the dot drawn at the grapple target.
type GrappleMarker struct{}

var GrappleMarkerComponent = NewComponent[GrappleMarker]()

// GuidelineDot tags one dot of the aiming guideline.
type GuidelineDot struct{}

var GuidelineDotComponent = NewComponent[GuidelineDot]()
