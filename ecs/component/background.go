package component

import "fmt"

// BGMax is the depth of the background layer closest to the camera.
const BGMax = 8

type Biome int

const (
	BiomeSwamp Biome = iota
)

func (b Biome) String() string {
	switch b {
	case BiomeSwamp:
		return "Swamp"
	default:
		return fmt.Sprintf("Biome(%d)", int(b))
	}
}

// ParseBiome maps a descriptor biome name to a Biome.
func ParseBiome(name string) (Biome, error) {
	switch name {
	case "Swamp":
		return BiomeSwamp, nil
	default:
		return 0, fmt.Errorf("component: unknown biome %q", name)
	}
}

type BackgroundSection int

const (
	SwampHills0 BackgroundSection = iota
	SwampHills1
	SwampHills2
	SwampIsland0
	SwampIsland1
	SwampIsland2
	SwampKelp0
	SwampKelp1
	SwampPond
)

// SectionInfo is the static data for one background section.
type SectionInfo struct {
	Name         string
	Texture      string
	Width        float64
	Height       float64
	Z            int
	Transparency float64
}

var sectionTable = [...]SectionInfo{
	SwampHills0:  {Name: "hills0", Texture: "swamp/hills0.png", Width: 2048, Height: 540, Z: 3, Transparency: 0.15},
	SwampHills1:  {Name: "hills1", Texture: "swamp/hills1.png", Width: 2048, Height: 540, Z: 2, Transparency: 0.15},
	SwampHills2:  {Name: "hills2", Texture: "swamp/hills2.png", Width: 2048, Height: 540, Z: 1, Transparency: 0.15},
	SwampIsland0: {Name: "island0", Texture: "swamp/island0.png", Width: 2048, Height: 540, Z: 6, Transparency: 0},
	SwampIsland1: {Name: "island1", Texture: "swamp/island1.png", Width: 2048, Height: 540, Z: 5, Transparency: 0.10},
	SwampIsland2: {Name: "island2", Texture: "swamp/island2.png", Width: 2048, Height: 540, Z: 4, Transparency: 0.10},
	SwampKelp0:   {Name: "kelp0", Texture: "swamp/kelp0.png", Width: 2048, Height: 540, Z: 7, Transparency: 0},
	SwampKelp1:   {Name: "kelp1", Texture: "swamp/kelp1.png", Width: 2048, Height: 540, Z: 8, Transparency: 0.15},
	SwampPond:    {Name: "pond", Texture: "swamp/pond.png", Width: 2048, Height: 540, Z: 0, Transparency: 0},
}

func (s BackgroundSection) Info() SectionInfo {
	if s < 0 || int(s) >= len(sectionTable) {
		return SectionInfo{}
	}
	return sectionTable[s]
}

func (s BackgroundSection) String() string {
	return s.Info().Name
}

// Sections lists the background sections of a biome in spawn order.
func (b Biome) Sections() []BackgroundSection {
	switch b {
	case BiomeSwamp:
		return []BackgroundSection{
			SwampHills0, SwampHills1, SwampHills2,
			SwampIsland0, SwampIsland1, SwampIsland2,
			SwampKelp0, SwampKelp1, SwampPond,
		}
	default:
		return nil
	}
}

// Background is one parallax layer.
type Background struct {
	Section BackgroundSection
}

var BackgroundComponent = NewComponent[Background]()
