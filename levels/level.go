package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gavinmorrow/Pollywog/common"
	"github.com/gavinmorrow/Pollywog/ecs/component"
)

//go:embed *.level.json
var LevelsFS embed.FS

// DefaultLevel is loaded when no level is configured.
const DefaultLevel = "hello_world.level.json"

// ErrInvalidDescriptor wraps every parse or validation failure of a level
// descriptor.
var ErrInvalidDescriptor = errors.New("levels: invalid level descriptor")

type BlockKind string

const (
	BlockDirt  BlockKind = "Dirt"
	BlockEnemy BlockKind = "Enemy"
	BlockCoin  BlockKind = "Coin"
)

// BlockData is the tagged payload of a block. Left, Right and Stationary
// only apply to enemies; bounds are in tiles.
type BlockData struct {
	Type       BlockKind `json:"type"`
	Left       *float64  `json:"left,omitempty"`
	Right      *float64  `json:"right,omitempty"`
	Stationary bool      `json:"stationary,omitempty"`
}

type Block struct {
	Data     BlockData  `json:"data"`
	Position [2]float64 `json:"position"`
}

// WorldPosition returns the block's position scaled from tiles to world units.
func (b Block) WorldPosition() (x, y float64) {
	return b.Position[0] * common.Tile, b.Position[1] * common.Tile
}

// Level is a parsed level descriptor.
type Level struct {
	Name   string  `json:"name"`
	Biome  string  `json:"biome"`
	Blocks []Block `json:"blocks"`
}

// BiomeID returns the biome the descriptor names.
func (l *Level) BiomeID() (component.Biome, error) {
	return component.ParseBiome(l.Biome)
}

// Validate reports the first structural problem in the descriptor.
func (l *Level) Validate() error {
	if l == nil {
		return fmt.Errorf("%w: nil level", ErrInvalidDescriptor)
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDescriptor)
	}
	if _, err := l.BiomeID(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	for i, b := range l.Blocks {
		switch b.Data.Type {
		case BlockDirt, BlockCoin:
		case BlockEnemy:
			if b.Data.Left != nil && b.Data.Right != nil && *b.Data.Left >= *b.Data.Right {
				return fmt.Errorf("%w: block %d: patrol left %.1f must be below right %.1f",
					ErrInvalidDescriptor, i, *b.Data.Left, *b.Data.Right)
			}
		default:
			return fmt.Errorf("%w: block %d: unknown type %q", ErrInvalidDescriptor, i, b.Data.Type)
		}
	}
	return nil
}

// Parse decodes and validates a descriptor.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Load reads a descriptor, preferring a copy under ./levels on disk.
func Load(name string) (*Level, error) {
	data, err := readLevel(name)
	if err != nil {
		return nil, fmt.Errorf("read level %q: %w", name, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", name, err)
	}
	return lvl, nil
}

// LoadFromFS reads a descriptor from the embedded levels only.
func LoadFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, cleanLevelPath(name))
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

func readLevel(name string) ([]byte, error) {
	clean := cleanLevelPath(name)
	if filepath.IsAbs(name) {
		return os.ReadFile(name)
	}
	if data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return LevelsFS.ReadFile(clean)
}

func cleanLevelPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		return after
	}
	return s
}
