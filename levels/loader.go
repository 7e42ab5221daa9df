package levels

import (
	"fmt"
	"image"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gavinmorrow/Pollywog/assets"
)

// ImageDecoder turns an asset key into a decoded image.
type ImageDecoder func(key string) (image.Image, error)

// Assets is everything a level needs before it can be constructed.
type Assets struct {
	Level  *Level
	Images map[string]image.Image
	Took   time.Duration
}

type loadResult struct {
	assets *Assets
	err    error
}

// Loader reads a level descriptor and decodes its textures on a background
// goroutine. The game loop polls it once per frame.
type Loader struct {
	logger  *zap.Logger
	decode  ImageDecoder
	extra   []string
	mu      sync.Mutex
	pending chan loadResult
}

// NewLoader returns a loader that decodes the biome's background sections
// plus the given entity textures. A nil decode reads the embedded assets.
func NewLoader(logger *zap.Logger, decode ImageDecoder, entityTextures ...string) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if decode == nil {
		decode = assets.DecodeImage
	}
	return &Loader{
		logger: logger,
		decode: decode,
		extra:  append([]string(nil), entityTextures...),
	}
}

// Start begins loading name. A load already in flight is abandoned.
func (l *Loader) Start(name string) {
	ch := make(chan loadResult, 1)
	l.mu.Lock()
	l.pending = ch
	l.mu.Unlock()

	l.logger.Debug("level load started", zap.String("level", name))
	go func() {
		started := time.Now()
		a, err := l.load(name)
		if a != nil {
			a.Took = time.Since(started)
		}
		ch <- loadResult{assets: a, err: err}
	}()
}

// Poll returns the finished load, if any. It never blocks.
func (l *Loader) Poll() (*Assets, bool, error) {
	l.mu.Lock()
	ch := l.pending
	l.mu.Unlock()
	if ch == nil {
		return nil, false, nil
	}
	select {
	case res := <-ch:
		l.mu.Lock()
		if l.pending == ch {
			l.pending = nil
		}
		l.mu.Unlock()
		return res.assets, true, res.err
	default:
		return nil, false, nil
	}
}

// Busy reports whether a load is in flight.
func (l *Loader) Busy() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending != nil
}

func (l *Loader) load(name string) (*Assets, error) {
	lvl, err := Load(name)
	if err != nil {
		return nil, err
	}
	biome, err := lvl.BiomeID()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}

	keys := append([]string(nil), l.extra...)
	for _, section := range biome.Sections() {
		keys = append(keys, section.Info().Texture)
	}

	images := make(map[string]image.Image, len(keys))
	for _, key := range keys {
		if _, ok := images[key]; ok {
			continue
		}
		img, err := l.decode(key)
		if err != nil {
			return nil, fmt.Errorf("level %q: load texture %q: %w", name, key, err)
		}
		images[key] = img
	}
	return &Assets{Level: lvl, Images: images}, nil
}
