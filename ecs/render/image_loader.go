package render

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gavinmorrow/Pollywog/assets"
)

// LoadImage returns the cached texture for key, decoding and uploading it on
// a miss. GPU uploads are only legal on the game loop.
func LoadImage(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, errors.New("render: empty image key")
	}
	if img := GetImage(key); img != nil {
		return img, nil
	}
	src, err := DecodeImage(key)
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImageFromImage(src)
	RegisterImage(key, img)
	return img, nil
}

// DecodeImage prefers the embedded textures and falls back to an assets/
// directory next to the working directory, so edited sprites can be tried
// without a rebuild.
func DecodeImage(key string) (image.Image, error) {
	img, embedErr := assets.DecodeImage(key)
	if embedErr == nil {
		return img, nil
	}
	f, err := os.Open(filepath.Join("assets", filepath.FromSlash(key)))
	if err != nil {
		return nil, fmt.Errorf("render: texture %q: %w", key, embedErr)
	}
	defer f.Close()
	img, _, err = image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("render: decode %q: %w", key, err)
	}
	return img, nil
}
