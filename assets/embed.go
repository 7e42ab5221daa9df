package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.png swamp/*.png
var assetsFS embed.FS

// FS exposes the embedded textures read-only.
func FS() fs.FS {
	return assetsFS
}

// LoadFile reads an embedded texture. Keys may carry an assets/ prefix or be
// absolute paths into an assets directory.
func LoadFile(key string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(key))
}

// DecodeImage reads and decodes an embedded texture without touching the GPU.
func DecodeImage(key string) (image.Image, error) {
	b, err := LoadFile(key)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", key, err)
	}
	return img, nil
}

func cleanAssetPath(key string) string {
	if key == "" {
		return ""
	}
	s := filepath.ToSlash(key)
	if _, rest, ok := strings.Cut(s, "/assets/"); ok {
		return path.Clean(rest)
	}
	if path.IsAbs(s) {
		return path.Base(s)
	}
	return path.Clean(strings.TrimPrefix(s, "assets/"))
}
