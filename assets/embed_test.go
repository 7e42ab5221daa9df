package assets

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanAssetPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "relative", in: "coin.png", want: "coin.png"},
		{name: "prefixed", in: "assets/swamp/pond.png", want: "swamp/pond.png"},
		{name: "absolute", in: "/home/me/game/assets/enemy.png", want: "enemy.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanAssetPath(tt.in))
		})
	}
}

func TestDecodeImage(t *testing.T) {
	img, err := DecodeImage("assets/swamp/pond.png")
	require.NoError(t, err)
	assert.Equal(t, 2048, img.Bounds().Dx())
	assert.Equal(t, 540, img.Bounds().Dy())

	sheet, err := DecodeImage("player_sheet.png")
	require.NoError(t, err)
	assert.Equal(t, 233*5, sheet.Bounds().Dx())
	assert.Equal(t, 373*2, sheet.Bounds().Dy())

	_, err = DecodeImage("missing.png")
	assert.Error(t, err)
}

func TestSwampSectionsEmbedded(t *testing.T) {
	matches, err := fs.Glob(FS(), "swamp/*.png")
	require.NoError(t, err)
	assert.Len(t, matches, 9)
}
