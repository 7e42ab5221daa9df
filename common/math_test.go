package common

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -1, 0, 10, 0},
		{"above", 11, 0, 10, 10},
		{"edge", 10, 0, 10, 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Clamp(c.v, c.lo, c.hi))
		})
	}
}

func TestWithLightness(t *testing.T) {
	t.Run("grey_stays_grey", func(t *testing.T) {
		got := WithLightness(color.NRGBA{R: 10, G: 10, B: 10, A: 255}, 0.5)
		assert.Equal(t, got.R, got.G)
		assert.Equal(t, got.G, got.B)
		assert.InDelta(t, 128, float64(got.R), 1)
	})
	t.Run("keeps_hue_order", func(t *testing.T) {
		got := WithLightness(BackgroundColor, 0.42)
		// The background is green-tinted: G > B > R.
		assert.Greater(t, got.G, got.B)
		assert.Greater(t, got.B, got.R)
	})
	t.Run("white_and_black", func(t *testing.T) {
		assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, WithLightness(BackgroundColor, 1))
		assert.Equal(t, color.NRGBA{A: 255}, WithLightness(BackgroundColor, 0))
	})
}
