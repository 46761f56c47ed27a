package theme_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/stayparse/internal/entity"
	"github.com/joseph-ayodele/stayparse/internal/theme"
)

func solidPNG(t *testing.T, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 120, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 120; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFromImage(t *testing.T) {
	tests := []struct {
		name    string
		fill    color.NRGBA
		want    string
		wantSrc string
	}{
		{"dominant color", color.NRGBA{R: 200, G: 30, B: 60, A: 255}, "#C81E3C", entity.ColorSourceImage},
		{"too dark", color.NRGBA{R: 10, G: 10, B: 20, A: 255}, theme.DarkPalette.Primary, entity.ColorSourceDark},
		{"too light", color.NRGBA{R: 250, G: 250, B: 250, A: 255}, theme.LightPalette.Primary, entity.ColorSourceLight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, err := theme.FromImage(solidPNG(t, tt.fill), "image/png")
			require.NoError(t, err)
			assert.Equal(t, tt.want, tc.Primary)
			assert.Equal(t, tt.wantSrc, tc.Source)
			assert.NotEmpty(t, tc.Secondary)
			assert.NotEmpty(t, tc.Accent)
		})
	}
}

func TestFromImage_Garbage(t *testing.T) {
	_, err := theme.FromImage([]byte("not an image"), "image/png")
	assert.Error(t, err)
}

func TestFromTextHex(t *testing.T) {
	tc, ok := theme.FromTextHex("Palette: #FFD700, #000080 and #fff")
	require.True(t, ok)
	assert.Equal(t, "#FFD700", tc.Primary)
	assert.Equal(t, "#000080", tc.Secondary)
	assert.Equal(t, "#FFFFFF", tc.Accent)
	assert.Equal(t, entity.ColorSourceTextHex, tc.Source)

	_, ok = theme.FromTextHex("no colors here")
	assert.False(t, ok)
}

func TestFromTextNamed_LongestFirst(t *testing.T) {
	tc, ok := theme.FromTextNamed("Dress in ivory and rose gold")
	require.True(t, ok)
	assert.Equal(t, "#FFFFF0", tc.Primary)
	assert.Equal(t, "#B76E79", tc.Secondary)
	assert.Equal(t, entity.ColorSourceTextNamed, tc.Source)
}

func TestResolve_Precedence(t *testing.T) {
	mid := solidPNG(t, color.NRGBA{R: 200, G: 30, B: 60, A: 255})

	t.Run("hex beats image", func(t *testing.T) {
		tc := theme.Resolve("colors #123456", mid, "image/png")
		require.NotNil(t, tc)
		assert.Equal(t, entity.ColorSourceTextHex, tc.Source)
		assert.Equal(t, "#123456", tc.Primary)
	})
	t.Run("image beats named", func(t *testing.T) {
		tc := theme.Resolve("theme: navy blue", mid, "image/png")
		require.NotNil(t, tc)
		assert.Equal(t, entity.ColorSourceImage, tc.Source)
	})
	t.Run("named without image", func(t *testing.T) {
		tc := theme.Resolve("theme: navy blue", nil, "application/pdf")
		require.NotNil(t, tc)
		assert.Equal(t, "#000080", tc.Primary)
	})
	t.Run("nothing", func(t *testing.T) {
		assert.Nil(t, theme.Resolve("join us", nil, "application/pdf"))
	})
	t.Run("dark invite falls back", func(t *testing.T) {
		dark := solidPNG(t, color.NRGBA{R: 5, G: 5, B: 5, A: 255})
		tc := theme.Resolve("You are invited", dark, "image/png")
		require.NotNil(t, tc)
		assert.Equal(t, theme.DarkPalette, *tc)
	})
}
