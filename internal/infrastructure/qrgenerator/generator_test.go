package qrgenerator_test

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xausdorf/khqr-offline/internal/domain/qrcode"
	"github.com/Xausdorf/khqr-offline/internal/infrastructure/qrgenerator"
)

const payload = "00020101021229430012khqr@ababank0111855122334550208ABA Bank520459995303840540310.05802KH5911Coffee Shop6010Phnom Penh6304ABCD"

func TestGenerator_Render_Deterministic(t *testing.T) {
	g := qrgenerator.NewGenerator(qrgenerator.DefaultScale)

	first, err := g.Render(payload)
	require.NoError(t, err)
	second, err := g.Render(payload)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second))
}

func TestGenerator_Render_ScalesModules(t *testing.T) {
	small, err := qrgenerator.NewGenerator(1).Render(payload)
	require.NoError(t, err)
	large, err := qrgenerator.NewGenerator(10).Render(payload)
	require.NoError(t, err)

	smallImg, err := png.Decode(bytes.NewReader(small))
	require.NoError(t, err)
	largeImg, err := png.Decode(bytes.NewReader(large))
	require.NoError(t, err)

	assert.Equal(t, smallImg.Bounds().Dx()*10, largeImg.Bounds().Dx())
	assert.Equal(t, largeImg.Bounds().Dx(), largeImg.Bounds().Dy())

	// every source pixel maps onto a solid 10x10 block
	for y := 0; y < smallImg.Bounds().Dy(); y += 7 {
		for x := 0; x < smallImg.Bounds().Dx(); x += 7 {
			want := gray(smallImg.At(x, y))
			for dy := 0; dy < 10; dy += 9 {
				for dx := 0; dx < 10; dx += 9 {
					require.Equal(t, want, gray(largeImg.At(x*10+dx, y*10+dy)))
				}
			}
		}
	}
}

func TestGenerator_Render_Empty(t *testing.T) {
	img, err := qrgenerator.NewGenerator(0).Render("")

	require.ErrorIs(t, err, qrcode.ErrEmptyContent)
	assert.Nil(t, img)
}

func gray(c color.Color) uint32 {
	r, _, _, _ := c.RGBA()
	return r
}
