package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/pgadula/raytracing/pkg/core"
)

// Buffer accumulates pixel colors across frames. Coordinates have their
// origin at the bottom-left; Image flips rows into top-left image space.
//
// Concurrent Set calls are safe as long as they touch different pixels.
type Buffer struct {
	width, height int
	pixels        []core.Vec4
}

// NewBuffer creates a zeroed buffer
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		width:  width,
		height: height,
		pixels: make([]core.Vec4, width*height),
	}
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// At returns the accumulated color at (x, y)
func (b *Buffer) At(x, y int) core.Vec4 {
	return b.pixels[y*b.width+x]
}

// Set replaces the color at (x, y)
func (b *Buffer) Set(x, y int, c core.Vec4) {
	b.pixels[y*b.width+x] = c
}

// Reset zeroes every pixel
func (b *Buffer) Reset() {
	clear(b.pixels)
}

// Image converts the buffer to 8-bit RGBA, clamping channels to [0,1]
func (b *Buffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		row := b.height - 1 - y
		for x := 0; x < b.width; x++ {
			img.SetRGBA(x, row, vec4ToColor(b.At(x, y)))
		}
	}
	return img
}

// vec4ToColor converts a normalized color to 8-bit channels.
// NaN channels become 0.
func vec4ToColor(c core.Vec4) color.RGBA {
	return color.RGBA{
		R: toByte(c.X),
		G: toByte(c.Y),
		B: toByte(c.Z),
		A: toByte(c.W),
	}
}

func toByte(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
