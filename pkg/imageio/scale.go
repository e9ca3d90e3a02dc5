package imageio

import (
	"image"

	"golang.org/x/image/draw"
)

// Upscale enlarges img by an integer factor. Nearest neighbor keeps the hard
// pixel edges of a low resolution preview; smooth uses Catmull-Rom.
// A factor below 2 returns a copy at the original size.
func Upscale(img image.Image, factor int, smooth bool) *image.RGBA {
	b := img.Bounds()
	factor = max(factor, 1)
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))

	if factor == 1 {
		draw.Copy(dst, image.Point{}, img, b, draw.Src, nil)
		return dst
	}

	var scaler draw.Scaler = draw.NearestNeighbor
	if smooth {
		scaler = draw.CatmullRom
	}
	scaler.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
