package renderer

import (
	"image"
	"time"
)

// FrameStats contains statistics about one rendered frame
type FrameStats struct {
	Frame        int           // 1-based frame number since the last Reset
	TotalPixels  int           // Pixels shaded this frame
	TotalSamples int           // Traces this frame
	Tiles        int           // Tiles rendered this frame
	Workers      int           // Size of the worker pool
	Duration     time.Duration // Wall time for the frame
}

// SamplesPerSecond returns the trace throughput of the frame
func (s FrameStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of img in [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 0xffff
		}
	}
	return total / float64(pixels)
}
