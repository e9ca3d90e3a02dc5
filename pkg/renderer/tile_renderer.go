package renderer

import "github.com/pgadula/raytracing/pkg/core"

// renderTile shades every pixel of the task's tile into the shared buffer.
// Tiles never overlap, so workers write disjoint pixels.
func renderTile(task TileTask) TileResult {
	pass := task.pass
	bounds := task.Tile.Bounds
	result := TileResult{TaskID: task.TaskID}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			coord := core.NewVec2(float64(x), float64(y))
			color := pass.shader.Shade(pass.buffer.At(x, y), coord, pass.viewport, task.Tile.Sampler)
			pass.buffer.Set(x, y, color)
			result.Pixels++
		}
	}

	result.Samples = result.Pixels * pass.shader.SamplesPerPixel()
	return result
}
