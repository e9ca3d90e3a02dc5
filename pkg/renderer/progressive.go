package renderer

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/pgadula/raytracing/pkg/core"
	"github.com/pgadula/raytracing/pkg/integrator"
	"github.com/pgadula/raytracing/pkg/scene"
)

// DefaultTileSize is the edge length of a render tile in pixels
const DefaultTileSize = 32

// FrameConfig contains configuration for frame rendering
type FrameConfig struct {
	TileSize   int   // Size of each tile (32x32 recommended)
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed; tile samplers use Seed + tile ID
	MaxFrames  int   // Frames rendered by RenderProgressive
}

// DefaultFrameConfig returns sensible default values
func DefaultFrameConfig() FrameConfig {
	return FrameConfig{
		TileSize:   DefaultTileSize,
		NumWorkers: 0,
		Seed:       42,
		MaxFrames:  10,
	}
}

// FrameRenderer renders frames of a scene into an accumulation buffer. Each
// frame shades every pixel once and adds the result to the previous frames,
// so the image brightens as frames accumulate.
//
// A FrameRenderer is not safe for concurrent use; run at most one frame at a time.
type FrameRenderer struct {
	scene      *scene.Scene
	width      int
	height     int
	config     FrameConfig
	tiles      []*Tile
	buffer     *Buffer
	frame      int
	workerPool *WorkerPool
	logger     core.Logger
	running    sync.WaitGroup // RenderProgressive goroutines
}

// NewFrameRenderer creates a renderer for s at its configured resolution
func NewFrameRenderer(s *scene.Scene, config FrameConfig, logger core.Logger) (*FrameRenderer, error) {
	if s == nil {
		return nil, fmt.Errorf("renderer: nil scene")
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	if config.MaxFrames <= 0 {
		config.MaxFrames = 1
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	width, height := s.Render.Width, s.Render.Height
	tiles := NewTileGrid(width, height, config.TileSize, config.Seed)

	return &FrameRenderer{
		scene:      s,
		width:      width,
		height:     height,
		config:     config,
		tiles:      tiles,
		buffer:     NewBuffer(width, height),
		workerPool: NewWorkerPool(config.NumWorkers, len(tiles)),
		logger:     logger,
	}, nil
}

// Frame returns the number of frames accumulated since the last Reset
func (fr *FrameRenderer) Frame() int {
	return fr.frame
}

// Buffer exposes the accumulation buffer
func (fr *FrameRenderer) Buffer() *Buffer {
	return fr.buffer
}

// NumWorkers returns the size of the worker pool
func (fr *FrameRenderer) NumWorkers() int {
	return fr.workerPool.GetNumWorkers()
}

// Reset clears the accumulated image and restarts every tile's random
// sequence, so the next frame matches a freshly created renderer.
func (fr *FrameRenderer) Reset() {
	fr.buffer.Reset()
	for _, tile := range fr.tiles {
		tile.Reseed(fr.config.Seed)
	}
	fr.frame = 0
}

// Close waits for any progressive render to stop, then stops the worker
// pool. The renderer cannot be used afterwards.
func (fr *FrameRenderer) Close() {
	fr.running.Wait()
	fr.workerPool.Stop()
}

// shader builds the per-frame pixel shader. The pointer only changes which
// objects are traced; the scene itself is never modified.
func (fr *FrameRenderer) shader(pointer *core.Vec2) *PixelShader {
	objects := fr.scene.ObjectsFor(pointer, fr.scene.Viewport())
	tracer := integrator.NewTracer(objects, fr.scene.Render.Miss)
	return NewPixelShader(fr.scene.Camera, tracer, ShaderConfig{
		MaxDepth:        fr.scene.Render.MaxDepth,
		SamplesPerPixel: fr.scene.Render.SamplesPerPixel,
		Intensity:       fr.scene.Render.Intensity,
	})
}

// RenderFrame shades every pixel once, adds the result to the accumulation
// buffer and returns the accumulated image
func (fr *FrameRenderer) RenderFrame(pointer *core.Vec2) (*image.RGBA, FrameStats, error) {
	startTime := time.Now()
	fr.workerPool.Start()

	pass := &framePass{
		shader:   fr.shader(pointer),
		buffer:   fr.buffer,
		viewport: fr.scene.Viewport(),
	}
	frame := fr.frame + 1

	for taskID, tile := range fr.tiles {
		fr.workerPool.SubmitTask(TileTask{
			Tile:   tile,
			Frame:  frame,
			TaskID: taskID,
			pass:   pass,
		})
	}

	stats := FrameStats{
		Frame:   frame,
		Tiles:   len(fr.tiles),
		Workers: fr.workerPool.GetNumWorkers(),
	}
	for i := 0; i < len(fr.tiles); i++ {
		result, ok := fr.workerPool.GetResult()
		if !ok {
			return nil, FrameStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			return nil, FrameStats{}, result.Error
		}

		fr.tiles[result.TaskID].FramesCompleted++
		stats.TotalPixels += result.Pixels
		stats.TotalSamples += result.Samples
		fr.logger.Debugf("Frame %d: tile %d/%d done (%d pixels)", frame, i+1, len(fr.tiles), result.Pixels)
	}

	fr.frame = frame
	img := fr.buffer.Image()
	stats.Duration = time.Since(startTime)

	fr.logger.Infof("Frame %d completed in %v (%d samples, %d workers)",
		frame, stats.Duration, stats.TotalSamples, stats.Workers)
	return img, stats, nil
}

// FrameResult contains the result of a single frame
type FrameResult struct {
	Frame  int
	Image  *image.RGBA
	Stats  FrameStats
	IsLast bool
}

// RenderOptions configures progressive rendering behavior
type RenderOptions struct {
	MaxFrames int        // Frames to render; 0 uses the renderer's MaxFrames
	Pointer   *core.Vec2 // Optional pointer position applied to every frame
}

// RenderProgressive renders frames in a goroutine and streams them on the
// returned channel. The frame channel is closed when rendering ends; a
// cancelled context or a frame failure is reported on the error channel,
// which is closed afterwards. Cancellation is checked between frames.
func (fr *FrameRenderer) RenderProgressive(ctx context.Context, options RenderOptions) (<-chan FrameResult, <-chan error) {
	frameChan := make(chan FrameResult, 1)
	errChan := make(chan error, 1)

	maxFrames := options.MaxFrames
	if maxFrames <= 0 {
		maxFrames = fr.config.MaxFrames
	}

	fr.running.Add(1)
	go func() {
		defer fr.running.Done()
		defer close(frameChan)
		defer close(errChan)

		fr.logger.Infof("Starting progressive rendering of %q with %d frames", fr.scene.Name, maxFrames)

		for i := 1; i <= maxFrames; i++ {
			// Check if client disconnected before starting this frame
			select {
			case <-ctx.Done():
				fr.logger.Warningf("Rendering cancelled before frame %d", i)
				errChan <- ctx.Err()
				return
			default:
			}

			img, stats, err := fr.RenderFrame(options.Pointer)
			if err != nil {
				errChan <- err
				return
			}

			result := FrameResult{
				Frame:  stats.Frame,
				Image:  img,
				Stats:  stats,
				IsLast: i == maxFrames,
			}

			select {
			case frameChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return frameChan, errChan
}
