package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pgadula/raytracing/pkg/core"
	"github.com/pgadula/raytracing/pkg/imageio"
	"github.com/pgadula/raytracing/pkg/integrator"
	"github.com/pgadula/raytracing/pkg/renderer"
	"github.com/pgadula/raytracing/pkg/scene"
)

// RenderRequest holds the validated parameters of /api/render
type RenderRequest struct {
	Scene  string
	Render scene.RenderConfig
	Frames int
	Seed   int64
	Format imageio.Format
	// Pointer is the pointer position in pixels with the origin at the
	// top-left, as reported by the browser
	Pointer *core.Vec2
}

// FrameUpdate is sent after every accumulated frame
type FrameUpdate struct {
	RenderID    string     `json:"renderId"`
	Frame       int        `json:"frame"`
	TotalFrames int        `json:"totalFrames"`
	MimeType    string     `json:"mimeType"`
	ImageData   string     `json:"imageData"` // Base64 encoded image
	Stats       FrameStats `json:"stats"`
	IsComplete  bool       `json:"isComplete"`
	ElapsedMs   int64      `json:"elapsedMs"`
}

// FrameStats is the JSON form of renderer.FrameStats
type FrameStats struct {
	Tiles            int     `json:"tiles"`
	Workers          int     `json:"workers"`
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
	DurationMs       int64   `json:"durationMs"`
	Luminance        float64 `json:"luminance"`
	PrimitiveCount   int     `json:"primitiveCount"`
}

// RenderComplete is the final event of a successful render
type RenderComplete struct {
	RenderID  string `json:"renderId"`
	Frames    int    `json:"frames"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// handleRender streams progressively accumulated frames as Server-Sent
// Events: "frame" per frame, "console" for log lines, then "complete" or
// "error". Invalid parameters are rejected before the stream starts.
func (s *Server) handleRender(c echo.Context) error {
	req, sceneObj, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		return err
	}

	renderID := uuid.New().String()
	consoleChan := make(chan ConsoleMessage, 50)
	logger := NewWebLogger(renderID, consoleChan, s.logger)

	cfg := renderer.DefaultFrameConfig()
	cfg.Seed = req.Seed
	cfg.MaxFrames = req.Frames
	fr, err := renderer.NewFrameRenderer(sceneObj, cfg, logger)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	defer fr.Close()

	setSSEHeaders(c.Response())
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Flush()

	// cancel runs before fr.Close so an abandoned render goroutine can exit
	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()
	startTime := time.Now()
	frames, errs := fr.RenderProgressive(ctx, renderer.RenderOptions{
		MaxFrames: req.Frames,
		Pointer:   toBottomLeft(req.Pointer, sceneObj.Viewport()),
	})

	rendered := 0
	for frames != nil || errs != nil {
		select {
		case msg := <-consoleChan:
			if err := writeEvent(c.Response(), "console", msg); err != nil {
				return nil
			}

		case result, ok := <-frames:
			if !ok {
				frames = nil
				continue
			}
			update, err := newFrameUpdate(renderID, req, sceneObj, result, startTime)
			if err != nil {
				writeEvent(c.Response(), "error", err.Error())
				return nil
			}
			if err := writeEvent(c.Response(), "frame", update); err != nil {
				return nil
			}
			rendered = result.Frame

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if ctx.Err() != nil {
				// Client disconnected
				return nil
			}
			writeEvent(c.Response(), "error", fmt.Sprintf("Rendering failed: %v", err))
			return nil

		case <-ctx.Done():
			return nil
		}
	}

	drainConsole(c.Response(), consoleChan)
	writeEvent(c.Response(), "complete", RenderComplete{
		RenderID:  renderID,
		Frames:    rendered,
		ElapsedMs: time.Since(startTime).Milliseconds(),
	})
	return nil
}

// parseRenderRequest resolves the scene and overlays the query parameters on
// its render settings
func (s *Server) parseRenderRequest(values url.Values) (*RenderRequest, *scene.Scene, error) {
	id := values.Get("scene")
	if id == "" {
		id = "default"
	}
	sceneObj, err := s.resolveScene(id)
	if err != nil {
		return nil, nil, err
	}

	req := &RenderRequest{Scene: id, Render: sceneObj.Render}
	cfg := &req.Render
	if cfg.Width, err = parseIntParam(values, "width", cfg.Width, 1, maxImageSize); err != nil {
		return nil, nil, badRequest(err)
	}
	if cfg.Height, err = parseIntParam(values, "height", cfg.Height, 1, maxImageSize); err != nil {
		return nil, nil, badRequest(err)
	}
	if cfg.MaxDepth, err = parseIntParam(values, "maxDepth", cfg.MaxDepth, -1, integrator.MaxDepth); err != nil {
		return nil, nil, badRequest(err)
	}
	if cfg.SamplesPerPixel, err = parseIntParam(values, "samplesPerPixel", cfg.SamplesPerPixel, 1, maxSamplesPerPixel); err != nil {
		return nil, nil, badRequest(err)
	}
	if cfg.Intensity, err = parseFloatParam(values, "intensity", cfg.Intensity, 0, maxIntensity); err != nil {
		return nil, nil, badRequest(err)
	}
	if req.Frames, err = parseIntParam(values, "frames", defaultFrames, 1, maxFrames); err != nil {
		return nil, nil, badRequest(err)
	}
	seed, err := parseIntParam(values, "seed", int(renderer.DefaultFrameConfig().Seed), 0, 1<<31-1)
	if err != nil {
		return nil, nil, badRequest(err)
	}
	req.Seed = int64(seed)
	if req.Format, err = imageio.ParseFormat(values.Get("format")); err != nil {
		return nil, nil, badRequest(err)
	}
	if req.Pointer, err = parsePointer(values); err != nil {
		return nil, nil, badRequest(err)
	}

	if cfg.Width*cfg.Height > 800*600 && cfg.SamplesPerPixel > 16 {
		s.logger.Warningf("large image with high samples may render slowly (%dx%d, %d spp)",
			cfg.Width, cfg.Height, cfg.SamplesPerPixel)
	}

	sceneObj, err = sceneObj.WithRender(req.Render)
	if err != nil {
		return nil, nil, badRequest(err)
	}
	return req, sceneObj, nil
}

// parsePointer reads pointerX and pointerY. Both or neither must be given.
func parsePointer(values url.Values) (*core.Vec2, error) {
	x, err := parseOptionalFloat(values, "pointerX")
	if err != nil {
		return nil, err
	}
	y, err := parseOptionalFloat(values, "pointerY")
	if err != nil {
		return nil, err
	}
	if x == nil && y == nil {
		return nil, nil
	}
	if x == nil || y == nil {
		return nil, fmt.Errorf("pointerX and pointerY must be given together")
	}
	p := core.NewVec2(*x, *y)
	if !p.IsFinite() {
		return nil, fmt.Errorf("pointer must be finite, got %v", p)
	}
	return &p, nil
}

// toBottomLeft flips a browser pointer position into the renderer's pixel
// coordinates
func toBottomLeft(p *core.Vec2, viewport core.Vec2) *core.Vec2 {
	if p == nil {
		return nil
	}
	flipped := core.NewVec2(p.X, viewport.Y-1-p.Y)
	return &flipped
}

func badRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}

func newFrameUpdate(renderID string, req *RenderRequest, sceneObj *scene.Scene, result renderer.FrameResult, startTime time.Time) (FrameUpdate, error) {
	imageData, err := encodeImage(result.Image, req.Format)
	if err != nil {
		return FrameUpdate{}, fmt.Errorf("failed to encode frame %d: %w", result.Frame, err)
	}

	stats := result.Stats
	return FrameUpdate{
		RenderID:    renderID,
		Frame:       result.Frame,
		TotalFrames: req.Frames,
		MimeType:    req.Format.MimeType(),
		ImageData:   imageData,
		Stats: FrameStats{
			Tiles:            stats.Tiles,
			Workers:          stats.Workers,
			TotalPixels:      stats.TotalPixels,
			TotalSamples:     stats.TotalSamples,
			SamplesPerSecond: stats.SamplesPerSecond(),
			DurationMs:       stats.Duration.Milliseconds(),
			Luminance:        renderer.CalculateAverageLuminance(result.Image),
			PrimitiveCount:   sceneObj.GetPrimitiveCount(),
		},
		IsComplete: result.IsLast,
		ElapsedMs:  time.Since(startTime).Milliseconds(),
	}, nil
}

// encodeImage converts an image to a base64 string in the requested format
func encodeImage(img image.Image, format imageio.Format) (string, error) {
	var buf bytes.Buffer
	if err := imageio.Encode(&buf, img, format); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w *echo.Response) {
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// writeEvent sends one SSE event. Strings are sent as is, anything else
// as JSON.
func writeEvent(w *echo.Response, event string, data interface{}) error {
	payload, ok := data.(string)
	if !ok {
		encoded, err := json.Marshal(data)
		if err != nil {
			return err
		}
		payload = string(encoded)
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	w.Flush()
	return nil
}

// drainConsole forwards messages still queued when rendering ends
func drainConsole(w *echo.Response, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			if writeEvent(w, "console", msg) != nil {
				return
			}
		default:
			return
		}
	}
}
