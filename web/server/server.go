package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pgadula/raytracing/pkg/integrator"
	"github.com/pgadula/raytracing/pkg/log"
	"github.com/pgadula/raytracing/pkg/scene"
)

const (
	maxImageSize       = 2000
	maxSamplesPerPixel = 1024
	maxFrames          = 10000
	maxIntensity       = 100.0
	defaultFrames      = 10
)

// Server handles web requests for the progressive raytracer
type Server struct {
	echo      *echo.Echo
	port      int
	scenesDir string
	staticDir string
	logger    log.Logger
}

// NewServer creates a web server. Scene files are read from scenesDir and
// the browser client is served from staticDir.
func NewServer(port int, scenesDir, staticDir string) *Server {
	s := &Server{
		echo:      echo.New(),
		port:      port,
		scenesDir: scenesDir,
		staticDir: staticDir,
		logger:    log.New("web"),
	}
	s.echo.HideBanner = true
	s.routes()
	return s
}

func (s *Server) routes() {
	e := s.echo
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Debugf("%s %s -> %d (%v)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	if s.staticDir != "" {
		e.Static("/", s.staticDir)
	}

	api := e.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/scenes", s.handleScenes)
	api.GET("/scene-config", s.handleSceneConfig)
	api.GET("/render", s.handleRender)
	api.GET("/inspect", s.handleInspect)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on the configured port until Shutdown is called
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Noticef("starting web server on http://localhost%s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for open requests until ctx ends
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and file scenes. Broken scene files are logged
// and left out.
func (s *Server) handleScenes(c echo.Context) error {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		s.logger.Warningf("scene discovery: %v", err)
	}
	return c.JSON(http.StatusOK, response)
}

// handleSceneConfig returns the render defaults of a scene and the limits
// accepted by /api/render
func (s *Server) handleSceneConfig(c echo.Context) error {
	sceneObj, err := s.resolveScene(c.QueryParam("scene"))
	if err != nil {
		return err
	}

	cfg := sceneObj.Render
	return c.JSON(http.StatusOK, map[string]interface{}{
		"scene":       sceneObj.Name,
		"description": sceneObj.Description,
		"objects":     sceneObj.GetPrimitiveCount(),
		"pointer":     sceneObj.Pointer,
		"defaults": map[string]interface{}{
			"width":           cfg.Width,
			"height":          cfg.Height,
			"maxDepth":        cfg.MaxDepth,
			"samplesPerPixel": cfg.SamplesPerPixel,
			"intensity":       cfg.Intensity,
			"frames":          defaultFrames,
		},
		"limits": map[string]interface{}{
			"width":           map[string]int{"min": 1, "max": maxImageSize},
			"height":          map[string]int{"min": 1, "max": maxImageSize},
			"maxDepth":        map[string]int{"min": -1, "max": integrator.MaxDepth},
			"samplesPerPixel": map[string]int{"min": 1, "max": maxSamplesPerPixel},
			"frames":          map[string]int{"min": 1, "max": maxFrames},
			"intensity":       map[string]float64{"min": 0, "max": maxIntensity},
		},
	})
}

// resolveScene maps a scene ID to a scene, defaulting to the built-in
// default scene. Unknown IDs become 404 errors.
func (s *Server) resolveScene(id string) (*scene.Scene, error) {
	if id == "" {
		id = "default"
	}
	sceneObj, err := scene.Resolve(id, s.scenesDir)
	switch {
	case errors.Is(err, scene.ErrUnknownScene):
		return nil, echo.NewHTTPError(http.StatusNotFound, err.Error())
	case err != nil:
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return sceneObj, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if !(parsed >= min && parsed <= max) {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseOptionalFloat returns nil when key is absent
func parseOptionalFloat(values url.Values, key string) (*float64, error) {
	value := values.Get(key)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %s", key, value)
	}
	return &parsed, nil
}
