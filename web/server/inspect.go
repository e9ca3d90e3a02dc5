package server

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/pgadula/raytracing/pkg/core"
	"github.com/pgadula/raytracing/pkg/integrator"
	"github.com/pgadula/raytracing/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit                bool       `json:"hit"`
	Object             string     `json:"object,omitempty"`
	GeometryType       string     `json:"geometryType,omitempty"`
	Index              int        `json:"index"` // Position in the traversal order, -1 on a miss
	Point              [3]float64 `json:"point"`
	Normal             [3]float64 `json:"normal"`
	Distance           float64    `json:"distance"`
	Emission           [3]float64 `json:"emission"`
	Reflectivity       [3]float64 `json:"reflectivity"`
	Roughness          float64    `json:"roughness"`
	ReflectionStrength float64    `json:"reflectionStrength"`
	Color              string     `json:"color,omitempty"` // Emission as #rrggbb
}

// handleInspect casts the primary ray through one pixel and describes the
// first object it reports a hit on. x and y use a top-left origin.
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()
	sceneObj, err := s.resolveScene(values.Get("scene"))
	if err != nil {
		return err
	}

	x, y, err := parsePixel(values, sceneObj.Render)
	if err != nil {
		return badRequest(err)
	}
	pointer, err := parsePointer(values)
	if err != nil {
		return badRequest(err)
	}

	return c.JSON(http.StatusOK, inspectPixel(sceneObj, pointer, x, y))
}

func parsePixel(values url.Values, cfg scene.RenderConfig) (int, int, error) {
	if values.Get("x") == "" || values.Get("y") == "" {
		return 0, 0, fmt.Errorf("x and y are required")
	}
	x, err := parseIntParam(values, "x", 0, 0, cfg.Width-1)
	if err != nil {
		return 0, 0, err
	}
	y, err := parseIntParam(values, "y", 0, 0, cfg.Height-1)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// inspectPixel traces the pixel's primary ray with a fixed seed so repeated
// inspections of rough surfaces agree
func inspectPixel(sceneObj *scene.Scene, pointer *core.Vec2, x, y int) InspectResponse {
	viewport := sceneObj.Viewport()
	coord := core.NewVec2(float64(x), viewport.Y-1-float64(y))
	objects := sceneObj.ObjectsFor(toBottomLeft(pointer, viewport), viewport)

	tracer := integrator.NewTracer(objects, sceneObj.Render.Miss)
	ray := sceneObj.Camera.GetRay(coord, viewport)
	obj, hit, ok := tracer.FirstHit(ray, core.NewSeededSampler(0))
	if !ok {
		return InspectResponse{Index: -1}
	}

	index := -1
	for i, o := range objects {
		if o == obj {
			index = i
			break
		}
	}

	surface := obj.Material()
	return InspectResponse{
		Hit:                true,
		Object:             surface.Name,
		GeometryType:       obj.Kind().String(),
		Index:              index,
		Point:              vecArray(hit.Point),
		Normal:             vecArray(hit.Normal),
		Distance:           hit.T,
		Emission:           vecArray(surface.Emission),
		Reflectivity:       vecArray(surface.Reflectivity),
		Roughness:          surface.Roughness,
		ReflectionStrength: surface.ReflectionStrength,
		Color:              hexColor(surface.Emission),
	}
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	channel := func(v float64) int {
		return int(min(max(v, 0), 1)*255 + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c.X), channel(c.Y), channel(c.Z))
}
