package geometry

import (
	"math"
	"testing"

	"github.com/pgadula/raytracing/pkg/core"
)

func TestCamera_GetRay(t *testing.T) {
	camera := NewCamera(core.NewVec3(0, 0, 0), 90, 1)
	viewport := core.NewVec2(101, 101)

	tests := []struct {
		name     string
		coord    core.Vec2
		expected core.Vec3
	}{
		{"center", core.NewVec2(50, 50), core.NewVec3(0, 0, -1)},
		{"bottom-left", core.NewVec2(0, 0), core.NewVec3(-1, -1, -1).Normalize()},
		{"top-right", core.NewVec2(100, 100), core.NewVec3(1, 1, -1).Normalize()},
		{"right edge", core.NewVec2(100, 50), core.NewVec3(1, 0, -1).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.coord, viewport)
			if ray.Origin != camera.Position {
				t.Errorf("Expected origin %v, got %v", camera.Position, ray.Origin)
			}
			if !vecNear(ray.Direction, tt.expected, 1e-12) {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
		})
	}
}

func TestCamera_GetRay_AspectAndFocalLength(t *testing.T) {
	// 2:1 viewport doubles the horizontal half extent; fov 60 gives tan(30deg)
	camera := NewCamera(core.NewVec3(1, 2, 3), 60, 0.5)
	ray := camera.GetRay(core.NewVec2(199, 0), core.NewVec2(200, 100))

	halfHeight := math.Tan(math.Pi / 6)
	expected := core.NewVec3(2*halfHeight, -halfHeight, -0.5).Normalize()
	if !vecNear(ray.Direction, expected, 1e-12) {
		t.Errorf("Expected direction %v, got %v", expected, ray.Direction)
	}
	if ray.Origin != core.NewVec3(1, 2, 3) {
		t.Errorf("Expected camera origin, got %v", ray.Origin)
	}
}

func TestCamera_GetRay_SinglePixel(t *testing.T) {
	camera := NewCamera(core.Vec3{}, 90, 1)
	ray := camera.GetRay(core.NewVec2(0, 0), core.NewVec2(1, 1))

	if !ray.Direction.IsFinite() || !vecNear(ray.Direction, core.NewVec3(0, 0, -1), 1e-12) {
		t.Errorf("Expected forward ray for a 1x1 viewport, got %v", ray.Direction)
	}
}

func TestCamera_Validate(t *testing.T) {
	tests := []struct {
		name    string
		camera  Camera
		wantErr bool
	}{
		{"valid", NewCamera(core.Vec3{}, 90, 1), false},
		{"zero fov", NewCamera(core.Vec3{}, 0, 1), true},
		{"fov 180", NewCamera(core.Vec3{}, 180, 1), true},
		{"zero focal length", NewCamera(core.Vec3{}, 90, 0), true},
		{"NaN position", NewCamera(core.NewVec3(math.NaN(), 0, 0), 90, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.camera.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
