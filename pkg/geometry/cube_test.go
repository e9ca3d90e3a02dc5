package geometry

import (
	"math"
	"testing"

	"github.com/pgadula/raytracing/pkg/core"
)

func TestCube_Hit_AxisAligned(t *testing.T) {
	// Box spanning (-1,-1,-1) to (1,1,1)
	cube := NewCube(Surface{Position: core.NewVec3(-1, -1, -1)}, core.NewVec3(2, 2, 2))

	tests := []struct {
		name           string
		ray            core.Ray
		shouldHit      bool
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{
			name:           "Ray hits front face",
			ray:            core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1)),
			shouldHit:      true,
			expectedT:      2,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "Ray hits left face",
			ray:            core.NewRay(core.NewVec3(-3, 0, 0), core.NewVec3(1, 0, 0)),
			shouldHit:      true,
			expectedT:      2,
			expectedNormal: core.NewVec3(-1, 0, 0),
		},
		{
			name:           "Ray hits bottom face",
			ray:            core.NewRay(core.NewVec3(0.5, -4, 0.5), core.NewVec3(0, 1, 0)),
			shouldHit:      true,
			expectedT:      3,
			expectedNormal: core.NewVec3(0, -1, 0),
		},
		{
			name:      "Ray misses box",
			ray:       core.NewRay(core.NewVec3(0, 3, 3), core.NewVec3(0, 0, -1)),
			shouldHit: false,
		},
		{
			name:      "Box behind ray",
			ray:       core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
		{
			name:           "Ray inside box",
			ray:            core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)),
			shouldHit:      true,
			expectedT:      1,
			expectedNormal: core.NewVec3(1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := cube.Hit(tt.ray, newTestSampler())
			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got %t", tt.shouldHit, isHit)
			}
			if !isHit {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.Normal != tt.expectedNormal {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestCube_Hit_NegativeSize(t *testing.T) {
	// Size -1 on X spans x in [-1, 0] from a corner at x = 0
	negative := NewCube(Surface{Position: core.NewVec3(0, 0, -5)}, core.NewVec3(-1, 1, 1))
	positive := NewCube(Surface{Position: core.NewVec3(-1, 0, -5)}, core.NewVec3(1, 1, 1))

	ray := core.NewRay(core.NewVec3(-0.5, 0.5, 0), core.NewVec3(0, 0, -1))

	hit, isHit := negative.Hit(ray, newTestSampler())
	if !isHit {
		t.Fatal("Expected hit on box with negative x extent")
	}
	reference, _ := positive.Hit(ray, newTestSampler())
	if math.Abs(hit.T-reference.T) > 1e-12 || hit.Normal != reference.Normal {
		t.Errorf("Expected %+v, got %+v", reference, hit)
	}
	if math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("Expected t=4, got %f", hit.T)
	}

	lo, hi := negative.Bounds()
	if lo != core.NewVec3(-1, 0, -5) || hi != core.NewVec3(0, 1, -4) {
		t.Errorf("Unexpected bounds %v %v", lo, hi)
	}

	// Sideways ray crossing the x range
	side := core.NewRay(core.NewVec3(3, 0.5, -4.5), core.NewVec3(-1, 0, 0))
	hit, isHit = negative.Hit(side, newTestSampler())
	if !isHit || math.Abs(hit.T-3) > 1e-9 || hit.Normal != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected +X face at t=3, got hit=%t %+v", isHit, hit)
	}
}

func TestCube_Hit_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		cube *Cube
		ray  core.Ray
	}{
		{
			name: "zero extent",
			cube: NewCube(Surface{}, core.NewVec3(1, 0, 1)),
			ray:  core.NewRay(core.NewVec3(0.5, 5, 0.5), core.NewVec3(0, -1, 0)),
		},
		{
			name: "parallel outside slab",
			cube: NewCube(Surface{}, core.NewVec3(1, 1, 1)),
			ray:  core.NewRay(core.NewVec3(2, 0.5, 5), core.NewVec3(0, 0, -1)),
		},
		{
			name: "parallel on slab boundary plane with zero direction",
			cube: NewCube(Surface{}, core.NewVec3(1, 1, 1)),
			ray:  core.NewRay(core.NewVec3(5, 5, 5), core.NewVec3(0, 0, 0)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := tt.cube.Hit(tt.ray, newTestSampler())
			if isHit {
				t.Errorf("Expected miss, got %+v", hit)
			}
		})
	}
}

func TestCube_Hit_ParallelInsideSlab(t *testing.T) {
	// Ray runs along the x = 0 face plane; explicit slab handling keeps it finite
	cube := NewCube(Surface{}, core.NewVec3(1, 1, 1))
	ray := core.NewRay(core.NewVec3(0, 0.5, 5), core.NewVec3(0, 0, -1))

	hit, isHit := cube.Hit(ray, newTestSampler())
	if !isHit {
		t.Fatal("Expected hit along the boundary plane")
	}
	if !hit.Point.IsFinite() || math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("Unexpected hit %+v", hit)
	}
}

func TestCube_Hit_IgnoresRoughness(t *testing.T) {
	cube := NewCube(Surface{Position: core.NewVec3(-1, -1, -3), Roughness: 5}, core.NewVec3(2, 2, 1))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	for i := 0; i < 10; i++ {
		hit, isHit := cube.Hit(ray, newTestSampler())
		if !isHit || hit.Normal != core.NewVec3(0, 0, 1) {
			t.Fatalf("Expected unperturbed +Z normal, got %+v", hit)
		}
	}
}

func TestCube_Validate(t *testing.T) {
	if err := NewCube(Surface{}, core.NewVec3(-1, 1, 1)).Validate(); err != nil {
		t.Errorf("Negative extents are valid, got %v", err)
	}
	if err := NewCube(Surface{}, core.NewVec3(1, 0, 1)).Validate(); err == nil {
		t.Error("Expected error for zero extent")
	}
}

func TestObject_WithPositionCopies(t *testing.T) {
	objects := []Object{
		NewSphere(Surface{Name: "s"}, 1),
		NewPlane(Surface{Name: "p"}, core.NewVec3(0, 1, 0)),
		NewCube(Surface{Name: "c"}, core.NewVec3(1, 1, 1)),
	}

	for _, obj := range objects {
		moved := obj.WithPosition(core.NewVec3(1, 2, 3))
		if moved.Material().Position != core.NewVec3(1, 2, 3) {
			t.Errorf("%s: expected moved position, got %v", obj.Kind(), moved.Material().Position)
		}
		if obj.Material().Position != (core.Vec3{}) {
			t.Errorf("%s: original was modified", obj.Kind())
		}
		if moved.Kind() != obj.Kind() || moved.Material().Name != obj.Material().Name {
			t.Errorf("%s: copy lost its identity", obj.Kind())
		}
	}
}
