package core

import (
	"math"
	"math/rand"
	"testing"
)

// sequenceSampler replays fixed 3D samples, cycling when exhausted
type sequenceSampler struct {
	samples []Vec3
	next    int
}

func (s *sequenceSampler) Get1D() float64 {
	return s.Get3D().X
}

func (s *sequenceSampler) Get3D() Vec3 {
	v := s.samples[s.next%len(s.samples)]
	s.next++
	return v
}

func TestRandomUnitVector_Hemisphere(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))
	normals := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(0, -1, 0),
		NewVec3(1, 1, 1).Normalize(),
	}

	for _, normal := range normals {
		for i := 0; i < 1000; i++ {
			v := RandomUnitVector(normal, sampler)

			if math.Abs(v.Length()-1) > 1e-9 {
				t.Fatalf("Expected unit vector, got length %f", v.Length())
			}
			if v.Dot(normal) < 0 {
				t.Fatalf("Vector %v is not on the side of normal %v", v, normal)
			}
		}
	}
}

func TestRandomUnitVector_FlipsOntoNormalSide(t *testing.T) {
	// Get3D sample (0,0,0) maps to (-1,-1,-1), which is behind +Z
	sampler := &sequenceSampler{samples: []Vec3{NewVec3(0, 0, 0)}}

	v := RandomUnitVector(NewVec3(0, 0, 1), sampler)
	expected := NewVec3(1, 1, 1).Normalize()

	if v.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, v)
	}
}

func TestRandomUnitVector_RedrawsDegenerateSamples(t *testing.T) {
	sampler := &sequenceSampler{samples: []Vec3{
		NewVec3(0.5, 0.5, 0.5), // zero vector
		NewVec3(1, 0.5, 0.5),   // tangent to +Z
		NewVec3(0.5, 0.5, 1),   // straight up
	}}

	v := RandomUnitVector(NewVec3(0, 0, 1), sampler)
	if v != NewVec3(0, 0, 1) {
		t.Errorf("Expected (0,0,1), got %v", v)
	}
	if sampler.next != 3 {
		t.Errorf("Expected 3 draws, got %d", sampler.next)
	}
}

func TestRandomUnitVector_FallsBackToNormal(t *testing.T) {
	sampler := &sequenceSampler{samples: []Vec3{NewVec3(0.5, 0.5, 0.5)}}

	v := RandomUnitVector(NewVec3(0, 2, 0), sampler)
	if v != NewVec3(0, 1, 0) {
		t.Errorf("Expected normalized normal, got %v", v)
	}
}

func TestSeededSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(7)
	b := NewSeededSampler(7)

	for i := 0; i < 10; i++ {
		if a.Get3D() != b.Get3D() {
			t.Fatal("Expected identical sequences for the same seed")
		}
	}
	if v := a.Get1D(); v < 0 || v >= 1 {
		t.Errorf("Get1D out of range: %f", v)
	}
}
