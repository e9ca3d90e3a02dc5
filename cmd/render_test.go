package cmd

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pgadula/raytracing/pkg/scene"
	"github.com/urfave/cli"
)

func newContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("render", flag.ContinueOnError)
	set.Int("width", 0, "")
	set.Int("height", 0, "")
	set.Int("depth", 0, "")
	set.Int("spp", 0, "")
	set.Float64("intensity", 0, "")
	set.Float64("pointer-x", 0, "")
	set.Float64("pointer-y", 0, "")
	if err := set.Parse(args); err != nil {
		t.Fatal(err)
	}
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestApplyRenderFlags(t *testing.T) {
	base, err := scene.NewDefaultScene()
	if err != nil {
		t.Fatal(err)
	}

	unchanged, err := applyRenderFlags(newContext(t), base)
	if err != nil {
		t.Fatal(err)
	}
	if unchanged != base {
		t.Error("Expected the scene to be reused when no flags are set")
	}

	ctx := newContext(t, "-width", "64", "-spp", "3", "-intensity", "0.5")
	got, err := applyRenderFlags(ctx, base)
	if err != nil {
		t.Fatal(err)
	}
	if got.Render.Width != 64 || got.Render.SamplesPerPixel != 3 || got.Render.Intensity != 0.5 {
		t.Errorf("Flags not applied: %+v", got.Render)
	}
	if got.Render.Height != base.Render.Height || got.Render.MaxDepth != base.Render.MaxDepth {
		t.Errorf("Unset flags changed the scene: %+v", got.Render)
	}
	if base.Render.Width != 300 {
		t.Errorf("Base scene modified: %+v", base.Render)
	}

	if _, err := applyRenderFlags(newContext(t, "-depth", "1000"), base); err == nil {
		t.Error("Expected error for out of range depth")
	}
}

func TestPointerFlag(t *testing.T) {
	if p := pointerFlag(newContext(t)); p != nil {
		t.Errorf("Expected no pointer, got %v", *p)
	}

	p := pointerFlag(newContext(t, "-pointer-x", "150"))
	if p == nil || p.X != 150 || p.Y != 0 {
		t.Errorf("Expected pointer (150,0), got %v", p)
	}
}

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`{"name": "lamp", "camera": {"position": {"x": 0, "y": 0, "z": 0}, "fov": 90, "focalLength": 1}, "spheres": [{"name": "bulb", "position": {"x": 0, "y": 0, "z": -2}, "radius": 1}]}`)
	if err := os.WriteFile(filepath.Join(dir, "lamp.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		arg      string
		wantName string
		wantErr  bool
	}{
		{"empty uses default", "", "default", false},
		{"builtin", "cubes", "cubes", false},
		{"file id", "file:lamp", "lamp", false},
		{"path", filepath.Join(dir, "lamp.json"), "lamp", false},
		{"unknown", "nope", "", true},
		{"missing path", filepath.Join(dir, "missing.json"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := loadScene(tt.arg, dir)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.arg)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s.Name != tt.wantName {
				t.Errorf("Expected scene %q, got %q", tt.wantName, s.Name)
			}
		})
	}
}

func TestDefaultOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	tests := []struct {
		sceneName string
		want      string
	}{
		{"default", filepath.Join("output", "default", "render_20240309_140507.png")},
		{"My Scene", filepath.Join("output", "my-scene", "render_20240309_140507.png")},
		{"", filepath.Join("output", "scene", "render_20240309_140507.png")},
	}

	for _, tt := range tests {
		if got := defaultOutputPath(tt.sceneName, now); got != tt.want {
			t.Errorf("defaultOutputPath(%q) = %q, want %q", tt.sceneName, got, tt.want)
		}
	}
}
