package imageio

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(2, 0, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(0, 1, color.RGBA{255, 255, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{10, 20, 30, 255})
	img.SetRGBA(2, 1, color.RGBA{0, 0, 0, 255})
	return img
}

func assertSamePixels(t *testing.T, want, got image.Image) {
	t.Helper()
	if want.Bounds().Size() != got.Bounds().Size() {
		t.Fatalf("Expected size %v, got %v", want.Bounds().Size(), got.Bounds().Size())
	}
	wb, gb := want.Bounds(), got.Bounds()
	for y := 0; y < wb.Dy(); y++ {
		for x := 0; x < wb.Dx(); x++ {
			w := color.RGBAModel.Convert(want.At(wb.Min.X+x, wb.Min.Y+y))
			g := color.RGBAModel.Convert(got.At(gb.Min.X+x, gb.Min.Y+y))
			if w != g {
				t.Errorf("Pixel (%d,%d): expected %v, got %v", x, y, w, g)
			}
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		wantErr  bool
	}{
		{"out.png", FormatPNG, false},
		{"frames/OUT.PNG", FormatPNG, false},
		{"preview.webp", FormatWebP, false},
		{"frame.tga", FormatTGA, false},
		{"frame.jpg", FormatPNG, true},
		{"noext", FormatPNG, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestEncode_Lossless(t *testing.T) {
	img := testImage()

	tests := []struct {
		format Format
		decode func(*bytes.Reader) (image.Image, error)
	}{
		{FormatPNG, func(r *bytes.Reader) (image.Image, error) {
			decoded, _, err := image.Decode(r)
			return decoded, err
		}},
		{FormatWebP, func(r *bytes.Reader) (image.Image, error) { return nativewebp.Decode(r) }},
		{FormatTGA, func(r *bytes.Reader) (image.Image, error) { return tga.Decode(r) }},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, img, tt.format); err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			decoded, err := tt.decode(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("decode error: %v", err)
			}
			assertSamePixels(t, img, decoded)
		})
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, testImage(), Format(42)); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "frame.png")

	if err := WriteFile(path, testImage()); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, format, err := image.Decode(f)
	if err != nil || format != "png" {
		t.Fatalf("Expected a png file, got %q, %v", format, err)
	}
	assertSamePixels(t, testImage(), decoded)

	if err := WriteFile(filepath.Join(dir, "frame.gif"), testImage()); err == nil {
		t.Error("Expected error for unsupported extension")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		expected Format
		mime     string
		wantErr  bool
	}{
		{"", FormatPNG, "image/png", false},
		{"PNG", FormatPNG, "image/png", false},
		{"webp", FormatWebP, "image/webp", false},
		{"tga", FormatTGA, "image/x-tga", false},
		{"gif", FormatPNG, "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tt.name)
			}
			continue
		}
		if err != nil || got != tt.expected {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", tt.name, got, err, tt.expected)
		}
		if got.MimeType() != tt.mime {
			t.Errorf("%v.MimeType() = %q, want %q", got, got.MimeType(), tt.mime)
		}
	}
}
