package graphview

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	for _, tt := range []struct {
		in, want string
	}{
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"fisheye-on", "fisheye-on"},
		{"v1.2", "v1.2"},
		{"a/b c", "a_b_c"},
		{"../../etc", ".._.._etc"},
		{"héllo", "h_llo"},
	} {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWritePNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 1, color.NRGBA{R: 255, A: 128})
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := writePNG(path, img); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := got.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("bounds = %v, want 2x2", b)
	}
}
