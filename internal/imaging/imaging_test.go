package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "src.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestOpen(t *testing.T) {
	p := NewProcessor(t.TempDir())

	img, err := p.Open(writePNG(t, 40, 20))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())

	text := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(text, []byte("not an image"), 0o644))
	_, err = p.Open(text)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = p.Open(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestCrop(t *testing.T) {
	p := NewProcessor(t.TempDir())
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))

	tests := []struct {
		name  string
		rect  Rect
		w, h  int
		empty bool
	}{
		{"half", Rect{0, 0, 0.5, 1}, 50, 50, false},
		{"center", Rect{0.25, 0.2, 0.75, 0.8}, 50, 30, false},
		{"clamped", Rect{-1, -1, 2, 2}, 100, 50, false},
		{"inverted", Rect{0.6, 0, 0.4, 1}, 0, 0, true},
		{"zero height", Rect{0, 0.5, 1, 0.5}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := p.Crop(src, tt.rect)
			if tt.empty {
				assert.ErrorIs(t, err, ErrEmptyCrop)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.w, out.Bounds().Dx())
			assert.Equal(t, tt.h, out.Bounds().Dy())
		})
	}
}

func TestScale(t *testing.T) {
	p := NewProcessor(t.TempDir())
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))

	out := p.Scale(src, 0.3)
	assert.Equal(t, 60, out.Bounds().Dx())
	assert.Equal(t, 30, out.Bounds().Dy())

	out = p.Scale(src, 0.01)
	assert.Equal(t, 20, out.Bounds().Dx(), "scale is bounded below")

	tiny := image.NewRGBA(image.Rect(0, 0, 3, 3))
	out = p.Scale(tiny, 0.1)
	assert.Equal(t, 1, out.Bounds().Dx())
}

func TestFitWidth(t *testing.T) {
	p := NewProcessor(t.TempDir())
	wide := image.NewRGBA(image.Rect(0, 0, 1800, 600))

	out := p.FitWidth(wide, 900)
	assert.Equal(t, 900, out.Bounds().Dx())
	assert.Equal(t, 300, out.Bounds().Dy())

	narrow := image.NewRGBA(image.Rect(0, 0, 300, 100))
	assert.Same(t, narrow, p.FitWidth(narrow, 900))
}

func TestSaveTemp(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	p := NewProcessor(dir)

	path, err := p.SaveTemp(image.NewRGBA(image.Rect(0, 0, 4, 4)), "crop")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, dir, filepath.Dir(path))

	img, err := p.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	other, err := p.SaveTemp(img, "crop")
	require.NoError(t, err)
	assert.NotEqual(t, path, other)
}
