package imaging

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	// Registered decoders for source images
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// MinScale bounds downscaling so images never vanish
const MinScale = 0.1

var supported = []string{"image/png", "image/jpeg", "image/gif", "image/bmp", "image/tiff", "image/webp"}

// Rect is a crop rectangle in fractions (0..1) of the source dimensions
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// Processor crops, scales and stores images for insertion
type Processor struct {
	tempDir string
}

// NewProcessor creates a processor writing temporary files under tempDir
func NewProcessor(tempDir string) *Processor {
	if tempDir == "" {
		tempDir = filepath.Join(os.TempDir(), "litepro")
	}
	return &Processor{tempDir: tempDir}
}

// Open decodes an image file after checking its content type
func (p *Processor) Open(path string) (image.Image, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect image type: %w", err)
	}
	if !mimetype.EqualsAny(mtype.String(), supported...) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, mtype.String())
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Crop cuts the fractional rectangle out of img. Fractions are clamped to
// the image; an empty result is an error.
func (p *Processor) Crop(img image.Image, r Rect) (image.Image, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	x1 := clamp(int(r.X1*float64(w)), w)
	y1 := clamp(int(r.Y1*float64(h)), h)
	x2 := clamp(int(r.X2*float64(w)), w)
	y2 := clamp(int(r.Y2*float64(h)), h)
	if x2 <= x1 || y2 <= y1 {
		return nil, fmt.Errorf("%w: (%g,%g)-(%g,%g)", ErrEmptyCrop, r.X1, r.Y1, r.X2, r.Y2)
	}

	rect := image.Rect(b.Min.X+x1, b.Min.Y+y1, b.Min.X+x2, b.Min.Y+y2)
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), img, rect.Min, draw.Src)
	return dst, nil
}

// Scale resizes img by factor, never below MinScale and never to zero
// pixels
func (p *Processor) Scale(img image.Image, factor float64) image.Image {
	factor = math.Max(MinScale, factor)
	b := img.Bounds()
	return resize(img, maxInt(1, int(float64(b.Dx())*factor)), maxInt(1, int(float64(b.Dy())*factor)))
}

// FitWidth downscales img to maxWidth keeping the aspect ratio. Narrower
// images are returned unchanged.
func (p *Processor) FitWidth(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	ratio := float64(maxWidth) / float64(b.Dx())
	return resize(img, maxWidth, maxInt(1, int(float64(b.Dy())*ratio)))
}

// SaveTemp writes img as PNG to a fresh file and returns its absolute path
func (p *Processor) SaveTemp(img image.Image, prefix string) (string, error) {
	if err := os.MkdirAll(p.tempDir, 0o755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	path := filepath.Join(p.tempDir, fmt.Sprintf("%s_%s.png", prefix, uuid.NewString()))

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return filepath.Abs(path)
}

func resize(img image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
