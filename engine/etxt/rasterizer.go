package etxt

import (
	"image"
	"image/draw"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

var (
	ErrGlyphNotFound    = errors.New("glyph not found in font face")
	ErrInvalidPixelSize = errors.New("invalid pixel size")
	ErrRasterizerClosed = errors.New("rasterizer already closed")
)

// GlyphBitmap is a rasterized glyph: one coverage byte per pixel, rows top to bottom.
type GlyphBitmap struct {
	Pixels        []uint8
	Width, Height int
	Advance       mgl32.Vec2
	Bearing       mgl32.Vec2
}

// GlyphRasterizer turns character codes into bitmaps at a fixed pixel size.
type GlyphRasterizer interface {
	RasterizeGlyph(code rune) (GlyphBitmap, error)
	// LineHeight is the face-wide distance between two baselines in pixels.
	LineHeight() float32
	Close() error
}

// SfntRasterizer rasterizes TrueType/OpenType glyphs with golang.org/x/image.
type SfntRasterizer struct {
	font   *sfnt.Font
	face   font.Face
	buffer sfnt.Buffer
	sizePx int
}

// OpenFontFile loads the font at path and prepares a face of sizePx pixels.
func OpenFontFile(path string, sizePx int) (*SfntRasterizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open font file '%s'", path)
	}
	rasterizer, err := NewSfntRasterizer(data, sizePx)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load font '%s'", path)
	}
	return rasterizer, nil
}

// OpenDefaultFont uses the Go Mono face compiled into the binary.
func OpenDefaultFont(sizePx int) (*SfntRasterizer, error) {
	return NewSfntRasterizer(gomono.TTF, sizePx)
}

// NewSfntRasterizer parses font bytes. The bytes must not be modified while the rasterizer is
// in use.
func NewSfntRasterizer(data []byte, sizePx int) (*SfntRasterizer, error) {
	if sizePx <= 0 {
		return nil, errors.Wrapf(ErrInvalidPixelSize, "%d", sizePx)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "unsupported font format")
	}
	// at 72 DPI one point is one pixel
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(sizePx),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create font face")
	}
	return &SfntRasterizer{
		font:   parsed,
		face:   face,
		sizePx: sizePx,
	}, nil
}

func (r *SfntRasterizer) SizePx() int {
	return r.sizePx
}

func (r *SfntRasterizer) LineHeight() float32 {
	if r.face == nil {
		return 0
	}
	return float32(r.face.Metrics().Height.Floor())
}

// RasterizeGlyph renders code with its pen origin at (0, 0). Whitespace yields an empty
// bitmap with valid advance metrics.
func (r *SfntRasterizer) RasterizeGlyph(code rune) (GlyphBitmap, error) {
	if r.face == nil {
		return GlyphBitmap{}, ErrRasterizerClosed
	}
	index, err := r.font.GlyphIndex(&r.buffer, code)
	if err != nil {
		return GlyphBitmap{}, errors.Wrapf(err, "glyph lookup for code %d", code)
	}
	if index == 0 {
		return GlyphBitmap{}, errors.Wrapf(ErrGlyphNotFound, "code %d (%q)", code, code)
	}

	dr, mask, maskp, advance, ok := r.face.Glyph(fixed.Point26_6{}, code)
	if !ok {
		return GlyphBitmap{}, errors.Wrapf(ErrGlyphNotFound, "code %d (%q) could not be rendered", code, code)
	}

	bitmap := GlyphBitmap{
		Width:   dr.Dx(),
		Height:  dr.Dy(),
		Advance: mgl32.Vec2{float32(advance.Floor()), r.LineHeight()},
		Bearing: mgl32.Vec2{float32(dr.Min.X), float32(-dr.Min.Y)},
	}
	if dr.Empty() {
		bitmap.Width, bitmap.Height = 0, 0
		return bitmap, nil
	}

	// the face reuses its mask between calls
	alpha := image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
	draw.DrawMask(alpha, alpha.Bounds(), image.Opaque, image.Point{}, mask, maskp, draw.Src)
	bitmap.Pixels = alpha.Pix
	return bitmap, nil
}

// Close releases the face. Further rasterization fails with ErrRasterizerClosed.
func (r *SfntRasterizer) Close() error {
	if r.face == nil {
		return nil
	}
	err := r.face.Close()
	r.face = nil
	return err
}
