package etxt

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/sonnet/engine/util"
	"github.com/pkg/errors"
)

var ErrEmptyAtlas = errors.New("glyph range produced an empty atlas")

// AtlasPage receives glyph bitmaps while the atlas is packed. *glhf.Texture satisfies it
// for single-channel textures.
type AtlasPage interface {
	SetPixels(x, y, w, h int, pixels []uint8)
}

// PageAllocator creates a page of exactly width x height pixels.
type PageAllocator func(width, height int) (AtlasPage, error)

// AlphaPage is an in-memory atlas page.
type AlphaPage struct {
	pixels *image.Alpha
}

func NewAlphaPage(width, height int) (AtlasPage, error) {
	return &AlphaPage{pixels: image.NewAlpha(image.Rect(0, 0, width, height))}, nil
}

func (p *AlphaPage) SetPixels(x, y, w, h int, pixels []uint8) {
	if len(pixels) != w*h {
		panic("set pixels: wrong number of pixels")
	}
	for row := 0; row < h; row++ {
		dst := p.pixels.PixOffset(x, y+row)
		copy(p.pixels.Pix[dst:dst+w], pixels[row*w:(row+1)*w])
	}
}

func (p *AlphaPage) Image() *image.Alpha {
	return p.pixels
}

func (p *AlphaPage) Bounds() image.Rectangle {
	return p.pixels.Bounds()
}

// WritePNG dumps the page as a grayscale PNG for inspection.
func (p *AlphaPage) WritePNG(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "could not create '%s'", filename)
	}
	defer f.Close()
	if err = png.Encode(f, p.pixels); err != nil {
		return errors.Wrapf(err, "could not encode '%s'", filename)
	}
	return nil
}

// TextAtlas is one horizontal strip of glyph bitmaps plus their metrics.
type TextAtlas struct {
	Width, Height int
	Page          AtlasPage
	Metrics       *MetricsTable
}

type AtlasOption func(*AtlasBuilder)

// WithPageAllocator decides where the packed bitmaps end up (CPU image, GPU texture).
func WithPageAllocator(allocate PageAllocator) AtlasOption {
	return func(b *AtlasBuilder) {
		b.allocate = allocate
	}
}

// WithBitmapCache keeps the bitmaps of the measure pass so that packing does not rasterize
// every glyph a second time.
func WithBitmapCache(enabled bool) AtlasOption {
	return func(b *AtlasBuilder) {
		b.cacheBitmaps = enabled
	}
}

// AtlasBuilder packs all glyphs of a range left to right into one texture row.
//
// The size of a bitmap is only known after rasterizing it, so the builder measures every
// glyph first, allocates the page once and then packs.
type AtlasBuilder struct {
	rasterizer   GlyphRasterizer
	glyphRange   GlyphRange
	allocate     PageAllocator
	cacheBitmaps bool
}

func NewAtlasBuilder(rasterizer GlyphRasterizer, glyphRange GlyphRange, options ...AtlasOption) *AtlasBuilder {
	b := &AtlasBuilder{
		rasterizer: rasterizer,
		glyphRange: glyphRange,
		allocate:   NewAlphaPage,
	}
	for _, option := range options {
		option(b)
	}
	return b
}

func (b *AtlasBuilder) Build() (*TextAtlas, error) {
	if err := b.glyphRange.Validate(); err != nil {
		return nil, err
	}

	var cache []GlyphBitmap
	if b.cacheBitmaps {
		cache = make([]GlyphBitmap, 0, b.glyphRange.Count)
	}

	// pass 1: measure
	width, height := 0, 0
	for code := b.glyphRange.Start; code < b.glyphRange.End(); code++ {
		bitmap, err := b.rasterizer.RasterizeGlyph(code)
		if err != nil {
			return nil, errors.Wrapf(err, "measuring glyph %d", code)
		}
		width += bitmap.Width
		if bitmap.Height > height {
			height = bitmap.Height
		}
		if b.cacheBitmaps {
			cache = append(cache, bitmap)
		}
	}
	if width == 0 || height == 0 {
		return nil, errors.Wrapf(ErrEmptyAtlas, "%s measured %dx%d", b.glyphRange, width, height)
	}
	util.LogAtlasDebug(fmt.Sprintf("[Atlas] %d glyphs in %s need %dx%d px", b.glyphRange.Count, b.glyphRange, width, height))

	page, err := b.allocate(width, height)
	if err != nil {
		return nil, errors.Wrapf(err, "could not allocate %dx%d atlas page", width, height)
	}

	// pass 2: pack
	table := newMetricsTable(b.glyphRange, image.Pt(width, height), b.rasterizer.LineHeight())
	x := 0
	for i := 0; i < b.glyphRange.Count; i++ {
		code := b.glyphRange.Start + rune(i)
		var bitmap GlyphBitmap
		if b.cacheBitmaps {
			bitmap = cache[i]
		} else {
			bitmap, err = b.rasterizer.RasterizeGlyph(code)
			if err != nil {
				return nil, errors.Wrapf(err, "packing glyph %d", code)
			}
		}
		if x+bitmap.Width > width || bitmap.Height > height {
			// the rasterizer must be deterministic between the passes
			return nil, errors.Errorf("glyph %d grew between passes to %dx%d", code, bitmap.Width, bitmap.Height)
		}

		page.SetPixels(x, 0, bitmap.Width, bitmap.Height, bitmap.Pixels)
		table.entries[code] = GlyphMetrics{
			Advance:    bitmap.Advance,
			Dimensions: mgl32.Vec2{float32(bitmap.Width), float32(bitmap.Height)},
			Bearing:    bitmap.Bearing,
			TexOffset:  float32(x) / float32(width),
		}
		x += bitmap.Width
	}
	if x != width {
		return nil, errors.Errorf("packed width %d differs from measured width %d", x, width)
	}

	util.LogAtlasInfo(fmt.Sprintf("[Atlas] packed %s into %dx%d", b.glyphRange, width, height))
	return &TextAtlas{
		Width:   width,
		Height:  height,
		Page:    page,
		Metrics: table,
	}, nil
}

// PageSet writes every glyph to all of its pages, e.g. a GPU texture plus a CPU copy for
// debugging.
type PageSet []AtlasPage

func (s PageSet) SetPixels(x, y, w, h int, pixels []uint8) {
	for _, page := range s {
		page.SetPixels(x, y, w, h, pixels)
	}
}

// MirrorAllocator allocates one page per allocator and bundles them in a PageSet.
func MirrorAllocator(allocators ...PageAllocator) PageAllocator {
	return func(width, height int) (AtlasPage, error) {
		pages := make(PageSet, 0, len(allocators))
		for _, allocate := range allocators {
			page, err := allocate(width, height)
			if err != nil {
				return nil, err
			}
			pages = append(pages, page)
		}
		return pages, nil
	}
}

// FindPage returns the first page of type T, looking inside page sets.
func FindPage[T AtlasPage](page AtlasPage) (T, bool) {
	if typed, ok := page.(T); ok {
		return typed, true
	}
	if set, ok := page.(PageSet); ok {
		for _, member := range set {
			if typed, found := FindPage[T](member); found {
				return typed, true
			}
		}
	}
	var zero T
	return zero, false
}

// LoadFontAtlas opens the font at fontPath (the embedded Go Mono face when empty), packs
// glyphRange at sizePx and releases the rasterizer again.
func LoadFontAtlas(fontPath string, sizePx int, glyphRange GlyphRange, options ...AtlasOption) (*TextAtlas, error) {
	var rasterizer *SfntRasterizer
	var err error
	if fontPath == "" {
		util.LogFontInfo("[Font] no font path configured, using embedded Go Mono")
		rasterizer, err = OpenDefaultFont(sizePx)
	} else {
		rasterizer, err = OpenFontFile(fontPath, sizePx)
	}
	if err != nil {
		return nil, err
	}
	defer rasterizer.Close()

	util.LogFontInfo(fmt.Sprintf("[Font] loaded '%s' at %dpx", fontPath, sizePx))
	return NewAtlasBuilder(rasterizer, glyphRange, options...).Build()
}
