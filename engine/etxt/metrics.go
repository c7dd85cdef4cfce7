package etxt

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// MaxGlyphCodes bounds the character codes a MetricsTable can hold (7-bit ASCII).
const MaxGlyphCodes = 128

var (
	ErrGlyphOutOfRange = errors.New("character code outside of glyph range")
	ErrInvalidRange    = errors.New("invalid glyph range")
)

// GlyphRange is the contiguous run of character codes [Start, Start+Count) held in an atlas.
type GlyphRange struct {
	Start rune
	Count int
}

// PrintableASCII covers space through tilde.
var PrintableASCII = GlyphRange{Start: 32, Count: 95}

func (r GlyphRange) End() rune {
	return r.Start + rune(r.Count)
}

func (r GlyphRange) Contains(code rune) bool {
	return code >= r.Start && code < r.End()
}

func (r GlyphRange) Validate() error {
	if r.Start < 0 || r.Count <= 0 || int(r.End()) > MaxGlyphCodes {
		return errors.Wrapf(ErrInvalidRange, "[%d, %d) must be a non-empty subrange of [0, %d)", r.Start, r.End(), MaxGlyphCodes)
	}
	return nil
}

func (r GlyphRange) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End())
}

// GlyphMetrics holds the layout information of one glyph at the atlas pixel size.
type GlyphMetrics struct {
	Advance    mgl32.Vec2 // pen displacement; Y is the line step
	Dimensions mgl32.Vec2 // bitmap size in pixels
	Bearing    mgl32.Vec2 // pen origin to bitmap top-left, Y measured upwards
	TexOffset  float32    // left edge in the atlas, normalized to [0, 1)
}

// MetricsTable maps character codes to glyph metrics. It is filled by the AtlasBuilder and
// read-only afterwards.
type MetricsTable struct {
	glyphRange GlyphRange
	entries    [MaxGlyphCodes]GlyphMetrics
	atlasSize  image.Point
	lineHeight float32
}

func newMetricsTable(glyphRange GlyphRange, atlasSize image.Point, lineHeight float32) *MetricsTable {
	return &MetricsTable{
		glyphRange: glyphRange,
		atlasSize:  atlasSize,
		lineHeight: lineHeight,
	}
}

// Lookup returns the metrics for code or ErrGlyphOutOfRange.
func (t *MetricsTable) Lookup(code rune) (GlyphMetrics, error) {
	if !t.glyphRange.Contains(code) {
		return GlyphMetrics{}, errors.Wrapf(ErrGlyphOutOfRange, "code %d (%q) not in %s", code, code, t.glyphRange)
	}
	return t.entries[code], nil
}

func (t *MetricsTable) Range() GlyphRange {
	return t.glyphRange
}

// AtlasSize is the pixel size of the atlas the texture offsets refer to.
func (t *MetricsTable) AtlasSize() image.Point {
	return t.atlasSize
}

// LineHeight is the face-wide line step in pixels.
func (t *MetricsTable) LineHeight() float32 {
	return t.lineHeight
}

// Interval is a half-open horizontal pixel span inside the atlas.
type Interval struct {
	Code       rune
	Start, End int
}

// Intervals returns the packed pixel span of every glyph, in code order.
func (t *MetricsTable) Intervals() []Interval {
	result := make([]Interval, 0, t.glyphRange.Count)
	for code := t.glyphRange.Start; code < t.glyphRange.End(); code++ {
		glyph := t.entries[code]
		start := int(glyph.TexOffset*float32(t.atlasSize.X) + 0.5)
		result = append(result, Interval{
			Code:  code,
			Start: start,
			End:   start + int(glyph.Dimensions.X()),
		})
	}
	return result
}
