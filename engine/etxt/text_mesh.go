package etxt

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// VerticesPerGlyph: two triangles, not indexed.
const VerticesPerGlyph = 6

// Vertex is one interleaved (x, y, u, v) record.
type Vertex struct {
	Position mgl32.Vec2
	TexCoord mgl32.Vec2
}

// Extents is the bounding box of all emitted quad corners.
type Extents struct {
	MinX, MaxX float32
	MinY, MaxY float32
}

func EmptyExtents() Extents {
	inf := float32(math.Inf(1))
	return Extents{MinX: inf, MaxX: -inf, MinY: inf, MaxY: -inf}
}

func (e Extents) Empty() bool {
	return e.MinX > e.MaxX || e.MinY > e.MaxY
}

func (e *Extents) Include(p mgl32.Vec2) {
	e.MinX = min(e.MinX, p.X())
	e.MaxX = max(e.MaxX, p.X())
	e.MinY = min(e.MinY, p.Y())
	e.MaxY = max(e.MaxY, p.Y())
}

func (e Extents) Contains(p mgl32.Vec2) bool {
	return p.X() >= e.MinX && p.X() <= e.MaxX && p.Y() >= e.MinY && p.Y() <= e.MaxY
}

// Mesh is the raw pixel-space geometry of a text block.
type Mesh struct {
	Vertices []Vertex
	Extents  Extents
	Glyphs   int
}

// LineSpacingPolicy decides how far the pen moves down after a line.
type LineSpacingPolicy int

const (
	// LineSpacingLastGlyph steps by the vertical advance of the last glyph on the line.
	LineSpacingLastGlyph LineSpacingPolicy = iota
	// LineSpacingFaceHeight steps by the face-wide line height.
	LineSpacingFaceHeight
)

func (p LineSpacingPolicy) String() string {
	switch p {
	case LineSpacingLastGlyph:
		return "last-glyph"
	case LineSpacingFaceHeight:
		return "face-height"
	}
	return "unknown"
}

// ParseLineSpacingPolicy accepts the names printed by String. An empty name selects the
// default policy.
func ParseLineSpacingPolicy(name string) (LineSpacingPolicy, error) {
	switch name {
	case "", LineSpacingLastGlyph.String():
		return LineSpacingLastGlyph, nil
	case LineSpacingFaceHeight.String():
		return LineSpacingFaceHeight, nil
	}
	return LineSpacingLastGlyph, errors.Errorf("unknown line spacing policy '%s'", name)
}

// LayoutOptions place a text block in y-down screen space.
type LayoutOptions struct {
	Origin      mgl32.Vec2 // pen start of the first line (baseline)
	Scale       mgl32.Vec2
	LineSpacing LineSpacingPolicy
	// Fallback replaces codes outside the glyph range when non-zero. Zero means fail.
	Fallback rune
}

func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{Scale: mgl32.Vec2{1, 1}}
}

// BuildTextMesh lays out lines top to bottom, emitting one textured quad per rune, and
// tracks the extents of everything it emits.
func BuildTextMesh(lines []string, table *MetricsTable, opts LayoutOptions) (*Mesh, error) {
	if table == nil {
		return nil, errors.New("build text mesh: no metrics table")
	}
	if opts.Fallback != 0 && !table.Range().Contains(opts.Fallback) {
		return nil, errors.Wrapf(ErrGlyphOutOfRange, "fallback %q", opts.Fallback)
	}
	atlasSize := table.AtlasSize()
	if atlasSize.X <= 0 || atlasSize.Y <= 0 {
		return nil, errors.Errorf("build text mesh: invalid atlas size %v", atlasSize)
	}
	atlasW := float32(atlasSize.X)
	atlasH := float32(atlasSize.Y)
	scaleX, scaleY := opts.Scale.X(), opts.Scale.Y()

	glyphCount := 0
	for _, line := range lines {
		glyphCount += len([]rune(line))
	}
	mesh := &Mesh{
		Vertices: make([]Vertex, 0, glyphCount*VerticesPerGlyph),
		Extents:  EmptyExtents(),
	}

	pen := opts.Origin
	for lineIndex, line := range lines {
		pen[0] = opts.Origin.X()
		lineStep := table.LineHeight()
		column := 0
		for _, code := range line {
			glyph, err := lookupWithFallback(table, code, opts.Fallback)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d, column %d", lineIndex+1, column+1)
			}

			xPos := pen.X() + glyph.Bearing.X()*scaleX
			yPos := pen.Y() - glyph.Bearing.Y()*scaleY
			width := glyph.Dimensions.X() * scaleX
			height := glyph.Dimensions.Y() * scaleY

			leftU := glyph.TexOffset
			rightU := glyph.TexOffset + glyph.Dimensions.X()/atlasW
			topV := float32(0)
			bottomV := glyph.Dimensions.Y() / atlasH

			topLeft := Vertex{mgl32.Vec2{xPos, yPos}, mgl32.Vec2{leftU, topV}}
			topRight := Vertex{mgl32.Vec2{xPos + width, yPos}, mgl32.Vec2{rightU, topV}}
			bottomLeft := Vertex{mgl32.Vec2{xPos, yPos + height}, mgl32.Vec2{leftU, bottomV}}
			bottomRight := Vertex{mgl32.Vec2{xPos + width, yPos + height}, mgl32.Vec2{rightU, bottomV}}

			mesh.Vertices = append(mesh.Vertices,
				// first triangle
				topLeft, topRight, bottomLeft,
				// second triangle
				topRight, bottomLeft, bottomRight,
			)
			for _, corner := range [4]Vertex{topLeft, topRight, bottomLeft, bottomRight} {
				mesh.Extents.Include(corner.Position)
			}

			pen[0] += glyph.Advance.X() * scaleX
			lineStep = glyph.Advance.Y()
			column++
		}
		mesh.Glyphs += column

		if opts.LineSpacing == LineSpacingFaceHeight {
			lineStep = table.LineHeight()
		}
		pen[1] += lineStep * scaleY
	}
	return mesh, nil
}

func lookupWithFallback(table *MetricsTable, code rune, fallback rune) (GlyphMetrics, error) {
	if !table.Range().Contains(code) && fallback != 0 {
		code = fallback
	}
	return table.Lookup(code)
}
